package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ninamwrites/bookstore-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	CustomerID uuid.UUID
	Name       string
	Role       enums.CustomerRole
	JTI        string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	CustomerID uuid.UUID          `json:"customer_id"`
	Name       string             `json:"name,omitempty"`
	Role       enums.CustomerRole `json:"role"`
	jwt.RegisteredClaims
}
