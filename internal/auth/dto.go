package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/ninamwrites/bookstore-backend/pkg/db/models"
	"github.com/ninamwrites/bookstore-backend/pkg/enums"
)

// CustomerDTO exposes safe account data in auth responses.
type CustomerDTO struct {
	ID          uuid.UUID          `json:"id"`
	FirstName   string             `json:"first_name"`
	LastName    string             `json:"last_name"`
	Email       string             `json:"email"`
	PhoneNumber *string            `json:"phone_number,omitempty"`
	Role        enums.CustomerRole `json:"role"`
	CreatedAt   time.Time          `json:"created_at"`
}

// CustomerFromModel maps the persisted customer into a DTO.
func CustomerFromModel(m *models.Customer) *CustomerDTO {
	if m == nil {
		return nil
	}
	return &CustomerDTO{
		ID:          m.ID,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Email:       m.Email,
		PhoneNumber: m.PhoneNumber,
		Role:        m.Role,
		CreatedAt:   m.CreatedAt,
	}
}

// RegisterInput captures the fields collected at signup.
type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	PhoneNumber     *string
	Password        string
	ConfirmPassword string
}

// LoginInput captures email/password credentials.
type LoginInput struct {
	Email    string
	Password string
}

// Session is an issued token pair plus the authenticated account.
type Session struct {
	Customer     *CustomerDTO `json:"customer"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// RefreshResult carries the rotated token pair.
type RefreshResult struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
