package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ninamwrites/bookstore-backend/pkg/enums"
)

// Customer is a storefront account; staff accounts share the table with an
// elevated role.
type Customer struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FirstName    string             `gorm:"column:first_name;not null"`
	LastName     string             `gorm:"column:last_name;not null"`
	Email        string             `gorm:"column:email;not null;uniqueIndex"`
	PhoneNumber  *string            `gorm:"column:phone_number"`
	PasswordHash string             `gorm:"column:password_hash;not null"`
	Role         enums.CustomerRole `gorm:"column:role;type:customer_role;not null;default:'customer'"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// FullName joins first and last name for display.
func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
