package models

import (
	"time"

	"github.com/google/uuid"
)

// Testimonial is a customer quote shown on the storefront when active.
type Testimonial struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Author    string    `gorm:"column:author;not null"`
	Content   string    `gorm:"column:content;not null"`
	Rating    int       `gorm:"column:rating;not null;default:5"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index"`
}
