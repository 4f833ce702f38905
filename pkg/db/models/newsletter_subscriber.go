package models

import (
	"time"

	"github.com/google/uuid"
)

// NewsletterSubscriber holds one row per unique email address.
type NewsletterSubscriber struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string    `gorm:"column:email;not null;uniqueIndex"`
	SubscribedAt time.Time `gorm:"column:subscribed_at;autoCreateTime"`
}
