package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ninamwrites/bookstore-backend/pkg/enums"
)

// Order is an immutable-after-creation record of a checkout. TotalPrice is
// always written in the same transaction that creates or mutates its items.
type Order struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID      uuid.UUID         `gorm:"column:customer_id;type:uuid;not null;index"`
	Status          enums.OrderStatus `gorm:"column:status;type:order_status;not null;default:'pending'"`
	TotalPrice      decimal.Decimal   `gorm:"column:total_price;type:numeric(10,2);not null"`
	ShippingAddress string            `gorm:"column:shipping_address"`
	BillingAddress  string            `gorm:"column:billing_address"`
	Notes           string            `gorm:"column:notes"`
	Items           []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Customer        *Customer         `gorm:"foreignKey:CustomerID"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
