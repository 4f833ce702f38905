package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Book is a catalog listing. Price carries two decimal places; stock can hit
// zero without delisting the book.
type Book struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title         string          `gorm:"column:title;not null"`
	Author        string          `gorm:"column:author;not null;index"`
	Description   string          `gorm:"column:description;not null"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	ImagePath     *string         `gorm:"column:image_path"`
	PublishedDate *time.Time      `gorm:"column:published_date;type:date"`
	StockQuantity int             `gorm:"column:stock_quantity;not null;default:0"`
	ISBN          *string         `gorm:"column:isbn;uniqueIndex"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// InStock reports whether any copies remain.
func (b Book) InStock() bool {
	return b.StockQuantity > 0
}
