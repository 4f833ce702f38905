package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/ninamwrites/bookstore-backend/pkg/enums"
)

// Merchandise is a non-book catalog listing (clothing or accessories).
type Merchandise struct {
	ID          uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string              `gorm:"column:title;not null"`
	Description *string             `gorm:"column:description"`
	Price       decimal.Decimal     `gorm:"column:price;type:numeric(10,2);not null"`
	Category    enums.MerchCategory `gorm:"column:category;type:merch_category;not null"`
	ImagePath   *string             `gorm:"column:image_path"`
	HasSizes    bool                `gorm:"column:has_sizes;not null;default:false"`
	Sizes       pq.StringArray      `gorm:"column:sizes;type:text[];not null;default:ARRAY[]::text[]"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
