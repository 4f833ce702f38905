package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ninamwrites/bookstore-backend/pkg/db/models"
	"github.com/ninamwrites/bookstore-backend/pkg/enums"
)

// BookDTO exposes a catalog book in API responses.
type BookDTO struct {
	ID            uuid.UUID       `json:"id"`
	Title         string          `json:"title"`
	Author        string          `json:"author"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	ImagePath     *string         `json:"image_path,omitempty"`
	PublishedDate *time.Time      `json:"published_date,omitempty"`
	StockQuantity int             `json:"stock_quantity"`
	InStock       bool            `json:"in_stock"`
	ISBN          *string         `json:"isbn,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BookFromModel maps the persisted book into a DTO.
func BookFromModel(m *models.Book) *BookDTO {
	if m == nil {
		return nil
	}
	return &BookDTO{
		ID:            m.ID,
		Title:         m.Title,
		Author:        m.Author,
		Description:   m.Description,
		Price:         m.Price,
		ImagePath:     m.ImagePath,
		PublishedDate: m.PublishedDate,
		StockQuantity: m.StockQuantity,
		InStock:       m.InStock(),
		ISBN:          m.ISBN,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// CreateBookInput carries the fields required to list a new book.
type CreateBookInput struct {
	Title         string
	Author        string
	Description   string
	Price         decimal.Decimal
	ImagePath     *string
	PublishedDate *time.Time
	StockQuantity int
	ISBN          *string
}

// UpdateBookInput carries partial book mutations; nil fields stay untouched.
type UpdateBookInput struct {
	Title         *string
	Author        *string
	Description   *string
	Price         *decimal.Decimal
	ImagePath     *string
	PublishedDate *time.Time
	StockQuantity *int
	ISBN          *string
}

// MerchDTO exposes a merchandise listing in API responses.
type MerchDTO struct {
	ID          uuid.UUID           `json:"id"`
	Title       string              `json:"title"`
	Description *string             `json:"description,omitempty"`
	Price       decimal.Decimal     `json:"price"`
	Category    enums.MerchCategory `json:"category"`
	ImagePath   *string             `json:"image_path,omitempty"`
	HasSizes    bool                `json:"has_sizes"`
	Sizes       []string            `json:"sizes"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// MerchFromModel maps the persisted merchandise row into a DTO.
func MerchFromModel(m *models.Merchandise) *MerchDTO {
	if m == nil {
		return nil
	}
	sizes := []string(m.Sizes)
	if sizes == nil {
		sizes = []string{}
	}
	return &MerchDTO{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Price:       m.Price,
		Category:    m.Category,
		ImagePath:   m.ImagePath,
		HasSizes:    m.HasSizes,
		Sizes:       sizes,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// MerchByCategory groups storefront merchandise for the merch page.
type MerchByCategory struct {
	Clothing    []*MerchDTO `json:"clothing"`
	Accessories []*MerchDTO `json:"accessories"`
}

// CreateMerchInput carries the fields required to list new merchandise.
type CreateMerchInput struct {
	Title       string
	Description *string
	Price       decimal.Decimal
	Category    enums.MerchCategory
	ImagePath   *string
	HasSizes    bool
	Sizes       []string
}

// UpdateMerchInput carries partial merchandise mutations.
type UpdateMerchInput struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
	Category    *enums.MerchCategory
	ImagePath   *string
	HasSizes    *bool
	Sizes       *[]string
}
