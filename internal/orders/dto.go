package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ninamwrites/bookstore-backend/pkg/db/models"
	"github.com/ninamwrites/bookstore-backend/pkg/enums"
)

// OrderItemDTO exposes one captured line in API responses.
type OrderItemDTO struct {
	ID        uuid.UUID       `json:"id"`
	BookID    uuid.UUID       `json:"book_id"`
	Title     string          `json:"title,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderDTO exposes an order in API responses.
type OrderDTO struct {
	ID              uuid.UUID         `json:"id"`
	CustomerID      uuid.UUID         `json:"customer_id"`
	CustomerName    string            `json:"customer_name,omitempty"`
	Status          enums.OrderStatus `json:"status"`
	TotalPrice      decimal.Decimal   `json:"total_price"`
	ShippingAddress string            `json:"shipping_address,omitempty"`
	BillingAddress  string            `json:"billing_address,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	Items           []OrderItemDTO    `json:"items"`
	CreatedAt       time.Time         `json:"created_at"`
}

// FromModel maps the persisted order into a DTO.
func FromModel(m *models.Order) *OrderDTO {
	if m == nil {
		return nil
	}

	dto := &OrderDTO{
		ID:              m.ID,
		CustomerID:      m.CustomerID,
		Status:          m.Status,
		TotalPrice:      m.TotalPrice,
		ShippingAddress: m.ShippingAddress,
		BillingAddress:  m.BillingAddress,
		Notes:           m.Notes,
		Items:           make([]OrderItemDTO, len(m.Items)),
		CreatedAt:       m.CreatedAt,
	}
	if m.Customer != nil {
		dto.CustomerName = m.Customer.FullName()
	}
	for i, item := range m.Items {
		line := OrderItemDTO{
			ID:        item.ID,
			BookID:    item.BookID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			LineTotal: item.LineTotal(),
		}
		if item.Book != nil {
			line.Title = item.Book.Title
		}
		dto.Items[i] = line
	}
	return dto
}

// CheckoutInput carries the fields collected on the checkout form.
type CheckoutInput struct {
	ShippingAddress string
	BillingAddress  string
	Notes           string
}

// OrderPage is one keyset page of orders for the admin list.
type OrderPage struct {
	Orders     []*OrderDTO `json:"orders"`
	NextCursor string      `json:"next_cursor,omitempty"`
}
