package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ninamwrites/bookstore-backend/pkg/db/models"
	"github.com/ninamwrites/bookstore-backend/pkg/enums"
	"github.com/ninamwrites/bookstore-backend/pkg/pagination"
	"github.com/ninamwrites/bookstore-backend/pkg/types"
)

// Repository defines persistence operations for the order tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Order, error)
	List(ctx context.Context, params pagination.Params) ([]models.Order, string, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
	HasDeliveredOrder(ctx context.Context, customerID uuid.UUID) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountByMonth(ctx context.Context) ([]types.MonthlyCount, error)
}
