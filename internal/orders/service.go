package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ninamwrites/bookstore-backend/pkg/db/models"
	"github.com/ninamwrites/bookstore-backend/pkg/enums"
	pkgerrors "github.com/ninamwrites/bookstore-backend/pkg/errors"
	"github.com/ninamwrites/bookstore-backend/pkg/logger"
	"github.com/ninamwrites/bookstore-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartReader interface {
	Items(ctx context.Context, sessionID string) (map[string]int, error)
	Clear(ctx context.Context, sessionID string) error
}

type bookLoader interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Book, error)
}

// Service exposes order capture and fulfillment operations.
type Service interface {
	Checkout(ctx context.Context, customerID uuid.UUID, sessionID string, input CheckoutInput) (*OrderDTO, error)
	ListMine(ctx context.Context, customerID uuid.UUID) ([]*OrderDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*OrderDTO, error)
	List(ctx context.Context, params pagination.Params) (*OrderPage, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, rawStatus string) (*OrderDTO, error)
}

type service struct {
	repo  Repository
	tx    txRunner
	cart  cartReader
	books bookLoader
	logg  *logger.Logger
}

// NewService builds an order service with the required collaborators.
func NewService(repo Repository, tx txRunner, cart cartReader, books bookLoader, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if cart == nil {
		return nil, fmt.Errorf("cart reader required")
	}
	if books == nil {
		return nil, fmt.Errorf("book loader required")
	}
	return &service{repo: repo, tx: tx, cart: cart, books: books, logg: logg}, nil
}

// Checkout materializes the visitor's session cart into an order. Each line
// captures the book's current price, and the order total is written in the
// same transaction that creates the items. The session cart is cleared only
// after the transaction commits.
func (s *service) Checkout(ctx context.Context, customerID uuid.UUID, sessionID string, input CheckoutInput) (*OrderDTO, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "customer identity missing")
	}

	items, err := s.cart.Items(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	ids := make([]uuid.UUID, 0, len(items))
	for raw := range items {
		id, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			continue
		}
		ids = append(ids, id)
	}
	books, err := s.books.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart books")
	}
	byID := make(map[string]models.Book, len(books))
	for _, book := range books {
		byID[book.ID.String()] = book
	}

	var lines []models.OrderItem
	total := decimal.Zero
	for raw, qty := range items {
		book, ok := byID[raw]
		if !ok || qty < 1 {
			// Stale ids are dropped at checkout; they never become lines.
			continue
		}
		price := book.Price.Round(2)
		lines = append(lines, models.OrderItem{
			BookID:   book.ID,
			Quantity: qty,
			Price:    price,
		})
		total = total.Add(price.Mul(decimal.NewFromInt(int64(qty))))
	}
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart has no purchasable items")
	}

	order := &models.Order{
		CustomerID:      customerID,
		Status:          enums.OrderStatusPending,
		TotalPrice:      total.Round(2),
		ShippingAddress: input.ShippingAddress,
		BillingAddress:  input.BillingAddress,
		Notes:           input.Notes,
		Items:           lines,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		_, createErr := s.repo.WithTx(tx).Create(ctx, order)
		if createErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, createErr, "create order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The order is committed at this point. A failed cart clear leaves a
	// stale session cart but must not mask the created order.
	if clearErr := s.cart.Clear(ctx, sessionID); clearErr != nil && s.logg != nil {
		s.logg.Error(ctx, "checkout.cart_clear_failed", clearErr)
	}

	return FromModel(order), nil
}

func (s *service) ListMine(ctx context.Context, customerID uuid.UUID) ([]*OrderDTO, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "customer identity missing")
	}
	orders, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	out := make([]*OrderDTO, len(orders))
	for i := range orders {
		out[i] = FromModel(&orders[i])
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return FromModel(order), nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*OrderPage, error) {
	orders, next, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	page := &OrderPage{
		Orders:     make([]*OrderDTO, len(orders)),
		NextCursor: next,
	}
	for i := range orders {
		page.Orders[i] = FromModel(&orders[i])
	}
	return page, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, rawStatus string) (*OrderDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	status, err := enums.ParseOrderStatus(rawStatus)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status")
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}

	return s.Get(ctx, id)
}
