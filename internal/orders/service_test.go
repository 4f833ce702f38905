package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ninamwrites/bookstore-backend/pkg/db/models"
	"github.com/ninamwrites/bookstore-backend/pkg/enums"
	pkgerrors "github.com/ninamwrites/bookstore-backend/pkg/errors"
	"github.com/ninamwrites/bookstore-backend/pkg/pagination"
	"github.com/ninamwrites/bookstore-backend/pkg/types"
)

type stubOrderRepo struct {
	orders   map[uuid.UUID]*models.Order
	inTx     bool
	txCreate *bool
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: map[uuid.UUID]*models.Order{}, txCreate: new(bool)}
}

// WithTx derives a tx-scoped view; the txCreate flag is shared with the
// parent so tests can observe where Create ran.
func (s *stubOrderRepo) WithTx(*gorm.DB) Repository {
	return &stubOrderRepo{orders: s.orders, txCreate: s.txCreate, inTx: true}
}

func (s *stubOrderRepo) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	if s.inTx {
		*s.txCreate = true
	}
	order.ID = uuid.New()
	for i := range order.Items {
		order.Items[i].ID = uuid.New()
		order.Items[i].OrderID = order.ID
	}
	s.orders[order.ID] = order
	return order, nil
}

func (s *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	if o, ok := s.orders[id]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrderRepo) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]models.Order, error) {
	var out []models.Order
	for _, o := range s.orders {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *stubOrderRepo) List(context.Context, pagination.Params) ([]models.Order, string, error) {
	var out []models.Order
	for _, o := range s.orders {
		out = append(out, *o)
	}
	return out, "", nil
}

func (s *stubOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enums.OrderStatus) error {
	o, ok := s.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Status = status
	return nil
}

func (s *stubOrderRepo) HasDeliveredOrder(_ context.Context, customerID uuid.UUID) (bool, error) {
	for _, o := range s.orders {
		if o.CustomerID == customerID && o.Status == enums.OrderStatusDelivered {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubOrderRepo) Count(context.Context) (int64, error) {
	return int64(len(s.orders)), nil
}

func (s *stubOrderRepo) CountByMonth(context.Context) ([]types.MonthlyCount, error) {
	return nil, nil
}

type stubTxRunner struct {
	calls int
}

func (s *stubTxRunner) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	s.calls++
	return fn(nil)
}

type stubCart struct {
	items    map[string]map[string]int
	cleared  []string
	clearErr error
}

func newStubCart() *stubCart {
	return &stubCart{items: map[string]map[string]int{}}
}

func (s *stubCart) Items(_ context.Context, sessionID string) (map[string]int, error) {
	if m, ok := s.items[sessionID]; ok {
		return m, nil
	}
	return map[string]int{}, nil
}

func (s *stubCart) Clear(_ context.Context, sessionID string) error {
	if s.clearErr != nil {
		return s.clearErr
	}
	s.cleared = append(s.cleared, sessionID)
	delete(s.items, sessionID)
	return nil
}

type stubBooks struct {
	books map[uuid.UUID]*models.Book
}

func (s *stubBooks) FindByIDs(_ context.Context, ids []uuid.UUID) ([]models.Book, error) {
	var out []models.Book
	for _, id := range ids {
		if b, ok := s.books[id]; ok {
			out = append(out, *b)
		}
	}
	return out, nil
}

func newOrderService(t *testing.T, repo Repository, tx txRunner, cart cartReader, books bookLoader) Service {
	t.Helper()
	svc, err := NewService(repo, tx, cart, books, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCheckoutCapturesPricesAndTotalInTx(t *testing.T) {
	t.Parallel()

	novel := &models.Book{ID: uuid.New(), Title: "Novel", Author: "N", Price: money("12.50"), StockQuantity: 5}
	poems := &models.Book{ID: uuid.New(), Title: "Poems", Author: "P", Price: money("5.00"), StockQuantity: 5}
	books := &stubBooks{books: map[uuid.UUID]*models.Book{novel.ID: novel, poems.ID: poems}}

	cart := newStubCart()
	cart.items["visitor"] = map[string]int{
		novel.ID.String(): 2,
		poems.ID.String(): 1,
	}

	repo := newStubOrderRepo()
	tx := &stubTxRunner{}
	svc := newOrderService(t, repo, tx, cart, books)

	customerID := uuid.New()
	order, err := svc.Checkout(context.Background(), customerID, "visitor", CheckoutInput{ShippingAddress: "12 Shelf Rd"})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if !order.TotalPrice.Equal(money("30.00")) {
		t.Fatalf("total = %s, want 30.00", order.TotalPrice)
	}
	if len(order.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(order.Items))
	}
	if tx.calls != 1 {
		t.Fatalf("tx runs = %d, want 1", tx.calls)
	}
	if !*repo.txCreate {
		t.Fatal("order was not created inside the transaction")
	}
	if len(cart.cleared) != 1 || cart.cleared[0] != "visitor" {
		t.Fatalf("cart not cleared after commit: %v", cart.cleared)
	}
	if order.Status != enums.OrderStatusPending {
		t.Fatalf("status = %s, want pending", order.Status)
	}
}

func TestCheckoutCapturedPriceSurvivesReprice(t *testing.T) {
	t.Parallel()

	book := &models.Book{ID: uuid.New(), Title: "B", Author: "a", Price: money("10.00"), StockQuantity: 5}
	books := &stubBooks{books: map[uuid.UUID]*models.Book{book.ID: book}}

	cart := newStubCart()
	cart.items["visitor"] = map[string]int{book.ID.String(): 1}

	repo := newStubOrderRepo()
	svc := newOrderService(t, repo, &stubTxRunner{}, cart, books)

	order, err := svc.Checkout(context.Background(), uuid.New(), "visitor", CheckoutInput{})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	book.Price = money("99.00")

	reloaded, err := svc.Get(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !reloaded.Items[0].Price.Equal(money("10.00")) {
		t.Fatalf("captured price = %s, want 10.00 after catalog reprice", reloaded.Items[0].Price)
	}
	if !reloaded.TotalPrice.Equal(money("10.00")) {
		t.Fatalf("total = %s, want 10.00 after catalog reprice", reloaded.TotalPrice)
	}
}

func TestCheckoutSurvivesCartClearFailure(t *testing.T) {
	t.Parallel()

	book := &models.Book{ID: uuid.New(), Title: "B", Author: "a", Price: money("10.00"), StockQuantity: 5}
	books := &stubBooks{books: map[uuid.UUID]*models.Book{book.ID: book}}

	cart := newStubCart()
	cart.items["visitor"] = map[string]int{book.ID.String(): 1}
	cart.clearErr = errors.New("redis gone")

	repo := newStubOrderRepo()
	svc := newOrderService(t, repo, &stubTxRunner{}, cart, books)

	order, err := svc.Checkout(context.Background(), uuid.New(), "visitor", CheckoutInput{ShippingAddress: "12 Shelf Rd"})
	if err != nil {
		t.Fatalf("Checkout after committed order must not fail on cart clear: %v", err)
	}
	if order == nil || len(repo.orders) != 1 {
		t.Fatalf("order not persisted: %+v", order)
	}
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	t.Parallel()

	svc := newOrderService(t, newStubOrderRepo(), &stubTxRunner{}, newStubCart(), &stubBooks{books: map[uuid.UUID]*models.Book{}})

	_, err := svc.Checkout(context.Background(), uuid.New(), "visitor", CheckoutInput{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestCheckoutRejectsCartWithOnlyStaleIDs(t *testing.T) {
	t.Parallel()

	cart := newStubCart()
	cart.items["visitor"] = map[string]int{uuid.NewString(): 2}
	svc := newOrderService(t, newStubOrderRepo(), &stubTxRunner{}, cart, &stubBooks{books: map[uuid.UUID]*models.Book{}})

	_, err := svc.Checkout(context.Background(), uuid.New(), "visitor", CheckoutInput{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("err = %v, want validation error", err)
	}
	if len(cart.cleared) != 0 {
		t.Fatal("cart must not be cleared when checkout fails")
	}
}

func TestUpdateStatus(t *testing.T) {
	t.Parallel()

	repo := newStubOrderRepo()
	order := &models.Order{CustomerID: uuid.New(), Status: enums.OrderStatusPending, TotalPrice: money("5.00")}
	if _, err := repo.Create(context.Background(), order); err != nil {
		t.Fatalf("seed order: %v", err)
	}
	svc := newOrderService(t, repo, &stubTxRunner{}, newStubCart(), &stubBooks{books: map[uuid.UUID]*models.Book{}})
	ctx := context.Background()

	got, err := svc.UpdateStatus(ctx, order.ID, "shipped")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if got.Status != enums.OrderStatusShipped {
		t.Fatalf("status = %s, want shipped", got.Status)
	}

	_, err = svc.UpdateStatus(ctx, order.ID, "teleported")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("invalid status err = %v, want validation", err)
	}

	_, err = svc.UpdateStatus(ctx, uuid.New(), "shipped")
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("missing order err = %v, want not found", err)
	}
}
