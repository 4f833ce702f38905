package cart

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ninamwrites/bookstore-backend/pkg/db/models"
	pkgerrors "github.com/ninamwrites/bookstore-backend/pkg/errors"
)

// ErrItemNotInCart rejects update/remove of a book id the mapping does not
// hold; neither operation ever inserts.
var ErrItemNotInCart = pkgerrors.New(pkgerrors.CodeNotFound, "item not in cart")

// ErrInvalidQuantity rejects quantities that do not parse as an integer >= 1.
var ErrInvalidQuantity = pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive whole number")

type bookLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Book, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Book, error)
}

// MutationResult reports the cart state after an update/remove/add.
type MutationResult struct {
	Total decimal.Decimal
	Empty bool
}

// Line is one cart row resolved against the live catalog.
type Line struct {
	BookID    uuid.UUID       `json:"book_id"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	ImagePath *string         `json:"image_path,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Summary is the cart page payload. Lines always reflect live catalog prices.
type Summary struct {
	Lines      []Line          `json:"items"`
	TotalItems int             `json:"total_items"`
	Total      decimal.Decimal `json:"total"`
	Empty      bool            `json:"empty"`
}

// Service exposes session cart operations.
type Service interface {
	Get(ctx context.Context, sessionID string) (*Summary, error)
	Add(ctx context.Context, sessionID string, bookID uuid.UUID, quantity int) (*MutationResult, error)
	Update(ctx context.Context, sessionID, bookID, rawQuantity string) (*MutationResult, error)
	Remove(ctx context.Context, sessionID, bookID string) (*MutationResult, error)
	Items(ctx context.Context, sessionID string) (map[string]int, error)
	Clear(ctx context.Context, sessionID string) error
}

type service struct {
	sessions SessionStore
	books    bookLoader
}

// NewService builds a cart service over the session store and catalog reader.
func NewService(sessions SessionStore, books bookLoader) (Service, error) {
	if sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	if books == nil {
		return nil, fmt.Errorf("book loader required")
	}
	return &service{sessions: sessions, books: books}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*Summary, error) {
	items, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	books, err := s.resolveBooks(ctx, items)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Lines: []Line{},
		Total: decimal.Zero,
		Empty: len(items) == 0,
	}
	for id, qty := range items {
		summary.TotalItems += qty
		book, ok := books[id]
		if !ok {
			// Stale id: contributes nothing but stays in the mapping
			// until the visitor removes it.
			continue
		}
		lineTotal := book.Price.Mul(decimal.NewFromInt(int64(qty)))
		summary.Lines = append(summary.Lines, Line{
			BookID:    book.ID,
			Title:     book.Title,
			Author:    book.Author,
			ImagePath: book.ImagePath,
			UnitPrice: book.Price,
			Quantity:  qty,
			LineTotal: lineTotal,
		})
		summary.Total = summary.Total.Add(lineTotal)
	}
	summary.Total = summary.Total.Round(2)
	return summary, nil
}

func (s *service) Add(ctx context.Context, sessionID string, bookID uuid.UUID, quantity int) (*MutationResult, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if bookID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "book id required")
	}

	book, err := s.books.FindByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load book")
	}
	if !book.InStock() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "book is out of stock")
	}

	items, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	items[bookID.String()] += quantity

	return s.persist(ctx, sessionID, items)
}

func (s *service) Update(ctx context.Context, sessionID, bookID, rawQuantity string) (*MutationResult, error) {
	quantity, err := strconv.Atoi(strings.TrimSpace(rawQuantity))
	if err != nil || quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	items, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if _, ok := items[bookID]; !ok {
		return nil, ErrItemNotInCart
	}
	items[bookID] = quantity

	return s.persist(ctx, sessionID, items)
}

func (s *service) Remove(ctx context.Context, sessionID, bookID string) (*MutationResult, error) {
	items, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if _, ok := items[bookID]; !ok {
		return nil, ErrItemNotInCart
	}
	delete(items, bookID)

	return s.persist(ctx, sessionID, items)
}

func (s *service) Items(ctx context.Context, sessionID string) (map[string]int, error) {
	return s.load(ctx, sessionID)
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}
	if err := s.sessions.Clear(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func (s *service) load(ctx context.Context, sessionID string) (map[string]int, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}
	items, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return items, nil
}

func (s *service) persist(ctx context.Context, sessionID string, items map[string]int) (*MutationResult, error) {
	if err := s.sessions.Save(ctx, sessionID, items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	total, err := s.total(ctx, items)
	if err != nil {
		return nil, err
	}
	return &MutationResult{Total: total, Empty: len(items) == 0}, nil
}

// total sums price × quantity over every resolvable book id. Ids that no
// longer resolve contribute zero and are left in the mapping.
func (s *service) total(ctx context.Context, items map[string]int) (decimal.Decimal, error) {
	books, err := s.resolveBooks(ctx, items)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for id, qty := range items {
		book, ok := books[id]
		if !ok {
			continue
		}
		total = total.Add(book.Price.Mul(decimal.NewFromInt(int64(qty))))
	}
	return total.Round(2), nil
}

func (s *service) resolveBooks(ctx context.Context, items map[string]int) (map[string]models.Book, error) {
	ids := make([]uuid.UUID, 0, len(items))
	for raw := range items {
		id, err := uuid.Parse(raw)
		if err != nil {
			// Unparseable keys behave like unknown books.
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return map[string]models.Book{}, nil
	}

	books, err := s.books.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart books")
	}

	byID := make(map[string]models.Book, len(books))
	for _, book := range books {
		byID[book.ID.String()] = book
	}
	return byID, nil
}
