package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ninamwrites/bookstore-backend/pkg/db/models"
	"github.com/ninamwrites/bookstore-backend/pkg/enums"
	pkgerrors "github.com/ninamwrites/bookstore-backend/pkg/errors"
)

type stubBookRepo struct {
	books     map[uuid.UUID]*models.Book
	createErr error
	updateErr error
}

func newStubBookRepo(books ...*models.Book) *stubBookRepo {
	repo := &stubBookRepo{books: map[uuid.UUID]*models.Book{}}
	for _, b := range books {
		repo.books[b.ID] = b
	}
	return repo
}

func (s *stubBookRepo) List(context.Context) ([]models.Book, error) {
	out := make([]models.Book, 0, len(s.books))
	for _, b := range s.books {
		out = append(out, *b)
	}
	return out, nil
}

func (s *stubBookRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Book, error) {
	if b, ok := s.books[id]; ok {
		cpy := *b
		return &cpy, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubBookRepo) Create(_ context.Context, book *models.Book) (*models.Book, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	book.ID = uuid.New()
	s.books[book.ID] = book
	return book, nil
}

func (s *stubBookRepo) Update(_ context.Context, book *models.Book) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.books[book.ID] = book
	return nil
}

func (s *stubBookRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.books[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.books, id)
	return nil
}

type stubMerchRepo struct {
	items map[uuid.UUID]*models.Merchandise
}

func newStubMerchRepo(items ...*models.Merchandise) *stubMerchRepo {
	repo := &stubMerchRepo{items: map[uuid.UUID]*models.Merchandise{}}
	for _, m := range items {
		repo.items[m.ID] = m
	}
	return repo
}

func (s *stubMerchRepo) List(context.Context) ([]models.Merchandise, error) {
	out := make([]models.Merchandise, 0, len(s.items))
	for _, m := range s.items {
		out = append(out, *m)
	}
	return out, nil
}

func (s *stubMerchRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Merchandise, error) {
	if m, ok := s.items[id]; ok {
		cpy := *m
		return &cpy, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubMerchRepo) Create(_ context.Context, item *models.Merchandise) (*models.Merchandise, error) {
	item.ID = uuid.New()
	s.items[item.ID] = item
	return item, nil
}

func (s *stubMerchRepo) Update(_ context.Context, item *models.Merchandise) error {
	s.items[item.ID] = item
	return nil
}

func (s *stubMerchRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.items, id)
	return nil
}

func newCatalogService(t *testing.T, books bookRepository, merch merchRepository) Service {
	t.Helper()
	svc, err := NewService(books, merch)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestCreateBookValidation(t *testing.T) {
	t.Parallel()

	svc := newCatalogService(t, newStubBookRepo(), newStubMerchRepo())

	_, err := svc.CreateBook(context.Background(), CreateBookInput{Author: "A"})
	assertCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreateBook(context.Background(), CreateBookInput{
		Title:  "Nightfall",
		Author: "A",
		Price:  decimal.NewFromInt(-1),
	})
	assertCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreateBook(context.Background(), CreateBookInput{
		Title:         "Nightfall",
		Author:        "A",
		Price:         decimal.NewFromInt(10),
		StockQuantity: -5,
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateBookDuplicateISBN(t *testing.T) {
	t.Parallel()

	repo := newStubBookRepo()
	repo.createErr = &pgconn.PgError{Code: "23505", ConstraintName: isbnUniqueConstraint}
	svc := newCatalogService(t, repo, newStubMerchRepo())

	isbn := "9780143127741"
	_, err := svc.CreateBook(context.Background(), CreateBookInput{
		Title:  "Dup",
		Author: "A",
		Price:  decimal.NewFromInt(12),
		ISBN:   &isbn,
	})
	assertCode(t, err, pkgerrors.CodeValidation)

	typed := pkgerrors.As(err)
	details, ok := typed.Details().(map[string]string)
	if !ok || details["isbn"] == "" {
		t.Fatalf("expected isbn field in details, got %#v", typed.Details())
	}
}

func TestCreateBookBlankISBNStored_AsNull(t *testing.T) {
	t.Parallel()

	repo := newStubBookRepo()
	svc := newCatalogService(t, repo, newStubMerchRepo())

	isbn := "   "
	dto, err := svc.CreateBook(context.Background(), CreateBookInput{
		Title:  "No ISBN",
		Author: "A",
		Price:  decimal.NewFromFloat(9.99),
		ISBN:   &isbn,
	})
	if err != nil {
		t.Fatalf("CreateBook: %v", err)
	}
	if dto.ISBN != nil {
		t.Fatalf("expected blank isbn stored as nil, got %q", *dto.ISBN)
	}
}

func TestUpdateBookPartial(t *testing.T) {
	t.Parallel()

	book := &models.Book{
		ID:            uuid.New(),
		Title:         "Old Title",
		Author:        "Author",
		Price:         decimal.NewFromFloat(12.50),
		StockQuantity: 3,
	}
	repo := newStubBookRepo(book)
	svc := newCatalogService(t, repo, newStubMerchRepo())

	newTitle := "New Title"
	dto, err := svc.UpdateBook(context.Background(), book.ID, UpdateBookInput{Title: &newTitle})
	if err != nil {
		t.Fatalf("UpdateBook: %v", err)
	}
	if dto.Title != newTitle {
		t.Fatalf("title = %q, want %q", dto.Title, newTitle)
	}
	if !dto.Price.Equal(decimal.NewFromFloat(12.50)) {
		t.Fatalf("price changed unexpectedly: %s", dto.Price)
	}
}

func TestGetBookNotFound(t *testing.T) {
	t.Parallel()

	svc := newCatalogService(t, newStubBookRepo(), newStubMerchRepo())
	_, err := svc.GetBook(context.Background(), uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestInStockDerivation(t *testing.T) {
	t.Parallel()

	inStock := &models.Book{ID: uuid.New(), Title: "A", Author: "a", StockQuantity: 1, Price: decimal.NewFromInt(5)}
	soldOut := &models.Book{ID: uuid.New(), Title: "B", Author: "b", StockQuantity: 0, Price: decimal.NewFromInt(5)}
	svc := newCatalogService(t, newStubBookRepo(inStock, soldOut), newStubMerchRepo())

	got, err := svc.GetBook(context.Background(), inStock.ID)
	if err != nil {
		t.Fatalf("GetBook: %v", err)
	}
	if !got.InStock {
		t.Fatal("expected in_stock true for positive stock")
	}

	got, err = svc.GetBook(context.Background(), soldOut.ID)
	if err != nil {
		t.Fatalf("GetBook: %v", err)
	}
	if got.InStock {
		t.Fatal("expected in_stock false for zero stock")
	}
}

func TestListMerchGroupsByCategory(t *testing.T) {
	t.Parallel()

	shirt := &models.Merchandise{
		ID:       uuid.New(),
		Title:    "Tote Shirt",
		Price:    decimal.NewFromInt(20),
		Category: enums.MerchCategoryClothing,
		HasSizes: true,
		Sizes:    []string{"S", "M", "L"},
	}
	mug := &models.Merchandise{
		ID:       uuid.New(),
		Title:    "Reader Mug",
		Price:    decimal.NewFromInt(8),
		Category: enums.MerchCategoryAccessories,
	}
	svc := newCatalogService(t, newStubBookRepo(), newStubMerchRepo(shirt, mug))

	grouped, err := svc.ListMerch(context.Background())
	if err != nil {
		t.Fatalf("ListMerch: %v", err)
	}
	if len(grouped.Clothing) != 1 || grouped.Clothing[0].Title != "Tote Shirt" {
		t.Fatalf("unexpected clothing group: %+v", grouped.Clothing)
	}
	if len(grouped.Accessories) != 1 || grouped.Accessories[0].Title != "Reader Mug" {
		t.Fatalf("unexpected accessories group: %+v", grouped.Accessories)
	}
	if len(grouped.Clothing[0].Sizes) != 3 {
		t.Fatalf("expected sizes preserved, got %v", grouped.Clothing[0].Sizes)
	}
}

func TestCreateMerchInvalidCategory(t *testing.T) {
	t.Parallel()

	svc := newCatalogService(t, newStubBookRepo(), newStubMerchRepo())
	_, err := svc.CreateMerch(context.Background(), CreateMerchInput{
		Title:    "Poster",
		Price:    decimal.NewFromInt(5),
		Category: enums.MerchCategory("posters"),
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateMerchDropsSizesWithoutFlag(t *testing.T) {
	t.Parallel()

	svc := newCatalogService(t, newStubBookRepo(), newStubMerchRepo())
	dto, err := svc.CreateMerch(context.Background(), CreateMerchInput{
		Title:    "Sticker",
		Price:    decimal.NewFromInt(3),
		Category: enums.MerchCategoryAccessories,
		HasSizes: false,
		Sizes:    []string{"S"},
	})
	if err != nil {
		t.Fatalf("CreateMerch: %v", err)
	}
	if len(dto.Sizes) != 0 {
		t.Fatalf("expected sizes to be dropped when has_sizes is false, got %v", dto.Sizes)
	}
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected coded error, got %v", err)
	}
	if typed.Code() != code {
		t.Fatalf("code = %s, want %s", typed.Code(), code)
	}
}
