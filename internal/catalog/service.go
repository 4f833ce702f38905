package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/ninamwrites/bookstore-backend/pkg/db"
	"github.com/ninamwrites/bookstore-backend/pkg/db/models"
	"github.com/ninamwrites/bookstore-backend/pkg/enums"
	pkgerrors "github.com/ninamwrites/bookstore-backend/pkg/errors"
)

const isbnUniqueConstraint = "idx_books_isbn"

type bookRepository interface {
	List(ctx context.Context) ([]models.Book, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Book, error)
	Create(ctx context.Context, book *models.Book) (*models.Book, error)
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type merchRepository interface {
	List(ctx context.Context) ([]models.Merchandise, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Merchandise, error)
	Create(ctx context.Context, item *models.Merchandise) (*models.Merchandise, error)
	Update(ctx context.Context, item *models.Merchandise) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes catalog operations for books and merchandise.
type Service interface {
	ListBooks(ctx context.Context) ([]*BookDTO, error)
	GetBook(ctx context.Context, id uuid.UUID) (*BookDTO, error)
	CreateBook(ctx context.Context, input CreateBookInput) (*BookDTO, error)
	UpdateBook(ctx context.Context, id uuid.UUID, input UpdateBookInput) (*BookDTO, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error

	ListMerch(ctx context.Context) (*MerchByCategory, error)
	CreateMerch(ctx context.Context, input CreateMerchInput) (*MerchDTO, error)
	UpdateMerch(ctx context.Context, id uuid.UUID, input UpdateMerchInput) (*MerchDTO, error)
	DeleteMerch(ctx context.Context, id uuid.UUID) error
}

type service struct {
	books bookRepository
	merch merchRepository
}

// NewService builds a catalog service with the provided repositories.
func NewService(books bookRepository, merch merchRepository) (Service, error) {
	if books == nil {
		return nil, fmt.Errorf("book repository required")
	}
	if merch == nil {
		return nil, fmt.Errorf("merch repository required")
	}
	return &service{books: books, merch: merch}, nil
}

func (s *service) ListBooks(ctx context.Context) ([]*BookDTO, error) {
	books, err := s.books.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list books")
	}
	out := make([]*BookDTO, len(books))
	for i := range books {
		out[i] = BookFromModel(&books[i])
	}
	return out, nil
}

func (s *service) GetBook(ctx context.Context, id uuid.UUID) (*BookDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "book id required")
	}
	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load book")
	}
	return BookFromModel(book), nil
}

func (s *service) CreateBook(ctx context.Context, input CreateBookInput) (*BookDTO, error) {
	if err := validateBookFields(input.Title, input.Author, input.Price.IsNegative(), input.StockQuantity); err != nil {
		return nil, err
	}

	book := &models.Book{
		Title:         strings.TrimSpace(input.Title),
		Author:        strings.TrimSpace(input.Author),
		Description:   input.Description,
		Price:         input.Price.Round(2),
		ImagePath:     input.ImagePath,
		PublishedDate: input.PublishedDate,
		StockQuantity: input.StockQuantity,
		ISBN:          normalizeISBN(input.ISBN),
	}

	created, err := s.books.Create(ctx, book)
	if err != nil {
		if db.IsUniqueViolation(err, isbnUniqueConstraint) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "a book with this ISBN already exists").
				WithDetails(map[string]string{"isbn": "already in use"})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create book")
	}
	return BookFromModel(created), nil
}

func (s *service) UpdateBook(ctx context.Context, id uuid.UUID, input UpdateBookInput) (*BookDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "book id required")
	}

	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load book")
	}

	if input.Title != nil {
		book.Title = strings.TrimSpace(*input.Title)
	}
	if input.Author != nil {
		book.Author = strings.TrimSpace(*input.Author)
	}
	if input.Description != nil {
		book.Description = *input.Description
	}
	if input.Price != nil {
		book.Price = input.Price.Round(2)
	}
	if input.ImagePath != nil {
		book.ImagePath = input.ImagePath
	}
	if input.PublishedDate != nil {
		book.PublishedDate = input.PublishedDate
	}
	if input.StockQuantity != nil {
		book.StockQuantity = *input.StockQuantity
	}
	if input.ISBN != nil {
		book.ISBN = normalizeISBN(input.ISBN)
	}

	if err := validateBookFields(book.Title, book.Author, book.Price.IsNegative(), book.StockQuantity); err != nil {
		return nil, err
	}

	if err := s.books.Update(ctx, book); err != nil {
		if db.IsUniqueViolation(err, isbnUniqueConstraint) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "a book with this ISBN already exists").
				WithDetails(map[string]string{"isbn": "already in use"})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update book")
	}
	return BookFromModel(book), nil
}

func (s *service) DeleteBook(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "book id required")
	}
	if err := s.books.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete book")
	}
	return nil
}

func (s *service) ListMerch(ctx context.Context) (*MerchByCategory, error) {
	items, err := s.merch.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list merchandise")
	}

	grouped := &MerchByCategory{
		Clothing:    []*MerchDTO{},
		Accessories: []*MerchDTO{},
	}
	for i := range items {
		dto := MerchFromModel(&items[i])
		switch items[i].Category {
		case enums.MerchCategoryClothing:
			grouped.Clothing = append(grouped.Clothing, dto)
		case enums.MerchCategoryAccessories:
			grouped.Accessories = append(grouped.Accessories, dto)
		}
	}
	return grouped, nil
}

func (s *service) CreateMerch(ctx context.Context, input CreateMerchInput) (*MerchDTO, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category must be clothing or accessories")
	}

	item := &models.Merchandise{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Price:       input.Price.Round(2),
		Category:    input.Category,
		ImagePath:   input.ImagePath,
		HasSizes:    input.HasSizes,
		Sizes:       normalizeSizes(input.HasSizes, input.Sizes),
	}

	created, err := s.merch.Create(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create merchandise")
	}
	return MerchFromModel(created), nil
}

func (s *service) UpdateMerch(ctx context.Context, id uuid.UUID, input UpdateMerchInput) (*MerchDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "merchandise id required")
	}

	item, err := s.merch.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "merchandise not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load merchandise")
	}

	if input.Title != nil {
		item.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		item.Description = input.Description
	}
	if input.Price != nil {
		item.Price = input.Price.Round(2)
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.ImagePath != nil {
		item.ImagePath = input.ImagePath
	}
	if input.HasSizes != nil {
		item.HasSizes = *input.HasSizes
	}
	if input.Sizes != nil {
		item.Sizes = pq.StringArray(*input.Sizes)
	}
	item.Sizes = normalizeSizes(item.HasSizes, item.Sizes)

	if item.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if item.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if !item.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category must be clothing or accessories")
	}

	if err := s.merch.Update(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update merchandise")
	}
	return MerchFromModel(item), nil
}

func (s *service) DeleteMerch(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "merchandise id required")
	}
	if err := s.merch.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "merchandise not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete merchandise")
	}
	return nil
}

func validateBookFields(title, author string, negativePrice bool, stock int) error {
	if strings.TrimSpace(title) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if strings.TrimSpace(author) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "author is required")
	}
	if negativePrice {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock quantity must not be negative")
	}
	return nil
}

func normalizeISBN(isbn *string) *string {
	if isbn == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*isbn)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func normalizeSizes(hasSizes bool, sizes pq.StringArray) pq.StringArray {
	if !hasSizes {
		return pq.StringArray{}
	}
	if sizes == nil {
		return pq.StringArray{}
	}
	return sizes
}
