package admin

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ninamwrites/bookstore-backend/api/responses"
	"github.com/ninamwrites/bookstore-backend/api/validators"
	"github.com/ninamwrites/bookstore-backend/internal/catalog"
	pkgerrors "github.com/ninamwrites/bookstore-backend/pkg/errors"
	"github.com/ninamwrites/bookstore-backend/pkg/logger"
)

const publishedDateLayout = "2006-01-02"

type bookCreateRequest struct {
	Title         string  `json:"title" validate:"required"`
	Author        string  `json:"author" validate:"required"`
	Description   string  `json:"description"`
	Price         string  `json:"price" validate:"required"`
	ImagePath     *string `json:"image_path"`
	PublishedDate *string `json:"published_date"`
	StockQuantity int     `json:"stock_quantity" validate:"min=0"`
	ISBN          *string `json:"isbn"`
}

type bookUpdateRequest struct {
	Title         *string `json:"title"`
	Author        *string `json:"author"`
	Description   *string `json:"description"`
	Price         *string `json:"price"`
	ImagePath     *string `json:"image_path"`
	PublishedDate *string `json:"published_date"`
	StockQuantity *int    `json:"stock_quantity"`
	ISBN          *string `json:"isbn"`
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "price must be a decimal number")
	}
	return price, nil
}

func parsePublishedDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(publishedDateLayout, *raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "published_date must be YYYY-MM-DD")
	}
	return &parsed, nil
}

func urlParamID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	return id, nil
}

// BookList serves the full catalog for the staff book screen.
func BookList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		books, err := svc.ListBooks(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"books": books})
	}
}

func BookCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body bookCreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			writeAJAXError(r, logg, w, err)
			return
		}

		price, err := parsePrice(body.Price)
		if err != nil {
			writeAJAXError(r, logg, w, err)
			return
		}
		published, err := parsePublishedDate(body.PublishedDate)
		if err != nil {
			writeAJAXError(r, logg, w, err)
			return
		}

		book, err := svc.CreateBook(r.Context(), catalog.CreateBookInput{
			Title:         body.Title,
			Author:        body.Author,
			Description:   body.Description,
			Price:         price,
			ImagePath:     body.ImagePath,
			PublishedDate: published,
			StockQuantity: body.StockQuantity,
			ISBN:          body.ISBN,
		})
		if err != nil {
			writeAJAXError(r, logg, w, err)
			return
		}

		writeAJAXSuccess(w, http.StatusCreated, "book", book)
	}
}

func BookUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlParamID(r, "bookId")
		if err != nil {
			writeAJAXError(r, logg, w, err)
			return
		}

		var body bookUpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			writeAJAXError(r, logg, w, err)
			return
		}

		input := catalog.UpdateBookInput{
			Title:         body.Title,
			Author:        body.Author,
			Description:   body.Description,
			ImagePath:     body.ImagePath,
			StockQuantity: body.StockQuantity,
			ISBN:          body.ISBN,
		}
		if body.Price != nil {
			price, err := parsePrice(*body.Price)
			if err != nil {
				writeAJAXError(r, logg, w, err)
				return
			}
			input.Price = &price
		}
		if body.PublishedDate != nil {
			published, err := parsePublishedDate(body.PublishedDate)
			if err != nil {
				writeAJAXError(r, logg, w, err)
				return
			}
			input.PublishedDate = published
		}

		book, err := svc.UpdateBook(r.Context(), id, input)
		if err != nil {
			writeAJAXError(r, logg, w, err)
			return
		}

		writeAJAXSuccess(w, http.StatusOK, "book", book)
	}
}

func BookDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlParamID(r, "bookId")
		if err != nil {
			writeAJAXError(r, logg, w, err)
			return
		}

		if err := svc.DeleteBook(r.Context(), id); err != nil {
			writeAJAXError(r, logg, w, err)
			return
		}

		writeAJAXSuccess(w, http.StatusOK, "", nil)
	}
}
