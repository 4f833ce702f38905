package admin

import (
	"net/http"

	"github.com/ninamwrites/bookstore-backend/api/responses"
	"github.com/ninamwrites/bookstore-backend/api/validators"
	"github.com/ninamwrites/bookstore-backend/internal/catalog"
	"github.com/ninamwrites/bookstore-backend/pkg/enums"
	pkgerrors "github.com/ninamwrites/bookstore-backend/pkg/errors"
	"github.com/ninamwrites/bookstore-backend/pkg/logger"
)

type merchCreateRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description *string  `json:"description"`
	Price       string   `json:"price" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	ImagePath   *string  `json:"image_path"`
	HasSizes    bool     `json:"has_sizes"`
	Sizes       []string `json:"sizes"`
}

type merchUpdateRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Price       *string   `json:"price"`
	Category    *string   `json:"category"`
	ImagePath   *string   `json:"image_path"`
	HasSizes    *bool     `json:"has_sizes"`
	Sizes       *[]string `json:"sizes"`
}

// MerchList serves all merchandise grouped by category for the staff screen.
func MerchList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merch, err := svc.ListMerch(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, merch)
	}
}

func MerchCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body merchCreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			writeAJAXError(r, logg, w, err)
			return
		}

		price, err := parsePrice(body.Price)
		if err != nil {
			writeAJAXError(r, logg, w, err)
			return
		}
		category, err := enums.ParseMerchCategory(body.Category)
		if err != nil {
			writeAJAXError(r, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
			return
		}

		item, err := svc.CreateMerch(r.Context(), catalog.CreateMerchInput{
			Title:       body.Title,
			Description: body.Description,
			Price:       price,
			Category:    category,
			ImagePath:   body.ImagePath,
			HasSizes:    body.HasSizes,
			Sizes:       body.Sizes,
		})
		if err != nil {
			writeAJAXError(r, logg, w, err)
			return
		}

		writeAJAXSuccess(w, http.StatusCreated, "merch", item)
	}
}

func MerchUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlParamID(r, "merchId")
		if err != nil {
			writeAJAXError(r, logg, w, err)
			return
		}

		var body merchUpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			writeAJAXError(r, logg, w, err)
			return
		}

		input := catalog.UpdateMerchInput{
			Title:       body.Title,
			Description: body.Description,
			ImagePath:   body.ImagePath,
			HasSizes:    body.HasSizes,
			Sizes:       body.Sizes,
		}
		if body.Price != nil {
			price, err := parsePrice(*body.Price)
			if err != nil {
				writeAJAXError(r, logg, w, err)
				return
			}
			input.Price = &price
		}
		if body.Category != nil {
			category, err := enums.ParseMerchCategory(*body.Category)
			if err != nil {
				writeAJAXError(r, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
				return
			}
			input.Category = &category
		}

		item, err := svc.UpdateMerch(r.Context(), id, input)
		if err != nil {
			writeAJAXError(r, logg, w, err)
			return
		}

		writeAJAXSuccess(w, http.StatusOK, "merch", item)
	}
}

func MerchDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlParamID(r, "merchId")
		if err != nil {
			writeAJAXError(r, logg, w, err)
			return
		}

		if err := svc.DeleteMerch(r.Context(), id); err != nil {
			writeAJAXError(r, logg, w, err)
			return
		}

		writeAJAXSuccess(w, http.StatusOK, "", nil)
	}
}
