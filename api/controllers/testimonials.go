package controllers

import (
	"net/http"

	"github.com/ninamwrites/bookstore-backend/api/middleware"
	"github.com/ninamwrites/bookstore-backend/api/responses"
	"github.com/ninamwrites/bookstore-backend/api/validators"
	testimonialsvc "github.com/ninamwrites/bookstore-backend/internal/testimonials"
	pkgerrors "github.com/ninamwrites/bookstore-backend/pkg/errors"
	"github.com/ninamwrites/bookstore-backend/pkg/logger"
)

type testimonialSubmitRequest struct {
	Content string `json:"content" validate:"required"`
	Rating  *int   `json:"rating" validate:"omitempty,min=1,max=5"`
}

// TestimonialList serves the approved testimonials shown on the storefront.
func TestimonialList(svc testimonialsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "testimonials service unavailable"))
			return
		}

		testimonials, err := svc.ListActive(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"testimonials": testimonials})
	}
}

// TestimonialSubmit accepts a testimonial from a customer with a delivered
// order.
func TestimonialSubmit(svc testimonialsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "testimonials service unavailable"))
			return
		}

		customerID, err := customerIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body testimonialSubmitRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Submit(r.Context(), customerID, middleware.CustomerNameFromContext(r.Context()), testimonialsvc.SubmitInput{
			Content: body.Content,
			Rating:  body.Rating,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}
