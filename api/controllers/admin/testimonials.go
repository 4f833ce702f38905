package admin

import (
	"net/http"

	"github.com/ninamwrites/bookstore-backend/api/responses"
	"github.com/ninamwrites/bookstore-backend/api/validators"
	testimonialsvc "github.com/ninamwrites/bookstore-backend/internal/testimonials"
	"github.com/ninamwrites/bookstore-backend/pkg/logger"
)

type testimonialModerateRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// TestimonialList serves every testimonial, visible or hidden, for moderation.
func TestimonialList(svc testimonialsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		testimonials, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"testimonials": testimonials})
	}
}

// TestimonialModerate toggles a testimonial's storefront visibility.
func TestimonialModerate(svc testimonialsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlParamID(r, "testimonialId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body testimonialModerateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.SetActive(r.Context(), id, *body.Active)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

func TestimonialDelete(svc testimonialsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlParamID(r, "testimonialId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
