package admin

import (
	"net/http"

	"github.com/ninamwrites/bookstore-backend/api/responses"
	"github.com/ninamwrites/bookstore-backend/api/validators"
	newslettersvc "github.com/ninamwrites/bookstore-backend/internal/newsletter"
	"github.com/ninamwrites/bookstore-backend/pkg/logger"
)

type newsletterSendRequest struct {
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// SubscriberList serves the newsletter audience for the staff screen.
func SubscriberList(svc newslettersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subscribers, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"subscribers": subscribers})
	}
}

// NewsletterSend fans a message out to every subscriber and reports the
// delivery tally.
func NewsletterSend(svc newslettersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body newsletterSendRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.Send(r.Context(), body.Subject, body.Message)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, report)
	}
}
