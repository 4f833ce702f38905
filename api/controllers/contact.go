package controllers

import (
	"fmt"
	"net/http"

	"github.com/ninamwrites/bookstore-backend/api/responses"
	"github.com/ninamwrites/bookstore-backend/api/validators"
	"github.com/ninamwrites/bookstore-backend/pkg/config"
	pkgerrors "github.com/ninamwrites/bookstore-backend/pkg/errors"
	"github.com/ninamwrites/bookstore-backend/pkg/logger"
	"github.com/ninamwrites/bookstore-backend/pkg/mailer"
)

type contactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// ContactSubmit forwards a contact form submission to the shop inbox.
func ContactSubmit(mail mailer.Mailer, cfg config.SMTPConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if mail == nil || cfg.ContactInbox == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contact mailer unavailable"))
			return
		}

		var body contactRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		subject := fmt.Sprintf("[Contact] %s", validators.SanitizeString(body.Subject, 200))
		message := fmt.Sprintf("From: %s <%s>\n\n%s", body.Name, body.Email, body.Message)

		if err := mail.Send(r.Context(), []string{cfg.ContactInbox}, subject, message); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deliver contact message"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "sent"})
	}
}
