package admin

import (
	"encoding/json"
	"log"
	"net/http"

	pkgerrors "github.com/ninamwrites/bookstore-backend/pkg/errors"
	"github.com/ninamwrites/bookstore-backend/pkg/logger"
)

// The admin catalog screens drive create/edit/delete through AJAX calls that
// predate the envelope API: {"success": true, "<entity>": {...}} on success
// and {"success": false, "error": string} on failure.
func writeAJAXSuccess(w http.ResponseWriter, status int, entity string, payload any) {
	body := map[string]any{"success": true}
	if entity != "" {
		body[entity] = payload
	}
	writeAJAX(w, status, body)
}

func writeAJAXError(r *http.Request, logg *logger.Logger, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "operation failed"

	if typed := pkgerrors.As(err); typed != nil {
		meta := pkgerrors.MetadataFor(typed.Code())
		status = meta.HTTPStatus
		message = meta.PublicMessage
		switch typed.Code() {
		case pkgerrors.CodeValidation, pkgerrors.CodeNotFound, pkgerrors.CodeConflict:
			if m := typed.Message(); m != "" {
				message = m
			}
		}
	}

	if logg != nil {
		logg.Error(r.Context(), "admin.error", err)
	}
	writeAJAX(w, status, map[string]any{"success": false, "error": message})
}

func writeAJAX(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
