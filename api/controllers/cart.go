package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/ninamwrites/bookstore-backend/api/middleware"
	"github.com/ninamwrites/bookstore-backend/api/responses"
	"github.com/ninamwrites/bookstore-backend/api/validators"
	cartsvc "github.com/ninamwrites/bookstore-backend/internal/cart"
	pkgerrors "github.com/ninamwrites/bookstore-backend/pkg/errors"
	"github.com/ninamwrites/bookstore-backend/pkg/logger"
)

// The cart mutation endpoints keep the storefront's historical AJAX contract:
// {"success": true, "total": number, "empty": bool} on success and
// {"success": false, "message": string} on failure, with total as a plain
// JSON number rather than a decimal string.
type cartMutationResponse struct {
	Success bool    `json:"success"`
	Total   float64 `json:"total"`
	Empty   bool    `json:"empty"`
}

type cartFailureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type cartAddRequest struct {
	BookID   uuid.UUID `json:"book_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"required,min=1"`
}

type cartUpdateRequest struct {
	BookID   string `json:"book_id" validate:"required"`
	Quantity string `json:"quantity" validate:"required"`
}

type cartRemoveRequest struct {
	BookID string `json:"book_id" validate:"required"`
}

// CartView returns the current session cart priced against the live catalog.
func CartView(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing"))
			return
		}

		summary, err := svc.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, summary)
	}
}

func CartAdd(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if svc == nil || sessionID == "" {
			writeCartFailure(w, http.StatusInternalServerError, "cart unavailable")
			return
		}

		var body cartAddRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			writeCartError(r, logg, w, err)
			return
		}

		result, err := svc.Add(r.Context(), sessionID, body.BookID, body.Quantity)
		if err != nil {
			writeCartError(r, logg, w, err)
			return
		}

		writeCartMutation(w, result)
	}
}

func CartUpdate(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if svc == nil || sessionID == "" {
			writeCartFailure(w, http.StatusInternalServerError, "cart unavailable")
			return
		}

		var body cartUpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			writeCartError(r, logg, w, err)
			return
		}

		// Quantity passes through as a raw string: the service owns parsing
		// so "abc" and "0" both surface as InvalidQuantity.
		result, err := svc.Update(r.Context(), sessionID, body.BookID, body.Quantity)
		if err != nil {
			writeCartError(r, logg, w, err)
			return
		}

		writeCartMutation(w, result)
	}
}

func CartRemove(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if svc == nil || sessionID == "" {
			writeCartFailure(w, http.StatusInternalServerError, "cart unavailable")
			return
		}

		var body cartRemoveRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			writeCartError(r, logg, w, err)
			return
		}

		result, err := svc.Remove(r.Context(), sessionID, body.BookID)
		if err != nil {
			writeCartError(r, logg, w, err)
			return
		}

		writeCartMutation(w, result)
	}
}

func writeCartMutation(w http.ResponseWriter, result *cartsvc.MutationResult) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(cartMutationResponse{
		Success: true,
		Total:   result.Total.InexactFloat64(),
		Empty:   result.Empty,
	})
}

func writeCartError(r *http.Request, logg *logger.Logger, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "cart operation failed"

	if typed := pkgerrors.As(err); typed != nil {
		meta := pkgerrors.MetadataFor(typed.Code())
		status = meta.HTTPStatus
		message = meta.PublicMessage
		switch typed.Code() {
		case pkgerrors.CodeValidation, pkgerrors.CodeNotFound:
			if m := typed.Message(); m != "" {
				message = m
			}
		}
	}

	if logg != nil {
		logg.Error(r.Context(), "cart.error", err)
	}
	writeCartFailure(w, status, message)
}

func writeCartFailure(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(cartFailureResponse{Success: false, Message: message})
}
