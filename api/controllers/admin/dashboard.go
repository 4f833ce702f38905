package admin

import (
	"net/http"

	"github.com/ninamwrites/bookstore-backend/api/responses"
	dashboardsvc "github.com/ninamwrites/bookstore-backend/internal/dashboard"
	"github.com/ninamwrites/bookstore-backend/pkg/logger"
)

// Dashboard serves the staff landing page counts and monthly charts.
func Dashboard(svc dashboardsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		overview, err := svc.Overview(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, overview)
	}
}
