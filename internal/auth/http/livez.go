package http

import (
	"net/http"
	"time"

	"github.com/salescrm/auth/pkg/authapi"
	"github.com/salescrm/auth/pkg/httpx"
)

// LivezHandler is the liveness probe. It returns 200 whenever the process
// is up.
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := authapi.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		}
		httpx.WriteJSON(w, http.StatusOK, response)
	}
}
