package http

import (
	"net/http"
	"time"

	"github.com/inkwellbooks/bookshop-login/internal/login/store"
	"github.com/inkwellbooks/bookshop-login/pkg/httpx"
	"github.com/inkwellbooks/bookshop-login/pkg/loginsdk"
	"github.com/inkwellbooks/bookshop-login/pkg/slogx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe: 200 when the database is reachable, 503 otherwise.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	loginsdk.HealthResponse	"status, uptime, version"
//	@Failure		503	{object}	loginsdk.HealthResponse	"database unreachable"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			slogx.FromContext(r.Context()).Error("readiness check failed", "err", err)
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, loginsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}
