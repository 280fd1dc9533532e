package handler

import (
	"net/http"

	"organizeddocs/internal/httputil"
)

// HealthCheck reports liveness and the active storage backend
// GET /health
func HealthCheck(backend string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"backend": backend,
		})
	}
}
