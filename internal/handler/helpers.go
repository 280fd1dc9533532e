package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"organizeddocs/internal/domain"
	"organizeddocs/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var notFound *domain.NotFoundError

	switch {
	case errors.As(err, &notFound):
		httputil.RespondErrorWithExtras(w, http.StatusNotFound, err.Error(), map[string]interface{}{
			"resource_type": notFound.ResourceType,
			"resource_id":   notFound.ResourceID,
		})
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrUnsupportedScope):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		// Corrupt taxonomy lands here too; the detail stays in the log
		logger.Error("request failed",
			"error", err,
			"request_id", httputil.GetRequestID(r),
			"path", r.URL.Path,
			"corrupt_taxonomy", errors.Is(err, domain.ErrCorruptTaxonomy),
		)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
