package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ronesego-ui/captop/internal/adapter/http/dto"
	"github.com/ronesego-ui/captop/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	var invalid *domain.InvalidDecisionError
	var imbalance *domain.LedgerImbalanceError

	switch {
	case errors.Is(err, domain.ErrCompanyNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrPeriodNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrMacroUnavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.As(err, &imbalance):
		// Engine defect, not a client error: the close was not committed.
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
