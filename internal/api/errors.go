package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/homewise/affordability/internal/domain"
	"github.com/homewise/affordability/internal/ratesource"
	"go.uber.org/zap"
)

// Error kinds reported in the "kind" field of an error response.
const (
	KindInvalidInput     = "InvalidInput"
	KindRateUnavailable  = "RateUnavailable"
	KindMethodNotAllowed = "MethodNotAllowed"
	KindRateLimited      = "RateLimited"
	KindNotReady         = "NotReady"
	KindInternal         = "Internal"
)

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", zap.Int("status", status), zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, logger *zap.Logger, status int, kind, message, field string) {
	writeJSON(w, logger, status, errorResponse{Error: errorBody{Kind: kind, Message: message, Field: field}})
}

// writeErr maps err onto a status code and kind.
func writeErr(w http.ResponseWriter, logger *zap.Logger, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, logger, http.StatusBadRequest, KindInvalidInput, verr.Error(), verr.Field)
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, logger, http.StatusBadRequest, KindInvalidInput, err.Error(), "")
	case errors.Is(err, ratesource.ErrRateUnavailable):
		logger.Error("interest rate lookup failed", zap.Error(err))
		writeError(w, logger, http.StatusBadGateway, KindRateUnavailable, "current interest rate could not be retrieved", "")
	default:
		logger.Error("request failed", zap.Error(err))
		writeError(w, logger, http.StatusInternalServerError, KindInternal, "internal error", "")
	}
}

func methodNotAllowed(w http.ResponseWriter, logger *zap.Logger, allowed string) {
	w.Header().Set("Allow", allowed)
	writeError(w, logger, http.StatusMethodNotAllowed, KindMethodNotAllowed, "method not allowed", "")
}
