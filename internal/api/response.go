package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gyaneshwarpardhi/opsdash/internal/action"
	"github.com/gyaneshwarpardhi/opsdash/internal/engine"
	"github.com/gyaneshwarpardhi/opsdash/internal/intent"
)

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorResponse is the standard error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// dispatchStatus maps a dispatch error to its HTTP status.
func dispatchStatus(err error) int {
	switch {
	case errors.Is(err, intent.ErrMissingKind),
		errors.Is(err, action.ErrUnknownKind),
		errors.Is(err, action.ErrInvalidPayload):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrQueueFull):
		return http.StatusTooManyRequests
	case errors.Is(err, engine.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, engine.ErrShutdown):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// resultStatus maps an executed intent to its HTTP status.
func resultStatus(res *action.Result) int {
	switch {
	case res.Errors != nil:
		return http.StatusUnprocessableEntity
	case !res.Applied:
		return http.StatusNotFound
	default:
		return http.StatusOK
	}
}
