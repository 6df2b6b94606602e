package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/KaneTraylor/empowertreatment-sub000/internal/domain"
	"github.com/KaneTraylor/empowertreatment-sub000/internal/otp"
)

// Envelope is the generic response wrapper every endpoint returns.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Envelope{Success: false, Message: msg})
}

// httpError maps domain errors to HTTP responses. Configuration specifics
// never reach the client; they are logged where the error originated.
func httpError(w http.ResponseWriter, err error) {
	var rle *otp.RateLimitedError
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &rle):
		writeError(w, http.StatusTooManyRequests, rle.Error())
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, domain.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "too many requests")
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrConfig):
		writeError(w, http.StatusInternalServerError, "something went wrong on our end, please contact support")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
