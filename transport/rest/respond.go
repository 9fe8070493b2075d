package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rocketscienceinc/wordguess-backend/internal/apperror"
)

type errorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func (that *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

// respondError maps the error taxonomy onto the wire contract: validation
// failures surface as invalid-argument, everything else as internal.
func (that *Server) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	kind := "internal"
	message := "An unexpected error occurred."

	if errors.Is(err, apperror.ErrInvalidArgument) {
		status = http.StatusBadRequest
		kind = "invalid-argument"
		message = err.Error()
	}

	that.respondJSON(w, status, errorResponse{Error: errorBody{Status: kind, Message: message}})
}
