package response

import (
	"encoding/json"
	"net/http"

	"github.com/entryline/visitdesk/pkg/logger"
)

// Envelope is the uniform response shape for every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func write(w http.ResponseWriter, statusCode int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func OK(w http.ResponseWriter, data any, message string) {
	write(w, http.StatusOK, Envelope{Success: true, Data: data, Message: message})
}

func Created(w http.ResponseWriter, data any, message string) {
	write(w, http.StatusCreated, Envelope{Success: true, Data: data, Message: message})
}

func Fail(w http.ResponseWriter, statusCode int, errMsg string) {
	write(w, statusCode, Envelope{Success: false, Error: errMsg})
}

func BadRequest(w http.ResponseWriter, errMsg string) {
	Fail(w, http.StatusBadRequest, errMsg)
}

func Unauthorized(w http.ResponseWriter, errMsg string) {
	Fail(w, http.StatusUnauthorized, errMsg)
}

func Forbidden(w http.ResponseWriter, errMsg string) {
	Fail(w, http.StatusForbidden, errMsg)
}

func NotFound(w http.ResponseWriter, errMsg string) {
	Fail(w, http.StatusNotFound, errMsg)
}

func Conflict(w http.ResponseWriter, errMsg string) {
	Fail(w, http.StatusConflict, errMsg)
}

func InternalError(w http.ResponseWriter) {
	Fail(w, http.StatusInternalServerError, "Internal server error")
}
