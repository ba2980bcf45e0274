// Package respond writes JSON responses and maps domain errors to HTTP
// statuses.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/icalorie/icalorie-server/internal/model"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

// WriteJSON writes a JSON response with the given status code. The payload
// is marshaled before the header goes out, so an unencodable value still
// yields a well-formed 500 body.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	buf, err := json.Marshal(data)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal Server Error","code":500}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf)
	_, _ = w.Write([]byte("\n"))
}

// WriteError writes a standardized error response
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	response := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Code:    statusCode,
		Message: message,
	}
	WriteJSON(w, statusCode, response)
}

// WriteBadRequest writes a 400 Bad Request response
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

// WriteNotFound writes a 404 Not Found response
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

// WriteInternalError writes a 500 Internal Server Error response
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message)
}

// WriteDomainError maps the model sentinels to their HTTP statuses.
// Unrecognized errors become 500s. Handlers that need a different mapping
// (login collapses unknown email and wrong password into one 401) handle
// those sentinels before calling this.
func WriteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrDuplicateEmail):
		WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, model.ErrUserNotFound):
		WriteNotFound(w, err.Error())
	case errors.Is(err, model.ErrInvalidCredentials):
		WriteError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, model.ErrMalformedBackup):
		WriteBadRequest(w, err.Error())
	case errors.Is(err, model.ErrRemoteAnalysis):
		WriteError(w, http.StatusBadGateway, err.Error())
	default:
		WriteInternalError(w, err.Error())
	}
}
