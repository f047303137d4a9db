// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler sends JSON back to the client. Rather than repeating the
// same three lines (set header, set status, encode JSON) in every handler,
// they live here.
package response

import (
	"encoding/json"
	"net/http"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is the envelope returned for error cases and confirmations.
//
// Success responses may return any JSON shape (a student, a list...).
// Error responses always look like:
//
//	{ "status": "error", "error": "request body is empty" }
//
// Validation failures add one message per field:
//
//	{ "status": "error", "error": "validation failed",
//	  "fields": { "name": "Name is required" } }
//
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Status  string            `json:"status"`
	Error   string            `json:"error,omitempty"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes data as JSON with the given HTTP status code.
// Headers must be set before WriteHeader, and WriteHeader before the body.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into the standard Response shape.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ValidationError reports per-field validation messages, keyed by the JSON
// field name.
func ValidationError(fields map[string]string) Response {
	return Response{
		Status: StatusError,
		Error:  "validation failed",
		Fields: fields,
	}
}

// OK returns a success envelope carrying a human-readable message.
func OK(message string) Response {
	return Response{
		Status:  StatusOK,
		Message: message,
	}
}
