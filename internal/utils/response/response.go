// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client.
// Rather than repeating the same three lines (set header, set status,
// encode JSON) in every handler, we centralise them here.
package response

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope returned for every error:
//
//	{ "error": "Menu item not found" }
type Response struct {
	Error string `json:"error"`
}

// Message is the envelope for success responses that carry no record:
//
//	{ "message": "Menu item deleted successfully" }
type Message struct {
	Message string `json:"message"`
}

// Status is the health check body.
type Status struct {
	Status string `json:"status"`
}

// ─────────────────────────────────────────────────────────────────────────────
// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
// ─────────────────────────────────────────────────────────────────────────────
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into the error envelope. The message
// goes to the client as-is.
func GeneralError(err error) Response {
	return Response{Error: err.Error()}
}

// Error builds the error envelope from a fixed message.
func Error(msg string) Response {
	return Response{Error: msg}
}
