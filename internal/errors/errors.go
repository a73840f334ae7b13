// ABOUTME: Standardized error envelope and helpers for HTTP handlers.
// ABOUTME: Error bodies share the {code, message} shape of the records API envelope.

package errors

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the error body written by every JSON handler. Code mirrors
// the HTTP status so clients can read success and failure envelopes alike.
//
// Usage:
//
//	WriteError(w, http.StatusNotFound, ErrUnknownResource, "No resource named widgets")
type ErrorResponse struct {
	Code    int    `json:"code"`              // HTTP status code
	Reason  string `json:"reason"`            // Machine-readable reason (e.g. "not_found")
	Message string `json:"message"`           // Human-readable message
	Field   string `json:"field,omitempty"`   // Field that failed validation
	Details string `json:"details,omitempty"` // Extra context, never shown in the console
}

// WriteError writes an error envelope with the given status and reason.
func WriteError(w http.ResponseWriter, status int, reason, message string) {
	writeErrorResponse(w, ErrorResponse{
		Code:    status,
		Reason:  reason,
		Message: message,
	})
}

// WriteErrorWithField writes a validation error pointing at one field.
//
// Example:
//
//	WriteErrorWithField(w, http.StatusBadRequest, ErrMissingField, "Name is required", "name")
func WriteErrorWithField(w http.ResponseWriter, status int, reason, message, field string) {
	writeErrorResponse(w, ErrorResponse{
		Code:    status,
		Reason:  reason,
		Message: message,
		Field:   field,
	})
}

// WriteErrorWithDetails writes an error with additional context.
func WriteErrorWithDetails(w http.ResponseWriter, status int, reason, message, details string) {
	writeErrorResponse(w, ErrorResponse{
		Code:    status,
		Reason:  reason,
		Message: message,
		Details: details,
	})
}

func writeErrorResponse(w http.ResponseWriter, resp ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Code)
	json.NewEncoder(w).Encode(resp)
}

// Reasons used across handlers
const (
	ErrInvalidBody     = "invalid_request_body"
	ErrMissingField    = "missing_field"
	ErrNotFound        = "not_found"
	ErrUnknownResource = "unknown_resource"
	ErrUnauthorized    = "unauthorized"

	ErrInternal      = "internal_error"
	ErrDatabaseError = "database_error"
)
