// ABOUTME: JSON envelopes exchanged between the records API and its clients.
// ABOUTME: Success bodies carry code and message alongside records or a single record.

package api

import (
	"encoding/json"
	"net/http"

	"github.com/2389/realty/internal/listview"
)

// ListEnvelope is the body of GET /api/{resource}.
type ListEnvelope struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Records []listview.Row `json:"records"`
}

// RecordEnvelope is the body of single-record responses. Record is omitted
// for deletes.
type RecordEnvelope struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Record  listview.Row `json:"record,omitempty"`
}

// errorEnvelope is the client-side view of internal/errors.ErrorResponse.
type errorEnvelope struct {
	Code    int    `json:"code"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
	Field   string `json:"field"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
