package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every non-2xx API reply. Error is a stable
// snake_case code (client_not_found, validation_failed, ...). Detail carries
// per-field violation codes when there are any.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail any    `json:"detail,omitempty"`
}

// encodeFailure is written instead of a payload json.Marshal rejected.
var encodeFailure = []byte(`{"error":"encode_error"}`)

// JSON writes payload as the response body with the given status. The body is
// marshalled before any header goes out, so a payload that cannot be encoded
// turns into a 500 encode_error rather than a truncated document. A nil
// payload is written as null.
func JSON(w http.ResponseWriter, status int, payload any) {
	body := []byte("null")
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			status, b = http.StatusInternalServerError, encodeFailure
		}
		body = b
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// JSONError writes an ErrorResponse with code and optional detail.
func JSONError(w http.ResponseWriter, status int, code string, detail any) {
	JSON(w, status, ErrorResponse{Error: code, Detail: detail})
}

// NoContent writes a bare 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
