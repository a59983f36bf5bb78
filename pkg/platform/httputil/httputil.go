// Package httputil centralizes request decoding and response envelopes so
// feature handlers stay thin and error bodies stay consistent.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "enrollhub/pkg/domain-errors"
)

// Validatable is implemented by request structs that validate and parse
// their own fields after decoding.
type Validatable interface {
	Validate() error
}

// DecodeAndPrepare decodes a JSON body into req and runs its validation.
// Unknown fields are rejected so typos fail loudly at the boundary.
func DecodeAndPrepare(r *http.Request, req Validatable) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvalidInput) {
			return err
		}
		return dErrors.New(dErrors.CodeBadRequest, "invalid request body")
	}
	return req.Validate()
}

// WriteJSON writes a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError translates a domain error into the JSON error envelope.
// Internal errors omit the description so store details never leak.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	body := map[string]string{"error": string(code)}
	if code != dErrors.CodeInternal {
		body["error_description"] = dErrors.Message(err)
	}
	WriteJSON(w, dErrors.ToHTTPStatus(code), body)
}
