// Package domainerrors provides coded errors shared by services and the HTTP
// layer. Services create them, stores never do (stores return sentinels from
// pkg/platform/sentinel which services translate here).
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error for transport mapping and callers that
// branch on failure kind.
type Code string

const (
	// CodeBadRequest covers malformed requests (undecodable body, bad UUID).
	CodeBadRequest Code = "bad_request"
	// CodeValidation covers well-formed requests with invalid field values.
	CodeValidation Code = "validation"
	// CodeInvalidInput covers domain primitive parse failures (IDs, amounts).
	CodeInvalidInput Code = "invalid_input"
	// CodeNotFound means the primary row targeted by an operation is missing.
	CodeNotFound Code = "not_found"
	// CodeReferenceNotFound means a foreign key the request depends on does
	// not name an existing row at creation time.
	CodeReferenceNotFound Code = "reference_not_found"
	// CodeConflict covers uniqueness violations.
	CodeConflict Code = "conflict"
	// CodeInvariantViolation covers impossible entity states.
	CodeInvariantViolation Code = "invariant_violation"
	// CodeInternal covers unexpected store or infrastructure failures.
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error. Message is safe for operators; the HTTP
// layer decides whether it reaches clients.
type Error struct {
	Code    Code
	Message string
	wrapped error
}

func (e *Error) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.wrapped }

// New creates a coded error.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error, preserving the
// chain for errors.Is/As.
func Wrap(err error, code Code, message string) error {
	return &Error{Code: code, Message: message, wrapped: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	for errors.As(err, &de) {
		if de.Code == code {
			return true
		}
		err = de.wrapped
		if err == nil {
			return false
		}
	}
	return false
}

// Is is an alias of HasCode kept for call-site readability.
func Is(err error, code Code) bool { return HasCode(err, code) }

// Message returns the outermost domain message, or a generic fallback.
func Message(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "internal error"
}

// CodeOf returns the outermost code, defaulting to CodeInternal for errors
// that did not originate in a service.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a code to its HTTP status. Both not-found kinds map to
// 404; the body keeps them distinguishable by code.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeValidation, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeNotFound, CodeReferenceNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeInvariantViolation:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
