package apperrors

import "errors"

// Code represents an error category independent of transport layer.
// These codes describe what went wrong in application terms, not HTTP terms.
type Code string

const (
	// CodeValidation covers client-side rejections (malformed date range,
	// missing required field) that must block submission before any
	// network call is made.
	CodeValidation Code = "validation_failed"

	// CodeRequest covers backend-rejected mutations (4xx excluding 401),
	// e.g. double-booking a room. The backend's detail message is carried
	// verbatim in Message.
	CodeRequest Code = "request_rejected"

	// CodeAuth covers 401 responses: the session is invalid or expired and
	// the caller must force a logout. Not retryable without
	// re-authentication.
	CodeAuth Code = "unauthorized"

	// CodeUnavailable covers 503 responses: a backend dependency is
	// temporarily down. Retryable, and distinct from validation failures.
	CodeUnavailable Code = "backend_unavailable"

	// CodeNetwork covers connection failures. The user-facing message
	// should suggest checking connectivity, not re-authentication.
	CodeNetwork Code = "network_error"

	// CodeTimeout covers requests abandoned on deadline expiry.
	CodeTimeout Code = "timeout"

	CodeNotFound Code = "not_found"
	CodeInternal Code = "internal_error"
)

// Error wraps application or infrastructure failures with a stable code.
// It is transport-agnostic and can be used across client, derivation, and
// view layers.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

// Unwrap implements error unwrapping for error chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is enables errors.Is() to match errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new application error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap creates a new application error wrapping an existing error.
// If the wrapped error is already an application error, the original code
// is preserved.
func Wrap(err error, code Code, msg string) error {
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Code: existing.Code, Message: msg, Err: err}
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode checks if an error is an application error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// Retryable reports whether the error represents a transient condition the
// caller may retry without changing the request.
func Retryable(err error) bool {
	return HasCode(err, CodeUnavailable) || HasCode(err, CodeNetwork) || HasCode(err, CodeTimeout)
}
