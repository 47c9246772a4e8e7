// Package errors provides the error taxonomy for the client SDK.
// Validation failures happen before any I/O; transport failures carry enough
// metadata for callers and observers to classify them.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory tells callers whether a transport failure is worth retrying.
// The SDK itself never retries; the category is informational.
type ErrorCategory int

const (
	// Recoverable failures may succeed later.
	// Examples: 500 Internal Server Error, 429 Too Many Requests, connection resets.
	Recoverable ErrorCategory = iota

	// Irrecoverable failures will not succeed without changing the request.
	// Examples: 400 Bad Request, 404 Not Found.
	Irrecoverable
)

// String returns a human-readable representation of the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// ValidationError reports a path parameter that has no placeholder in the
// endpoint template.
type ValidationError struct {
	Param    string // offending parameter name
	Template string // endpoint template as supplied
	Reason   string // optional detail; empty means "missing placeholder"
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("path %q: parameter %q %s", e.Template, e.Param, e.Reason)
	}
	return fmt.Sprintf("path %q does not contain %q parameter", e.Template, e.Param)
}

// TransportError wraps a network failure or a non-success HTTP status.
type TransportError struct {
	Category   ErrorCategory
	Method     string
	URL        string
	StatusCode int    // 0 for network-level failures
	Body       string // response body for debugging, possibly truncated
	Underlying error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("[%s] %s %s: HTTP %d: %v", e.Category, e.Method, e.URL, e.StatusCode, e.Underlying)
	}
	return fmt.Sprintf("[%s] %s %s: %v", e.Category, e.Method, e.URL, e.Underlying)
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *TransportError) Unwrap() error {
	return e.Underlying
}

// DecodeError reports a response body that could not be decoded into the
// caller's result type.
type DecodeError struct {
	URL        string
	Underlying error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.URL, e.Underlying)
}

// Unwrap returns the underlying decoder error.
func (e *DecodeError) Unwrap() error {
	return e.Underlying
}

// IsIrrecoverable returns true if err is a transport failure that will not
// succeed on a later attempt.
func IsIrrecoverable(err error) bool {
	var te *TransportError
	if stderrors.As(err, &te) {
		return te.Category == Irrecoverable
	}
	return false
}
