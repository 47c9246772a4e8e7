package client

import (
	"errors"

	clienterrors "github.com/jikan-go/jikan/client/internal/errors"
)

// Re-export the SDK error types so callers only import this package.
type (
	ValidationError = clienterrors.ValidationError
	TransportError  = clienterrors.TransportError
	DecodeError     = clienterrors.DecodeError
	ErrorCategory   = clienterrors.ErrorCategory
)

const (
	Recoverable   = clienterrors.Recoverable
	Irrecoverable = clienterrors.Irrecoverable
)

// IsValidation reports whether err is a path parameter validation failure.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsTransport reports whether err is a network failure or non-success status.
func IsTransport(err error) bool {
	var t *TransportError
	return errors.As(err, &t)
}

// IsDecode reports whether err is a response body decoding failure.
func IsDecode(err error) bool {
	var d *DecodeError
	return errors.As(err, &d)
}

// IsIrrecoverable reports whether err is a transport failure that will not
// succeed without changing the request.
func IsIrrecoverable(err error) bool { return clienterrors.IsIrrecoverable(err) }
