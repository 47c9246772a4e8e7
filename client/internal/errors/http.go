package errors

import "fmt"

// ClassifyHTTPStatus maps HTTP status codes to error categories:
// - 4xx client errors (except 408 and 429) are irrecoverable
// - 5xx server errors are recoverable
// - anything else unexpected is treated as recoverable
func ClassifyHTTPStatus(statusCode int) ErrorCategory {
	switch {
	case statusCode >= 400 && statusCode < 500:
		switch statusCode {
		case 408, 429:
			return Recoverable
		default:
			return Irrecoverable
		}
	case statusCode >= 500 && statusCode < 600:
		return Recoverable
	default:
		return Recoverable
	}
}

// NewHTTPError creates a transport error for a non-success response.
func NewHTTPError(method, url string, statusCode int, body string) *TransportError {
	return &TransportError{
		Category:   ClassifyHTTPStatus(statusCode),
		Method:     method,
		URL:        url,
		StatusCode: statusCode,
		Body:       body,
		Underlying: fmt.Errorf("unexpected status %d", statusCode),
	}
}

// NewNetworkError creates a transport error for a network-level failure.
// Network errors are always recoverable as they may be transient.
func NewNetworkError(method, url string, err error) *TransportError {
	return &TransportError{
		Category:   Recoverable,
		Method:     method,
		URL:        url,
		Underlying: err,
	}
}
