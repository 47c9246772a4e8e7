package transport

import (
	"io"
	"net/http"

	"github.com/jikan-go/jikan/client/internal/errors"
)

// maxErrorBody bounds how much of a failed response is kept for diagnostics.
const maxErrorBody = 64 * 1024

// statusTransport turns network failures and non-success statuses into
// *errors.TransportError so every failure looks the same to observers and
// callers. Redirects that carry a Location pass through for http.Client to
// follow.
type statusTransport struct {
	next http.RoundTripper
}

func (t *statusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, errors.NewNetworkError(req.Method, req.URL.String(), err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return resp, nil
	}
	if resp.StatusCode >= 300 && resp.StatusCode <= 399 && resp.Header.Get("Location") != "" {
		return resp, nil
	}

	var body []byte
	if resp.Body != nil {
		body, _ = io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = resp.Body.Close()
	}
	return nil, errors.NewHTTPError(req.Method, req.URL.String(), resp.StatusCode, string(body))
}
