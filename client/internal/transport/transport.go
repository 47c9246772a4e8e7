// Package transport builds the HTTP stack used by one SDK client.
//
// The stack, outermost first:
//
//	resty (base URL, default headers, query string, JSON decoding)
//	  observingTransport   only when an Observer is configured
//	  statusTransport      failures become *errors.TransportError
//	  httpcache.Transport  unless caching is disabled
//	  base round tripper   http.DefaultTransport unless overridden
package transport

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/jikan-go/jikan/client/internal/cache"
)

// DefaultTimeout bounds a single fetch when no timeout is configured. It is
// applied per call as a context deadline, never as http.Client.Timeout, so
// expiry surfaces through the stack as a *errors.TransportError.
const DefaultTimeout = 30 * time.Second

// Config describes one client's transport. It is consumed by New and never
// retained.
type Config struct {
	BaseURL  string
	Headers  map[string]string
	Base     http.RoundTripper
	Cache    cache.Policy
	Observer Observer
	Logger   zerolog.Logger
}

// New builds a resty client bound to cfg. It performs no network I/O.
func New(cfg Config) (*resty.Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base url cannot be empty")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", cfg.BaseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", cfg.BaseURL)
	}

	rt, err := Chain(cfg.Base, cfg.Cache, cfg.Observer)
	if err != nil {
		return nil, err
	}

	rc := resty.NewWithClient(&http.Client{Transport: rt}).
		SetBaseURL(cfg.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetLogger(restyLogger{l: cfg.Logger})
	for k, v := range cfg.Headers {
		rc.SetHeader(k, v)
	}
	return rc, nil
}

// Chain composes the round tripper stack beneath resty.
func Chain(base http.RoundTripper, policy cache.Policy, observer Observer) (http.RoundTripper, error) {
	if base == nil {
		base = http.DefaultTransport
	}
	rt := base
	if !policy.Disabled {
		ct, err := cache.NewTransport(rt, policy)
		if err != nil {
			return nil, err
		}
		rt = ct
	}
	rt = &statusTransport{next: rt}
	if observer != nil {
		rt = &observingTransport{next: rt, observer: observer}
	}
	return rt, nil
}

// restyLogger routes resty's internal warnings onto zerolog.
type restyLogger struct{ l zerolog.Logger }

func (r restyLogger) Errorf(format string, v ...interface{}) { r.l.Error().Msgf(format, v...) }
func (r restyLogger) Warnf(format string, v ...interface{})  { r.l.Warn().Msgf(format, v...) }
func (r restyLogger) Debugf(format string, v ...interface{}) { r.l.Debug().Msgf(format, v...) }
