package client

// This file defines functional options that configure the Client during
// construction. All of them act on the Client before its transport is built,
// so nothing here can change a Client after New returns.

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Client during construction in New.
type Option func(*Client) error

// WithLogging turns the interception pipeline on or off. When enabled and no
// observer was supplied, a LogObserver writing to the client's logger is used.
func WithLogging(enabled bool) Option {
	return func(c *Client) error {
		c.cfg.EnableLogging = enabled
		return nil
	}
}

// WithCacheOptions replaces the cache policy.
func WithCacheOptions(o CacheOptions) Option {
	return func(c *Client) error {
		if err := o.policy().Validate(); err != nil {
			return err
		}
		c.cfg.Cache = o
		return nil
	}
}

// WithBaseURL sets the URL every endpoint template is resolved against.
func WithBaseURL(raw string) Option {
	return func(c *Client) error {
		if raw == "" {
			return fmt.Errorf("base url cannot be empty")
		}
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid base url %q: %w", raw, err)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("base url %q must be absolute", raw)
		}
		c.cfg.BaseURL = raw
		return nil
	}
}

// WithHTTPTimeout bounds each fetch, from sending the request to reading the
// last byte of the body. Expiry fails the fetch with a *TransportError
// wrapping context.DeadlineExceeded.
//
// A shorter deadline on the caller's context still wins. The value must be
// greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.cfg.HTTPTimeout = d
		return nil
	}
}

// WithHeader adds a default header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) error {
		if key == "" {
			return fmt.Errorf("header name cannot be empty")
		}
		c.headers[http.CanonicalHeaderKey(key)] = value
		return nil
	}
}

// WithTransport replaces the innermost round tripper. The cache and the
// observer are still layered on top of it.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) error {
		if rt == nil {
			return fmt.Errorf("transport cannot be nil")
		}
		c.base = rt
		return nil
	}
}

// WithObserver installs o as the interception sink and enables observation.
func WithObserver(o Observer) Option {
	return func(c *Client) error {
		if o == nil {
			return fmt.Errorf("observer cannot be nil")
		}
		c.observer = o
		c.cfg.EnableLogging = true
		return nil
	}
}

// WithLogger sets the logger used by the default LogObserver and by resty.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) error {
		c.logger = l
		return nil
	}
}
