package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"reflect"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	clienterrors "github.com/jikan-go/jikan/client/internal/errors"
	"github.com/jikan-go/jikan/client/internal/template"
	"github.com/jikan-go/jikan/client/internal/transport"
)

// Fetcher retrieves one resource. Concrete resource clients hold a Fetcher
// rather than embedding Client.
type Fetcher interface {
	FetchResource(ctx context.Context, endpoint string, pathParams PathParams, queryParams QueryParams, out any) error
}

// Client is the base of every typed resource client. It owns one HTTP client,
// one cache storage and, when observed, one Observer. A Client is safe for
// concurrent use and immutable after New.
type Client struct {
	cfg      Config
	headers  map[string]string
	base     http.RoundTripper
	observer Observer
	logger   zerolog.Logger

	rest *resty.Client
}

var _ Fetcher = (*Client)(nil)

// New constructs a Client from DefaultConfig and opts.
// No network I/O happens during construction.
func New(opts ...Option) (*Client, error) {
	return NewFromConfig(DefaultConfig(), opts...)
}

// NewFromConfig constructs a Client from cfg, then applies opts on top.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	c := &Client{
		cfg:     cfg,
		headers: make(map[string]string),
		logger:  log.Logger,
	}
	if c.cfg.BaseURL == "" {
		c.cfg.BaseURL = DefaultBaseURL
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.cfg.HTTPTimeout <= 0 {
		c.cfg.HTTPTimeout = transport.DefaultTimeout
	}

	// Observation is decided once, here.
	if !c.cfg.EnableLogging {
		c.observer = nil
	} else if c.observer == nil {
		c.observer = NewLogObserver(c.logger)
	}

	rest, err := transport.New(transport.Config{
		BaseURL:  c.cfg.BaseURL,
		Headers:  c.headers,
		Base:     c.base,
		Cache:    c.cfg.Cache.policy(),
		Observer: c.observer,
		Logger:   c.logger,
	})
	if err != nil {
		return nil, err
	}
	c.rest = rest
	return c, nil
}

// BaseURL returns the URL endpoint templates are resolved against.
func (c *Client) BaseURL() string { return c.cfg.BaseURL }

// Observed reports whether the interception pipeline is installed.
func (c *Client) Observed() bool { return c.observer != nil }

// Config returns a copy of the effective configuration.
func (c *Client) Config() Config { return c.cfg }

// FetchResource resolves endpoint against pathParams, issues a GET with
// queryParams as the query string and decodes the JSON body into out.
//
// A path parameter without a placeholder fails with *ValidationError before
// any network activity. Network failures and non-success statuses fail with
// *TransportError, and an undecodable body with *DecodeError. The configured
// HTTP timeout bounds the whole call, body included.
func (c *Client) FetchResource(ctx context.Context, endpoint string, pathParams PathParams, queryParams QueryParams, out any) error {
	path, err := template.Resolve(endpoint, pathParams)
	if err != nil {
		fetchesTotal.WithLabelValues(outcomeValidationError).Inc()
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.HTTPTimeout)
	defer cancel()

	req := c.rest.R().
		SetContext(ctx).
		SetQueryParamsFromValues(encodeQuery(queryParams)).
		ForceContentType("application/json")
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Get(path)
	switch {
	case err == nil:
	case resp == nil:
		// resty failed before handing the request to the transport.
		err = unwrapURLError(err)
		if c.observer != nil {
			err = transport.RejectRequest(c.observer, err)
		}
		fetchesTotal.WithLabelValues(outcomeTransportError).Inc()
		return err
	case resp.RawResponse == nil:
		fetchesTotal.WithLabelValues(outcomeTransportError).Inc()
		return unwrapURLError(err)
	case isDecodeFailure(err):
		fetchesTotal.WithLabelValues(outcomeDecodeError).Inc()
		return &clienterrors.DecodeError{URL: resp.Request.URL, Underlying: err}
	default:
		// Headers arrived but the body could not be read.
		err = clienterrors.NewNetworkError(resp.Request.Method, resp.Request.URL, err)
		if c.observer != nil {
			err = transport.RejectResponse(c.observer, err)
		}
		fetchesTotal.WithLabelValues(outcomeTransportError).Inc()
		return err
	}

	if IsCachedResponse(resp.RawResponse) {
		fetchesTotal.WithLabelValues(outcomeCacheHit).Inc()
	} else {
		fetchesTotal.WithLabelValues(outcomeOK).Inc()
	}
	return nil
}

// Fetch is the typed form of FetchResource.
func Fetch[T any](ctx context.Context, f Fetcher, endpoint string, pathParams PathParams, queryParams QueryParams) (T, error) {
	var out T
	if err := f.FetchResource(ctx, endpoint, pathParams, queryParams, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// isDecodeFailure reports whether err came from unmarshalling a body that was
// read in full.
func isDecodeFailure(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var invalidErr *json.InvalidUnmarshalError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.As(err, &invalidErr)
}

// unwrapURLError removes the *url.Error http.Client adds, so callers receive
// the error the transport stack produced.
func unwrapURLError(err error) error {
	if ue, ok := err.(*url.Error); ok && ue.Err != nil {
		return ue.Err
	}
	return err
}

// encodeQuery turns QueryParams into url.Values. nil values are omitted and
// slices expand into repeated keys.
func encodeQuery(q QueryParams) url.Values {
	values := make(url.Values, len(q))
	for k, v := range q {
		if v == nil {
			continue
		}
		rv := reflect.ValueOf(v)
		for rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				break
			}
			rv = rv.Elem()
		}
		switch {
		case rv.Kind() == reflect.Pointer:
			continue
		case (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8:
			for i := 0; i < rv.Len(); i++ {
				values.Add(k, template.String(rv.Index(i).Interface()))
			}
		default:
			values.Add(k, template.String(rv.Interface()))
		}
	}
	return values
}
