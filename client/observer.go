package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httputil"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ObserverFuncs adapts optional functions into an Observer. A nil field
// passes its value through unchanged.
type ObserverFuncs struct {
	OnRequest       func(*http.Request) (*http.Request, error)
	OnRequestError  func(error) error
	OnResponse      func(*http.Response) (*http.Response, error)
	OnResponseError func(error) error
}

var _ Observer = ObserverFuncs{}

func (f ObserverFuncs) BeforeRequest(req *http.Request) (*http.Request, error) {
	if f.OnRequest == nil {
		return req, nil
	}
	return f.OnRequest(req)
}

func (f ObserverFuncs) RequestError(err error) error {
	if f.OnRequestError == nil {
		return err
	}
	return f.OnRequestError(err)
}

func (f ObserverFuncs) AfterResponse(resp *http.Response) (*http.Response, error) {
	if f.OnResponse == nil {
		return resp, nil
	}
	return f.OnResponse(resp)
}

func (f ObserverFuncs) ResponseError(err error) error {
	if f.OnResponseError == nil {
		return err
	}
	return f.OnResponseError(err)
}

// LogObserver is the default Observer. It logs every request and response to
// a zerolog.Logger and never alters them.
//
// With Dump set, full request and response dumps are logged as well. Dumps
// include headers and bodies, so only enable them while debugging. Dump is
// switched on automatically when JIKAN_DEBUG=true or DEBUG=true.
type LogObserver struct {
	Logger zerolog.Logger
	Dump   bool
}

var _ Observer = (*LogObserver)(nil)

// NewLogObserver returns a LogObserver writing to l.
func NewLogObserver(l zerolog.Logger) *LogObserver {
	return &LogObserver{Logger: l, Dump: debugDumpRequested()}
}

type requestInfoKey struct{}

type requestInfo struct {
	id    string
	start time.Time
}

func (o *LogObserver) BeforeRequest(req *http.Request) (*http.Request, error) {
	info := &requestInfo{id: uuid.NewString(), start: time.Now()}
	req = req.WithContext(context.WithValue(req.Context(), requestInfoKey{}, info))

	ev := o.Logger.Debug().Str("request_id", info.id).Str("method", req.Method).Str("url", req.URL.String())
	if o.Dump {
		if dump, err := httputil.DumpRequestOut(req, true); err == nil {
			ev = ev.Str("request_dump", string(dump))
		}
	}
	ev.Msg("HTTP request")
	return req, nil
}

func (o *LogObserver) RequestError(err error) error {
	o.Logger.Error().Err(err).Msg("HTTP request rejected")
	return err
}

func (o *LogObserver) AfterResponse(resp *http.Response) (*http.Response, error) {
	ev := o.Logger.Debug().Int("status_code", resp.StatusCode).Bool("cached", IsCachedResponse(resp))
	if req := resp.Request; req != nil {
		ev = ev.Str("method", req.Method).Str("url", req.URL.String())
		if info, ok := req.Context().Value(requestInfoKey{}).(*requestInfo); ok {
			ev = ev.Str("request_id", info.id).Dur("elapsed", time.Since(info.start))
		}
	}
	if o.Dump {
		if dump, err := httputil.DumpResponse(resp, true); err == nil {
			ev = ev.Str("response_dump", string(dump))
		}
	}
	ev.Msg("HTTP response")
	return resp, nil
}

func (o *LogObserver) ResponseError(err error) error {
	ev := o.Logger.Error().Err(err)
	var te *TransportError
	if errors.As(err, &te) {
		ev = ev.Str("method", te.Method).Str("url", te.URL).Int("status_code", te.StatusCode).Str("category", te.Category.String())
	}
	ev.Msg("HTTP request failed")
	return err
}

// debugDumpRequested reports whether JIKAN_DEBUG or DEBUG is set to "true".
func debugDumpRequested() bool {
	return os.Getenv("JIKAN_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
