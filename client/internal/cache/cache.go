// Package cache wires an RFC 7234 caching layer underneath the SDK transport.
//
// The caching algorithm itself belongs to github.com/gregjones/httpcache; this
// package only turns a Policy into a configured httpcache.Transport.
package cache

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
)

// DefaultTTL is the freshness lifetime given to successful responses that do
// not carry their own.
const DefaultTTL = 5 * time.Minute

// Storage is the backing store for cached responses.
type Storage = httpcache.Cache

// Policy is the caller-supplied cache configuration. The zero value enables an
// in-memory cache honoring server headers with DefaultTTL as fallback.
type Policy struct {
	Disabled      bool
	TTL           time.Duration
	IgnoreHeaders bool
	Dir           string
	Storage       Storage
}

// Validate reports configuration errors. A non-zero TTL must be at least one
// second, the resolution of max-age.
func (p Policy) Validate() error {
	if p.TTL < 0 {
		return fmt.Errorf("cache ttl must be >= 0, got %s", p.TTL)
	}
	if p.TTL > 0 && p.TTL < time.Second {
		return fmt.Errorf("cache ttl must be 0 or at least 1s, got %s", p.TTL)
	}
	return nil
}

func (p Policy) ttl() time.Duration {
	if p.TTL == 0 {
		return DefaultTTL
	}
	return p.TTL
}

// storage returns the store for one client. Unless the caller injected one,
// each call yields a new store so cached responses never leak across clients.
func (p Policy) storage() Storage {
	switch {
	case p.Storage != nil:
		return p.Storage
	case p.Dir != "":
		return diskcache.New(p.Dir)
	default:
		return httpcache.NewMemoryCache()
	}
}

// NewTransport wraps next in a caching transport configured from p.
// Cached responses are marked with the httpcache.XFromCache header.
func NewTransport(next http.RoundTripper, p Policy) (*httpcache.Transport, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if next == nil {
		next = http.DefaultTransport
	}
	t := httpcache.NewTransport(p.storage())
	t.MarkCachedResponses = true
	t.Transport = &freshnessTransport{
		next:     next,
		ttl:      p.ttl(),
		override: p.IgnoreHeaders,
		now:      time.Now,
	}
	return t, nil
}

// IsCached reports whether resp was served from a cache storage.
func IsCached(resp *http.Response) bool {
	return resp != nil && resp.Header.Get(httpcache.XFromCache) == "1"
}
