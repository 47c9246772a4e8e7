package client

import (
	"net/http"

	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"

	"github.com/jikan-go/jikan/client/internal/cache"
	"github.com/jikan-go/jikan/client/internal/transport"
)

// Public type aliases so SDK consumers can import only the client package.
type (
	// PathParams fill {placeholders} in an endpoint template.
	PathParams = map[string]any
	// QueryParams become the query string, unvalidated.
	QueryParams = map[string]any

	// CacheStorage holds cached responses.
	CacheStorage = cache.Storage

	// Observer receives every request and response of an observed Client.
	Observer = transport.Observer
)

// NewMemoryStorage returns an empty in-memory CacheStorage.
func NewMemoryStorage() CacheStorage { return httpcache.NewMemoryCache() }

// NewDiskStorage returns a CacheStorage persisted under dir.
func NewDiskStorage(dir string) CacheStorage { return diskcache.New(dir) }

// IsCachedResponse reports whether resp was served from the cache rather than
// the network.
func IsCachedResponse(resp *http.Response) bool { return cache.IsCached(resp) }
