package client

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/jikan-go/jikan/client/internal/cache"
	"github.com/jikan-go/jikan/client/internal/transport"
)

// DefaultBaseURL is the public Jikan REST API.
const DefaultBaseURL = "https://api.jikan.moe/v4"

// DefaultEnvPrefix is the prefix LoadConfig uses when none is given.
const DefaultEnvPrefix = "JIKAN"

// CacheOptions configures the response cache owned by one Client. The zero
// value enables a private in-memory cache that honors server cache headers
// and falls back to cache.DefaultTTL.
type CacheOptions struct {
	// Disabled removes the caching layer entirely.
	Disabled bool `envconfig:"DISABLED"`
	// TTL is the freshness lifetime given to successful responses that do not
	// carry their own. Zero means the default.
	TTL time.Duration `envconfig:"TTL"`
	// IgnoreHeaders replaces server cache headers with TTL.
	IgnoreHeaders bool `envconfig:"IGNORE_HEADERS"`
	// Dir selects a disk store rooted at Dir instead of memory.
	Dir string `envconfig:"DIR"`
	// Storage is used verbatim when set. Sharing one Storage between clients
	// shares their cached responses.
	Storage CacheStorage `ignored:"true"`
}

func (o CacheOptions) policy() cache.Policy {
	return cache.Policy{
		Disabled:      o.Disabled,
		TTL:           o.TTL,
		IgnoreHeaders: o.IgnoreHeaders,
		Dir:           o.Dir,
		Storage:       o.Storage,
	}
}

// Config is the construction-time configuration of a Client.
type Config struct {
	EnableLogging bool          `envconfig:"ENABLE_LOGGING" default:"false"`
	BaseURL       string        `envconfig:"BASE_URL" default:"https://api.jikan.moe/v4"`
	HTTPTimeout   time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	Cache         CacheOptions  `envconfig:"CACHE"`
}

// DefaultConfig returns the configuration New starts from.
func DefaultConfig() Config {
	return Config{
		BaseURL:     DefaultBaseURL,
		HTTPTimeout: transport.DefaultTimeout,
	}
}

// LoadConfig reads a Config from environment variables named
// <prefix>_ENABLE_LOGGING, <prefix>_BASE_URL, <prefix>_HTTP_TIMEOUT and
// <prefix>_CACHE_{DISABLED,TTL,IGNORE_HEADERS,DIR}.
func LoadConfig(prefix string) (Config, error) {
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("load %s config: %w", prefix, err)
	}
	return cfg, nil
}
