package jsonx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/httpkit/jsonx/pkg/config"
)

// DefaultLimit is the maximum accepted request body size when no override is
// configured (2 MB).
const DefaultLimit int64 = 2_097_152

// ContentTypePredicate reports whether a parsed media type is acceptable.
// It receives the media type without parameters (e.g. "application/csp-report")
// and the parameter map from the Content-Type header.
type ContentTypePredicate func(mediatype string, params map[string]string) bool

// Config controls body extraction for a route or for the whole process.
// A Config is immutable once constructed and may be shared between
// concurrent requests without synchronization.
type Config struct {
	limit               int64
	contentType         ContentTypePredicate
	contentTypeRequired bool
	log                 *slog.Logger
}

// ConfigOption configures a Config during construction.
type ConfigOption func(*Config)

// WithLimit sets the maximum accepted payload size in bytes.
// Non-positive values are ignored.
func WithLimit(limit int64) ConfigOption {
	return func(c *Config) {
		if limit > 0 {
			c.limit = limit
		}
	}
}

// WithContentType sets a predicate for additionally allowed content types.
// JSON media types are always accepted regardless of the predicate.
func WithContentType(predicate ContentTypePredicate) ConfigOption {
	return func(c *Config) {
		c.contentType = predicate
	}
}

// WithContentTypeRequired sets whether the request must carry a Content-Type
// header to be parsed. When false, a missing header is treated as JSON.
func WithContentTypeRequired(required bool) ConfigOption {
	return func(c *Config) {
		c.contentTypeRequired = required
	}
}

// WithLogger sets the logger used for body previews and render failures.
// Nil loggers are ignored; the default is slog.Default at call time.
func WithLogger(log *slog.Logger) ConfigOption {
	return func(c *Config) {
		if log != nil {
			c.log = log
		}
	}
}

// NewConfig creates a Config starting from the package defaults:
// 2 MB limit, no custom predicate, Content-Type required.
func NewConfig(opts ...ConfigOption) *Config {
	c := &Config{
		limit:               DefaultLimit,
		contentTypeRequired: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Limit returns the maximum accepted payload size in bytes.
func (c *Config) Limit() int64 { return c.limit }

// ContentTypeRequired reports whether a Content-Type header is mandatory.
func (c *Config) ContentTypeRequired() bool { return c.contentTypeRequired }

func (c *Config) logger() *slog.Logger {
	if c.log != nil {
		return c.log
	}
	return slog.Default()
}

// defaultConfig backs requests that carry no per-route override.
var defaultConfig = NewConfig()

type configContextKey struct{}

// WithConfig stores a per-route Config in the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configContextKey{}, cfg)
}

// ConfigFromContext retrieves a Config previously stored with WithConfig.
// It returns the package default when none is present.
func ConfigFromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configContextKey{}).(*Config); ok && cfg != nil {
		return cfg
	}
	return defaultConfig
}

// Middleware attaches cfg to every request passing through it, so that
// Decode and DecodeValidated pick it up instead of the process default.
// Mount it per route (or per route group) to scope limits and content-type
// policy to specific endpoints.
func Middleware(cfg *Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithConfig(r.Context(), cfg)))
		})
	}
}

// envConfig carries the environment-driven extraction defaults.
type envConfig struct {
	Limit               int64 `env:"JSONX_BODY_LIMIT" envDefault:"2097152"`
	ContentTypeRequired bool  `env:"JSONX_CONTENT_TYPE_REQUIRED" envDefault:"true"`
}

// LoadConfig builds a Config from environment variables, then applies opts
// on top. Recognized variables: JSONX_BODY_LIMIT (bytes) and
// JSONX_CONTENT_TYPE_REQUIRED (bool).
func LoadConfig(opts ...ConfigOption) (*Config, error) {
	var ec envConfig
	if err := config.Load(&ec); err != nil {
		return nil, err
	}
	base := []ConfigOption{
		WithLimit(ec.Limit),
		WithContentTypeRequired(ec.ContentTypeRequired),
	}
	return NewConfig(append(base, opts...)...), nil
}
