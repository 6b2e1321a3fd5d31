package rankings

import (
	"net/http"
	"time"

	"github.com/cfbranks/rankview/internal/adapters/cache"
	"github.com/cfbranks/rankview/pkg/logger"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL sets the ranking service base URL, e.g. "http://localhost:5000".
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = base
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithHealthTimeout bounds the liveness probe.
func WithHealthTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.healthTimeout = d
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCache enables the in-session snapshot cache for default-weight queries.
func WithCache(s *cache.Store) Option {
	return func(c *Client) {
		c.cache = s
	}
}

// WithClock overrides the time source used for generated_at defaults.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithMaxWeek sets the upper bound of the default week range.
func WithMaxWeek(max int) Option {
	return func(c *Client) {
		if max > 0 {
			c.maxWeek = max
		}
	}
}
