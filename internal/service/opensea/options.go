package opensea

import (
	"time"

	"golang.org/x/time/rate"

	drepo "NFTCast/internal/domain/repository"
	"NFTCast/pkg/cache"
	xhttp "NFTCast/pkg/http"
	"NFTCast/pkg/logger"
)

// Option configures Client.
type Option func(*Client)

// WithBaseURL overrides the API root, mostly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithToken sets the bearer token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func WithHTTPClient(h *xhttp.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithRateLimit throttles outbound calls to rps with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps > 0 && burst > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// WithCache caches NFT metadata for nftTTL and collection stats for statsTTL.
func WithCache(s cache.Service, nftTTL, statsTTL time.Duration) Option {
	return func(c *Client) {
		c.cache = s
		if nftTTL > 0 {
			c.nftTTL = nftTTL
		}
		if statsTTL > 0 {
			c.statsTTL = statsTTL
		}
	}
}

// WithRetry retries 5xx responses up to n times, doubling backoff each time.
func WithRetry(n int, backoff time.Duration) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retries = n
		}
		if backoff > 0 {
			c.backoff = backoff
		}
	}
}

func WithMetrics(m drepo.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithClock sets the time source used for missing updated_at values.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}
