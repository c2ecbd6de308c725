package middleware

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"NFTCast/internal/service/ratelimit"
	xhttp "NFTCast/pkg/http"
	"NFTCast/pkg/logger"
)

// RateLimitConfig sizes the per-client token bucket.
type RateLimitConfig struct {
	Capacity     float64
	RefillPerSec float64
	// SkipPaths are exempt, typically health checks and the scrape endpoint.
	SkipPaths []string
}

// RateLimit rejects clients that exceed their bucket with 429 and a Retry-After header.
func RateLimit(l *ratelimit.Limiter, cfg RateLimitConfig, log *logger.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = logger.NewNop()
	}
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := skip[c.Request().URL.Path]; ok {
				return next(c)
			}
			ip := c.RealIP()
			if l.Allow(ip, cfg.Capacity, cfg.RefillPerSec) {
				return next(c)
			}

			wait := l.RetryAfter(ip)
			c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			log.Warn("rate limit exceeded",
				logger.String("ip", ip),
				logger.String("path", c.Request().URL.Path),
			)
			return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("Too many requests, slow down"))
		}
	}
}

// SweepLoop drops idle buckets every interval until ctx is done.
func SweepLoop(ctx context.Context, l *ratelimit.Limiter, interval, idle time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			l.Sweep(idle)
		}
	}
}
