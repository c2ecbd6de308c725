package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"NFTCast/internal/service/ratelimit"
)

func newEcho(l *ratelimit.Limiter) *echo.Echo {
	e := echo.New()
	e.Use(RateLimit(l, RateLimitConfig{Capacity: 1, RefillPerSec: 0.5, SkipPaths: []string{"/healthz"}}, nil))
	ok := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	e.GET("/api/live", ok)
	e.GET("/healthz", ok)
	return e
}

func do(e *echo.Echo, path, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set(echo.HeaderXRealIP, ip)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitRejectsBurst(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e := newEcho(ratelimit.New(ratelimit.WithClock(func() time.Time { return now })))

	assert.Equal(t, http.StatusOK, do(e, "/api/live", "10.0.0.1").Code)

	rec := do(e, "/api/live", "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "ERR_RATE_LIMITED")

	// separate client, separate bucket
	assert.Equal(t, http.StatusOK, do(e, "/api/live", "10.0.0.2").Code)

	now = now.Add(2 * time.Second)
	assert.Equal(t, http.StatusOK, do(e, "/api/live", "10.0.0.1").Code)
}

func TestRateLimitSkipsHealth(t *testing.T) {
	e := newEcho(ratelimit.New())
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, do(e, "/healthz", "10.0.0.9").Code)
	}
}
