package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	domrepo "NFTCast/internal/domain/repository"
	"NFTCast/internal/usecase"
	xhttp "NFTCast/pkg/http"
	xlogger "NFTCast/pkg/logger"
)

// HealthChecker is a dependency probed by /healthz.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Handler serves the dashboard API.
type Handler struct {
	logger   *xlogger.Logger
	market   domrepo.Marketplace
	analyze  *usecase.AnalyzeUseCase
	forecast *usecase.ForecastUseCase
	ticker   *usecase.LiveTicker

	checks   map[string]HealthChecker
	upgrader websocket.Upgrader
}

var _ xhttp.Handler = (*Handler)(nil)

// Option configures Handler.
type Option func(*Handler)

// WithHealthCheck adds a named dependency to /healthz.
func WithHealthCheck(name string, hc HealthChecker) Option {
	return func(h *Handler) {
		if hc != nil {
			h.checks[name] = hc
		}
	}
}

// WithCheckOrigin overrides the websocket origin check.
func WithCheckOrigin(fn func(r *http.Request) bool) Option {
	return func(h *Handler) { h.upgrader.CheckOrigin = fn }
}

func NewHandler(
	logger *xlogger.Logger,
	market domrepo.Marketplace,
	analyze *usecase.AnalyzeUseCase,
	forecast *usecase.ForecastUseCase,
	ticker *usecase.LiveTicker,
	opts ...Option,
) *Handler {
	if logger == nil {
		logger = xlogger.NewNop()
	}
	h := &Handler{
		logger:   logger,
		market:   market,
		analyze:  analyze,
		forecast: forecast,
		ticker:   ticker,
		checks:   make(map[string]HealthChecker),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.POST("/opensea/nft", h.NFT)
	g.GET("/opensea/nft", h.NFTMethodNotAllowed)
	g.GET("/opensea/collection", h.Collection)
	g.POST("/analyze", h.Analyze)
	g.POST("/forecast", h.Forecast)
	g.GET("/live", h.Live)
}

type healthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Health reports "degraded" with 503 when any registered dependency fails its probe.
func (h *Handler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	report := healthReport{Status: "ok"}
	if len(h.checks) > 0 {
		report.Checks = make(map[string]string, len(h.checks))
	}
	for name, hc := range h.checks {
		if err := hc.Health(ctx); err != nil {
			h.logger.Warn("health check failed", xlogger.String("dependency", name), xlogger.Error(err))
			report.Checks[name] = err.Error()
			report.Status = "degraded"
			continue
		}
		report.Checks[name] = "ok"
	}
	if report.Status != "ok" {
		return xhttp.DataResponse(c, http.StatusServiceUnavailable, report)
	}
	return xhttp.SuccessResponse(c, report)
}
