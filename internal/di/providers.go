package di

import (
	"context"
	"fmt"
	"os"
	"time"

	"NFTCast/internal/domain/repository"
	"NFTCast/internal/domain/service"
	"NFTCast/internal/handler/api"
	mid "NFTCast/internal/middleware"
	internalrepo "NFTCast/internal/repository"
	svcmetrics "NFTCast/internal/service/metrics"
	"NFTCast/internal/service/opensea"
	"NFTCast/internal/service/ratelimit"
	"NFTCast/internal/services/forecast"
	"NFTCast/internal/services/history"
	"NFTCast/internal/services/nftref"
	"NFTCast/internal/usecase"
	"NFTCast/pkg/cache"
	pkgch "NFTCast/pkg/clickhouse"
	"NFTCast/pkg/config"
	xhttp "NFTCast/pkg/http"
	pkgkafka "NFTCast/pkg/kafka"
	"NFTCast/pkg/logger"
	"NFTCast/pkg/metrics"
	"NFTCast/pkg/server"
)

// ProvideKafkaProducer creates a Kafka producer, or nil when Kafka is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, func(), error) {
	if !cfg.Kafka.Enabled {
		return nil, func() {}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatching(0, cfg.Kafka.BatchTimeout),
		pkgkafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Async),
		pkgkafka.WithHashByKey(true),
		// the logger is built on top of the producer, so async failures go to stderr
		pkgkafka.WithAsyncErrorHandler(func(topic string, n int, err error) {
			fmt.Fprintf(os.Stderr, "kafka async write %s (%d msgs): %v\n", topic, n, err)
		}),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, func() { _ = producer.Close() }, nil
}

// ProvideLogger builds the app logger; repeated errors are shipped to Kafka when the collector is on.
func ProvideLogger(cfg *config.Config, producer *pkgkafka.Producer) (*logger.Logger, func(), error) {
	l, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	if cfg.Log.Collector.Enabled && producer != nil {
		l.AddCollector(&logger.CollectionConfig{
			TimeInterval:   cfg.Log.Collector.Interval,
			CountThreshold: cfg.Log.Collector.Threshold,
			Topic:          cfg.Log.Collector.Topic,
			Publisher:      producer,
			CollectWarn:    cfg.Log.Collector.CollectWarn,
		})
	}
	return l, l.RemoveCollector, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	svcmetrics.Register()
	return metrics.New()
}

// ProvideCache returns a layered Redis+memory cache, memory only when Redis is off or
// unreachable, or nil when caching is disabled.
func ProvideCache(cfg *config.Config, l *logger.Logger) (cache.Service, func(), error) {
	if !cfg.Cache.Enabled {
		return nil, func() {}, nil
	}
	if cfg.Cache.Redis.Enabled {
		rc, err := cache.NewRedisCache(
			cache.WithRedisAddr(cfg.Cache.Redis.Addr),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
			cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
			cache.WithRedisPool(cfg.Cache.Redis.PoolSize, cfg.Cache.Redis.MinIdleConns, cfg.Cache.Redis.PoolTimeout),
			cache.WithRedisDialTimeout(cfg.Cache.Redis.DialTimeout),
		)
		if err == nil {
			lc := cache.NewLayeredCache(rc,
				cache.WithLayeredMemorySize(cfg.Cache.MemorySize),
				cache.WithLayeredMemoryTTL(cfg.Cache.StatsTTL),
			)
			return lc, func() { _ = lc.Close() }, nil
		}
		l.Warn("redis unavailable, using memory cache", logger.String("addr", cfg.Cache.Redis.Addr), logger.Error(err))
	}
	mc := cache.NewMemoryCache(
		cache.WithMemoryMaxSize(cfg.Cache.MemorySize),
		cache.WithMemoryCleanup(cfg.Cache.SweepInterval),
	)
	return mc, func() { _ = mc.Close() }, nil
}

// ProvideMarketplace creates the OpenSea client.
func ProvideMarketplace(cfg *config.Config, c cache.Service, m repository.Metrics, l *logger.Logger) repository.Marketplace {
	opts := []opensea.Option{
		opensea.WithBaseURL(cfg.OpenSea.BaseURL),
		opensea.WithToken(cfg.OpenSea.BearerToken),
		opensea.WithHTTPClient(xhttp.NewClient(
			xhttp.WithTimeout(cfg.OpenSea.Timeout),
			xhttp.WithMaxResponseBytes(4<<20),
		)),
		opensea.WithRateLimit(cfg.OpenSea.RPS, cfg.OpenSea.Burst),
		opensea.WithRetry(cfg.OpenSea.Retries, cfg.OpenSea.Backoff),
		opensea.WithMetrics(m),
		opensea.WithLogger(l.With(logger.String("component", "opensea"))),
	}
	if c != nil {
		opts = append(opts, opensea.WithCache(c, cfg.Cache.NFTTTL, cfg.Cache.StatsTTL))
	}
	if cfg.OpenSea.BearerToken == "" {
		l.Warn("opensea bearer token not configured; marketplace calls will fail")
	}
	return opensea.New(opts...)
}

// ProvideClickHouseClient creates a ClickHouse client, or nil when ClickHouse is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, func(), error) {
	if !cfg.ClickHouse.Enabled {
		return nil, func() {}, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, func() { _ = client.Close() }, nil
}

// ProvideSnapshotStore creates the floor snapshot store and ensures its table.
func ProvideSnapshotStore(ch *pkgch.Client, cfg *config.Config, l *logger.Logger) (repository.SnapshotStore, error) {
	if ch == nil {
		return nil, nil
	}
	store := internalrepo.NewCHSnapshotStore(ch, cfg.ClickHouse.Table)
	store.SetLogger(l)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return store, nil
}

// ProvidePublisher creates the analysis report publisher. The producer is closed by its own cleanup.
func ProvidePublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
}

func ProvideForecasterFactory(cfg *config.Config, m repository.Metrics, l *logger.Logger) service.ForecasterFactory {
	opts := []forecast.Option{
		forecast.WithTimeout(cfg.Forecast.Timeout),
		forecast.WithFallbackBase(cfg.Forecast.DefaultBasePrice),
		forecast.WithMetrics(m),
		forecast.WithLogger(l.With(logger.String("component", "forecast"))),
	}
	if cfg.Forecast.Seed != 0 {
		opts = append(opts, forecast.WithSeed(cfg.Forecast.Seed))
	}
	return forecast.Factory(opts...)
}

func ProvideHistoryProvider(cfg *config.Config, store repository.SnapshotStore, l *logger.Logger) service.HistoryProvider {
	opts := []history.Option{
		history.WithMonths(cfg.Forecast.HistoryMonths),
		history.WithMinPoints(cfg.Forecast.MinSnapshotPoints),
		history.WithLogger(l.With(logger.String("component", "history"))),
	}
	if store != nil {
		opts = append(opts, history.WithStore(store))
	}
	if cfg.Forecast.Seed != 0 {
		opts = append(opts, history.WithSeed(cfg.Forecast.Seed))
	}
	return history.NewProvider(opts...)
}

func ProvideHorizonPolicy(cfg *config.Config) usecase.HorizonPolicy {
	return usecase.HorizonPolicy{Default: cfg.Forecast.DefaultHorizon, Max: cfg.Forecast.MaxHorizon}
}

func ProvideAnalyzeUseCase(
	cfg *config.Config,
	market repository.Marketplace,
	hist service.HistoryProvider,
	factory service.ForecasterFactory,
	horizons usecase.HorizonPolicy,
	store repository.SnapshotStore,
	pub repository.Publisher,
	l *logger.Logger,
) *usecase.AnalyzeUseCase {
	opts := []usecase.AnalyzeOption{
		usecase.WithHorizons(horizons),
		usecase.WithBasePrice(cfg.Forecast.DefaultBasePrice),
		usecase.WithLogger(l.With(logger.String("usecase", "analyze"))),
	}
	if store != nil {
		opts = append(opts, usecase.WithSnapshotStore(store))
	}
	if pub != nil {
		opts = append(opts, usecase.WithPublisher(pub))
	}
	return usecase.NewAnalyzeUseCase(nftref.Resolver{}, market, hist, factory, opts...)
}

func ProvideForecastUseCase(factory service.ForecasterFactory, horizons usecase.HorizonPolicy) *usecase.ForecastUseCase {
	return usecase.NewForecastUseCase(factory, horizons)
}

func ProvideLiveTicker(cfg *config.Config) *usecase.LiveTicker {
	return usecase.NewLiveTicker(cfg.Live.Interval, cfg.Live.Supply, cfg.Forecast.Seed)
}

// ProvideHandler creates the API handler; ClickHouse joins /healthz when enabled.
func ProvideHandler(
	l *logger.Logger,
	market repository.Marketplace,
	analyze *usecase.AnalyzeUseCase,
	fc *usecase.ForecastUseCase,
	ticker *usecase.LiveTicker,
	store repository.SnapshotStore,
) *api.Handler {
	var opts []api.Option
	if store != nil {
		opts = append(opts, api.WithHealthCheck("clickhouse", store))
	}
	return api.NewHandler(l, market, analyze, fc, ticker, opts...)
}

func ProvideRateLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

func ProvideHTTPServer(cfg *config.Config, h *api.Handler, limiter *ratelimit.Limiter, l *logger.Logger) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	opts := []xhttp.ServerOption{
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(true, cfg.Server.CORSOrigins...),
		xhttp.WithSlowThreshold(cfg.Server.SlowThreshold),
		xhttp.WithMetricsPath(metricsPath),
	}
	if cfg.RateLimit.Enabled {
		opts = append(opts, xhttp.WithMiddleware(mid.RateLimit(limiter, mid.RateLimitConfig{
			Capacity:     cfg.RateLimit.Capacity,
			RefillPerSec: cfg.RateLimit.RefillPerSec,
			SkipPaths:    []string{"/healthz", metricsPath},
		}, l)))
	}
	return xhttp.NewServer(h, l, opts...)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *logger.Logger, srv *xhttp.Server, limiter *ratelimit.Limiter) *server.App {
	return server.New(cfg, l, srv, limiter)
}
