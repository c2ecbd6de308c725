//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"NFTCast/pkg/config"
	"NFTCast/pkg/server"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		// Infrastructure clients
		ProvideKafkaProducer,
		ProvideClickHouseClient,
		ProvideCache,

		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Repositories and services
		ProvideSnapshotStore,
		ProvidePublisher,
		ProvideMarketplace,
		ProvideHistoryProvider,
		ProvideForecasterFactory,

		// Use cases
		ProvideHorizonPolicy,
		ProvideAnalyzeUseCase,
		ProvideForecastUseCase,
		ProvideLiveTicker,

		// HTTP
		ProvideHandler,
		ProvideRateLimiter,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return nil, nil, nil
}
