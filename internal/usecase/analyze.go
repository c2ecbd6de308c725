package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"NFTCast/internal/domain/models"
	domrepo "NFTCast/internal/domain/repository"
	"NFTCast/internal/domain/service"
	svcmetrics "NFTCast/internal/service/metrics"
	"NFTCast/internal/services/features"
	"NFTCast/internal/services/nftref"
	"NFTCast/pkg/logger"
)

// DefaultBasePrice anchors history when the marketplace reports no floor.
const DefaultBasePrice = 45.2

// AnalyzeParams is the resolved input of one analysis. Input wins over the explicit pair.
type AnalyzeParams struct {
	Input           string
	Chain           string
	ContractAddress string
	TokenID         string
	Horizon         int
}

// AnalyzeUseCase resolves an NFT, builds its history and runs every forecaster over it.
type AnalyzeUseCase struct {
	resolver      service.IdentifierResolver
	market        domrepo.Marketplace
	history       service.HistoryProvider
	newForecaster service.ForecasterFactory

	snapshots domrepo.SnapshotStore
	publisher domrepo.Publisher

	horizons  HorizonPolicy
	basePrice float64
	sideTTL   time.Duration
	clock     func() time.Time
	log       *logger.Logger
}

// AnalyzeOption configures AnalyzeUseCase.
type AnalyzeOption func(*AnalyzeUseCase)

// WithSnapshotStore records every observed floor price.
func WithSnapshotStore(s domrepo.SnapshotStore) AnalyzeOption {
	return func(uc *AnalyzeUseCase) { uc.snapshots = s }
}

// WithPublisher ships finished reports downstream.
func WithPublisher(p domrepo.Publisher) AnalyzeOption {
	return func(uc *AnalyzeUseCase) { uc.publisher = p }
}

func WithHorizons(h HorizonPolicy) AnalyzeOption {
	return func(uc *AnalyzeUseCase) { uc.horizons = h }
}

// WithBasePrice overrides DefaultBasePrice.
func WithBasePrice(p float64) AnalyzeOption {
	return func(uc *AnalyzeUseCase) {
		if p > 0 {
			uc.basePrice = p
		}
	}
}

func WithClock(clock func() time.Time) AnalyzeOption {
	return func(uc *AnalyzeUseCase) {
		if clock != nil {
			uc.clock = clock
		}
	}
}

func WithLogger(l *logger.Logger) AnalyzeOption {
	return func(uc *AnalyzeUseCase) {
		if l != nil {
			uc.log = l
		}
	}
}

func NewAnalyzeUseCase(
	resolver service.IdentifierResolver,
	market domrepo.Marketplace,
	history service.HistoryProvider,
	newForecaster service.ForecasterFactory,
	opts ...AnalyzeOption,
) *AnalyzeUseCase {
	uc := &AnalyzeUseCase{
		resolver:      resolver,
		market:        market,
		history:       history,
		newForecaster: newForecaster,
		horizons:      DefaultHorizonPolicy(),
		basePrice:     DefaultBasePrice,
		sideTTL:       5 * time.Second,
		clock:         time.Now,
		log:           logger.NewNop(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Analyze returns the report the dashboard renders: ensemble predictions, the five-model
// comparison and the history they were computed from.
func (uc *AnalyzeUseCase) Analyze(ctx context.Context, p AnalyzeParams) (*models.Analysis, error) {
	start := time.Now()
	defer func() {
		svcmetrics.AnalysisLatency.WithLabelValues("analyze").Observe(time.Since(start).Seconds())
	}()

	horizon, err := uc.horizons.Resolve(p.Horizon)
	if err != nil {
		return nil, uc.fail("validate", err)
	}
	id, err := uc.identify(p)
	if err != nil {
		return nil, uc.fail("resolve", err)
	}

	details, err := uc.fetch(ctx, id)
	if err != nil {
		return nil, uc.fail("marketplace", err)
	}

	base := details.FloorPrice
	if base <= 0 || math.IsNaN(base) || math.IsInf(base, 0) {
		base = uc.basePrice
	}

	hist, err := uc.history.History(ctx, id.NFT, base)
	if err != nil {
		return nil, uc.fail("history", err)
	}
	svcmetrics.HistorySource.WithLabelValues(hist.Source).Inc()

	results := uc.newForecaster(hist.Points).ForecastAll(ctx, horizon)
	ensemble := results[len(results)-1]

	a := &models.Analysis{
		ID:              uuid.NewString(),
		NFT:             *details,
		CurrentPrice:    base,
		Predictions:     ensemble.Predictions,
		ModelComparison: results,
		HistoricalData:  hist.Points,
		HistorySource:   hist.Source,
		Volatility:      historyVolatility(hist),
		GeneratedAt:     uc.clock().UTC(),
	}

	uc.recordSnapshot(ctx, details)
	uc.publish(ctx, a)

	uc.log.Info("analysis complete",
		logger.String("id", a.ID),
		logger.String("collection", details.CollectionSlug),
		logger.String("history", hist.Source),
		logger.Int("horizon", horizon),
		logger.Duration("duration_ms", time.Since(start)),
	)
	return a, nil
}

func (uc *AnalyzeUseCase) identify(p AnalyzeParams) (models.Identifier, error) {
	if strings.TrimSpace(p.Input) != "" {
		return uc.resolver.Resolve(p.Input)
	}
	if p.ContractAddress == "" && p.TokenID == "" {
		return models.Identifier{}, fmt.Errorf("%w: input or contractAddress and tokenId required", models.ErrMalformedIdentifier)
	}
	ref, err := nftref.ParseRef(p.Chain, p.ContractAddress, p.TokenID)
	if err != nil {
		return models.Identifier{}, err
	}
	return models.Identifier{NFT: &ref}, nil
}

// fetch loads token metadata, or builds a collection-level stand-in from stats.
func (uc *AnalyzeUseCase) fetch(ctx context.Context, id models.Identifier) (*models.NFTDetails, error) {
	if !id.IsCollection() {
		return uc.market.GetNFT(ctx, *id.NFT)
	}
	stats, err := uc.market.GetCollectionStats(ctx, id.Slug)
	if err != nil {
		return nil, err
	}
	return &models.NFTDetails{
		Name:           id.Slug,
		Collection:     id.Slug,
		CollectionSlug: id.Slug,
		FloorPrice:     stats.Total.FloorPrice,
		Traits:         []models.Trait{},
		UpdatedAt:      uc.clock().UTC().Format(time.RFC3339),
	}, nil
}

// recordSnapshot stores the observed floor; failures only log.
func (uc *AnalyzeUseCase) recordSnapshot(ctx context.Context, d *models.NFTDetails) {
	if uc.snapshots == nil || d.ContractAddress == "" || d.FloorPrice <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, uc.sideTTL)
	defer cancel()
	err := uc.snapshots.Store(ctx, models.FloorSnapshot{
		ContractAddress: d.ContractAddress,
		CollectionSlug:  d.CollectionSlug,
		FloorPrice:      d.FloorPrice,
		ObservedAt:      uc.clock(),
	})
	if err != nil {
		svcmetrics.AnalysisErrors.WithLabelValues("analyze", "snapshot").Inc()
		uc.log.Warn("floor snapshot not stored",
			logger.String("contract", d.ContractAddress),
			logger.Error(err),
		)
	}
}

// publish ships the report; failures only log.
func (uc *AnalyzeUseCase) publish(ctx context.Context, a *models.Analysis) {
	if uc.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, uc.sideTTL)
	defer cancel()
	if err := uc.publisher.Publish(ctx, a); err != nil {
		svcmetrics.AnalysisErrors.WithLabelValues("analyze", "publish").Inc()
		uc.log.Warn("analysis not published",
			logger.String("id", a.ID),
			logger.Error(err),
		)
	}
}

// historyVolatility annualizes the realized volatility of the whole history.
func historyVolatility(h models.History) float64 {
	returns := features.ComputeLogReturns(h.Points)
	interval := "monthly"
	if h.Source == models.SourceSnapshots {
		interval = "daily"
	}
	return features.RealizedVolatility(returns, len(returns), features.PeriodsPerYear(interval))
}

func (uc *AnalyzeUseCase) fail(stage string, err error) error {
	svcmetrics.AnalysisErrors.WithLabelValues("analyze", stage).Inc()
	return fmt.Errorf("analyze %s: %w", stage, err)
}
