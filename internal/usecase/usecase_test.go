package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NFTCast/internal/domain/models"
	"NFTCast/internal/domain/repository"
	"NFTCast/internal/services/forecast"
	"NFTCast/internal/services/history"
	"NFTCast/internal/services/nftref"
)

const addr = "0xBC4CA0EdA7647A8aB7C2061c2E118A18a936f13D"

var fixedNow = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

type fakeMarket struct {
	nft      *models.NFTDetails
	stats    *models.CollectionStats
	err      error
	nftCalls int
}

func (m *fakeMarket) GetNFT(_ context.Context, ref models.NFTRef) (*models.NFTDetails, error) {
	m.nftCalls++
	if m.err != nil {
		return nil, m.err
	}
	d := *m.nft
	d.ContractAddress, d.TokenID = ref.ContractAddress, ref.TokenID
	return &d, nil
}

func (m *fakeMarket) GetCollectionStats(context.Context, string) (*models.CollectionStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.stats, nil
}

type fakeSnapshots struct {
	stored []models.FloorSnapshot
	err    error
}

func (f *fakeSnapshots) Init(context.Context) error { return nil }
func (f *fakeSnapshots) Store(_ context.Context, s models.FloorSnapshot) error {
	f.stored = append(f.stored, s)
	return f.err
}
func (f *fakeSnapshots) StoreBatch(context.Context, []models.FloorSnapshot) error { return nil }
func (f *fakeSnapshots) Series(context.Context, string, time.Time, int, repository.Interval) ([]models.PricePoint, error) {
	return nil, nil
}
func (f *fakeSnapshots) Health(context.Context) error { return nil }
func (f *fakeSnapshots) Close() error                 { return nil }

type fakePublisher struct {
	got []*models.Analysis
	err error
}

func (p *fakePublisher) Publish(_ context.Context, a *models.Analysis) error {
	p.got = append(p.got, a)
	return p.err
}
func (p *fakePublisher) Close() error { return nil }

func newAnalyze(m *fakeMarket, opts ...AnalyzeOption) *AnalyzeUseCase {
	clock := func() time.Time { return fixedNow }
	hp := history.NewProvider(history.WithSeed(1), history.WithClock(clock))
	ff := forecast.Factory(forecast.WithSeed(7), forecast.WithClock(clock))
	return NewAnalyzeUseCase(nftref.Resolver{}, m, hp, ff, append([]AnalyzeOption{WithClock(clock)}, opts...)...)
}

func TestAnalyzeDeepLink(t *testing.T) {
	m := &fakeMarket{nft: &models.NFTDetails{Name: "Ape", CollectionSlug: "bayc", FloorPrice: 30}}
	snaps := &fakeSnapshots{}
	pub := &fakePublisher{}
	uc := newAnalyze(m, WithSnapshotStore(snaps), WithPublisher(pub))

	a, err := uc.Analyze(context.Background(), AnalyzeParams{Input: "https://opensea.io/assets/ethereum/" + addr + "/42"})
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, 30.0, a.CurrentPrice)
	assert.Equal(t, "42", a.NFT.TokenID)
	assert.Len(t, a.Predictions, 5)
	require.Len(t, a.ModelComparison, 5)
	labels := make([]string, 0, 5)
	for _, r := range a.ModelComparison {
		labels = append(labels, r.Model)
	}
	assert.Equal(t, []string{"XGBoost", "LSTM", "Random Forest", "ARIMA", "Ensemble"}, labels)
	assert.Equal(t, a.ModelComparison[4].Predictions, a.Predictions)
	assert.Equal(t, 0.91, a.ModelComparison[4].Accuracy)
	assert.Len(t, a.HistoricalData, 13)
	assert.Greater(t, a.Volatility, 0.0)
	assert.Equal(t, models.SourceSynthetic, a.HistorySource)
	assert.Equal(t, "2024-02-15", a.Predictions[0].Date)

	require.Len(t, snaps.stored, 1)
	assert.Equal(t, 30.0, snaps.stored[0].FloorPrice)
	require.Len(t, pub.got, 1)
	assert.Equal(t, a.ID, pub.got[0].ID)
}

func TestAnalyzeFallsBackToDefaultBase(t *testing.T) {
	m := &fakeMarket{nft: &models.NFTDetails{Name: "Unpriced"}}
	a, err := newAnalyze(m).Analyze(context.Background(), AnalyzeParams{ContractAddress: addr, TokenID: "1", Horizon: 3})
	require.NoError(t, err)
	assert.Equal(t, DefaultBasePrice, a.CurrentPrice)
	assert.Len(t, a.Predictions, 3)
}

func TestAnalyzeCollectionSlug(t *testing.T) {
	m := &fakeMarket{stats: &models.CollectionStats{Total: models.CollectionTotals{FloorPrice: 12}}}
	a, err := newAnalyze(m).Analyze(context.Background(), AnalyzeParams{Input: "https://opensea.io/collection/azuki"})
	require.NoError(t, err)
	assert.Equal(t, "azuki", a.NFT.CollectionSlug)
	assert.Equal(t, 12.0, a.CurrentPrice)
	assert.Equal(t, 0, m.nftCalls)
}

func TestAnalyzeSideEffectFailuresDoNotFail(t *testing.T) {
	m := &fakeMarket{nft: &models.NFTDetails{FloorPrice: 5}}
	uc := newAnalyze(m,
		WithSnapshotStore(&fakeSnapshots{err: errors.New("clickhouse down")}),
		WithPublisher(&fakePublisher{err: errors.New("kafka down")}),
	)
	_, err := uc.Analyze(context.Background(), AnalyzeParams{ContractAddress: addr, TokenID: "1"})
	assert.NoError(t, err)
}

func TestAnalyzeErrors(t *testing.T) {
	m := &fakeMarket{err: models.ErrNotFound}
	uc := newAnalyze(m)

	_, err := uc.Analyze(context.Background(), AnalyzeParams{ContractAddress: addr, TokenID: "1"})
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = uc.Analyze(context.Background(), AnalyzeParams{})
	assert.ErrorIs(t, err, models.ErrMalformedIdentifier)

	_, err = uc.Analyze(context.Background(), AnalyzeParams{Input: "not a link!"})
	assert.ErrorIs(t, err, models.ErrMalformedIdentifier)

	_, err = uc.Analyze(context.Background(), AnalyzeParams{ContractAddress: addr, TokenID: "1", Horizon: 99})
	assert.ErrorIs(t, err, models.ErrInvalidHorizon)
}

func TestHorizonPolicy(t *testing.T) {
	h := HorizonPolicy{Default: 5, Max: 12}
	n, err := h.Resolve(0)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	n, err = h.Resolve(12)
	require.NoError(t, err)
	assert.Equal(t, 12, n)
	_, err = h.Resolve(13)
	assert.ErrorIs(t, err, models.ErrInvalidHorizon)
	_, err = h.Resolve(-1)
	assert.ErrorIs(t, err, models.ErrInvalidHorizon)
}

func series(prices ...float64) []models.PricePoint {
	out := make([]models.PricePoint, len(prices))
	for i, p := range prices {
		out[i] = models.PricePoint{Date: fixedNow.AddDate(0, i-len(prices), 0).Format("2006-01-02"), Price: p}
	}
	return out
}

func TestForecastUseCase(t *testing.T) {
	uc := NewForecastUseCase(forecast.Factory(forecast.WithSeed(1)), DefaultHorizonPolicy())

	res, err := uc.Forecast(context.Background(), ForecastParams{Series: series(40, 41, 42, 43), Horizon: 4})
	require.NoError(t, err)
	assert.Equal(t, models.SourceCaller, res.Source)
	assert.Len(t, res.Results, 5)
	for _, r := range res.Results {
		assert.Len(t, r.Predictions, 4)
	}

	res, err = uc.Forecast(context.Background(), ForecastParams{Series: series(40, 41), Model: "autoregressive"})
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, "ARIMA", res.Results[0].Model)
	assert.Equal(t, 5, res.Horizon)

	_, err = uc.Forecast(context.Background(), ForecastParams{Series: series(40), Model: "prophet"})
	assert.ErrorIs(t, err, models.ErrUnknownModel)
}

func TestValidateSeries(t *testing.T) {
	assert.NoError(t, ValidateSeries(series(1, 2, 3)))
	assert.ErrorIs(t, ValidateSeries(nil), models.ErrInvalidSeries)

	unordered := series(1, 2)
	unordered[0], unordered[1] = unordered[1], unordered[0]
	assert.ErrorIs(t, ValidateSeries(unordered), models.ErrInvalidSeries)

	dup := []models.PricePoint{{Date: "2024-01-01", Price: 1}, {Date: "2024-01-01", Price: 2}}
	assert.ErrorIs(t, ValidateSeries(dup), models.ErrInvalidSeries)

	assert.ErrorIs(t, ValidateSeries([]models.PricePoint{{Date: "yesterday", Price: 1}}), models.ErrInvalidSeries)
	assert.ErrorIs(t, ValidateSeries([]models.PricePoint{{Date: "2024-01-01", Price: 0}}), models.ErrInvalidSeries)
}
