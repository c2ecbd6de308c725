package history

import (
    "context"
    "errors"
    "math/rand"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "NFTCast/internal/domain/models"
    "NFTCast/internal/domain/repository"
)

var now = time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

type fakeStore struct {
    points []models.PricePoint
    err    error
    calls  int
    limit  int
}

func (f *fakeStore) Init(context.Context) error                              { return nil }
func (f *fakeStore) Store(context.Context, models.FloorSnapshot) error       { return nil }
func (f *fakeStore) StoreBatch(context.Context, []models.FloorSnapshot) error { return nil }
func (f *fakeStore) Health(context.Context) error                            { return nil }
func (f *fakeStore) Close() error                                            { return nil }
func (f *fakeStore) Series(_ context.Context, _ string, _ time.Time, limit int, _ repository.Interval) ([]models.PricePoint, error) {
    f.calls++
    f.limit = limit
    return f.points, f.err
}

var ref = &models.NFTRef{Chain: "ethereum", ContractAddress: "0xabc", TokenID: "1"}

func TestSyntheticShape(t *testing.T) {
    pts := Synthetic(rand.New(rand.NewSource(1)), now, 12, 45.2)
    require.Len(t, pts, 13)
    assert.Equal(t, "2023-06-10", pts[0].Date)
    assert.Equal(t, "2024-06-10", pts[12].Date)
    for i, p := range pts {
        assert.GreaterOrEqual(t, p.Price, 0.2*45.2)
        assert.GreaterOrEqual(t, p.Volume, 100.0)
        assert.Less(t, p.Volume, 1100.0)
        assert.GreaterOrEqual(t, p.MarketCap, 0.0)
        if i > 0 {
            assert.Greater(t, p.Date, pts[i-1].Date)
        }
    }
}

func TestSyntheticLastPointIsNoiseAroundBase(t *testing.T) {
    // i = 0: no trend or seasonality, only ±10% noise
    for seed := int64(0); seed < 20; seed++ {
        pts := Synthetic(rand.New(rand.NewSource(seed)), now, 3, 100)
        last := pts[len(pts)-1].Price
        assert.InDelta(t, 100, last, 10.0001)
    }
}

func TestProviderSyntheticWithoutStore(t *testing.T) {
    p := NewProvider(WithSeed(1), WithClock(func() time.Time { return now }))
    h, err := p.History(context.Background(), ref, 50)
    require.NoError(t, err)
    assert.Equal(t, models.SourceSynthetic, h.Source)
    assert.Len(t, h.Points, 13)
}

func TestProviderPrefersSnapshots(t *testing.T) {
    stored := make([]models.PricePoint, 10)
    for i := range stored {
        stored[i] = models.PricePoint{Date: now.AddDate(0, 0, i-10).Format("2006-01-02"), Price: float64(30 + i)}
    }
    store := &fakeStore{points: stored}
    p := NewProvider(WithStore(store), WithMinPoints(10), WithMonths(6), WithClock(func() time.Time { return now }))

    h, err := p.History(context.Background(), ref, 50)
    require.NoError(t, err)
    assert.Equal(t, models.SourceSnapshots, h.Source)
    assert.Equal(t, stored, h.Points)
    assert.Equal(t, 6*31, store.limit)
}

func TestProviderFallsBackOnShortOrFailingStore(t *testing.T) {
    short := &fakeStore{points: []models.PricePoint{{Date: "2024-06-01", Price: 1}}}
    p := NewProvider(WithStore(short), WithSeed(2), WithClock(func() time.Time { return now }))
    h, err := p.History(context.Background(), ref, 50)
    require.NoError(t, err)
    assert.Equal(t, models.SourceSynthetic, h.Source)
    assert.Equal(t, 1, short.calls)

    broken := &fakeStore{err: errors.New("connection refused")}
    p = NewProvider(WithStore(broken), WithSeed(2), WithClock(func() time.Time { return now }))
    h, err = p.History(context.Background(), ref, 50)
    require.NoError(t, err)
    assert.Equal(t, models.SourceSynthetic, h.Source)

    // no contract: store is not consulted
    unused := &fakeStore{}
    p = NewProvider(WithStore(unused), WithSeed(2))
    _, err = p.History(context.Background(), nil, 50)
    require.NoError(t, err)
    assert.Equal(t, 0, unused.calls)
}

func TestProviderHonoursCancellation(t *testing.T) {
    ctx, cancel := context.WithCancel(context.Background())
    cancel()
    _, err := NewProvider(WithSeed(3)).History(ctx, ref, 50)
    assert.ErrorIs(t, err, context.Canceled)
}
