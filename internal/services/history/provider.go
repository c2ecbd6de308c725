package history

import (
    "context"
    "math/rand"
    "sync"
    "time"

    "NFTCast/internal/domain/models"
    "NFTCast/internal/domain/repository"
    "NFTCast/internal/domain/service"
    "NFTCast/pkg/logger"
)

// Provider serves recorded floor snapshots when enough exist, and synthetic history otherwise.
type Provider struct {
    store     repository.SnapshotStore
    months    int
    minPoints int
    interval  repository.Interval
    clock     func() time.Time
    log       *logger.Logger

    mu  sync.Mutex
    rnd *rand.Rand
}

var _ service.HistoryProvider = (*Provider)(nil)

type Option func(*Provider)

// WithStore enables snapshot-backed history. A nil store keeps the provider synthetic-only.
func WithStore(s repository.SnapshotStore) Option {
    return func(p *Provider) { p.store = s }
}

func WithMonths(n int) Option {
    return func(p *Provider) {
        if n > 0 {
            p.months = n
        }
    }
}

// WithMinPoints is the smallest stored series preferred over synthetic data.
func WithMinPoints(n int) Option {
    return func(p *Provider) {
        if n > 0 {
            p.minPoints = n
        }
    }
}

func WithInterval(iv repository.Interval) Option {
    return func(p *Provider) { p.interval = iv }
}

func WithSeed(seed int64) Option {
    return func(p *Provider) { p.rnd = rand.New(rand.NewSource(seed)) }
}

func WithClock(clock func() time.Time) Option {
    return func(p *Provider) { p.clock = clock }
}

func WithLogger(l *logger.Logger) Option {
    return func(p *Provider) {
        if l != nil {
            p.log = l
        }
    }
}

func NewProvider(opts ...Option) *Provider {
    p := &Provider{
        months:    12,
        minPoints: 10,
        interval:  repository.IntervalDaily,
        clock:     time.Now,
        log:       logger.NewNop(),
    }
    for _, opt := range opts {
        opt(p)
    }
    if p.rnd == nil {
        p.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
    }
    return p
}

// History never fails for synthetic data; store errors are logged and fall through.
func (p *Provider) History(ctx context.Context, ref *models.NFTRef, basePrice float64) (models.History, error) {
    now := p.clock()
    if p.store != nil && ref != nil && ref.ContractAddress != "" {
        limit := p.months * 31
        pts, err := p.store.Series(ctx, ref.ContractAddress, now, limit, p.interval)
        switch {
        case err != nil:
            p.log.Warn("snapshot history unavailable",
                logger.String("contract", ref.ContractAddress),
                logger.Error(err),
            )
        case len(pts) >= p.minPoints:
            return models.History{Points: pts, Source: models.SourceSnapshots}, nil
        default:
            p.log.Debug("snapshot history too short",
                logger.String("contract", ref.ContractAddress),
                logger.Int("points", len(pts)),
                logger.Int("min_points", p.minPoints),
            )
        }
    }
    if err := ctx.Err(); err != nil {
        return models.History{}, err
    }

    p.mu.Lock()
    pts := Synthetic(p.rnd, now, p.months, basePrice)
    p.mu.Unlock()
    return models.History{Points: pts, Source: models.SourceSynthetic}, nil
}
