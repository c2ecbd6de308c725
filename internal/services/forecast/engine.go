package forecast

import (
    "context"
    "errors"
    "fmt"
    "math"
    "math/rand"
    "time"

    "NFTCast/internal/domain/models"
    "NFTCast/internal/domain/repository"
    "NFTCast/internal/domain/service"
    "NFTCast/internal/services/features"
    "NFTCast/pkg/logger"
    "NFTCast/pkg/util"
)

// DefaultFallbackBase anchors degraded output when no history is available.
const DefaultFallbackBase = 45.2

var (
    ErrInsufficientHistory = errors.New("forecast: insufficient history")
    ErrNumeric             = errors.New("forecast: non-finite or non-positive prediction")
    ErrUnknownModel        = models.ErrUnknownModel
)

// Engine produces price projections over one immutable history.
// All methods are safe for concurrent use.
type Engine struct {
    series []models.PricePoint
    prices []float64

    seeds        *seedSource
    newRand      func() Rand
    clock        func() time.Time
    timeout      time.Duration
    fallbackBase float64
    log          *logger.Logger
    metrics      repository.Metrics
}

var _ service.Forecaster = (*Engine)(nil)

// Factory binds opts so callers can build one engine per series.
func Factory(opts ...Option) service.ForecasterFactory {
    return func(series []models.PricePoint) service.Forecaster {
        return NewEngine(series, opts...)
    }
}

// NewEngine copies series; later changes to the caller's slice are not observed.
func NewEngine(series []models.PricePoint, opts ...Option) *Engine {
    cp := make([]models.PricePoint, len(series))
    copy(cp, series)
    e := &Engine{
        series:       cp,
        prices:       features.Prices(cp),
        clock:        time.Now,
        fallbackBase: DefaultFallbackBase,
        log:          logger.NewNop(),
    }
    for _, opt := range opts {
        opt(e)
    }
    if e.seeds == nil {
        e.seeds = newSeedSource(defaultSeed())
    }
    if e.newRand == nil {
        e.newRand = func() Rand { return rand.New(rand.NewSource(e.seeds.next())) }
    }
    return e
}

// Series returns a copy of the history the engine was built with.
func (e *Engine) Series() []models.PricePoint {
    cp := make([]models.PricePoint, len(e.series))
    copy(cp, e.series)
    return cp
}

// run is the per-invocation working set of one forecaster.
type run struct {
    ctx     context.Context
    prices  []float64
    horizon int
    now     time.Time
    rnd     Rand
}

func (r run) point(i int, price, confidence float64) models.ForecastPoint {
    return models.ForecastPoint{Date: util.MonthsAhead(r.now, i), Price: price, Confidence: confidence}
}

// Forecast runs one model. It never fails: any internal fault yields the
// fallback shape with exactly horizon predictions.
func (e *Engine) Forecast(ctx context.Context, kind models.ModelKind, horizon int) models.ModelResult {
    now := e.clock()
    if kind == models.KindEnsemble {
        results := e.fanOut(ctx, now, horizon)
        return e.ensemble(results, now, horizon, e.newRand())
    }
    m, ok := lookup(kind)
    if !ok {
        r := e.newRun(ctx, now, horizon)
        return e.degrade(kind.Label(), r, fmt.Errorf("%w: %q", ErrUnknownModel, kind))
    }
    return e.runModel(m, e.newRun(ctx, now, horizon))
}

// ForecastAll runs the four base models concurrently and combines them,
// returning results in models.AllKinds order. Every result shares one
// invocation instant, so dates agree across models.
func (e *Engine) ForecastAll(ctx context.Context, horizon int) []models.ModelResult {
    now := e.clock()
    results := e.fanOut(ctx, now, horizon)
    out := make([]models.ModelResult, 0, len(results)+1)
    out = append(out, results...)
    return append(out, e.ensemble(results, now, horizon, e.newRand()))
}

func (e *Engine) newRun(ctx context.Context, now time.Time, horizon int) run {
    return run{ctx: ctx, prices: e.prices, horizon: horizon, now: now, rnd: e.newRand()}
}

type branch struct {
    m     model
    run   run
    spare Rand
}

// fanOut dispatches the base models and waits for all of them. A branch that
// misses the deadline resolves to its own fallback.
func (e *Engine) fanOut(ctx context.Context, now time.Time, horizon int) []models.ModelResult {
    if e.timeout > 0 {
        var cancel context.CancelFunc
        ctx, cancel = context.WithTimeout(ctx, e.timeout)
        defer cancel()
    }

    // random sources are drawn up front so results do not depend on scheduling
    kinds := models.BaseKinds()
    branches := make([]branch, len(kinds))
    for i, k := range kinds {
        m, _ := lookup(k)
        branches[i] = branch{m: m, run: e.newRun(ctx, now, horizon), spare: e.newRand()}
    }

    chans := make([]chan models.ModelResult, len(branches))
    for i := range branches {
        chans[i] = make(chan models.ModelResult, 1)
        go func(b branch, ch chan<- models.ModelResult) {
            ch <- e.runModel(b.m, b.run)
        }(branches[i], chans[i])
    }

    results := make([]models.ModelResult, len(branches))
    for i, b := range branches {
        select {
        case res := <-chans[i]:
            results[i] = res
        case <-ctx.Done():
            // prefer a result that raced the deadline
            select {
            case res := <-chans[i]:
                results[i] = res
            default:
                r := b.run
                r.rnd = b.spare
                results[i] = e.degrade(b.m.kind.Label(), r, ctx.Err())
            }
        }
    }
    return results
}

func (e *Engine) runModel(m model, r run) (res models.ModelResult) {
    start := time.Now()
    label := m.kind.Label()
    degraded := false
    defer func() {
        if p := recover(); p != nil {
            degraded = true
            res = e.degrade(label, r, fmt.Errorf("panic: %v", p))
        }
        e.observe(label, degraded, time.Since(start))
    }()

    if err := r.ctx.Err(); err != nil {
        degraded = true
        return e.degrade(label, r, err)
    }
    if len(r.prices) < m.minPoints {
        degraded = true
        return e.degrade(label, r, fmt.Errorf("%w: have %d, need %d", ErrInsufficientHistory, len(r.prices), m.minPoints))
    }
    if r.horizon < 1 {
        degraded = true
        return e.degrade(label, r, fmt.Errorf("forecast: horizon %d", r.horizon))
    }

    preds, err := m.fn(r)
    if err == nil {
        err = checkPredictions(preds, r.horizon)
    }
    if err != nil {
        degraded = true
        return e.degrade(label, r, err)
    }
    return models.ModelResult{
        Model:       label,
        Predictions: preds,
        Accuracy:    m.accuracy,
        MSE:         features.MSE(features.Last(r.prices, 5), features.First(pricesOf(preds), 5)),
    }
}

func (e *Engine) ensemble(results []models.ModelResult, now time.Time, horizon int, rnd Rand) (res models.ModelResult) {
    label := models.KindEnsemble.Label()
    r := run{ctx: context.Background(), prices: e.prices, horizon: horizon, now: now, rnd: rnd}
    defer func() {
        if p := recover(); p != nil {
            res = e.degrade(label, r, fmt.Errorf("panic: %v", p))
        }
    }()
    combined, err := Combine(results, horizon)
    if err != nil {
        return e.degrade(label, r, err)
    }
    return combined
}

func (e *Engine) degrade(label string, r run, cause error) models.ModelResult {
    e.log.Warn("forecaster degraded to fallback",
        logger.String("model", label),
        logger.Int("horizon", r.horizon),
        logger.Int("points", len(r.prices)),
        logger.Error(cause),
    )
    if e.metrics != nil {
        e.metrics.RecordError("forecast_fallback")
    }
    return Fallback(label, r.prices, r.horizon, e.fallbackBase, r.now, r.rnd)
}

func (e *Engine) observe(label string, degraded bool, d time.Duration) {
    if e.metrics == nil {
        return
    }
    e.metrics.RecordForecast(label, degraded, d.Seconds())
}

func checkPredictions(preds []models.ForecastPoint, horizon int) error {
    if len(preds) != horizon {
        return fmt.Errorf("forecast: got %d predictions, want %d", len(preds), horizon)
    }
    for i, p := range preds {
        if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) || p.Price <= 0 {
            return fmt.Errorf("%w at step %d: %v", ErrNumeric, i+1, p.Price)
        }
    }
    return nil
}

func pricesOf(preds []models.ForecastPoint) []float64 {
    out := make([]float64, len(preds))
    for i, p := range preds {
        out[i] = p.Price
    }
    return out
}
