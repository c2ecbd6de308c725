package usecase

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"NFTCast/internal/domain/models"
)

// Initial live dashboard figures.
const (
	liveStartPrice     = 45.2
	liveStartChange    = 2.3
	liveStartChangePct = 5.4
	liveStartVolume    = 1250
	liveStartMarketCap = 2500000
)

// LiveCommand controls a running stream.
type LiveCommand string

const (
	LivePause  LiveCommand = "pause"
	LiveResume LiveCommand = "resume"
)

// LiveTicker simulates the live price feed: a ±1% multiplicative random walk.
type LiveTicker struct {
	interval time.Duration
	supply   float64
	clock    func() time.Time

	mu   sync.Mutex
	seed *rand.Rand
}

func NewLiveTicker(interval time.Duration, supply float64, seed int64) *LiveTicker {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	if supply <= 0 {
		supply = 55000
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &LiveTicker{interval: interval, supply: supply, clock: time.Now, seed: rand.New(rand.NewSource(seed))}
}

// LiveSession is the state of one stream. Not safe for concurrent use.
type LiveSession struct {
	tick   models.LiveTick
	supply float64
	rnd    *rand.Rand
	clock  func() time.Time
}

// NewSession starts a stream at price, or at the dashboard's opening price when price <= 0.
func (t *LiveTicker) NewSession(price float64) *LiveSession {
	t.mu.Lock()
	src := rand.NewSource(t.seed.Int63())
	t.mu.Unlock()

	tick := models.LiveTick{
		CurrentPrice:     liveStartPrice,
		Change24h:        liveStartChange,
		ChangePercent24h: liveStartChangePct,
		Volume24h:        liveStartVolume,
		MarketCap:        liveStartMarketCap,
	}
	if price > 0 && price != liveStartPrice {
		tick.CurrentPrice = price
		tick.MarketCap = price * t.supply
	}
	tick.Trend, tick.Volatility = labels(tick.ChangePercent24h)
	tick.LastUpdated = t.clock().UTC()
	return &LiveSession{tick: tick, supply: t.supply, rnd: rand.New(src), clock: t.clock}
}

// Current returns the latest tick without advancing.
func (s *LiveSession) Current() models.LiveTick { return s.tick }

// Next advances the walk by one step.
func (s *LiveSession) Next() models.LiveTick {
	prev := s.tick
	vol := (s.rnd.Float64() - 0.5) * 0.02
	price := prev.CurrentPrice * (1 + vol)
	change := price - prev.CurrentPrice

	next := models.LiveTick{
		CurrentPrice:     price,
		Change24h:        change,
		ChangePercent24h: change / prev.CurrentPrice * 100,
		Volume24h:        prev.Volume24h + (s.rnd.Float64()-0.5)*100,
		MarketCap:        price * s.supply,
		LastUpdated:      s.clock().UTC(),
	}
	next.Trend, next.Volatility = labels(next.ChangePercent24h)
	s.tick = next
	return next
}

func labels(changePct float64) (trend, volatility string) {
	trend = "Bearish"
	if changePct >= 0 {
		trend = "Bullish"
	}
	switch a := math.Abs(changePct); {
	case a > 5:
		volatility = "High"
	case a > 2:
		volatility = "Medium"
	default:
		volatility = "Low"
	}
	return trend, volatility
}

// Run emits the opening tick, then one tick per interval while not paused, until ctx ends,
// cmds closes, or emit fails.
func (t *LiveTicker) Run(ctx context.Context, price float64, cmds <-chan LiveCommand, emit func(models.LiveTick) error) error {
	s := t.NewSession(price)
	if err := emit(s.Current()); err != nil {
		return err
	}

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	paused := false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd, ok := <-cmds:
			if !ok {
				return nil
			}
			switch cmd {
			case LivePause:
				paused = true
			case LiveResume:
				paused = false
			}
		case <-ticker.C:
			if paused {
				continue
			}
			if err := emit(s.Next()); err != nil {
				return err
			}
		}
	}
}
