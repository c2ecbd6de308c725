package forecast

import (
    "math/rand"
    "sync"
    "time"
)

// Rand is the random source a single forecaster run draws from.
// *rand.Rand satisfies it.
type Rand interface {
    Float64() float64
    Intn(n int) int
}

// seedSource hands out per-run seeds from one root generator.
type seedSource struct {
    mu   sync.Mutex
    root *rand.Rand
}

func newSeedSource(seed int64) *seedSource {
    return &seedSource{root: rand.New(rand.NewSource(seed))}
}

func (s *seedSource) next() int64 {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.root.Int63()
}

func defaultSeed() int64 { return time.Now().UnixNano() }

// ConstRand always returns the same value. Useful for pinning noise terms to zero (0.5).
type ConstRand float64

func (c ConstRand) Float64() float64 { return float64(c) }

func (c ConstRand) Intn(n int) int {
    i := int(float64(c) * float64(n))
    if i >= n {
        i = n - 1
    }
    if i < 0 {
        i = 0
    }
    return i
}
