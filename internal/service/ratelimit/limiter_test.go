package ratelimit

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
)

func TestAllowRefills(t *testing.T) {
    now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
    l := New(WithClock(func() time.Time { return now }))

    assert.True(t, l.Allow("1.2.3.4", 2, 1))
    assert.True(t, l.Allow("1.2.3.4", 2, 1))
    assert.False(t, l.Allow("1.2.3.4", 2, 1))
    assert.Equal(t, time.Second, l.RetryAfter("1.2.3.4"))

    // other keys have their own bucket
    assert.True(t, l.Allow("5.6.7.8", 2, 1))

    now = now.Add(1500 * time.Millisecond)
    assert.True(t, l.Allow("1.2.3.4", 2, 1))
    assert.False(t, l.Allow("1.2.3.4", 2, 1))
}

func TestAllowCapsAtCapacity(t *testing.T) {
    now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
    l := New(WithClock(func() time.Time { return now }))
    assert.True(t, l.Allow("k", 1, 10))
    now = now.Add(time.Hour)
    assert.True(t, l.Allow("k", 1, 10))
    assert.False(t, l.Allow("k", 1, 10))
}

func TestSweep(t *testing.T) {
    now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
    l := New(WithClock(func() time.Time { return now }))
    l.Allow("old", 5, 1)
    now = now.Add(10 * time.Minute)
    l.Allow("fresh", 5, 1)

    assert.Equal(t, 1, l.Sweep(5*time.Minute))
    assert.Equal(t, 1, l.Len())
    assert.Equal(t, time.Duration(0), l.RetryAfter("fresh"))
}
