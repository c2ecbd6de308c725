package features

import (
    "math"
)

// Intner draws uniform integers in [0,n).
type Intner interface {
    Intn(n int) int
}

// Slope returns the ordinary least-squares slope of ys against xs.
// A single point or zero variance in xs yields 0.
func Slope(xs, ys []float64) float64 {
    n := len(xs)
    if n != len(ys) || n < 2 {
        return 0
    }
    var sx, sy, sxx, sxy float64
    for i := 0; i < n; i++ {
        sx += xs[i]
        sy += ys[i]
        sxx += xs[i] * xs[i]
        sxy += xs[i] * ys[i]
    }
    fn := float64(n)
    den := fn*sxx - sx*sx
    if den == 0 {
        return 0
    }
    return (fn*sxy - sx*sy) / den
}

// Trend computes the per-step drift of prices: OLS slope against index normalized by the last price.
func Trend(prices []float64) float64 {
    if len(prices) < 2 {
        return 0
    }
    xs := make([]float64, len(prices))
    for i := range xs {
        xs[i] = float64(i)
    }
    return Slope(xs, prices) / prices[len(prices)-1]
}

// Seasonality is a fixed-amplitude annual cycle proxy for horizon step period.
func Seasonality(period int) float64 {
    return math.Sin(2*math.Pi*float64(period)/12) * 0.02
}

// Volatility computes the population standard deviation of period-over-period returns.
// Fewer than 2 prices yields the 0.1 floor.
func Volatility(prices []float64) float64 {
    if len(prices) < 2 {
        return 0.1
    }
    returns := make([]float64, 0, len(prices)-1)
    for i := 1; i < len(prices); i++ {
        returns = append(returns, (prices[i]-prices[i-1])/prices[i-1])
    }
    mean := 0.0
    for _, r := range returns {
        mean += r
    }
    mean /= float64(len(returns))
    variance := 0.0
    for _, r := range returns {
        variance += (r - mean) * (r - mean)
    }
    variance /= float64(len(returns))
    return math.Sqrt(variance)
}

// Difference returns first differences; its length is len(series)-1.
func Difference(series []float64) []float64 {
    if len(series) < 2 {
        return nil
    }
    out := make([]float64, 0, len(series)-1)
    for i := 1; i < len(series); i++ {
        out = append(out, series[i]-series[i-1])
    }
    return out
}

// ARCoefficient regresses each difference on its predecessor and clamps the slope to [-0.9, 0.9].
// Fewer than 2 differences yields 0.5.
func ARCoefficient(diffs []float64) float64 {
    if len(diffs) < 2 {
        return 0.5
    }
    m := Slope(diffs[:len(diffs)-1], diffs[1:])
    return math.Max(-0.9, math.Min(0.9, m))
}

// MACoefficient is fixed, not estimated.
func MACoefficient(_ []float64) float64 {
    return 0.3
}

// BootstrapSample draws k distinct indices from [0,n) without replacement, in draw order.
func BootstrapSample(rnd Intner, n, k int) []int {
    if k > n {
        k = n
    }
    if k <= 0 {
        return nil
    }
    pool := make([]int, n)
    for i := range pool {
        pool[i] = i
    }
    out := make([]int, 0, k)
    for i := 0; i < k; i++ {
        j := rnd.Intn(len(pool))
        out = append(out, pool[j])
        pool = append(pool[:j], pool[j+1:]...)
    }
    return out
}

// MSE is the mean squared error of position-aligned sequences.
// Mismatched lengths yield 0 rather than an error.
func MSE(actual, predicted []float64) float64 {
    if len(actual) != len(predicted) || len(actual) == 0 {
        return 0
    }
    sum := 0.0
    for i := range actual {
        d := actual[i] - predicted[i]
        sum += d * d
    }
    return sum / float64(len(actual))
}

// Last returns the trailing n values of xs (all of xs if shorter).
func Last(xs []float64, n int) []float64 {
    if len(xs) <= n {
        return xs
    }
    return xs[len(xs)-n:]
}

// First returns the leading n values of xs (all of xs if shorter).
func First(xs []float64, n int) []float64 {
    if len(xs) <= n {
        return xs
    }
    return xs[:n]
}
