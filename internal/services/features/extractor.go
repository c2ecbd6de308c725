package features

import (
    "math"

    "NFTCast/internal/domain/models"
)

// Prices projects a history onto its price column.
func Prices(points []models.PricePoint) []float64 {
    out := make([]float64, len(points))
    for i, p := range points {
        out[i] = p.Price
    }
    return out
}

// ComputeLogReturns computes log returns r_t = ln(P_t / P_{t-1}).
// It returns a slice of length len(points)-1, or nil if insufficient data.
func ComputeLogReturns(points []models.PricePoint) []float64 {
    if len(points) < 2 {
        return nil
    }
    out := make([]float64, 0, len(points)-1)
    for i := 1; i < len(points); i++ {
        prev := points[i-1].Price
        cur := points[i].Price
        if prev <= 0 || cur <= 0 {
            out = append(out, 0)
            continue
        }
        out = append(out, math.Log(cur/prev))
    }
    return out
}

// RealizedVolatility computes annualized realized volatility over the trailing window
// using the provided number of periods per year.
func RealizedVolatility(logReturns []float64, window int, periodsPerYear float64) float64 {
    if window <= 1 || len(logReturns) < window {
        return 0
    }
    sum := 0.0
    sum2 := 0.0
    for i := len(logReturns) - window; i < len(logReturns); i++ {
        r := logReturns[i]
        sum += r
        sum2 += r * r
    }
    n := float64(window)
    mean := sum / n
    variance := (sum2 - n*mean*mean) / (n - 1)
    if variance < 0 {
        variance = 0
    }
    return math.Sqrt(variance * periodsPerYear)
}

// PeriodsPerYear returns the sampling frequency of a history source.
func PeriodsPerYear(interval string) float64 {
    switch interval {
    case "1d", "daily":
        return 365
    case "1w", "weekly":
        return 52
    default:
        return 12
    }
}
