package forecast

import (
    "math"
    "time"

    "NFTCast/internal/domain/models"
    "NFTCast/pkg/util"
)

// Fallback builds the degraded placeholder result. It cannot fail; a horizon
// below one yields no predictions.
func Fallback(label string, prices []float64, horizon int, defaultBase float64, now time.Time, rnd Rand) models.ModelResult {
    base := defaultBase
    if n := len(prices); n > 0 && prices[n-1] > 0 && !math.IsInf(prices[n-1], 0) {
        base = prices[n-1]
    }

    preds := make([]models.ForecastPoint, 0, max(horizon, 0))
    for i := 1; i <= horizon; i++ {
        step := float64(i)
        noise := (rnd.Float64() - 0.5) * 0.3
        trend := -0.03
        if rnd.Float64() > 0.5 {
            trend = 0.05
        }
        p := base * (1 + trend*step + noise)
        preds = append(preds, models.ForecastPoint{
            Date:       util.MonthsAhead(now, i),
            Price:      math.Max(p, base*0.3),
            Confidence: math.Max(0.6, 0.9-0.05*step),
        })
    }
    return models.ModelResult{Model: label, Predictions: preds, Accuracy: accuracyFallback, MSE: mseFallback}
}
