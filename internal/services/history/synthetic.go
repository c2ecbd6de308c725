package history

import (
    "math"
    "time"

    "NFTCast/internal/domain/models"
    "NFTCast/pkg/util"
)

// Float64er is the random source the generator draws from.
type Float64er interface {
    Float64() float64
}

// Synthetic generates months+1 monthly points ending at now around base.
// Each point draws trend, noise, volume and market-cap multipliers in that order.
func Synthetic(rnd Float64er, now time.Time, months int, base float64) []models.PricePoint {
    if months < 0 {
        months = 0
    }
    out := make([]models.PricePoint, 0, months+1)
    for i := months; i >= 0; i-- {
        step := float64(i)
        trend := -0.02 + rnd.Float64()*0.04
        seasonality := math.Sin(2*math.Pi*step/12) * 0.1
        noise := (rnd.Float64() - 0.5) * 0.2

        raw := base * (1 + trend*step + seasonality + noise)
        volume := rnd.Float64()*1000 + 100
        // market cap follows the unfloored price
        marketCap := raw * (rnd.Float64()*10000 + 5000)

        out = append(out, models.PricePoint{
            Date:      util.FormatDay(util.MonthsAgo(now, i)),
            Price:     math.Max(raw, base*0.2),
            Volume:    volume,
            MarketCap: math.Max(marketCap, 0),
        })
    }
    return out
}
