package models

import "time"

// Analysis is a consolidated forecast view for one token.
// Note: no transport (json/http) concerns beyond field names.
type Analysis struct {
	ID              string          `json:"id"`
	NFT             NFTDetails      `json:"nft"`
	CurrentPrice    float64         `json:"currentPrice"`
	Predictions     []ForecastPoint `json:"predictions"`
	ModelComparison []ModelResult   `json:"modelComparison"`
	HistoricalData  []PricePoint    `json:"historicalData"`
	HistorySource   string          `json:"historySource"`
	Volatility      float64         `json:"volatility"` // annualized, from HistoricalData
	GeneratedAt     time.Time       `json:"generatedAt"`
}

// LiveTick is one simulated market update pushed to the live dashboard.
type LiveTick struct {
	CurrentPrice     float64   `json:"currentPrice"`
	Change24h        float64   `json:"change24h"`
	ChangePercent24h float64   `json:"changePercent24h"`
	Volume24h        float64   `json:"volume24h"`
	MarketCap        float64   `json:"marketCap"`
	Trend            string    `json:"trend"`      // "Bullish" | "Bearish"
	Volatility       string    `json:"volatility"` // "High" | "Medium" | "Low"
	LastUpdated      time.Time `json:"lastUpdated"`
}
