package service

import (
	"context"

	"NFTCast/internal/domain/models"
)

// Forecaster projects prices over the history it was built with.
type Forecaster interface {
	Forecast(ctx context.Context, kind models.ModelKind, horizon int) models.ModelResult
	ForecastAll(ctx context.Context, horizon int) []models.ModelResult
}

// ForecasterFactory builds a Forecaster over series.
type ForecasterFactory func(series []models.PricePoint) Forecaster

// HistoryProvider supplies the series a forecast is anchored on.
// ref may be nil when only a base price is known.
type HistoryProvider interface {
	History(ctx context.Context, ref *models.NFTRef, basePrice float64) (models.History, error)
}

// IdentifierResolver turns free-form user input into a marketplace identifier.
type IdentifierResolver interface {
	Resolve(input string) (models.Identifier, error)
}
