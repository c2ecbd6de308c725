package usecase

import (
	"context"
	"fmt"
	"time"

	"NFTCast/internal/domain/models"
	"NFTCast/internal/domain/service"
	svcmetrics "NFTCast/internal/service/metrics"
	"NFTCast/pkg/util"
)

// ModelAll selects every forecaster plus the ensemble.
const ModelAll = "all"

// ForecastUseCase runs the engine over a caller-supplied series.
type ForecastUseCase struct {
	newForecaster service.ForecasterFactory
	horizons      HorizonPolicy
}

func NewForecastUseCase(newForecaster service.ForecasterFactory, horizons HorizonPolicy) *ForecastUseCase {
	return &ForecastUseCase{newForecaster: newForecaster, horizons: horizons}
}

type ForecastParams struct {
	Series  []models.PricePoint
	Model   string
	Horizon int
}

type ForecastResult struct {
	Horizon int                  `json:"horizon"`
	Source  string               `json:"source"`
	Results []models.ModelResult `json:"results"`
}

func (uc *ForecastUseCase) Forecast(ctx context.Context, p ForecastParams) (*ForecastResult, error) {
	start := time.Now()
	defer func() {
		svcmetrics.AnalysisLatency.WithLabelValues("forecast").Observe(time.Since(start).Seconds())
	}()

	horizon, err := uc.horizons.Resolve(p.Horizon)
	if err != nil {
		return nil, uc.fail("validate", err)
	}
	if err := ValidateSeries(p.Series); err != nil {
		return nil, uc.fail("validate", err)
	}

	model := p.Model
	if model == "" {
		model = ModelAll
	}
	f := uc.newForecaster(p.Series)

	var results []models.ModelResult
	if model == ModelAll {
		results = f.ForecastAll(ctx, horizon)
	} else {
		kind := models.ModelKind(model)
		if !kind.IsValid() {
			return nil, uc.fail("validate", fmt.Errorf("%w: %q", models.ErrUnknownModel, model))
		}
		results = []models.ModelResult{f.Forecast(ctx, kind, horizon)}
	}
	return &ForecastResult{Horizon: horizon, Source: models.SourceCaller, Results: results}, nil
}

func (uc *ForecastUseCase) fail(stage string, err error) error {
	svcmetrics.AnalysisErrors.WithLabelValues("forecast", stage).Inc()
	return err
}

// ValidateSeries requires a non-empty series of positive prices on strictly ascending days.
func ValidateSeries(series []models.PricePoint) error {
	if len(series) == 0 {
		return fmt.Errorf("%w: empty", models.ErrInvalidSeries)
	}
	var prev time.Time
	for i, pt := range series {
		d, ok := util.ParseDay(pt.Date)
		if !ok {
			return fmt.Errorf("%w: point %d has bad date %q", models.ErrInvalidSeries, i, pt.Date)
		}
		if !(pt.Price > 0) {
			return fmt.Errorf("%w: point %d has non-positive price", models.ErrInvalidSeries, i)
		}
		if i > 0 && !d.After(prev) {
			return fmt.Errorf("%w: dates must ascend (point %d)", models.ErrInvalidSeries, i)
		}
		prev = d
	}
	return nil
}
