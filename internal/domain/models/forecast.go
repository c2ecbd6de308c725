package models

// PricePoint is one day of market history for a collection or token.
type PricePoint struct {
	Date      string  `json:"date" validate:"required,datetime=2006-01-02"`
	Price     float64 `json:"price" validate:"gt=0"`
	Volume    float64 `json:"volume,omitempty" validate:"gte=0"`
	MarketCap float64 `json:"marketCap,omitempty" validate:"gte=0"`
}

// ForecastPoint is one projected period.
type ForecastPoint struct {
	Date       string  `json:"date"`
	Price      float64 `json:"price"`
	Confidence float64 `json:"confidence"`
}

// ModelResult is the output of a single forecaster run.
// Accuracy is a fixed per-model tag, not a measured quantity.
type ModelResult struct {
	Model       string          `json:"model"`
	Predictions []ForecastPoint `json:"predictions"`
	Accuracy    float64         `json:"accuracy"`
	MSE         float64         `json:"mse"`
}

// ModelKind selects a forecaster.
type ModelKind string

const (
	KindGradient       ModelKind = "gradient"
	KindSequential     ModelKind = "sequential"
	KindBootstrap      ModelKind = "bootstrap"
	KindAutoregressive ModelKind = "autoregressive"
	KindEnsemble       ModelKind = "ensemble"
)

// Label returns the display name the dashboard uses for the model.
func (k ModelKind) Label() string {
	switch k {
	case KindGradient:
		return "XGBoost"
	case KindSequential:
		return "LSTM"
	case KindBootstrap:
		return "Random Forest"
	case KindAutoregressive:
		return "ARIMA"
	case KindEnsemble:
		return "Ensemble"
	default:
		return string(k)
	}
}

// IsValid reports whether k names a known forecaster.
func (k ModelKind) IsValid() bool {
	switch k {
	case KindGradient, KindSequential, KindBootstrap, KindAutoregressive, KindEnsemble:
		return true
	default:
		return false
	}
}

// BaseKinds lists the four single-series forecasters in ensemble weight order.
func BaseKinds() []ModelKind {
	return []ModelKind{KindGradient, KindSequential, KindBootstrap, KindAutoregressive}
}

// AllKinds lists every forecaster, ensemble last.
func AllKinds() []ModelKind {
	return append(BaseKinds(), KindEnsemble)
}

// History sources.
const (
	SourceSynthetic = "synthetic"
	SourceSnapshots = "snapshots"
	SourceCaller    = "caller"
)

// History is an ascending price series plus where it came from.
type History struct {
	Points []PricePoint `json:"points"`
	Source string       `json:"source"`
}
