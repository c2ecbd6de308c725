package forecast

import (
    "math"

    "NFTCast/internal/domain/models"
    "NFTCast/internal/services/features"
)

// Fixed per-model accuracy tags. Not measured.
const (
    accuracyGradient       = 0.87
    accuracySequential     = 0.82
    accuracyBootstrap      = 0.85
    accuracyAutoregressive = 0.79
    accuracyEnsemble       = 0.91
    accuracyFallback       = 0.75
    mseFallback            = 0.1
)

const (
    trendWindow    = 10
    sequenceLength = 10
    numTrees       = 10
    sampleFraction = 0.8
    treeWindow     = 5
    ridgeLambda    = 1e-2
)

type model struct {
    kind      models.ModelKind
    accuracy  float64
    minPoints int
    fn        func(r run) ([]models.ForecastPoint, error)
}

var registry = map[models.ModelKind]model{
    models.KindGradient:       {kind: models.KindGradient, accuracy: accuracyGradient, minPoints: 2, fn: gradient},
    models.KindSequential:     {kind: models.KindSequential, accuracy: accuracySequential, minPoints: sequenceLength, fn: sequential},
    models.KindBootstrap:      {kind: models.KindBootstrap, accuracy: accuracyBootstrap, minPoints: 2, fn: bootstrap},
    models.KindAutoregressive: {kind: models.KindAutoregressive, accuracy: accuracyAutoregressive, minPoints: 2, fn: autoregressive},
}

func lookup(kind models.ModelKind) (model, bool) {
    m, ok := registry[kind]
    return m, ok
}

// gradient projects the recent trend with a seasonal term and volatility-scaled noise.
func gradient(r run) ([]models.ForecastPoint, error) {
    base := r.prices[len(r.prices)-1]
    trend := features.Trend(features.Last(r.prices, trendWindow))
    vol := features.Volatility(r.prices)

    out := make([]models.ForecastPoint, 0, r.horizon)
    for i := 1; i <= r.horizon; i++ {
        if err := r.ctx.Err(); err != nil {
            return nil, err
        }
        step := float64(i)
        noise := (r.rnd.Float64() - 0.5) * vol
        p := base * (1 + trend*step + features.Seasonality(i) + noise)
        out = append(out, r.point(i, math.Max(p, base*0.3), math.Max(0.6, 0.95-0.05*step)))
    }
    return out, nil
}

// sequential fits a ridge map from a price window to the following price,
// then feeds each raw prediction back into the window.
func sequential(r run) ([]models.ForecastPoint, error) {
    n := len(r.prices)
    scale := r.prices[n-1]
    norm := make([]float64, n)
    for i, p := range r.prices {
        norm[i] = p / scale
    }

    var xs [][]float64
    var ys []float64
    for j := 0; j+sequenceLength < n; j++ {
        xs = append(xs, norm[j:j+sequenceLength])
        ys = append(ys, norm[j+sequenceLength])
    }
    // the trailing window is anchored to the last known price
    xs = append(xs, norm[n-sequenceLength:])
    ys = append(ys, norm[n-1])

    fit, err := features.FitRidge(xs, ys, ridgeLambda)
    if err != nil {
        return nil, err
    }

    window := make([]float64, sequenceLength)
    copy(window, norm[n-sequenceLength:])
    floor := r.prices[0] * 0.3

    out := make([]models.ForecastPoint, 0, r.horizon)
    for i := 1; i <= r.horizon; i++ {
        if err := r.ctx.Err(); err != nil {
            return nil, err
        }
        next := fit.Predict(window)
        out = append(out, r.point(i, math.Max(next*scale, floor), math.Max(0.65, 0.9-0.04*float64(i))))
        window = append(window[1:], next)
    }
    return out, nil
}

// bootstrap averages numTrees trend projections, each over an 80% sample drawn without replacement.
func bootstrap(r run) ([]models.ForecastPoint, error) {
    n := len(r.prices)
    k := int(math.Floor(float64(n) * sampleFraction))
    last := r.prices[n-1]
    sample := make([]float64, 0, k)

    out := make([]models.ForecastPoint, 0, r.horizon)
    for i := 1; i <= r.horizon; i++ {
        if err := r.ctx.Err(); err != nil {
            return nil, err
        }
        step := float64(i)
        sum := 0.0
        for t := 0; t < numTrees; t++ {
            sample = sample[:0]
            for _, idx := range features.BootstrapSample(r.rnd, n, k) {
                sample = append(sample, r.prices[idx])
            }
            trend := features.Trend(features.Last(sample, treeWindow))
            base := sample[len(sample)-1]
            noise := (r.rnd.Float64() - 0.5) * 0.1
            sum += base * (1 + trend*step + noise)
        }
        avg := sum / numTrees
        out = append(out, r.point(i, math.Max(avg, last*0.4), math.Max(0.7, 0.92-0.03*step)))
    }
    return out, nil
}

// autoregressive is an ARMA(1,1)-shaped recurrence on the price level.
// The AR term always references the series' penultimate actual value.
func autoregressive(r run) ([]models.ForecastPoint, error) {
    n := len(r.prices)
    diffs := features.Difference(r.prices)
    ar := features.ARCoefficient(diffs)
    ma := features.MACoefficient(diffs)
    penultimate := r.prices[n-2]

    lastPrice := r.prices[n-1]
    lastError := 0.0

    out := make([]models.ForecastPoint, 0, r.horizon)
    for i := 1; i <= r.horizon; i++ {
        if err := r.ctx.Err(); err != nil {
            return nil, err
        }
        prediction := lastPrice + ar*(lastPrice-penultimate) + ma*lastError
        out = append(out, r.point(i, math.Max(prediction, lastPrice*0.5), math.Max(0.6, 0.88-0.06*float64(i))))
        lastPrice = prediction
        lastError = (r.rnd.Float64() - 0.5) * lastPrice * 0.05
    }
    return out, nil
}
