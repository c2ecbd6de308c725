package forecast

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "NFTCast/internal/domain/models"
)

func stubResult(name string, mse float64, prices, confs []float64) models.ModelResult {
    preds := make([]models.ForecastPoint, len(prices))
    for i := range prices {
        preds[i] = models.ForecastPoint{Date: name + "-" + string(rune('a'+i)), Price: prices[i], Confidence: confs[i]}
    }
    return models.ModelResult{Model: name, Predictions: preds, MSE: mse}
}

func TestCombineIsWeightedSum(t *testing.T) {
    in := []models.ModelResult{
        stubResult("g", 1, []float64{10, 20}, []float64{0.9, 0.8}),
        stubResult("s", 2, []float64{30, 40}, []float64{0.8, 0.7}),
        stubResult("b", 3, []float64{50, 60}, []float64{0.7, 0.6}),
        stubResult("a", 6, []float64{70, 80}, []float64{0.6, 0.5}),
    }
    out, err := Combine(in, 2)
    require.NoError(t, err)

    assert.Equal(t, "Ensemble", out.Model)
    assert.Equal(t, 0.91, out.Accuracy)
    assert.InDelta(t, 3.0, out.MSE, 1e-12)
    require.Len(t, out.Predictions, 2)

    assert.InDelta(t, 0.3*10+0.25*30+0.25*50+0.2*70, out.Predictions[0].Price, 1e-9)
    assert.InDelta(t, 0.3*20+0.25*40+0.25*60+0.2*80, out.Predictions[1].Price, 1e-9)
    assert.InDelta(t, 0.3*0.9+0.25*0.8+0.25*0.7+0.2*0.6, out.Predictions[0].Confidence, 1e-9)
    // dates come from the gradient result
    assert.Equal(t, "g-a", out.Predictions[0].Date)
    assert.Equal(t, "g-b", out.Predictions[1].Date)
}

func TestCombineRejectsShortInputs(t *testing.T) {
    full := stubResult("g", 0, []float64{1, 2}, []float64{1, 1})
    short := stubResult("s", 0, []float64{1}, []float64{1})

    _, err := Combine([]models.ModelResult{full, full, full}, 2)
    assert.Error(t, err)

    _, err = Combine([]models.ModelResult{full, short, full, full}, 2)
    assert.Error(t, err)

    _, err = Combine([]models.ModelResult{full, full, full, full}, 0)
    assert.Error(t, err)
}

func TestWeightsSumToOne(t *testing.T) {
    sum := 0.0
    for _, w := range EnsembleWeights {
        sum += w
    }
    assert.InDelta(t, 1.0, sum, 1e-12)
}
