package forecast

import (
    "fmt"

    "NFTCast/internal/domain/models"
)

// EnsembleWeights blend the base models in models.BaseKinds order.
var EnsembleWeights = [4]float64{0.3, 0.25, 0.25, 0.2}

// Combine blends four base results period by period. Dates come from the first
// (gradient) result. The error score is the plain mean of the inputs' mse.
func Combine(results []models.ModelResult, horizon int) (models.ModelResult, error) {
    if len(results) != len(EnsembleWeights) {
        return models.ModelResult{}, fmt.Errorf("combine: got %d results, want %d", len(results), len(EnsembleWeights))
    }
    if horizon < 1 {
        return models.ModelResult{}, fmt.Errorf("combine: horizon %d", horizon)
    }
    for _, res := range results {
        if len(res.Predictions) < horizon {
            return models.ModelResult{}, fmt.Errorf("combine: %s has %d predictions, want %d", res.Model, len(res.Predictions), horizon)
        }
    }

    preds := make([]models.ForecastPoint, horizon)
    for i := 0; i < horizon; i++ {
        var price, conf float64
        for k, res := range results {
            price += EnsembleWeights[k] * res.Predictions[i].Price
            conf += EnsembleWeights[k] * res.Predictions[i].Confidence
        }
        preds[i] = models.ForecastPoint{Date: results[0].Predictions[i].Date, Price: price, Confidence: conf}
    }

    mse := 0.0
    for _, res := range results {
        mse += res.MSE
    }
    return models.ModelResult{
        Model:       models.KindEnsemble.Label(),
        Predictions: preds,
        Accuracy:    accuracyEnsemble,
        MSE:         mse / float64(len(results)),
    }, nil
}
