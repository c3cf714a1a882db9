package adapters

import (
	"context"
	"fmt"
	"math"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

// defaultWeights score the vector built by valueobject.ProfileFeatures:
// seven cost ratios, the total ratio, adults and children.
var defaultWeights = []float64{-2.5, -1.5, -1.2, -1.0, -0.8, -1.2, -0.6, -4.0, 0.15, -0.1}

const defaultBias = 3.0

// LogisticPredictor scores a financial profile with a logistic model. The score
// is the probability, in (0, 1), that the household budget is sustainable.
type LogisticPredictor struct {
	weights []float64
	bias    float64
}

var _ adapter.PredictionService = (*LogisticPredictor)(nil)

// NewLogisticPredictor creates a predictor with the built-in coefficients.
func NewLogisticPredictor() *LogisticPredictor {
	weights := make([]float64, len(defaultWeights))
	copy(weights, defaultWeights)
	return &LogisticPredictor{weights: weights, bias: defaultBias}
}

// NewLogisticPredictorWithWeights creates a predictor with custom coefficients.
func NewLogisticPredictorWithWeights(weights []float64, bias float64) (*LogisticPredictor, error) {
	if len(weights) != valueobject.ProfileFeatureCount {
		return nil, fmt.Errorf("expected %d weights, got %d", valueobject.ProfileFeatureCount, len(weights))
	}
	w := make([]float64, len(weights))
	copy(w, weights)
	return &LogisticPredictor{weights: w, bias: bias}, nil
}

// Predict returns sigmoid(bias + w·features).
func (p *LogisticPredictor) Predict(ctx context.Context, features []float64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(features) != len(p.weights) {
		return 0, fmt.Errorf("expected %d features, got %d", len(p.weights), len(features))
	}

	z := p.bias
	for i, x := range features {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, fmt.Errorf("feature %d is not a finite number", i)
		}
		z += p.weights[i] * x
	}
	return 1 / (1 + math.Exp(-z)), nil
}
