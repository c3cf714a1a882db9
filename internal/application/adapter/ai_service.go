package adapter

import "context"

// AdviceService turns a free-form prompt into financial advice text.
type AdviceService interface {
	// GenerateAdvice returns the model answer for prompt. An empty answer is not an error.
	GenerateAdvice(ctx context.Context, prompt string) (string, error)

	// IsAvailable checks if the service is properly configured.
	IsAvailable() bool
}

// PredictionService scores a feature vector. The score is opaque to callers.
type PredictionService interface {
	Predict(ctx context.Context, features []float64) (float64, error)
}
