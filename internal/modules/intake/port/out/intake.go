package out

import (
	"context"

	"heartrisk/internal/modules/intake/domain"
)

// Predictor is the remote classification service.
type Predictor interface {
	Predict(ctx context.Context, requestID string, req domain.PredictionRequest) (domain.PredictionResult, error)
}
