package out

import (
	"context"

	"heartrisk/internal/modules/intake/domain"
	intakeout "heartrisk/internal/modules/intake/port/out"
	"heartrisk/internal/platform/httpjson"
)

const PredictPath = "/api/predict"

type HTTPPredictor struct {
	client *httpjson.Client
}

func NewHTTPPredictor(client *httpjson.Client) intakeout.Predictor {
	return &HTTPPredictor{client: client}
}

func (p *HTTPPredictor) Predict(ctx context.Context, requestID string, req domain.PredictionRequest) (domain.PredictionResult, error) {
	var result domain.PredictionResult
	if err := p.client.Post(ctx, PredictPath, requestID, req, &result); err != nil {
		return domain.PredictionResult{}, err
	}
	return result, nil
}
