package usecase

import (
	"context"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	"heartrisk/internal/modules/intake/domain"
	"heartrisk/internal/modules/intake/dto"
	intakein "heartrisk/internal/modules/intake/port/in"
	"heartrisk/internal/modules/intake/service"
	apperrors "heartrisk/internal/platform/errors"
)

type Interactor struct {
	svc    *service.IntakeService
	logger hclog.Logger

	mu      sync.Mutex
	busy    bool
	current dto.PredictionOutput
	hasCur  bool
}

func NewInteractor(svc *service.IntakeService, logger hclog.Logger) intakein.Usecase {
	return &Interactor{svc: svc, logger: logger}
}

func (i *Interactor) Derive(_ context.Context, input dto.DeriveInput) (dto.DeriveOutput, error) {
	return i.svc.Derive(input), nil
}

// Submit runs one prediction round trip. Only one submission may be in
// flight; the busy flag is released however the call ends, and a failed
// call leaves the previous result in place.
func (i *Interactor) Submit(ctx context.Context, input dto.SubmitInput) (dto.PredictionOutput, error) {
	state, err := i.svc.FormState(input.Form)
	if err != nil {
		return dto.PredictionOutput{}, err
	}
	if !i.acquire() {
		return dto.PredictionOutput{}, apperrors.ErrBusy
	}
	defer i.release()

	requestID, req, result, err := i.svc.Predict(ctx, state)
	if err != nil {
		i.logger.Error("prediction failed", "request_id", requestID, "error", err)
		return dto.PredictionOutput{}, err
	}
	out := toOutput(requestID, req, result, i.svc.Now().Format("2006-01-02T15:04:05Z07:00"))

	i.mu.Lock()
	i.current = out
	i.hasCur = true
	i.mu.Unlock()

	i.logger.Info("prediction received", "request_id", requestID, "prediction", result.Prediction)
	return out, nil
}

func (i *Interactor) Busy() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.busy
}

func (i *Interactor) Current() (dto.PredictionOutput, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.current, i.hasCur
}

func (i *Interactor) acquire() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.busy {
		return false
	}
	i.busy = true
	return true
}

func (i *Interactor) release() {
	i.mu.Lock()
	i.busy = false
	i.mu.Unlock()
}

func toOutput(requestID string, req domain.PredictionRequest, result domain.PredictionResult, at string) dto.PredictionOutput {
	return dto.PredictionOutput{
		RequestID:   requestID,
		Prediction:  result.Prediction,
		AtRisk:      result.AtRisk(),
		Message:     result.Message,
		NoRisk:      result.Probability.NoRisk,
		Risk:        result.Probability.Risk,
		Age:         req.Age,
		BMI:         req.BMI,
		SubmittedAt: at,
	}
}
