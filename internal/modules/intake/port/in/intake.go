package in

import (
	"context"

	"heartrisk/internal/modules/intake/dto"
)

type Usecase interface {
	Derive(ctx context.Context, input dto.DeriveInput) (dto.DeriveOutput, error)
	Submit(ctx context.Context, input dto.SubmitInput) (dto.PredictionOutput, error)
	Busy() bool
	Current() (dto.PredictionOutput, bool)
}
