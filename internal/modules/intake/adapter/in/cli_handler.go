package in

import (
	"context"

	intakedto "heartrisk/internal/modules/intake/dto"
	intakein "heartrisk/internal/modules/intake/port/in"
)

type CLIHandler struct {
	usecase intakein.Usecase
}

func NewCLIHandler(usecase intakein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Derive(ctx context.Context, dateOfBirth, weight, height string) (intakedto.DeriveOutput, error) {
	return h.usecase.Derive(ctx, intakedto.DeriveInput{DateOfBirth: dateOfBirth, Weight: weight, Height: height})
}

func (h CLIHandler) Submit(ctx context.Context, form intakedto.FormInput) (intakedto.PredictionOutput, error) {
	return h.usecase.Submit(ctx, intakedto.SubmitInput{Form: form})
}

func (h CLIHandler) Busy() bool {
	return h.usecase.Busy()
}

func (h CLIHandler) Current() (intakedto.PredictionOutput, bool) {
	return h.usecase.Current()
}
