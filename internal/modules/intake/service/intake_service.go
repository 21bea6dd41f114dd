package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"heartrisk/internal/modules/intake/domain"
	"heartrisk/internal/modules/intake/dto"
	intakeout "heartrisk/internal/modules/intake/port/out"
	"heartrisk/internal/platform/clock"
	"heartrisk/internal/platform/id"
)

type IntakeService struct {
	clock     clock.Clock
	idGen     id.Generator
	predictor intakeout.Predictor
	logger    hclog.Logger
}

func NewIntakeService(clock clock.Clock, idGen id.Generator, predictor intakeout.Predictor, logger hclog.Logger) *IntakeService {
	return &IntakeService{clock: clock, idGen: idGen, predictor: predictor, logger: logger}
}

// FormState replays the raw input onto an empty form, one field update at a
// time. An unparseable date of birth leaves the date unset.
func (s *IntakeService) FormState(input dto.FormInput) (domain.FormState, error) {
	state := domain.NewFormState()
	if dob, ok := s.parseDate(input.DateOfBirth); ok {
		state = state.SetDateOfBirth(dob)
	}
	for _, name := range sortedKeys(input.Values) {
		next, err := state.SetText(domain.Field(name), input.Values[name])
		if err != nil {
			return domain.FormState{}, err
		}
		state = next
	}
	for _, name := range sortedKeys(input.Flags) {
		next, err := state.SetFlag(domain.Flag(name), input.Flags[name])
		if err != nil {
			return domain.FormState{}, err
		}
		state = next
	}
	return state, nil
}

func (s *IntakeService) Derive(input dto.DeriveInput) dto.DeriveOutput {
	dob, ok := s.parseDate(input.DateOfBirth)
	return dto.DeriveOutput{
		Age: domain.ComputeAge(dob, ok, s.clock.Now()),
		BMI: domain.ComputeBMI(input.Weight, input.Height),
	}
}

// Predict builds the request from state and performs exactly one call to
// the predictor.
func (s *IntakeService) Predict(ctx context.Context, state domain.FormState) (string, domain.PredictionRequest, domain.PredictionResult, error) {
	requestID := s.idGen.New()
	req := domain.BuildRequest(state, s.clock.Now())
	s.logger.Debug("submitting prediction", "request_id", requestID, "age", req.Age, "bmi", req.BMI)
	result, err := s.predictor.Predict(ctx, requestID, req)
	if err != nil {
		return requestID, req, domain.PredictionResult{}, fmt.Errorf("predict: %w", err)
	}
	return requestID, req, result, nil
}

func (s *IntakeService) Now() time.Time {
	return s.clock.Now()
}

func (s *IntakeService) parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	dob, err := time.Parse(dto.DateLayout, raw)
	if err != nil {
		s.logger.Debug("ignoring unparseable date of birth", "value", raw)
		return time.Time{}, false
	}
	return dob, true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
