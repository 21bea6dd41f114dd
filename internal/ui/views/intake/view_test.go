package intake

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	intakedto "heartrisk/internal/modules/intake/dto"
)

type fakePort struct {
	submitted []intakedto.FormInput
}

func (f *fakePort) Derive(_ context.Context, dob, weight, height string) (intakedto.DeriveOutput, error) {
	if weight == "70" && height == "175" {
		return intakedto.DeriveOutput{BMI: 22.86}, nil
	}
	return intakedto.DeriveOutput{}, nil
}

func (f *fakePort) Submit(_ context.Context, form intakedto.FormInput) (intakedto.PredictionOutput, error) {
	f.submitted = append(f.submitted, form)
	return intakedto.PredictionOutput{Message: "No risk", NoRisk: 0.8, Risk: 0.2}, nil
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestSubmitIsGuardedByBusyFlag(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := New(port)

	cmd := m.Submit()
	if cmd == nil || !m.Busy() {
		t.Fatalf("first submit should start a request and set busy")
	}
	if again := m.Submit(); again != nil {
		t.Fatalf("submit while busy must be a no-op")
	}

	m, _ = m.Update(SubmittedMsg{Err: errors.New("connection refused")})
	if m.Busy() {
		t.Fatalf("busy must clear after a failed request")
	}
	if !strings.Contains(m.View(), "connection refused") {
		t.Fatalf("expected error line in view")
	}

	m, _ = m.Update(SubmittedMsg{Out: intakedto.PredictionOutput{Message: "At risk", AtRisk: true, Risk: 0.8, NoRisk: 0.2}})
	view := m.View()
	if m.Busy() || !strings.Contains(view, "At risk") || !strings.Contains(view, "80.0%") {
		t.Fatalf("expected result panel after success, got:\n%s", view)
	}
	if strings.Contains(view, "connection refused") {
		t.Fatalf("success should clear the previous error")
	}
}

func TestFormCollectsRawTextAndFlags(t *testing.T) {
	t.Parallel()
	m := New(&fakePort{})
	m = typeText(m, "2000-06-15")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, "200")

	// jump to the diabetes flag: dob + 12 numeric fields + gender
	for m.focus != len(m.inputs)+1 {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	form := m.Form()
	if form.DateOfBirth != "2000-06-15" || form.Values["cholesterol"] != "200" || form.Values["weight"] != "" {
		t.Fatalf("unexpected form values: %+v", form)
	}
	if !form.Flags["diabetes"] || form.Flags["gender"] {
		t.Fatalf("unexpected flags: %v", form.Flags)
	}
	if len(form.Values) != len(intakedto.NumericFields) {
		t.Fatalf("expected every numeric field present, got %d", len(form.Values))
	}

	_ = m.Reset()
	if f := m.Form(); f.DateOfBirth != "" || f.Flags["diabetes"] || m.focus != 0 {
		t.Fatalf("reset should clear the form, got %+v", f)
	}
}

func TestDerivedBMIIsShown(t *testing.T) {
	t.Parallel()
	m := New(&fakePort{})
	m, _ = m.Update(DerivedMsg{Out: intakedto.DeriveOutput{BMI: 22.86}})
	if !strings.Contains(m.View(), "22.86") {
		t.Fatalf("expected live BMI in view")
	}
}
