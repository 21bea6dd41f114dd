package intake

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	intakedto "heartrisk/internal/modules/intake/dto"
	"heartrisk/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// Port is the minimal interface this view needs from the intake use-case.
type Port interface {
	Derive(ctx context.Context, dateOfBirth, weight, height string) (intakedto.DeriveOutput, error)
	Submit(ctx context.Context, form intakedto.FormInput) (intakedto.PredictionOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// SubmittedMsg is sent when a prediction round trip settles.
type SubmittedMsg struct {
	Out intakedto.PredictionOutput
	Err error
}

// DerivedMsg carries the live age and BMI for the read-only line.
type DerivedMsg struct {
	Out intakedto.DeriveOutput
}

// ─── model ───────────────────────────────────────────────────────────────────

// Focus order: date of birth, numeric fields, flags, submit button.
type Model struct {
	port    Port
	inputs  []textinput.Model
	flags   []bool
	focus   int
	spinner spinner.Model

	derived   intakedto.DeriveOutput
	busy      bool
	result    intakedto.PredictionOutput
	hasResult bool
	errText   string
	width     int
}

func New(port Port) Model {
	inputs := make([]textinput.Model, 0, len(intakedto.NumericFields)+1)
	dob := textinput.New()
	dob.Placeholder = "YYYY-MM-DD"
	dob.CharLimit = len(intakedto.DateLayout)
	inputs = append(inputs, dob)
	for _, f := range intakedto.NumericFields {
		ti := textinput.New()
		ti.Placeholder = f.Placeholder
		ti.CharLimit = 16
		inputs = append(inputs, ti)
	}
	inputs[0].Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		inputs:  inputs,
		flags:   make([]bool, len(intakedto.FlagFields)),
		spinner: sp,
	}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case DerivedMsg:
		m.derived = msg.Out
		return m, nil

	case SubmittedMsg:
		m.busy = false
		if msg.Err != nil {
			m.errText = msg.Err.Error()
			return m, nil
		}
		m.errText = ""
		m.result = msg.Out
		m.hasResult = true
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			cmd := m.moveFocus(1)
			return m, cmd
		case "shift+tab", "up":
			cmd := m.moveFocus(-1)
			return m, cmd
		case "ctrl+s":
			cmd := m.Submit()
			return m, cmd
		case " ", "space":
			if i, ok := m.focusedFlag(); ok {
				m.flags[i] = !m.flags[i]
				return m, nil
			}
		case "enter":
			if m.focus == m.submitIndex() {
				cmd := m.Submit()
				return m, cmd
			}
			cmd := m.moveFocus(1)
			return m, cmd
		}
	}

	if m.focus >= len(m.inputs) {
		return m, nil
	}
	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.inputs[m.focus].Value() != before {
		return m, tea.Batch(cmd, m.deriveCmd())
	}
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Health intake") + "\n\n")

	sb.WriteString(m.row("Date of birth", 0))
	for i, f := range intakedto.NumericFields {
		sb.WriteString(m.row(f.Label, i+1))
	}
	sb.WriteString(theme.Label.Render("BMI") + " " + theme.Muted.Render(m.bmiText()) + "\n\n")

	for i, f := range intakedto.FlagFields {
		box := "[ ]"
		if m.flags[i] {
			box = "[x]"
		}
		line := box + " " + f.Label
		if m.focus == len(m.inputs)+i {
			line = theme.Hot.Render(line)
		}
		sb.WriteString("  " + line + "\n")
	}
	sb.WriteString("\n" + m.renderButton() + "\n")

	if m.errText != "" {
		sb.WriteString("\n" + theme.Error.Render("Prediction failed: "+m.errText) + "\n")
	}
	if m.hasResult {
		sb.WriteString("\n" + m.renderResult())
	}
	return sb.String()
}

// Submit starts a prediction unless one is already outstanding; the button
// stays disabled until SubmittedMsg arrives.
func (m *Model) Submit() tea.Cmd {
	if m.busy {
		return nil
	}
	m.busy = true
	form := m.Form()
	return tea.Batch(func() tea.Msg {
		out, err := m.port.Submit(context.Background(), form)
		return SubmittedMsg{Out: out, Err: err}
	}, m.spinner.Tick)
}

// Reset clears every field and the displayed result.
func (m *Model) Reset() tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	for i := range m.flags {
		m.flags[i] = false
	}
	m.derived = intakedto.DeriveOutput{}
	m.result = intakedto.PredictionOutput{}
	m.hasResult = false
	m.errText = ""
	return m.setFocus(0)
}

func (m Model) Busy() bool { return m.busy }

// Form snapshots the inputs as raw text.
func (m Model) Form() intakedto.FormInput {
	form := intakedto.FormInput{
		DateOfBirth: m.inputs[0].Value(),
		Values:      make(map[string]string, len(intakedto.NumericFields)),
		Flags:       make(map[string]bool, len(intakedto.FlagFields)),
	}
	for i, f := range intakedto.NumericFields {
		form.Values[f.Name] = m.inputs[i+1].Value()
	}
	for i, f := range intakedto.FlagFields {
		form.Flags[f.Name] = m.flags[i]
	}
	return form
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) submitIndex() int {
	return len(m.inputs) + len(m.flags)
}

func (m Model) focusedFlag() (int, bool) {
	i := m.focus - len(m.inputs)
	if i < 0 || i >= len(m.flags) {
		return 0, false
	}
	return i, true
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	n := m.submitIndex() + 1
	return m.setFocus((m.focus + delta + n) % n)
}

func (m *Model) setFocus(i int) tea.Cmd {
	if m.focus < len(m.inputs) {
		m.inputs[m.focus].Blur()
	}
	m.focus = i
	if i < len(m.inputs) {
		return m.inputs[i].Focus()
	}
	return nil
}

func (m Model) deriveCmd() tea.Cmd {
	dob := m.inputs[0].Value()
	weight, height := m.fieldValue("weight"), m.fieldValue("height")
	return func() tea.Msg {
		out, _ := m.port.Derive(context.Background(), dob, weight, height)
		return DerivedMsg{Out: out}
	}
}

func (m Model) fieldValue(name string) string {
	for i, f := range intakedto.NumericFields {
		if f.Name == name {
			return m.inputs[i+1].Value()
		}
	}
	return ""
}

func (m Model) bmiText() string {
	if m.derived.BMI == 0 {
		return "calculated from weight and height"
	}
	return fmt.Sprintf("%.2f", m.derived.BMI)
}

func (m Model) row(label string, i int) string {
	l := theme.Label.Render(label)
	if m.focus == i {
		l = theme.Hot.Width(24).Render(label)
	}
	return l + " " + m.inputs[i].View() + "\n"
}

func (m Model) renderButton() string {
	if m.busy {
		return theme.Button.Render(m.spinner.View() + " Predicting…")
	}
	if m.focus == m.submitIndex() {
		return theme.ButtonActive.Render("Predict heart attack risk")
	}
	return theme.Button.Render("Predict heart attack risk")
}

func (m Model) renderResult() string {
	r := m.result
	badge := theme.SafeBadge.Render(r.Message)
	if r.AtRisk {
		badge = theme.RiskBadge.Render(r.Message)
	}
	lines := []string{
		theme.Title.Render("Prediction"),
		badge,
		fmt.Sprintf("%s %5.1f%%", theme.Label.Render("No risk"), r.NoRisk*100),
		fmt.Sprintf("%s %5.1f%%", theme.Label.Render("Risk"), r.Risk*100),
		theme.Muted.Render(fmt.Sprintf("age %d  bmi %.2f  at %s", r.Age, r.BMI, r.SubmittedAt)),
	}
	return theme.Pane.Render(strings.Join(lines, "\n")) + "\n"
}
