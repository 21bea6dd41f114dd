package app

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	chatdto "heartrisk/internal/modules/chat/dto"
	intakedto "heartrisk/internal/modules/intake/dto"
	"heartrisk/internal/ui/components"
	chatview "heartrisk/internal/ui/views/chat"
	intakeview "heartrisk/internal/ui/views/intake"
)

type fakeIntake struct{}

func (fakeIntake) Derive(context.Context, string, string, string) (intakedto.DeriveOutput, error) {
	return intakedto.DeriveOutput{}, nil
}

func (fakeIntake) Submit(context.Context, intakedto.FormInput) (intakedto.PredictionOutput, error) {
	return intakedto.PredictionOutput{Message: "No risk of heart attack", NoRisk: 0.9, Risk: 0.1}, nil
}

type fakeChat struct {
	transcript []chatdto.MessageOutput
}

func (f *fakeChat) Post(_ context.Context, text string) (chatdto.PostOutput, error) {
	if strings.TrimSpace(text) == "" {
		return chatdto.PostOutput{Skipped: true}, nil
	}
	seq := uint64(len(f.transcript) + 1)
	f.transcript = append(f.transcript, chatdto.MessageOutput{ID: "u", Role: "user", Text: text, Seq: seq})
	return chatdto.PostOutput{Pending: chatdto.PendingMessage{ID: "u", Seq: seq, Text: text}}, nil
}

func (f *fakeChat) Relay(context.Context, chatdto.PendingMessage) (chatdto.RelayOutput, error) {
	return chatdto.RelayOutput{}, nil
}

func (f *fakeChat) Transcript(context.Context) ([]chatdto.MessageOutput, error) {
	return f.transcript, nil
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return model, cmd
}

func newSizedModel(t *testing.T, chat *fakeChat) Model {
	t.Helper()
	m := NewModel(fakeIntake{}, chat)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func TestCtrlTTogglesChatPanel(t *testing.T) {
	t.Parallel()
	m := newSizedModel(t, &fakeChat{})
	if strings.Contains(m.View(), "Advisor chat") {
		t.Fatalf("chat must start hidden")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if !m.showChat || !strings.Contains(m.View(), "Advisor chat") {
		t.Fatalf("ctrl+t should show the chat panel")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.showChat {
		t.Fatalf("second ctrl+t should hide the chat panel")
	}
}

func TestPaletteChatSendOpensChatAndPostsMessage(t *testing.T) {
	t.Parallel()
	chat := &fakeChat{}
	m := newSizedModel(t, chat)

	m, cmd := update(t, m, components.PaletteSubmitMsg{Input: "chat:send is salt bad?"})
	if cmd == nil {
		t.Fatalf("expected relay command")
	}
	if !m.showChat {
		t.Fatalf("chat:send should open the chat panel")
	}
	if len(chat.transcript) != 1 || chat.transcript[0].Text != "is salt bad?" {
		t.Fatalf("unexpected transcript: %+v", chat.transcript)
	}
}

func TestPaletteFormSubmitAndUnknownCommand(t *testing.T) {
	t.Parallel()
	m := newSizedModel(t, &fakeChat{})

	m, cmd := update(t, m, components.PaletteSubmitMsg{Input: "form:submit"})
	if cmd == nil || !m.form.Busy() {
		t.Fatalf("form:submit should start a prediction")
	}
	m, _ = update(t, m, components.PaletteSubmitMsg{Input: "form:submit"})
	if m.status != "a prediction is already running" {
		t.Fatalf("unexpected status %q", m.status)
	}
	m, _ = update(t, m, intakeview.SubmittedMsg{Out: intakedto.PredictionOutput{Message: "No risk of heart attack"}})
	if m.form.Busy() || !strings.Contains(m.status, "No risk of heart attack") {
		t.Fatalf("settled prediction should clear busy and update status, got %q", m.status)
	}

	m, _ = update(t, m, components.PaletteSubmitMsg{Input: "bogus"})
	if m.status != "unknown command: bogus" {
		t.Fatalf("unexpected status %q", m.status)
	}
	m, _ = update(t, m, components.PaletteSubmitMsg{Input: "chat:send   "})
	if m.status != "usage: chat:send <message>" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestRelayedMessagesReachChatPanel(t *testing.T) {
	t.Parallel()
	chat := &fakeChat{}
	m := newSizedModel(t, chat)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	m, _ = update(t, m, components.PaletteSubmitMsg{Input: "chat:send hi"})

	chat.transcript = append(chat.transcript, chatdto.MessageOutput{ID: "b", Role: "bot", Text: "Hello there", Seq: 1})
	m, _ = update(t, m, chatview.RelayedMsg{Pending: chatdto.PendingMessage{ID: "u", Seq: 1, Text: "hi"}})
	if got := m.chat.Transcript(); len(got) != 2 {
		t.Fatalf("expected transcript refresh, got %+v", got)
	}
}
