package app

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	chatdto "heartrisk/internal/modules/chat/dto"
	intakedto "heartrisk/internal/modules/intake/dto"
	apperrors "heartrisk/internal/platform/errors"
	"heartrisk/internal/ui/components"
	"heartrisk/internal/ui/theme"
	chatview "heartrisk/internal/ui/views/chat"
	intakeview "heartrisk/internal/ui/views/intake"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type intakePort interface {
	Derive(ctx context.Context, dateOfBirth, weight, height string) (intakedto.DeriveOutput, error)
	Submit(ctx context.Context, form intakedto.FormInput) (intakedto.PredictionOutput, error)
}

type chatPort interface {
	Post(ctx context.Context, text string) (chatdto.PostOutput, error)
	Relay(ctx context.Context, pending chatdto.PendingMessage) (chatdto.RelayOutput, error)
	Transcript(ctx context.Context) ([]chatdto.MessageOutput, error)
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Toggle  key.Binding
	Submit  key.Binding
	Chat    key.Binding
	Palette key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Next:    key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab/↓", "next field")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab/↑", "previous field")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle flag")),
		Submit:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "predict")),
		Chat:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "toggle chat")),
		Palette: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "palette")),
		Help:    key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Chat, k.Palette, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Toggle, k.Submit},
		{k.Chat, k.Palette, k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It lays out the intake form and the
// optional chat panel, routes keys to whichever has focus, and owns the
// help overlay and the command palette.
type Model struct {
	form     intakeview.Model
	chat     chatview.Model
	showChat bool

	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	status   string
	width    int
	height   int
}

func NewModel(intake intakePort, chat chatPort) Model {
	return Model{
		form:    intakeview.New(intake),
		chat:    chatview.New(chat),
		keys:    defaultKeys(),
		help:    help.New(),
		palette: components.NewPalette(),
		status:  "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.form.Init(), m.chat.Init())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, isKey := msg.(tea.KeyMsg); isKey && m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case intakeview.SubmittedMsg:
		switch {
		case msg.Err == nil:
			m.status = "prediction: " + msg.Out.Message
		case errors.Is(msg.Err, apperrors.ErrBusy):
			m.status = "a prediction is already running"
		default:
			m.status = "prediction failed"
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd

	case intakeview.DerivedMsg:
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd

	case chatview.RelayedMsg:
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "ctrl+g" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+g":
			m.showHelp = true
			return m, nil
		case "ctrl+p":
			cmd := m.palette.Open()
			return m, cmd
		case "ctrl+t":
			cmd := m.toggleChat()
			return m, cmd
		case "ctrl+s":
			cmd := m.submit()
			return m, cmd
		}
		if m.showChat {
			var cmd tea.Cmd
			m.chat, cmd = m.chat.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}

	// Ticks and blinks go to both panels; each ignores what it did not start.
	var formCmd, chatCmd tea.Cmd
	m.form, formCmd = m.form.Update(msg)
	m.chat, chatCmd = m.chat.Update(msg)
	return m, tea.Batch(formCmd, chatCmd)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.renderPanels()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (m Model) renderPanels() string {
	formPane := theme.PaneActive
	if m.showChat {
		formPane = theme.Pane
	}
	if !m.showChat {
		return formPane.Render(m.form.View())
	}
	left := formPane.Width(m.formWidth()).Render(m.form.View())
	right := theme.PaneActive.Width(m.chatWidth()).Render(m.chat.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) renderHeader() string {
	title := theme.Hot.Render("♥ heartrisk") + theme.Muted.Render("  heart attack risk check")
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(title) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.form.Busy() {
		left = theme.Hot.Render("● predicting") + "  " + left
	}
	right := theme.Muted.Render("ctrl+s:predict  ctrl+t:chat  ctrl+p:palette  ctrl+g:help  ctrl+c:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	switch parts[0] {
	case "form:submit":
		cmd := m.submit()
		return m, cmd
	case "form:reset":
		m.status = "form cleared"
		cmd := m.form.Reset()
		return m, cmd
	case "chat:toggle":
		cmd := m.toggleChat()
		return m, cmd
	case "chat:send":
		text := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		if text == "" {
			m.status = "usage: chat:send <message>"
			return m, nil
		}
		var focus tea.Cmd
		if !m.showChat {
			focus = m.toggleChat()
		}
		send := m.chat.Send(text)
		return m, tea.Batch(focus, send)
	case "help":
		m.showHelp = true
		return m, nil
	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) submit() tea.Cmd {
	if m.form.Busy() {
		m.status = "a prediction is already running"
		return nil
	}
	m.status = "submitting…"
	return m.form.Submit()
}

func (m *Model) toggleChat() tea.Cmd {
	m.showChat = !m.showChat
	m.propagateSize()
	if m.showChat {
		m.status = "chat open"
		return m.chat.Focus()
	}
	m.chat.Blur()
	m.status = "chat closed"
	return nil
}

func (m Model) formWidth() int {
	if !m.showChat {
		return m.width - 2
	}
	return m.width/2 - 2
}

func (m Model) chatWidth() int {
	return m.width - m.width/2 - 2
}

func (m *Model) propagateSize() {
	h := m.height - 5
	m.form, _ = m.form.Update(tea.WindowSizeMsg{Width: m.formWidth(), Height: h})
	m.chat, _ = m.chat.Update(tea.WindowSizeMsg{Width: m.chatWidth() - 2, Height: h - 2})
}
