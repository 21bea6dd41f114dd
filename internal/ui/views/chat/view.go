package chat

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	chatdto "heartrisk/internal/modules/chat/dto"
	"heartrisk/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// Port is the minimal interface this view needs from the chat use-case.
type Port interface {
	Post(ctx context.Context, text string) (chatdto.PostOutput, error)
	Relay(ctx context.Context, pending chatdto.PendingMessage) (chatdto.RelayOutput, error)
	Transcript(ctx context.Context) ([]chatdto.MessageOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// RelayedMsg is sent when the advisor answered (or failed to answer) a
// posted message.
type RelayedMsg struct {
	Pending chatdto.PendingMessage
	Out     chatdto.RelayOutput
	Err     error
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the chat panel: transcript viewport over a single-line input.
// Overlapping sends are allowed; the use-case decides which replies land.
type Model struct {
	port       Port
	input      textinput.Model
	viewport   viewport.Model
	spinner    spinner.Model
	renderer   *glamour.TermRenderer
	transcript []chatdto.MessageOutput
	pending    int
	notice     string
	width      int
	height     int
}

func New(port Port) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about heart attack risk…"
	ti.CharLimit = 1000

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(0),
	)

	return Model{
		port:     port,
		input:    ti,
		viewport: viewport.New(0, 0),
		spinner:  sp,
		renderer: r,
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m *Model) Focus() tea.Cmd { return m.input.Focus() }

func (m *Model) Blur() { m.input.Blur() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.refresh()

	case RelayedMsg:
		m.pending--
		switch {
		case msg.Err != nil:
			m.notice = "advisor did not answer: " + msg.Err.Error()
		case msg.Out.Stale:
			m.notice = "a late reply to an earlier message was dropped"
		default:
			m.notice = ""
		}
		if m.input.Value() == msg.Pending.Text {
			m.input.SetValue("")
		}
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if m.pending > 0 {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			cmd := m.Send(m.input.Value())
			return m, cmd
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	header := theme.Title.Render("Advisor chat")
	if m.pending > 0 {
		header += "  " + m.spinner.View() + theme.Muted.Render(" waiting for reply")
	}
	parts := []string{header, m.viewport.View()}
	if m.notice != "" {
		parts = append(parts, theme.Error.Render(m.notice))
	}
	parts = append(parts, "> "+m.input.View())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Send appends the user message right away and relays it in the background.
// Blank text does nothing.
func (m *Model) Send(text string) tea.Cmd {
	posted, err := m.port.Post(context.Background(), text)
	if err != nil {
		m.notice = err.Error()
		return nil
	}
	if posted.Skipped {
		return nil
	}
	m.pending++
	m.refresh()
	pending := posted.Pending
	port := m.port
	return tea.Batch(func() tea.Msg {
		out, err := port.Relay(context.Background(), pending)
		return RelayedMsg{Pending: pending, Out: out, Err: err}
	}, m.spinner.Tick)
}

func (m Model) Transcript() []chatdto.MessageOutput { return m.transcript }

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	m.viewport.Width = m.width
	// header, notice and input take three lines
	m.viewport.Height = m.height - 3
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
	if r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(m.width),
	); err == nil {
		m.renderer = r
	}
}

func (m *Model) refresh() {
	if transcript, err := m.port.Transcript(context.Background()); err == nil {
		m.transcript = transcript
	}
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m Model) renderTranscript() string {
	if len(m.transcript) == 0 {
		return theme.Muted.Render("Ask about risk factors, prevention or symptoms.")
	}
	var sb strings.Builder
	for _, msg := range m.transcript {
		if msg.Role == "user" {
			sb.WriteString(theme.UserLine.Render("you") + "  " + msg.Text + "\n")
			continue
		}
		sb.WriteString(theme.BotLine.Render("advisor") + "\n" + m.renderReply(msg.Text) + "\n")
	}
	return sb.String()
}

func (m Model) renderReply(text string) string {
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(text); err == nil {
			return strings.TrimRight(rendered, "\n")
		}
	}
	return text
}
