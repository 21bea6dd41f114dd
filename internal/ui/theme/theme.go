package theme

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha.
var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Red      = lipgloss.Color("#f38ba8")
	Peach    = lipgloss.Color("#fab387")
)

var (
	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Foreground(Text).
		Padding(0, 1)

	PaneActive = Pane.BorderForeground(Lavender)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Label = lipgloss.NewStyle().Foreground(Subtext0).Width(24)
	Error = lipgloss.NewStyle().Foreground(Red)

	// Badges for the prediction verdict.
	RiskBadge = lipgloss.NewStyle().Background(Red).Foreground(Base).Bold(true).Padding(0, 1)
	SafeBadge = lipgloss.NewStyle().Background(Green).Foreground(Base).Bold(true).Padding(0, 1)

	Button       = lipgloss.NewStyle().Foreground(Text).Background(Surface1).Padding(0, 2)
	ButtonActive = Button.Background(Lavender).Foreground(Base).Bold(true)

	UserLine = lipgloss.NewStyle().Foreground(Lavender).Bold(true)
	BotLine  = lipgloss.NewStyle().Foreground(Green).Bold(true)
)
