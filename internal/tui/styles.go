package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	// Status colors
	SaveOK      = lipgloss.Color("#95E1A3") // Green
	SavePending = lipgloss.Color("#FFE66D") // Yellow
	SaveError   = lipgloss.Color("#FF6B6B") // Red

	// UI colors
	Primary   = lipgloss.Color("#4ECDC4")
	Secondary = lipgloss.Color("#6C757D")
	Surface   = lipgloss.Color("#16213e")
	Text      = lipgloss.Color("#FFFFFF")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
	Highlight = lipgloss.Color("#4ECDC4")
)

// Styles
var (
	// Header
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	// Task name column
	NameStyle = lipgloss.NewStyle()

	NameSelectedStyle = lipgloss.NewStyle().
				Background(Surface).
				Bold(true)

	// Chart grid
	GridStyle = lipgloss.NewStyle().
			Foreground(Border)

	TodayStyle = lipgloss.NewStyle().
			Foreground(Highlight)

	DayLabelStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(SaveError)

	// Input modal
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	LabelStyle = lipgloss.NewStyle().
			Width(7).
			Foreground(TextMuted)

	// Help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// BarStyle returns the style for a task bar in the task's color
func BarStyle(color string, dragging bool) lipgloss.Style {
	style := lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Foreground(Text)
	if dragging {
		style = style.Faint(true).Underline(true)
	}
	return style
}
