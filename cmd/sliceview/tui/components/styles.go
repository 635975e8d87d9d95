package components

import "github.com/charmbracelet/lipgloss"

var (
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("63"))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("244"))

	StatusStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	PlayingStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42")).
		Bold(true)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196"))

	ActiveToolStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("63")).
		Bold(true).
		Underline(true)

	InactiveToolStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	MeasureStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	DraftStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("45"))
)
