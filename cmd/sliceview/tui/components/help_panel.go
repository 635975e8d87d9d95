package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/sliceview/cmd/sliceview/tui/help"
)

var (
	helpPanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 1)

	helpTitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("63")).
		Bold(true)

	helpDescStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	helpDetailStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("244"))
)

// HelpPanel displays help for the active tool
type HelpPanel struct {
	Tool  string
	width int
}

// NewHelpPanel creates a new help panel
func NewHelpPanel() *HelpPanel {
	return &HelpPanel{width: 32}
}

// SetTool updates which tool's help to display
func (h *HelpPanel) SetTool(tool string) {
	h.Tool = tool
}

// SetWidth updates the panel width
func (h *HelpPanel) SetWidth(width int) {
	h.width = width
}

// View renders the help panel
func (h *HelpPanel) View() string {
	style := helpPanelStyle.Width(h.width - 2)

	text, ok := help.Texts[h.Tool]
	if !ok {
		return style.Render("Select a tool to see help")
	}

	var sb strings.Builder
	sb.WriteString(helpTitleStyle.Render(text.Title))
	sb.WriteString("\n")
	sb.WriteString(helpDescStyle.Render(text.Description))
	sb.WriteString("\n")
	sb.WriteString(helpDetailStyle.Render(text.Details))

	return style.Render(sb.String())
}
