package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/perftrack/internal/tui/theme"
)

// Status is the message shown on the right of the status bar.
type Status struct {
	Text  string
	Error bool
}

// RenderStatusBar renders the bottom status bar: key hints left, the last
// save result right.
func RenderStatusBar(width int, hints string, st Status) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " " + hints
	right := ""
	if st.Text != "" {
		color := t.Gain
		if st.Error {
			color = t.Loss
		}
		right = lipgloss.NewStyle().Foreground(color).Render(st.Text) + " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return style.Render(left + strings.Repeat(" ", padding) + right)
}
