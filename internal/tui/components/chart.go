package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/perftrack/internal/cli"
	"github.com/theirongolddev/perftrack/internal/tui/theme"
)

// Sparkline is cli.RenderSparkline in the active theme's accent color, so
// the terminal dashboard and the line-mode summary draw the same glyphs.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	return lipgloss.NewStyle().Foreground(theme.Active.Accent).Render(cli.RenderSparkline(values))
}
