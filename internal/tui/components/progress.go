package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/perftrack/internal/tui/theme"
)

// ProgressBar renders a solid bar with a "done/total" label, e.g. months
// recorded out of the span.
func ProgressBar(done, total, width int) string {
	t := theme.Active

	pct := 0.0
	if total > 0 {
		pct = float64(done) / float64(total)
	}
	if pct > 1 {
		pct = 1
	}

	color := t.Accent
	if pct >= 1 {
		color = t.Gain
	}

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	countStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	return bar.ViewAs(pct) + " " + countStyle.Render(fmt.Sprintf("%d/%d", done, total))
}
