package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/perftrack/internal/cli"
	"github.com/theirongolddev/perftrack/internal/report"
	"github.com/theirongolddev/perftrack/internal/tui/components"
	"github.com/theirongolddev/perftrack/internal/tui/theme"
)

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	return a.viewMain()
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) viewTooNarrow() string {
	return fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  perftrack needs at least %d columns.\n",
		a.width, minTerminalWidth,
	)
}

func (a App) viewMain() string {
	t := theme.Active
	cw := a.contentWidth()
	r := a.rep

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	subStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	header := titleStyle.Render(" ◈ perftrack") +
		subStyle.Render(fmt.Sprintf(" · %d Profit Performance Tracker", r.Year))

	metrics := components.MetricCardRow(a.metrics(), cw)

	left := components.FocusCard("Enter / edit data", a.form.View(), formCardWidth)
	right := components.ContentCard("Monthly detail", a.renderMonthTable(cw-formCardWidth), cw-formCardWidth)
	body := components.CardRow([]string{left, right})

	bonus := components.ContentCard("Year-end bonus", a.renderBonus(), cw)

	status := components.RenderStatusBar(cw, a.help.View(keys), a.status)

	out := lipgloss.JoinVertical(lipgloss.Left, header, metrics, body, bonus, status)
	if a.height > 0 {
		out = lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Top, out)
	}
	return out
}

func (a App) metrics() []components.Metric {
	t := theme.Active
	r := a.rep

	exceeded := r.Exceeded()
	return []components.Metric{
		{
			Label: report.LabelCumulative,
			Value: cli.FormatAmount(r.CumulativeProfit),
			Delta: fmt.Sprintf("%d of %d months", r.Recorded, r.Span),
		},
		{
			Label:      report.LabelToTarget,
			Value:      cli.FormatAmount(r.RemainingToTarget),
			Delta:      cli.FormatSignedAmount(exceeded),
			DeltaColor: t.Signed(isNegative(exceeded)),
		},
		{
			Label:      report.LabelDeductions,
			Value:      cli.FormatAmount(r.TotalDeductions),
			DeltaColor: t.Loss,
		},
	}
}

func (a App) renderMonthTable(cardWidth int) string {
	t := theme.Active
	r := a.rep

	amount := func(d decimal.Decimal) string {
		return lipgloss.NewStyle().Foreground(t.Signed(isNegative(d))).Render(cli.FormatAmount(d))
	}
	missing := lipgloss.NewStyle().Foreground(t.Warn).Render("(missing)")

	rows := make([][]string, 0, len(r.Rows))
	profits := make([]float64, 0, r.Recorded)
	for _, row := range r.Rows {
		if row.Missing {
			if row.InSpan {
				rows = append(rows, []string{cli.FormatMonth(row.Month), missing, "", ""})
			}
			continue
		}
		profits = append(profits, row.ActualProfit.InexactFloat64())
		rows = append(rows, []string{
			cli.FormatMonth(row.Month),
			amount(row.ActualProfit),
			cli.FormatAmount(row.MonthlyTarget),
			amount(row.PerformanceDiff),
		})
	}

	if r.Recorded > 0 {
		tot := r.Totals()
		totalStyle := lipgloss.NewStyle().Foreground(t.Total).Bold(true)
		rows = append(rows, []string{cli.SeparatorRow}, []string{
			totalStyle.Render("Total"),
			amount(tot.ActualProfit),
			cli.FormatAmount(tot.MonthlyTarget),
			amount(tot.PerformanceDiff),
		})
	}

	table := cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Actual profit", "Monthly target", "Performance"},
		Rows:    rows,
	})

	var b strings.Builder
	b.WriteString(strings.TrimRight(table, "\n"))
	b.WriteString("\n")
	barWidth := min(progressBarWidth, components.CardInnerWidth(cardWidth)/3)
	b.WriteString(components.ProgressBar(r.Recorded, r.Span, barWidth))
	if len(profits) > 1 {
		b.WriteString("  ")
		b.WriteString(components.Sparkline(profits))
	}
	return b.String()
}

func (a App) renderBonus() string {
	t := theme.Active
	r := a.rep

	muted := lipgloss.NewStyle().Foreground(t.TextMuted)
	gain := lipgloss.NewStyle().Foreground(t.Gain)
	loss := lipgloss.NewStyle().Foreground(t.Loss)
	total := lipgloss.NewStyle().Foreground(t.Total).Bold(true)

	b := r.Bonus
	if b == nil {
		return muted.Render(fmt.Sprintf("%d of %d months recorded; the bonus is computed once the year is complete.",
			r.Recorded, r.Span))
	}

	if !b.Eligible {
		return loss.Render(report.MsgNotEligible) + "\n" +
			muted.Render(report.MsgForfeitedLabel+": ") + loss.Render(cli.FormatAmount(b.ForfeitedDeductions))
	}

	lines := []string{
		gain.Render(report.MsgEligible),
		muted.Render("- "+report.LabelClawback+": ") + gain.Render(cli.FormatAmount(b.Clawback)),
		muted.Render(fmt.Sprintf("- %s (%d x %s): ", report.LabelSurplus, b.SurplusTiers, cli.FormatAmount(r.SurplusBonusAmount))) +
			gain.Render(cli.FormatAmount(b.SurplusBonus)),
		total.Render(report.LabelTotalBonus + ": " + cli.FormatAmount(b.TotalBonus)),
	}
	return strings.Join(lines, "\n")
}

// isNegative matches the two-decimal display, so -0.001 renders as a gain.
func isNegative(d decimal.Decimal) bool {
	return d.Round(2).IsNegative()
}
