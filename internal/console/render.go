package console

import (
	"fmt"
	"io"

	"github.com/theirongolddev/perftrack/internal/cli"
	"github.com/theirongolddev/perftrack/internal/report"
)

const progressBarWidth = 22

// WriteProgress prints the running totals of the year.
func WriteProgress(w io.Writer, r report.Report) {
	_, _ = fmt.Fprintln(w, "\n"+cli.SubHeader("Current progress"))
	_, _ = fmt.Fprintf(w, "  %s: %s\n", report.LabelCumulative, cli.Amount(r.CumulativeProfit))
	_, _ = fmt.Fprintf(w, "  Months recorded: %s\n", cli.RenderProgressBar(r.Recorded, r.Span, progressBarWidth))

	if r.TargetReached() {
		_, _ = fmt.Fprintf(w, "  %s %s\n", cli.Success("Annual target exceeded by:"), cli.Amount(r.Exceeded()))
		return
	}
	_, _ = fmt.Fprintf(w, "  Remaining to annual target: %s\n", cli.Amount(r.RemainingToTarget))
}

// WriteMonthTable prints every month of the span with missing months flagged.
func WriteMonthTable(w io.Writer, r report.Report) {
	rows := make([][]string, 0, len(r.Rows)+2)
	for _, row := range r.Rows {
		if row.Missing {
			if !row.InSpan {
				continue
			}
			rows = append(rows, []string{cli.FormatMonth(row.Month), cli.Warn("(missing)"), "", ""})
			continue
		}
		rows = append(rows, []string{
			cli.FormatMonth(row.Month),
			cli.Amount(row.ActualProfit),
			cli.Amount(row.MonthlyTarget),
			cli.Amount(row.PerformanceDiff),
		})
	}

	if r.Recorded > 0 {
		tot := r.Totals()
		rows = append(rows, []string{cli.SeparatorRow}, []string{
			cli.Total("Total"),
			cli.Amount(tot.ActualProfit),
			cli.Amount(tot.MonthlyTarget),
			cli.Amount(tot.PerformanceDiff),
		})
	}

	_, _ = fmt.Fprint(w, cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Actual profit", "Monthly target", "Performance"},
		Rows:    rows,
	}))
}

// WriteBonus prints the year-end bonus section, or why it is not available yet.
func WriteBonus(w io.Writer, r report.Report) {
	_, _ = fmt.Fprintln(w, "\n"+cli.SubHeader("Year-end bonus"))

	b := r.Bonus
	if b == nil {
		_, _ = fmt.Fprintln(w, cli.Warn(fmt.Sprintf("  %d of %d months recorded; the bonus is computed once the year is complete.",
			r.Recorded, r.Span)))
		return
	}

	if !b.Eligible {
		_, _ = fmt.Fprintln(w, cli.Error(report.MsgNotEligible))
		_, _ = fmt.Fprintf(w, "  %s: %s\n", report.MsgForfeitedLabel, cli.Amount(b.ForfeitedDeductions))
		return
	}

	_, _ = fmt.Fprintln(w, cli.Success(report.MsgEligible))
	_, _ = fmt.Fprintf(w, "  - %s: %s\n", report.LabelClawback, cli.Amount(b.Clawback))
	_, _ = fmt.Fprintf(w, "  - %s (%d x %s): %s\n", report.LabelSurplus,
		b.SurplusTiers, cli.FormatAmount(r.SurplusBonusAmount), cli.Amount(b.SurplusBonus))
	_, _ = fmt.Fprintf(w, "  %s: %s\n", cli.Total(report.LabelTotalBonus), cli.Amount(b.TotalBonus))
}

// WriteFinalReport prints the annual summary: month table, totals and bonus.
func WriteFinalReport(w io.Writer, r report.Report) {
	_, _ = fmt.Fprintln(w, "\n"+cli.Header(fmt.Sprintf("%d Annual Performance Report", r.Year)))
	WriteMonthTable(w, r)
	_, _ = fmt.Fprintf(w, "Annual cumulative profit: %s\n", cli.Amount(r.CumulativeProfit))
	_, _ = fmt.Fprintf(w, "Annual profit target:     %s\n", cli.Amount(r.AnnualTarget))
	WriteBonus(w, r)
}
