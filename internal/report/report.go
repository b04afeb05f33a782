// Package report builds the progress and year-end view shared by every front-end.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/perftrack/internal/bonus"
	"github.com/theirongolddev/perftrack/internal/config"
	"github.com/theirongolddev/perftrack/internal/ledger"
	"github.com/theirongolddev/perftrack/internal/model"
)

// Row is one month line of the report.
type Row struct {
	Month           int             `json:"month"`
	Missing         bool            `json:"missing"`
	InSpan          bool            `json:"in_span"`
	ActualProfit    decimal.Decimal `json:"actual_profit"`
	MonthlyTarget   decimal.Decimal `json:"monthly_target"`
	PerformanceDiff decimal.Decimal `json:"performance_diff"`
}

// Report is the computed state of the tracked year.
type Report struct {
	Year          int             `json:"year"`
	AnnualTarget  decimal.Decimal `json:"annual_target"`
	MonthlyTarget decimal.Decimal `json:"monthly_target"`

	SurplusBonusThreshold decimal.Decimal `json:"surplus_bonus_threshold"`
	SurplusBonusAmount    decimal.Decimal `json:"surplus_bonus_amount"`

	Rows     []Row `json:"rows"`
	Recorded int   `json:"recorded"`
	Span     int   `json:"span"`

	CumulativeProfit  decimal.Decimal `json:"cumulative_profit"`
	TotalDeductions   decimal.Decimal `json:"total_deductions"`
	RemainingToTarget decimal.Decimal `json:"remaining_to_target"`

	Complete     bool               `json:"complete"`
	Bonus        *model.BonusResult `json:"bonus,omitempty"`
	DefaultMonth int                `json:"default_month"`
	NextMonth    int                `json:"next_month"`
}

// Build recomputes the aggregate from l and assembles the report.
// Bonus is only set once the year is complete.
func Build(l *ledger.Ledger, plan config.PlanConfig) Report {
	agg := l.Recalculate()
	months := l.Months()

	r := Report{
		Year:                  plan.Year,
		AnnualTarget:          plan.AnnualTarget,
		MonthlyTarget:         plan.MonthlyTarget,
		SurplusBonusThreshold: plan.SurplusBonusThreshold,
		SurplusBonusAmount:    plan.SurplusBonusAmount,
		Recorded:              len(months),
		Span:                  bonus.SpanMonths(plan),
		CumulativeProfit:      agg.CumulativeProfit,
		TotalDeductions:       agg.TotalDeductions,
		RemainingToTarget:     plan.AnnualTarget.Sub(agg.CumulativeProfit),
		Complete:              bonus.YearComplete(len(months), plan),
		DefaultMonth:          bonus.DefaultMonth(months, plan),
		NextMonth:             l.NextMonth(plan.StartMonth),
	}

	seen := make(map[int]struct{}, len(months))
	for _, m := range plan.Months() {
		seen[m] = struct{}{}
		r.Rows = append(r.Rows, row(l, m, plan, true))
	}
	for _, m := range months {
		if _, ok := seen[m]; !ok {
			r.Rows = append(r.Rows, row(l, m, plan, false))
		}
	}
	sort.SliceStable(r.Rows, func(i, j int) bool { return r.Rows[i].Month < r.Rows[j].Month })

	if r.Complete {
		b := bonus.Compute(agg, plan)
		r.Bonus = &b
	}
	return r
}

func row(l *ledger.Ledger, m int, plan config.PlanConfig, inSpan bool) Row {
	rec, ok := l.Record(m)
	if !ok {
		return Row{Month: m, Missing: true, InSpan: inSpan, MonthlyTarget: plan.MonthlyTarget}
	}
	return Row{
		Month:           m,
		InSpan:          inSpan,
		ActualProfit:    rec.ActualProfit,
		MonthlyTarget:   plan.MonthlyTarget,
		PerformanceDiff: rec.PerformanceDiff,
	}
}

// RecordedRows returns only the rows that have a record.
func (r Report) RecordedRows() []Row {
	out := make([]Row, 0, r.Recorded)
	for _, row := range r.Rows {
		if !row.Missing {
			out = append(out, row)
		}
	}
	return out
}

// Totals sums the recorded rows into one line: profit, the targets those
// months carried, and the net performance against them.
func (r Report) Totals() Row {
	t := Row{ActualProfit: r.CumulativeProfit}
	for _, row := range r.Rows {
		if row.Missing {
			continue
		}
		t.MonthlyTarget = t.MonthlyTarget.Add(row.MonthlyTarget)
		t.PerformanceDiff = t.PerformanceDiff.Add(row.PerformanceDiff)
	}
	return t
}

// TargetReached reports whether cumulative profit has met the annual target.
func (r Report) TargetReached() bool {
	return !r.RemainingToTarget.IsPositive()
}

// Exceeded returns how far cumulative profit is above the annual target.
func (r Report) Exceeded() decimal.Decimal {
	return r.RemainingToTarget.Neg()
}

// Labels shared by every front-end so the panels read the same everywhere.
const (
	LabelCumulative   = "Cumulative profit"
	LabelToTarget     = "Distance to annual target"
	LabelDeductions   = "Total deductions"
	LabelClawback     = "Refunded deductions"
	LabelSurplus      = "Surplus bonus"
	LabelTotalBonus   = "Total year-end bonus"
	MsgEligible       = "Annual profit target reached!"
	MsgNotEligible    = "Annual profit target not reached."
	MsgForfeitedLabel = "Deductions not refunded"
)
