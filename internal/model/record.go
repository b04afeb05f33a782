// Package model defines the record, aggregate and bonus types shared across perftrack.
package model

import "github.com/shopspring/decimal"

// MonthlyRecord is the profit entry for one month of the tracked year.
// PerformanceDiff is always ActualProfit minus the monthly target.
type MonthlyRecord struct {
	Month           int
	ActualProfit    decimal.Decimal
	PerformanceDiff decimal.Decimal
}

// Deduction returns the amount withheld for this month, zero when the target was met.
func (r MonthlyRecord) Deduction() decimal.Decimal {
	if r.PerformanceDiff.IsNegative() {
		return r.PerformanceDiff.Abs()
	}
	return decimal.Zero
}

// Aggregate holds the totals derived from the full record set. It is never persisted.
type Aggregate struct {
	CumulativeProfit decimal.Decimal
	TotalDeductions  decimal.Decimal
}
