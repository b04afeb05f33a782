// Package bonus computes the year-end bonus from the aggregated ledger totals.
package bonus

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/perftrack/internal/config"
	"github.com/theirongolddev/perftrack/internal/model"
)

// Compute returns the bonus breakdown for agg under plan.
//
// Below the annual target nothing is refunded. At or above it every recorded
// deduction is clawed back and each full SurplusBonusThreshold of profit over
// the target earns one SurplusBonusAmount.
func Compute(agg model.Aggregate, plan config.PlanConfig) model.BonusResult {
	if agg.CumulativeProfit.LessThan(plan.AnnualTarget) {
		return model.BonusResult{
			Clawback:            decimal.Zero,
			SurplusProfit:       decimal.Zero,
			SurplusBonus:        decimal.Zero,
			TotalBonus:          decimal.Zero,
			ForfeitedDeductions: agg.TotalDeductions,
		}
	}

	surplus := agg.CumulativeProfit.Sub(plan.AnnualTarget)
	tiers := surplusTiers(surplus, plan.SurplusBonusThreshold)
	surplusBonus := plan.SurplusBonusAmount.Mul(decimal.NewFromInt(tiers))

	return model.BonusResult{
		Eligible:            true,
		Clawback:            agg.TotalDeductions,
		SurplusProfit:       surplus,
		SurplusTiers:        tiers,
		SurplusBonus:        surplusBonus,
		TotalBonus:          agg.TotalDeductions.Add(surplusBonus),
		ForfeitedDeductions: decimal.Zero,
	}
}

// surplusTiers is floor(surplus / threshold). surplus is never negative here,
// so the truncated quotient is the floor.
func surplusTiers(surplus, threshold decimal.Decimal) int64 {
	if !threshold.IsPositive() {
		return 0
	}
	q, _ := surplus.QuoRem(threshold, 0)
	return q.IntPart()
}

// SpanMonths returns how many months the plan covers.
func SpanMonths(plan config.PlanConfig) int {
	return plan.EndMonth - plan.StartMonth + 1
}

// YearComplete reports whether count records are enough to close the year.
func YearComplete(count int, plan config.PlanConfig) bool {
	return count >= SpanMonths(plan)
}

// DefaultMonth picks the month a dashboard form should preselect: the first
// month of the span without a record, or the start month once every month
// of the span is recorded.
func DefaultMonth(recorded []int, plan config.PlanConfig) int {
	have := make(map[int]struct{}, len(recorded))
	for _, m := range recorded {
		have[m] = struct{}{}
	}
	for _, m := range plan.Months() {
		if _, ok := have[m]; !ok {
			return m
		}
	}
	return plan.StartMonth
}
