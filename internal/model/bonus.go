package model

import "github.com/shopspring/decimal"

// BonusResult is the year-end bonus breakdown.
// When Eligible is false every bonus amount is zero and ForfeitedDeductions
// holds the deductions that will not be refunded.
type BonusResult struct {
	Eligible bool `json:"eligible"`

	Clawback      decimal.Decimal `json:"clawback"`
	SurplusProfit decimal.Decimal `json:"surplus_profit"`
	SurplusTiers  int64           `json:"surplus_tiers"`
	SurplusBonus  decimal.Decimal `json:"surplus_bonus"`
	TotalBonus    decimal.Decimal `json:"total_bonus"`

	ForfeitedDeductions decimal.Decimal `json:"forfeited_deductions"`
}
