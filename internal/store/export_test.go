package store

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/perftrack/internal/config"
	"github.com/theirongolddev/perftrack/internal/ledger"
	"github.com/theirongolddev/perftrack/internal/report"
)

func snapshotOf(l *ledger.Ledger, plan config.PlanConfig) Snapshot {
	return Snapshot{
		Source:     l.Path(),
		StartMonth: plan.StartMonth,
		EndMonth:   plan.EndMonth,
		Records:    l.Records(),
		Report:     report.Build(l, plan),
	}
}

func TestSaveSnapshot_RoundTrip(t *testing.T) {
	plan := config.DefaultPlan()
	l := ledger.New(filepath.Join(t.TempDir(), "data.json"), plan.MonthlyTarget)
	l.Upsert(3, decimal.RequireFromString("-2.5"))
	l.Upsert(2, decimal.RequireFromString("19.5"))

	e, err := Open(filepath.Join(t.TempDir(), "nested", "export.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = e.Close() }()

	if err := e.SaveSnapshot(snapshotOf(l, plan)); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	recs, err := e.LoadRecords()
	if err != nil {
		t.Fatalf("LoadRecords: %v", err)
	}
	if len(recs) != 2 || recs[0].Month != 2 || recs[1].Month != 3 {
		t.Fatalf("records = %+v, want months 2,3", recs)
	}
	if !recs[1].ActualProfit.Equal(decimal.NewFromInt(-25_000)) {
		t.Errorf("month 3 profit = %s, want -25000", recs[1].ActualProfit)
	}
	if !recs[1].PerformanceDiff.Equal(decimal.NewFromInt(-205_000)) {
		t.Errorf("month 3 diff = %s, want -205000", recs[1].PerformanceDiff)
	}

	sum, err := e.LoadSummary()
	if err != nil {
		t.Fatalf("LoadSummary: %v", err)
	}
	if sum.Year != 2025 || sum.MonthsRecorded != 2 || sum.Complete {
		t.Errorf("summary = %+v", sum)
	}
	if !sum.CumulativeProfit.Equal(decimal.NewFromInt(170_000)) {
		t.Errorf("CumulativeProfit = %s, want 170000", sum.CumulativeProfit)
	}
	if !sum.TotalDeductions.Equal(decimal.NewFromInt(205_000)) {
		t.Errorf("TotalDeductions = %s, want 205000", sum.TotalDeductions)
	}
	if sum.Eligible.Valid {
		t.Error("eligible set for an incomplete year")
	}
	if sum.Source != l.Path() {
		t.Errorf("Source = %q, want %q", sum.Source, l.Path())
	}
}

func TestSaveSnapshot_ReplacesPreviousExport(t *testing.T) {
	plan := config.DefaultPlan()
	l := ledger.New(filepath.Join(t.TempDir(), "data.json"), plan.MonthlyTarget)
	for m := 2; m <= 12; m++ {
		l.Upsert(m, decimal.NewFromInt(25))
	}

	e, err := Open(filepath.Join(t.TempDir(), "export.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = e.Close() }()

	if err := e.SaveSnapshot(snapshotOf(l, plan)); err != nil {
		t.Fatalf("first SaveSnapshot: %v", err)
	}

	short := ledger.New(l.Path(), plan.MonthlyTarget)
	short.Upsert(2, decimal.NewFromInt(1))
	if err := e.SaveSnapshot(snapshotOf(short, plan)); err != nil {
		t.Fatalf("second SaveSnapshot: %v", err)
	}

	recs, err := e.LoadRecords()
	if err != nil {
		t.Fatalf("LoadRecords: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d records after re-export, want 1", len(recs))
	}

	sum, err := e.LoadSummary()
	if err != nil {
		t.Fatalf("LoadSummary: %v", err)
	}
	if sum.MonthsRecorded != 1 || sum.Complete || sum.Eligible.Valid {
		t.Errorf("summary not replaced: %+v", sum)
	}
}

func TestSaveSnapshot_CompleteYearStoresBonus(t *testing.T) {
	plan := config.DefaultPlan()
	l := ledger.New(filepath.Join(t.TempDir(), "data.json"), plan.MonthlyTarget)
	for m := 2; m <= 12; m++ {
		l.Upsert(m, decimal.NewFromInt(25))
	}

	e, err := Open(filepath.Join(t.TempDir(), "export.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = e.Close() }()

	if err := e.SaveSnapshot(snapshotOf(l, plan)); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	sum, err := e.LoadSummary()
	if err != nil {
		t.Fatalf("LoadSummary: %v", err)
	}
	if !sum.Complete || !sum.Eligible.Valid || !sum.Eligible.Bool {
		t.Errorf("summary = %+v, want complete and eligible", sum)
	}
}
