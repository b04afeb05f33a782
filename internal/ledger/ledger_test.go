package ledger

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

var target = decimal.NewFromInt(180_000)

func dataPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "performance_data.json")
}

func tenK(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}

func TestUpsert_DerivesPerformanceDiff(t *testing.T) {
	l := New(dataPath(t), target)

	rec := l.Upsert(2, tenK(t, "19.5"))
	if !rec.ActualProfit.Equal(decimal.NewFromInt(195_000)) {
		t.Fatalf("ActualProfit = %s, want 195000", rec.ActualProfit)
	}
	if !rec.PerformanceDiff.Equal(decimal.NewFromInt(15_000)) {
		t.Fatalf("PerformanceDiff = %s, want 15000", rec.PerformanceDiff)
	}

	rec = l.Upsert(3, tenK(t, "-2.5"))
	if !rec.PerformanceDiff.Equal(decimal.NewFromInt(-205_000)) {
		t.Fatalf("PerformanceDiff = %s, want -205000", rec.PerformanceDiff)
	}

	for _, r := range l.Records() {
		if !r.PerformanceDiff.Equal(r.ActualProfit.Sub(target)) {
			t.Errorf("month %d diff %s inconsistent with profit %s", r.Month, r.PerformanceDiff, r.ActualProfit)
		}
	}
}

func TestRecalculate_Empty(t *testing.T) {
	agg := New(dataPath(t), target).Recalculate()
	if !agg.CumulativeProfit.IsZero() || !agg.TotalDeductions.IsZero() {
		t.Fatalf("empty aggregate = %s/%s, want 0/0", agg.CumulativeProfit, agg.TotalDeductions)
	}
}

func TestRecalculate_OrderIndependentAndIdempotent(t *testing.T) {
	inputs := map[int]string{2: "20", 3: "15", 4: "-1", 5: "18", 6: "30.25"}

	forward := New(dataPath(t), target)
	for _, m := range []int{2, 3, 4, 5, 6} {
		forward.Upsert(m, tenK(t, inputs[m]))
	}
	backward := New(dataPath(t), target)
	for _, m := range []int{6, 5, 4, 3, 2} {
		backward.Upsert(m, tenK(t, inputs[m]))
	}

	a, b := forward.Recalculate(), backward.Recalculate()
	if !a.CumulativeProfit.Equal(b.CumulativeProfit) || !a.TotalDeductions.Equal(b.TotalDeductions) {
		t.Fatalf("aggregates differ by insertion order: %+v vs %+v", a, b)
	}

	// 200000 + 150000 - 10000 + 180000 + 302500
	if !a.CumulativeProfit.Equal(decimal.NewFromInt(822_500)) {
		t.Errorf("CumulativeProfit = %s, want 822500", a.CumulativeProfit)
	}
	// 30000 (month 3) + 190000 (month 4); month 5 hits the target exactly
	if !a.TotalDeductions.Equal(decimal.NewFromInt(220_000)) {
		t.Errorf("TotalDeductions = %s, want 220000", a.TotalDeductions)
	}

	again := forward.Recalculate()
	if !again.CumulativeProfit.Equal(a.CumulativeProfit) || !again.TotalDeductions.Equal(a.TotalDeductions) {
		t.Errorf("repeated Recalculate changed result: %+v vs %+v", again, a)
	}
}

func TestUpsert_EditLeavesNoStaleContribution(t *testing.T) {
	l := New(dataPath(t), target)
	l.Upsert(2, tenK(t, "10"))
	l.Upsert(3, tenK(t, "20"))

	l.Upsert(2, tenK(t, "25"))

	agg := l.Recalculate()
	if !agg.CumulativeProfit.Equal(decimal.NewFromInt(450_000)) {
		t.Fatalf("CumulativeProfit = %s, want 450000", agg.CumulativeProfit)
	}
	if !agg.TotalDeductions.IsZero() {
		t.Fatalf("TotalDeductions = %s, want 0 after editing month 2 above target", agg.TotalDeductions)
	}
	if l.Len() != 2 {
		t.Fatalf("Len = %d, want 2", l.Len())
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := dataPath(t)
	l := New(path, target)
	l.Upsert(2, tenK(t, "19.5"))
	l.Upsert(3, tenK(t, "-2.57"))
	l.Upsert(12, tenK(t, "100.01"))

	if err := l.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path, target)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Len() != l.Len() {
		t.Fatalf("Len = %d, want %d", got.Len(), l.Len())
	}
	for _, want := range l.Records() {
		rec, ok := got.Record(want.Month)
		if !ok {
			t.Fatalf("month %d missing after reload", want.Month)
		}
		if !rec.ActualProfit.Equal(want.ActualProfit) || !rec.PerformanceDiff.Equal(want.PerformanceDiff) {
			t.Errorf("month %d = (%s, %s), want (%s, %s)", want.Month,
				rec.ActualProfit, rec.PerformanceDiff, want.ActualProfit, want.PerformanceDiff)
		}
	}
}

func TestSave_FileFormat(t *testing.T) {
	path := dataPath(t)
	l := New(path, target)
	l.Upsert(2, tenK(t, "19.5"))
	if err := l.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.Contains(text, "\n    \"2\": {\n        \"actual_profit\": 195000,") {
		t.Errorf("file is not 4-space indented with string month keys:\n%s", text)
	}

	var raw map[string]map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("file is not plain JSON: %v", err)
	}
	if len(raw["2"]) != 2 {
		t.Errorf("record fields = %v, want exactly actual_profit and performance_diff", raw["2"])
	}
	if raw["2"]["performance_diff"] != 15000 {
		t.Errorf("performance_diff = %v, want 15000", raw["2"]["performance_diff"])
	}
}

func TestSave_OverwritesPreviousContent(t *testing.T) {
	path := dataPath(t)
	if err := os.WriteFile(path, []byte(`{"7": {"actual_profit": 1, "performance_diff": 1}}`), 0o600); err != nil {
		t.Fatal(err)
	}

	l := New(path, target)
	l.Upsert(2, tenK(t, "1"))
	if err := l.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path, target)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := got.Record(7); ok {
		t.Error("month 7 survived a full overwrite")
	}
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	l, err := Load(dataPath(t), target)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if l.Len() != 0 {
		t.Fatalf("Len = %d, want 0", l.Len())
	}
}

func TestLoad_RecomputesStoredDiff(t *testing.T) {
	path := dataPath(t)
	content := `{"4": {"actual_profit": 100000.0, "performance_diff": 999.0}}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	l, err := Load(path, target)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	rec, ok := l.Record(4)
	if !ok {
		t.Fatal("month 4 missing")
	}
	if !rec.PerformanceDiff.Equal(decimal.NewFromInt(-80_000)) {
		t.Errorf("PerformanceDiff = %s, want -80000", rec.PerformanceDiff)
	}
}

func TestLoad_AcceptsOutOfRangeMonths(t *testing.T) {
	path := dataPath(t)
	content := `{"0": {"actual_profit": 1, "performance_diff": 0}, "15": {"actual_profit": 2, "performance_diff": 0}}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	l, err := Load(path, target)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := l.Months(); len(got) != 2 || got[0] != 0 || got[1] != 15 {
		t.Errorf("Months = %v, want [0 15]", got)
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"truncated json", `{"2": {"actual_profit": 1`},
		{"non-integer key", `{"feb": {"actual_profit": 1, "performance_diff": 0}}`},
		{"array", `[1, 2, 3]`},
		{"trailing garbage", `{"2": {"actual_profit": 1, "performance_diff": 0}} garbage`},
		{"second object", `{"2": {"actual_profit": 1, "performance_diff": 0}} {}`},
		{"stray brace", `{"2": {"actual_profit": 1, "performance_diff": 0}}}`},
		{"huge exponent", `{"2": {"actual_profit": 1e50000000, "performance_diff": 0}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := dataPath(t)
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}

			l, err := Load(path, target)
			if l != nil {
				t.Error("Load returned a ledger for corrupt content")
			}
			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("err = %v, want *LoadError", err)
			}
			if le.Path != path {
				t.Errorf("LoadError.Path = %q, want %q", le.Path, path)
			}
		})
	}
}

func TestRecover_BacksUpAndStartsEmpty(t *testing.T) {
	path := dataPath(t)
	corrupt := []byte(`{not json`)
	if err := os.WriteFile(path, corrupt, 0o600); err != nil {
		t.Fatal(err)
	}

	l, backup, err := Recover(path, target)
	if err != nil {
		t.Fatalf("Recover: %v", err)
	}
	if l.Len() != 0 || l.Path() != path {
		t.Fatalf("recovered ledger = %d records at %q, want empty at %q", l.Len(), l.Path(), path)
	}

	data, err := os.ReadFile(backup)
	if err != nil {
		t.Fatalf("reading backup: %v", err)
	}
	if string(data) != string(corrupt) {
		t.Errorf("backup content = %q, want %q", data, corrupt)
	}
}

func TestLoad_TrailingWhitespaceIsFine(t *testing.T) {
	path := dataPath(t)
	content := "{\"2\": {\"actual_profit\": 1, \"performance_diff\": 0}}\n\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, target); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestSave_FileMode(t *testing.T) {
	path := dataPath(t)
	l := New(path, target)
	l.Upsert(2, decimal.NewFromInt(1))
	if err := l.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := fi.Mode().Perm(); got != 0o644 {
		t.Errorf("new data file mode = %o, want 644", got)
	}

	if err := os.Chmod(path, 0o640); err != nil {
		t.Fatal(err)
	}
	if err := l.Save(); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	fi, err = os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := fi.Mode().Perm(); got != 0o640 {
		t.Errorf("existing data file mode = %o after save, want 640 kept", got)
	}
}

func TestSave_PersistError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	// Parent "directory" is a regular file, so the write must fail.
	l := New(filepath.Join(blocker, "data.json"), target)
	l.Upsert(2, decimal.NewFromInt(1))

	var pe *PersistError
	if err := l.Save(); !errors.As(err, &pe) {
		t.Fatalf("Save err = %v, want *PersistError", err)
	}
	if l.Len() != 1 {
		t.Error("in-memory record lost after failed save")
	}
}

func TestNextMonth(t *testing.T) {
	l := New(dataPath(t), target)
	if got := l.NextMonth(2); got != 2 {
		t.Fatalf("NextMonth on empty = %d, want 2", got)
	}
	l.Upsert(2, decimal.NewFromInt(1))
	l.Upsert(5, decimal.NewFromInt(1))
	if got := l.NextMonth(2); got != 6 {
		t.Fatalf("NextMonth = %d, want 6", got)
	}
}
