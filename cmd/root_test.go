package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/perftrack/internal/config"
	"github.com/theirongolddev/perftrack/internal/ledger"
)

func TestOpenLedger_RecoversUnreadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(`{"2": {"actual_profit": `), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg = config.DefaultConfig()
	cfg.General.DataFile = path

	var out bytes.Buffer
	l, err := openLedger(&out)
	if err != nil {
		t.Fatalf("openLedger: %v", err)
	}
	if l.Len() != 0 {
		t.Errorf("Len = %d, want 0", l.Len())
	}
	if !strings.Contains(out.String(), "Unreadable file saved as") {
		t.Errorf("no backup notice:\n%s", out.String())
	}

	backups, _ := filepath.Glob(path + ".corrupt-*")
	if len(backups) != 1 {
		t.Fatalf("backups = %v, want one", backups)
	}
}

func TestReadLedger_LeavesUnreadableFileAlone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	corrupt := []byte(`{"2": {"actual_profit": `)
	if err := os.WriteFile(path, corrupt, 0o600); err != nil {
		t.Fatal(err)
	}
	cfg = config.DefaultConfig()
	cfg.General.DataFile = path

	for i := 0; i < 2; i++ {
		var out bytes.Buffer
		l, err := readLedger(&out)
		if err != nil {
			t.Fatalf("readLedger: %v", err)
		}
		if l.Len() != 0 {
			t.Errorf("Len = %d, want 0", l.Len())
		}
		if !strings.Contains(out.String(), "Could not read") {
			t.Errorf("no warning:\n%s", out.String())
		}
	}

	if backups, _ := filepath.Glob(path + ".corrupt-*"); len(backups) != 0 {
		t.Errorf("read-only load wrote backups %v", backups)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, corrupt) {
		t.Errorf("data file changed to %q", data)
	}
}

func TestSummaryCommand_CorruptFileMakesNoBackup(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PERFTRACK_CONFIG", filepath.Join(dir, "missing.toml"))
	path := filepath.Join(dir, "data.json")
	if err := os.WriteFile(path, []byte(`{} trailing`), 0o600); err != nil {
		t.Fatal(err)
	}

	rootCmd.SetArgs([]string{"summary", "--json", "--data-file", path})
	defer rootCmd.SetArgs(nil)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("summary: %v", err)
	}
	if backups, _ := filepath.Glob(path + ".corrupt-*"); len(backups) != 0 {
		t.Errorf("summary wrote backups %v", backups)
	}
}

func TestOpenLedger_Notices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	cfg = config.DefaultConfig()
	cfg.General.DataFile = path

	var out bytes.Buffer
	if _, err := openLedger(&out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No records yet") {
		t.Errorf("missing new-file notice:\n%s", out.String())
	}

	l := ledger.New(path, cfg.Plan.MonthlyTarget)
	l.Upsert(2, decimal.NewFromInt(20))
	if err := l.Save(); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	if _, err := openLedger(&out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Loaded 1 recorded months") {
		t.Errorf("missing loaded notice:\n%s", out.String())
	}
}

func TestSetCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PERFTRACK_CONFIG", filepath.Join(dir, "missing.toml"))
	path := filepath.Join(dir, "data.json")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"set", "--data-file", path, "3", "--", "-2.5"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("set: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "Mar (3) saved") {
		t.Errorf("output = %q", out.String())
	}

	l, err := ledger.Load(path, config.DefaultPlan().MonthlyTarget)
	if err != nil {
		t.Fatal(err)
	}
	rec, ok := l.Record(3)
	if !ok || !rec.ActualProfit.Equal(decimal.NewFromInt(-25_000)) {
		t.Errorf("month 3 = %+v (ok=%v), want -25000", rec, ok)
	}
}

func TestSetCommand_RejectsBadMonth(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PERFTRACK_CONFIG", filepath.Join(dir, "missing.toml"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"set", "--data-file", filepath.Join(dir, "data.json"), "march", "10"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for non-numeric month")
	}
}
