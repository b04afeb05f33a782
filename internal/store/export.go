// Package store exports the ledger into a SQLite file for ad-hoc querying.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/perftrack/internal/model"
	"github.com/theirongolddev/perftrack/internal/report"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Export is an open SQLite export database.
type Export struct {
	db *sql.DB
}

// Open opens or creates the export database at the given path.
func Open(dbPath string) (*Export, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening export db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Export{db: db}, nil
}

// Close closes the export database.
func (e *Export) Close() error {
	return e.db.Close()
}

// Snapshot is everything written by one export.
type Snapshot struct {
	Source     string
	StartMonth int
	EndMonth   int
	Records    []model.MonthlyRecord
	Report     report.Report
	ExportedAt time.Time
}

// SaveSnapshot replaces the database contents with s in one transaction.
// Amounts are stored as decimal strings so nothing is lost to float rounding.
func (e *Export) SaveSnapshot(s Snapshot) error {
	tx, err := e.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM monthly_records"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM snapshot"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO monthly_records
		(month, actual_profit, monthly_target, performance_diff, deduction)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range s.Records {
		_, err = stmt.Exec(r.Month, r.ActualProfit.String(), s.Report.MonthlyTarget.String(),
			r.PerformanceDiff.String(), r.Deduction().String())
		if err != nil {
			return fmt.Errorf("inserting month %d: %w", r.Month, err)
		}
	}

	var eligible, totalBonus any
	if b := s.Report.Bonus; b != nil {
		eligible = boolInt(b.Eligible)
		totalBonus = b.TotalBonus.String()
	}

	exportedAt := s.ExportedAt
	if exportedAt.IsZero() {
		exportedAt = time.Now()
	}

	_, err = tx.Exec(`INSERT INTO snapshot
		(id, year, start_month, end_month, annual_target, cumulative_profit, total_deductions,
		 months_recorded, complete, eligible, total_bonus, source_file, exported_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Report.Year, s.StartMonth, s.EndMonth, s.Report.AnnualTarget.String(),
		s.Report.CumulativeProfit.String(), s.Report.TotalDeductions.String(),
		s.Report.Recorded, boolInt(s.Report.Complete), eligible, totalBonus,
		s.Source, exportedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// LoadRecords reads the exported records in ascending month order.
func (e *Export) LoadRecords() ([]model.MonthlyRecord, error) {
	rows, err := e.db.Query(`SELECT month, actual_profit, performance_diff
		FROM monthly_records ORDER BY month`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.MonthlyRecord
	for rows.Next() {
		var (
			r            model.MonthlyRecord
			profit, diff string
		)
		if err := rows.Scan(&r.Month, &profit, &diff); err != nil {
			return nil, err
		}
		if r.ActualProfit, err = decimal.NewFromString(profit); err != nil {
			return nil, fmt.Errorf("month %d actual_profit: %w", r.Month, err)
		}
		if r.PerformanceDiff, err = decimal.NewFromString(diff); err != nil {
			return nil, fmt.Errorf("month %d performance_diff: %w", r.Month, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Summary is the aggregate row of an export.
type Summary struct {
	Year             int
	CumulativeProfit decimal.Decimal
	TotalDeductions  decimal.Decimal
	MonthsRecorded   int
	Complete         bool
	Eligible         sql.NullBool
	Source           string
}

// LoadSummary reads the aggregate row written by SaveSnapshot.
func (e *Export) LoadSummary() (Summary, error) {
	var (
		s        Summary
		cum, ded string
		complete int
		eligible sql.NullInt64
	)
	err := e.db.QueryRow(`SELECT year, cumulative_profit, total_deductions, months_recorded,
		complete, eligible, source_file FROM snapshot WHERE id = 1`).
		Scan(&s.Year, &cum, &ded, &s.MonthsRecorded, &complete, &eligible, &s.Source)
	if err != nil {
		return s, err
	}
	s.Complete = complete != 0
	if eligible.Valid {
		s.Eligible = sql.NullBool{Bool: eligible.Int64 != 0, Valid: true}
	}
	if s.CumulativeProfit, err = decimal.NewFromString(cum); err != nil {
		return s, fmt.Errorf("cumulative_profit: %w", err)
	}
	if s.TotalDeductions, err = decimal.NewFromString(ded); err != nil {
		return s, fmt.Errorf("total_deductions: %w", err)
	}
	return s, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
