// Package ledger is the record store: one profit record per month, persisted
// as a single JSON file and re-aggregated from scratch on demand.
package ledger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/perftrack/internal/model"
)

// TenThousand converts input amounts, entered in units of ten thousand, to currency units.
var TenThousand = decimal.NewFromInt(10_000)

// Exponent window accepted for stored amounts. Anything outside it would
// expand into megabytes of digits on the next render or save.
const (
	minStoredExponent = -12
	maxStoredExponent = 18
)

// dataFileMode applies to newly created data files; existing files keep their mode.
const dataFileMode os.FileMode = 0o644

// LoadError reports a data file that exists but cannot be decoded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// PersistError reports a failed write of the data file.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("saving %s: %v", e.Path, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// Ledger holds the month -> record mapping for one data file.
// It is not safe for concurrent use.
type Ledger struct {
	path          string
	monthlyTarget decimal.Decimal
	records       map[int]model.MonthlyRecord
}

// New returns an empty ledger bound to path.
func New(path string, monthlyTarget decimal.Decimal) *Ledger {
	return &Ledger{
		path:          path,
		monthlyTarget: monthlyTarget,
		records:       make(map[int]model.MonthlyRecord),
	}
}

// fileRecord is the on-disk shape of a record. json.Number keeps the
// decimal text exact in both directions.
type fileRecord struct {
	ActualProfit    json.Number `json:"actual_profit"`
	PerformanceDiff json.Number `json:"performance_diff"`
}

// Load reads the ledger at path. A missing file yields an empty ledger.
// Undecodable content yields a *LoadError and a nil ledger.
func Load(path string, monthlyTarget decimal.Decimal) (*Ledger, error) {
	l := New(path, monthlyTarget)

	data, err := os.ReadFile(path) //nolint:gosec // data file path is configured by the local user
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return l, nil
		}
		return nil, &LoadError{Path: path, Err: err}
	}

	var raw map[string]fileRecord
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &LoadError{Path: path, Err: errors.New("unexpected content after the records object")}
	}

	for key, fr := range raw {
		month, err := strconv.Atoi(key)
		if err != nil {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("month key %q: %w", key, err)}
		}
		profit, err := decimal.NewFromString(fr.ActualProfit.String())
		if err != nil {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("month %d actual_profit: %w", month, err)}
		}
		if exp := profit.Exponent(); exp < minStoredExponent || exp > maxStoredExponent {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("month %d actual_profit out of range: %s", month, fr.ActualProfit)}
		}
		// performance_diff is derived; recompute rather than trust the file.
		l.put(month, profit)
	}

	return l, nil
}

// Recover handles a *LoadError from Load: the unreadable file is copied aside
// to <path>.corrupt-<timestamp> and an empty ledger bound to path is returned
// together with the backup location.
func Recover(path string, monthlyTarget decimal.Decimal) (*Ledger, string, error) {
	backup := fmt.Sprintf("%s.corrupt-%s", path, time.Now().Format("20060102-150405"))
	if err := copyFile(path, backup); err != nil {
		return New(path, monthlyTarget), "", fmt.Errorf("backing up unreadable data file: %w", err)
	}
	return New(path, monthlyTarget), backup, nil
}

// Path returns the data file location.
func (l *Ledger) Path() string { return l.path }

// MonthlyTarget returns the target each month is compared against.
func (l *Ledger) MonthlyTarget() decimal.Decimal { return l.monthlyTarget }

// Upsert records profit for month, entered in units of ten thousand,
// replacing any previous value. Months are not range-checked.
func (l *Ledger) Upsert(month int, tenThousands decimal.Decimal) model.MonthlyRecord {
	return l.put(month, tenThousands.Mul(TenThousand))
}

func (l *Ledger) put(month int, actualProfit decimal.Decimal) model.MonthlyRecord {
	rec := model.MonthlyRecord{
		Month:           month,
		ActualProfit:    actualProfit,
		PerformanceDiff: actualProfit.Sub(l.monthlyTarget),
	}
	l.records[month] = rec
	return rec
}

// Record returns the record for month.
func (l *Ledger) Record(month int) (model.MonthlyRecord, bool) {
	rec, ok := l.records[month]
	return rec, ok
}

// Len returns the number of recorded months.
func (l *Ledger) Len() int { return len(l.records) }

// Months returns the recorded months in ascending order.
func (l *Ledger) Months() []int {
	months := make([]int, 0, len(l.records))
	for m := range l.records {
		months = append(months, m)
	}
	sort.Ints(months)
	return months
}

// Records returns all records in ascending month order.
func (l *Ledger) Records() []model.MonthlyRecord {
	months := l.Months()
	out := make([]model.MonthlyRecord, len(months))
	for i, m := range months {
		out[i] = l.records[m]
	}
	return out
}

// NextMonth returns the month after the latest recorded one, or start when empty.
func (l *Ledger) NextMonth(start int) int {
	months := l.Months()
	if len(months) == 0 {
		return start
	}
	return months[len(months)-1] + 1
}

// Recalculate derives the aggregate from the full record set.
func (l *Ledger) Recalculate() model.Aggregate {
	agg := model.Aggregate{
		CumulativeProfit: decimal.Zero,
		TotalDeductions:  decimal.Zero,
	}
	for _, rec := range l.Records() {
		agg.CumulativeProfit = agg.CumulativeProfit.Add(rec.ActualProfit)
		agg.TotalDeductions = agg.TotalDeductions.Add(rec.Deduction())
	}
	return agg
}

// Save overwrites the data file with the full record set.
func (l *Ledger) Save() error {
	data, err := l.encode()
	if err != nil {
		return &PersistError{Path: l.path, Err: err}
	}
	if err := writeFileAtomic(l.path, data); err != nil {
		return &PersistError{Path: l.path, Err: err}
	}
	return nil
}

func (l *Ledger) encode() ([]byte, error) {
	out := make(map[string]fileRecord, len(l.records))
	for m, rec := range l.records {
		out[strconv.Itoa(m)] = fileRecord{
			ActualProfit:    json.Number(rec.ActualProfit.String()),
			PerformanceDiff: json.Number(rec.PerformanceDiff.String()),
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	mode := dataFileMode
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // data file path is configured by the local user
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600) //nolint:gosec // derived from the data file path
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
