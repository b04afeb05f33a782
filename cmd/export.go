package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/perftrack/internal/report"
	"github.com/theirongolddev/perftrack/internal/store"
)

var flagExportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the records and year totals into a SQLite database",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "perftrack.db", "SQLite file to write")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	l, err := readLedger(os.Stderr)
	if err != nil {
		return err
	}

	db, err := store.Open(flagExportOut)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	err = db.SaveSnapshot(store.Snapshot{
		Source:     l.Path(),
		StartMonth: cfg.Plan.StartMonth,
		EndMonth:   cfg.Plan.EndMonth,
		Records:    l.Records(),
		Report:     report.Build(l, cfg.Plan),
	})
	if err != nil {
		return fmt.Errorf("exporting to %s: %w", flagExportOut, err)
	}

	fmt.Printf("  Exported %d months to %s\n", l.Len(), flagExportOut)
	return nil
}
