// Package cmd implements the perftrack CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/perftrack/internal/cli"
	"github.com/theirongolddev/perftrack/internal/config"
	"github.com/theirongolddev/perftrack/internal/console"
	"github.com/theirongolddev/perftrack/internal/ledger"
)

var (
	flagDataFile string
	flagQuiet    bool
)

// cfg is the effective configuration, loaded before any command runs.
var cfg = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "perftrack",
	Short: "Monthly profit tracker with year-end bonus calculation",
	Long: "Record monthly profits against a fixed target, track cumulative progress\n" +
		"toward the annual goal and compute the year-end bonus once the year is complete.\n\n" +
		"Without a subcommand perftrack starts the interactive console.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runConsole,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataFile, "data-file", "f", "", "Profit data file (overrides config and PERFTRACK_DATA_FILE)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress load notices")
}

func loadConfig(_ *cobra.Command, _ []string) error {
	c, err := config.Load()
	if err != nil {
		return err
	}
	if flagDataFile != "" {
		c.General.DataFile = flagDataFile
	}
	cfg = c
	return nil
}

// openLedger loads the configured data file for a command that will save.
// An unreadable file is backed up and replaced by an empty ledger so the
// session can continue.
func openLedger(w io.Writer) (*ledger.Ledger, error) {
	return loadLedger(w, true)
}

// readLedger is openLedger for read-only commands: an unreadable file is
// reported and left alone, and the command works from an empty ledger.
func readLedger(w io.Writer) (*ledger.Ledger, error) {
	return loadLedger(w, false)
}

func loadLedger(w io.Writer, backupUnreadable bool) (*ledger.Ledger, error) {
	path := cfg.General.DataFile

	l, err := ledger.Load(path, cfg.Plan.MonthlyTarget)
	if err != nil {
		var loadErr *ledger.LoadError
		if !errors.As(err, &loadErr) {
			return nil, err
		}
		_, _ = fmt.Fprintln(w, cli.Warn(fmt.Sprintf("  Could not read %s: %v", path, loadErr.Err)))

		if !backupUnreadable {
			_, _ = fmt.Fprintln(w, cli.Warn("  Reporting on empty data; the file is left untouched"))
			return ledger.New(path, cfg.Plan.MonthlyTarget), nil
		}

		var backup string
		l, backup, err = ledger.Recover(path, cfg.Plan.MonthlyTarget)
		if err != nil {
			_, _ = fmt.Fprintln(w, cli.Error(fmt.Sprintf("  %v", err)))
		} else {
			_, _ = fmt.Fprintf(w, "%s\n", cli.Warn("  Unreadable file saved as "+backup))
		}
		_, _ = fmt.Fprintln(w, cli.Warn("  Starting with empty data; the next save overwrites "+path))
		return l, nil
	}

	if !flagQuiet {
		if l.Len() == 0 {
			_, _ = fmt.Fprintln(w, cli.Info("  No records yet in "+path))
		} else {
			_, _ = fmt.Fprintln(w, cli.Info(fmt.Sprintf("  Loaded %d recorded months from %s", l.Len(), path)))
		}
	}
	return l, nil
}

func runConsole(_ *cobra.Command, _ []string) error {
	l, err := openLedger(os.Stdout)
	if err != nil {
		return err
	}
	return console.New(os.Stdin, os.Stdout, l, cfg.Plan).Run()
}
