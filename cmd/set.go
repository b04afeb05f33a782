package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/perftrack/internal/cli"
)

var setCmd = &cobra.Command{
	Use:   "set <month> <profit>",
	Short: "Record or overwrite one month's profit (in units of 10,000)",
	Example: "  perftrack set 2 19.5\n" +
		"  perftrack set 3 -- -2.5   # losses need -- so the sign is not read as a flag",
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	month, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("month must be a number, got %q", args[0])
	}
	profit, err := cli.ParseTenThousands(args[1])
	if err != nil {
		return fmt.Errorf("profit: %w", err)
	}

	out := cmd.OutOrStdout()
	l, err := openLedger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	rec := l.Upsert(month, profit)
	if err := l.Save(); err != nil {
		return fmt.Errorf("saving %s: %w", cli.FormatMonth(month), err)
	}

	_, _ = fmt.Fprintf(out, "  %s saved: profit %s, performance %s\n",
		cli.FormatMonth(rec.Month), cli.Amount(rec.ActualProfit), cli.Amount(rec.PerformanceDiff))
	return nil
}
