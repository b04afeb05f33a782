package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/perftrack/internal/cli"
	"github.com/theirongolddev/perftrack/internal/console"
	"github.com/theirongolddev/perftrack/internal/report"
)

var flagSummaryJSON bool

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print progress, the month table and the bonus, then exit",
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().BoolVar(&flagSummaryJSON, "json", false, "Print the report as JSON")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	l, err := readLedger(os.Stderr)
	if err != nil {
		return err
	}
	rep := report.Build(l, cfg.Plan)

	if flagSummaryJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PROFIT PERFORMANCE  %d", rep.Year)))

	console.WriteProgress(os.Stdout, rep)
	fmt.Println()
	console.WriteMonthTable(os.Stdout, rep)

	if recorded := rep.RecordedRows(); len(recorded) > 1 {
		values := make([]float64, len(recorded))
		for i, row := range recorded {
			values[i] = row.ActualProfit.InexactFloat64()
		}
		fmt.Printf("  %s %s\n", cli.Muted("Trend:"), cli.RenderSparkline(values))
	}

	console.WriteBonus(os.Stdout, rep)
	fmt.Println()
	return nil
}
