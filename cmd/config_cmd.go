package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/perftrack/internal/cli"
	"github.com/theirongolddev/perftrack/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data file: %s\n", cfg.General.DataFile)
	fmt.Println()

	p := cfg.Plan
	fmt.Println("  [Plan]")
	fmt.Printf("    Year:                    %d\n", p.Year)
	fmt.Printf("    Months:                  %s - %s\n", cli.FormatMonth(p.StartMonth), cli.FormatMonth(p.EndMonth))
	fmt.Printf("    Monthly target:          %s\n", cli.FormatAmount(p.MonthlyTarget))
	fmt.Printf("    Annual target:           %s\n", cli.FormatAmount(p.AnnualTarget))
	fmt.Printf("    Surplus bonus threshold: %s\n", cli.FormatAmount(p.SurplusBonusThreshold))
	fmt.Printf("    Surplus bonus amount:    %s\n", cli.FormatAmount(p.SurplusBonusAmount))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:   %s\n", cfg.Server.Addr)
	fmt.Printf("    Log level: %s\n", cfg.Server.LogLevel)
	fmt.Println()

	fmt.Println("  Run `perftrack setup` to reconfigure.")
	return nil
}
