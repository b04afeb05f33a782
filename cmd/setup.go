package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/perftrack/internal/config"
	"github.com/theirongolddev/perftrack/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive configuration wizard",
	// A broken config file must not keep the wizard from replacing it.
	PersistentPreRun: func(_ *cobra.Command, _ []string) {},
	RunE:             runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	c, err := config.Load()
	if err != nil {
		fmt.Printf("  Existing config ignored: %v\n", err)
		c = config.DefaultConfig()
	}

	vals := tui.NewSetupValues(c)
	if err := tui.NewSetupForm(vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing written.")
			return nil
		}
		return err
	}

	if err := vals.Apply(&c); err != nil {
		return err
	}
	if err := c.Plan.Validate(); err != nil {
		return fmt.Errorf("invalid plan: %w", err)
	}
	if err := config.Save(c); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `perftrack setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
