package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/perftrack/internal/config"
	"github.com/theirongolddev/perftrack/internal/tui/theme"
)

// SetupValues holds the editable subset of the config as form strings.
type SetupValues struct {
	DataFile      string
	Theme         string
	Year          string
	MonthlyTarget string
	AnnualTarget  string
	Addr          string
}

// NewSetupValues seeds the form from cfg.
func NewSetupValues(cfg config.Config) *SetupValues {
	return &SetupValues{
		DataFile:      cfg.General.DataFile,
		Theme:         cfg.Appearance.Theme,
		Year:          strconv.Itoa(cfg.Plan.Year),
		MonthlyTarget: cfg.Plan.MonthlyTarget.String(),
		AnnualTarget:  cfg.Plan.AnnualTarget.String(),
		Addr:          cfg.Server.Addr,
	}
}

// Apply copies the form values onto cfg.
func (v *SetupValues) Apply(cfg *config.Config) error {
	year, err := strconv.Atoi(strings.TrimSpace(v.Year))
	if err != nil {
		return fmt.Errorf("year: %w", err)
	}
	monthly, err := decimal.NewFromString(strings.TrimSpace(v.MonthlyTarget))
	if err != nil {
		return fmt.Errorf("monthly target: %w", err)
	}
	annual, err := decimal.NewFromString(strings.TrimSpace(v.AnnualTarget))
	if err != nil {
		return fmt.Errorf("annual target: %w", err)
	}

	if df := strings.TrimSpace(v.DataFile); df != "" {
		cfg.General.DataFile = df
	}
	cfg.Appearance.Theme = theme.ByName(v.Theme).Name
	cfg.Plan.Year = year
	cfg.Plan.MonthlyTarget = monthly
	cfg.Plan.AnnualTarget = annual
	if addr := strings.TrimSpace(v.Addr); addr != "" {
		cfg.Server.Addr = addr
	}
	return nil
}

// NewSetupForm builds the setup wizard bound to v.
func NewSetupForm(v *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to perftrack").
				Description("Set where profits are stored and the targets of the year."),
			huh.NewInput().
				Title("Data file").
				Description("JSON file holding the monthly records").
				Value(&v.DataFile),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&v.Theme),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Year").
				Value(&v.Year).
				Validate(validateInt),
			huh.NewInput().
				Title("Monthly profit target").
				Value(&v.MonthlyTarget).
				Validate(validateDecimal),
			huh.NewInput().
				Title("Annual profit target").
				Value(&v.AnnualTarget).
				Validate(validateDecimal),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Dashboard address").
				Description("host:port for perftrack serve").
				Value(&v.Addr),
		),
	)
}

func validateInt(s string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("enter a whole number")
	}
	return nil
}

func validateDecimal(s string) error {
	if _, err := decimal.NewFromString(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("enter a number")
	}
	return nil
}
