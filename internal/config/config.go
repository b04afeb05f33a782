// Package config loads perftrack settings from TOML, .env and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all perftrack configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Plan       PlanConfig       `toml:"plan"`
	Appearance AppearanceConfig `toml:"appearance"`
	Server     ServerConfig     `toml:"server"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataFile string `toml:"data_file"`
}

// PlanConfig holds the fixed targets of the tracked year.
// Amounts are in currency units, not ten-thousands.
type PlanConfig struct {
	Year                  int             `toml:"year"`
	StartMonth            int             `toml:"start_month"`
	EndMonth              int             `toml:"end_month"`
	MonthlyTarget         decimal.Decimal `toml:"monthly_target"`
	AnnualTarget          decimal.Decimal `toml:"annual_target"`
	SurplusBonusThreshold decimal.Decimal `toml:"surplus_bonus_threshold"`
	SurplusBonusAmount    decimal.Decimal `toml:"surplus_bonus_amount"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// ServerConfig holds web dashboard settings.
type ServerConfig struct {
	Addr     string `toml:"addr"`
	LogLevel string `toml:"log_level"`
	Pretty   bool   `toml:"pretty_log"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DataFile: "performance_data.json",
		},
		Plan: DefaultPlan(),
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Server: ServerConfig{
			Addr:     "127.0.0.1:8501",
			LogLevel: "info",
		},
	}
}

// DefaultPlan returns the plan the tracker was built around.
func DefaultPlan() PlanConfig {
	return PlanConfig{
		Year:                  2025,
		StartMonth:            2,
		EndMonth:              12,
		MonthlyTarget:         decimal.NewFromInt(180_000),
		AnnualTarget:          decimal.NewFromInt(2_300_000),
		SurplusBonusThreshold: decimal.NewFromInt(100_000),
		SurplusBonusAmount:    decimal.NewFromInt(10_000),
	}
}

// Validate checks the plan for values the calculator cannot work with.
func (p PlanConfig) Validate() error {
	if p.StartMonth > p.EndMonth {
		return fmt.Errorf("start_month %d is after end_month %d", p.StartMonth, p.EndMonth)
	}
	if !p.SurplusBonusThreshold.IsPositive() {
		return fmt.Errorf("surplus_bonus_threshold must be positive, got %s", p.SurplusBonusThreshold)
	}
	return nil
}

// Months returns every month of the plan span in ascending order.
func (p PlanConfig) Months() []int {
	months := make([]int, 0, p.EndMonth-p.StartMonth+1)
	for m := p.StartMonth; m <= p.EndMonth; m++ {
		months = append(months, m)
	}
	return months
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "perftrack")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "perftrack")
}

// ConfigPath returns the full path to the config file.
// PERFTRACK_CONFIG takes precedence over the XDG location.
func ConfigPath() string {
	if p := os.Getenv("PERFTRACK_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads .env, the config file and env overrides, returning defaults
// for anything not set.
func Load() (Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	applyEnv(&cfg)

	if err := cfg.Plan.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid plan: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PERFTRACK_DATA_FILE"); v != "" {
		cfg.General.DataFile = v
	}
	if v := os.Getenv("PERFTRACK_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("PERFTRACK_LOG_LEVEL"); v != "" {
		cfg.Server.LogLevel = v
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	path := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
