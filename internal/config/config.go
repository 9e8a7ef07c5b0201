package config

import (
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where LoadConfig looks when no --config flag is given.
const DefaultPath = ".wordseek/config.yaml"

// HistoryConfig controls the solve-history database.
type HistoryConfig struct {
	// Enabled records every successful solve in the history database
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the history database file
	DBPath string `yaml:"db_path"`

	// KeepDays is how many days of solve records to retain
	KeepDays int `yaml:"keep_days"`
}

// Config represents wordseek configuration options.
type Config struct {
	// Output is the path the rendered solution is written to
	Output string `yaml:"output"`

	// Placeholder is the single character printed for letters that are
	// not part of any found word
	Placeholder string `yaml:"placeholder"`

	// Workers is the number of goroutines the solver shards rows across
	// (values below 2 scan serially)
	Workers int `yaml:"workers"`

	// LogLevel sets console verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// Color controls colorized terminal output: auto, always, or never
	Color string `yaml:"color"`

	// History contains solve-history configuration
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Output:      "solution.txt",
		Placeholder: " ",
		Workers:     1,
		LogLevel:    "info",
		Color:       "auto",
		History: HistoryConfig{
			Enabled:  true,
			DBPath:   ".wordseek/history.db",
			KeepDays: 90,
		},
	}
}

// PlaceholderRune returns the configured placeholder as a rune.
func (c *Config) PlaceholderRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Placeholder)
	return r
}

// Validate checks field values that LoadConfig cannot catch structurally.
func (c *Config) Validate() error {
	if utf8.RuneCountInString(c.Placeholder) != 1 {
		return fmt.Errorf("placeholder must be a single character, got %q", c.Placeholder)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", c.Color)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.History.KeepDays < 0 {
		return fmt.Errorf("history.keep_days must not be negative, got %d", c.History.KeepDays)
	}
	return nil
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		// File doesn't exist, return defaults (not an error)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	// Merge non-zero values from the file over the defaults.
	if fileCfg.Output != "" {
		cfg.Output = fileCfg.Output
	}
	if fileCfg.Placeholder != "" {
		cfg.Placeholder = fileCfg.Placeholder
	}
	if fileCfg.Workers != 0 {
		cfg.Workers = fileCfg.Workers
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.Color != "" {
		cfg.Color = fileCfg.Color
	}

	// The history section only overrides defaults when present at all;
	// a bare "history:" with missing keys keeps the default paths.
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if section, exists := rawMap["history"]; exists && section != nil {
			fields, _ := section.(map[string]interface{})
			if _, ok := fields["enabled"]; ok {
				cfg.History.Enabled = fileCfg.History.Enabled
			}
			if fileCfg.History.DBPath != "" {
				cfg.History.DBPath = fileCfg.History.DBPath
			}
			// keep_days: 0 is meaningful (it disables pruning), so presence
			// in the file decides, not the value.
			if _, ok := fields["keep_days"]; ok {
				cfg.History.KeepDays = fileCfg.History.KeepDays
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}
