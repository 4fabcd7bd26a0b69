package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file, applies default
// values, and validates the result. Environment variables are not
// consulted; use LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	// Booleans that default to true must be set before unmarshal so
	// an explicit false in the file is preserved.
	cfg := Config{}
	cfg.History.Enabled = DefaultHistoryEnabled

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file
// and applies environment variable overrides. Variables follow the
// naming convention FIELDKIT_SECTION_FIELD (e.g.
// FIELDKIT_CALC_PRECISION) and always take precedence over
// file-based configuration.
//
// The loading sequence is:
//  1. Load YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault loads the file when path is non-empty, otherwise
// returns the defaults with environment overrides applied.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return LoadConfigWithEnvOverrides(path)
	}

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies FIELDKIT_SECTION_FIELD environment
// variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	// Logging overrides
	if val := os.Getenv("FIELDKIT_LOGGING_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("FIELDKIT_LOGGING_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}

	// Calc overrides
	if val := os.Getenv("FIELDKIT_CALC_PRECISION"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Calc.Precision = i
		}
	}
	if val := os.Getenv("FIELDKIT_CALC_MAX_EXPRESSION_LENGTH"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Calc.MaxExpressionLength = i
		}
	}

	// Passwd overrides
	if val := os.Getenv("FIELDKIT_PASSWD_LENGTH"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Passwd.Length = i
		}
	}
	if val := os.Getenv("FIELDKIT_PASSWD_EXCLUDE_AMBIGUOUS"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Passwd.ExcludeAmbiguous = b
		}
	}

	// Organize overrides
	if val := os.Getenv("FIELDKIT_ORGANIZE_DEBOUNCE"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Organize.Debounce = d
		}
	}
	if val := os.Getenv("FIELDKIT_ORGANIZE_RESCAN_SCHEDULE"); val != "" {
		cfg.Organize.RescanSchedule = val
	}
	if val := os.Getenv("FIELDKIT_ORGANIZE_METRICS_ADDRESS"); val != "" {
		cfg.Organize.MetricsAddress = val
	}
	if val := os.Getenv("FIELDKIT_ORGANIZE_JOURNAL_PATH"); val != "" {
		cfg.Organize.JournalPath = val
	}

	// Scrape overrides
	if val := os.Getenv("FIELDKIT_SCRAPE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Scrape.Timeout = d
		}
	}
	if val := os.Getenv("FIELDKIT_SCRAPE_DELAY"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Scrape.Delay = d
		}
	}
	if val := os.Getenv("FIELDKIT_SCRAPE_USER_AGENT"); val != "" {
		cfg.Scrape.UserAgent = val
	}

	// History overrides
	if val := os.Getenv("FIELDKIT_HISTORY_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.History.Enabled = b
		}
	}
	if val := os.Getenv("FIELDKIT_HISTORY_PATH"); val != "" {
		cfg.History.Path = val
	}
}
