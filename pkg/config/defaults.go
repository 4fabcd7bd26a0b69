package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values for configuration fields.
const (
	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	// Calc defaults
	DefaultCalcPrecision           = 6
	DefaultCalcMaxExpressionLength = 1024

	// Passwd defaults
	DefaultPasswdLength = 16

	// Organize defaults
	DefaultOrganizeDebounce = 2 * time.Second
	DefaultJournalFilename  = ".fieldkit-journal.db"

	// Scrape defaults
	DefaultScrapeTimeout = 10 * time.Second
	DefaultScrapeDelay   = 1 * time.Second

	// History defaults
	DefaultHistoryEnabled = true
)

// ApplyDefaults fills zero-valued fields with their defaults. It is
// safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}

	if cfg.Calc.Precision == 0 {
		cfg.Calc.Precision = DefaultCalcPrecision
	}
	if cfg.Calc.MaxExpressionLength == 0 {
		cfg.Calc.MaxExpressionLength = DefaultCalcMaxExpressionLength
	}

	if cfg.Passwd.Length == 0 {
		cfg.Passwd.Length = DefaultPasswdLength
	}

	if cfg.Organize.Debounce == 0 {
		cfg.Organize.Debounce = DefaultOrganizeDebounce
	}

	if cfg.Scrape.Timeout == 0 {
		cfg.Scrape.Timeout = DefaultScrapeTimeout
	}
	if cfg.Scrape.Delay == 0 {
		cfg.Scrape.Delay = DefaultScrapeDelay
	}

	if cfg.History.Path == "" {
		cfg.History.Path = DefaultHistoryPath()
	}
}

// NewDefaultConfig returns a configuration with every default
// applied. History recording is on by default; YAML loading handles
// the explicit-false case itself.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	cfg.History.Enabled = DefaultHistoryEnabled
	ApplyDefaults(cfg)
	return cfg
}

// DefaultHistoryPath places the history database under the user
// config directory, falling back to the working directory when the
// platform reports none.
func DefaultHistoryPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "fieldkit-history.db"
	}
	return filepath.Join(base, "fieldkit", "history.db")
}
