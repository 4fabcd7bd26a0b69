package config

import "time"

// Config is the root configuration structure for fieldkit. Every
// command reads its settings from here; flags override file values,
// and FIELDKIT_* environment variables sit between the two.
type Config struct {
	// Logging controls log output for all commands.
	Logging LoggingConfig `yaml:"logging"`

	// Calc contains settings for the expression evaluator and its
	// interactive mode.
	Calc CalcConfig `yaml:"calc"`

	// Passwd contains default password generation settings.
	Passwd PasswdConfig `yaml:"passwd"`

	// Organize contains settings for directory organizing and watch
	// mode.
	Organize OrganizeConfig `yaml:"organize"`

	// Scrape contains settings for the web scraper.
	Scrape ScrapeConfig `yaml:"scrape"`

	// History contains settings for the invocation history store.
	History HistoryConfig `yaml:"history"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format selects the output encoding: "text" or "json".
	// Default: "text"
	Format string `yaml:"format"`
}

// CalcConfig contains settings for the calc command.
type CalcConfig struct {
	// Precision is the number of decimal places printed for results.
	// Default: 6
	Precision int `yaml:"precision"`

	// MaxExpressionLength rejects pathological input before parsing.
	// Default: 1024
	MaxExpressionLength int `yaml:"max_expression_length"`
}

// PasswdConfig contains default password generation settings.
type PasswdConfig struct {
	// Length is the default password length.
	// Default: 16
	Length int `yaml:"length"`

	// ExcludeAmbiguous drops characters that read alike (l, 1, I, O, 0).
	// Default: false
	ExcludeAmbiguous bool `yaml:"exclude_ambiguous"`
}

// OrganizeConfig contains settings for the organize command.
type OrganizeConfig struct {
	// Debounce is the watch-mode quiet period before a triggered run.
	// Default: 2s
	Debounce time.Duration `yaml:"debounce"`

	// RescanSchedule is an optional cron expression for periodic
	// watch-mode rescans. Empty disables them.
	RescanSchedule string `yaml:"rescan_schedule"`

	// MetricsAddress is the listen address for the watch-mode
	// Prometheus endpoint. Empty disables the endpoint.
	// Default: "" (disabled)
	MetricsAddress string `yaml:"metrics_address"`

	// JournalPath is the move journal database location. Empty
	// defaults to .fieldkit-journal.db inside the destination
	// directory.
	JournalPath string `yaml:"journal_path"`
}

// ScrapeConfig contains settings for the scrape command.
type ScrapeConfig struct {
	// Timeout bounds each HTTP request.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`

	// Delay is the politeness delay between consecutive requests.
	// Default: 1s
	Delay time.Duration `yaml:"delay"`

	// UserAgent overrides the User-Agent header sent with requests.
	UserAgent string `yaml:"user_agent"`
}

// HistoryConfig contains settings for the history store.
type HistoryConfig struct {
	// Enabled controls whether commands record their invocations.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the history database location. Empty defaults to
	// fieldkit/history.db under the user config directory.
	Path string `yaml:"path"`
}
