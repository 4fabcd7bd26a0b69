package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"fieldkit-hq/fieldkit/pkg/config"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "fieldkit",
	Short: "Fieldkit - a toolbox of command-line utilities",
	Long: `Fieldkit bundles a set of independent command-line utilities into a
single binary.

Included tools:
  - Expression calculator with an interactive mode and history
  - Unit conversion and financial formulas
  - Password and passphrase generation with strength analysis
  - Directory organizing with watch mode and undo
  - JSON inspection and manipulation
  - Date arithmetic, calendars and cron schedules
  - CSV statistics
  - Web page scraping

For more information, visit: https://github.com/fieldkit-hq/fieldkit`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: none)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.CompletionOptions.DisableDefaultCmd = false
}

// loadConfig loads the optional config file, installs the default
// logger per its logging section and returns it. The --verbose flag
// forces debug level regardless of configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var logLevel slog.Level
	switch cfg.Logging.Level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	if verbose {
		logLevel = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))

	return cfg, nil
}
