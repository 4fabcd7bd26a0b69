// Package config provides configuration management for fieldkit.
//
// This package handles loading, validating, and managing configuration
// from YAML files with environment variable overrides. It provides a
// type-safe configuration system with validation and sensible defaults.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("fieldkit.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("fieldkit.yaml")
//
// Commands that treat the file as optional use LoadOrDefault, which
// falls back to defaults plus environment overrides when no path is
// given.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention
// FIELDKIT_SECTION_FIELD. For example:
//
//   - FIELDKIT_CALC_PRECISION overrides calc.precision
//   - FIELDKIT_SCRAPE_TIMEOUT overrides scrape.timeout
//   - FIELDKIT_HISTORY_PATH overrides history.path
//
// Environment variables always take precedence over file-based
// configuration.
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later
// overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Validation
//
// All configuration is validated automatically during loading.
// Validation errors include field paths and helpful messages:
//
//	configuration validation failed with 2 errors:
//	  - calc.precision: must be between 0 and 15, got 40
//	  - logging.level: invalid level "noisy" (want debug, info, warn, or error)
//
// # Example Configuration
//
// Here is a minimal configuration file:
//
//	logging:
//	  level: "info"
//	  format: "text"
//
//	calc:
//	  precision: 6
//
//	organize:
//	  debounce: 2s
//	  rescan_schedule: "0 3 * * *"
//
//	scrape:
//	  timeout: 10s
//	  delay: 1s
package config
