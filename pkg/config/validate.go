package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific
// configuration field.
type FieldError struct {
	// Field is the dotted path to the field (e.g., "calc.precision").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a
// configuration. All field errors are collected and returned
// together.
type ValidationError struct {
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate checks the entire configuration and returns a
// ValidationError listing every rule that fails, or nil when the
// configuration is valid.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateLogging(&cfg.Logging)...)
	errs = append(errs, validateCalc(&cfg.Calc)...)
	errs = append(errs, validatePasswd(&cfg.Passwd)...)
	errs = append(errs, validateOrganize(&cfg.Organize)...)
	errs = append(errs, validateScrape(&cfg.Scrape)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateLogging(cfg *LoggingConfig) []FieldError {
	var errs []FieldError
	switch cfg.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid level %q (want debug, info, warn, or error)", cfg.Level),
		})
	}
	switch cfg.Format {
	case "text", "json":
	default:
		errs = append(errs, FieldError{
			Field:   "logging.format",
			Message: fmt.Sprintf("invalid format %q (want text or json)", cfg.Format),
		})
	}
	return errs
}

func validateCalc(cfg *CalcConfig) []FieldError {
	var errs []FieldError
	if cfg.Precision < 0 || cfg.Precision > 15 {
		errs = append(errs, FieldError{
			Field:   "calc.precision",
			Message: fmt.Sprintf("must be between 0 and 15, got %d", cfg.Precision),
		})
	}
	if cfg.MaxExpressionLength < 1 {
		errs = append(errs, FieldError{
			Field:   "calc.max_expression_length",
			Message: fmt.Sprintf("must be positive, got %d", cfg.MaxExpressionLength),
		})
	}
	return errs
}

func validatePasswd(cfg *PasswdConfig) []FieldError {
	var errs []FieldError
	if cfg.Length < 1 || cfg.Length > 1024 {
		errs = append(errs, FieldError{
			Field:   "passwd.length",
			Message: fmt.Sprintf("must be between 1 and 1024, got %d", cfg.Length),
		})
	}
	return errs
}

func validateOrganize(cfg *OrganizeConfig) []FieldError {
	var errs []FieldError
	if cfg.Debounce < 0 {
		errs = append(errs, FieldError{
			Field:   "organize.debounce",
			Message: "must not be negative",
		})
	}
	if cfg.RescanSchedule != "" {
		if _, err := cron.ParseStandard(cfg.RescanSchedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "organize.rescan_schedule",
				Message: fmt.Sprintf("invalid cron expression: %v", err),
			})
		}
	}
	if cfg.MetricsAddress != "" {
		if _, _, err := net.SplitHostPort(cfg.MetricsAddress); err != nil {
			errs = append(errs, FieldError{
				Field:   "organize.metrics_address",
				Message: fmt.Sprintf("invalid listen address: %v", err),
			})
		}
	}
	return errs
}

func validateScrape(cfg *ScrapeConfig) []FieldError {
	var errs []FieldError
	if cfg.Timeout <= 0 {
		errs = append(errs, FieldError{
			Field:   "scrape.timeout",
			Message: "must be positive",
		})
	}
	if cfg.Delay < 0 {
		errs = append(errs, FieldError{
			Field:   "scrape.delay",
			Message: "must not be negative",
		})
	}
	return errs
}
