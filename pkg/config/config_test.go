package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fieldkit.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "calc:\n  precision: 4\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Calc.Precision != 4 {
		t.Errorf("Calc.Precision = %d, want 4", cfg.Calc.Precision)
	}
	if cfg.Calc.MaxExpressionLength != DefaultCalcMaxExpressionLength {
		t.Errorf("MaxExpressionLength = %d, want default %d",
			cfg.Calc.MaxExpressionLength, DefaultCalcMaxExpressionLength)
	}
	if cfg.Logging.Level != DefaultLogLevel {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, DefaultLogLevel)
	}
	if cfg.Scrape.Timeout != DefaultScrapeTimeout {
		t.Errorf("Scrape.Timeout = %v, want %v", cfg.Scrape.Timeout, DefaultScrapeTimeout)
	}
	if !cfg.History.Enabled {
		t.Error("History.Enabled = false, want true by default")
	}
}

func TestLoadConfig_ExplicitFalsePreserved(t *testing.T) {
	path := writeConfig(t, "history:\n  enabled: false\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled = true, want explicit false preserved")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("LoadConfig() error = nil, want error")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "calc: [not a map\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig() error = nil, want parse error")
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	path := writeConfig(t, "calc:\n  precision: 40\nlogging:\n  level: noisy\n")

	_, err := LoadConfig(path)
	var valErr ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if len(valErr.Errors) != 2 {
		t.Fatalf("got %d field errors, want 2: %v", len(valErr.Errors), valErr)
	}
	msg := err.Error()
	for _, want := range []string{"calc.precision", "logging.level"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message missing %q: %s", want, msg)
		}
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "calc:\n  precision: 4\nscrape:\n  timeout: 5s\n")

	t.Setenv("FIELDKIT_CALC_PRECISION", "8")
	t.Setenv("FIELDKIT_SCRAPE_TIMEOUT", "30s")
	t.Setenv("FIELDKIT_HISTORY_ENABLED", "false")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides() error = %v", err)
	}
	if cfg.Calc.Precision != 8 {
		t.Errorf("Calc.Precision = %d, want env override 8", cfg.Calc.Precision)
	}
	if cfg.Scrape.Timeout != 30*time.Second {
		t.Errorf("Scrape.Timeout = %v, want 30s", cfg.Scrape.Timeout)
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled = true, want env override false")
	}
}

func TestLoadConfigWithEnvOverrides_InvalidOverride(t *testing.T) {
	path := writeConfig(t, "")

	t.Setenv("FIELDKIT_LOGGING_LEVEL", "noisy")

	if _, err := LoadConfigWithEnvOverrides(path); err == nil {
		t.Fatal("error = nil, want validation failure after override")
	}
}

func TestLoadOrDefault_NoPath(t *testing.T) {
	cfg, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.Calc.Precision != DefaultCalcPrecision {
		t.Errorf("Calc.Precision = %d, want default", cfg.Calc.Precision)
	}
	if cfg.Organize.Debounce != DefaultOrganizeDebounce {
		t.Errorf("Organize.Debounce = %v, want default", cfg.Organize.Debounce)
	}
	if cfg.History.Path == "" {
		t.Error("History.Path empty, want default path")
	}
}

func TestValidate_Organize(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Organize.RescanSchedule = "0 3 * * *"
	cfg.Organize.MetricsAddress = "127.0.0.1:9100"
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}

	cfg.Organize.RescanSchedule = "every day at three"
	if err := Validate(cfg); err == nil {
		t.Error("Validate() error = nil, want bad-cron error")
	}

	cfg.Organize.RescanSchedule = ""
	cfg.Organize.MetricsAddress = "no-port"
	if err := Validate(cfg); err == nil {
		t.Error("Validate() error = nil, want bad-address error")
	}
}

func TestApplyDefaults_Idempotent(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Calc.Precision = 10
	ApplyDefaults(cfg)
	if cfg.Calc.Precision != 10 {
		t.Errorf("ApplyDefaults overwrote explicit value: %d", cfg.Calc.Precision)
	}
}

func TestFieldError_Message(t *testing.T) {
	err := FieldError{Field: "calc.precision", Message: "must be positive"}
	if got := err.Error(); got != "calc.precision: must be positive" {
		t.Errorf("Error() = %q", got)
	}
}
