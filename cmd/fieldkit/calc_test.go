package main

import (
	"testing"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		precision int
		want      string
	}{
		{
			name:      "integer drops fraction",
			value:     14,
			precision: 6,
			want:      "14",
		},
		{
			name:      "trailing zeros trimmed",
			value:     2.5,
			precision: 6,
			want:      "2.5",
		},
		{
			name:      "rounds to precision",
			value:     1.0 / 3.0,
			precision: 4,
			want:      "0.3333",
		},
		{
			name:      "zero precision",
			value:     2.7,
			precision: 0,
			want:      "3",
		},
		{
			name:      "negative precision falls back to default",
			value:     0.5,
			precision: -1,
			want:      "0.5",
		},
		{
			name:      "negative value",
			value:     -4,
			precision: 6,
			want:      "-4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatNumber(tt.value, tt.precision)
			if got != tt.want {
				t.Errorf("formatNumber(%v, %d) = %q, want %q", tt.value, tt.precision, got, tt.want)
			}
		})
	}
}

func TestCalcCommandExists(t *testing.T) {
	if calcCmd == nil {
		t.Fatal("calcCmd is nil")
	}
	if calcCmd.RunE == nil {
		t.Error("calcCmd.RunE should not be nil")
	}
	for _, flag := range []string{"interactive", "stats", "gcd", "lcm", "precision", "no-history"} {
		if calcCmd.Flags().Lookup(flag) == nil {
			t.Errorf("calcCmd is missing flag %q", flag)
		}
	}
}

func TestRootCommandTree(t *testing.T) {
	want := map[string]bool{
		"calc":     false,
		"convert":  false,
		"finance":  false,
		"passwd":   false,
		"organize": false,
		"json":     false,
		"date":     false,
		"csv":      false,
		"scrape":   false,
		"history":  false,
		"version":  false,
	}

	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}
