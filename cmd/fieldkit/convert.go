package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"fieldkit-hq/fieldkit/pkg/cli"
	"fieldkit-hq/fieldkit/pkg/history"
	"fieldkit-hq/fieldkit/pkg/units"
)

var convertFlags struct {
	category  string
	precision int
	noHistory bool
}

var convertCmd = &cobra.Command{
	Use:   "convert <value> <from> <to>",
	Short: "Convert between units",
	Long: `Convert a value between units of the same category.

Categories: length, weight, temperature, data, time, area. The
category is inferred from the unit names; use --category to
disambiguate.

Examples:
  fieldkit convert 10 km mi
  fieldkit convert 100 c f
  fieldkit convert 1.5 gb mb
  fieldkit convert --category time 90 min h`,
	Args: cobra.ExactArgs(3),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&convertFlags.category, "category", "", "unit category (length, weight, temperature, data, time, area)")
	convertCmd.Flags().IntVar(&convertFlags.precision, "precision", -1, "decimal places for the result (default: from config)")
	convertCmd.Flags().BoolVar(&convertFlags.noHistory, "no-history", false, "do not record the conversion to the history store")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	value, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return cli.NewUsageError("convert", "invalid value: %q", args[0])
	}
	from, to := args[1], args[2]

	precision := cfg.Calc.Precision
	if convertFlags.precision >= 0 {
		precision = convertFlags.precision
	}

	var result float64
	if convertFlags.category != "" {
		category := units.Category(strings.ToLower(convertFlags.category))
		result, err = units.Convert(category, value, from, to)
	} else {
		result, err = inferConvert(value, from, to)
	}
	if err != nil {
		return cli.NewCommandError("convert", err)
	}

	rendered := formatNumber(result, precision)
	fmt.Printf("%s %s = %s %s\n", formatNumber(value, precision), from, rendered, to)

	if cfg.History.Enabled && !convertFlags.noHistory {
		input := fmt.Sprintf("%s %s -> %s", args[0], from, to)
		recordHistory(cfg, history.KindConvert, input, rendered+" "+to)
	}
	return nil
}

// inferConvert tries each category until one accepts both units.
func inferConvert(value float64, from, to string) (float64, error) {
	for _, category := range units.Categories() {
		result, err := units.Convert(category, value, from, to)
		if err == nil {
			return result, nil
		}
	}
	return 0, fmt.Errorf("no category converts %s to %s (use --category to list supported units)", from, to)
}
