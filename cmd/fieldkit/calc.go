package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"fieldkit-hq/fieldkit/pkg/calc"
	"fieldkit-hq/fieldkit/pkg/cli"
	"fieldkit-hq/fieldkit/pkg/config"
	"fieldkit-hq/fieldkit/pkg/history"
)

var calcFlags struct {
	interactive bool
	stats       bool
	gcd         bool
	lcm         bool
	precision   int
	noHistory   bool
}

var calcCmd = &cobra.Command{
	Use:   "calc [expression]",
	Short: "Evaluate arithmetic expressions",
	Long: `Evaluate arithmetic expressions with operator precedence, functions
and constants.

Supported operators: + - * / ^ (power, right-associative) and unary minus.
Functions: sqrt, sin, cos, tan (degrees), log, ln, exp, abs, floor, ceil,
round, pow, min, max. Constants: pi, e.

Examples:
  # One-shot evaluation
  fieldkit calc "2 + 3 * 4"
  fieldkit calc "sin(90) + sqrt(16)"

  # Interactive mode ("ans" refers to the previous result)
  fieldkit calc -i

  # Statistics over a number list
  fieldkit calc --stats 1 2 3 4 5

  # Greatest common divisor / least common multiple
  fieldkit calc --gcd 12 18
  fieldkit calc --lcm 4 6`,
	RunE: runCalc,
}

func init() {
	rootCmd.AddCommand(calcCmd)

	calcCmd.Flags().BoolVarP(&calcFlags.interactive, "interactive", "i", false, "start interactive mode")
	calcCmd.Flags().BoolVar(&calcFlags.stats, "stats", false, "compute statistics over a number list")
	calcCmd.Flags().BoolVar(&calcFlags.gcd, "gcd", false, "greatest common divisor of two integers")
	calcCmd.Flags().BoolVar(&calcFlags.lcm, "lcm", false, "least common multiple of two integers")
	calcCmd.Flags().IntVar(&calcFlags.precision, "precision", -1, "decimal places for results (default: from config)")
	calcCmd.Flags().BoolVar(&calcFlags.noHistory, "no-history", false, "do not record results to the history store")
}

func runCalc(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	precision := cfg.Calc.Precision
	if calcFlags.precision >= 0 {
		precision = calcFlags.precision
	}

	switch {
	case calcFlags.stats:
		return runCalcStats(args, precision)
	case calcFlags.gcd:
		return runCalcGCD(args, false)
	case calcFlags.lcm:
		return runCalcGCD(args, true)
	case calcFlags.interactive:
		return runCalcREPL(cfg.Calc.MaxExpressionLength, precision)
	}

	if len(args) != 1 {
		return cli.NewUsageError("calc", "exactly one expression is required (or use -i)")
	}

	session := calc.NewSession()
	session.SetMaxExpressionLength(cfg.Calc.MaxExpressionLength)

	result, err := session.Evaluate(args[0])
	if err != nil {
		return cli.NewCommandError("calc", err)
	}

	rendered := formatNumber(result, precision)
	fmt.Println(rendered)

	if cfg.History.Enabled && !calcFlags.noHistory {
		recordHistory(cfg, history.KindCalc, args[0], rendered)
	}
	return nil
}

func runCalcStats(args []string, precision int) error {
	if len(args) == 0 {
		return cli.NewUsageError("calc", "--stats requires at least one number")
	}

	values := make([]float64, 0, len(args))
	for _, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return cli.NewUsageError("calc", "invalid number: %q", arg)
		}
		values = append(values, v)
	}

	summary, err := calc.Summarize(values)
	if err != nil {
		return cli.NewCommandError("calc", err)
	}

	fmt.Printf("Count:  %d\n", summary.Count)
	fmt.Printf("Sum:    %s\n", formatNumber(summary.Sum, precision))
	fmt.Printf("Mean:   %s\n", formatNumber(summary.Mean, precision))
	fmt.Printf("Median: %s\n", formatNumber(summary.Median, precision))
	fmt.Printf("Min:    %s\n", formatNumber(summary.Min, precision))
	fmt.Printf("Max:    %s\n", formatNumber(summary.Max, precision))
	fmt.Printf("StdDev: %s\n", formatNumber(summary.StdDev, precision))
	return nil
}

func runCalcGCD(args []string, lcm bool) error {
	name := "--gcd"
	if lcm {
		name = "--lcm"
	}
	if len(args) != 2 {
		return cli.NewUsageError("calc", "%s requires exactly two integers", name)
	}

	ints := make([]int64, 2)
	for i, arg := range args {
		v, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return cli.NewUsageError("calc", "invalid integer: %q", arg)
		}
		ints[i] = v
	}

	if lcm {
		fmt.Println(calc.LCM(ints[0], ints[1]))
	} else {
		fmt.Println(calc.GCD(ints[0], ints[1]))
	}
	return nil
}

func runCalcREPL(maxLength, precision int) error {
	session := calc.NewSession()
	session.SetMaxExpressionLength(maxLength)

	fmt.Println("fieldkit calc (type 'help' for commands, 'quit' to exit)")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "help":
			printCalcHelp()
			continue
		case "history":
			entries := session.History(10)
			if len(entries) == 0 {
				fmt.Println("no history yet")
				continue
			}
			for _, entry := range entries {
				fmt.Printf("  %s = %s\n", entry.Expression, formatNumber(entry.Result, precision))
			}
			continue
		}

		result, err := session.Evaluate(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		fmt.Println(formatNumber(result, precision))
	}
}

func printCalcHelp() {
	fmt.Println(`Commands:
  help      show this help
  history   show the last 10 evaluations
  quit      exit

Use "ans" in an expression to refer to the previous result.
Operators: + - * / ^   Functions: sqrt sin cos tan log ln exp abs
floor ceil round pow min max   Constants: pi e`)
}

// formatNumber renders a result with up to precision decimal places,
// trimming trailing zeros so integers print without a fraction.
func formatNumber(v float64, precision int) string {
	if precision < 0 {
		precision = 6
	}
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

// recordHistory writes a history entry, logging failures instead of
// failing the command.
func recordHistory(cfg *config.Config, kind, input, result string) {
	store, err := openHistoryStore(cfg)
	if err != nil {
		slog.Debug("history store unavailable", "error", err)
		return
	}
	defer store.Close()

	if _, err := store.Record(context.Background(), kind, input, result); err != nil {
		slog.Debug("failed to record history entry", "error", err)
	}
}
