package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"fieldkit-hq/fieldkit/pkg/cli"
	"fieldkit-hq/fieldkit/pkg/csvstats"
)

var csvFlags struct {
	describe    bool
	head        int
	tail        int
	column      string
	filter      string
	group       string
	agg         string
	corr        []string
	hist        string
	bins        int
	valueCounts string
	output      string
}

var csvCmd = &cobra.Command{
	Use:   "csv <file>",
	Short: "Statistics over CSV files",
	Long: `Statistics over CSV files. The delimiter (comma, tab, semicolon or
pipe) is detected automatically, and columns whose values are mostly
numeric are treated as numbers.

Examples:
  # Per-column summary
  fieldkit csv data.csv --describe

  # First rows as a table
  fieldkit csv data.csv --head 10

  # Single column statistics
  fieldkit csv data.csv --column age

  # Filter rows (operators: eq ne gt lt ge le contains)
  fieldkit csv data.csv --filter "city:eq:Seoul"
  fieldkit csv data.csv --filter "age:gt:30" --output over30.csv

  # Group and aggregate
  fieldkit csv data.csv --group city --agg salary

  # Pearson correlation between two numeric columns
  fieldkit csv data.csv --corr age salary

  # ASCII histogram
  fieldkit csv data.csv --hist salary --bins 8

  # Frequency table
  fieldkit csv data.csv --value-counts city`,
	Args: cobra.ExactArgs(1),
	RunE: runCSV,
}

func init() {
	rootCmd.AddCommand(csvCmd)

	csvCmd.Flags().BoolVar(&csvFlags.describe, "describe", false, "per-column summary statistics")
	csvCmd.Flags().IntVar(&csvFlags.head, "head", 0, "show the first N rows")
	csvCmd.Flags().IntVar(&csvFlags.tail, "tail", 0, "show the last N rows")
	csvCmd.Flags().StringVar(&csvFlags.column, "column", "", "statistics for a single column")
	csvCmd.Flags().StringVar(&csvFlags.filter, "filter", "", "row filter as column:op:value")
	csvCmd.Flags().StringVar(&csvFlags.group, "group", "", "group rows by this column")
	csvCmd.Flags().StringVar(&csvFlags.agg, "agg", "", "aggregate this numeric column per group")
	csvCmd.Flags().StringSliceVar(&csvFlags.corr, "corr", nil, "two numeric columns for Pearson correlation")
	csvCmd.Flags().StringVar(&csvFlags.hist, "hist", "", "histogram of a numeric column")
	csvCmd.Flags().IntVar(&csvFlags.bins, "bins", 10, "histogram bin count")
	csvCmd.Flags().StringVar(&csvFlags.valueCounts, "value-counts", "", "frequency table for a column")
	csvCmd.Flags().StringVarP(&csvFlags.output, "output", "o", "", "write filtered rows to this CSV file")
}

func runCSV(cmd *cobra.Command, args []string) error {
	dataset, err := csvstats.Load(args[0])
	if err != nil {
		return cli.NewCommandError("csv", err)
	}

	switch {
	case csvFlags.describe:
		out, err := dataset.Describe()
		if err != nil {
			return cli.NewCommandError("csv", err)
		}
		fmt.Print(out)
		return nil

	case csvFlags.head > 0:
		fmt.Print(csvstats.RenderTable(dataset.Head(csvFlags.head), dataset.Columns, 30))
		return nil

	case csvFlags.tail > 0:
		fmt.Print(csvstats.RenderTable(dataset.Tail(csvFlags.tail), dataset.Columns, 30))
		return nil

	case csvFlags.column != "":
		return runCSVColumn(dataset)

	case csvFlags.filter != "":
		return runCSVFilter(dataset)

	case csvFlags.group != "":
		return runCSVGroup(dataset)

	case len(csvFlags.corr) > 0:
		return runCSVCorr(dataset)

	case csvFlags.hist != "":
		out, err := dataset.Histogram(csvFlags.hist, csvFlags.bins, 40)
		if err != nil {
			return cli.NewCommandError("csv", err)
		}
		fmt.Print(out)
		return nil

	case csvFlags.valueCounts != "":
		return runCSVValueCounts(dataset)
	}

	// No mode selected: brief overview.
	fmt.Printf("File: %s\n", args[0])
	fmt.Printf("Rows: %d\n", len(dataset.Rows))
	fmt.Printf("Columns: %s\n", strings.Join(dataset.Columns, ", "))
	return nil
}

func runCSVColumn(dataset *csvstats.Dataset) error {
	stats, err := dataset.ColumnStats(csvFlags.column)
	if err != nil {
		return cli.NewCommandError("csv", err)
	}

	fmt.Printf("Column:  %s (%s)\n", stats.Name, stats.Type)
	fmt.Printf("Valid:   %d\n", stats.Count)
	fmt.Printf("Missing: %d\n", stats.Missing)
	fmt.Printf("Unique:  %d\n", stats.Unique)
	if stats.Numeric != nil {
		fmt.Printf("Min:     %g\n", stats.Numeric.Min)
		fmt.Printf("Max:     %g\n", stats.Numeric.Max)
		fmt.Printf("Mean:    %g\n", stats.Numeric.Mean)
		fmt.Printf("Median:  %g\n", stats.Numeric.Median)
		fmt.Printf("StdDev:  %g\n", stats.Numeric.StdDev)
		fmt.Printf("Sum:     %g\n", stats.Numeric.Sum)
	}
	if len(stats.TopValues) > 0 {
		fmt.Println("Top values:")
		for _, vc := range stats.TopValues {
			fmt.Printf("  %-20s %d\n", vc.Value, vc.Count)
		}
	}
	return nil
}

func runCSVFilter(dataset *csvstats.Dataset) error {
	parts := strings.SplitN(csvFlags.filter, ":", 3)
	if len(parts) != 3 {
		return cli.NewUsageError("csv", "filter must be column:op:value")
	}

	op, err := csvstats.ParseOp(parts[1])
	if err != nil {
		return cli.NewUsageError("csv", "%v", err)
	}

	rows, err := dataset.Filter(parts[0], op, parts[2])
	if err != nil {
		return cli.NewCommandError("csv", err)
	}

	if csvFlags.output != "" {
		if err := dataset.WriteCSV(csvFlags.output, rows); err != nil {
			return cli.NewCommandError("csv", err)
		}
		fmt.Printf("Wrote %d rows to %s\n", len(rows), csvFlags.output)
		return nil
	}

	fmt.Print(csvstats.RenderTable(rows, dataset.Columns, 30))
	fmt.Printf("%d of %d rows matched\n", len(rows), len(dataset.Rows))
	return nil
}

func runCSVGroup(dataset *csvstats.Dataset) error {
	groups, err := dataset.GroupBy(csvFlags.group, csvFlags.agg)
	if err != nil {
		return cli.NewCommandError("csv", err)
	}

	for _, key := range csvstats.TopGroups(groups) {
		agg := groups[key]
		if csvFlags.agg != "" {
			fmt.Printf("%-20s count=%-5d sum=%-12g mean=%-10g min=%g max=%g\n",
				key, agg.Count, agg.Sum, agg.Mean, agg.Min, agg.Max)
		} else {
			fmt.Printf("%-20s %d\n", key, agg.Count)
		}
	}
	return nil
}

func runCSVCorr(dataset *csvstats.Dataset) error {
	if len(csvFlags.corr) != 2 {
		return cli.NewUsageError("csv", "--corr requires exactly two columns")
	}

	r, err := dataset.Correlation(csvFlags.corr[0], csvFlags.corr[1])
	if err != nil {
		return cli.NewCommandError("csv", err)
	}

	fmt.Printf("Pearson r(%s, %s) = %.4f\n", csvFlags.corr[0], csvFlags.corr[1], r)
	switch {
	case r >= 0.7:
		fmt.Println("strong positive correlation")
	case r >= 0.3:
		fmt.Println("moderate positive correlation")
	case r > -0.3:
		fmt.Println("weak or no correlation")
	case r > -0.7:
		fmt.Println("moderate negative correlation")
	default:
		fmt.Println("strong negative correlation")
	}
	return nil
}

func runCSVValueCounts(dataset *csvstats.Dataset) error {
	counts, err := dataset.ValueCounts(csvFlags.valueCounts)
	if err != nil {
		return cli.NewCommandError("csv", err)
	}

	for _, vc := range counts {
		fmt.Printf("%-20s %d\n", vc.Value, vc.Count)
	}
	return nil
}
