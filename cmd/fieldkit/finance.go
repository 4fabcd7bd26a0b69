package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"fieldkit-hq/fieldkit/pkg/calc"
	"fieldkit-hq/fieldkit/pkg/cli"
	"fieldkit-hq/fieldkit/pkg/history"
)

var financeFlags struct {
	compounds int
	noHistory bool
}

var financeCmd = &cobra.Command{
	Use:   "finance",
	Short: "Financial formulas",
	Long: `Financial formulas: loan repayment and compound interest.

Rates are given as percentages (5 means 5% per year).

Subcommands:
  loan      - monthly payment for an amortized loan
  compound  - compound interest growth

Examples:
  # 200000 principal, 4.5% annual rate, 30 years
  fieldkit finance loan 200000 4.5 30

  # 10000 at 5% for 10 years, compounded monthly
  fieldkit finance compound 10000 5 10

  # Same, compounded annually
  fieldkit finance compound 10000 5 10 --compounds 1`,
}

var financeLoanCmd = &cobra.Command{
	Use:   "loan <principal> <annual-rate-%> <years>",
	Short: "Monthly payment for an amortized loan",
	Args:  cobra.ExactArgs(3),
	RunE:  runFinanceLoan,
}

var financeCompoundCmd = &cobra.Command{
	Use:   "compound <principal> <annual-rate-%> <years>",
	Short: "Compound interest growth",
	Args:  cobra.ExactArgs(3),
	RunE:  runFinanceCompound,
}

func init() {
	rootCmd.AddCommand(financeCmd)
	financeCmd.AddCommand(financeLoanCmd, financeCompoundCmd)

	financeCompoundCmd.Flags().IntVar(&financeFlags.compounds, "compounds", 12, "compounding periods per year")
	financeCmd.PersistentFlags().BoolVar(&financeFlags.noHistory, "no-history", false, "do not record the result to the history store")
}

func parseFinanceArgs(args []string) (principal, rate float64, years int, err error) {
	principal, err = strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, 0, 0, cli.NewUsageError("finance", "invalid principal: %q", args[0])
	}
	rate, err = strconv.ParseFloat(args[1], 64)
	if err != nil {
		return 0, 0, 0, cli.NewUsageError("finance", "invalid rate: %q", args[1])
	}
	years, err = strconv.Atoi(args[2])
	if err != nil {
		return 0, 0, 0, cli.NewUsageError("finance", "invalid term: %q", args[2])
	}
	return principal, rate / 100, years, nil
}

func runFinanceLoan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	principal, rate, years, err := parseFinanceArgs(args)
	if err != nil {
		return err
	}

	summary, err := calc.LoanPayment(principal, rate, years)
	if err != nil {
		return cli.NewCommandError("finance", err)
	}

	fmt.Printf("Principal:       %.2f\n", summary.Principal)
	fmt.Printf("Annual rate:     %.2f%%\n", summary.AnnualRate*100)
	fmt.Printf("Term:            %d years\n", summary.Years)
	fmt.Printf("Monthly payment: %.2f\n", summary.MonthlyPayment)
	fmt.Printf("Total paid:      %.2f\n", summary.TotalPaid)
	fmt.Printf("Total interest:  %.2f\n", summary.TotalInterest)

	if cfg.History.Enabled && !financeFlags.noHistory {
		input := fmt.Sprintf("loan %s %s%% %sy", args[0], args[1], args[2])
		result := fmt.Sprintf("%.2f/month", summary.MonthlyPayment)
		recordHistory(cfg, history.KindFinance, input, result)
	}
	return nil
}

func runFinanceCompound(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	principal, rate, years, err := parseFinanceArgs(args)
	if err != nil {
		return err
	}

	summary, err := calc.CompoundInterest(principal, rate, years, financeFlags.compounds)
	if err != nil {
		return cli.NewCommandError("finance", err)
	}

	fmt.Printf("Principal:    %.2f\n", summary.Principal)
	fmt.Printf("Annual rate:  %.2f%%\n", summary.AnnualRate*100)
	fmt.Printf("Term:         %d years (%d compounds/year)\n", summary.Years, summary.CompoundsPerYear)
	fmt.Printf("Final amount: %.2f\n", summary.FinalAmount)
	fmt.Printf("Interest:     %.2f\n", summary.Interest)

	if cfg.History.Enabled && !financeFlags.noHistory {
		input := fmt.Sprintf("compound %s %s%% %sy", args[0], args[1], args[2])
		result := fmt.Sprintf("%.2f", summary.FinalAmount)
		recordHistory(cfg, history.KindFinance, input, result)
	}
	return nil
}
