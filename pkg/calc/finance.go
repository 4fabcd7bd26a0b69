package calc

import (
	"fmt"
	"math"
)

// LoanSummary breaks down the repayment of an amortized loan with
// fixed monthly payments.
type LoanSummary struct {
	Principal      float64 `json:"principal"`
	AnnualRate     float64 `json:"annual_rate"`
	Years          int     `json:"years"`
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalPaid      float64 `json:"total_paid"`
	TotalInterest  float64 `json:"total_interest"`
}

// LoanPayment computes the monthly payment breakdown for a loan with
// the given principal, annual interest rate (0.05 for 5%) and term in
// years, using the standard amortization formula.
func LoanPayment(principal, annualRate float64, years int) (*LoanSummary, error) {
	if principal <= 0 {
		return nil, fmt.Errorf("principal must be positive")
	}
	if annualRate < 0 {
		return nil, fmt.Errorf("annual rate cannot be negative")
	}
	if years <= 0 {
		return nil, fmt.Errorf("term must be at least one year")
	}

	months := years * 12
	monthlyRate := annualRate / 12

	var monthly float64
	if monthlyRate == 0 {
		monthly = principal / float64(months)
	} else {
		growth := math.Pow(1+monthlyRate, float64(months))
		monthly = principal * (monthlyRate * growth) / (growth - 1)
	}

	total := monthly * float64(months)
	return &LoanSummary{
		Principal:      principal,
		AnnualRate:     annualRate,
		Years:          years,
		MonthlyPayment: monthly,
		TotalPaid:      total,
		TotalInterest:  total - principal,
	}, nil
}

// CompoundSummary breaks down compound interest growth.
type CompoundSummary struct {
	Principal        float64 `json:"principal"`
	AnnualRate       float64 `json:"annual_rate"`
	Years            int     `json:"years"`
	CompoundsPerYear int     `json:"compounds_per_year"`
	FinalAmount      float64 `json:"final_amount"`
	Interest         float64 `json:"interest"`
}

// CompoundInterest computes growth under periodic compounding.
// compoundsPerYear defaults to monthly when zero.
func CompoundInterest(principal, annualRate float64, years, compoundsPerYear int) (*CompoundSummary, error) {
	if principal <= 0 {
		return nil, fmt.Errorf("principal must be positive")
	}
	if annualRate < 0 {
		return nil, fmt.Errorf("annual rate cannot be negative")
	}
	if years <= 0 {
		return nil, fmt.Errorf("term must be at least one year")
	}
	if compoundsPerYear <= 0 {
		compoundsPerYear = 12
	}

	n := float64(compoundsPerYear)
	final := principal * math.Pow(1+annualRate/n, n*float64(years))
	return &CompoundSummary{
		Principal:        principal,
		AnnualRate:       annualRate,
		Years:            years,
		CompoundsPerYear: compoundsPerYear,
		FinalAmount:      final,
		Interest:         final - principal,
	}, nil
}
