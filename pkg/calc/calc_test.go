package calc

import (
	"math"
	"strings"
	"testing"
)

func TestSession_Evaluate(t *testing.T) {
	s := NewSession()

	got, err := s.Evaluate("2 + 3")
	if err != nil {
		t.Fatalf("Evaluate() failed: %v", err)
	}
	if got != 5 {
		t.Errorf("Evaluate() = %v, want 5", got)
	}
}

func TestSession_Ans(t *testing.T) {
	s := NewSession()

	if _, err := s.Evaluate("10"); err != nil {
		t.Fatalf("Evaluate() failed: %v", err)
	}

	got, err := s.Evaluate("ans * 2")
	if err != nil {
		t.Fatalf("Evaluate(\"ans * 2\") failed: %v", err)
	}
	if got != 20 {
		t.Errorf("Evaluate(\"ans * 2\") = %v, want 20", got)
	}

	// ans binds as a parenthesized value, not by textual splice.
	if _, err := s.Evaluate("-2"); err != nil {
		t.Fatalf("Evaluate() failed: %v", err)
	}
	got, err = s.Evaluate("ans^2")
	if err != nil {
		t.Fatalf("Evaluate(\"ans^2\") failed: %v", err)
	}
	if got != 4 {
		t.Errorf("Evaluate(\"ans^2\") = %v, want 4", got)
	}
}

func TestSession_AnsWithoutPrevious(t *testing.T) {
	s := NewSession()
	if _, err := s.Evaluate("ans + 1"); err == nil {
		t.Error("Evaluate(\"ans + 1\") succeeded with no previous result")
	}
}

func TestSession_History(t *testing.T) {
	s := NewSession()
	for _, input := range []string{"1", "2", "3"} {
		if _, err := s.Evaluate(input); err != nil {
			t.Fatalf("Evaluate(%q) failed: %v", input, err)
		}
	}
	if _, err := s.Evaluate("bad("); err == nil {
		t.Fatal("Evaluate(\"bad(\") succeeded, want error")
	}

	history := s.History(2)
	if len(history) != 2 {
		t.Fatalf("len(History(2)) = %d, want 2", len(history))
	}
	if history[0].Expression != "2" || history[1].Expression != "3" {
		t.Errorf("History(2) = %v, want entries for 2 and 3", history)
	}
}

func TestSession_MaxLength(t *testing.T) {
	s := NewSession()
	s.SetMaxExpressionLength(8)

	if _, err := s.Evaluate("1+1+1+1+1+1"); err == nil {
		t.Error("oversized expression accepted")
	}
	if _, err := s.Evaluate("1+1"); err != nil {
		t.Errorf("short expression rejected: %v", err)
	}
}

func TestSession_Memory(t *testing.T) {
	s := NewSession()

	s.MemoryStore(5)
	s.MemoryAdd(2.5)
	if got := s.MemoryRecall(); got != 7.5 {
		t.Errorf("MemoryRecall() = %v, want 7.5", got)
	}
	s.MemoryClear()
	if got := s.MemoryRecall(); got != 0 {
		t.Errorf("MemoryRecall() after clear = %v, want 0", got)
	}
}

func TestSummarize(t *testing.T) {
	s, err := Summarize([]float64{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("Summarize() failed: %v", err)
	}

	if s.Count != 5 {
		t.Errorf("Count = %d, want 5", s.Count)
	}
	if s.Sum != 15 {
		t.Errorf("Sum = %v, want 15", s.Sum)
	}
	if s.Mean != 3 {
		t.Errorf("Mean = %v, want 3", s.Mean)
	}
	if s.Median != 3 {
		t.Errorf("Median = %v, want 3", s.Median)
	}
	if s.Min != 1 || s.Max != 5 {
		t.Errorf("Min/Max = %v/%v, want 1/5", s.Min, s.Max)
	}
	if math.Abs(s.StdDev-math.Sqrt(2.5)) > 1e-9 {
		t.Errorf("StdDev = %v, want %v", s.StdDev, math.Sqrt(2.5))
	}
}

func TestSummarize_Empty(t *testing.T) {
	if _, err := Summarize(nil); err == nil {
		t.Error("Summarize(nil) succeeded, want error")
	}
}

func TestMedian_Even(t *testing.T) {
	if got := Median([]float64{4, 1, 3, 2}); got != 2.5 {
		t.Errorf("Median() = %v, want 2.5", got)
	}
}

func TestGCDLCM(t *testing.T) {
	tests := []struct {
		a, b, gcd, lcm int64
	}{
		{12, 18, 6, 36},
		{7, 13, 1, 91},
		{-12, 18, 6, 36},
		{0, 5, 5, 0},
	}
	for _, tt := range tests {
		if got := GCD(tt.a, tt.b); got != tt.gcd {
			t.Errorf("GCD(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.gcd)
		}
		if got := LCM(tt.a, tt.b); got != tt.lcm {
			t.Errorf("LCM(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.lcm)
		}
	}
}

func TestLoanPayment(t *testing.T) {
	s, err := LoanPayment(100000, 0.05, 30)
	if err != nil {
		t.Fatalf("LoanPayment() failed: %v", err)
	}

	// Standard amortization result for these terms.
	if math.Abs(s.MonthlyPayment-536.82) > 0.01 {
		t.Errorf("MonthlyPayment = %v, want ~536.82", s.MonthlyPayment)
	}
	if math.Abs(s.TotalPaid-(s.MonthlyPayment*360)) > 1e-6 {
		t.Errorf("TotalPaid = %v, want monthly * 360", s.TotalPaid)
	}
	if math.Abs(s.TotalInterest-(s.TotalPaid-100000)) > 1e-6 {
		t.Errorf("TotalInterest = %v, want TotalPaid - principal", s.TotalInterest)
	}
}

func TestLoanPayment_ZeroRate(t *testing.T) {
	s, err := LoanPayment(12000, 0, 1)
	if err != nil {
		t.Fatalf("LoanPayment() failed: %v", err)
	}
	if s.MonthlyPayment != 1000 {
		t.Errorf("MonthlyPayment = %v, want 1000", s.MonthlyPayment)
	}
}

func TestLoanPayment_Invalid(t *testing.T) {
	if _, err := LoanPayment(0, 0.05, 10); err == nil {
		t.Error("zero principal accepted")
	}
	if _, err := LoanPayment(1000, -0.1, 10); err == nil {
		t.Error("negative rate accepted")
	}
	if _, err := LoanPayment(1000, 0.05, 0); err == nil {
		t.Error("zero term accepted")
	}
}

func TestCompoundInterest(t *testing.T) {
	s, err := CompoundInterest(1000, 0.12, 1, 12)
	if err != nil {
		t.Fatalf("CompoundInterest() failed: %v", err)
	}

	want := 1000 * math.Pow(1.01, 12)
	if math.Abs(s.FinalAmount-want) > 1e-6 {
		t.Errorf("FinalAmount = %v, want %v", s.FinalAmount, want)
	}
	if math.Abs(s.Interest-(want-1000)) > 1e-6 {
		t.Errorf("Interest = %v, want %v", s.Interest, want-1000)
	}
}

func TestCompoundInterest_DefaultCompounding(t *testing.T) {
	s, err := CompoundInterest(1000, 0.05, 2, 0)
	if err != nil {
		t.Fatalf("CompoundInterest() failed: %v", err)
	}
	if s.CompoundsPerYear != 12 {
		t.Errorf("CompoundsPerYear = %d, want 12", s.CompoundsPerYear)
	}
}

func TestSubstituteAns_WordBoundary(t *testing.T) {
	s := NewSession()
	if _, err := s.Evaluate("4"); err != nil {
		t.Fatalf("Evaluate() failed: %v", err)
	}

	// "tan" contains no standalone "ans" word and must not be touched.
	got := s.substituteAns("tan(45) + ans")
	if !strings.HasPrefix(got, "tan(45) + (") {
		t.Errorf("substituteAns() = %q, want tan untouched", got)
	}
}

func TestSubstituteAns_LargeResult(t *testing.T) {
	// Results big enough for scientific notation must still
	// substitute as plain decimal the lexer can read.
	s := NewSession()
	if _, err := s.Evaluate("10^21"); err != nil {
		t.Fatalf("Evaluate() failed: %v", err)
	}

	prepared := s.substituteAns("ans / 10")
	if strings.ContainsAny(prepared, "eE") {
		t.Fatalf("substituteAns() = %q, want plain decimal", prepared)
	}

	got, err := s.Evaluate("ans / 10")
	if err != nil {
		t.Fatalf("Evaluate(ans / 10) failed: %v", err)
	}
	if want := 1e20; got != want {
		t.Errorf("Evaluate(ans / 10) = %v, want %v", got, want)
	}
}

func TestLoanPayment_MatchesEvaluator(t *testing.T) {
	// Sanity check against the evaluator itself: a session computing
	// the same amortization formula agrees with LoanPayment.
	s, err := LoanPayment(1000, 0.06, 1)
	if err != nil {
		t.Fatalf("LoanPayment() failed: %v", err)
	}

	session := NewSession()
	got, err := session.Evaluate("1000 * (0.005 * 1.005^12) / (1.005^12 - 1)")
	if err != nil {
		t.Fatalf("Evaluate() failed: %v", err)
	}
	if math.Abs(got-s.MonthlyPayment) > 1e-9 {
		t.Errorf("evaluator = %v, LoanPayment = %v", got, s.MonthlyPayment)
	}
}
