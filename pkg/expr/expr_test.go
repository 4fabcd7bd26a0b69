package expr

import (
	"errors"
	"math"
	"sync"
	"testing"

	"fieldkit-hq/fieldkit/pkg/expr/eval"
	"fieldkit-hq/fieldkit/pkg/expr/lexer"
	"fieldkit-hq/fieldkit/pkg/expr/parser"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"2^3^2", 512},
		{"-2^2", -4},
		{"sin(90)", 1},
		{"sqrt(16)", 4},
	}

	for _, tt := range tests {
		got, err := Evaluate(tt.input)
		if err != nil {
			t.Errorf("Evaluate(%q) failed: %v", tt.input, err)
			continue
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Evaluate(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

// Each stage's errors surface through the facade with their concrete
// type intact.
func TestEvaluate_ErrorTypes(t *testing.T) {
	if _, err := Evaluate("2 + $"); err == nil {
		t.Error("lex error not reported")
	} else {
		var lexErr *lexer.Error
		if !errors.As(err, &lexErr) {
			t.Errorf("error = %T, want *lexer.Error", err)
		}
	}

	if _, err := Evaluate("pow(2)"); err == nil {
		t.Error("arity error not reported")
	} else {
		var arityErr *parser.ArityError
		if !errors.As(err, &arityErr) {
			t.Errorf("error = %T, want *parser.ArityError", err)
		}
	}

	if _, err := Evaluate("5/0"); err == nil {
		t.Error("division by zero not reported")
	} else {
		var divErr *eval.DivisionByZeroError
		if !errors.As(err, &divErr) {
			t.Errorf("error = %T, want *eval.DivisionByZeroError", err)
		}
	}
}

func TestEvaluate_DistinctMalformedInputs(t *testing.T) {
	inputs := []string{"2 +", "(2+3", ""}
	for _, input := range inputs {
		_, err := Evaluate(input)
		if err == nil {
			t.Errorf("Evaluate(%q) succeeded, want error", input)
		}
	}
}

func TestEvaluate_Concurrent(t *testing.T) {
	const goroutines = 16

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				got, err := Evaluate("sqrt(16) + sin(90)")
				if err != nil {
					t.Errorf("Evaluate() failed: %v", err)
					return
				}
				if math.Abs(got-5) > 1e-9 {
					t.Errorf("Evaluate() = %v, want 5", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}
