package eval

import (
	"errors"
	"math"
	"testing"

	"fieldkit-hq/fieldkit/pkg/expr/ast"
	"fieldkit-hq/fieldkit/pkg/expr/lexer"
	"fieldkit-hq/fieldkit/pkg/expr/parser"
)

func parse(t *testing.T, input string) ast.Node {
	t.Helper()
	tokens, err := lexer.Lex(input)
	if err != nil {
		t.Fatalf("Lex(%q) failed: %v", input, err)
	}
	node, err := parser.Parse(tokens)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", input, err)
	}
	return node
}

func almostEqual(a, b float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	scale := math.Max(math.Abs(a), math.Abs(b))
	return diff <= 1e-9*scale
}

func TestEvaluate_Arithmetic(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"10 - 4 - 3", 3},
		{"100 / 4 / 5", 5},
		{"2^10", 1024},
		{"2^3^2", 512},
		{"-2^2", -4},
		{"(-2)^2", 4},
		{"2^-1", 0.5},
		{"-5 + 3", -2},
		{"1.5 * 4", 6},
		{"0.1 + 0.2", 0.3},
	}

	for _, tt := range tests {
		got, err := Evaluate(parse(t, tt.input))
		if err != nil {
			t.Errorf("Evaluate(%q) failed: %v", tt.input, err)
			continue
		}
		if !almostEqual(got, tt.want) {
			t.Errorf("Evaluate(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestEvaluate_Functions(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"sqrt(16)", 4},
		{"sin(90)", 1},
		{"cos(0)", 1},
		{"sin(30)", 0.5},
		{"tan(45)", 1},
		{"log(100)", 2},
		{"ln(e)", 1},
		{"exp(0)", 1},
		{"abs(-3.5)", 3.5},
		{"floor(2.9)", 2},
		{"ceil(2.1)", 3},
		{"round(2.5)", 3},
		{"pow(2, 10)", 1024},
		{"min(3, 1, 2)", 1},
		{"max(3, 1, 2)", 3},
		{"sqrt(16) + sin(45) * 2", 4 + math.Sqrt2},
	}

	for _, tt := range tests {
		got, err := Evaluate(parse(t, tt.input))
		if err != nil {
			t.Errorf("Evaluate(%q) failed: %v", tt.input, err)
			continue
		}
		if !almostEqual(got, tt.want) {
			t.Errorf("Evaluate(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestEvaluate_Constants(t *testing.T) {
	got, err := Evaluate(parse(t, "2 * pi"))
	if err != nil {
		t.Fatalf("Evaluate() failed: %v", err)
	}
	if !almostEqual(got, 2*math.Pi) {
		t.Errorf("Evaluate(\"2 * pi\") = %v, want %v", got, 2*math.Pi)
	}

	got, err = Evaluate(parse(t, "e"))
	if err != nil {
		t.Fatalf("Evaluate() failed: %v", err)
	}
	if !almostEqual(got, math.E) {
		t.Errorf("Evaluate(\"e\") = %v, want %v", got, math.E)
	}
}

func TestEvaluate_DivisionByZero(t *testing.T) {
	for _, input := range []string{"5 / 0", "1 / (2 - 2)", "1 + 3 / (1 - 1)"} {
		_, err := Evaluate(parse(t, input))
		if err == nil {
			t.Errorf("Evaluate(%q) succeeded, want error", input)
			continue
		}
		var divErr *DivisionByZeroError
		if !errors.As(err, &divErr) {
			t.Errorf("Evaluate(%q) error = %T, want *DivisionByZeroError", input, err)
		}
	}
}

func TestEvaluate_InvalidOperation(t *testing.T) {
	tests := []struct {
		input  string
		reason string
	}{
		{"sqrt(-4)", "negative sqrt"},
		{"log(0)", "non-positive log"},
		{"log(-1)", "non-positive log"},
		{"ln(0)", "non-positive log"},
		{"(-2)^0.5", "complex result"},
		{"pow(-2, 0.5)", "complex result"},
	}

	for _, tt := range tests {
		_, err := Evaluate(parse(t, tt.input))
		if err == nil {
			t.Errorf("Evaluate(%q) succeeded, want error", tt.input)
			continue
		}
		var invErr *InvalidOperationError
		if !errors.As(err, &invErr) {
			t.Errorf("Evaluate(%q) error = %T, want *InvalidOperationError", tt.input, err)
			continue
		}
		if invErr.Reason != tt.reason {
			t.Errorf("Evaluate(%q) Reason = %q, want %q", tt.input, invErr.Reason, tt.reason)
		}
	}
}

func TestEvaluate_NonFinite(t *testing.T) {
	// 10^1000 overflows float64 to +Inf.
	_, err := Evaluate(parse(t, "10^1000"))
	if err == nil {
		t.Fatal("Evaluate() succeeded, want error")
	}
	var nfErr *NonFiniteError
	if !errors.As(err, &nfErr) {
		t.Fatalf("error = %T, want *NonFiniteError", err)
	}
}

func TestEvaluate_NoPartialResult(t *testing.T) {
	// The failing subtree aborts the whole evaluation.
	got, err := Evaluate(parse(t, "1 + sqrt(-1)"))
	if err == nil {
		t.Fatal("Evaluate() succeeded, want error")
	}
	if got != 0 {
		t.Errorf("result = %v, want 0 on error", got)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	node := parse(t, "sqrt(2) + 3^2 / 7")

	first, err1 := Evaluate(node)
	second, err2 := Evaluate(node)
	if err1 != nil || err2 != nil {
		t.Fatalf("Evaluate() failed: %v, %v", err1, err2)
	}
	if first != second {
		t.Errorf("repeated evaluation differs: %v vs %v", first, second)
	}
}
