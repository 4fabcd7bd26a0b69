package parser

import (
	"errors"
	"testing"

	"fieldkit-hq/fieldkit/pkg/expr/ast"
	"fieldkit-hq/fieldkit/pkg/expr/lexer"
)

func mustLex(t *testing.T, input string) []lexer.Token {
	t.Helper()
	tokens, err := lexer.Lex(input)
	if err != nil {
		t.Fatalf("Lex(%q) failed: %v", input, err)
	}
	return tokens
}

// parseString is a convenience wrapper used throughout the tests.
func parseString(t *testing.T, input string) (ast.Node, error) {
	t.Helper()
	return Parse(mustLex(t, input))
}

func TestParse_Shape(t *testing.T) {
	tests := []struct {
		input string
		want  string // tree rendered with explicit grouping
	}{
		{"2 + 3 * 4", "(2 + (3 * 4))"},
		{"(2 + 3) * 4", "((2 + 3) * 4)"},
		{"1 - 2 - 3", "((1 - 2) - 3)"},
		{"8 / 4 / 2", "((8 / 4) / 2)"},
		{"2^3^2", "(2 ^ (3 ^ 2))"},
		{"-2^2", "(-(2 ^ 2))"},
		{"2 * -3", "(2 * (-3))"},
		{"--2", "(-(-2))"},
		{"pow(2, 3)", "pow(2, 3)"},
		{"min(1, 2, 3)", "min(1, 2, 3)"},
		{"sqrt(pi)", "sqrt(pi)"},
		{"1 + pi", "(1 + pi)"},
	}

	for _, tt := range tests {
		node, err := parseString(t, tt.input)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tt.input, err)
			continue
		}
		if got := node.String(); got != tt.want {
			t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParse_ArityMismatch(t *testing.T) {
	tests := []struct {
		input    string
		name     string
		expected string
		got      int
	}{
		{"pow(2)", "pow", "2", 1},
		{"pow(1, 2, 3)", "pow", "2", 3},
		{"sqrt(1, 2)", "sqrt", "1", 2},
		{"min(1)", "min", "2+", 1},
		{"sqrt()", "sqrt", "1", 0},
	}

	for _, tt := range tests {
		_, err := parseString(t, tt.input)
		if err == nil {
			t.Errorf("Parse(%q) succeeded, want arity error", tt.input)
			continue
		}
		var arityErr *ArityError
		if !errors.As(err, &arityErr) {
			t.Errorf("Parse(%q) error = %T, want *ArityError", tt.input, err)
			continue
		}
		if arityErr.Name != tt.name {
			t.Errorf("Parse(%q) Name = %q, want %q", tt.input, arityErr.Name, tt.name)
		}
		if arityErr.Expected != tt.expected {
			t.Errorf("Parse(%q) Expected = %q, want %q", tt.input, arityErr.Expected, tt.expected)
		}
		if arityErr.Got != tt.got {
			t.Errorf("Parse(%q) Got = %d, want %d", tt.input, arityErr.Got, tt.got)
		}
	}
}

func TestParse_UnknownIdentifier(t *testing.T) {
	for _, input := range []string{"foo(1)", "bogus", "2 + nope(3)"} {
		_, err := parseString(t, input)
		if err == nil {
			t.Errorf("Parse(%q) succeeded, want error", input)
			continue
		}
		var unknownErr *UnknownIdentError
		if !errors.As(err, &unknownErr) {
			t.Errorf("Parse(%q) error = %T, want *UnknownIdentError", input, err)
		}
	}
}

func TestParse_UnknownIdentifierName(t *testing.T) {
	_, err := parseString(t, "foo(1)")
	var unknownErr *UnknownIdentError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("error = %T, want *UnknownIdentError", err)
	}
	if unknownErr.Name != "foo" {
		t.Errorf("Name = %q, want %q", unknownErr.Name, "foo")
	}
}

func TestParse_UnexpectedEnd(t *testing.T) {
	for _, input := range []string{"", "2 +", "(2+3", "pow(2,", "1 *"} {
		_, err := parseString(t, input)
		if err == nil {
			t.Errorf("Parse(%q) succeeded, want error", input)
			continue
		}
		var endErr *UnexpectedEndError
		if !errors.As(err, &endErr) {
			t.Errorf("Parse(%q) error = %T, want *UnexpectedEndError", input, err)
		}
	}
}

func TestParse_UnexpectedToken(t *testing.T) {
	for _, input := range []string{"2 3", "()", "2 + * 3", "1, 2", "2)"} {
		_, err := parseString(t, input)
		if err == nil {
			t.Errorf("Parse(%q) succeeded, want error", input)
			continue
		}
		var tokErr *UnexpectedTokenError
		if !errors.As(err, &tokErr) {
			t.Errorf("Parse(%q) error = %T, want *UnexpectedTokenError", input, err)
		}
	}
}

func TestParse_TrailingInput(t *testing.T) {
	_, err := parseString(t, "2 + 3 4")
	var tokErr *UnexpectedTokenError
	if !errors.As(err, &tokErr) {
		t.Fatalf("error = %T, want *UnexpectedTokenError", err)
	}
	if tokErr.Context != "end of expression" {
		t.Errorf("Context = %q, want %q", tokErr.Context, "end of expression")
	}
}

func TestParse_BareFunctionName(t *testing.T) {
	_, err := parseString(t, "sqrt + 1")
	var tokErr *UnexpectedTokenError
	if !errors.As(err, &tokErr) {
		t.Fatalf("error = %T, want *UnexpectedTokenError", err)
	}
}

func TestParse_ConstantIsNotCallable(t *testing.T) {
	_, err := parseString(t, "pi(2)")
	var unknownErr *UnknownIdentError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("error = %T, want *UnknownIdentError", err)
	}
}

func TestParse_CaseInsensitiveCalls(t *testing.T) {
	node, err := parseString(t, "SQRT(16)")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	call, ok := node.(*ast.Call)
	if !ok {
		t.Fatalf("node = %T, want *ast.Call", node)
	}
	if call.Name != "sqrt" {
		t.Errorf("Name = %q, want %q", call.Name, "sqrt")
	}
}

func TestParse_NestedCalls(t *testing.T) {
	node, err := parseString(t, "max(min(1, 2), sqrt(2 + 2), 5)")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	want := "max(min(1, 2), sqrt((2 + 2)), 5)"
	if got := node.String(); got != want {
		t.Errorf("tree = %s, want %s", got, want)
	}
}
