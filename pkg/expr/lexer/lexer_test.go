package lexer

import (
	"errors"
	"testing"
)

func TestLex_Simple(t *testing.T) {
	tokens, err := Lex("2 + 3.5 * (x)")
	if err != nil {
		t.Fatalf("Lex() failed: %v", err)
	}

	want := []TokenType{TokenNumber, TokenPlus, TokenNumber, TokenStar, TokenLParen, TokenIdent, TokenRParen, TokenEOF}
	if len(tokens) != len(want) {
		t.Fatalf("len(tokens) = %d, want %d", len(tokens), len(want))
	}
	for i, typ := range want {
		if tokens[i].Type != typ {
			t.Errorf("tokens[%d].Type = %v, want %v", i, tokens[i].Type, typ)
		}
	}

	if tokens[0].Value != 2 {
		t.Errorf("tokens[0].Value = %v, want 2", tokens[0].Value)
	}
	if tokens[2].Value != 3.5 {
		t.Errorf("tokens[2].Value = %v, want 3.5", tokens[2].Value)
	}
	if tokens[5].Literal != "x" {
		t.Errorf("tokens[5].Literal = %q, want %q", tokens[5].Literal, "x")
	}
}

func TestLex_Operators(t *testing.T) {
	tokens, err := Lex("+-*/^(),")
	if err != nil {
		t.Fatalf("Lex() failed: %v", err)
	}

	want := []TokenType{TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenCaret, TokenLParen, TokenRParen, TokenComma, TokenEOF}
	for i, typ := range want {
		if tokens[i].Type != typ {
			t.Errorf("tokens[%d].Type = %v, want %v", i, tokens[i].Type, typ)
		}
	}
}

func TestLex_NumberForms(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"0", 0},
		{"42", 42},
		{"3.14159", 3.14159},
		{"0.5", 0.5},
		{".5", 0.5},
		{"5.", 5},
	}

	for _, tt := range tests {
		tokens, err := Lex(tt.input)
		if err != nil {
			t.Errorf("Lex(%q) failed: %v", tt.input, err)
			continue
		}
		if len(tokens) != 2 {
			t.Errorf("Lex(%q) produced %d tokens, want 2", tt.input, len(tokens))
			continue
		}
		if tokens[0].Value != tt.want {
			t.Errorf("Lex(%q) value = %v, want %v", tt.input, tokens[0].Value, tt.want)
		}
	}
}

func TestLex_MalformedNumber(t *testing.T) {
	for _, input := range []string{".", "1.2.3", "2 + ."} {
		_, err := Lex(input)
		if err == nil {
			t.Errorf("Lex(%q) succeeded, want error", input)
			continue
		}
		var lexErr *Error
		if !errors.As(err, &lexErr) {
			t.Errorf("Lex(%q) error = %T, want *Error", input, err)
		}
	}
}

func TestLex_UnexpectedCharacter(t *testing.T) {
	_, err := Lex("2 + $3")
	if err == nil {
		t.Fatal("Lex() succeeded, want error")
	}

	var lexErr *Error
	if !errors.As(err, &lexErr) {
		t.Fatalf("error = %T, want *Error", err)
	}
	if lexErr.Char != '$' {
		t.Errorf("Char = %q, want %q", lexErr.Char, '$')
	}
	if lexErr.Offset != 4 {
		t.Errorf("Offset = %d, want 4", lexErr.Offset)
	}
}

func TestLex_SkipsWhitespace(t *testing.T) {
	tokens, err := Lex("  2 \t+\n 3  ")
	if err != nil {
		t.Fatalf("Lex() failed: %v", err)
	}
	if len(tokens) != 4 {
		t.Fatalf("len(tokens) = %d, want 4", len(tokens))
	}
}

func TestLex_LowercasesIdentifiers(t *testing.T) {
	tokens, err := Lex("SQRT(PI)")
	if err != nil {
		t.Fatalf("Lex() failed: %v", err)
	}
	if tokens[0].Literal != "sqrt" {
		t.Errorf("tokens[0].Literal = %q, want %q", tokens[0].Literal, "sqrt")
	}
	if tokens[2].Literal != "pi" {
		t.Errorf("tokens[2].Literal = %q, want %q", tokens[2].Literal, "pi")
	}
}

func TestLex_Empty(t *testing.T) {
	tokens, err := Lex("")
	if err != nil {
		t.Fatalf("Lex(\"\") failed: %v", err)
	}
	if len(tokens) != 1 || tokens[0].Type != TokenEOF {
		t.Fatalf("Lex(\"\") = %v, want single EOF token", tokens)
	}
}
