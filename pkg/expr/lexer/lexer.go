package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Error reports an unrecognized character or malformed numeric
// literal at a byte offset in the input.
type Error struct {
	Offset int
	Char   rune
	Reason string
}

func (e *Error) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("lex error at offset %d: %s", e.Offset, e.Reason)
	}
	return fmt.Sprintf("lex error at offset %d: unexpected character %q", e.Offset, e.Char)
}

// Lex converts an expression string into a token sequence terminated
// by an EOF token. It depends only on the input and has no side
// effects.
func Lex(input string) ([]Token, error) {
	runes := []rune(input)
	tokens := make([]Token, 0, len(runes)/2+1)

	i := 0
	for i < len(runes) {
		r := runes[i]

		if unicode.IsSpace(r) {
			i++
			continue
		}

		switch r {
		case '+':
			tokens = append(tokens, Token{Type: TokenPlus, Literal: "+", Offset: i})
			i++
			continue
		case '-':
			tokens = append(tokens, Token{Type: TokenMinus, Literal: "-", Offset: i})
			i++
			continue
		case '*':
			tokens = append(tokens, Token{Type: TokenStar, Literal: "*", Offset: i})
			i++
			continue
		case '/':
			tokens = append(tokens, Token{Type: TokenSlash, Literal: "/", Offset: i})
			i++
			continue
		case '^':
			tokens = append(tokens, Token{Type: TokenCaret, Literal: "^", Offset: i})
			i++
			continue
		case '(':
			tokens = append(tokens, Token{Type: TokenLParen, Literal: "(", Offset: i})
			i++
			continue
		case ')':
			tokens = append(tokens, Token{Type: TokenRParen, Literal: ")", Offset: i})
			i++
			continue
		case ',':
			tokens = append(tokens, Token{Type: TokenComma, Literal: ",", Offset: i})
			i++
			continue
		}

		if unicode.IsDigit(r) || r == '.' {
			tok, next, err := lexNumber(runes, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i = next
			continue
		}

		if unicode.IsLetter(r) {
			start := i
			for i < len(runes) && unicode.IsLetter(runes[i]) {
				i++
			}
			tokens = append(tokens, Token{
				Type:    TokenIdent,
				Literal: strings.ToLower(string(runes[start:i])),
				Offset:  start,
			})
			continue
		}

		return nil, &Error{Offset: i, Char: r}
	}

	tokens = append(tokens, Token{Type: TokenEOF, Offset: len(runes)})
	return tokens, nil
}

// lexNumber scans a numeric literal starting at position start. The
// literal is digits with at most one decimal point; a lone '.' with
// no digits on either side is malformed.
func lexNumber(runes []rune, start int) (Token, int, error) {
	i := start
	digits := 0
	dots := 0

	for i < len(runes) {
		r := runes[i]
		if unicode.IsDigit(r) {
			digits++
			i++
			continue
		}
		if r == '.' {
			if dots > 0 {
				return Token{}, 0, &Error{Offset: i, Char: '.', Reason: "malformed number: second decimal point"}
			}
			dots++
			i++
			continue
		}
		break
	}

	if digits == 0 {
		return Token{}, 0, &Error{Offset: start, Char: '.', Reason: "malformed number: no digits"}
	}

	text := string(runes[start:i])
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Token{}, 0, &Error{Offset: start, Char: runes[start], Reason: fmt.Sprintf("malformed number %q", text)}
	}

	return Token{Type: TokenNumber, Literal: text, Value: value, Offset: start}, i, nil
}
