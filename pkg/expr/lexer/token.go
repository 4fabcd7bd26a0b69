package lexer

import "fmt"

// TokenType identifies the kind of a lexical token.
type TokenType int

const (
	TokenNumber TokenType = iota
	TokenIdent
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenCaret
	TokenLParen
	TokenRParen
	TokenComma
	TokenEOF
)

// String returns a human-readable name for the token type.
func (t TokenType) String() string {
	switch t {
	case TokenNumber:
		return "number"
	case TokenIdent:
		return "identifier"
	case TokenPlus:
		return "'+'"
	case TokenMinus:
		return "'-'"
	case TokenStar:
		return "'*'"
	case TokenSlash:
		return "'/'"
	case TokenCaret:
		return "'^'"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenComma:
		return "','"
	case TokenEOF:
		return "end of input"
	default:
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
}

// Token is a single lexical unit. Value is populated only for
// TokenNumber; Literal holds the source text for diagnostics.
type Token struct {
	Type    TokenType
	Literal string
	Value   float64
	Offset  int // rune offset in the input
}

func (t Token) String() string {
	if t.Type == TokenEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.Literal)
}
