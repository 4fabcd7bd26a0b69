package parser

import (
	"fieldkit-hq/fieldkit/pkg/expr/ast"
	"fieldkit-hq/fieldkit/pkg/expr/functions"
	"fieldkit-hq/fieldkit/pkg/expr/lexer"
)

// Parse consumes a token sequence produced by the lexer and returns
// the expression tree. The grammar, lowest to highest binding:
//
//	expr    := term (('+' | '-') term)*          left-associative
//	term    := unary (('*' | '/') unary)*        left-associative
//	unary   := '-' unary | power
//	power   := primary ('^' unary)?              right-associative
//	primary := number | '(' expr ')' | constant | name '(' args ')'
//
// Unary minus therefore binds tighter than '*' and '/' but looser
// than '^', so -2^2 parses as -(2^2). Function arity is checked here
// against the built-in table; no evaluation happens during parsing.
func Parse(tokens []lexer.Token) (ast.Node, error) {
	p := &parser{tokens: tokens}

	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	// The whole input must form a single expression.
	if tok := p.peek(); tok.Type != lexer.TokenEOF {
		return nil, &UnexpectedTokenError{Token: tok, Context: "end of expression"}
	}
	return node, nil
}

type parser struct {
	tokens []lexer.Token
	pos    int
}

func (p *parser) peek() lexer.Token {
	return p.tokens[p.pos]
}

func (p *parser) next() lexer.Token {
	tok := p.tokens[p.pos]
	if tok.Type != lexer.TokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) parseExpr() (ast.Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for {
		var op ast.Op
		switch p.peek().Type {
		case lexer.TokenPlus:
			op = ast.OpAdd
		case lexer.TokenMinus:
			op = ast.OpSub
		default:
			return left, nil
		}
		p.next()

		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseTerm() (ast.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		var op ast.Op
		switch p.peek().Type {
		case lexer.TokenStar:
			op = ast.OpMul
		case lexer.TokenSlash:
			op = ast.OpDiv
		default:
			return left, nil
		}
		p.next()

		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseUnary() (ast.Node, error) {
	if p.peek().Type == lexer.TokenMinus {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: ast.OpNeg, Operand: operand}, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (ast.Node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	if p.peek().Type != lexer.TokenCaret {
		return base, nil
	}
	p.next()

	// The exponent recurses through unary, which makes '^'
	// right-associative: 2^3^2 is 2^(3^2).
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.Binary{Op: ast.OpPow, Left: base, Right: exp}, nil
}

func (p *parser) parsePrimary() (ast.Node, error) {
	tok := p.peek()

	switch tok.Type {
	case lexer.TokenNumber:
		p.next()
		return &ast.Literal{Value: tok.Value}, nil

	case lexer.TokenLParen:
		p.next()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if closing := p.peek(); closing.Type != lexer.TokenRParen {
			if closing.Type == lexer.TokenEOF {
				return nil, &UnexpectedEndError{Context: "')'"}
			}
			return nil, &UnexpectedTokenError{Token: closing, Context: "')'"}
		}
		p.next()
		return inner, nil

	case lexer.TokenIdent:
		p.next()
		return p.parseIdent(tok)

	case lexer.TokenEOF:
		return nil, &UnexpectedEndError{Context: "an expression"}

	default:
		return nil, &UnexpectedTokenError{Token: tok, Context: "a number, '(', or a name"}
	}
}

// parseIdent handles an identifier token that has already been
// consumed: either a constant reference or a function call.
func (p *parser) parseIdent(tok lexer.Token) (ast.Node, error) {
	if p.peek().Type != lexer.TokenLParen {
		if _, ok := functions.Constant(tok.Literal); ok {
			return &ast.Constant{Name: tok.Literal}, nil
		}
		if _, ok := functions.Lookup(tok.Literal); ok {
			// A bare function name with no argument list.
			return nil, &UnexpectedTokenError{Token: p.peek(), Context: "'(' after function name"}
		}
		return nil, &UnknownIdentError{Name: tok.Literal}
	}

	fn, ok := functions.Lookup(tok.Literal)
	if !ok {
		return nil, &UnknownIdentError{Name: tok.Literal}
	}
	p.next() // consume '('

	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}

	if !fn.Accepts(len(args)) {
		return nil, &ArityError{Name: fn.Name, Expected: fn.Arity(), Got: len(args)}
	}
	return &ast.Call{Name: fn.Name, Args: args}, nil
}

// parseArgs parses a comma-separated argument list up to and
// including the closing parenthesis. An empty list is allowed here so
// that zero-argument calls surface as arity errors rather than
// generic syntax errors.
func (p *parser) parseArgs() ([]ast.Node, error) {
	if p.peek().Type == lexer.TokenRParen {
		p.next()
		return nil, nil
	}

	var args []ast.Node
	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		switch tok := p.peek(); tok.Type {
		case lexer.TokenComma:
			p.next()
		case lexer.TokenRParen:
			p.next()
			return args, nil
		case lexer.TokenEOF:
			return nil, &UnexpectedEndError{Context: "',' or ')'"}
		default:
			return nil, &UnexpectedTokenError{Token: tok, Context: "',' or ')'"}
		}
	}
}
