package parser

import (
	"fmt"

	"fieldkit-hq/fieldkit/pkg/expr/lexer"
)

// UnexpectedTokenError reports a token that is invalid in its
// position. Context names what the parser was expecting.
type UnexpectedTokenError struct {
	Token   lexer.Token
	Context string
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("parse error at offset %d: unexpected %s, expected %s",
		e.Token.Offset, e.Token, e.Context)
}

// UnexpectedEndError reports input that ended while an expression was
// still incomplete, including the empty input.
type UnexpectedEndError struct {
	Context string
}

func (e *UnexpectedEndError) Error() string {
	return fmt.Sprintf("parse error: unexpected end of input, expected %s", e.Context)
}

// ArityError reports a function call with the wrong number of
// arguments. Expected is rendered as "2" or "2+".
type ArityError struct {
	Name     string
	Expected string
	Got      int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("parse error: %s expects %s argument(s), got %d",
		e.Name, e.Expected, e.Got)
}

// UnknownIdentError reports an identifier that is neither a built-in
// function nor a known constant.
type UnknownIdentError struct {
	Name string
}

func (e *UnknownIdentError) Error() string {
	return fmt.Sprintf("parse error: unknown identifier %q", e.Name)
}
