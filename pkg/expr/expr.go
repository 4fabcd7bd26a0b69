package expr

import (
	"fieldkit-hq/fieldkit/pkg/expr/ast"
	"fieldkit-hq/fieldkit/pkg/expr/eval"
	"fieldkit-hq/fieldkit/pkg/expr/lexer"
	"fieldkit-hq/fieldkit/pkg/expr/parser"
)

// Evaluate tokenizes, parses and evaluates a single infix expression.
// It is the one entry point the CLI layer uses. The returned error is
// one of the typed values from the lexer, parser or eval packages;
// callers that need the structured fields use errors.As.
//
// Evaluate is a pure function and safe for concurrent use.
func Evaluate(input string) (float64, error) {
	node, err := Parse(input)
	if err != nil {
		return 0, err
	}
	return eval.Evaluate(node)
}

// Parse tokenizes and parses an expression without evaluating it.
// Useful for syntax checking.
func Parse(input string) (ast.Node, error) {
	tokens, err := lexer.Lex(input)
	if err != nil {
		return nil, err
	}
	return parser.Parse(tokens)
}
