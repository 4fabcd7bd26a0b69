// Package expr evaluates free-form infix mathematical expressions.
//
// The pipeline is strictly string → tokens → tree → number:
//
//   - lexer: converts the raw text into typed tokens
//   - parser: recursive descent with the usual precedence levels,
//     right-associative '^', and parse-time arity checking
//   - eval: pure post-order traversal over the tree
//
// The package is organized into subpackages:
//
//   - ast: expression tree node definitions
//   - lexer: tokenizer and lex errors
//   - parser: grammar and parse errors
//   - functions: built-in function and constant tables
//   - eval: evaluator and eval errors
//
// # Basic Usage
//
//	result, err := expr.Evaluate("sqrt(16) + sin(45) * 2")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result)
//
// Trigonometric functions interpret their argument as degrees.
// Division by zero, out-of-domain function arguments and non-finite
// intermediate values are reported as typed errors, never as NaN or
// a silently wrong number.
//
// Expressions have no state: there are no variables, and the built-in
// tables are immutable after process start, so Evaluate is safe to
// call from multiple goroutines with no synchronization.
package expr
