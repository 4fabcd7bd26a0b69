// Package eval walks an expression tree bottom-up and produces a
// single float64 result.
//
// Evaluation is pure: the tree is never mutated, there is no I/O, and
// every failure mode is a typed error value. A failure anywhere in
// the tree aborts the whole evaluation; no partial results are
// produced.
package eval

import (
	"fmt"
	"math"

	"fieldkit-hq/fieldkit/pkg/expr/ast"
	"fieldkit-hq/fieldkit/pkg/expr/functions"
)

// DivisionByZeroError reports a '/' whose right operand evaluated to
// zero.
type DivisionByZeroError struct{}

func (e *DivisionByZeroError) Error() string {
	return "eval error: division by zero"
}

// InvalidOperationError reports an operation outside the real domain,
// such as the square root of a negative number.
type InvalidOperationError struct {
	Reason string
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("eval error: invalid operation: %s", e.Reason)
}

// NonFiniteError reports an intermediate or final value that is
// infinite or NaN without matching a more specific error.
type NonFiniteError struct{}

func (e *NonFiniteError) Error() string {
	return "eval error: result is not finite"
}

// Evaluate computes the value of the expression tree rooted at node.
func Evaluate(node ast.Node) (float64, error) {
	v, err := evalNode(node)
	if err != nil {
		return 0, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, &NonFiniteError{}
	}
	return v, nil
}

func evalNode(node ast.Node) (float64, error) {
	switch n := node.(type) {
	case *ast.Literal:
		return n.Value, nil

	case *ast.Constant:
		v, ok := functions.Constant(n.Name)
		if !ok {
			// The parser only emits known constants; reaching this
			// means a tree was built by hand with a bad name.
			return 0, &InvalidOperationError{Reason: fmt.Sprintf("unknown constant %q", n.Name)}
		}
		return v, nil

	case *ast.Unary:
		operand, err := evalNode(n.Operand)
		if err != nil {
			return 0, err
		}
		return -operand, nil

	case *ast.Binary:
		return evalBinary(n)

	case *ast.Call:
		return evalCall(n)

	default:
		return 0, &InvalidOperationError{Reason: fmt.Sprintf("unsupported node %T", node)}
	}
}

func evalBinary(n *ast.Binary) (float64, error) {
	left, err := evalNode(n.Left)
	if err != nil {
		return 0, err
	}
	right, err := evalNode(n.Right)
	if err != nil {
		return 0, err
	}

	var v float64
	switch n.Op {
	case ast.OpAdd:
		v = left + right
	case ast.OpSub:
		v = left - right
	case ast.OpMul:
		v = left * right
	case ast.OpDiv:
		if right == 0 {
			return 0, &DivisionByZeroError{}
		}
		v = left / right
	case ast.OpPow:
		if left < 0 && right != math.Trunc(right) {
			return 0, &InvalidOperationError{Reason: "complex result"}
		}
		v = math.Pow(left, right)
	default:
		return 0, &InvalidOperationError{Reason: fmt.Sprintf("unsupported operator %s", n.Op)}
	}

	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, &NonFiniteError{}
	}
	return v, nil
}

func evalCall(n *ast.Call) (float64, error) {
	fn, ok := functions.Lookup(n.Name)
	if !ok {
		return 0, &InvalidOperationError{Reason: fmt.Sprintf("unknown function %q", n.Name)}
	}

	args := make([]float64, len(n.Args))
	for i, arg := range n.Args {
		v, err := evalNode(arg)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}

	v, err := fn.Impl(args)
	if err != nil {
		return 0, &InvalidOperationError{Reason: err.Error()}
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, &NonFiniteError{}
	}
	return v, nil
}
