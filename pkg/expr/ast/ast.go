package ast

import (
	"fmt"
	"strings"
)

// Op identifies an arithmetic operator in the tree.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpPow
	OpNeg
)

// String returns the source-level spelling of the operator.
func (o Op) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "^"
	case OpNeg:
		return "-"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// Node is the interface implemented by all expression tree nodes.
// A tree is built once by the parser and never mutated afterwards;
// evaluation is a read-only traversal.
type Node interface {
	// String renders the subtree as a parenthesized expression,
	// mainly for diagnostics and tests.
	String() string

	exprNode()
}

// Literal is a numeric literal.
type Literal struct {
	Value float64
}

// Binary is a binary operation over two subtrees.
type Binary struct {
	Op    Op
	Left  Node
	Right Node
}

// Unary is a unary operation over one subtree. The only unary
// operator is negation.
type Unary struct {
	Op      Op
	Operand Node
}

// Call is a function application. Name is stored lowercased;
// arity has already been checked by the parser.
type Call struct {
	Name string
	Args []Node
}

// Constant is a named constant reference (pi, e). Resolution to a
// value happens at evaluation time, not at parse time.
type Constant struct {
	Name string
}

func (*Literal) exprNode()  {}
func (*Binary) exprNode()   {}
func (*Unary) exprNode()    {}
func (*Call) exprNode()     {}
func (*Constant) exprNode() {}

func (n *Literal) String() string {
	return fmt.Sprintf("%g", n.Value)
}

func (n *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left, n.Op, n.Right)
}

func (n *Unary) String() string {
	return fmt.Sprintf("(%s%s)", n.Op, n.Operand)
}

func (n *Call) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", n.Name, strings.Join(args, ", "))
}

func (n *Constant) String() string {
	return n.Name
}
