// Package ast defines the expression tree produced by the parser and
// consumed by the evaluator.
//
// The node set is closed: Literal, Binary, Unary, Call and Constant.
// Consumers switch exhaustively over these types rather than relying
// on dynamic dispatch. Nodes exclusively own their children and are
// immutable once constructed.
package ast
