// Package ast defines the program tree produced by the parser: literals,
// expressions, statements, and the root that collects the top-level
// statements. The tree is a closed set of variants; consumers dispatch on
// the concrete node types with type switches.
package ast

import (
	"fmt"

	"github.com/knettia/faren-canon/types"
)

// Literal is a constant value appearing directly in source: either an
// integer or a boolean. It carries its own value type.
type Literal struct {
	VType types.VType
	Int   int32
	Bool  bool
}

// NewIntegerLiteral builds an integer literal.
func NewIntegerLiteral(value int32) Literal {
	return Literal{VType: types.Integer, Int: value}
}

// NewBooleanLiteral builds a boolean literal.
func NewBooleanLiteral(value bool) Literal {
	return Literal{VType: types.Boolean, Bool: value}
}

// String returns the source spelling of the literal.
func (l Literal) String() string {
	switch l.VType {
	case types.Integer:
		return fmt.Sprintf("%d", l.Int)
	case types.Boolean:
		return fmt.Sprintf("%t", l.Bool)
	}
	return "?"
}
