package ast

import (
	"github.com/knettia/faren-canon/types"
)

// Expression is a node of the expression tree. The concrete shapes are
// LiteralExpression, VariableExpression, FunctionCallExpression,
// ArithmeticExpression, ComparisonExpression, and BooleanExpression.
// Every node reports the value type it produces; the reported type is
// fully determined by the node's shape and children.
type Expression interface {
	// VType is the value type this expression evaluates to.
	VType() types.VType

	expressionNode()
}

// LiteralExpression wraps a literal constant.
type LiteralExpression struct {
	Literal Literal
}

func (e *LiteralExpression) VType() types.VType { return e.Literal.VType }
func (e *LiteralExpression) expressionNode()    {}

// VariableExpression is a reference to a declared variable or parameter,
// resolved at parse time to the stable ID the symbols table allocated.
type VariableExpression struct {
	Type types.VType
	ID   uint16
}

func (e *VariableExpression) VType() types.VType { return e.Type }
func (e *VariableExpression) expressionNode()    {}

// FunctionCallExpression is an `invoke` of a previously declared
// function. Arguments are in source order and their count matches the
// signature's parameter count.
type FunctionCallExpression struct {
	ReturnType types.VType
	Name       string
	Arguments  []Expression
}

func (e *FunctionCallExpression) VType() types.VType { return e.ReturnType }
func (e *FunctionCallExpression) expressionNode()    {}

// ArithmeticExpression is a binary arithmetic operation. The result type
// is fixed to Integer when the parser builds the node.
type ArithmeticExpression struct {
	ResultType types.VType
	Op         types.ArithmeticOperation
	Left       Expression
	Right      Expression
}

func (e *ArithmeticExpression) VType() types.VType { return e.ResultType }
func (e *ArithmeticExpression) expressionNode()    {}

// ComparisonExpression is a binary comparison; it always produces a
// boolean.
type ComparisonExpression struct {
	Op    types.ComparisonOperation
	Left  Expression
	Right Expression
}

func (e *ComparisonExpression) VType() types.VType { return types.Boolean }
func (e *ComparisonExpression) expressionNode()    {}

// BooleanExpression is a binary `and` / `or`; it always produces a
// boolean.
type BooleanExpression struct {
	Op    types.BooleanOperation
	Left  Expression
	Right Expression
}

func (e *BooleanExpression) VType() types.VType { return types.Boolean }
func (e *BooleanExpression) expressionNode()    {}
