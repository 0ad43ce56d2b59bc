package ast

import (
	"github.com/knettia/faren-canon/types"
)

// Statement is a node of the statement tree. The concrete shapes are
// CompoundStatement, FunctionDefineStatement, FunctionDeclareStatement,
// FunctionReturnStatement, ExpressionStatement, DeclareStatement,
// AssignStatement, and PrintStatement.
type Statement interface {
	statementNode()
}

// CompoundStatement is a brace-delimited sequence of statements forming
// a lexical scope.
type CompoundStatement struct {
	Statements []Statement
}

func (s *CompoundStatement) statementNode() {}

// FunctionDefineStatement is a function with a body.
type FunctionDefineStatement struct {
	Signature types.FunctionSignature
	Body      *CompoundStatement
}

func (s *FunctionDefineStatement) statementNode() {}

// FunctionDeclareStatement is a forward declaration: a signature with no
// body, registered so later code can invoke the function.
type FunctionDeclareStatement struct {
	Signature types.FunctionSignature
}

func (s *FunctionDeclareStatement) statementNode() {}

// FunctionReturnStatement returns from the enclosing function.
// Expression is nil for a bare `return;`.
type FunctionReturnStatement struct {
	Expression Expression
}

func (s *FunctionReturnStatement) statementNode() {}

// ExpressionStatement evaluates an expression for its side effects.
type ExpressionStatement struct {
	Expression Expression
}

func (s *ExpressionStatement) statementNode() {}

// DeclareStatement introduces a variable with an initializer. VType is
// never Void; ID is the fresh ID the symbols table allocated for the
// name.
type DeclareStatement struct {
	VType      types.VType
	ID         uint16
	Expression Expression
}

func (s *DeclareStatement) statementNode() {}

// AssignStatement stores a new value into an already declared variable.
type AssignStatement struct {
	ID         uint16
	Expression Expression
}

func (s *AssignStatement) statementNode() {}

// PrintStatement prints the value of an expression.
type PrintStatement struct {
	Expression Expression
}

func (s *PrintStatement) statementNode() {}
