package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/knettia/faren-canon/ast"
	"github.com/knettia/faren-canon/types"
)

const INDENT_SIZE = 4

// PrintingVisitor renders a program tree as an indented outline, one
// node per line. It walks the closed variant sets with type switches.
type PrintingVisitor struct {
	Indent int
	Buf    bytes.Buffer
}

// indent writes the current indentation prefix.
func (p *PrintingVisitor) indent() {
	for i := 0; i < p.Indent; i++ {
		p.Buf.WriteString(" ")
	}
}

// VisitRoot renders the whole tree under a Root header line.
func (p *PrintingVisitor) VisitRoot(root *ast.Root) {
	p.indent()
	p.Buf.WriteString(fmt.Sprintf("Root Node (%d statements)\n", len(root.Statements)))
	p.Indent += INDENT_SIZE
	for _, statement := range root.Statements {
		p.visitStatement(statement)
	}
	p.Indent -= INDENT_SIZE
}

// signatureString formats a signature as "name(#0 int, #1 bool) int",
// each parameter shown with its ID and type.
func signatureString(sign types.FunctionSignature) string {
	params := make([]string, 0, len(sign.Parameters))
	for _, param := range sign.Parameters {
		params = append(params, fmt.Sprintf("#%d %s", param.ID, param.VType))
	}
	return fmt.Sprintf("%s(%s) %s", sign.Name, strings.Join(params, ", "), sign.ReturnType)
}

// visitStatement renders one statement node and its children.
func (p *PrintingVisitor) visitStatement(statement ast.Statement) {
	p.indent()

	switch node := statement.(type) {
	case *ast.CompoundStatement:
		p.Buf.WriteString(fmt.Sprintf("Compound Node (%d statements)\n", len(node.Statements)))
		p.Indent += INDENT_SIZE
		for _, inner := range node.Statements {
			p.visitStatement(inner)
		}
		p.Indent -= INDENT_SIZE

	case *ast.FunctionDefineStatement:
		p.Buf.WriteString(fmt.Sprintf("FunctionDefine Node (%s)\n", signatureString(node.Signature)))
		p.Indent += INDENT_SIZE
		p.visitStatement(node.Body)
		p.Indent -= INDENT_SIZE

	case *ast.FunctionDeclareStatement:
		p.Buf.WriteString(fmt.Sprintf("FunctionDeclare Node (%s)\n", signatureString(node.Signature)))

	case *ast.FunctionReturnStatement:
		if node.Expression == nil {
			p.Buf.WriteString("FunctionReturn Node (void)\n")
		} else {
			p.Buf.WriteString("FunctionReturn Node\n")
			p.Indent += INDENT_SIZE
			p.visitExpression(node.Expression)
			p.Indent -= INDENT_SIZE
		}

	case *ast.ExpressionStatement:
		p.Buf.WriteString("Expression Node\n")
		p.Indent += INDENT_SIZE
		p.visitExpression(node.Expression)
		p.Indent -= INDENT_SIZE

	case *ast.DeclareStatement:
		p.Buf.WriteString(fmt.Sprintf("Declare Node (#%d %s)\n", node.ID, node.VType))
		p.Indent += INDENT_SIZE
		p.visitExpression(node.Expression)
		p.Indent -= INDENT_SIZE

	case *ast.AssignStatement:
		p.Buf.WriteString(fmt.Sprintf("Assign Node (#%d)\n", node.ID))
		p.Indent += INDENT_SIZE
		p.visitExpression(node.Expression)
		p.Indent -= INDENT_SIZE

	case *ast.PrintStatement:
		p.Buf.WriteString("Print Node\n")
		p.Indent += INDENT_SIZE
		p.visitExpression(node.Expression)
		p.Indent -= INDENT_SIZE

	default:
		p.Buf.WriteString(fmt.Sprintf("Unknown Statement Node (%T)\n", statement))
	}
}

// visitExpression renders one expression node and its children.
func (p *PrintingVisitor) visitExpression(expression ast.Expression) {
	p.indent()

	switch node := expression.(type) {
	case *ast.LiteralExpression:
		p.Buf.WriteString(fmt.Sprintf("Literal Node (%s %s)\n", node.Literal.String(), node.VType()))

	case *ast.VariableExpression:
		p.Buf.WriteString(fmt.Sprintf("Variable Node (#%d %s)\n", node.ID, node.Type))

	case *ast.FunctionCallExpression:
		p.Buf.WriteString(fmt.Sprintf("FunctionCall Node (%s -> %s)\n", node.Name, node.ReturnType))
		p.Indent += INDENT_SIZE
		for _, argument := range node.Arguments {
			p.visitExpression(argument)
		}
		p.Indent -= INDENT_SIZE

	case *ast.ArithmeticExpression:
		p.Buf.WriteString(fmt.Sprintf("Arithmetic Node (%s -> %s)\n", node.Op, node.ResultType))
		p.Indent += INDENT_SIZE
		p.visitExpression(node.Left)
		p.visitExpression(node.Right)
		p.Indent -= INDENT_SIZE

	case *ast.ComparisonExpression:
		p.Buf.WriteString(fmt.Sprintf("Comparison Node (%s -> bool)\n", node.Op))
		p.Indent += INDENT_SIZE
		p.visitExpression(node.Left)
		p.visitExpression(node.Right)
		p.Indent -= INDENT_SIZE

	case *ast.BooleanExpression:
		p.Buf.WriteString(fmt.Sprintf("Boolean Node (%s -> bool)\n", node.Op))
		p.Indent += INDENT_SIZE
		p.visitExpression(node.Left)
		p.visitExpression(node.Right)
		p.Indent -= INDENT_SIZE

	default:
		p.Buf.WriteString(fmt.Sprintf("Unknown Expression Node (%T)\n", expression))
	}
}

// String returns the rendered outline.
func (p *PrintingVisitor) String() string {
	return p.Buf.String()
}
