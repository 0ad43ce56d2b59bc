package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/knettia/faren-canon/parser"
)

// TestPrintingVisitor_FunctionDefine renders a full definition and
// checks the outline mentions every node on the path to the leaves.
func TestPrintingVisitor_FunctionDefine(t *testing.T) {

	src := `function square(x int) int { return x * x; }`
	root, diagnostics := parser.ParseRoot(src)
	assert.Equal(t, 0, len(diagnostics))

	visitor := &PrintingVisitor{}
	visitor.VisitRoot(root)
	out := visitor.String()

	assert.Contains(t, out, "Root Node (1 statements)")
	assert.Contains(t, out, "FunctionDefine Node")
	assert.Contains(t, out, "square")
	assert.Contains(t, out, "Compound Node")
	assert.Contains(t, out, "FunctionReturn Node")
	assert.Contains(t, out, "Arithmetic Node (* -> int)")
	assert.Contains(t, out, "Variable Node")
}

// TestPrintingVisitor_Statements covers declare, assign, and print.
func TestPrintingVisitor_Statements(t *testing.T) {

	src := `function f() void
{
	let a int = 1 + 2;
	set a = 3;
	print a == 3;
}`
	root, diagnostics := parser.ParseRoot(src)
	assert.Equal(t, 0, len(diagnostics))

	visitor := &PrintingVisitor{}
	visitor.VisitRoot(root)
	out := visitor.String()

	assert.Contains(t, out, "Declare Node")
	assert.Contains(t, out, "Assign Node")
	assert.Contains(t, out, "Print Node")
	assert.Contains(t, out, "Arithmetic Node (+ -> int)")
	assert.Contains(t, out, "Comparison Node (== -> bool)")
	assert.Contains(t, out, "Literal Node (1 int)")
}

// TestPrintingVisitor_Indentation checks that children render deeper
// than their parents.
func TestPrintingVisitor_Indentation(t *testing.T) {

	src := `function f() int;`
	root, diagnostics := parser.ParseRoot(src)
	assert.Equal(t, 0, len(diagnostics))

	visitor := &PrintingVisitor{}
	visitor.VisitRoot(root)

	lines := strings.Split(strings.TrimRight(visitor.String(), "\n"), "\n")
	assert.Equal(t, 2, len(lines))
	assert.False(t, strings.HasPrefix(lines[0], " "))
	assert.True(t, strings.HasPrefix(lines[1], strings.Repeat(" ", INDENT_SIZE)))
	assert.Contains(t, lines[1], "FunctionDeclare Node")
}
