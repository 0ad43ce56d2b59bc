package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/knettia/faren-canon/ast"
	"github.com/knettia/faren-canon/types"
)

// hasDiagnostic reports whether any diagnostic message contains needle.
func hasDiagnostic(diagnostics []Diagnostic, needle string) bool {
	for _, d := range diagnostics {
		if strings.Contains(d.Message, needle) {
			return true
		}
	}
	return false
}

// functionBody unwraps the body of a FunctionDefineStatement.
func functionBody(t *testing.T, statement ast.Statement) *ast.CompoundStatement {
	t.Helper()
	define, ok := statement.(*ast.FunctionDefineStatement)
	if !assert.True(t, ok, "expected FunctionDefineStatement, got %T", statement) {
		t.FailNow()
	}
	return define.Body
}

func TestParseRoot_FunctionDefine(t *testing.T) {

	source := `
function square(x int) int
{
	return x * x;
}
`
	root, diagnostics := ParseRoot(source)

	assert.Equal(t, 0, len(diagnostics))
	assert.Equal(t, 1, len(root.Statements))

	define, ok := root.Statements[0].(*ast.FunctionDefineStatement)
	assert.True(t, ok)

	sign := define.Signature
	assert.Equal(t, "square", sign.Name)
	assert.Equal(t, types.Integer, sign.ReturnType)
	assert.Equal(t, 1, len(sign.Parameters))
	assert.Equal(t, types.Integer, sign.Parameters[0].VType)
	paramID := sign.Parameters[0].ID

	assert.Equal(t, 1, len(define.Body.Statements))
	ret, ok := define.Body.Statements[0].(*ast.FunctionReturnStatement)
	assert.True(t, ok)

	mul, ok := ret.Expression.(*ast.ArithmeticExpression)
	assert.True(t, ok)
	assert.Equal(t, types.Multiply, mul.Op)
	assert.Equal(t, types.Integer, mul.VType())

	left, ok := mul.Left.(*ast.VariableExpression)
	assert.True(t, ok)
	right, ok := mul.Right.(*ast.VariableExpression)
	assert.True(t, ok)
	assert.Equal(t, paramID, left.ID)
	assert.Equal(t, paramID, right.ID)
	assert.Equal(t, types.Integer, left.Type)
}

func TestParseRoot_FunctionDeclare(t *testing.T) {

	root, diagnostics := ParseRoot(`function square(x int) int;`)

	assert.Equal(t, 0, len(diagnostics))
	assert.Equal(t, 1, len(root.Statements))

	declare, ok := root.Statements[0].(*ast.FunctionDeclareStatement)
	assert.True(t, ok)
	assert.Equal(t, "square", declare.Signature.Name)
	assert.Equal(t, types.Integer, declare.Signature.ReturnType)
	assert.Equal(t, 1, len(declare.Signature.Parameters))
}

func TestParseRoot_LetNotAllowedAtTopLevel(t *testing.T) {

	root, diagnostics := ParseRoot("\nlet x int = 10;")

	assert.Equal(t, 0, len(root.Statements))
	assert.True(t, len(diagnostics) > 0)
	assert.True(t, hasDiagnostic(diagnostics, "`let` statement is not allowed here"))

	first := diagnostics[0]
	assert.Equal(t, 2, first.Line)
	assert.Equal(t, 1, first.ColumnBegin)
	assert.Equal(t, "let x int = 10;", first.ContextLine)
}

func TestParseRoot_OperatorPrecedence(t *testing.T) {

	source := `
function f() int
{
	return 1 + 2 * 3 - 4;
}
`
	root, diagnostics := ParseRoot(source)

	assert.Equal(t, 0, len(diagnostics))
	body := functionBody(t, root.Statements[0])
	ret := body.Statements[0].(*ast.FunctionReturnStatement)

	// ((1 + (2 * 3)) - 4)
	sub, ok := ret.Expression.(*ast.ArithmeticExpression)
	assert.True(t, ok)
	assert.Equal(t, types.Subtract, sub.Op)

	add, ok := sub.Left.(*ast.ArithmeticExpression)
	assert.True(t, ok)
	assert.Equal(t, types.Add, add.Op)

	lit4, ok := sub.Right.(*ast.LiteralExpression)
	assert.True(t, ok)
	assert.Equal(t, int32(4), lit4.Literal.Int)

	lit1, ok := add.Left.(*ast.LiteralExpression)
	assert.True(t, ok)
	assert.Equal(t, int32(1), lit1.Literal.Int)

	mul, ok := add.Right.(*ast.ArithmeticExpression)
	assert.True(t, ok)
	assert.Equal(t, types.Multiply, mul.Op)

	lit2 := mul.Left.(*ast.LiteralExpression)
	lit3 := mul.Right.(*ast.LiteralExpression)
	assert.Equal(t, int32(2), lit2.Literal.Int)
	assert.Equal(t, int32(3), lit3.Literal.Int)
}

func TestParseRoot_LeftAssociativity(t *testing.T) {

	source := `
function f() int
{
	return 10 - 4 - 3;
}
`
	root, diagnostics := ParseRoot(source)

	assert.Equal(t, 0, len(diagnostics))
	body := functionBody(t, root.Statements[0])
	ret := body.Statements[0].(*ast.FunctionReturnStatement)

	// ((10 - 4) - 3)
	outer := ret.Expression.(*ast.ArithmeticExpression)
	assert.Equal(t, types.Subtract, outer.Op)

	inner, ok := outer.Left.(*ast.ArithmeticExpression)
	assert.True(t, ok)
	assert.Equal(t, types.Subtract, inner.Op)
	assert.Equal(t, int32(3), outer.Right.(*ast.LiteralExpression).Literal.Int)
}

func TestParseRoot_ParenthesizedExpression(t *testing.T) {

	source := `
function f() int
{
	return (1 + 2) * 3;
}
`
	root, diagnostics := ParseRoot(source)

	assert.Equal(t, 0, len(diagnostics))
	body := functionBody(t, root.Statements[0])
	ret := body.Statements[0].(*ast.FunctionReturnStatement)

	mul := ret.Expression.(*ast.ArithmeticExpression)
	assert.Equal(t, types.Multiply, mul.Op)

	add, ok := mul.Left.(*ast.ArithmeticExpression)
	assert.True(t, ok)
	assert.Equal(t, types.Add, add.Op)
}

func TestParseRoot_ComparisonAndBoolean(t *testing.T) {

	source := `
function f() bool
{
	return 1 < 2 and 3 >= 4;
}
`
	root, diagnostics := ParseRoot(source)

	assert.Equal(t, 0, len(diagnostics))
	body := functionBody(t, root.Statements[0])
	ret := body.Statements[0].(*ast.FunctionReturnStatement)

	and, ok := ret.Expression.(*ast.BooleanExpression)
	assert.True(t, ok)
	assert.Equal(t, types.And, and.Op)
	assert.Equal(t, types.Boolean, and.VType())

	less, ok := and.Left.(*ast.ComparisonExpression)
	assert.True(t, ok)
	assert.Equal(t, types.IsLess, less.Op)

	gte, ok := and.Right.(*ast.ComparisonExpression)
	assert.True(t, ok)
	assert.Equal(t, types.IsGreaterOrEqual, gte.Op)
}

func TestParseRoot_InvokeArityMismatch(t *testing.T) {

	source := `
function f(a int, b int) int;
function g() int { return invoke f(1); }
`
	root, diagnostics := ParseRoot(source)

	assert.True(t, hasDiagnostic(diagnostics, "mismatched argument length, expected 2, got 1"))

	// g still parses, but the bad return contributes nothing.
	assert.Equal(t, 2, len(root.Statements))
	body := functionBody(t, root.Statements[1])
	assert.Equal(t, 0, len(body.Statements))
}

func TestParseRoot_InvokeCall(t *testing.T) {

	source := `
function add(a int, b int) int;
function g() int
{
	return invoke add(invoke add(1, 2), 3);
}
`
	root, diagnostics := ParseRoot(source)

	assert.Equal(t, 0, len(diagnostics))
	body := functionBody(t, root.Statements[1])
	ret := body.Statements[0].(*ast.FunctionReturnStatement)

	outer, ok := ret.Expression.(*ast.FunctionCallExpression)
	assert.True(t, ok)
	assert.Equal(t, "add", outer.Name)
	assert.Equal(t, types.Integer, outer.ReturnType)
	assert.Equal(t, 2, len(outer.Arguments))

	// The nested call's comma stays inside the first argument window.
	inner, ok := outer.Arguments[0].(*ast.FunctionCallExpression)
	assert.True(t, ok)
	assert.Equal(t, 2, len(inner.Arguments))

	lit3, ok := outer.Arguments[1].(*ast.LiteralExpression)
	assert.True(t, ok)
	assert.Equal(t, int32(3), lit3.Literal.Int)
}

func TestParseRoot_InvokeUndeclaredFunction(t *testing.T) {

	source := `
function g() int { return invoke missing(); }
`
	_, diagnostics := ParseRoot(source)

	assert.True(t, hasDiagnostic(diagnostics, "function `missing` not declared in the current module"))
}

func TestParseRoot_UnknownIdentifierInExpression(t *testing.T) {

	source := `
function f() int
{
	let y int = z;
}
`
	root, diagnostics := ParseRoot(source)

	assert.True(t, hasDiagnostic(diagnostics, "identifier `z` not declared in the current scope"))

	body := functionBody(t, root.Statements[0])
	for _, statement := range body.Statements {
		_, isDeclare := statement.(*ast.DeclareStatement)
		assert.False(t, isDeclare)
	}
}

func TestParseRoot_DeclareNotSelfVisible(t *testing.T) {

	source := `
function f() int
{
	let a int = a;
}
`
	_, diagnostics := ParseRoot(source)

	assert.True(t, hasDiagnostic(diagnostics, "identifier `a` not declared in the current scope"))
}

func TestParseRoot_VoidVariableRejected(t *testing.T) {

	source := `
function f() int
{
	let x void = 1;
}
`
	_, diagnostics := ParseRoot(source)

	assert.True(t, hasDiagnostic(diagnostics, "variable `x` has incomplete type `void`"))
}

func TestParseRoot_DeclareAndAssignShareID(t *testing.T) {

	source := `
function f() int
{
	let a int = 1;
	set a = 2;
}
`
	root, diagnostics := ParseRoot(source)

	assert.Equal(t, 0, len(diagnostics))
	body := functionBody(t, root.Statements[0])
	assert.Equal(t, 2, len(body.Statements))

	declare := body.Statements[0].(*ast.DeclareStatement)
	assign := body.Statements[1].(*ast.AssignStatement)
	assert.Equal(t, declare.ID, assign.ID)
}

func TestParseRoot_SetUndeclared(t *testing.T) {

	source := `
function f() int
{
	set a = 2;
}
`
	_, diagnostics := ParseRoot(source)

	assert.True(t, hasDiagnostic(diagnostics, "identifier `a` not declared in the current scope"))
}

func TestParseRoot_ShadowingInNestedCompound(t *testing.T) {

	source := `
function f() int
{
	let a int = 1;
	{
		let a bool = true;
		set a = false;
	}
	set a = 2;
}
`
	root, diagnostics := ParseRoot(source)

	assert.Equal(t, 0, len(diagnostics))
	body := functionBody(t, root.Statements[0])
	assert.Equal(t, 3, len(body.Statements))

	outerDeclare := body.Statements[0].(*ast.DeclareStatement)
	nested := body.Statements[1].(*ast.CompoundStatement)
	outerAssign := body.Statements[2].(*ast.AssignStatement)

	innerDeclare := nested.Statements[0].(*ast.DeclareStatement)
	innerAssign := nested.Statements[1].(*ast.AssignStatement)

	// The shadow gets a fresh ID; the outer assignment still resolves
	// to the original.
	assert.NotEqual(t, outerDeclare.ID, innerDeclare.ID)
	assert.Equal(t, innerDeclare.ID, innerAssign.ID)
	assert.Equal(t, outerDeclare.ID, outerAssign.ID)
	assert.Equal(t, types.Boolean, innerDeclare.VType)
}

func TestParseRoot_ReturnWithoutExpression(t *testing.T) {

	source := `
function f() void
{
	return;
}
`
	root, diagnostics := ParseRoot(source)

	assert.Equal(t, 0, len(diagnostics))
	body := functionBody(t, root.Statements[0])
	ret := body.Statements[0].(*ast.FunctionReturnStatement)
	assert.Nil(t, ret.Expression)
}

func TestParseRoot_ReturnNotAllowedAtTopLevel(t *testing.T) {

	_, diagnostics := ParseRoot(`return 1;`)

	assert.True(t, hasDiagnostic(diagnostics, "`return` statement is not allowed here"))
}

func TestParseRoot_FunctionNotAllowedNested(t *testing.T) {

	source := `
function f() int
{
	function g() int;
}
`
	_, diagnostics := ParseRoot(source)

	assert.True(t, hasDiagnostic(diagnostics, "function declaration or definition is not allowed here"))
}

func TestParseRoot_ZeroParameterFunction(t *testing.T) {

	root, diagnostics := ParseRoot(`function f() void;`)

	assert.Equal(t, 0, len(diagnostics))
	declare := root.Statements[0].(*ast.FunctionDeclareStatement)
	assert.Equal(t, 0, len(declare.Signature.Parameters))
	assert.Equal(t, types.Void, declare.Signature.ReturnType)
}

func TestParseRoot_TrailingCommaInParameters(t *testing.T) {

	_, diagnostics := ParseRoot(`function f(a int,) int;`)

	assert.True(t, len(diagnostics) > 0)
}

func TestParseRoot_DuplicateFunctionName(t *testing.T) {

	source := `
function f() int;
function f() int;
`
	root, diagnostics := ParseRoot(source)

	assert.True(t, hasDiagnostic(diagnostics, "function `f` already defined"))
	assert.Equal(t, 1, len(root.Statements))
}

func TestParseRoot_RecoveryContinuesAfterBadStatement(t *testing.T) {

	source := `
function f() int
{
	junk;
	print 1;
}
`
	root, diagnostics := ParseRoot(source)

	assert.True(t, hasDiagnostic(diagnostics, "unexpected identifier `junk` when beginning a statement"))

	body := functionBody(t, root.Statements[0])
	assert.Equal(t, 1, len(body.Statements))
	_, isPrint := body.Statements[0].(*ast.PrintStatement)
	assert.True(t, isPrint)
}

func TestParseRoot_UnbalancedParenthesis(t *testing.T) {

	source := `
function f() int
{
	print (1;
}
`
	_, diagnostics := ParseRoot(source)

	assert.True(t, hasDiagnostic(diagnostics, "no close parenthesis found for expression"))
}

func TestParseRoot_UnmatchedRightParenthesis(t *testing.T) {

	source := `
function f() int
{
	print ) 1;
}
`
	_, diagnostics := ParseRoot(source)

	assert.True(t, hasDiagnostic(diagnostics, "expected a matched right parenthesis"))
}

func TestParseRoot_UnbalancedBraces(t *testing.T) {

	source := `
function f() int
{
	print 1;
`
	_, diagnostics := ParseRoot(source)

	assert.True(t, hasDiagnostic(diagnostics, "no close braces found for compound statement"))
}

func TestParseRoot_ExpressStatement(t *testing.T) {

	source := `
function f() void;
function g() void
{
	express invoke f();
}
`
	root, diagnostics := ParseRoot(source)

	assert.Equal(t, 0, len(diagnostics))
	body := functionBody(t, root.Statements[1])
	express := body.Statements[0].(*ast.ExpressionStatement)

	call, ok := express.Expression.(*ast.FunctionCallExpression)
	assert.True(t, ok)
	assert.Equal(t, "f", call.Name)
	assert.Equal(t, types.Void, call.VType())
}

func TestParseRoot_EmptySource(t *testing.T) {

	root, diagnostics := ParseRoot("")

	assert.Equal(t, 0, len(root.Statements))
	assert.Equal(t, 0, len(diagnostics))
}

func TestParseRoot_DiagnosticSpansAreSane(t *testing.T) {

	source := `
let a int = 1;
function f() int
{
	set b = 2;
	print (3;
}
`
	_, diagnostics := ParseRoot(source)

	assert.True(t, len(diagnostics) > 0)
	for _, d := range diagnostics {
		assert.True(t, d.Line >= 1)
		assert.True(t, d.ColumnBegin >= 1)
		assert.True(t, d.ColumnBegin <= d.ColumnEnd)
	}
}

func TestParseRoot_MissingOperand(t *testing.T) {

	source := `
function f() int
{
	return 1 + ;
}
`
	_, diagnostics := ParseRoot(source)

	assert.True(t, len(diagnostics) > 0)
}
