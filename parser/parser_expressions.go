package parser

import (
	"github.com/knettia/faren-canon/ast"
	"github.com/knettia/faren-canon/lexer"
	"github.com/knettia/faren-canon/types"
)

// exprOperator is the parser's internal tag for a binary operator on
// the shunting-yard operator stack.
type exprOperator int

const (
	opAdd exprOperator = iota
	opSub
	opMul
	opDiv
	opEq
	opNeq
	opGt
	opGte
	opLt
	opLte
	opAnd
	opOr
)

// precedenceOf returns the binding strength of an operator; higher
// binds tighter. All operators are left-associative.
func precedenceOf(op exprOperator) int {
	switch op {
	case opMul, opDiv:
		return 3
	case opAdd, opSub:
		return 2
	case opGt, opGte, opLt, opLte, opEq, opNeq:
		return 1
	default: // opAnd, opOr
		return 0
	}
}

// applyOperator reduces the top of the output stack under op: it pops
// the right then the left operand and pushes the composite node.
// Returns the new stack, or ok=false when operands are missing.
func applyOperator(op exprOperator, stack []ast.Expression) ([]ast.Expression, bool) {
	if len(stack) < 2 {
		return stack, false
	}
	rhs := stack[len(stack)-1]
	lhs := stack[len(stack)-2]
	stack = stack[:len(stack)-2]

	switch op {
	case opAdd, opSub, opMul, opDiv:
		arithOp := map[exprOperator]types.ArithmeticOperation{
			opAdd: types.Add,
			opSub: types.Subtract,
			opMul: types.Multiply,
			opDiv: types.Divide,
		}[op]

		// TODO: validate the operand vtypes before building the node;
		// `1 + true` currently parses.
		stack = append(stack, &ast.ArithmeticExpression{
			ResultType: types.Integer,
			Op:         arithOp,
			Left:       lhs,
			Right:      rhs,
		})

	case opEq, opNeq, opGt, opGte, opLt, opLte:
		cmpOp := map[exprOperator]types.ComparisonOperation{
			opEq:  types.IsEqual,
			opNeq: types.IsNotEqual,
			opGt:  types.IsGreater,
			opGte: types.IsGreaterOrEqual,
			opLt:  types.IsLess,
			opLte: types.IsLessOrEqual,
		}[op]

		stack = append(stack, &ast.ComparisonExpression{
			Op:    cmpOp,
			Left:  lhs,
			Right: rhs,
		})

	default: // opAnd, opOr
		boolOp := types.And
		if op == opOr {
			boolOp = types.Or
		}

		stack = append(stack, &ast.BooleanExpression{
			Op:    boolOp,
			Left:  lhs,
			Right: rhs,
		})
	}

	return stack, true
}

// pushOperator reduces the operator stack while its top binds at least
// as tightly as op (left associativity), then pushes op. Returns the
// updated stacks, or ok=false when a reduction ran out of operands.
func pushOperator(op exprOperator, operators []exprOperator, output []ast.Expression) ([]exprOperator, []ast.Expression, bool) {
	prec := precedenceOf(op)
	for len(operators) > 0 {
		top := operators[len(operators)-1]
		if prec > precedenceOf(top) {
			break
		}
		operators = operators[:len(operators)-1]
		var ok bool
		output, ok = applyOperator(top, output)
		if !ok {
			return operators, output, false
		}
	}
	return append(operators, op), output, true
}

// parseExpression runs the shunting-yard algorithm over the context's
// token window and returns the single expression it reduces to, or nil
// with diagnostics recorded.
//
// Operands are literals, variable references, parenthesized
// sub-expressions (parsed recursively on the balanced sub-window), and
// `invoke` function calls. A structural error resynchronizes the
// context's remaining tokens like any statement-level error would.
func (pc *parserContext) parseExpression() ast.Expression {
	firstToken, hasFirst := pc.peekToken()
	if !hasFirst {
		return nil
	}

	output := make([]ast.Expression, 0)
	operators := make([]exprOperator, 0)

	for {
		token, ok := pc.popToken()
		if !ok {
			break
		}

		switch token.Type {
		case lexer.INT_LIT_TYPE:
			output = append(output, &ast.LiteralExpression{Literal: ast.NewIntegerLiteral(token.IntValue)})

		case lexer.BOOL_LIT_TYPE:
			output = append(output, &ast.LiteralExpression{Literal: ast.NewBooleanLiteral(token.BoolValue)})

		case lexer.ARITHMETIC_TYPE:
			var op exprOperator
			switch token.ArithmeticOp {
			case types.Add:
				op = opAdd
			case types.Subtract:
				op = opSub
			case types.Multiply:
				op = opMul
			default:
				op = opDiv
			}

			operators, output, ok = pushOperator(op, operators, output)
			if !ok {
				pc.fail(token.Info, "missing operand for operator `%s` in expression", token.ArithmeticOp)
				return nil
			}

		case lexer.COMPARISON_TYPE:
			var op exprOperator
			switch token.ComparisonOp {
			case types.IsEqual:
				op = opEq
			case types.IsNotEqual:
				op = opNeq
			case types.IsGreater:
				op = opGt
			case types.IsGreaterOrEqual:
				op = opGte
			case types.IsLess:
				op = opLt
			default:
				op = opLte
			}

			operators, output, ok = pushOperator(op, operators, output)
			if !ok {
				pc.fail(token.Info, "missing operand for operator `%s` in expression", token.ComparisonOp)
				return nil
			}

		case lexer.BOOLEAN_TYPE:
			op := opAnd
			if token.BooleanOp == types.Or {
				op = opOr
			}

			operators, output, ok = pushOperator(op, operators, output)
			if !ok {
				pc.fail(token.Info, "missing operand for operator `%s` in expression", token.BooleanOp)
				return nil
			}

		case lexer.SYMBOL_TYPE:
			switch token.Symbol {
			case types.LeftParen:
				inner, balanced := pc.collectBalanced(types.LeftParen, types.RightParen)
				if !balanced {
					pc.fail(token.Info, "no close parenthesis found for expression")
					return nil
				}

				sub := pc.subContext(inner)
				innerExpr := sub.parseExpression()
				pc.merge(sub)

				if innerExpr == nil {
					pc.fail(token.Info, "no inner expression parsed")
					return nil
				}

				output = append(output, innerExpr)

			case types.RightParen:
				pc.fail(token.Info, "expected a matched right parenthesis")
				return nil

			default:
				pc.fail(token.Info, "expected symbol `%s` at beginning of expression, got `%s`", types.LeftParen, token.Symbol)
				return nil
			}

		case lexer.IDENTIFIER_TYPE:
			if token.Name == "invoke" {
				call := pc.parseFunctionCall(token)
				if call == nil {
					return nil
				}
				output = append(output, call)
			} else {
				id, declared := pc.symbols.GetID(token.Name)
				if !declared {
					pc.fail(token.Info, "identifier `%s` not declared in the current scope", token.Name)
					return nil
				}

				vtype, _ := pc.symbols.Lookup(token.Name)
				output = append(output, &ast.VariableExpression{Type: vtype, ID: id})
			}

		default:
			pc.fail(token.Info, "unexpected token `%s` in expression", token.Type)
			return nil
		}
	}

	for len(operators) > 0 {
		op := operators[len(operators)-1]
		operators = operators[:len(operators)-1]

		var ok bool
		output, ok = applyOperator(op, output)
		if !ok {
			pc.fail(firstToken.Info, "missing operand in expression")
			return nil
		}
	}

	if len(output) != 1 {
		pc.fail(firstToken.Info, "shunting yard algorithm failed, stack expected to finish with one expression, got %d", len(output))
		return nil
	}

	return output[0]
}

// parseFunctionCall parses `invoke <name>(<args>)`, with invokeToken
// already consumed. The callee must be registered and the argument
// count must match its arity; argument windows are split on top-level
// commas and parsed recursively. Argument vtypes are not checked here.
func (pc *parserContext) parseFunctionCall(invokeToken lexer.Token) ast.Expression {
	nameToken, ok := pc.nextToken(invokeToken.Info, "an identifier token")
	if !ok {
		return nil
	}

	if nameToken.Type != lexer.IDENTIFIER_TYPE {
		pc.fail(nameToken.Info, "expected identifier token after `invoke`")
		return nil
	}
	funcName := nameToken.Name

	sign, declared := pc.symbols.GetFunction(funcName)
	if !declared {
		pc.fail(nameToken.Info, "function `%s` not declared in the current module", funcName)
		return nil
	}

	beginToken, ok := pc.nextToken(nameToken.Info, "a symbol token")
	if !ok {
		return nil
	}

	if beginToken.Type != lexer.SYMBOL_TYPE {
		pc.fail(beginToken.Info, "expected a symbol token to begin param list")
		return nil
	}
	if beginToken.Symbol != types.LeftParen {
		pc.fail(beginToken.Info, "expected symbol `%s` to begin param list, got `%s`", types.LeftParen, beginToken.Symbol)
		return nil
	}

	inner, balanced := pc.collectBalanced(types.LeftParen, types.RightParen)
	if !balanced {
		pc.fail(beginToken.Info, "no close function param list")
		return nil
	}

	// Split the inside on top-level commas; commas nested in
	// parentheses belong to inner argument expressions.
	windows := make([][]lexer.Token, 0)
	current := make([]lexer.Token, 0)
	depth := 0

	for _, sub := range inner {
		if sub.Type == lexer.SYMBOL_TYPE {
			switch sub.Symbol {
			case types.LeftParen:
				depth++
			case types.RightParen:
				depth--
			case types.Comma:
				if depth == 0 {
					windows = append(windows, current)
					current = make([]lexer.Token, 0)
					continue
				}
			}
		}
		current = append(current, sub)
	}
	if len(current) != 0 {
		windows = append(windows, current)
	}

	if len(windows) != len(sign.Parameters) {
		pc.fail(beginToken.Info, "mismatched argument length, expected %d, got %d", len(sign.Parameters), len(windows))
		return nil
	}

	arguments := make([]ast.Expression, 0, len(windows))
	for _, window := range windows {
		if len(window) == 0 {
			pc.fail(beginToken.Info, "no expression parsed for argument")
			return nil
		}

		sub := pc.subContext(window)
		expr := sub.parseExpression()
		pc.merge(sub)

		if expr == nil {
			pc.fail(window[0].Info, "no expression parsed for argument")
			return nil
		}

		arguments = append(arguments, expr)
	}

	return &ast.FunctionCallExpression{
		ReturnType: sign.ReturnType,
		Name:       funcName,
		Arguments:  arguments,
	}
}
