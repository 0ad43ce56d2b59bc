package parser

import (
	"github.com/knettia/faren-canon/ast"
	"github.com/knettia/faren-canon/lexer"
	"github.com/knettia/faren-canon/types"
)

// parseStatement parses exactly one statement from the front of the
// token queue and returns it, or nil after recording diagnostics and
// resynchronizing. Dispatch is on the leading token: `{` starts a
// compound statement, and an identifier is matched against the
// statement keywords; anything else cannot begin a statement.
//
// manageScope controls whether a compound statement opens its own
// scope. Function bodies pass false because the parameter scope is
// already open and the parameters must stay visible inside the body.
func (pc *parserContext) parseStatement(manageScope bool) ast.Statement {
	token, ok := pc.popToken()
	if !ok {
		return nil
	}

	switch token.Type {
	case lexer.SYMBOL_TYPE:
		if token.Symbol != types.LeftBrace {
			pc.fail(token.Info, "expected symbol `%s` when beginning a statement, got `%s`", types.LeftBrace, token.Symbol)
			return nil
		}
		return pc.parseCompound(token, manageScope)

	case lexer.IDENTIFIER_TYPE:
		switch token.Name {
		case "function":
			return pc.parseFunction(token)
		case "return":
			return pc.parseReturn(token)
		case "let":
			return pc.parseLet(token)
		case "set":
			return pc.parseSet(token)
		case "print":
			return pc.parsePrint(token)
		case "express":
			return pc.parseExpress(token)
		default:
			pc.fail(token.Info, "unexpected identifier `%s` when beginning a statement", token.Name)
			return nil
		}

	default:
		pc.fail(token.Info, "unexpected token `%s` when beginning a statement", token.Type)
		return nil
	}
}

// parseCompound parses the statements inside a `{` ... `}` pair, with
// the opening brace already consumed. The inner window is parsed in a
// sub-context; its symbols table (and therefore its ID counter) is
// adopted back so IDs stay globally unique.
func (pc *parserContext) parseCompound(braceToken lexer.Token, manageScope bool) ast.Statement {
	inner, balanced := pc.collectBalanced(types.LeftBrace, types.RightBrace)
	if !balanced {
		pc.fail(braceToken.Info, "no close braces found for compound statement")
		return nil
	}

	sub := pc.subContext(inner)

	if manageScope {
		sub.symbols.PushScope()
	}

	statements := make([]ast.Statement, 0)
	for len(sub.tokens) > 0 {
		if statement := sub.parseStatement(true); statement != nil {
			statements = append(statements, statement)
		}
	}

	if manageScope {
		sub.symbols.PopScope()
	}

	pc.merge(sub)
	pc.symbols = sub.symbols

	return &ast.CompoundStatement{Statements: statements}
}

// parseFunction parses a function declaration or definition, with the
// `function` keyword already consumed:
//
//	function <name>(<ident type>, ...) <type>;    declaration
//	function <name>(<ident type>, ...) <type> {}  definition
//
// Functions are only legal at the top level. The parameters live in a
// scope of their own, pushed before they are defined and popped once
// the declaration or the body ends, so a definition's body sees them.
func (pc *parserContext) parseFunction(funcToken lexer.Token) ast.Statement {
	if pc.symbols.Depth() != 1 {
		pc.fail(funcToken.Info, "function declaration or definition is not allowed here")
		return nil
	}

	nameToken, ok := pc.nextToken(funcToken.Info, "an identifier token")
	if !ok {
		return nil
	}
	if nameToken.Type != lexer.IDENTIFIER_TYPE {
		pc.fail(nameToken.Info, "expected identifier token after `function`")
		return nil
	}
	funcName := nameToken.Name

	openToken, ok := pc.nextToken(nameToken.Info, "a symbol token")
	if !ok {
		return nil
	}
	if openToken.Type != lexer.SYMBOL_TYPE {
		pc.fail(openToken.Info, "expected a symbol token after function identifier in signature")
		return nil
	}
	if openToken.Symbol != types.LeftParen {
		pc.fail(openToken.Info, "expected symbol `%s` to begin parameter list in function signature, got `%s`", types.LeftParen, openToken.Symbol)
		return nil
	}

	// The parameter list does not nest; scan up to the first `)`.
	paramTokens := make([]lexer.Token, 0)
	for {
		next, ok := pc.popToken()
		if !ok {
			break
		}
		if next.Type == lexer.SYMBOL_TYPE && next.Symbol == types.RightParen {
			break
		}
		paramTokens = append(paramTokens, next)
	}

	pc.symbols.PushScope()

	parameters := make([]types.Parameter, 0)
	for len(paramTokens) > 0 {
		identToken := paramTokens[0]
		paramTokens = paramTokens[1:]

		if identToken.Type != lexer.IDENTIFIER_TYPE {
			pc.symbols.PopScope()
			pc.fail(identToken.Info, "expected identifier token")
			return nil
		}
		paramName := identToken.Name

		if len(paramTokens) == 0 {
			pc.symbols.PopScope()
			pc.recordError("tokens should not end here, expected a type token", identToken.Info)
			pc.tokens = nil
			return nil
		}
		typeToken := paramTokens[0]
		paramTokens = paramTokens[1:]

		if typeToken.Type != lexer.TYPE_TYPE {
			pc.symbols.PopScope()
			pc.fail(typeToken.Info, "expected type token after param identifier `%s`", paramName)
			return nil
		}
		paramVType := typeToken.VType

		// A comma ends the entry; absence means this was the last one.
		if len(paramTokens) > 0 {
			commaToken := paramTokens[0]
			paramTokens = paramTokens[1:]

			if commaToken.Type != lexer.SYMBOL_TYPE {
				pc.symbols.PopScope()
				pc.fail(commaToken.Info, "expected symbol token after param type, got `%s`", commaToken.Type)
				return nil
			}
			if commaToken.Symbol != types.Comma {
				pc.symbols.PopScope()
				pc.fail(commaToken.Info, "expected symbol `%s` to end param entry, got `%s`", types.Comma, commaToken.Symbol)
				return nil
			}
			if len(paramTokens) == 0 {
				pc.symbols.PopScope()
				pc.fail(commaToken.Info, "expected param entry after symbol `%s`", types.Comma)
				return nil
			}
		}

		pc.symbols.Define(paramName, paramVType)
		paramID, _ := pc.symbols.GetID(paramName)

		parameters = append(parameters, types.Parameter{ID: paramID, VType: paramVType})
	}

	typeToken, ok := pc.nextToken(nameToken.Info, "a type token")
	if !ok {
		pc.symbols.PopScope()
		return nil
	}
	if typeToken.Type != lexer.TYPE_TYPE {
		pc.symbols.PopScope()
		pc.fail(typeToken.Info, "expected type token to end function signature with identifier `%s`", funcName)
		return nil
	}
	returnType := typeToken.VType

	if err := pc.symbols.DefineFunction(funcName, returnType, parameters); err != nil {
		pc.symbols.PopScope()
		pc.fail(nameToken.Info, "%s", err.Error())
		return nil
	}

	followToken, ok := pc.nextToken(nameToken.Info, "a symbol token")
	if !ok {
		pc.symbols.PopScope()
		return nil
	}
	if followToken.Type != lexer.SYMBOL_TYPE {
		pc.symbols.PopScope()
		pc.fail(followToken.Info, "expected a symbol token after function signature")
		return nil
	}

	sign := types.NewFunctionSignature(funcName, returnType, parameters)

	switch followToken.Symbol {
	case types.Semicolon:
		pc.symbols.PopScope()
		return &ast.FunctionDeclareStatement{Signature: sign}

	case types.LeftBrace:
		// Hand the brace back and parse the body as a compound
		// statement that reuses the parameter scope.
		pc.pushToken(followToken)
		result := pc.parseStatement(false)

		body, isCompound := result.(*ast.CompoundStatement)
		pc.symbols.PopScope()
		if !isCompound {
			return nil
		}

		return &ast.FunctionDefineStatement{Signature: sign, Body: body}

	default:
		pc.symbols.PopScope()
		pc.fail(followToken.Info, "expected symbol `%s` or `%s` after function signature, got `%s`", types.Semicolon, types.LeftBrace, followToken.Symbol)
		return nil
	}
}

// parseExpressionWindow collects tokens up to the terminating `;`,
// parses them in a sub-context, and merges the diagnostics back.
// Returns nil for an empty window or a failed parse; the caller decides
// whether that is an error.
func (pc *parserContext) parseExpressionWindow() ast.Expression {
	window := pc.collectUntilSemicolon()
	if len(window) == 0 {
		return nil
	}

	sub := pc.subContext(window)
	expr := sub.parseExpression()
	pc.merge(sub)
	return expr
}

// parseReturn parses `return <expr>?;` with the keyword consumed.
// Only legal inside a function body. The expression is optional; its
// type is not checked against the enclosing function's return type.
func (pc *parserContext) parseReturn(returnToken lexer.Token) ast.Statement {
	if pc.symbols.Depth() == 1 {
		pc.fail(returnToken.Info, "`return` statement is not allowed here")
		return nil
	}

	window := pc.collectUntilSemicolon()
	if len(window) == 0 {
		return &ast.FunctionReturnStatement{}
	}

	sub := pc.subContext(window)
	expr := sub.parseExpression()
	pc.merge(sub)

	if expr == nil {
		pc.fail(returnToken.Info, "no expression parsed for `return` statement")
		return nil
	}

	return &ast.FunctionReturnStatement{Expression: expr}
}

// parseLet parses `let <ident> <type> = <expr>;` with the keyword
// consumed. The declared type must not be void. The name is registered
// only after the initializer parses, so an initializer cannot refer to
// the variable it declares.
func (pc *parserContext) parseLet(letToken lexer.Token) ast.Statement {
	if pc.symbols.Depth() == 1 {
		pc.fail(letToken.Info, "`let` statement is not allowed here")
		return nil
	}

	nameToken, ok := pc.nextToken(letToken.Info, "an identifier token")
	if !ok {
		return nil
	}
	if nameToken.Type != lexer.IDENTIFIER_TYPE {
		pc.fail(nameToken.Info, "expected identifier token after `let`")
		return nil
	}
	varName := nameToken.Name

	typeToken, ok := pc.nextToken(nameToken.Info, "a type token")
	if !ok {
		return nil
	}
	if typeToken.Type != lexer.TYPE_TYPE {
		pc.fail(typeToken.Info, "expected a type token after identifier `%s`", varName)
		return nil
	}
	varVType := typeToken.VType

	if varVType == types.Void {
		pc.fail(typeToken.Info, "variable `%s` has incomplete type `void`", varName)
		return nil
	}

	eqToken, ok := pc.nextToken(typeToken.Info, "'=' after type token")
	if !ok {
		return nil
	}
	if eqToken.Type != lexer.SYMBOL_TYPE {
		pc.fail(eqToken.Info, "expected symbol `=` after type")
		return nil
	}
	if eqToken.Symbol != types.Equal {
		pc.fail(eqToken.Info, "expected symbol `%s` after type in `let` statement, got `%s`", types.Equal, eqToken.Symbol)
		return nil
	}

	expr := pc.parseExpressionWindow()

	pc.symbols.Define(varName, varVType)

	if expr == nil {
		pc.fail(letToken.Info, "no expression parsed for `let` statement")
		return nil
	}

	varID, _ := pc.symbols.GetID(varName)

	return &ast.DeclareStatement{VType: varVType, ID: varID, Expression: expr}
}

// parseSet parses `set <ident> = <expr>;` with the keyword consumed.
// The identifier must already be declared in the current scope.
func (pc *parserContext) parseSet(setToken lexer.Token) ast.Statement {
	if pc.symbols.Depth() == 1 {
		pc.fail(setToken.Info, "`set` statement is not allowed here")
		return nil
	}

	nameToken, ok := pc.nextToken(setToken.Info, "an identifier token")
	if !ok {
		return nil
	}
	if nameToken.Type != lexer.IDENTIFIER_TYPE {
		pc.fail(nameToken.Info, "expected identifier token after `set`")
		return nil
	}
	varName := nameToken.Name

	varID, declared := pc.symbols.GetID(varName)
	if !declared {
		pc.fail(nameToken.Info, "identifier `%s` not declared in the current scope", varName)
		return nil
	}

	eqToken, ok := pc.nextToken(nameToken.Info, "'=' after identifier token")
	if !ok {
		return nil
	}
	if eqToken.Type != lexer.SYMBOL_TYPE {
		pc.fail(eqToken.Info, "expected symbol `=` after identifier")
		return nil
	}
	if eqToken.Symbol != types.Equal {
		pc.fail(eqToken.Info, "expected symbol `%s` after identifier in `set` statement, got `%s`", types.Equal, eqToken.Symbol)
		return nil
	}

	expr := pc.parseExpressionWindow()
	if expr == nil {
		pc.fail(setToken.Info, "no expression parsed for `set` statement")
		return nil
	}

	return &ast.AssignStatement{ID: varID, Expression: expr}
}

// parsePrint parses `print <expr>;` with the keyword consumed.
func (pc *parserContext) parsePrint(printToken lexer.Token) ast.Statement {
	if pc.symbols.Depth() == 1 {
		pc.fail(printToken.Info, "`print` statement is not allowed here")
		return nil
	}

	expr := pc.parseExpressionWindow()
	if expr == nil {
		pc.fail(printToken.Info, "no expression parsed for `print` statement")
		return nil
	}

	return &ast.PrintStatement{Expression: expr}
}

// parseExpress parses `express <expr>;` with the keyword consumed: an
// expression evaluated as a statement for its side effects.
func (pc *parserContext) parseExpress(expressToken lexer.Token) ast.Statement {
	if pc.symbols.Depth() == 1 {
		pc.fail(expressToken.Info, "`express` statement is not allowed here")
		return nil
	}

	expr := pc.parseExpressionWindow()
	if expr == nil {
		pc.fail(expressToken.Info, "no expression parsed for `express` statement")
		return nil
	}

	return &ast.ExpressionStatement{Expression: expr}
}
