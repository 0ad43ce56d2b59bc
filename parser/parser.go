// Package parser turns faren source text into a program tree plus a
// list of diagnostics. ParseRoot is the entry point; it is total, always
// returning both a tree and whatever diagnostics were collected.
//
// Parsing is recursive descent over a token queue. Statements that fail
// to parse are reported and dropped, and the parser resynchronizes at
// the next `;` or `}` so one mistake does not hide the rest of the
// file. Bracketed regions (parenthesized expressions, argument lists,
// compound statements) are extracted as balanced token windows and
// parsed in sub-contexts whose diagnostics merge back into the parent.
package parser

import (
	"fmt"
	"strings"

	"github.com/knettia/faren-canon/ast"
	"github.com/knettia/faren-canon/lexer"
	"github.com/knettia/faren-canon/scope"
	"github.com/knettia/faren-canon/types"
)

// parserContext owns the state of one parse: the source (for diagnostic
// context lines), the token queue consumed from the front, the symbols
// table, and the diagnostics collected so far.
type parserContext struct {
	source      string
	tokens      []lexer.Token
	symbols     *scope.SymbolsTable
	diagnostics []Diagnostic
}

// subContext builds a context over a pre-extracted token window with a
// clone of the symbols table. Diagnostics are merged back with merge.
func (pc *parserContext) subContext(tokens []lexer.Token) *parserContext {
	return &parserContext{
		source:  pc.source,
		tokens:  tokens,
		symbols: pc.symbols.Clone(),
	}
}

// merge appends a sub-context's diagnostics to this context.
func (pc *parserContext) merge(sub *parserContext) {
	pc.diagnostics = append(pc.diagnostics, sub.diagnostics...)
}

// popToken removes and returns the front token.
func (pc *parserContext) popToken() (lexer.Token, bool) {
	if len(pc.tokens) == 0 {
		return lexer.Token{}, false
	}
	tok := pc.tokens[0]
	pc.tokens = pc.tokens[1:]
	return tok, true
}

// peekToken returns the front token without consuming it.
func (pc *parserContext) peekToken() (lexer.Token, bool) {
	if len(pc.tokens) == 0 {
		return lexer.Token{}, false
	}
	return pc.tokens[0], true
}

// pushToken reinserts a token at the front of the queue.
func (pc *parserContext) pushToken(tok lexer.Token) {
	pc.tokens = append([]lexer.Token{tok}, pc.tokens...)
}

// contextLine returns the 1-based source line, or "" when out of range.
func (pc *parserContext) contextLine(line int) string {
	lines := strings.Split(pc.source, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// recordError appends a diagnostic anchored at info.
func (pc *parserContext) recordError(message string, info lexer.TokenInfo) {
	pc.diagnostics = append(pc.diagnostics, Diagnostic{
		Message:     message,
		Line:        info.Line,
		ColumnBegin: info.ColumnBegin,
		ColumnEnd:   info.ColumnEnd,
		ContextLine: pc.contextLine(info.Line),
	})
}

// recoverTokenStream drops tokens until a `;` or `}` has been consumed,
// resynchronizing the queue at a statement boundary. The terminator
// itself is discarded too.
func (pc *parserContext) recoverTokenStream() {
	for {
		tok, ok := pc.popToken()
		if !ok {
			return
		}
		if tok.Type != lexer.SYMBOL_TYPE {
			continue
		}
		switch tok.Symbol {
		case types.Semicolon, types.RightBrace:
			return
		}
	}
}

// fail records a diagnostic and resynchronizes. Callers return nil
// right after.
func (pc *parserContext) fail(info lexer.TokenInfo, format string, args ...interface{}) {
	pc.recordError(fmt.Sprintf(format, args...), info)
	pc.recoverTokenStream()
}

// nextToken pops the front token, or reports end-of-tokens against the
// last good span and clears the queue. expected describes what should
// have been there.
func (pc *parserContext) nextToken(last lexer.TokenInfo, expected string) (lexer.Token, bool) {
	tok, ok := pc.popToken()
	if !ok {
		pc.recordError("tokens should not end here, expected "+expected, last)
		pc.tokens = nil
		return lexer.Token{}, false
	}
	return tok, true
}

// collectBalanced consumes tokens until the open/close symbol pair
// balances out, assuming the opener was already consumed. It returns
// the inner tokens, without the matching closer. ok is false when the
// queue ran out before the pair balanced; the consumed tokens are not
// restored.
func (pc *parserContext) collectBalanced(open, close types.Symbol) ([]lexer.Token, bool) {
	depth := 1
	inner := make([]lexer.Token, 0)

	for {
		tok, ok := pc.popToken()
		if !ok {
			return inner, false
		}

		if tok.Type == lexer.SYMBOL_TYPE {
			switch tok.Symbol {
			case open:
				depth++
			case close:
				depth--
				if depth == 0 {
					return inner, true
				}
			}
		}

		inner = append(inner, tok)
	}
}

// collectUntilSemicolon consumes tokens up to the next `;`. The `;` is
// consumed but not returned; an exhausted queue also ends the window.
func (pc *parserContext) collectUntilSemicolon() []lexer.Token {
	window := make([]lexer.Token, 0)
	for {
		tok, ok := pc.peekToken()
		if !ok {
			return window
		}
		pc.popToken()
		if tok.Type == lexer.SYMBOL_TYPE && tok.Symbol == types.Semicolon {
			return window
		}
		window = append(window, tok)
	}
}

// ParseRoot parses a complete source text. It returns the program tree
// of top-level statements that parsed successfully, in source order,
// and every diagnostic collected along the way. It never panics; a
// source with no valid productions yields an empty tree.
func ParseRoot(source string) (*ast.Root, []Diagnostic) {
	lx := lexer.NewLexer(source)
	tokens := lx.ConsumeTokens()

	pc := &parserContext{
		source:  source,
		tokens:  tokens,
		symbols: scope.NewSymbolsTable(),
	}

	pc.symbols.PushScope()

	root := ast.NewRoot()
	for len(pc.tokens) > 0 {
		if statement := pc.parseStatement(true); statement != nil {
			root.Add(statement)
		}
	}

	return root, pc.diagnostics
}
