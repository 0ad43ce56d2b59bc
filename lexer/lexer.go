// Package lexer performs lexical analysis of faren source code.
// It scans the source text byte by byte and produces the token stream the
// parser consumes, tracking line and column positions so that every token
// carries an exact source span for diagnostics.
//
// The lexer itself never reports problems: characters it does not
// recognize are skipped, and an integer literal that overflows 32 bits is
// dropped without a token.
package lexer

import (
	"strconv"

	"github.com/knettia/faren-canon/types"
)

// Lexer holds the scanning state: the source text, the cursor position,
// and the 1-based line/column of the cursor.
type Lexer struct {
	Src       string // Entire source text
	Position  int    // Index of the next unread byte
	SrcLength int    // Length of the source text
	Line      int    // Current line number (1-based)
	Column    int    // Current column number (1-based)
}

// NewLexer creates a lexer positioned at the start of src.
func NewLexer(src string) Lexer {
	return Lexer{
		Src:       src,
		Position:  0,
		SrcLength: len(src),
		Line:      1,
		Column:    1,
	}
}

// current returns the byte under the cursor, or 0 at end of input.
func (l *Lexer) current() byte {
	if l.Position >= l.SrcLength {
		return 0
	}
	return l.Src[l.Position]
}

// peek returns the byte after the cursor, or 0 at end of input.
func (l *Lexer) peek() byte {
	if l.Position+1 >= l.SrcLength {
		return 0
	}
	return l.Src[l.Position+1]
}

// advance moves the cursor forward one byte without touching the
// line/column counters; the dispatch loop owns those.
func (l *Lexer) advance() {
	l.Position++
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

// makeInfo builds the span of a token that begins at the current
// line/column and is tokenLen bytes long. ColumnEnd is inclusive.
func (l *Lexer) makeInfo(tokenLen int) TokenInfo {
	return TokenInfo{
		Line:        l.Line,
		ColumnBegin: l.Column,
		ColumnEnd:   l.Column + tokenLen - 1,
	}
}

// NextToken scans and returns the next token in the source.
// Whitespace and unrecognized characters are consumed silently; once the
// source is exhausted an EOF_TYPE token is returned on every call.
func (l *Lexer) NextToken() Token {
	for l.Position < l.SrcLength {
		c := l.current()

		switch {
		case c == ' ' || c == '\t':
			l.Column++
			l.advance()

		case c == '\n':
			l.Line++
			l.Column = 1
			l.advance()

		case c == '+' || c == '-' || c == '*' || c == '/':
			info := l.makeInfo(1)
			l.Column++
			l.advance()

			switch c {
			case '+':
				return NewArithmeticToken(info, types.Add)
			case '-':
				return NewArithmeticToken(info, types.Subtract)
			case '*':
				return NewArithmeticToken(info, types.Multiply)
			default:
				return NewArithmeticToken(info, types.Divide)
			}

		case isDigit(c):
			begin := l.Position
			tokenLen := 1
			l.advance()
			for l.Position < l.SrcLength && isDigit(l.current()) {
				l.advance()
				tokenLen++
			}

			info := l.makeInfo(tokenLen)
			l.Column += tokenLen

			num := l.Src[begin : begin+tokenLen]
			val, err := strconv.ParseInt(num, 10, 32)
			if err != nil {
				// Overflowing literals are dropped without a token.
				continue
			}
			return NewIntegerLiteralToken(info, int32(val))

		case isIdentStart(c):
			begin := l.Position
			tokenLen := 1
			l.advance()
			for l.Position < l.SrcLength && isIdentPart(l.current()) {
				l.advance()
				tokenLen++
			}

			info := l.makeInfo(tokenLen)
			l.Column += tokenLen

			ident := l.Src[begin : begin+tokenLen]
			switch ident {
			case "true":
				return NewBooleanLiteralToken(info, true)
			case "false":
				return NewBooleanLiteralToken(info, false)

			case "void":
				return NewTypeToken(info, types.Void)
			case "int":
				return NewTypeToken(info, types.Integer)
			case "bool":
				return NewTypeToken(info, types.Boolean)

			case "and":
				return NewBooleanToken(info, types.And)
			case "or":
				return NewBooleanToken(info, types.Or)

			default:
				return NewIdentifierToken(info, ident)
			}

		case c == '=':
			if l.peek() == '=' {
				info := l.makeInfo(2)
				l.Column += 2
				l.advance()
				l.advance()
				return NewComparisonToken(info, types.IsEqual)
			}
			info := l.makeInfo(1)
			l.Column++
			l.advance()
			return NewSymbolToken(info, types.Equal)

		case c == '!':
			if l.peek() == '=' {
				info := l.makeInfo(2)
				l.Column += 2
				l.advance()
				l.advance()
				return NewComparisonToken(info, types.IsNotEqual)
			}
			info := l.makeInfo(1)
			l.Column++
			l.advance()
			return NewSymbolToken(info, types.Bang)

		case c == '<':
			if l.peek() == '=' {
				info := l.makeInfo(2)
				l.Column += 2
				l.advance()
				l.advance()
				return NewComparisonToken(info, types.IsLessOrEqual)
			}
			info := l.makeInfo(1)
			l.Column++
			l.advance()
			return NewComparisonToken(info, types.IsLess)

		case c == '>':
			if l.peek() == '=' {
				info := l.makeInfo(2)
				l.Column += 2
				l.advance()
				l.advance()
				return NewComparisonToken(info, types.IsGreaterOrEqual)
			}
			info := l.makeInfo(1)
			l.Column++
			l.advance()
			return NewComparisonToken(info, types.IsGreater)

		case c == '(' || c == ')' || c == '{' || c == '}' || c == ';' || c == ',':
			info := l.makeInfo(1)
			l.Column++
			l.advance()

			switch c {
			case '(':
				return NewSymbolToken(info, types.LeftParen)
			case ')':
				return NewSymbolToken(info, types.RightParen)
			case '{':
				return NewSymbolToken(info, types.LeftBrace)
			case '}':
				return NewSymbolToken(info, types.RightBrace)
			case ',':
				return NewSymbolToken(info, types.Comma)
			default:
				return NewSymbolToken(info, types.Semicolon)
			}

		default:
			// Unrecognized character, skipped.
			l.Column++
			l.advance()
		}
	}

	return Token{Type: EOF_TYPE, Info: TokenInfo{Line: l.Line, ColumnBegin: l.Column, ColumnEnd: l.Column}}
}

// ConsumeTokens scans the whole source and returns every token in order.
// The trailing EOF token is not included.
func (l *Lexer) ConsumeTokens() []Token {
	tokens := make([]Token, 0)
	for {
		tok := l.NextToken()
		if tok.Type == EOF_TYPE {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
