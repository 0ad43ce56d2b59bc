package lexer

import (
	"fmt"

	"github.com/knettia/faren-canon/types"
)

// TokenType represents the classification of a lexical token.
// It is defined as a string to allow for easy comparison and debugging.
type TokenType string

// TokenType Constants:
// These constants define all token classes the lexer can emit.
const (
	// EOF_TYPE marks the end of the input stream. It is produced by
	// NextToken once the source is exhausted and never enters the
	// parser's token queue.
	EOF_TYPE TokenType = "EOF"

	// IDENTIFIER_TYPE is a name: a variable reference, a function name,
	// or one of the statement keywords (`function`, `return`, `let`,
	// `set`, `print`, `express`, `invoke`). Keywords are not reserved at
	// lex time; the parser classifies them by name.
	IDENTIFIER_TYPE TokenType = "IDENTIFIER"

	// TYPE_TYPE is one of the type keywords `void`, `int`, `bool`.
	TYPE_TYPE TokenType = "TYPE"

	// SYMBOL_TYPE is a punctuation character such as `;` or `{`.
	SYMBOL_TYPE TokenType = "SYMBOL"

	// ARITHMETIC_TYPE is one of `+` `-` `*` `/`.
	ARITHMETIC_TYPE TokenType = "ARITHMETIC"

	// COMPARISON_TYPE is one of `==` `!=` `<` `<=` `>` `>=`.
	COMPARISON_TYPE TokenType = "COMPARISON"

	// BOOLEAN_TYPE is one of the operator keywords `and`, `or`.
	BOOLEAN_TYPE TokenType = "BOOLEAN"

	// INT_LIT_TYPE is a run of decimal digits.
	INT_LIT_TYPE TokenType = "INT_LIT"

	// BOOL_LIT_TYPE is one of the keywords `true`, `false`.
	BOOL_LIT_TYPE TokenType = "BOOL_LIT"
)

// TokenInfo locates a token in the source text. Line and columns are
// 1-based and ColumnEnd is inclusive, so a single-character token has
// ColumnBegin == ColumnEnd.
type TokenInfo struct {
	Line        int
	ColumnBegin int
	ColumnEnd   int
}

// Token is a single lexical token: a type tag, a source span, and the
// payload field matching the tag. Tokens are immutable after the lexer
// constructs them.
type Token struct {
	Type TokenType
	Info TokenInfo

	Name         string                    // IDENTIFIER_TYPE
	VType        types.VType               // TYPE_TYPE
	Symbol       types.Symbol              // SYMBOL_TYPE
	ArithmeticOp types.ArithmeticOperation // ARITHMETIC_TYPE
	ComparisonOp types.ComparisonOperation // COMPARISON_TYPE
	BooleanOp    types.BooleanOperation    // BOOLEAN_TYPE
	IntValue     int32                     // INT_LIT_TYPE
	BoolValue    bool                      // BOOL_LIT_TYPE
}

// NewIdentifierToken creates an identifier token carrying its name.
func NewIdentifierToken(info TokenInfo, name string) Token {
	return Token{Type: IDENTIFIER_TYPE, Info: info, Name: name}
}

// NewTypeToken creates a token for one of the type keywords.
func NewTypeToken(info TokenInfo, vtype types.VType) Token {
	return Token{Type: TYPE_TYPE, Info: info, VType: vtype}
}

// NewSymbolToken creates a punctuation token.
func NewSymbolToken(info TokenInfo, sym types.Symbol) Token {
	return Token{Type: SYMBOL_TYPE, Info: info, Symbol: sym}
}

// NewArithmeticToken creates a token for an arithmetic operator.
func NewArithmeticToken(info TokenInfo, op types.ArithmeticOperation) Token {
	return Token{Type: ARITHMETIC_TYPE, Info: info, ArithmeticOp: op}
}

// NewComparisonToken creates a token for a comparison operator.
func NewComparisonToken(info TokenInfo, op types.ComparisonOperation) Token {
	return Token{Type: COMPARISON_TYPE, Info: info, ComparisonOp: op}
}

// NewBooleanToken creates a token for a boolean operator keyword.
func NewBooleanToken(info TokenInfo, op types.BooleanOperation) Token {
	return Token{Type: BOOLEAN_TYPE, Info: info, BooleanOp: op}
}

// NewIntegerLiteralToken creates an integer literal token.
func NewIntegerLiteralToken(info TokenInfo, value int32) Token {
	return Token{Type: INT_LIT_TYPE, Info: info, IntValue: value}
}

// NewBooleanLiteralToken creates a boolean literal token.
func NewBooleanLiteralToken(info TokenInfo, value bool) Token {
	return Token{Type: BOOL_LIT_TYPE, Info: info, BoolValue: value}
}

// Literal returns the token's source spelling, reconstructed from its
// payload. Used by the token dump and in diagnostics.
func (t Token) Literal() string {
	switch t.Type {
	case IDENTIFIER_TYPE:
		return t.Name
	case TYPE_TYPE:
		return t.VType.String()
	case SYMBOL_TYPE:
		return t.Symbol.Glyph()
	case ARITHMETIC_TYPE:
		return t.ArithmeticOp.String()
	case COMPARISON_TYPE:
		return t.ComparisonOp.String()
	case BOOLEAN_TYPE:
		return t.BooleanOp.String()
	case INT_LIT_TYPE:
		return fmt.Sprintf("%d", t.IntValue)
	case BOOL_LIT_TYPE:
		return fmt.Sprintf("%t", t.BoolValue)
	case EOF_TYPE:
		return ""
	}
	return "?"
}

// String formats the token as "TYPE(literal)" for debugging output.
func (t Token) String() string {
	return fmt.Sprintf("%s(%s)", t.Type, t.Literal())
}
