// Package types defines the value types, operator sets, and punctuation
// symbols of the faren language, along with function signature metadata.
// These definitions are shared by the lexer, the AST, and the parser.
package types

// VType identifies a value type in the faren language.
// The language has exactly three: void, int, and bool.
// Void is legal only as a function return type; the parser rejects it
// on variable declarations.
type VType int

const (
	// Void is the absence of a value. Return type only.
	Void VType = iota
	// Integer is a 32-bit signed integer.
	Integer
	// Boolean is a truth value.
	Boolean
)

// String returns the keyword spelling of the type as it appears in source.
func (v VType) String() string {
	switch v {
	case Void:
		return "void"
	case Integer:
		return "int"
	case Boolean:
		return "bool"
	}
	return "unknown"
}

// Parameter is a single formal parameter of a function signature.
// The ID is allocated by the symbols table when the parameter is defined
// in the function's own scope, and is the same ID variable references in
// the body resolve to.
type Parameter struct {
	ID    uint16
	VType VType
}

// FunctionSignature describes a declared or defined function: its name,
// return type, and ordered formal parameters. Signatures are unique by
// name across the whole program.
type FunctionSignature struct {
	Name       string
	ReturnType VType
	Parameters []Parameter
}

// NewFunctionSignature builds a signature from its parts.
func NewFunctionSignature(name string, returnType VType, parameters []Parameter) FunctionSignature {
	return FunctionSignature{
		Name:       name,
		ReturnType: returnType,
		Parameters: parameters,
	}
}
