// Package scope implements the parser's symbols table: a stack of
// lexical scope frames for variables plus a flat registry of function
// signatures shared by the whole program.
//
// Each variable gets a fresh, globally unique 16-bit ID when it is
// defined. IDs are allocated by a counter that never resets, so a name
// shadowed in an inner scope resolves to a different ID than the outer
// binding. The IDs end up embedded in the program tree and stay valid
// for downstream passes after the table itself is gone.
package scope

import (
	"fmt"

	"github.com/knettia/faren-canon/types"
)

// Scope is one lexical frame: name to ID bindings and the value type of
// each ID. A new frame starts as a copy of its parent, so lookups only
// ever consult the top frame.
type Scope struct {
	nameToID map[string]uint16
	idToType map[uint16]types.VType
}

// newScope creates a frame initialized from parent's bindings, or an
// empty frame when parent is nil.
func newScope(parent *Scope) *Scope {
	s := &Scope{
		nameToID: make(map[string]uint16),
		idToType: make(map[uint16]types.VType),
	}
	if parent != nil {
		for name, id := range parent.nameToID {
			s.nameToID[name] = id
		}
		for id, vtype := range parent.idToType {
			s.idToType[id] = vtype
		}
	}
	return s
}

// define binds name to id and id to vtype in this frame.
func (s *Scope) define(name string, id uint16, vtype types.VType) {
	s.nameToID[name] = id
	s.idToType[id] = vtype
}

// lookupID resolves a name to its ID in this frame.
func (s *Scope) lookupID(name string) (uint16, bool) {
	id, ok := s.nameToID[name]
	return id, ok
}

// lookupType resolves an ID to its value type in this frame.
func (s *Scope) lookupType(id uint16) (types.VType, bool) {
	vtype, ok := s.idToType[id]
	return vtype, ok
}

// copyOf duplicates a frame.
func (s *Scope) copyOf() *Scope {
	c := newScope(nil)
	for name, id := range s.nameToID {
		c.nameToID[name] = id
	}
	for id, vtype := range s.idToType {
		c.idToType[id] = vtype
	}
	return c
}

// SymbolsTable tracks variable scopes and the function signature
// registry during a parse.
type SymbolsTable struct {
	functions map[string]types.FunctionSignature

	scopes []*Scope
	nextID uint16
}

// NewSymbolsTable creates an empty table with no scopes. The caller
// pushes the global frame before parsing begins.
func NewSymbolsTable() *SymbolsTable {
	return &SymbolsTable{
		functions: make(map[string]types.FunctionSignature),
		scopes:    make([]*Scope, 0),
	}
}

// top returns the innermost frame, or nil when no scope is open.
func (st *SymbolsTable) top() *Scope {
	if len(st.scopes) == 0 {
		return nil
	}
	return st.scopes[len(st.scopes)-1]
}

// PushScope opens a new frame initialized from the current top, so
// names visible outside stay visible inside.
func (st *SymbolsTable) PushScope() {
	st.scopes = append(st.scopes, newScope(st.top()))
}

// PopScope closes the innermost frame.
func (st *SymbolsTable) PopScope() {
	if len(st.scopes) > 0 {
		st.scopes = st.scopes[:len(st.scopes)-1]
	}
}

// Depth returns the number of open frames. Depth 1 means top level.
func (st *SymbolsTable) Depth() int {
	return len(st.scopes)
}

// Define allocates a fresh ID for name and binds it in the top frame.
// Defining a name already visible from an outer frame shadows it under
// a new ID.
func (st *SymbolsTable) Define(name string, vtype types.VType) {
	id := st.nextID
	st.nextID++

	if top := st.top(); top != nil {
		top.define(name, id, vtype)
	}
}

// Lookup resolves a visible name to its value type.
func (st *SymbolsTable) Lookup(name string) (types.VType, bool) {
	top := st.top()
	if top == nil {
		return types.Void, false
	}
	id, ok := top.lookupID(name)
	if !ok {
		return types.Void, false
	}
	return top.lookupType(id)
}

// GetID resolves a visible name to its ID.
func (st *SymbolsTable) GetID(name string) (uint16, bool) {
	top := st.top()
	if top == nil {
		return 0, false
	}
	return top.lookupID(name)
}

// DefineFunction registers a function signature. Signatures are unique
// by name; registering a name twice is an error.
func (st *SymbolsTable) DefineFunction(name string, returnType types.VType, parameters []types.Parameter) error {
	if _, ok := st.functions[name]; ok {
		return fmt.Errorf("function `%s` already defined", name)
	}
	st.functions[name] = types.NewFunctionSignature(name, returnType, parameters)
	return nil
}

// GetFunction returns the registered signature for name.
func (st *SymbolsTable) GetFunction(name string) (types.FunctionSignature, bool) {
	sign, ok := st.functions[name]
	return sign, ok
}

// Clone deep-copies the table. Sub-parsers work on a clone so that
// names they resolve cannot leak definitions back; the caller decides
// whether to adopt the clone afterwards.
func (st *SymbolsTable) Clone() *SymbolsTable {
	c := &SymbolsTable{
		functions: make(map[string]types.FunctionSignature, len(st.functions)),
		scopes:    make([]*Scope, 0, len(st.scopes)),
		nextID:    st.nextID,
	}
	for name, sign := range st.functions {
		c.functions[name] = sign
	}
	for _, s := range st.scopes {
		c.scopes = append(c.scopes, s.copyOf())
	}
	return c
}
