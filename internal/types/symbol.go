package types

import "github.com/cwbudde/glslx-go/internal/source"

// SymbolKind distinguishes the three declaration kinds a Symbol can name.
type SymbolKind int

const (
	VariableSymbol SymbolKind = iota
	FunctionSymbolKind
	StructSymbolKind
)

// Flag is a bitset of symbol attributes (spec.md §3).
type Flag uint32

const (
	Exported Flag = 1 << iota
	Imported
	Native
	Used
	Const
	Uniform
	Attribute
	Varying
	In
	Out
	InOut
	Highp
	Mediump
	Lowp
)

// Has reports whether every bit in want is set in f.
func (f Flag) Has(want Flag) bool { return f&want == want }

// NodeRef is satisfied by *ast.Node; declared here (instead of imported)
// to avoid an import cycle between types and ast — ast.Node embeds a
// *Symbol, and Symbol needs to point back at its defining node.
type NodeRef interface {
	SourceRange() source.Range
}

// Symbol is the common representation for variables, functions, and
// structs, told apart by Kind; kind-specific data lives in the Sibling,
// Overloads, Params (functions) and Fields (structs) fields (spec.md §3).
type Symbol struct {
	ID      int64 // issued by CompilerData's per-compilation counter
	Name    string
	Kind    SymbolKind
	Flags   Flag
	Scope   *Scope
	Node    NodeRef // defining AST node
	Type    Type

	// RefCount is bumped by the resolver every time a NAME expression
	// resolves to this symbol; the renamer sorts on it (spec.md §4.6).
	RefCount int

	// Sibling links a function prototype symbol to its definition (and
	// back); both share the renamer's output name (spec.md §3, §4.6).
	Sibling *Symbol

	// Overloads is the chain of FUNCTION symbols sharing Name but
	// differing in parameter types; nil for non-overloaded functions and
	// for non-function symbols.
	Overloads []*Symbol

	// Fields holds the ordered field symbols for a STRUCT symbol.
	Fields []*Symbol

	// Params holds the ordered parameter symbols for a FUNCTION symbol,
	// giving constructor/overload resolution access to parameter names in
	// addition to the types carried on Type.(*FunctionType).Params.
	Params []*Symbol

	// RenamedName is set by the renamer; empty until then.
	RenamedName string
}

// IsExported reports the EXPORTED flag.
func (s *Symbol) IsExported() bool { return s.Flags.Has(Exported) }

// IsImported reports the IMPORTED flag.
func (s *Symbol) IsImported() bool { return s.Flags.Has(Imported) }

// IsNative reports the NATIVE flag (built-in API symbol).
func (s *Symbol) IsNative() bool { return s.Flags.Has(Native) }

// IsUsed reports the USED reachability marker.
func (s *Symbol) IsUsed() bool { return s.Flags.Has(Used) }

// MarkUsed sets the USED flag; idempotent.
func (s *Symbol) MarkUsed() { s.Flags |= Used }

// OutputName returns the renamed name if one has been assigned, else the
// original declared name.
func (s *Symbol) OutputName() string {
	if s.RenamedName != "" {
		return s.RenamedName
	}
	return s.Name
}
