// Package ast defines the single uniform node type used for every
// syntactic construct in the shading language, per spec.md §3 and the
// "prefer ... a uniform node carrying a small child vector plus typed
// accessors" option from spec.md §9's design notes.
package ast

import (
	"github.com/cwbudde/glslx-go/internal/source"
	"github.com/cwbudde/glslx-go/internal/types"
)

// Kind is the closed set of node kinds (spec.md §3).
type Kind int

const (
	// Sentinel
	Global Kind = iota

	// Statements
	Block
	If
	For
	While
	DoWhile
	Return
	Discard
	Continue
	Break
	Variables
	Function
	Struct
	Precision
	Version
	Extension
	Pragma
	Include
	ModifierBlock

	// Expressions: literals
	BoolLiteral
	IntLiteral
	FloatLiteral
	Name

	// Expressions: composite
	Call
	Dot
	Index
	Hook // ternary ?:
	Sequence

	// Expressions: unary
	Negative
	Positive
	Not
	BitNot
	PrefixIncrement
	PrefixDecrement
	PostfixIncrement
	PostfixDecrement

	// Expressions: binary arithmetic/logical/bitwise/comparison
	Add
	Subtract
	Multiply
	Divide
	Modulo
	LeftShift
	RightShift
	LessThan
	GreaterThan
	LessThanEqual
	GreaterThanEqual
	Equal
	NotEqual
	BitwiseAnd
	BitwiseXor
	BitwiseOr
	LogicalAnd
	LogicalXor
	LogicalOr

	// Expressions: assignment
	Assign
	AddAssign
	SubtractAssign
	MultiplyAssign
	DivideAssign
	ModuloAssign
	LeftShiftAssign
	RightShiftAssign
	BitwiseAndAssign
	BitwiseXorAssign
	BitwiseOrAssign
)

// IsExpression reports whether k denotes an expression-kinded node (every
// kind at or after BoolLiteral).
func (k Kind) IsExpression() bool { return k >= BoolLiteral }

// IsBinary reports whether k is one of the binary operator kinds, Add
// through LogicalOr plus the assignment family.
func (k Kind) IsBinary() bool { return k >= Add && k <= BitwiseOrAssign }

// IsAssign reports whether k is an assignment kind (Assign or a compound
// assignment).
func (k Kind) IsAssign() bool { return k >= Assign && k <= BitwiseOrAssign }

// Symbol is satisfied by *types.Symbol; declared as an interface here to
// avoid an ast<->types import cycle (types.Symbol.Node points back at an
// ast.Node).
type Symbol interface {
	OutputName() string
}

// Type is satisfied by types.Type, for the same reason as Symbol.
type Type interface {
	String() string
}

// Node is the single AST node type for every construct in the language.
// Invariants (spec.md §3): parent pointers are consistent with Children;
// only expression-kinded nodes carry a resolved Type once the resolver
// has run; a NAME node has ResolvedSymbol set iff resolution succeeded;
// literal kinds store their canonical textual form in Literal and it is
// never re-parsed from source.
type Node struct {
	Kind     Kind
	Range    source.Range
	Parent   *Node
	Children []*Node

	ResolvedType   Type
	ResolvedSymbol Symbol
	Literal        string // canonical textual form for literal kinds

	HasControlFlowAtEnd bool // set by the control-flow analyzer, for BLOCK nodes

	// Scope is the lexical scope this node opened during parsing (non-nil
	// only for BLOCK, FUNCTION, FOR, WHILE, DO_WHILE, STRUCT, and GLOBAL
	// nodes); the semantic pass re-enters it instead of re-deriving scope
	// structure from the tree shape.
	Scope *types.Scope

	// Comments holds trivia attached to this node's leading token
	// (trailing comments from the previous token, per spec.md §3 Token).
	Comments []source.Range

	// Extra carries kind-specific data that doesn't fit the generic
	// Children vector: the qualifier bitset for VARIABLES/FUNCTION
	// parameters, the behavior value for EXTENSION, etc. Populated by the
	// parser and consulted by the resolver/rewriter/printer by Kind.
	Extra any
}

// ForClauses is the Extra payload of a FOR node: its three clauses are
// each independently optional (spec.md §4.2 "for"), which a plain
// Children vector can't represent positionally once Append silently
// drops nil entries, so FOR keeps fixed-slot access here and its
// present clauses in Children for generic traversal.
type ForClauses struct {
	Init, Cond, Post, Body *Node
}

// IfClauses is the Extra payload of an IF node, for the same reason as
// ForClauses: Then/Else statements can themselves be nil (e.g. after a
// parse error), and Append silently drops nil children.
type IfClauses struct {
	Cond, Then, Else *Node
}

// LoopClauses is the Extra payload of WHILE and DO_WHILE nodes, for the
// same nil-child reason as ForClauses/IfClauses.
type LoopClauses struct {
	Cond, Body *Node
}

// New creates a detached node of the given kind and range.
func New(kind Kind, rng source.Range) *Node {
	return &Node{Kind: kind, Range: rng}
}

// Append adds child as the last child of n, fixing up its Parent pointer.
// Returns n for chaining.
func (n *Node) Append(child *Node) *Node {
	if child == nil {
		return n
	}
	child.Parent = n
	n.Children = append(n.Children, child)
	return n
}

// AppendAll appends every non-nil child in children.
func (n *Node) AppendAll(children ...*Node) *Node {
	for _, c := range children {
		n.Append(c)
	}
	return n
}

// Child returns the i'th child, or nil if out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// RemoveChild deletes the child at index i, fixing up nothing else (the
// caller is responsible for any sibling index invariants it relies on).
func (n *Node) RemoveChild(i int) {
	if i < 0 || i >= len(n.Children) {
		return
	}
	n.Children[i].Parent = nil
	n.Children = append(n.Children[:i], n.Children[i+1:]...)
}

// ReplaceChild swaps the child at index i for replacement, fixing up
// parent pointers on both sides.
func (n *Node) ReplaceChild(i int, replacement *Node) {
	if i < 0 || i >= len(n.Children) {
		return
	}
	n.Children[i].Parent = nil
	replacement.Parent = n
	n.Children[i] = replacement
}

// SourceRange satisfies types.NodeRef, letting a *types.Symbol hold an
// ast.Node as its defining node without an import cycle.
func (n *Node) SourceRange() source.Range { return n.Range }

// IsLiteral reports whether n is one of the three literal kinds.
func (n *Node) IsLiteral() bool {
	switch n.Kind {
	case BoolLiteral, IntLiteral, FloatLiteral:
		return true
	}
	return false
}

// HasSideEffects is a conservative, structural check used by the
// rewriter's algebraic simplifications (spec.md §4.5 step 2): only pure
// leaf reads (NAME, literals) and pure built-in calls are side-effect
// free; assignment, increment/decrement, and arbitrary calls are not.
func (n *Node) HasSideEffects() bool {
	switch n.Kind {
	case IntLiteral, FloatLiteral, BoolLiteral, Name:
		return false
	case PrefixIncrement, PrefixDecrement, PostfixIncrement, PostfixDecrement:
		return true
	case Call:
		// Conservative: any call may have side effects unless every
		// argument is itself side-effect free AND the callee is marked
		// pure by the resolver (see Extra on CALL nodes, set by semantic).
		if pure, ok := n.Extra.(bool); ok && pure {
			for _, c := range n.Children[1:] {
				if c.HasSideEffects() {
					return true
				}
			}
			return false
		}
		return true
	}
	if n.Kind.IsAssign() {
		return true
	}
	for _, c := range n.Children {
		if c.HasSideEffects() {
			return true
		}
	}
	return false
}
