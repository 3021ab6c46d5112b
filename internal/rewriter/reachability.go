package rewriter

import (
	"github.com/cwbudde/glslx-go/internal/ast"
	"github.com/cwbudde/glslx-go/internal/types"
)

// marker implements reachability marking from a set of export roots
// (spec.md §4.5 step 4): "starting from the chosen export root, mark
// USED on every symbol transitively referenced, then delete unmarked
// top-level declarations." NATIVE built-in API symbols are never
// considered for deletion: internal/builtins installs them straight into
// the global scope, so they have no top-level declaration node to prune
// or print.
type marker struct {
	used            map[*types.Symbol]bool
	funcNodeByID    map[int64]*ast.Node
	structSymByType map[*types.StructType]*types.Symbol
}

func newMarker(global *ast.Node) *marker {
	m := &marker{
		used:            map[*types.Symbol]bool{},
		funcNodeByID:    map[int64]*ast.Node{},
		structSymByType: map[*types.StructType]*types.Symbol{},
	}
	for _, child := range global.Children {
		sym := resolvedSymbolOf(child)
		if sym == nil {
			continue
		}
		switch child.Kind {
		case ast.Function:
			m.funcNodeByID[sym.ID] = child
		case ast.Struct:
			if st, ok := sym.Type.(*types.StructType); ok {
				m.structSymByType[st] = sym
			}
		}
	}
	return m
}

func resolvedSymbolOf(n *ast.Node) *types.Symbol {
	if n == nil || n.ResolvedSymbol == nil {
		return nil
	}
	sym, _ := n.ResolvedSymbol.(*types.Symbol)
	return sym
}

// markReachable marks USED (spec.md §3) on every symbol transitively
// reachable from every EXPORTED, NATIVE, or IMPORTED top-level
// declaration in global, and
// returns the computed reachability set. Used by the single-tree
// Rewrite entry point, which keeps every export's dependencies in one
// shared AST; per-export trimming uses markReachableFrom instead.
func markReachable(global *ast.Node) map[*types.Symbol]bool {
	var roots []*types.Symbol
	for _, child := range global.Children {
		sym := resolvedSymbolOf(child)
		if sym != nil && (sym.IsExported() || sym.IsNative() || sym.IsImported()) {
			roots = append(roots, sym)
		}
	}
	return markReachableFrom(global, roots)
}

// markReachableFrom marks USED on every symbol transitively reachable
// from roots alone (spec.md §4.5 step 4: "starting from the chosen
// export root"), returning the computed reachability set.
func markReachableFrom(global *ast.Node, roots []*types.Symbol) map[*types.Symbol]bool {
	m := newMarker(global)
	for _, sym := range roots {
		m.markSymbol(sym)
	}
	return m.used
}

func (m *marker) markSymbol(sym *types.Symbol) {
	if sym == nil || m.used[sym] {
		return
	}
	m.used[sym] = true
	sym.MarkUsed()
	if sym.Sibling != nil {
		m.markSymbol(sym.Sibling)
	}
	for _, field := range sym.Fields {
		m.markSymbol(field)
	}
	m.markType(sym.Type)
	if fn, ok := m.funcNodeByID[sym.ID]; ok {
		m.walkNode(fn)
	}
}

func (m *marker) markType(t types.Type) {
	switch tt := t.(type) {
	case nil:
	case *types.StructType:
		if sym, ok := m.structSymByType[tt]; ok {
			m.markSymbol(sym)
		}
	case *types.ArrayType:
		m.markType(tt.Element)
	case *types.FunctionType:
		m.markType(tt.ReturnType)
		for _, p := range tt.Params {
			m.markType(p.Type)
		}
	}
}

func (m *marker) walkNode(n *ast.Node) {
	if n == nil {
		return
	}
	if sym := resolvedSymbolOf(n); sym != nil {
		m.markSymbol(sym)
	}
	if n.ResolvedType != nil {
		if t, ok := n.ResolvedType.(types.Type); ok {
			m.markType(t)
		}
	}
	for _, c := range n.Children {
		m.walkNode(c)
	}
}

// pruneUnreachable drops top-level declarations whose symbol was never
// marked USED, leaving directives (precision/version/extension/pragma/
// include/modifier-block) untouched since they carry no symbol of
// their own. A VARIABLES node's declarators (each its own symbol, per
// spec.md §4.2's comma-separated declaration list) are pruned one at a
// time instead of as a unit, so `uniform float a, b;` with only `a`
// reachable keeps just `a`.
func pruneUnreachable(global *ast.Node, used map[*types.Symbol]bool) {
	kept := make([]*ast.Node, 0, len(global.Children))
	for _, child := range global.Children {
		if child.Kind == ast.Variables {
			if trimmed := pruneVariableDeclarators(child, used); trimmed != nil {
				kept = append(kept, trimmed)
			}
			continue
		}
		sym := resolvedSymbolOf(child)
		if sym == nil || used[sym] {
			kept = append(kept, child)
		}
	}
	global.Children = kept
}

// pruneVariableDeclarators keeps only child declarators whose symbol was
// marked USED, returning nil if none survive.
func pruneVariableDeclarators(variables *ast.Node, used map[*types.Symbol]bool) *ast.Node {
	kept := make([]*ast.Node, 0, len(variables.Children))
	for _, decl := range variables.Children {
		if sym := resolvedSymbolOf(decl); sym != nil && used[sym] {
			kept = append(kept, decl)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	variables.Children = kept
	return variables
}
