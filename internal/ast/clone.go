package ast

// Clone deep-copies the tree rooted at n: every Node gets a fresh
// Children slice and Parent pointers pointing into the clone, while
// ResolvedSymbol, ResolvedType, and Scope are shared with the original
// (symbols and types are owned by the compilation context, not by any
// one AST, per spec.md §9's "ownership lives with the context, borrows
// with nodes"). This is what lets the rewriter trim an independent copy
// of the merged global AST per export root (spec.md §4.5) while every
// copy's FUNCTION/STRUCT symbols remain the very same *types.Symbol the
// renamer later assigns one shared name to (spec.md §4.6).
func Clone(n *Node) *Node {
	if n == nil {
		return nil
	}
	clone := &Node{
		Kind:                n.Kind,
		Range:               n.Range,
		ResolvedType:        n.ResolvedType,
		ResolvedSymbol:      n.ResolvedSymbol,
		Literal:             n.Literal,
		HasControlFlowAtEnd: n.HasControlFlowAtEnd,
		Scope:               n.Scope,
		Comments:            n.Comments,
	}
	if len(n.Children) > 0 {
		clone.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			cc := Clone(c)
			cc.Parent = clone
			clone.Children[i] = cc
		}
	}
	clone.Extra = cloneExtra(n.Extra, n, clone.Children)
	return clone
}

// cloneExtra rewrites the structural clause payloads (IfClauses,
// ForClauses, LoopClauses) so their Node pointers point into the cloned
// Children instead of the original tree; every other Extra payload
// (qualifier bitsets, extension behavior, swizzle/field names, the
// constructor purity flag) is a plain value and copies by assignment.
func cloneExtra(extra any, orig *Node, cloned []*Node) any {
	remap := func(child *Node) *Node {
		if child == nil {
			return nil
		}
		for i, c := range orig.Children {
			if c == child {
				return cloned[i]
			}
		}
		return nil
	}
	switch e := extra.(type) {
	case *IfClauses:
		return &IfClauses{Cond: remap(e.Cond), Then: remap(e.Then), Else: remap(e.Else)}
	case *ForClauses:
		return &ForClauses{Init: remap(e.Init), Cond: remap(e.Cond), Post: remap(e.Post), Body: remap(e.Body)}
	case *LoopClauses:
		return &LoopClauses{Cond: remap(e.Cond), Body: remap(e.Body)}
	default:
		return extra
	}
}
