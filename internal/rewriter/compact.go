package rewriter

import (
	"github.com/cwbudde/glslx-go/internal/ast"
	"github.com/cwbudde/glslx-go/internal/source"
	"github.com/cwbudde/glslx-go/internal/types"
)

// constCandidate is a local CONST declarator eligible for inlining:
// exactly one reference (RefCount == 1) and a literal initializer
// (spec.md §4.5 step 5: "inline single-use const locals with literal
// initializers").
type constCandidate struct {
	declNode *ast.Node
	literal  *ast.Node
}

// compactFunction runs the compaction step of the rewrite pipeline on
// one function body: merging adjacent VARIABLES declarations sharing a
// type and qualifier set, and inlining single-use const locals.
func compactFunction(fn *ast.Node) {
	body := functionBody(fn)
	if body == nil {
		return
	}

	candidates := map[*types.Symbol]*constCandidate{}
	collectConstCandidates(body, candidates)
	if len(candidates) > 0 {
		inlineConstUses(body, candidates)
		removeInlinedDeclarators(body, candidates)
	}
	mergeAdjacentVariablesDeep(body)
}

func functionBody(fn *ast.Node) *ast.Node {
	if len(fn.Children) == 0 {
		return nil
	}
	last := fn.Children[len(fn.Children)-1]
	if last.Kind != ast.Block {
		return nil
	}
	return last
}

func collectConstCandidates(n *ast.Node, out map[*types.Symbol]*constCandidate) {
	if n == nil {
		return
	}
	if n.Kind == ast.Variables {
		for _, decl := range n.Children {
			sym := resolvedSymbolOf(decl)
			if sym == nil || !sym.Flags.Has(types.Const) || sym.RefCount != 1 {
				continue
			}
			if len(decl.Children) == 1 && decl.Children[0].IsLiteral() {
				out[sym] = &constCandidate{declNode: decl, literal: decl.Children[0]}
			}
		}
	}
	for _, c := range n.Children {
		collectConstCandidates(c, out)
	}
}

func inlineConstUses(n *ast.Node, cands map[*types.Symbol]*constCandidate) {
	if n == nil {
		return
	}
	for i, c := range n.Children {
		if c.Kind == ast.Name {
			if sym := resolvedSymbolOf(c); sym != nil {
				if cand, ok := cands[sym]; ok && c != cand.declNode {
					clone := cloneLiteral(cand.literal)
					n.Children[i] = clone
					clone.Parent = n
					continue
				}
			}
		}
		inlineConstUses(c, cands)
	}
}

func cloneLiteral(lit *ast.Node) *ast.Node {
	n := ast.New(lit.Kind, lit.Range)
	n.Literal = lit.Literal
	n.ResolvedType = lit.ResolvedType
	return n
}

func removeInlinedDeclarators(n *ast.Node, cands map[*types.Symbol]*constCandidate) {
	if n == nil {
		return
	}
	if n.Kind == ast.Block {
		kept := make([]*ast.Node, 0, len(n.Children))
		for _, c := range n.Children {
			if c.Kind == ast.Variables {
				keptDecls := make([]*ast.Node, 0, len(c.Children))
				for _, d := range c.Children {
					if !declIsInlined(d, cands) {
						keptDecls = append(keptDecls, d)
					}
				}
				c.Children = keptDecls
				if len(c.Children) == 0 {
					continue
				}
			}
			kept = append(kept, c)
		}
		n.Children = kept
	}
	for _, c := range n.Children {
		removeInlinedDeclarators(c, cands)
	}
}

func declIsInlined(d *ast.Node, cands map[*types.Symbol]*constCandidate) bool {
	for _, cand := range cands {
		if cand.declNode == d {
			return true
		}
	}
	return false
}

// mergeAdjacentVariablesDeep merges adjacent VARIABLES declarations of
// identical qualifiers and base element type throughout body, at every
// block nesting level.
func mergeAdjacentVariablesDeep(n *ast.Node) {
	if n == nil {
		return
	}
	if n.Kind == ast.Block {
		mergeAdjacentVariablesIn(n)
	}
	for _, c := range n.Children {
		mergeAdjacentVariablesDeep(c)
	}
}

func mergeAdjacentVariablesIn(parent *ast.Node) {
	out := make([]*ast.Node, 0, len(parent.Children))
	for _, child := range parent.Children {
		if child.Kind == ast.Variables && len(out) > 0 {
			prev := out[len(out)-1]
			if prev.Kind == ast.Variables && sameVariablesGroup(prev, child) {
				for _, d := range child.Children {
					prev.Append(d)
				}
				prev.Range = source.Span(prev.Range, child.Range)
				continue
			}
		}
		out = append(out, child)
	}
	parent.Children = out
}

func sameVariablesGroup(a, b *ast.Node) bool {
	af, _ := a.Extra.(types.Flag)
	bf, _ := b.Extra.(types.Flag)
	if af != bf {
		return false
	}
	at, bt := baseElementType(a), baseElementType(b)
	return at != nil && bt != nil && types.Identical(at, bt)
}

func baseElementType(n *ast.Node) types.Type {
	if len(n.Children) == 0 {
		return nil
	}
	sym := resolvedSymbolOf(n.Children[0])
	if sym == nil {
		return nil
	}
	return stripArray(sym.Type)
}

func stripArray(t types.Type) types.Type {
	for {
		at, ok := t.(*types.ArrayType)
		if !ok {
			return t
		}
		t = at.Element
	}
}
