// Package rewriter implements the optimizing tree-to-tree pass described
// in spec.md §4.5: constant folding, algebraic simplification, dead-code
// removal, reachability marking from export roots, and (optionally)
// compaction. It runs after semantic analysis and control-flow analysis
// have both annotated the tree (ResolvedType/ResolvedSymbol and
// HasControlFlowAtEnd respectively) and before the renamer/printer.
package rewriter

import (
	"github.com/cwbudde/glslx-go/internal/ast"
	"github.com/cwbudde/glslx-go/internal/errors"
	"github.com/cwbudde/glslx-go/internal/types"
)

// maxFoldIterations bounds the fold/simplify fixed-point loop; folding
// and dead-code removal can each expose new opportunities for the
// other (e.g. folding a loop condition to `false` makes its body dead),
// but the AST only ever shrinks or its literals only ever become more
// concrete, so this always converges well under the bound in practice.
const maxFoldIterations = 8

// Rewrite mutates global in place: every FUNCTION body is folded and
// simplified to a fixed point, then unreachable top-level declarations
// are deleted (everything not transitively reachable from an EXPORTED,
// IMPORTED, or NATIVE declaration), and finally, if compact is true,
// adjacent VARIABLES declarations are merged and single-use const
// locals with literal initializers are inlined. This single-tree form
// keeps every export's dependencies together; callers producing one
// shader per export (spec.md §2 "repeat per export entry") use
// FoldAndSimplify once on the shared tree and then TrimToExport per
// export instead.
func Rewrite(global *ast.Node, log *errors.Log, compact bool) {
	FoldAndSimplify(global, log)

	used := markReachable(global)
	pruneUnreachable(global, used)

	if compact {
		for _, child := range global.Children {
			if child.Kind == ast.Function {
				compactFunction(child)
			}
		}
	}
}

// FoldAndSimplify runs constant folding and algebraic/dead-code
// simplification (spec.md §4.5 steps 1-3) over every FUNCTION body in
// global, in place. It does not touch reachability or compaction, so it
// is safe to run once on a merged global AST shared by multiple export
// roots before each root is cloned and trimmed independently.
func FoldAndSimplify(global *ast.Node, log *errors.Log) {
	for _, child := range global.Children {
		if child.Kind == ast.Function {
			rewriteFunction(child, log)
		}
	}
}

// TrimToExport clones global and, if trim is true, reduces the clone to
// exactly the subgraph reachable from export (spec.md §4.5 step 4,
// driven "per export-entry"): every top-level declaration not
// transitively referenced by export's body is deleted from the clone.
// With trim false, every top-level declaration is kept in the clone
// untouched (beyond the USED marking every symbol in the reachable
// subgraph still receives, which the renamer and diagnostics rely on
// regardless); this is the "trimSymbols: false" case of spec.md §6's
// Options, for a caller that wants every declaration preserved in the
// output even when unreferenced by the export being emitted. If compact
// is true, the compaction step then runs on what remains. The original
// global AST's nodes are untouched; the clone shares every *types.Symbol
// with the original (so the USED marking lands on those shared symbols)
// so the renamer can assign one name across every export's trimmed copy
// (spec.md §4.6).
func TrimToExport(global *ast.Node, export *types.Symbol, trim, compact bool) *ast.Node {
	clone := ast.Clone(global)

	used := markReachableFrom(clone, []*types.Symbol{export})
	if trim {
		pruneUnreachable(clone, used)
	}

	if compact {
		for _, child := range clone.Children {
			if child.Kind == ast.Function {
				compactFunction(child)
			}
		}
	}
	return clone
}

func rewriteFunction(fn *ast.Node, log *errors.Log) {
	body := functionBody(fn)
	if body == nil {
		return
	}
	for i := 0; i < maxFoldIterations; i++ {
		_, foldChanged := foldTree(body, log)
		before := len(flatten(body))
		simplifyBlock(body)
		after := len(flatten(body))
		if !foldChanged && before == after {
			break
		}
	}
}

// flatten counts every node in the tree rooted at n, used only to
// detect whether simplifyBlock changed anything in rewriteFunction's
// fixed-point loop.
func flatten(n *ast.Node) []*ast.Node {
	if n == nil {
		return nil
	}
	out := []*ast.Node{n}
	for _, c := range n.Children {
		out = append(out, flatten(c)...)
	}
	return out
}
