// Package semantic walks the merged global AST, assigning a Type to
// every expression and validating scope usage, swizzles, overload
// resolution, and qualifiers (spec.md §4.3). Modeled on the teacher's
// Analyzer: one struct carrying all per-compilation state, a family of
// analyzeX methods, and an append-only error sink — generalized here to
// the shared diagnostic Log instead of a private string slice, since
// spec.md §5 requires diagnostics from every stage to interleave in
// discovery order.
package semantic

import (
	"github.com/cwbudde/glslx-go/internal/ast"
	"github.com/cwbudde/glslx-go/internal/errors"
	"github.com/cwbudde/glslx-go/internal/types"
)

// Analyzer holds all state for one top-down-then-bottom-up pass over a
// global AST (spec.md §4.3: "Walks the tree once top-down for
// declarations ... and once bottom-up for expressions").
type Analyzer struct {
	data *types.CompilerData
	log  *errors.Log

	global *ast.Node
	scope  *types.Scope

	currentFunction *types.FunctionType
	loopDepth       int
}

// New creates an Analyzer over the parser's merged global AST and scope.
func New(data *types.CompilerData, log *errors.Log, global *ast.Node, globalScope *types.Scope) *Analyzer {
	return &Analyzer{data: data, log: log, global: global, scope: globalScope}
}

// Analyze runs the full declaration pass then the expression pass over
// every top-level node. It never aborts early (spec.md §4.3: "the
// resolver never halts early").
func (a *Analyzer) Analyze() {
	for _, child := range a.global.Children {
		a.analyzeDeclarations(child)
	}
	for _, child := range a.global.Children {
		a.analyzeTopLevel(child)
	}
}

func (a *Analyzer) errorf(kind errors.Kind, n *ast.Node, format string, args ...any) {
	a.log.Error(kind, n.Range, format, args...)
}

func (a *Analyzer) warnf(kind errors.Kind, n *ast.Node, format string, args ...any) {
	a.log.Warn(kind, n.Range, format, args...)
}

// errorType marks n with the sentinel error type, so later references to
// it silently propagate rather than triggering a diagnostic storm
// (spec.md §7: "subsequent uses propagate the error type silently").
func errorType(n *ast.Node) types.Type {
	n.ResolvedType = types.ErrorType
	return types.ErrorType
}
