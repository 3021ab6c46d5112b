package semantic

import (
	"github.com/cwbudde/glslx-go/internal/ast"
	"github.com/cwbudde/glslx-go/internal/errors"
	"github.com/cwbudde/glslx-go/internal/types"
)

// analyzeDeclarations is the top-down declaration pass (spec.md §4.3):
// by the time the parser finishes, every top-level symbol already has a
// Type (declarations are defined as they're parsed, not deferred), so
// this pass's remaining job is to validate declaration-shaped
// constraints that don't require evaluating expressions — struct field
// shapes and qualifier placement — before the bottom-up expression pass
// runs over initializers and bodies.
func (a *Analyzer) analyzeDeclarations(n *ast.Node) {
	switch n.Kind {
	case ast.Struct:
		a.analyzeStructDecl(n)
	case ast.Function:
		a.analyzeFunctionSignature(n)
	}
}

func (a *Analyzer) analyzeStructDecl(n *ast.Node) {
	st, ok := n.ResolvedSymbol.(*types.Symbol)
	if !ok || st.Type == nil {
		return
	}
	structType, ok := st.Type.(*types.StructType)
	if !ok {
		return
	}
	for _, field := range structType.Fields {
		if field.Type == nil {
			a.errorf(errors.BadConstructor, n, "struct %q has a field %q with an unresolved type", structType.Name, field.Name)
		}
	}
}

func (a *Analyzer) analyzeFunctionSignature(n *ast.Node) {
	sym, ok := n.ResolvedSymbol.(*types.Symbol)
	if !ok {
		return
	}
	fnType, ok := sym.Type.(*types.FunctionType)
	if !ok {
		return
	}
	for i, p := range fnType.Params {
		if p.Qualifier != types.QualifierIn && p.Const {
			a.errorf(errors.Syntax, n, "parameter %d of %q cannot be both const and out/inout", i, sym.Name)
		}
	}
}
