package semantic

import (
	"github.com/cwbudde/glslx-go/internal/ast"
	"github.com/cwbudde/glslx-go/internal/errors"
	"github.com/cwbudde/glslx-go/internal/types"
)

// analyzeTopLevel dispatches one top-level global-AST child through the
// bottom-up expression pass.
func (a *Analyzer) analyzeTopLevel(n *ast.Node) {
	switch n.Kind {
	case ast.Function:
		a.analyzeFunctionBody(n)
	case ast.Variables:
		a.analyzeVariables(n)
	case ast.Struct, ast.Precision, ast.Version, ast.Extension, ast.Pragma, ast.Include, ast.ModifierBlock:
		// no expressions to walk
	default:
		a.analyzeExpression(n)
	}
}

func (a *Analyzer) analyzeFunctionBody(n *ast.Node) {
	sym, _ := n.ResolvedSymbol.(*types.Symbol)
	var fnType *types.FunctionType
	if sym != nil {
		fnType, _ = sym.Type.(*types.FunctionType)
	}

	// Last child is the body BLOCK if this is a definition, not just a
	// prototype (parser appends exactly one extra child, the body, only
	// when a definition follows the parameter list).
	if len(n.Children) == 0 {
		return
	}
	body := n.Children[len(n.Children)-1]
	if body.Kind != ast.Block {
		return
	}

	outerFn := a.currentFunction
	a.currentFunction = fnType
	a.analyzeBlock(body)
	a.currentFunction = outerFn
}

func (a *Analyzer) analyzeBlock(n *ast.Node) {
	for _, stmt := range n.Children {
		a.analyzeStatement(stmt)
	}
}

func (a *Analyzer) analyzeStatement(n *ast.Node) {
	switch n.Kind {
	case ast.Block:
		a.analyzeBlock(n)
	case ast.Variables:
		a.analyzeVariables(n)
	case ast.If:
		a.analyzeIf(n)
	case ast.For:
		a.analyzeFor(n)
	case ast.While, ast.DoWhile:
		a.analyzeLoop(n)
	case ast.Return:
		a.analyzeReturn(n)
	case ast.Discard, ast.Continue, ast.Break:
		// Structural validity (enclosing loop) is checked by the parser
		// at parse time; nothing more to resolve here.
	default:
		if n.Kind.IsExpression() {
			a.analyzeExpression(n)
		}
	}
}

func (a *Analyzer) analyzeVariables(n *ast.Node) {
	flags, _ := n.Extra.(types.Flag)
	for _, decl := range n.Children {
		sym, _ := decl.ResolvedSymbol.(*types.Symbol)
		if len(decl.Children) == 0 {
			if flags.Has(types.Const) {
				a.errorf(errors.ConstNeedsLiteralInit, decl, "const variable %q requires an initializer", decl.Literal)
			}
			continue
		}
		init := decl.Children[0]
		initType := a.analyzeExpression(init)
		if sym == nil || sym.Type == nil || initType == nil {
			continue
		}
		if !types.Identical(sym.Type, initType) && initType != types.ErrorType {
			a.errorf(errors.TypeMismatch, init, "cannot initialize %q of type %s with value of type %s", decl.Literal, sym.Type.String(), initType.String())
		}
		if flags.Has(types.Const) && !a.isConstantExpression(init) {
			a.errorf(errors.ConstNeedsLiteralInit, init, "const variable %q must be initialized with a constant expression", decl.Literal)
		}
	}
}

func (a *Analyzer) analyzeIf(n *ast.Node) {
	clauses, _ := n.Extra.(*ast.IfClauses)
	if clauses == nil {
		return
	}
	condType := a.analyzeExpression(clauses.Cond)
	if condType != nil && condType != types.BoolType && condType != types.ErrorType {
		a.errorf(errors.TypeMismatch, clauses.Cond, "if condition must be bool, found %s", condType.String())
	}
	if clauses.Then != nil {
		a.analyzeStatement(clauses.Then)
	}
	if clauses.Else != nil {
		a.analyzeStatement(clauses.Else)
	}
}

func (a *Analyzer) analyzeFor(n *ast.Node) {
	clauses, _ := n.Extra.(*ast.ForClauses)
	if clauses == nil {
		return
	}
	if clauses.Init != nil {
		a.analyzeStatement(clauses.Init)
	}
	if clauses.Cond != nil {
		condType := a.analyzeExpression(clauses.Cond)
		if condType != nil && condType != types.BoolType && condType != types.ErrorType {
			a.errorf(errors.TypeMismatch, clauses.Cond, "for condition must be bool, found %s", condType.String())
		}
	}
	if clauses.Post != nil {
		a.analyzeExpression(clauses.Post)
	}
	a.loopDepth++
	if clauses.Body != nil {
		a.analyzeStatement(clauses.Body)
	}
	a.loopDepth--
}

func (a *Analyzer) analyzeLoop(n *ast.Node) {
	clauses, _ := n.Extra.(*ast.LoopClauses)
	if clauses == nil {
		return
	}
	a.loopDepth++
	if n.Kind == ast.While {
		condType := a.analyzeExpression(clauses.Cond)
		if condType != nil && condType != types.BoolType && condType != types.ErrorType {
			a.errorf(errors.TypeMismatch, clauses.Cond, "while condition must be bool, found %s", condType.String())
		}
		if clauses.Body != nil {
			a.analyzeStatement(clauses.Body)
		}
	} else { // DoWhile: body then condition
		if clauses.Body != nil {
			a.analyzeStatement(clauses.Body)
		}
		condType := a.analyzeExpression(clauses.Cond)
		if condType != nil && condType != types.BoolType && condType != types.ErrorType {
			a.errorf(errors.TypeMismatch, clauses.Cond, "do-while condition must be bool, found %s", condType.String())
		}
	}
	a.loopDepth--
}

func (a *Analyzer) analyzeReturn(n *ast.Node) {
	var retType types.Type = types.VoidType
	if len(n.Children) > 0 {
		retType = a.analyzeExpression(n.Child(0))
	}
	if a.currentFunction == nil || retType == nil || retType == types.ErrorType {
		return
	}
	if !types.Identical(retType, a.currentFunction.ReturnType) {
		a.errorf(errors.TypeMismatch, n, "return type %s does not match function return type %s", retType.String(), a.currentFunction.ReturnType.String())
	}
}

// isConstantExpression is a conservative syntactic check (spec.md §4.3:
// "const variables must have a constant initializer (folded at check
// time)"): literals and operators applied to constant operands qualify;
// a NAME is only constant if it resolves to another CONST symbol.
func (a *Analyzer) isConstantExpression(n *ast.Node) bool {
	if n == nil {
		return false
	}
	switch {
	case n.IsLiteral():
		return true
	case n.Kind == ast.Name:
		sym, ok := n.ResolvedSymbol.(*types.Symbol)
		return ok && sym.Flags.Has(types.Const)
	case n.Kind == ast.Negative, n.Kind == ast.Positive, n.Kind == ast.Not, n.Kind == ast.BitNot:
		return a.isConstantExpression(n.Child(0))
	case n.Kind.IsBinary() && !n.Kind.IsAssign():
		return a.isConstantExpression(n.Child(0)) && a.isConstantExpression(n.Child(1))
	case n.Kind == ast.Call:
		typ, ok := types.ByName(n.Child(0).Literal)
		if !ok {
			return false
		}
		_ = typ
		for _, c := range n.Children[1:] {
			if !a.isConstantExpression(c) {
				return false
			}
		}
		return true
	}
	return false
}
