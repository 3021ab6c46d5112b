package semantic

import (
	"github.com/cwbudde/glslx-go/internal/ast"
	"github.com/cwbudde/glslx-go/internal/errors"
	"github.com/cwbudde/glslx-go/internal/types"
)

// analyzeExpression is the bottom-up expression pass (spec.md §4.3): for
// every expression node it computes and stores a Type (or the error
// sentinel, with a diagnostic already reported). Every branch is total:
// nil input returns nil, never panics, so a caller that already reported
// a syntax error can keep walking the rest of the tree.
func (a *Analyzer) analyzeExpression(n *ast.Node) types.Type {
	if n == nil {
		return nil
	}
	var t types.Type
	switch n.Kind {
	case ast.BoolLiteral:
		t = types.BoolType
	case ast.IntLiteral:
		t = types.IntType
	case ast.FloatLiteral:
		t = types.FloatType
	case ast.Name:
		t = a.analyzeName(n)
	case ast.Call:
		t = a.analyzeCall(n)
	case ast.Dot:
		t = a.analyzeDot(n)
	case ast.Index:
		t = a.analyzeIndex(n)
	case ast.Hook:
		t = a.analyzeHook(n)
	case ast.Sequence:
		t = a.analyzeSequence(n)
	case ast.Negative, ast.Positive:
		t = a.analyzeNumericUnary(n)
	case ast.Not:
		t = a.analyzeBoolUnary(n)
	case ast.BitNot:
		t = a.analyzeIntUnary(n)
	case ast.PrefixIncrement, ast.PrefixDecrement, ast.PostfixIncrement, ast.PostfixDecrement:
		t = a.analyzeIncDec(n)
	default:
		if n.Kind.IsAssign() {
			t = a.analyzeAssign(n)
		} else if n.Kind.IsBinary() {
			t = a.analyzeBinary(n)
		} else {
			t = errorType(n)
		}
	}
	n.ResolvedType = t
	return t
}

func (a *Analyzer) analyzeName(n *ast.Node) types.Type {
	sym, ok := a.scopeForExpr(n).Find(n.Literal)
	if !ok {
		a.errorf(errors.UndefinedSymbol, n, "undefined symbol %q", n.Literal)
		return errorType(n)
	}
	sym.RefCount++
	sym.MarkUsed()
	n.ResolvedSymbol = sym
	if sym.Type == nil {
		return errorType(n)
	}
	return sym.Type
}

// scopeForExpr finds the nearest enclosing scope recorded on an ancestor
// node; expression nodes themselves never open a scope, so this walks
// Parent until it finds one that did.
func (a *Analyzer) scopeForExpr(n *ast.Node) *types.Scope {
	for p := n; p != nil; p = p.Parent {
		if p.Scope != nil {
			return p.Scope
		}
	}
	return a.scope
}

func (a *Analyzer) analyzeDot(n *ast.Node) types.Type {
	base := n.Child(0)
	baseType := a.analyzeExpression(base)
	name, _ := n.Extra.(string)
	if baseType == nil || baseType == types.ErrorType {
		return errorType(n)
	}

	if st, ok := baseType.(*types.StructType); ok {
		field := st.FieldNamed(name)
		if field == nil {
			a.errorf(errors.UndefinedSymbol, n, "struct %q has no field %q", st.Name, name)
			return errorType(n)
		}
		n.ResolvedSymbol = field
		return field.Type
	}

	if types.IsVector(baseType) {
		result, _, reason := validateSwizzle(baseType, name)
		if result == nil {
			a.errorf(errors.BadSwizzle, n, "%s", reason)
			return errorType(n)
		}
		return result
	}

	a.errorf(errors.BadSwizzle, n, "%s has no field or swizzle %q", baseType.String(), name)
	return errorType(n)
}

// isLValue reports whether n denotes an assignable location (spec.md
// §4.3: swizzles with repeated components are not l-values).
func (a *Analyzer) isLValue(n *ast.Node) bool {
	switch n.Kind {
	case ast.Name:
		sym, ok := n.ResolvedSymbol.(*types.Symbol)
		return ok && !sym.Flags.Has(types.Const)
	case ast.Index:
		return a.isLValue(n.Child(0))
	case ast.Dot:
		base := n.Child(0)
		baseType, _ := base.ResolvedType.(types.Type)
		if baseType == nil {
			return false
		}
		if _, ok := baseType.(*types.StructType); ok {
			return a.isLValue(base)
		}
		name, _ := n.Extra.(string)
		_, lvalue, reason := validateSwizzle(baseType, name)
		return reason == "" && lvalue && a.isLValue(base)
	}
	return false
}

func (a *Analyzer) analyzeIndex(n *ast.Node) types.Type {
	base := n.Child(0)
	index := n.Child(1)
	baseType := a.analyzeExpression(base)
	indexType := a.analyzeExpression(index)
	if baseType == nil || baseType == types.ErrorType {
		return errorType(n)
	}
	if indexType != nil && indexType != types.IntType && indexType != types.ErrorType {
		a.errorf(errors.TypeMismatch, index, "array/vector index must be int, found %s", indexType.String())
	}

	switch {
	case types.IsVector(baseType):
		return baseType.ComponentType()
	case types.IsMatrix(baseType):
		rows := types.MatrixRowsCols(baseType)
		return types.VectorOf(types.FloatType, rows)
	}
	if arr, ok := baseType.(*types.ArrayType); ok {
		return arr.Element
	}
	a.errorf(errors.TypeMismatch, n, "%s is not indexable", baseType.String())
	return errorType(n)
}

func (a *Analyzer) analyzeHook(n *ast.Node) types.Type {
	cond := a.analyzeExpression(n.Child(0))
	thenType := a.analyzeExpression(n.Child(1))
	elseType := a.analyzeExpression(n.Child(2))
	if cond != nil && cond != types.BoolType && cond != types.ErrorType {
		a.errorf(errors.TypeMismatch, n.Child(0), "ternary condition must be bool, found %s", cond.String())
	}
	if thenType == nil || elseType == nil {
		return errorType(n)
	}
	if thenType == types.ErrorType || elseType == types.ErrorType {
		return errorType(n)
	}
	if !types.Identical(thenType, elseType) {
		a.errorf(errors.TypeMismatch, n, "ternary branches have different types: %s vs %s", thenType.String(), elseType.String())
		return errorType(n)
	}
	return thenType
}

func (a *Analyzer) analyzeSequence(n *ast.Node) types.Type {
	var last types.Type
	for _, c := range n.Children {
		last = a.analyzeExpression(c)
	}
	if last == nil {
		return errorType(n)
	}
	return last
}

func (a *Analyzer) analyzeNumericUnary(n *ast.Node) types.Type {
	t := a.analyzeExpression(n.Child(0))
	if t == nil || t == types.ErrorType {
		return errorType(n)
	}
	if !types.IsScalar(t) && !types.IsVector(t) && !types.IsMatrix(t) || t == types.BoolType {
		a.errorf(errors.TypeMismatch, n, "operator requires a numeric operand, found %s", t.String())
		return errorType(n)
	}
	return t
}

func (a *Analyzer) analyzeBoolUnary(n *ast.Node) types.Type {
	t := a.analyzeExpression(n.Child(0))
	if t == nil || t == types.ErrorType {
		return errorType(n)
	}
	if t != types.BoolType {
		a.errorf(errors.TypeMismatch, n, "'!' requires a bool operand, found %s", t.String())
		return errorType(n)
	}
	return types.BoolType
}

func (a *Analyzer) analyzeIntUnary(n *ast.Node) types.Type {
	t := a.analyzeExpression(n.Child(0))
	if t == nil || t == types.ErrorType {
		return errorType(n)
	}
	if t != types.IntType {
		a.errorf(errors.TypeMismatch, n, "'~' requires an int operand, found %s", t.String())
		return errorType(n)
	}
	return types.IntType
}

func (a *Analyzer) analyzeIncDec(n *ast.Node) types.Type {
	operand := n.Child(0)
	t := a.analyzeExpression(operand)
	if t == nil || t == types.ErrorType {
		return errorType(n)
	}
	if t != types.IntType && t != types.FloatType {
		a.errorf(errors.TypeMismatch, n, "++/-- requires an int or float operand, found %s", t.String())
		return errorType(n)
	}
	if !a.isLValue(operand) {
		a.errorf(errors.BadLValue, n, "++/-- requires an assignable operand")
	}
	return t
}

func (a *Analyzer) analyzeAssign(n *ast.Node) types.Type {
	target := n.Child(0)
	value := n.Child(1)
	targetType := a.analyzeExpression(target)
	valueType := a.analyzeExpression(value)

	if targetType == nil || targetType == types.ErrorType {
		return errorType(n)
	}
	if !a.isLValue(target) {
		a.errorf(errors.BadLValue, target, "left side of assignment is not assignable")
	}
	if valueType != nil && valueType != types.ErrorType && !types.Identical(targetType, valueType) {
		a.errorf(errors.TypeMismatch, n, "cannot assign %s to %s", valueType.String(), targetType.String())
	}
	return targetType
}

// analyzeBinary handles the plain (non-assignment) binary operators: the
// common case requires identical operand types; Add, Subtract, Divide,
// and Multiply also accept a float scalar against a float vector or
// matrix, and Multiply additionally allows matrix*vector and
// vector*matrix of matching dimension.
func (a *Analyzer) analyzeBinary(n *ast.Node) types.Type {
	left := a.analyzeExpression(n.Child(0))
	right := a.analyzeExpression(n.Child(1))
	if left == nil || right == nil {
		return errorType(n)
	}
	if left == types.ErrorType || right == types.ErrorType {
		return errorType(n)
	}

	switch n.Kind {
	case ast.LogicalAnd, ast.LogicalOr, ast.LogicalXor:
		if left != types.BoolType || right != types.BoolType {
			a.errorf(errors.TypeMismatch, n, "logical operator requires bool operands, found %s and %s", left.String(), right.String())
			return errorType(n)
		}
		return types.BoolType

	case ast.Equal, ast.NotEqual:
		if !types.Identical(left, right) {
			a.errorf(errors.TypeMismatch, n, "cannot compare %s with %s", left.String(), right.String())
			return errorType(n)
		}
		return types.BoolType

	case ast.LessThan, ast.GreaterThan, ast.LessThanEqual, ast.GreaterThanEqual:
		if left != right || (left != types.IntType && left != types.FloatType) {
			a.errorf(errors.TypeMismatch, n, "relational operator requires matching int or float operands, found %s and %s", left.String(), right.String())
			return errorType(n)
		}
		return types.BoolType

	case ast.BitwiseAnd, ast.BitwiseOr, ast.BitwiseXor, ast.LeftShift, ast.RightShift, ast.Modulo:
		if left != types.IntType || right != types.IntType {
			a.errorf(errors.TypeMismatch, n, "operator requires int operands, found %s and %s", left.String(), right.String())
			return errorType(n)
		}
		return types.IntType

	case ast.Multiply:
		return a.analyzeMultiply(n, left, right)

	case ast.Add, ast.Subtract, ast.Divide:
		if types.Identical(left, right) {
			return left
		}
		if t, ok := broadcastType(left, right); ok {
			return t
		}
		a.errorf(errors.TypeMismatch, n, "operator requires matching operand types, found %s and %s", left.String(), right.String())
		return errorType(n)
	}

	a.errorf(errors.TypeMismatch, n, "unsupported operator between %s and %s", left.String(), right.String())
	return errorType(n)
}

// broadcastType allows float OP vec/mat and vec/mat OP float (component-
// wise scalar broadcast), per GLSL ES arithmetic rules.
func broadcastType(left, right types.Type) (types.Type, bool) {
	if left == types.FloatType && (types.IsVector(right) || types.IsMatrix(right)) && right.ComponentType() == types.FloatType {
		return right, true
	}
	if right == types.FloatType && (types.IsVector(left) || types.IsMatrix(left)) && left.ComponentType() == types.FloatType {
		return left, true
	}
	return nil, false
}

func (a *Analyzer) analyzeMultiply(n *ast.Node, left, right types.Type) types.Type {
	if types.Identical(left, right) {
		return left
	}
	if t, ok := broadcastType(left, right); ok {
		return t
	}
	// matrix * vector and vector * matrix (same dimension) yield a vector.
	if types.IsMatrix(left) && types.IsVector(right) && types.MatrixRowsCols(left) == right.ComponentCount() {
		return right
	}
	if types.IsVector(left) && types.IsMatrix(right) && types.MatrixRowsCols(right) == left.ComponentCount() {
		return left
	}
	a.errorf(errors.TypeMismatch, n, "cannot multiply %s by %s", left.String(), right.String())
	return errorType(n)
}

// analyzeCall resolves either a type constructor (T(...)) or a function
// call through overload resolution (spec.md §4.3).
func (a *Analyzer) analyzeCall(n *ast.Node) types.Type {
	callee := n.Child(0)
	if callee == nil || callee.Kind != ast.Name {
		return errorType(n)
	}
	name := callee.Literal
	args := n.Children[1:]
	argTypes := make([]types.Type, len(args))
	for i, arg := range args {
		argTypes[i] = a.analyzeExpression(arg)
	}

	if basic, ok := types.ByName(name); ok {
		return a.analyzeConstructor(n, basic, argTypes)
	}

	sym, found := a.scopeForExpr(n).Find(name)
	if !found {
		a.errorf(errors.UndefinedSymbol, callee, "undefined function %q", name)
		return errorType(n)
	}
	if sym.Kind == types.StructSymbolKind {
		st, _ := sym.Type.(*types.StructType)
		return a.analyzeStructConstructor(n, st, argTypes)
	}
	if sym.Kind != types.FunctionSymbolKind {
		a.errorf(errors.UndefinedSymbol, callee, "%q is not callable", name)
		return errorType(n)
	}
	return a.analyzeOverloadCall(n, callee, sym, args, argTypes)
}

func (a *Analyzer) analyzeConstructor(n *ast.Node, target types.Type, argTypes []types.Type) types.Type {
	for _, t := range argTypes {
		if t == nil || t == types.ErrorType {
			return errorType(n)
		}
	}
	want := target.ComponentCount()

	if len(argTypes) == 1 && (types.IsVector(target) || types.IsMatrix(target)) && types.IsScalar(argTypes[0]) {
		return target // broadcast
	}

	got := 0
	for _, t := range argTypes {
		if !types.IsScalar(t) && !types.IsVector(t) && !types.IsMatrix(t) {
			a.errorf(errors.BadConstructor, n, "constructor argument of type %s is not numeric", t.String())
			return errorType(n)
		}
		got += t.ComponentCount()
	}
	if got != want {
		a.errorf(errors.BadConstructor, n, "%s constructor expects %d components, got %d", target.String(), want, got)
		return errorType(n)
	}
	return target
}

func (a *Analyzer) analyzeStructConstructor(n *ast.Node, st *types.StructType, argTypes []types.Type) types.Type {
	if st == nil {
		return errorType(n)
	}
	if len(argTypes) != len(st.Fields) {
		a.errorf(errors.BadConstructor, n, "struct %q constructor expects %d arguments, got %d", st.Name, len(st.Fields), len(argTypes))
		return errorType(n)
	}
	for i, field := range st.Fields {
		if argTypes[i] == nil || argTypes[i] == types.ErrorType {
			return errorType(n)
		}
		if !types.Identical(argTypes[i], field.Type) {
			a.errorf(errors.BadConstructor, n, "struct %q field %q expects %s, got %s", st.Name, field.Name, field.Type.String(), argTypes[i].String())
			return errorType(n)
		}
	}
	return st
}

// overloadSet dedups sym with its recorded overload chain, since the
// parser's defineOrOverload links both directions (spec.md §3).
func overloadSet(sym *types.Symbol) []*types.Symbol {
	seen := map[*types.Symbol]bool{sym: true}
	out := []*types.Symbol{sym}
	for _, o := range sym.Overloads {
		if !seen[o] {
			seen[o] = true
			out = append(out, o)
		}
	}
	return out
}

func (a *Analyzer) analyzeOverloadCall(n *ast.Node, callee *ast.Node, sym *types.Symbol, args []*ast.Node, argTypes []types.Type) types.Type {
	for _, t := range argTypes {
		if t == types.ErrorType {
			return errorType(n)
		}
	}

	candidates := overloadSet(sym)
	var matches []*types.Symbol
	for _, cand := range candidates {
		fnType, ok := cand.Type.(*types.FunctionType)
		if !ok || len(fnType.Params) != len(argTypes) {
			continue
		}
		ok = true
		for i, p := range fnType.Params {
			if !types.Identical(p.Type, argTypes[i]) {
				ok = false
				break
			}
		}
		if ok {
			matches = append(matches, cand)
		}
	}

	switch len(matches) {
	case 0:
		a.errorf(errors.NoMatchingOverload, callee, "no overload of %q matches argument types (%s)", sym.Name, types.JoinTypes(argTypes))
		return errorType(n)
	case 1:
		chosen := matches[0]
		chosen.RefCount++
		chosen.MarkUsed()
		callee.ResolvedSymbol = chosen
		fnType := chosen.Type.(*types.FunctionType)
		for i, p := range fnType.Params {
			if p.Qualifier != types.QualifierIn && !a.isLValue(args[i]) {
				a.errorf(errors.BadLValue, args[i], "argument %d of %q requires an assignable value (out/inout)", i, sym.Name)
			}
		}
		return fnType.ReturnType
	default:
		a.errorf(errors.AmbiguousCall, callee, "call to %q is ambiguous among %d overloads", sym.Name, len(matches))
		return errorType(n)
	}
}
