package rewriter

import (
	"strconv"
	"strings"

	"github.com/cwbudde/glslx-go/internal/ast"
	"github.com/cwbudde/glslx-go/internal/errors"
	"github.com/cwbudde/glslx-go/internal/source"
	"github.com/cwbudde/glslx-go/internal/types"
)

// foldTree recursively folds constants and applies algebraic
// simplification bottom-up (spec.md §4.5 steps 1-2), returning the
// (possibly replaced) node and whether anything changed. Children are
// folded first so that e.g. `(1+1)*x` sees a literal `2` on its left
// before `Multiply` is considered.
func foldTree(n *ast.Node, log *errors.Log) (*ast.Node, bool) {
	if n == nil {
		return nil, false
	}
	changedAny := false
	for i, c := range n.Children {
		nc, changed := foldTree(c, log)
		if changed {
			n.Children[i] = nc
			nc.Parent = n
			changedAny = true
		}
	}
	if repl, ok := tryFold(n, log); ok {
		return repl, true
	}
	return n, changedAny
}

func tryFold(n *ast.Node, log *errors.Log) (*ast.Node, bool) {
	switch {
	case n.Kind.IsBinary() && !n.Kind.IsAssign():
		return tryFoldBinary(n, log)
	case n.Kind == ast.Not:
		return tryFoldNot(n)
	case n.Kind == ast.Negative:
		return tryFoldNegative(n)
	}
	return nil, false
}

func tryFoldNot(n *ast.Node) (*ast.Node, bool) {
	operand := n.Child(0)
	if operand == nil {
		return nil, false
	}
	if operand.Kind == ast.Not {
		// !!x -> x
		inner := operand.Child(0)
		return inner, true
	}
	if operand.Kind == ast.BoolLiteral {
		return boolLiteral(operand.Literal != "true", n.Range), true
	}
	return nil, false
}

func tryFoldNegative(n *ast.Node) (*ast.Node, bool) {
	operand := n.Child(0)
	if operand == nil {
		return nil, false
	}
	switch operand.Kind {
	case ast.IntLiteral:
		v, err := parseIntLiteral(operand.Literal)
		if err != nil {
			return nil, false
		}
		return intLiteral(-v, n.Range), true
	case ast.FloatLiteral:
		v, err := strconv.ParseFloat(operand.Literal, 64)
		if err != nil {
			return nil, false
		}
		return floatLiteral(-v, n.Range), true
	}
	return nil, false
}

func tryFoldBinary(n *ast.Node, log *errors.Log) (*ast.Node, bool) {
	left, right := n.Child(0), n.Child(1)
	if left == nil || right == nil {
		return nil, false
	}

	if repl, ok := tryAlgebraicSimplify(n, left, right); ok {
		return repl, true
	}

	if !left.IsLiteral() || !right.IsLiteral() {
		return nil, false
	}

	switch n.Kind {
	case ast.Add, ast.Subtract, ast.Multiply, ast.Divide, ast.Modulo,
		ast.BitwiseAnd, ast.BitwiseOr, ast.BitwiseXor, ast.LeftShift, ast.RightShift:
		return tryFoldArithmetic(n, left, right, log)
	case ast.LessThan, ast.GreaterThan, ast.LessThanEqual, ast.GreaterThanEqual, ast.Equal, ast.NotEqual:
		return tryFoldComparison(n, left, right)
	case ast.LogicalAnd, ast.LogicalOr, ast.LogicalXor:
		return tryFoldLogical(n, left, right)
	}
	return nil, false
}

// tryAlgebraicSimplify applies the fixed rule set from spec.md §4.5 step
// 2, which fires even when the non-identity operand is not itself a
// literal: x+0, x-0, 0-x, x*1, x*0 (pure x only), true&&x, false&&x,
// x||true, x||false, and their duals.
func tryAlgebraicSimplify(n *ast.Node, left, right *ast.Node) (*ast.Node, bool) {
	switch n.Kind {
	case ast.Add:
		if isZero(right) {
			return left, true
		}
		if isZero(left) {
			return right, true
		}
	case ast.Subtract:
		if isZero(right) {
			return left, true
		}
		if isZero(left) {
			neg := ast.New(ast.Negative, n.Range)
			neg.Append(right)
			return neg, true
		}
	case ast.Multiply:
		if isOne(right) {
			return left, true
		}
		if isOne(left) {
			return right, true
		}
		if isZero(right) && !left.HasSideEffects() {
			return right, true
		}
		if isZero(left) && !right.HasSideEffects() {
			return left, true
		}
	case ast.LogicalAnd:
		if isBoolConst(left, true) {
			return right, true
		}
		if isBoolConst(right, true) {
			return left, true
		}
		if isBoolConst(left, false) {
			return left, true
		}
		if isBoolConst(right, false) && !left.HasSideEffects() {
			return right, true
		}
	case ast.LogicalOr:
		if isBoolConst(left, false) {
			return right, true
		}
		if isBoolConst(right, false) {
			return left, true
		}
		if isBoolConst(left, true) {
			return left, true
		}
		if isBoolConst(right, true) && !left.HasSideEffects() {
			return right, true
		}
	}
	return nil, false
}

func isZero(n *ast.Node) bool {
	switch n.Kind {
	case ast.IntLiteral:
		v, err := parseIntLiteral(n.Literal)
		return err == nil && v == 0
	case ast.FloatLiteral:
		v, err := strconv.ParseFloat(n.Literal, 64)
		return err == nil && v == 0
	}
	return false
}

func isOne(n *ast.Node) bool {
	switch n.Kind {
	case ast.IntLiteral:
		v, err := parseIntLiteral(n.Literal)
		return err == nil && v == 1
	case ast.FloatLiteral:
		v, err := strconv.ParseFloat(n.Literal, 64)
		return err == nil && v == 1
	}
	return false
}

func isBoolConst(n *ast.Node, want bool) bool {
	return n.Kind == ast.BoolLiteral && (n.Literal == "true") == want
}

func tryFoldArithmetic(n *ast.Node, left, right *ast.Node, log *errors.Log) (*ast.Node, bool) {
	if left.Kind == ast.IntLiteral && right.Kind == ast.IntLiteral {
		a, errA := parseIntLiteral(left.Literal)
		b, errB := parseIntLiteral(right.Literal)
		if errA != nil || errB != nil {
			return nil, false
		}
		switch n.Kind {
		case ast.Add:
			return intLiteral(a+b, n.Range), true
		case ast.Subtract:
			return intLiteral(a-b, n.Range), true
		case ast.Multiply:
			return intLiteral(a*b, n.Range), true
		case ast.Divide:
			if b == 0 {
				log.Warn(errors.Warning, n.Range, "division by zero")
				return errorNode(n.Range), true
			}
			return intLiteral(a/b, n.Range), true
		case ast.Modulo:
			if b == 0 {
				log.Warn(errors.Warning, n.Range, "modulo by zero")
				return errorNode(n.Range), true
			}
			return intLiteral(a%b, n.Range), true
		case ast.BitwiseAnd:
			return intLiteral(a&b, n.Range), true
		case ast.BitwiseOr:
			return intLiteral(a|b, n.Range), true
		case ast.BitwiseXor:
			return intLiteral(a^b, n.Range), true
		case ast.LeftShift:
			return intLiteral(a<<uint32(b&31), n.Range), true
		case ast.RightShift:
			return intLiteral(a>>uint32(b&31), n.Range), true
		}
		return nil, false
	}

	if left.Kind == ast.FloatLiteral && right.Kind == ast.FloatLiteral {
		a, errA := strconv.ParseFloat(left.Literal, 64)
		b, errB := strconv.ParseFloat(right.Literal, 64)
		if errA != nil || errB != nil {
			return nil, false
		}
		switch n.Kind {
		case ast.Add:
			return floatLiteral(a+b, n.Range), true
		case ast.Subtract:
			return floatLiteral(a-b, n.Range), true
		case ast.Multiply:
			return floatLiteral(a*b, n.Range), true
		case ast.Divide:
			// IEEE-754: division by zero yields Inf/NaN, not an error;
			// spec.md §9 leaves NaN/Inf literal folding an open question
			// for formats without literal syntax for them, so this stays
			// un-folded rather than emitting a literal that may not
			// round-trip through every output format.
			if b == 0 {
				return nil, false
			}
			return floatLiteral(a/b, n.Range), true
		}
	}
	return nil, false
}

func tryFoldComparison(n *ast.Node, left, right *ast.Node) (*ast.Node, bool) {
	cmp, ok := compareLiterals(left, right)
	if !ok {
		return nil, false
	}
	switch n.Kind {
	case ast.LessThan:
		return boolLiteral(cmp < 0, n.Range), true
	case ast.GreaterThan:
		return boolLiteral(cmp > 0, n.Range), true
	case ast.LessThanEqual:
		return boolLiteral(cmp <= 0, n.Range), true
	case ast.GreaterThanEqual:
		return boolLiteral(cmp >= 0, n.Range), true
	case ast.Equal:
		return boolLiteral(cmp == 0, n.Range), true
	case ast.NotEqual:
		return boolLiteral(cmp != 0, n.Range), true
	}
	return nil, false
}

func compareLiterals(left, right *ast.Node) (int, bool) {
	if left.Kind == ast.IntLiteral && right.Kind == ast.IntLiteral {
		a, errA := parseIntLiteral(left.Literal)
		b, errB := parseIntLiteral(right.Literal)
		if errA != nil || errB != nil {
			return 0, false
		}
		switch {
		case a < b:
			return -1, true
		case a > b:
			return 1, true
		default:
			return 0, true
		}
	}
	if left.Kind == ast.FloatLiteral && right.Kind == ast.FloatLiteral {
		a, errA := strconv.ParseFloat(left.Literal, 64)
		b, errB := strconv.ParseFloat(right.Literal, 64)
		if errA != nil || errB != nil {
			return 0, false
		}
		switch {
		case a < b:
			return -1, true
		case a > b:
			return 1, true
		default:
			return 0, true
		}
	}
	if left.Kind == ast.BoolLiteral && right.Kind == ast.BoolLiteral {
		if left.Literal == right.Literal {
			return 0, true
		}
		return 1, true
	}
	return 0, false
}

func tryFoldLogical(n *ast.Node, left, right *ast.Node) (*ast.Node, bool) {
	if left.Kind != ast.BoolLiteral || right.Kind != ast.BoolLiteral {
		return nil, false
	}
	a := left.Literal == "true"
	b := right.Literal == "true"
	switch n.Kind {
	case ast.LogicalAnd:
		return boolLiteral(a && b, n.Range), true
	case ast.LogicalOr:
		return boolLiteral(a || b, n.Range), true
	case ast.LogicalXor:
		return boolLiteral(a != b, n.Range), true
	}
	return nil, false
}

// parseIntLiteral parses a canonical INT_LITERAL textual form (decimal,
// 0x-hex, or 0-octal), wrapping per spec.md §4.5 ("integer overflow
// wraps (two's complement 32-bit)").
func parseIntLiteral(text string) (int32, error) {
	base := 10
	switch {
	case strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X"):
		base = 16
		text = text[2:]
	case len(text) > 1 && text[0] == '0':
		base = 8
	}
	v, err := strconv.ParseUint(text, base, 64)
	if err != nil {
		return 0, err
	}
	return int32(uint32(v)), nil
}

func intLiteral(v int32, rng source.Range) *ast.Node {
	n := ast.New(ast.IntLiteral, rng)
	n.Literal = strconv.FormatInt(int64(v), 10)
	n.ResolvedType = types.IntType
	return n
}

func floatLiteral(v float64, rng source.Range) *ast.Node {
	n := ast.New(ast.FloatLiteral, rng)
	n.Literal = formatFloat(v)
	n.ResolvedType = types.FloatType
	return n
}

func boolLiteral(v bool, rng source.Range) *ast.Node {
	n := ast.New(ast.BoolLiteral, rng)
	if v {
		n.Literal = "true"
	} else {
		n.Literal = "false"
	}
	n.ResolvedType = types.BoolType
	return n
}

func errorNode(rng source.Range) *ast.Node {
	n := ast.New(ast.IntLiteral, rng)
	n.Literal = "0"
	n.ResolvedType = types.ErrorType
	return n
}

// formatFloat renders a float using the shortest round-tripping decimal
// form, always with a decimal point (spec.md §4.7: "1.0 not 1.000000").
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
