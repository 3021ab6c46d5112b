package printer

import "github.com/cwbudde/glslx-go/internal/ast"

// Precedence levels mirroring internal/parser/precedence.go, used in
// reverse to decide when a child expression needs synthetic parens: the
// parser discards the source parentheses it consumes (parsePrefix widens
// the inner expression's range to cover them but keeps its Kind), so the
// only way to know a paren is required on the way back out is to compare
// a child's own operator precedence against the minimum its parent
// position demands.
const (
	precNone = iota
	precSequence
	precAssignment
	precTernary
	precLogicalOr
	precLogicalXor
	precLogicalAnd
	precBitwiseOr
	precBitwiseXor
	precBitwiseAnd
	precEquality
	precComparison
	precShift
	precAdditive
	precMultiplicative
	precUnary
	precPostfix
)

type opInfo struct {
	text       string
	prec       int
	rightAssoc bool
}

var binaryInfo = map[ast.Kind]opInfo{
	ast.LogicalOr:        {"||", precLogicalOr, false},
	ast.LogicalXor:       {"^^", precLogicalXor, false},
	ast.LogicalAnd:       {"&&", precLogicalAnd, false},
	ast.BitwiseOr:        {"|", precBitwiseOr, false},
	ast.BitwiseXor:       {"^", precBitwiseXor, false},
	ast.BitwiseAnd:       {"&", precBitwiseAnd, false},
	ast.Equal:            {"==", precEquality, false},
	ast.NotEqual:         {"!=", precEquality, false},
	ast.LessThan:         {"<", precComparison, false},
	ast.GreaterThan:      {">", precComparison, false},
	ast.LessThanEqual:    {"<=", precComparison, false},
	ast.GreaterThanEqual: {">=", precComparison, false},
	ast.LeftShift:        {"<<", precShift, false},
	ast.RightShift:       {">>", precShift, false},
	ast.Add:               {"+", precAdditive, false},
	ast.Subtract:          {"-", precAdditive, false},
	ast.Multiply:          {"*", precMultiplicative, false},
	ast.Divide:            {"/", precMultiplicative, false},
	ast.Modulo:            {"%", precMultiplicative, false},
	ast.Assign:            {"=", precAssignment, true},
	ast.AddAssign:         {"+=", precAssignment, true},
	ast.SubtractAssign:    {"-=", precAssignment, true},
	ast.MultiplyAssign:    {"*=", precAssignment, true},
	ast.DivideAssign:      {"/=", precAssignment, true},
	ast.ModuloAssign:      {"%=", precAssignment, true},
	ast.LeftShiftAssign:   {"<<=", precAssignment, true},
	ast.RightShiftAssign:  {">>=", precAssignment, true},
	ast.BitwiseAndAssign:  {"&=", precAssignment, true},
	ast.BitwiseXorAssign:  {"^=", precAssignment, true},
	ast.BitwiseOrAssign:   {"|=", precAssignment, true},
}

var prefixUnaryText = map[ast.Kind]string{
	ast.Negative:        "-",
	ast.Positive:        "+",
	ast.Not:             "!",
	ast.BitNot:          "~",
	ast.PrefixIncrement: "++",
	ast.PrefixDecrement: "--",
}

var postfixUnaryText = map[ast.Kind]string{
	ast.PostfixIncrement: "++",
	ast.PostfixDecrement: "--",
}

// exprPrec returns the precedence level of n's own top-level operator,
// for literals/names/calls/postfix forms this is precPostfix (they never
// need parenthesizing as a child).
func exprPrec(n *ast.Node) int {
	if op, ok := binaryInfo[n.Kind]; ok {
		return op.prec
	}
	if n.Kind == ast.Hook {
		return precTernary
	}
	if n.Kind == ast.Sequence {
		return precSequence
	}
	if _, ok := prefixUnaryText[n.Kind]; ok {
		return precUnary
	}
	return precPostfix
}

// expr prints n, wrapping it in parens iff its own precedence is lower
// than minPrec demands (or equal while minPrec is the higher-than-natural
// bound a right-associative operator or a strict binary side imposes).
func (p *printer) expr(n *ast.Node, minPrec int) {
	if n == nil {
		return
	}
	needParens := exprPrec(n) < minPrec
	if needParens {
		p.tok("(")
	}
	p.exprInner(n)
	if needParens {
		p.tok(")")
	}
}

func (p *printer) exprInner(n *ast.Node) {
	switch n.Kind {
	case ast.IntLiteral, ast.FloatLiteral, ast.BoolLiteral:
		p.tok(n.Literal)
	case ast.Name:
		p.tok(outputName(n))
	case ast.Sequence:
		for i, c := range n.Children {
			if i > 0 {
				p.tok(",")
				p.space()
			}
			p.expr(c, precAssignment)
		}
	case ast.Hook:
		p.expr(n.Children[0], precTernary+1)
		p.space()
		p.tok("?")
		p.space()
		p.expr(n.Children[1], precAssignment)
		p.space()
		p.tok(":")
		p.space()
		p.expr(n.Children[2], precTernary)
	case ast.Call:
		p.expr(n.Children[0], precPostfix)
		p.tok("(")
		for i, arg := range n.Children[1:] {
			if i > 0 {
				p.tok(",")
				p.space()
			}
			p.expr(arg, precAssignment)
		}
		p.tok(")")
	case ast.Dot:
		p.expr(n.Children[0], precPostfix)
		p.tok(".")
		field, _ := n.Extra.(string)
		p.tok(field)
	case ast.Index:
		p.expr(n.Children[0], precPostfix)
		p.tok("[")
		p.expr(n.Children[1], precNone)
		p.tok("]")
	case ast.PostfixIncrement, ast.PostfixDecrement:
		p.expr(n.Children[0], precPostfix)
		p.tok(postfixUnaryText[n.Kind])
	default:
		if text, ok := prefixUnaryText[n.Kind]; ok {
			p.tok(text)
			p.expr(n.Children[0], precUnary)
			return
		}
		if op, ok := binaryInfo[n.Kind]; ok {
			leftMin, rightMin := op.prec, op.prec+1
			if op.rightAssoc {
				leftMin, rightMin = op.prec+1, op.prec
			}
			p.expr(n.Children[0], leftMin)
			p.space()
			p.tok(op.text)
			p.space()
			p.expr(n.Children[1], rightMin)
			return
		}
	}
}
