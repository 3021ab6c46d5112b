package parser

import (
	"github.com/cwbudde/glslx-go/internal/ast"
	"github.com/cwbudde/glslx-go/internal/lexer"
)

// Precedence levels, low to high (spec.md §4.2).
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

type binaryOp struct {
	kind       ast.Kind
	precedence int
	rightAssoc bool
}

// binaryOps is the Pratt infix table for every non-assignment binary
// operator (spec.md §4.2).
var binaryOps = map[lexer.Kind]binaryOp{
	lexer.LogicalOr:        {ast.LogicalOr, precLogicalOr, false},
	lexer.LogicalXor:       {ast.LogicalXor, precLogicalXor, false},
	lexer.LogicalAnd:       {ast.LogicalAnd, precLogicalAnd, false},
	lexer.Bar:              {ast.BitwiseOr, precBitwiseOr, false},
	lexer.Caret:            {ast.BitwiseXor, precBitwiseXor, false},
	lexer.Ampersand:        {ast.BitwiseAnd, precBitwiseAnd, false},
	lexer.EqualsEquals:     {ast.Equal, precEquality, false},
	lexer.NotEquals:        {ast.NotEqual, precEquality, false},
	lexer.LessThan:         {ast.LessThan, precComparison, false},
	lexer.GreaterThan:      {ast.GreaterThan, precComparison, false},
	lexer.LessThanEquals:   {ast.LessThanEqual, precComparison, false},
	lexer.GreaterThanEquals: {ast.GreaterThanEqual, precComparison, false},
	lexer.ShiftLeft:        {ast.LeftShift, precShift, false},
	lexer.ShiftRight:       {ast.RightShift, precShift, false},
	lexer.Plus:             {ast.Add, precAdditive, false},
	lexer.Minus:            {ast.Subtract, precAdditive, false},
	lexer.Star:             {ast.Multiply, precMultiplicative, false},
	lexer.Slash:            {ast.Divide, precMultiplicative, false},
	lexer.Percent:          {ast.Modulo, precMultiplicative, false},
}

// assignOps is the Pratt infix table for assignment, right-associative
// and lower precedence than the ternary (spec.md §4.2, §9 open question c).
var assignOps = map[lexer.Kind]ast.Kind{
	lexer.Equals:          ast.Assign,
	lexer.PlusEquals:      ast.AddAssign,
	lexer.MinusEquals:     ast.SubtractAssign,
	lexer.StarEquals:      ast.MultiplyAssign,
	lexer.SlashEquals:     ast.DivideAssign,
	lexer.PercentEquals:   ast.ModuloAssign,
	lexer.ShiftLeftEquals: ast.LeftShiftAssign,
	lexer.ShiftRightEquals: ast.RightShiftAssign,
	lexer.AmpersandEquals: ast.BitwiseAndAssign,
	lexer.BarEquals:       ast.BitwiseOrAssign,
	lexer.CaretEquals:     ast.BitwiseXorAssign,
}

// prefixUnaryOps is the Pratt prefix table for unary operators other than
// the primary-expression prefixes (literals, NAME, parens) handled inline
// in parsePrefix.
var prefixUnaryOps = map[lexer.Kind]ast.Kind{
	lexer.Minus:      ast.Negative,
	lexer.Plus:       ast.Positive,
	lexer.Not:        ast.Not,
	lexer.Tilde:      ast.BitNot,
	lexer.PlusPlus:   ast.PrefixIncrement,
	lexer.MinusMinus: ast.PrefixDecrement,
}

var postfixIncDecOps = map[lexer.Kind]ast.Kind{
	lexer.PlusPlus:   ast.PostfixIncrement,
	lexer.MinusMinus: ast.PostfixDecrement,
}
