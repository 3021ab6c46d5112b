// Package printer implements the textual serializer described in
// spec.md §4.7: it walks a (trimmed, renamed) AST and produces shading
// language source text, honoring the "remove whitespace" output option
// ("compact tree" is applied earlier, by internal/rewriter). The AST
// records no parenthesization (the parser
// folds `( expr )` down to expr, widening its range), so every binary,
// unary, and ternary expression is re-parenthesized here purely from its
// operator's precedence relative to its parent's, mirroring in reverse
// the precedence table internal/parser/precedence.go uses to build the
// tree in the first place.
package printer

import (
	"strings"

	"github.com/cwbudde/glslx-go/internal/ast"
	"github.com/cwbudde/glslx-go/internal/types"
)

// Options controls the emitted text's shape; it never changes the
// meaning of what is emitted (spec.md §4.7).
type Options struct {
	// RemoveWhitespace emits the minimum whitespace the grammar requires:
	// a single space between two identifier/number-like tokens, none
	// around punctuation or operators.
	RemoveWhitespace bool
}

// Print renders global as shading language source text. global should
// already be trimmed and renamed; Print itself never consults reachability
// or RenamedName beyond calling Symbol.OutputName().
func Print(global *ast.Node, opts Options) string {
	p := &printer{opts: opts}
	for _, child := range global.Children {
		p.topLevel(child)
	}
	return p.buf.String()
}

type printer struct {
	buf      strings.Builder
	opts     Options
	indent   int
	lastByte byte
}

// charClass groups bytes that would merge into a different token if
// written adjacently without a separator: identifier/number characters,
// and the small set of operator characters that combine into multi-char
// operators (`+` `+` must not collapse into `++`).
func charClass(b byte) int {
	switch {
	case b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9'):
		return 1
	case strings.IndexByte("+-*/%<>=!&|^~", b) >= 0:
		return 2
	}
	return 0
}

// tok appends s, inserting a single protective space first if omitting it
// would let the previous and next token merge (relevant only when
// RemoveWhitespace is set; pretty mode relies on explicit space()/nl()
// calls instead).
func (p *printer) tok(s string) {
	if s == "" {
		return
	}
	if p.opts.RemoveWhitespace && p.buf.Len() > 0 {
		if c := charClass(s[0]); c != 0 && c == charClass(p.lastByte) {
			p.buf.WriteByte(' ')
		}
	}
	p.buf.WriteString(s)
	p.lastByte = s[len(s)-1]
}

func (p *printer) space() {
	if !p.opts.RemoveWhitespace {
		p.tok(" ")
	}
}

func (p *printer) nl() {
	if !p.opts.RemoveWhitespace {
		p.buf.WriteByte('\n')
		p.buf.WriteString(strings.Repeat("  ", p.indent))
		p.lastByte = ' '
	}
}

func symbolOf(n *ast.Node) *types.Symbol {
	if n == nil || n.ResolvedSymbol == nil {
		return nil
	}
	sym, _ := n.ResolvedSymbol.(*types.Symbol)
	return sym
}

func outputName(n *ast.Node) string {
	if sym := symbolOf(n); sym != nil {
		return sym.OutputName()
	}
	return n.Literal
}

var qualifierOrder = []struct {
	flag types.Flag
	text string
}{
	{types.Const, "const"},
	{types.Uniform, "uniform"},
	{types.Attribute, "attribute"},
	{types.Varying, "varying"},
	{types.In, "in"},
	{types.Out, "out"},
	{types.InOut, "inout"},
	{types.Highp, "highp"},
	{types.Mediump, "mediump"},
	{types.Lowp, "lowp"},
}

func (p *printer) qualifiers(flags types.Flag) {
	for _, q := range qualifierOrder {
		if flags.Has(q.flag) {
			p.tok(q.text)
			p.space()
		}
	}
}

// topLevel prints one GLOBAL child. Directives other than #version,
// #extension, precision, pragma, struct, variable, and function
// declarations carry no output of their own: INCLUDE is already inlined
// into the merged tree by the time the printer runs, and the built-in
// API is synthesized straight into scope and never appears as a node
// here at all (spec.md §4.7 "the built-in API is never emitted").
func (p *printer) topLevel(n *ast.Node) {
	switch n.Kind {
	case ast.Version:
		p.tok("#version")
		p.space()
		p.tok(n.Literal)
		p.nl()
	case ast.Extension:
		p.tok("#extension")
		p.space()
		p.tok(n.Literal)
		p.space()
		p.tok(":")
		p.space()
		p.tok(extensionBehaviorText(n.Extra))
		p.nl()
	case ast.Pragma:
		p.tok(n.Literal)
		p.nl()
	case ast.Precision:
		p.tok("precision")
		p.space()
		if flags, ok := n.Extra.(types.Flag); ok {
			p.qualifiers(flags)
		}
		p.tok(n.Literal)
		p.tok(";")
		p.nl()
	case ast.Struct:
		p.printStruct(n)
	case ast.Variables:
		p.printVariables(n)
		p.nl()
	case ast.Function:
		p.printFunction(n)
		p.nl()
	case ast.Include:
		// inlined at parse time; nothing to emit.
	}
}

func extensionBehaviorText(extra any) string {
	b, _ := extra.(types.ExtensionBehavior)
	switch b {
	case types.ExtEnable:
		return "enable"
	case types.ExtRequire:
		return "require"
	case types.ExtWarn:
		return "warn"
	case types.ExtDisable:
		return "disable"
	}
	return "enable"
}

func (p *printer) printStruct(n *ast.Node) {
	p.tok("struct")
	p.space()
	p.tok(outputName(n))
	p.space()
	p.tok("{")
	p.indent++
	for _, field := range n.Children {
		p.nl()
		sym := symbolOf(field)
		if sym != nil {
			p.tok(underlyingBase(sym.Type).String())
			p.space()
		}
		p.tok(outputName(field))
		if sym != nil {
			if arr, ok := sym.Type.(*types.ArrayType); ok {
				p.tok("[")
				if arr.Size != 0 {
					p.tok(itoa(arr.Size))
				}
				p.tok("]")
			}
		}
		p.tok(";")
	}
	p.indent--
	p.nl()
	p.tok("}")
	p.tok(";")
	p.nl()
}

func (p *printer) printVariables(n *ast.Node) {
	flags, _ := n.Extra.(types.Flag)
	p.qualifiers(flags)

	var baseType types.Type
	if sym := symbolOf(n.Child(0)); sym != nil {
		baseType = underlyingBase(sym.Type)
	}
	if baseType != nil {
		p.tok(baseType.String())
		p.space()
	}

	for i, decl := range n.Children {
		if i > 0 {
			p.tok(",")
			p.space()
		}
		p.printDeclarator(decl)
	}
	p.tok(";")
}

// underlyingBase strips array suffixes off t so the base type name is
// printed once and the array brackets are printed per-declarator
// (matching `float a[2], b;` source shape).
func underlyingBase(t types.Type) types.Type {
	for {
		arr, ok := t.(*types.ArrayType)
		if !ok {
			return t
		}
		t = arr.Element
	}
}

func (p *printer) printDeclarator(decl *ast.Node) {
	p.tok(outputName(decl))
	if sym := symbolOf(decl); sym != nil {
		if arr, ok := sym.Type.(*types.ArrayType); ok {
			p.tok("[")
			if arr.Size != 0 {
				p.tok(itoa(arr.Size))
			}
			p.tok("]")
		}
	}
	if len(decl.Children) > 0 {
		p.space()
		p.tok("=")
		p.space()
		p.expr(decl.Children[0], precNone)
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// isDefinition reports whether fn carries a BLOCK body as its last child
// (a prototype has none, per internal/parser/declarations.go's
// parseFunctionDecl: body is appended only when a '{' follows the
// parameter list).
func isDefinition(fn *ast.Node) (*ast.Node, bool) {
	if n := len(fn.Children); n > 0 && fn.Children[n-1].Kind == ast.Block {
		return fn.Children[n-1], true
	}
	return nil, false
}

func (p *printer) printFunction(fn *ast.Node) {
	sym := symbolOf(fn)
	var ft *types.FunctionType
	if sym != nil {
		ft, _ = sym.Type.(*types.FunctionType)
	}
	if ft != nil {
		p.tok(ft.ReturnType.String())
	}
	p.space()
	p.tok(outputName(fn))
	p.tok("(")

	body, isDef := isDefinition(fn)
	params := fn.Children
	if isDef {
		params = fn.Children[:len(fn.Children)-1]
	}
	for i, param := range params {
		if i > 0 {
			p.tok(",")
			p.space()
		}
		if ft != nil && i < len(ft.Params) {
			p.paramQualifier(ft.Params[i])
			p.tok(ft.Params[i].Type.String())
			p.space()
		}
		p.tok(outputName(param))
	}
	p.tok(")")

	if !isDef {
		p.tok(";")
		return
	}
	p.space()
	p.block(body)
}

func (p *printer) paramQualifier(param types.Param) {
	if param.Const {
		p.tok("const")
		p.space()
	}
	switch param.Qualifier {
	case types.QualifierOut:
		p.tok("out")
		p.space()
	case types.QualifierInOut:
		p.tok("inout")
		p.space()
	}
}

func (p *printer) block(n *ast.Node) {
	p.tok("{")
	p.indent++
	for _, stmt := range n.Children {
		p.nl()
		p.statement(stmt)
	}
	p.indent--
	p.nl()
	p.tok("}")
}

// stmtNeedsSemicolon reports whether the caller must add a trailing ';'
// after a statement of kind. It is false for kinds whose own printer
// already closes with their terminal punctuation: a block's closing
// brace, an if/for/while's nested statement, a struct's "};", or a
// variable declaration's own ';'.
func stmtNeedsSemicolon(kind ast.Kind) bool {
	switch kind {
	case ast.Block, ast.If, ast.For, ast.While, ast.Struct, ast.Variables:
		return false
	}
	return true
}

func (p *printer) statement(n *ast.Node) {
	switch n.Kind {
	case ast.Block:
		p.block(n)
		return
	case ast.If:
		p.printIf(n)
		return
	case ast.For:
		p.printFor(n)
		return
	case ast.While:
		p.printWhile(n)
		return
	case ast.DoWhile:
		p.printDoWhile(n)
		return
	case ast.Return:
		p.tok("return")
		if len(n.Children) > 0 {
			p.space()
			p.expr(n.Children[0], precNone)
		}
	case ast.Discard:
		p.tok("discard")
	case ast.Continue:
		p.tok("continue")
	case ast.Break:
		p.tok("break")
	case ast.Variables:
		p.printVariables(n)
	case ast.Struct:
		p.printStruct(n)
		return
	default:
		p.expr(n, precNone)
	}
	if stmtNeedsSemicolon(n.Kind) {
		p.tok(";")
	}
}

func (p *printer) printIf(n *ast.Node) {
	clauses, _ := n.Extra.(*ast.IfClauses)
	p.tok("if")
	p.space()
	p.tok("(")
	p.expr(clauses.Cond, precNone)
	p.tok(")")
	p.space()
	p.printBranch(clauses.Then)
	if clauses.Else != nil {
		p.space()
		p.tok("else")
		p.space()
		p.printBranch(clauses.Else)
	}
}

// printBranch prints an if/else arm, wrapping a bare (non-block)
// statement in its own braces so compact output stays unambiguous when
// whitespace between it and a following token is stripped.
func (p *printer) printBranch(n *ast.Node) {
	if n == nil {
		p.tok("{")
		p.tok("}")
		return
	}
	if n.Kind == ast.Block {
		p.block(n)
		return
	}
	p.tok("{")
	p.indent++
	p.nl()
	p.statement(n)
	p.indent--
	p.nl()
	p.tok("}")
}

func (p *printer) printFor(n *ast.Node) {
	clauses, _ := n.Extra.(*ast.ForClauses)
	p.tok("for")
	p.space()
	p.tok("(")
	if clauses.Init != nil {
		if clauses.Init.Kind == ast.Variables {
			p.printVariables(clauses.Init)
		} else {
			p.expr(clauses.Init, precNone)
			p.tok(";")
		}
	} else {
		p.tok(";")
	}
	p.space()
	if clauses.Cond != nil {
		p.expr(clauses.Cond, precNone)
	}
	p.tok(";")
	p.space()
	if clauses.Post != nil {
		p.expr(clauses.Post, precNone)
	}
	p.tok(")")
	p.space()
	p.printBranch(clauses.Body)
}

func (p *printer) printWhile(n *ast.Node) {
	clauses, _ := n.Extra.(*ast.LoopClauses)
	p.tok("while")
	p.space()
	p.tok("(")
	p.expr(clauses.Cond, precNone)
	p.tok(")")
	p.space()
	p.printBranch(clauses.Body)
}

func (p *printer) printDoWhile(n *ast.Node) {
	clauses, _ := n.Extra.(*ast.LoopClauses)
	p.tok("do")
	p.space()
	p.printBranch(clauses.Body)
	p.space()
	p.tok("while")
	p.space()
	p.tok("(")
	p.expr(clauses.Cond, precNone)
	p.tok(")")
	p.tok(";")
}
