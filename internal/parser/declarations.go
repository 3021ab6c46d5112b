package parser

import (
	"strconv"

	"github.com/cwbudde/glslx-go/internal/ast"
	"github.com/cwbudde/glslx-go/internal/errors"
	"github.com/cwbudde/glslx-go/internal/lexer"
	"github.com/cwbudde/glslx-go/internal/source"
	"github.com/cwbudde/glslx-go/internal/types"
)

// qualifierSet collects the storage/precision qualifiers a declaration
// was prefixed with, in any order (GLSL ES is permissive about order).
type qualifierSet struct {
	flags types.Flag
}

func (p *Parser) parseQualifiers() qualifierSet {
	var q qualifierSet
	for {
		switch p.cur().Kind {
		case lexer.KeywordConst:
			q.flags |= types.Const
		case lexer.KeywordUniform:
			q.flags |= types.Uniform
		case lexer.KeywordAttribute:
			q.flags |= types.Attribute
		case lexer.KeywordVarying:
			q.flags |= types.Varying
		case lexer.KeywordIn:
			q.flags |= types.In
		case lexer.KeywordOut:
			q.flags |= types.Out
		case lexer.KeywordInOut:
			q.flags |= types.InOut
		case lexer.KeywordHighp:
			q.flags |= types.Highp
		case lexer.KeywordMediump:
			q.flags |= types.Mediump
		case lexer.KeywordLowp:
			q.flags |= types.Lowp
		default:
			return q
		}
		p.advance()
	}
}

// parseType parses a (non-array) base type name: a built-in scalar,
// vector, matrix, or sampler type, or a previously declared struct name.
func (p *Parser) parseType() (types.Type, bool) {
	tok := p.cur()
	if tok.Kind != lexer.Identifier {
		p.log.Error(errors.Syntax, tok.Range, "expected a type name, found %q", tok.Kind.String())
		return nil, false
	}
	if t, ok := types.ByName(tok.Text()); ok {
		p.advance()
		return t, true
	}
	if st, ok := p.structs[tok.Text()]; ok {
		p.advance()
		return st, true
	}
	return nil, false
}

// parseArraySuffix parses zero or more trailing "[N]" / "[]" and wraps
// base accordingly (spec.md §6: "arrays (sized and unsized)").
func (p *Parser) parseArraySuffix(base types.Type) types.Type {
	for p.is(lexer.LeftBracket) {
		p.advance()
		size := 0
		if p.is(lexer.IntLiteral) {
			tok := p.advance()
			size, _ = strconv.Atoi(tok.Text())
		}
		p.expect(lexer.RightBracket, "expected ']'")
		base = &types.ArrayType{Element: base, Size: size}
	}
	return base
}

func (p *Parser) parseStructDecl() {
	start := p.advance() // 'struct'
	nameTok := p.expect(lexer.Identifier, "expected struct name")
	st := &types.StructType{Name: nameTok.Text()}
	p.structs[nameTok.Text()] = st

	node := ast.New(ast.Struct, start.Range)
	node.Literal = nameTok.Text()

	p.expect(lexer.LeftBrace, "expected '{' to start struct body")
	scope := types.NewScope(types.StructScope, p.scope)
	node.Scope = scope
	for !p.is(lexer.RightBrace) && !p.atEOF() {
		fieldType, ok := p.parseType()
		if !ok {
			p.synchronize()
			continue
		}
		for {
			fieldNameTok := p.expect(lexer.Identifier, "expected field name")
			fieldType := p.parseArraySuffix(fieldType)
			field := &types.Symbol{
				ID:   p.data.NextSymbolID(),
				Name: fieldNameTok.Text(),
				Kind: types.VariableSymbol,
				Type: fieldType,
			}
			st.Fields = append(st.Fields, field)
			if !scope.Define(field) {
				p.log.Error(errors.RedefinedSymbol, fieldNameTok.Range, "duplicate field %q", fieldNameTok.Text())
			}

			fieldNode := ast.New(ast.Name, fieldNameTok.Range)
			fieldNode.Literal = fieldNameTok.Text()
			fieldNode.ResolvedSymbol = field
			node.Append(fieldNode)

			if !p.is(lexer.Comma) {
				break
			}
			p.advance()
		}
		p.expect(lexer.Semicolon, "expected ';' after struct field")
	}
	end := p.expect(lexer.RightBrace, "expected '}' to close struct body")
	node.Range = source.Span(node.Range, end.Range)
	p.expect(lexer.Semicolon, "expected ';' after struct declaration")

	sym := &types.Symbol{
		ID: p.data.NextSymbolID(), Name: st.Name, Kind: types.StructSymbolKind,
		Type: st, Node: node, Fields: st.Fields,
	}
	if !p.scope.Define(sym) {
		p.log.Error(errors.RedefinedSymbol, node.Range, "%q is already declared in this scope", st.Name)
	}
	node.ResolvedSymbol = sym
	p.Global.Append(node)
}

func (p *Parser) parsePrecisionDecl() {
	start := p.advance() // 'precision'
	q := p.parseQualifiers()
	typ, ok := p.parseType()
	semi := p.expect(lexer.Semicolon, "expected ';' after precision declaration")
	node := ast.New(ast.Precision, source.Span(start.Range, semi.Range))
	if ok {
		node.Literal = typ.String()
	}
	node.Extra = q.flags
	p.Global.Append(node)
}

// parseExportedFunction handles the non-standard `export`/`import`
// prefix (spec.md §4.2): it sets EXPORTED/IMPORTED on the following
// function declaration.
func (p *Parser) parseExportedFunction() {
	var flag types.Flag
	if p.cur().Kind == lexer.KeywordExport {
		flag = types.Exported
	} else {
		flag = types.Imported
	}
	p.advance()
	p.parseFunctionOrVariableDecl(flag)
}

func (p *Parser) parseTopLevelDeclaration() {
	p.parseFunctionOrVariableDecl(0)
}

// parseFunctionOrVariableDecl parses `qualifiers type name ( ... ) ...`,
// disambiguating function declarations from variable declarations by the
// presence of '(' after the first identifier.
func (p *Parser) parseFunctionOrVariableDecl(extraFlags types.Flag) {
	startTok := p.cur()
	q := p.parseQualifiers()
	typ, ok := p.parseType()
	if !ok {
		p.log.Error(errors.Syntax, p.cur().Range, "expected a declaration")
		p.synchronize()
		return
	}
	nameTok := p.expect(lexer.Identifier, "expected a declared name")

	if p.is(lexer.LeftParen) {
		p.parseFunctionDecl(startTok, q.flags|extraFlags, typ, nameTok)
		return
	}
	node := p.buildVariablesDecl(startTok, q.flags|extraFlags, typ, nameTok)
	p.Global.Append(node)
}

func (p *Parser) parseFunctionDecl(startTok lexer.Token, flags types.Flag, returnType types.Type, nameTok lexer.Token) {
	p.advance() // '('

	funcScope := types.NewScope(types.FunctionScope, p.scope)
	var params []types.Param
	var paramSymbols []*types.Symbol

	if !p.is(lexer.RightParen) {
		for {
			pq := p.parseQualifiers()
			ptyp, ok := p.parseType()
			if !ok {
				p.synchronize()
				break
			}
			qualifier := types.QualifierIn
			switch {
			case pq.flags.Has(types.InOut):
				qualifier = types.QualifierInOut
			case pq.flags.Has(types.Out):
				qualifier = types.QualifierOut
			}
			var pname string
			var pnameTok lexer.Token
			if p.is(lexer.Identifier) {
				pnameTok = p.advance()
				pname = pnameTok.Text()
				ptyp = p.parseArraySuffix(ptyp)
			}
			params = append(params, types.Param{Type: ptyp, Qualifier: qualifier, Const: pq.flags.Has(types.Const)})
			sym := &types.Symbol{
				ID: p.data.NextSymbolID(), Name: pname, Kind: types.VariableSymbol,
				Type: ptyp, Flags: pq.flags,
			}
			paramSymbols = append(paramSymbols, sym)
			if pname != "" && !funcScope.Define(sym) {
				p.log.Error(errors.RedefinedSymbol, pnameTok.Range, "duplicate parameter name %q", pname)
			}
			if !p.is(lexer.Comma) {
				break
			}
			p.advance()
		}
	}
	var closeParen lexer.Token
	if p.is(lexer.LeftBrace) {
		// A body follows the unclosed list: report it and parse the body
		// rather than resynchronizing past it into the next declaration.
		p.log.Error(errors.Syntax, p.cur().Range, "expected ')' to close parameter list (found %q)", p.cur().Kind.String())
		closeParen = p.cur()
	} else {
		closeParen = p.expect(lexer.RightParen, "expected ')' to close parameter list")
	}

	fnType := &types.FunctionType{ReturnType: returnType, Params: params, Const: flags.Has(types.Const)}

	node := ast.New(ast.Function, source.Span(startTok.Range, closeParen.Range))
	node.Literal = nameTok.Text()
	node.Scope = funcScope

	sym := p.defineOrOverload(nameTok.Text(), fnType, flags, node, paramSymbols)

	for _, ps := range paramSymbols {
		pn := ast.New(ast.Name, nameTok.Range)
		pn.Literal = ps.Name
		pn.ResolvedSymbol = ps
		node.Append(pn)
	}

	if p.is(lexer.Semicolon) {
		// prototype only
		semi := p.advance()
		node.Range = source.Span(node.Range, semi.Range)
		p.Global.Append(node)
		return
	}

	if sym.Sibling != nil && sym.Sibling.Node != nil {
		// This is the prototype's definition: reuse the prototype node's
		// Global slot isn't necessary; both nodes independently appear,
		// linked via Sibling for the renamer (spec.md §3, §4.6).
	}

	outerScope := p.scope
	p.scope = funcScope
	body := p.parseBlock()
	p.scope = outerScope

	node.Append(body)
	node.Range = source.Span(node.Range, body.Range)
	p.Global.Append(node)
}

// defineOrOverload defines a new FUNCTION symbol, or upgrades a matching
// prototype to a definition, or extends an overload chain, per spec.md
// §4.2/§3 ("maintaining an overload chain when a name is re-declared with
// different parameter types").
func (p *Parser) defineOrOverload(name string, fnType *types.FunctionType, flags types.Flag, node *ast.Node, params []*types.Symbol) *types.Symbol {
	sym := &types.Symbol{
		ID: p.data.NextSymbolID(), Name: name, Kind: types.FunctionSymbolKind,
		Type: fnType, Flags: flags, Node: node, Params: params,
	}
	node.ResolvedSymbol = sym

	if existing, ok := p.scope.FindLocal(name); ok && existing.Kind == types.FunctionSymbolKind {
		if existing.Type.(*types.FunctionType).Equal(fnType) {
			// Same signature again: prototype -> definition pairing.
			sym.Sibling = existing
			existing.Sibling = sym
			sym.Overloads = existing.Overloads
			p.scope.Redefine(name, sym)
			return sym
		}
		// An earlier overload with the same signature: pair with it and
		// take its place in the latest symbol's chain.
		for i, o := range existing.Overloads {
			if o.Kind == types.FunctionSymbolKind && o.Type.(*types.FunctionType).Equal(fnType) {
				sym.Sibling = o
				o.Sibling = sym
				existing.Overloads[i] = sym
				return sym
			}
		}
		// Different signature: extend the overload chain.
		sym.Overloads = append(append([]*types.Symbol{}, existing.Overloads...), existing)
		existing.Overloads = append(existing.Overloads, sym)
		p.scope.Redefine(name, sym)
		return sym
	}

	if !p.scope.Define(sym) {
		p.log.Error(errors.RedefinedSymbol, node.Range, "%q is already declared in this scope", name)
	}
	return sym
}

// buildVariablesDecl parses one VARIABLES declaration node (one or more
// comma-separated names sharing a base type and qualifier set) without
// attaching it anywhere; callers append it to the right parent (the
// global AST for top-level declarations, or the enclosing block for
// local declarations).
func (p *Parser) buildVariablesDecl(startTok lexer.Token, flags types.Flag, baseType types.Type, firstNameTok lexer.Token) *ast.Node {
	node := ast.New(ast.Variables, startTok.Range)
	node.Extra = flags

	declareOne := func(nameTok lexer.Token) {
		varType := p.parseArraySuffix(baseType)
		sym := &types.Symbol{
			ID: p.data.NextSymbolID(), Name: nameTok.Text(), Kind: types.VariableSymbol,
			Type: varType, Flags: flags,
		}
		declNode := ast.New(ast.Name, nameTok.Range)
		declNode.Literal = nameTok.Text()
		declNode.ResolvedSymbol = sym

		if p.is(lexer.Equals) {
			p.advance()
			init := p.parseAssignExpression()
			declNode.Append(init)
			declNode.Range = source.Span(declNode.Range, init.Range)
		}
		if !p.scope.Define(sym) {
			p.log.Error(errors.RedefinedSymbol, nameTok.Range, "%q is already declared in this scope", nameTok.Text())
		}
		node.Append(declNode)
	}

	declareOne(firstNameTok)
	for p.is(lexer.Comma) {
		p.advance()
		nameTok := p.expect(lexer.Identifier, "expected a variable name")
		declareOne(nameTok)
	}
	semi := p.expect(lexer.Semicolon, "expected ';' after variable declaration")
	node.Range = source.Span(node.Range, semi.Range)
	return node
}
