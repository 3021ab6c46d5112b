package parser

import (
	"github.com/cwbudde/glslx-go/internal/ast"
	"github.com/cwbudde/glslx-go/internal/errors"
	"github.com/cwbudde/glslx-go/internal/lexer"
	"github.com/cwbudde/glslx-go/internal/source"
	"github.com/cwbudde/glslx-go/internal/types"
)

// parseBlock parses a `{ ... }` statement list, opening a LOCAL scope
// (spec.md §4.2: "Loop bodies open a LOOP scope", handled by callers that
// pass a LOOP-kinded scope in already; plain blocks get LOCAL).
func (p *Parser) parseBlock() *ast.Node {
	start := p.expect(lexer.LeftBrace, "expected '{'")
	node := ast.New(ast.Block, start.Range)

	outer := p.scope
	if outer.Kind != types.LoopScope {
		p.scope = types.NewScope(types.LocalScope, outer)
	}
	node.Scope = p.scope

	for !p.is(lexer.RightBrace) && !p.atEOF() {
		stmt := p.parseStatement()
		if stmt != nil {
			node.Append(stmt)
		}
	}
	end := p.expect(lexer.RightBrace, "expected '}' to close block")
	node.Range = source.Span(node.Range, end.Range)
	p.scope = outer
	return node
}

func (p *Parser) parseStatement() *ast.Node {
	switch p.cur().Kind {
	case lexer.LeftBrace:
		return p.parseBlock()
	case lexer.KeywordIf:
		return p.parseIf()
	case lexer.KeywordFor:
		return p.parseFor()
	case lexer.KeywordWhile:
		return p.parseWhile()
	case lexer.KeywordDo:
		return p.parseDoWhile()
	case lexer.KeywordReturn:
		return p.parseReturn()
	case lexer.KeywordDiscard:
		tok := p.advance()
		semi := p.expect(lexer.Semicolon, "expected ';' after discard")
		return ast.New(ast.Discard, source.Span(tok.Range, semi.Range))
	case lexer.KeywordContinue:
		tok := p.advance()
		if p.scope.EnclosingLoop() == nil {
			p.log.Error(errors.OutsideLoop, tok.Range, "'continue' used outside a loop")
		}
		semi := p.expect(lexer.Semicolon, "expected ';' after continue")
		return ast.New(ast.Continue, source.Span(tok.Range, semi.Range))
	case lexer.KeywordBreak:
		tok := p.advance()
		if p.scope.EnclosingLoop() == nil {
			p.log.Error(errors.OutsideLoop, tok.Range, "'break' used outside a loop")
		}
		semi := p.expect(lexer.Semicolon, "expected ';' after break")
		return ast.New(ast.Break, source.Span(tok.Range, semi.Range))
	case lexer.KeywordStruct:
		p.parseStructDecl()
		return nil
	case lexer.Semicolon:
		p.advance()
		return nil
	default:
		return p.parseLocalDeclOrExprStatement()
	}
}

func (p *Parser) parseIf() *ast.Node {
	start := p.advance()
	p.expect(lexer.LeftParen, "expected '(' after if")
	cond := p.parseExpression()
	p.expect(lexer.RightParen, "expected ')' after if condition")
	then := p.parseStatement()

	node := ast.New(ast.If, start.Range)
	node.Append(cond).Append(then)

	var els *ast.Node
	if p.is(lexer.KeywordElse) {
		p.advance()
		els = p.parseStatement()
		node.Append(els)
		if els != nil {
			node.Range = source.Span(node.Range, els.Range)
		}
	} else if then != nil {
		node.Range = source.Span(node.Range, then.Range)
	}
	node.Extra = &ast.IfClauses{Cond: cond, Then: then, Else: els}
	return node
}

func (p *Parser) parseWhile() *ast.Node {
	start := p.advance()
	p.expect(lexer.LeftParen, "expected '(' after while")
	cond := p.parseExpression()
	p.expect(lexer.RightParen, "expected ')' after while condition")

	outer := p.scope
	loopScope := types.NewScope(types.LoopScope, outer)
	p.scope = loopScope
	body := p.parseLoopBody()
	p.scope = outer

	node := ast.New(ast.While, source.Span(start.Range, body.Range))
	node.Scope = loopScope
	node.Extra = &ast.LoopClauses{Cond: cond, Body: body}
	node.Append(cond).Append(body)
	return node
}

func (p *Parser) parseDoWhile() *ast.Node {
	start := p.advance()
	outer := p.scope
	loopScope := types.NewScope(types.LoopScope, outer)
	p.scope = loopScope
	body := p.parseLoopBody()
	p.scope = outer

	p.expect(lexer.KeywordWhile, "expected 'while' after do-block")
	p.expect(lexer.LeftParen, "expected '(' after while")
	cond := p.parseExpression()
	p.expect(lexer.RightParen, "expected ')' after while condition")
	semi := p.expect(lexer.Semicolon, "expected ';' after do-while")

	node := ast.New(ast.DoWhile, source.Span(start.Range, semi.Range))
	node.Scope = loopScope
	node.Extra = &ast.LoopClauses{Cond: cond, Body: body}
	node.Append(body).Append(cond)
	return node
}

// parseLoopBody parses a loop's body, which may be a brace-delimited
// block or a single statement; either way it runs inside the LOOP scope
// the caller has already pushed (spec.md §4.2).
func (p *Parser) parseLoopBody() *ast.Node {
	if p.is(lexer.LeftBrace) {
		return p.parseBlock()
	}
	stmt := p.parseStatement()
	if stmt == nil {
		return ast.New(ast.Block, p.cur().Range)
	}
	return stmt
}

func (p *Parser) parseFor() *ast.Node {
	start := p.advance()
	p.expect(lexer.LeftParen, "expected '(' after for")

	outer := p.scope
	initScope := types.NewScope(types.LocalScope, outer) // for's own initializer scope
	p.scope = initScope

	var init *ast.Node
	if !p.is(lexer.Semicolon) {
		init = p.parseLocalDeclOrExprStatement()
	} else {
		p.advance()
	}

	var cond *ast.Node
	if !p.is(lexer.Semicolon) {
		cond = p.parseExpression()
	}
	p.expect(lexer.Semicolon, "expected ';' after for condition")

	var post *ast.Node
	if !p.is(lexer.RightParen) {
		post = p.parseExpression()
	}
	p.expect(lexer.RightParen, "expected ')' after for clauses")

	loopScope := types.NewScope(types.LoopScope, p.scope)
	p.scope = loopScope
	body := p.parseLoopBody()
	p.scope = outer

	node := ast.New(ast.For, source.Span(start.Range, body.Range))
	node.Scope = initScope
	node.Extra = &ast.ForClauses{Init: init, Cond: cond, Post: post, Body: body}
	node.AppendAll(init, cond, post, body)
	return node
}

func (p *Parser) parseReturn() *ast.Node {
	start := p.advance()
	node := ast.New(ast.Return, start.Range)
	if !p.is(lexer.Semicolon) {
		val := p.parseExpression()
		node.Append(val)
	}
	semi := p.expect(lexer.Semicolon, "expected ';' after return")
	node.Range = source.Span(node.Range, semi.Range)
	return node
}

// parseLocalDeclOrExprStatement disambiguates a local VARIABLES
// declaration from an expression statement by trying to parse a type
// name first; this is also used for a for-loop's initializer clause,
// which is why it returns the statement node instead of appending it.
func (p *Parser) parseLocalDeclOrExprStatement() *ast.Node {
	startTok := p.cur()

	if p.looksLikeDeclaration() {
		q := p.parseQualifiers()
		typ, ok := p.parseType()
		if ok {
			nameTok := p.expect(lexer.Identifier, "expected a declared name")
			node := p.buildVariablesDecl(startTok, q.flags, typ, nameTok)
			return node
		}
	}

	expr := p.parseExpression()
	semi := p.expect(lexer.Semicolon, "expected ';' after expression statement")
	if expr == nil {
		return nil
	}
	expr.Range = source.Span(expr.Range, semi.Range)
	return expr
}

// looksLikeDeclaration reports whether the upcoming tokens form a type
// name (qualifiers* type-name identifier), without consuming anything.
func (p *Parser) looksLikeDeclaration() bool {
	ahead := 0
	for {
		switch p.peek(ahead).Kind {
		case lexer.KeywordConst, lexer.KeywordUniform, lexer.KeywordAttribute,
			lexer.KeywordVarying, lexer.KeywordIn, lexer.KeywordOut, lexer.KeywordInOut,
			lexer.KeywordHighp, lexer.KeywordMediump, lexer.KeywordLowp:
			ahead++
			continue
		}
		break
	}
	if p.peek(ahead).Kind != lexer.Identifier {
		return false
	}
	name := p.peek(ahead).Text()
	if _, ok := types.ByName(name); ok {
		return p.peek(ahead+1).Kind == lexer.Identifier
	}
	if _, ok := p.structs[name]; ok {
		return p.peek(ahead+1).Kind == lexer.Identifier
	}
	return false
}
