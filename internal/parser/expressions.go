package parser

import (
	"github.com/cwbudde/glslx-go/internal/ast"
	"github.com/cwbudde/glslx-go/internal/errors"
	"github.com/cwbudde/glslx-go/internal/lexer"
	"github.com/cwbudde/glslx-go/internal/source"
)

// parseExpression parses a full expression, including the top-level
// comma/sequence operator, at the lowest precedence.
func (p *Parser) parseExpression() *ast.Node {
	return p.parseExpressionAt(precSequence)
}

// parseAssignExpression parses an expression without consuming a
// top-level comma; used inside call argument lists, for-loop clauses, and
// array index expressions where the comma is a delimiter, not an operator.
func (p *Parser) parseAssignExpression() *ast.Node {
	return p.parseExpressionAt(precAssignment)
}

// parseExpressionAt is the Pratt loop: parse one prefix expression, then
// repeatedly fold in infix operators whose precedence is at least minPrec.
func (p *Parser) parseExpressionAt(minPrec int) *ast.Node {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}
	return p.parseInfix(left, minPrec)
}

func (p *Parser) parseInfix(left *ast.Node, minPrec int) *ast.Node {
	for {
		tok := p.cur()

		if kind, ok := assignOps[tok.Kind]; ok && precAssignment >= minPrec {
			p.advance()
			right := p.parseExpressionAt(precAssignment) // right-assoc
			node := ast.New(kind, source.Span(left.Range, right.Range))
			node.Append(left).Append(right)
			left = node
			continue
		}

		if tok.Kind == lexer.Question && precTernary >= minPrec {
			p.advance()
			then := p.parseExpressionAt(precAssignment)
			p.expect(lexer.Colon, "expected ':' in ternary expression")
			els := p.parseExpressionAt(precTernary) // right-assoc
			node := ast.New(ast.Hook, source.Span(left.Range, els.Range))
			node.Append(left).Append(then).Append(els)
			left = node
			continue
		}

		if op, ok := binaryOps[tok.Kind]; ok && op.precedence >= minPrec {
			p.advance()
			nextMin := op.precedence + 1
			if op.rightAssoc {
				nextMin = op.precedence
			}
			right := p.parseExpressionAt(nextMin)
			node := ast.New(op.kind, source.Span(left.Range, right.Range))
			node.Append(left).Append(right)
			left = node
			continue
		}

		if tok.Kind == lexer.Comma && precSequence >= minPrec {
			p.advance()
			right := p.parseExpressionAt(precAssignment)
			if left.Kind == ast.Sequence {
				left.Append(right)
				left.Range = source.Span(left.Range, right.Range)
			} else {
				node := ast.New(ast.Sequence, source.Span(left.Range, right.Range))
				node.Append(left).Append(right)
				left = node
			}
			continue
		}

		next := p.parsePostfix(left)
		if next == nil {
			return nil
		}

		// parsePostfix only consumes one suffix per call; loop again so a
		// chain like a.b[0]++ composes all its postfix operators, but
		// break once nothing more (infix or postfix) applies.
		if next == left {
			return left
		}
		left = next
	}
}

func (p *Parser) startsPostfix() bool {
	switch p.cur().Kind {
	case lexer.Dot, lexer.LeftBracket, lexer.LeftParen, lexer.PlusPlus, lexer.MinusMinus:
		return true
	}
	return false
}

// parsePostfix consumes at most one postfix operator (., [], (), ++, --)
// applied to expr.
func (p *Parser) parsePostfix(expr *ast.Node) *ast.Node {
	switch p.cur().Kind {
	case lexer.Dot:
		p.advance()
		nameTok := p.expect(lexer.Identifier, "expected field or swizzle name after '.'")
		node := ast.New(ast.Dot, source.Span(expr.Range, nameTok.Range))
		node.Extra = nameTok.Text()
		node.Append(expr)
		return node

	case lexer.LeftBracket:
		p.advance()
		index := p.parseExpression()
		end := p.expect(lexer.RightBracket, "expected ']'")
		node := ast.New(ast.Index, source.Span(expr.Range, end.Range))
		node.Append(expr).Append(index)
		return node

	case lexer.LeftParen:
		if expr.Kind != ast.Name {
			// Only a bare name (function or constructor) can be called.
			return expr
		}
		p.advance()
		node := ast.New(ast.Call, expr.Range)
		node.Append(expr)
		if !p.is(lexer.RightParen) {
			for {
				node.Append(p.parseAssignExpression())
				if !p.is(lexer.Comma) {
					break
				}
				p.advance()
			}
		}
		end := p.expect(lexer.RightParen, "expected ')' to close call")
		node.Range = source.Span(node.Range, end.Range)
		return node

	case lexer.PlusPlus, lexer.MinusMinus:
		kind := postfixIncDecOps[p.cur().Kind]
		tok := p.advance()
		node := ast.New(kind, source.Span(expr.Range, tok.Range))
		node.Append(expr)
		return node
	}
	return expr
}

// parsePrefix parses one primary/prefix expression: literals, names,
// parenthesized expressions, and prefix unary operators.
func (p *Parser) parsePrefix() *ast.Node {
	tok := p.cur()

	switch tok.Kind {
	case lexer.IntLiteral:
		p.advance()
		n := ast.New(ast.IntLiteral, tok.Range)
		n.Literal = tok.Text()
		return n

	case lexer.FloatLiteral:
		p.advance()
		n := ast.New(ast.FloatLiteral, tok.Range)
		n.Literal = tok.Text()
		return n

	case lexer.KeywordTrue:
		p.advance()
		n := ast.New(ast.BoolLiteral, tok.Range)
		n.Literal = "true"
		return n

	case lexer.KeywordFalse:
		p.advance()
		n := ast.New(ast.BoolLiteral, tok.Range)
		n.Literal = "false"
		return n

	case lexer.Identifier:
		p.advance()
		n := ast.New(ast.Name, tok.Range)
		n.Literal = tok.Text()
		return n

	case lexer.LeftParen:
		p.advance()
		inner := p.parseExpression()
		end := p.expect(lexer.RightParen, "expected ')'")
		if inner != nil {
			inner.Range = source.Span(tok.Range, end.Range)
		}
		return inner

	default:
		if kind, ok := prefixUnaryOps[tok.Kind]; ok {
			p.advance()
			operand := p.parseExpressionAt(precUnary)
			if operand == nil {
				return nil
			}
			n := ast.New(kind, source.Span(tok.Range, operand.Range))
			n.Append(operand)
			return n
		}
	}

	p.log.Error(errors.Syntax, tok.Range, "unexpected token %q in expression", tok.Kind.String())
	p.advance()
	return nil
}
