// Package parser implements the Pratt-style parser described in spec.md
// §4.2: a table-driven expression parser tightly coupled with symbol
// definition, plus recursive-descent statement and declaration parsing.
package parser

import (
	"strconv"
	"strings"

	"github.com/cwbudde/glslx-go/internal/ast"
	"github.com/cwbudde/glslx-go/internal/errors"
	"github.com/cwbudde/glslx-go/internal/lexer"
	"github.com/cwbudde/glslx-go/internal/source"
	"github.com/cwbudde/glslx-go/internal/types"
)

// Parser holds all state shared across an entire compilation: the global
// AST and scope that every parsed source's top-level declarations merge
// into, the diagnostic log, the compiler-wide symbol/extension state, and
// the stack of file frames used to implement #include (spec.md §4.2).
type Parser struct {
	data   *types.CompilerData
	log    *errors.Log
	Global *ast.Node
	scope  *types.Scope // current lexical scope

	frames       []*frame
	includeChain []*source.Source
	seenIncludes map[*source.Source]bool

	// AllSources records every source ParseSource has tokenized, top-level
	// inputs and #include targets alike, in first-seen order (spec.md §6
	// typeCheck's "includes" result field).
	AllSources []*source.Source

	version     int
	versionSeen bool
	sawDecl     bool // any non-pragma declaration seen yet, for #version placement check

	structs map[string]*types.StructType
}

// New creates a Parser ready to parse one or more sources into a single
// merged global AST.
func New(data *types.CompilerData, log *errors.Log) *Parser {
	global := ast.New(ast.Global, source.Range{})
	scope := types.NewScope(types.GlobalScope, nil)
	global.Scope = scope
	return &Parser{
		data:         data,
		log:          log,
		Global:       global,
		scope:        scope,
		seenIncludes: make(map[*source.Source]bool),
		structs:      make(map[string]*types.StructType),
	}
}

// GlobalScope returns the shared global scope, populated with every
// top-level symbol defined across all parsed sources.
func (p *Parser) GlobalScope() *types.Scope { return p.scope }

// ParseSource tokenizes and parses one source's top-level declarations,
// merging them into the shared global AST and scope. Call once per
// top-level input source; #include pushes nested frames automatically.
func (p *Parser) ParseSource(src *source.Source) {
	p.AllSources = append(p.AllSources, src)
	tokens := lexer.Tokenize(src, p.log)
	p.frames = append(p.frames, newFrame(src, tokens))
	p.versionSeen = false
	p.parseTopLevel()
	p.frames = p.frames[:len(p.frames)-1]
}

func (p *Parser) top() *frame { return p.frames[len(p.frames)-1] }

func (p *Parser) cur() lexer.Token  { return p.top().current() }
func (p *Parser) peek(n int) lexer.Token { return p.top().peek(n) }
func (p *Parser) advance() lexer.Token { return p.top().advance() }
func (p *Parser) is(kind lexer.Kind) bool { return p.top().is(kind) }
func (p *Parser) atEOF() bool { return p.top().atEOF() }

func (p *Parser) expect(kind lexer.Kind, message string) lexer.Token {
	if p.is(kind) {
		return p.advance()
	}
	p.log.Error(errors.Syntax, p.cur().Range, "%s (found %q)", message, p.cur().Kind.String())
	p.synchronize()
	return p.cur()
}

// synchronize resynchronizes to the next ';' or matching '}' after a
// syntax error, so the rest of the source still gets parsed (spec.md §4.2
// and §7: parser errors never abort the whole compilation).
func (p *Parser) synchronize() {
	depth := 0
	for !p.atEOF() {
		switch p.cur().Kind {
		case lexer.Semicolon:
			if depth == 0 {
				p.advance()
				return
			}
		case lexer.LeftBrace:
			depth++
		case lexer.RightBrace:
			if depth == 0 {
				return
			}
			depth--
			if depth == 0 {
				p.advance()
				return
			}
		}
		p.advance()
	}
}

// parseTopLevel parses every top-level construct in the current frame:
// pragmas, precision declarations, struct declarations, and function or
// variable declarations, optionally prefixed by export/import.
func (p *Parser) parseTopLevel() {
	for !p.atEOF() {
		switch p.cur().Kind {
		case lexer.VersionDirective:
			p.parseVersion()
		case lexer.ExtensionDirective:
			p.parseExtension()
		case lexer.IncludeDirective:
			p.parseInclude()
		case lexer.Pragma:
			p.parsePragma()
		case lexer.KeywordPrecision:
			p.sawDecl = true
			p.parsePrecisionDecl()
		case lexer.KeywordStruct:
			p.sawDecl = true
			p.parseStructDecl()
		case lexer.KeywordExport, lexer.KeywordImport:
			p.sawDecl = true
			p.parseExportedFunction()
		default:
			p.sawDecl = true
			p.parseTopLevelDeclaration()
		}
	}
}

func (p *Parser) parseVersion() {
	tok := p.advance()
	if p.versionSeen {
		p.log.Error(errors.Syntax, tok.Range, "only one #version directive is allowed")
	}
	if p.sawDecl {
		p.log.Error(errors.Syntax, tok.Range, "#version must precede all non-pragma code")
	}
	numTok := p.expect(lexer.IntLiteral, "expected a version number after #version")
	n, _ := strconv.Atoi(numTok.Text())
	p.version = n
	p.versionSeen = true

	node := ast.New(ast.Version, source.Span(tok.Range, numTok.Range))
	node.Literal = numTok.Text()
	p.Global.Append(node)
}

func (p *Parser) parseExtension() {
	tok := p.advance()
	nameTok := p.expect(lexer.Identifier, "expected extension name")
	p.expect(lexer.Colon, "expected ':' after extension name")
	behaviorTok := p.expect(lexer.Identifier, "expected extension behavior")

	behavior := types.ExtDefault
	switch behaviorTok.Text() {
	case "require":
		behavior = types.ExtRequire
	case "enable":
		behavior = types.ExtEnable
	case "warn":
		behavior = types.ExtWarn
	case "disable":
		behavior = types.ExtDisable
	default:
		p.log.Error(errors.UnsupportedExtension, behaviorTok.Range, "unknown extension behavior %q", behaviorTok.Text())
	}
	p.data.ExtensionBehavior[nameTok.Text()] = behavior

	node := ast.New(ast.Extension, source.Span(tok.Range, behaviorTok.Range))
	node.Literal = nameTok.Text()
	node.Extra = behavior
	p.Global.Append(node)
}

func (p *Parser) parsePragma() {
	tok := p.advance()
	node := ast.New(ast.Pragma, tok.Range)
	node.Literal = tok.Text()
	p.Global.Append(node)
}

// parseInclude resolves a `#include "path"` via the compiler's FileAccess
// callback, detects cycles by Source identity, and merges the included
// file's top-level declarations into the current scope (spec.md §4.2).
func (p *Parser) parseInclude() {
	tok := p.advance()
	pathTok := p.expect(lexer.StringLiteral, "expected a quoted path after #include")
	path := lexer.NormalizeText(strings.Trim(pathTok.Text(), `"`))

	includerSrc := p.top().src
	node := ast.New(ast.Include, source.Span(tok.Range, pathTok.Range))
	node.Literal = path
	p.Global.Append(node)

	if p.data.FileAccess == nil {
		p.log.Error(errors.IncludeNotFound, pathTok.Range, "no file-access callback configured for #include %q", path)
		return
	}
	included := p.data.FileAccess(includerSrc.Name, path)
	if included == nil {
		p.log.Error(errors.IncludeNotFound, pathTok.Range, "include not found: %q", path)
		return
	}
	for _, chained := range p.includeChain {
		if chained == included {
			p.log.Error(errors.IncludeCycle, pathTok.Range, "include cycle detected on %q", path)
			return
		}
	}

	p.includeChain = append(p.includeChain, includerSrc)
	p.ParseSource(included)
	p.includeChain = p.includeChain[:len(p.includeChain)-1]
}
