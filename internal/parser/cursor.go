package parser

import (
	"github.com/cwbudde/glslx-go/internal/lexer"
	"github.com/cwbudde/glslx-go/internal/source"
)

// frame holds the token stream and cursor for one source file. #include
// pushes a new frame and pops back to the includer's frame when the
// included file's top-level declarations are exhausted (spec.md §4.2).
type frame struct {
	src    *source.Source
	tokens []lexer.Token
	pos    int
}

func newFrame(src *source.Source, tokens []lexer.Token) *frame {
	return &frame{src: src, tokens: tokens}
}

func (f *frame) current() lexer.Token {
	if f.pos >= len(f.tokens) {
		return f.tokens[len(f.tokens)-1] // EOF
	}
	return f.tokens[f.pos]
}

func (f *frame) peek(ahead int) lexer.Token {
	idx := f.pos + ahead
	if idx >= len(f.tokens) {
		return f.tokens[len(f.tokens)-1]
	}
	return f.tokens[idx]
}

func (f *frame) advance() lexer.Token {
	tok := f.current()
	if f.pos < len(f.tokens) {
		f.pos++
	}
	return tok
}

func (f *frame) atEOF() bool {
	return f.current().Kind == lexer.EOF
}

func (f *frame) is(kind lexer.Kind) bool {
	return f.current().Kind == kind
}
