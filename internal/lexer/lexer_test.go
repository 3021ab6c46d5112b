package lexer

import (
	"testing"

	"github.com/cwbudde/glslx-go/internal/errors"
	"github.com/cwbudde/glslx-go/internal/source"
)

func tokenize(t *testing.T, contents string) ([]Token, *errors.Log) {
	t.Helper()
	log := errors.NewLog()
	src := source.New("test.glsl", contents)
	return Tokenize(src, log), log
}

func TestTokenizeKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Kind
	}{
		{"identifier and semicolon", "foo;", []Kind{Identifier, Semicolon, EOF}},
		{"int literal", "42", []Kind{IntLiteral, EOF}},
		{"hex literal", "0x1F", []Kind{IntLiteral, EOF}},
		{"octal literal", "017", []Kind{IntLiteral, EOF}},
		{"float literal", "1.0", []Kind{FloatLiteral, EOF}},
		{"float leading dot", ".5", []Kind{FloatLiteral, EOF}},
		{"float trailing dot", "1.", []Kind{FloatLiteral, EOF}},
		{"float exponent", "1e10", []Kind{FloatLiteral, EOF}},
		{"float suffix", "1f", []Kind{FloatLiteral, EOF}},
		{"keyword if", "if", []Kind{KeywordIf, EOF}},
		{"keyword export", "export", []Kind{KeywordExport, EOF}},
		{"version directive", "#version 100", []Kind{VersionDirective, IntLiteral, EOF}},
		{"include directive", `#include "a.glsl"`, []Kind{IncludeDirective, StringLiteral, EOF}},
		{"unknown pragma", "#foo", []Kind{Pragma, EOF}},
		{"shift-left-equals before shift-left", "a <<= b", []Kind{Identifier, ShiftLeftEquals, Identifier, EOF}},
		{"shift-left before less-than", "a << b", []Kind{Identifier, ShiftLeft, Identifier, EOF}},
		{"less-than alone", "a < b", []Kind{Identifier, LessThan, Identifier, EOF}},
		{"plus-plus not two plusses", "a++", []Kind{Identifier, PlusPlus, EOF}},
		{"string literal", `"hello"`, []Kind{StringLiteral, EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, log := tokenize(t, tt.input)
			if log.HasErrors() {
				t.Fatalf("unexpected errors: %s", log.Format(false))
			}
			if len(tokens) != len(tt.want) {
				t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(tt.want), tokens)
			}
			for i, k := range tt.want {
				if tokens[i].Kind != k {
					t.Errorf("token[%d].Kind = %v, want %v", i, tokens[i].Kind, k)
				}
			}
		})
	}
}

func TestTokenizeSkipsWhitespaceAndComments(t *testing.T) {
	tokens, log := tokenize(t, "  foo   // a comment\n  /* block */  bar  ")
	if log.HasErrors() {
		t.Fatalf("unexpected errors: %s", log.Format(false))
	}

	var kinds []Kind
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	want := []Kind{Identifier, Identifier, EOF}
	if len(kinds) != len(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}
	for i, k := range want {
		if kinds[i] != k {
			t.Errorf("kinds[%d] = %v, want %v", i, kinds[i], k)
		}
	}
}

func TestTokenizeCommentsAttachToNextTokenInCompileMode(t *testing.T) {
	tokens, _ := tokenize(t, "// leading\nfoo")
	if len(tokens) != 2 {
		t.Fatalf("got %d tokens, want 2", len(tokens))
	}
	if len(tokens[0].Comments) != 1 {
		t.Errorf("expected the identifier to carry 1 leading comment, got %d", len(tokens[0].Comments))
	}
}

func TestTokenizeFormatPurposeEmitsCommentTokens(t *testing.T) {
	log := errors.NewLog()
	src := source.New("test.glsl", "// leading\nfoo")
	tokens := Tokenize(src, log, WithPurpose(Format))

	if log.HasErrors() {
		t.Fatalf("unexpected errors: %s", log.Format(false))
	}
	want := []Kind{SingleLineComment, Identifier, EOF}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}
	for i, k := range want {
		if tokens[i].Kind != k {
			t.Errorf("token[%d].Kind = %v, want %v", i, tokens[i].Kind, k)
		}
	}
}

func TestTokenizeReservedWordIsDroppedWithWarning(t *testing.T) {
	tokens, log := tokenize(t, "goto foo")

	if log.HasErrors() {
		t.Fatalf("expected a warning, not an error: %s", log.Format(false))
	}
	diags := log.Diagnostics()
	if len(diags) != 1 || diags[0].Kind != errors.ReservedWord {
		t.Fatalf("expected one ReservedWord diagnostic, got %v", diags)
	}

	// "goto" itself is dropped; only "foo" and EOF remain.
	want := []Kind{Identifier, EOF}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}
}

func TestTokenizeUnexpectedCharacterIsFatal(t *testing.T) {
	_, log := tokenize(t, "foo @ bar")

	if !log.HasErrors() {
		t.Fatal("expected an error for the unrecognized '@' character")
	}
	if log.Diagnostics()[0].Kind != errors.Syntax {
		t.Errorf("expected a Syntax diagnostic, got %v", log.Diagnostics()[0].Kind)
	}
}

func TestTokenText(t *testing.T) {
	tokens, _ := tokenize(t, "foobar")
	if got := tokens[0].Text(); got != "foobar" {
		t.Errorf("Text() = %q, want %q", got, "foobar")
	}
}

func TestNormalizeTextIsIdempotentOnASCII(t *testing.T) {
	const s = "shaders/common.glsl"
	if got := NormalizeText(s); got != s {
		t.Errorf("NormalizeText(%q) = %q, want unchanged", s, got)
	}
}

func TestNormalizeTextCanonicalizesComposedAndDecomposedForms(t *testing.T) {
	composed := "café.glsl"       // "é" as a single code point
	decomposed := "café.glsl"    // "e" + combining acute accent

	if composed == decomposed {
		t.Fatal("test fixture strings must differ byte-for-byte before normalization")
	}
	if NormalizeText(composed) != NormalizeText(decomposed) {
		t.Errorf("NormalizeText did not canonicalize equivalent Unicode spellings")
	}
}
