// Package lexer implements the shading language's maximal-munch tokenizer:
// a single disambiguating regex alternation, tried in priority order, over
// which the whole source is split into lexemes and gaps (spec.md §4.1).
package lexer

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/cwbudde/glslx-go/internal/errors"
	"github.com/cwbudde/glslx-go/internal/source"
)

// Purpose selects how comment trivia is surfaced. COMPILE (the default)
// attaches comments to the next non-comment token and discards whitespace;
// FORMAT emits SINGLE_LINE_COMMENT/MULTI_LINE_COMMENT tokens directly in
// the stream, for tools (formatters, hover) that need verbatim layout.
type Purpose int

const (
	Compile Purpose = iota
	Format
)

// Option configures a tokenization run. Modeled on the teacher's
// functional-option lexer configuration (WithPreserveComments,
// WithTracing), generalized to the one option this tokenizer needs.
type Option func(*config)

type config struct {
	purpose Purpose
}

// WithPurpose selects COMPILE or FORMAT trivia handling.
func WithPurpose(p Purpose) Option {
	return func(c *config) { c.purpose = p }
}

// The priority-ordered alternation. Order matters: float shapes before
// int (so "1.0" isn't split into "1" "." "0"), multi-character operators
// before their single-character prefixes (so ">>=" isn't split into
// ">>" "="), and the directive-flavored pragma shares no prefix with
// identifiers so its position relative to them is immaterial.
var (
	floatPattern = strings.Join([]string{
		`[0-9]+\.[0-9]+(?:[eE][+-]?[0-9]+)?[fF]?`, // 1.0, 1.0e10, 1.0f
		`[0-9]+\.(?:[eE][+-]?[0-9]+)?[fF]?`,        // 1., 1.e10
		`\.[0-9]+(?:[eE][+-]?[0-9]+)?[fF]?`,        // .5, .5e-3
		`[0-9]+[eE][+-]?[0-9]+[fF]?`,               // 1e10
		`[0-9]+[fF]`,                               // 1f
	}, "|")
	intPattern        = `0[xX][0-9a-fA-F]+|0[0-7]+|[0-9]+`
	whitespacePattern = `[ \t\r\n]+`
	blockComment      = `/\*[\s\S]*?\*/`
	lineComment       = `//[^\n]*`
	identifierPattern = `[A-Za-z_][A-Za-z0-9_]*`
	pragmaPattern     = `#[A-Za-z_][A-Za-z0-9_]*`
	stringPattern     = `"[^"\n]*"`

	operatorPattern = buildOperatorPattern()

	tokenRegex = regexp.MustCompile(strings.Join([]string{
		floatPattern, intPattern, whitespacePattern, blockComment, lineComment,
		operatorPattern, identifierPattern, pragmaPattern, stringPattern,
	}, "|"))

	hexOrOctalRegex = regexp.MustCompile(`^0[xX0-7]`)
	floatFullRegex  = regexp.MustCompile(`^(?:` + floatPattern + `)$`)
)

func buildOperatorPattern() string {
	parts := make([]string, len(operators))
	for i, op := range operators {
		parts[i] = regexp.QuoteMeta(op.text)
	}
	return strings.Join(parts, "|")
}

// Tokenize splits src.Contents into a token stream, reporting a fatal
// Syntax diagnostic and stopping (spec.md §4.1) the moment it finds
// non-empty text between two lexemes. A synthesized EOF token always
// terminates the returned slice, carrying any trailing comment trivia.
func Tokenize(src *source.Source, log *errors.Log, opts ...Option) []Token {
	cfg := config{purpose: Compile}
	for _, opt := range opts {
		opt(&cfg)
	}

	contents := src.Contents
	matches := tokenRegex.FindAllStringIndex(contents, -1)

	tokens := make([]Token, 0, len(matches))
	var pendingComments []source.Range

	cursor := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if start > cursor {
			gap := source.NewRange(src, cursor, start)
			log.Error(errors.Syntax, gap, "unexpected character(s) %q", contents[cursor:start])
			return finish(tokens, src, cursor, pendingComments)
		}
		cursor = end

		text := contents[start:end]
		rng := source.NewRange(src, start, end)
		r := []rune(text)[0]

		switch {
		case unicode.IsSpace(r):
			continue

		case r == '/' && strings.HasPrefix(text, "//"):
			appendComment(&tokens, &pendingComments, Token{Range: rng, Kind: SingleLineComment}, cfg.purpose)

		case r == '/' && strings.HasPrefix(text, "/*"):
			appendComment(&tokens, &pendingComments, Token{Range: rng, Kind: MultiLineComment}, cfg.purpose)

		case unicode.IsLetter(r) || r == '_':
			if kind, ok := keywords[text]; ok {
				tokens = appendToken(tokens, Token{Range: rng, Kind: kind}, &pendingComments)
				continue
			}
			if reservedWords[text] {
				log.Warn(errors.ReservedWord, rng, "%q is a reserved word", text)
				continue // token dropped, lexing continues (spec.md §4.1)
			}
			tokens = appendToken(tokens, Token{Range: rng, Kind: Identifier}, &pendingComments)

		case unicode.IsDigit(r) || r == '.' && len(text) > 1:
			tokens = appendToken(tokens, Token{Range: rng, Kind: classifyNumber(text)}, &pendingComments)

		case r == '#':
			tokens = appendToken(tokens, Token{Range: rng, Kind: directiveKind(text)}, &pendingComments)

		case r == '"':
			tokens = appendToken(tokens, Token{Range: rng, Kind: StringLiteral}, &pendingComments)

		default:
			tokens = appendToken(tokens, Token{Range: rng, Kind: operatorKind(text)}, &pendingComments)
		}
	}

	return finish(tokens, src, cursor, pendingComments)
}

func appendToken(tokens []Token, tok Token, pending *[]source.Range) []Token {
	tok.Comments = *pending
	*pending = nil
	return append(tokens, tok)
}

func appendComment(tokens *[]Token, pending *[]source.Range, tok Token, purpose Purpose) {
	if purpose == Format {
		*tokens = append(*tokens, tok)
		return
	}
	*pending = append(*pending, tok.Range)
}

func finish(tokens []Token, src *source.Source, end int, pending []source.Range) []Token {
	eof := Token{Range: source.NewRange(src, end, end), Kind: EOF, Comments: pending}
	return append(tokens, eof)
}

func directiveKind(text string) Kind {
	switch text {
	case "#version":
		return VersionDirective
	case "#extension":
		return ExtensionDirective
	case "#include":
		return IncludeDirective
	default:
		return Pragma
	}
}

func operatorKind(text string) Kind {
	for _, op := range operators {
		if op.text == text {
			return op.kind
		}
	}
	return EOF // unreachable: the regex only matches a known operator spelling
}

func classifyNumber(text string) Kind {
	if hexOrOctalRegex.MatchString(text) {
		return IntLiteral
	}
	if floatFullRegex.MatchString(text) {
		return FloatLiteral
	}
	return IntLiteral
}

// NormalizeText applies Unicode NFC normalization to a STRING_LITERAL
// payload; the parser applies it to an #include path before handing it to
// the file-access callback, so two byte-distinct but canonically
// equivalent spellings of the same path reach the callback as the same
// string (spec.md §4.2 #include; SPEC_FULL.md §4).
func NormalizeText(s string) string {
	return norm.NFC.String(s)
}
