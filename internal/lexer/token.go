package lexer

import "github.com/cwbudde/glslx-go/internal/source"

// Kind is the closed set of token kinds (spec.md §4.1).
type Kind int

const (
	EOF Kind = iota

	Identifier
	IntLiteral
	FloatLiteral
	StringLiteral

	// Directives recognized with dedicated kinds because the parser treats
	// them structurally; every other '#word' is a generic Pragma token.
	VersionDirective
	ExtensionDirective
	IncludeDirective
	Pragma

	// Trivia tokens, only emitted when the lexer's Purpose is Format.
	SingleLineComment
	MultiLineComment

	// Structural keywords.
	KeywordIf
	KeywordElse
	KeywordFor
	KeywordWhile
	KeywordDo
	KeywordReturn
	KeywordDiscard
	KeywordContinue
	KeywordBreak
	KeywordStruct
	KeywordPrecision
	KeywordConst
	KeywordUniform
	KeywordAttribute
	KeywordVarying
	KeywordIn
	KeywordOut
	KeywordInOut
	KeywordHighp
	KeywordMediump
	KeywordLowp
	KeywordTrue
	KeywordFalse
	KeywordExport
	KeywordImport

	// Operators and punctuation.
	Plus
	Minus
	Star
	Slash
	Percent
	PlusPlus
	MinusMinus
	Equals
	PlusEquals
	MinusEquals
	StarEquals
	SlashEquals
	PercentEquals
	EqualsEquals
	NotEquals
	LessThan
	GreaterThan
	LessThanEquals
	GreaterThanEquals
	ShiftLeft
	ShiftRight
	ShiftLeftEquals
	ShiftRightEquals
	LogicalAnd
	LogicalOr
	LogicalXor
	Ampersand
	AmpersandEquals
	Bar
	BarEquals
	Caret
	CaretEquals
	Not
	Tilde
	Question
	Colon
	Semicolon
	Comma
	Dot
	LeftParen
	RightParen
	LeftBrace
	RightBrace
	LeftBracket
	RightBracket
)

var kindNames = map[Kind]string{
	EOF: "EOF", Identifier: "IDENTIFIER", IntLiteral: "INT_LITERAL",
	FloatLiteral: "FLOAT_LITERAL", StringLiteral: "STRING_LITERAL",
	VersionDirective: "#version", ExtensionDirective: "#extension",
	IncludeDirective: "#include", Pragma: "PRAGMA",
	SingleLineComment: "SINGLE_LINE_COMMENT", MultiLineComment: "MULTI_LINE_COMMENT",
	KeywordIf: "if", KeywordElse: "else", KeywordFor: "for", KeywordWhile: "while",
	KeywordDo: "do", KeywordReturn: "return", KeywordDiscard: "discard",
	KeywordContinue: "continue", KeywordBreak: "break", KeywordStruct: "struct",
	KeywordPrecision: "precision", KeywordConst: "const", KeywordUniform: "uniform",
	KeywordAttribute: "attribute", KeywordVarying: "varying", KeywordIn: "in",
	KeywordOut: "out", KeywordInOut: "inout", KeywordHighp: "highp",
	KeywordMediump: "mediump", KeywordLowp: "lowp", KeywordTrue: "true",
	KeywordFalse: "false", KeywordExport: "export", KeywordImport: "import",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	PlusPlus: "++", MinusMinus: "--", Equals: "=", PlusEquals: "+=",
	MinusEquals: "-=", StarEquals: "*=", SlashEquals: "/=", PercentEquals: "%=",
	EqualsEquals: "==", NotEquals: "!=", LessThan: "<", GreaterThan: ">",
	LessThanEquals: "<=", GreaterThanEquals: ">=", ShiftLeft: "<<", ShiftRight: ">>",
	ShiftLeftEquals: "<<=", ShiftRightEquals: ">>=", LogicalAnd: "&&",
	LogicalOr: "||", LogicalXor: "^^", Ampersand: "&", AmpersandEquals: "&=",
	Bar: "|", BarEquals: "|=", Caret: "^", CaretEquals: "^=", Not: "!",
	Tilde: "~", Question: "?", Colon: ":", Semicolon: ";", Comma: ",",
	Dot: ".", LeftParen: "(", RightParen: ")", LeftBrace: "{", RightBrace: "}",
	LeftBracket: "[", RightBracket: "]",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "ILLEGAL"
}

// Token is one lexeme: a range, a kind, and any trailing-comment trivia it
// carries (spec.md §3). Comments attach to the NEXT non-comment token when
// Purpose is Compile; the EOF token carries a file's trailing comments.
type Token struct {
	Range    source.Range
	Kind     Kind
	Comments []source.Range
}

// Text returns the token's exact source text.
func (t Token) Text() string { return t.Range.Text() }

// keywords maps reserved identifier spellings to their dedicated kind.
var keywords = map[string]Kind{
	"if": KeywordIf, "else": KeywordElse, "for": KeywordFor, "while": KeywordWhile,
	"do": KeywordDo, "return": KeywordReturn, "discard": KeywordDiscard,
	"continue": KeywordContinue, "break": KeywordBreak, "struct": KeywordStruct,
	"precision": KeywordPrecision, "const": KeywordConst, "uniform": KeywordUniform,
	"attribute": KeywordAttribute, "varying": KeywordVarying, "in": KeywordIn,
	"out": KeywordOut, "inout": KeywordInOut, "highp": KeywordHighp,
	"mediump": KeywordMediump, "lowp": KeywordLowp, "true": KeywordTrue,
	"false": KeywordFalse, "export": KeywordExport, "import": KeywordImport,
}

// reservedWords are identifier-shaped tokens the shading language forbids
// from user declaration (future keywords, C reserved words that leaked
// into the GLSL ES grammar) but that are not otherwise meaningful today.
// Use of one is reported (spec.md §4.1) and the token is dropped.
var reservedWords = map[string]bool{
	"asm": true, "class": true, "union": true, "enum": true, "typedef": true,
	"template": true, "this": true, "packed": true, "goto": true,
	"switch": true, "default": true, "inline": true, "noinline": true,
	"volatile": true, "public": true, "static": true, "extern": true,
	"external": true, "interface": true, "long": true, "short": true,
	"double": true, "half": true, "fixed": true, "unsigned": true,
	"superp": true, "input": true, "output": true, "hvec2": true,
	"hvec3": true, "hvec4": true, "dvec2": true, "dvec3": true, "dvec4": true,
	"fvec2": true, "fvec3": true, "fvec4": true, "sampler1D": true,
	"sampler3D": true, "sampler1DShadow": true, "sampler2DShadow": true,
	"sampler2DRect": true, "sampler3DRect": true, "sampler2DRectShadow": true,
	"sizeof": true, "cast": true, "namespace": true, "using": true,
}

// Operator is the alphabet of multi- and single-character operator
// spellings, checked in priority order so "<<=" is tried before "<<"
// before "<" (spec.md §4.1: "order is semantically significant").
var operators = []struct {
	text string
	kind Kind
}{
	{"<<=", ShiftLeftEquals}, {">>=", ShiftRightEquals},
	{"++", PlusPlus}, {"--", MinusMinus}, {"<<", ShiftLeft}, {">>", ShiftRight},
	{"<=", LessThanEquals}, {">=", GreaterThanEquals}, {"==", EqualsEquals},
	{"!=", NotEquals}, {"&&", LogicalAnd}, {"||", LogicalOr}, {"^^", LogicalXor},
	{"+=", PlusEquals}, {"-=", MinusEquals}, {"*=", StarEquals}, {"/=", SlashEquals},
	{"%=", PercentEquals}, {"&=", AmpersandEquals}, {"|=", BarEquals}, {"^=", CaretEquals},
	{"+", Plus}, {"-", Minus}, {"*", Star}, {"/", Slash}, {"%", Percent},
	{"=", Equals}, {"<", LessThan}, {">", GreaterThan}, {"&", Ampersand},
	{"|", Bar}, {"^", Caret}, {"!", Not}, {"~", Tilde}, {"?", Question},
	{":", Colon}, {";", Semicolon}, {",", Comma}, {".", Dot},
	{"(", LeftParen}, {")", RightParen}, {"{", LeftBrace}, {"}", RightBrace},
	{"[", LeftBracket}, {"]", RightBracket},
}
