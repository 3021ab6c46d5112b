// Package errors collects and formats compiler diagnostics. It mirrors the
// teacher's CompilerError (source-context formatting with a caret) but
// generalizes it to an append-only, ordered Log: spec.md §5 requires
// diagnostics from every stage (tokenizer, parser, resolver, rewriter) to
// accumulate in discovery order rather than abort on the first one.
package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/glslx-go/internal/source"
)

// Kind is the closed set of diagnostic kinds from spec.md §7.
type Kind int

const (
	Syntax Kind = iota
	ReservedWord
	UndefinedSymbol
	RedefinedSymbol
	TypeMismatch
	BadSwizzle
	BadConstructor
	AmbiguousCall
	NoMatchingOverload
	BadLValue
	OutsideLoop
	ConstNeedsLiteralInit
	IncludeNotFound
	IncludeCycle
	UnsupportedExtension
	Warning
)

func (k Kind) String() string {
	switch k {
	case Syntax:
		return "syntax"
	case ReservedWord:
		return "reservedWord"
	case UndefinedSymbol:
		return "undefinedSymbol"
	case RedefinedSymbol:
		return "redefinedSymbol"
	case TypeMismatch:
		return "typeMismatch"
	case BadSwizzle:
		return "badSwizzle"
	case BadConstructor:
		return "badConstructor"
	case AmbiguousCall:
		return "ambiguousCall"
	case NoMatchingOverload:
		return "noMatchingOverload"
	case BadLValue:
		return "badLValue"
	case OutsideLoop:
		return "outsideLoop"
	case ConstNeedsLiteralInit:
		return "constNeedsLiteralInit"
	case IncludeNotFound:
		return "includeNotFound"
	case IncludeCycle:
		return "includeCycle"
	case UnsupportedExtension:
		return "unsupportedExtension"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// Severity distinguishes diagnostics that fail a compile from those that
// merely inform (spec.md §7: "a user-facing failure is ... any diagnostic
// of severity >= error").
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// Diagnostic is one reported problem, anchored to a source Range.
type Diagnostic struct {
	Kind     Kind
	Severity Severity
	Range    source.Range
	Message  string
}

// Format renders the diagnostic with source context and a caret, the way
// the teacher's CompilerError.Format does, optionally with ANSI color.
func (d Diagnostic) Format(color bool) string {
	var sb strings.Builder

	label := "error"
	if d.Severity == SeverityWarning {
		label = "warning"
	}

	sb.WriteString(fmt.Sprintf("%s: %s (%s)\n", d.Range.Location(), d.Message, label))

	if d.Range.Source != nil {
		line, col := d.Range.Source.LineColumn(d.Range.Start)
		srcLine := lineText(d.Range.Source.Contents, line)
		if srcLine != "" {
			lineNumStr := fmt.Sprintf("%4d | ", line)
			sb.WriteString(lineNumStr)
			sb.WriteString(srcLine)
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat(" ", len(lineNumStr)+col-1))
			if color {
				sb.WriteString("\033[1;31m")
			}
			width := d.Range.Len()
			if width < 1 {
				width = 1
			}
			sb.WriteString(strings.Repeat("^", width))
			if color {
				sb.WriteString("\033[0m")
			}
		}
	}

	return sb.String()
}

func lineText(contents string, line int) string {
	lineIdx := 1
	start := 0
	for i := 0; i < len(contents); i++ {
		if lineIdx == line {
			end := strings.IndexByte(contents[i:], '\n')
			if end < 0 {
				return contents[start:]
			}
			return contents[start : i+end]
		}
		if contents[i] == '\n' {
			lineIdx++
			start = i + 1
		}
	}
	if lineIdx == line {
		return contents[start:]
	}
	return ""
}

// Log is the append-only diagnostic sink shared across one compilation.
// Concurrent readers are not supported (spec.md §5).
type Log struct {
	diagnostics []Diagnostic
}

// NewLog creates an empty diagnostic log.
func NewLog() *Log {
	return &Log{}
}

// Add appends a diagnostic, preserving discovery order.
func (l *Log) Add(kind Kind, severity Severity, rng source.Range, format string, args ...any) {
	l.diagnostics = append(l.diagnostics, Diagnostic{
		Kind:     kind,
		Severity: severity,
		Range:    rng,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Error appends an error-severity diagnostic.
func (l *Log) Error(kind Kind, rng source.Range, format string, args ...any) {
	l.Add(kind, SeverityError, rng, format, args...)
}

// Warn appends a warning-severity diagnostic (always of Kind Warning
// unless the caller passes a more specific kind, e.g. division by zero).
func (l *Log) Warn(kind Kind, rng source.Range, format string, args ...any) {
	l.Add(kind, SeverityWarning, rng, format, args...)
}

// HasErrors reports whether any diagnostic has error severity.
func (l *Log) HasErrors() bool {
	for _, d := range l.diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Diagnostics returns all diagnostics in discovery order. The returned
// slice must not be mutated by the caller.
func (l *Log) Diagnostics() []Diagnostic {
	return l.diagnostics
}

// Format renders every diagnostic, one per paragraph, in discovery order.
func (l *Log) Format(color bool) string {
	parts := make([]string, 0, len(l.diagnostics))
	for _, d := range l.diagnostics {
		parts = append(parts, d.Format(color))
	}
	return strings.Join(parts, "\n")
}
