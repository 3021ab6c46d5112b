// Package glslx is the public API for the shading-language compiler and
// minifier described in spec.md §6: TypeCheck for diagnostics-only
// checking, Compile for the full pipeline producing one shader string
// per `export` entry point plus the cross-shader rename map.
package glslx

import (
	"github.com/cwbudde/glslx-go/internal/ast"
	"github.com/cwbudde/glslx-go/internal/compiler"
	"github.com/cwbudde/glslx-go/internal/errors"
	"github.com/cwbudde/glslx-go/internal/renamer"
	"github.com/cwbudde/glslx-go/internal/source"
)

// RenameSymbols selects which symbols the compiler is allowed to rename
// (spec.md §6 Options "renameSymbols: ALL|INTERNAL|NONE").
type RenameSymbols = renamer.Policy

const (
	RenameNone     = renamer.None
	RenameInternal = renamer.Internal
	RenameAll      = renamer.All
)

// FileAccess resolves a `#include "path"` relative to the including
// source; returning nil signals "not found" (spec.md §6, §9).
type FileAccess = func(includerPath, relativePath string) *source.Source

// Options configures a compilation (spec.md §6).
type Options struct {
	// CompactSyntaxTree merges adjacent VARIABLES declarations of the
	// same type/qualifiers and inlines single-use const locals.
	CompactSyntaxTree bool
	// RemoveWhitespace emits the minimum whitespace the grammar requires.
	RemoveWhitespace bool
	// RenameSymbols selects the renaming policy; the zero value is
	// RenameNone.
	RenameSymbols RenameSymbols
	// TrimSymbols drops, from each export's emitted shader, every
	// top-level declaration not transitively reachable from that export
	// (spec.md §4.5 step 4). Set to false to keep every declaration in
	// every shader regardless of reachability; TypeCheck ignores this
	// field since it never rewrites.
	TrimSymbols bool
	// FileAccess resolves #include directives; nil rejects every include.
	FileAccess FileAccess
}

// Shader is one compiled `export` entry point's output.
type Shader struct {
	Name     string
	Contents string
}

// CompilerResult is Compile's return value (spec.md §6). Log always
// carries every diagnostic discovered, even on success.
type CompilerResult struct {
	Shaders  []Shader
	Renaming map[string]string
	Log      *errors.Log
}

// TypeCheckResult is TypeCheck's return value (spec.md §6).
type TypeCheckResult struct {
	GlobalAST *ast.Node
	Includes  []*source.Source
	Log       *errors.Log
}

// TypeCheck tokenizes, parses, and resolves sources without rewriting,
// renaming, or emitting anything; it returns even when diagnostics of
// error severity were found (spec.md §6 "returns even on errors").
func TypeCheck(sources []*source.Source, opts Options) *TypeCheckResult {
	global, includes, _, log := compiler.Analyze(sources, toFileAccess(opts.FileAccess))
	return &TypeCheckResult{GlobalAST: global, Includes: includes, Log: log}
}

// Compile runs the full pipeline (spec.md §2, §6). It returns a result
// with an empty Shaders/Renaming and a Log holding the triggering
// diagnostics if any diagnostic of severity >= error was found before
// rewriting could run; otherwise Shaders has one entry per export.
func Compile(sources []*source.Source, opts Options) *CompilerResult {
	r := compiler.Compile(sources, compiler.Options{
		CompactSyntaxTree: opts.CompactSyntaxTree,
		RemoveWhitespace:  opts.RemoveWhitespace,
		RenameSymbols:     opts.RenameSymbols,
		TrimSymbols:       opts.TrimSymbols,
		FileAccess:        toFileAccess(opts.FileAccess),
	})
	shaders := make([]Shader, len(r.Shaders))
	for i, s := range r.Shaders {
		shaders[i] = Shader{Name: s.Name, Contents: s.Source}
	}
	return &CompilerResult{Shaders: shaders, Renaming: r.Renaming, Log: r.Log}
}

func toFileAccess(fa FileAccess) func(string, string) *source.Source {
	if fa == nil {
		return nil
	}
	return func(includer, path string) *source.Source { return fa(includer, path) }
}
