// Package compiler wires every stage (tokenizer through emitter) into
// the two entry points spec.md §6 describes: Analyze (behind the public
// TypeCheck), which runs the pipeline up to and including the resolver
// and control-flow analysis for diagnostics only, and
// Compile, which runs the full pipeline and produces one shader string
// per `export` entry point plus the rename map that ties them together.
package compiler

import (
	"sort"

	"github.com/cwbudde/glslx-go/internal/ast"
	"github.com/cwbudde/glslx-go/internal/builtins"
	"github.com/cwbudde/glslx-go/internal/cflow"
	"github.com/cwbudde/glslx-go/internal/errors"
	"github.com/cwbudde/glslx-go/internal/parser"
	"github.com/cwbudde/glslx-go/internal/printer"
	"github.com/cwbudde/glslx-go/internal/renamer"
	"github.com/cwbudde/glslx-go/internal/rewriter"
	"github.com/cwbudde/glslx-go/internal/semantic"
	"github.com/cwbudde/glslx-go/internal/source"
	"github.com/cwbudde/glslx-go/internal/types"
)

// Options configures one compilation (spec.md §6).
type Options struct {
	CompactSyntaxTree bool
	RemoveWhitespace  bool
	RenameSymbols     renamer.Policy
	TrimSymbols       bool
	FileAccess        types.FileAccess
}

// Shader is one `export`-rooted compiled output.
type Shader struct {
	Name   string // the export's original declared name
	Source string // the emitted text
}

// Result is the full outcome of a compilation (spec.md §6
// CompilerResult). Log always holds every diagnostic discovered, in
// discovery order, regardless of whether the compilation as a whole
// succeeded.
type Result struct {
	Shaders  []Shader
	Renaming map[string]string
	Log      *errors.Log
}

// Analyze runs the pipeline through semantic analysis and control-flow
// analysis only (spec.md §6 typeCheck): no rewriting, renaming, or
// emission, just the diagnostics a caller wants from "does this parse
// and type-check". It returns every source actually tokenized (the
// inputs plus every transitively #include-d file, in first-seen order)
// alongside the merged global AST, the compilation context, and the log,
// so a caller that wants to go further can call Compile's remaining
// stages directly instead of re-parsing.
func Analyze(sources []*source.Source, fileAccess types.FileAccess) (global *ast.Node, includes []*source.Source, data *types.CompilerData, log *errors.Log) {
	log = errors.NewLog()
	data = types.NewCompilerData(fileAccess)

	p := parser.New(data, log)
	builtins.Install(p.GlobalScope(), data)
	for _, src := range sources {
		p.ParseSource(src)
	}

	semantic.New(data, log, p.Global, p.GlobalScope()).Analyze()

	cflow.AnalyzeGlobal(p.Global, log)

	return p.Global, p.AllSources, data, log
}

// Compile runs the full pipeline described in spec.md §2: tokenize and
// parse every source into one merged global AST, resolve and type-check
// it, fold/simplify once, then for every `export`-flagged top-level
// function clone the tree, trim it to that export's reachable subgraph,
// and optionally compact it. Once every export has its own trimmed
// clone, a single renamer pass runs across all of them (so a symbol
// shared by two exports gets one name), and finally each clone is
// printed independently. A diagnostic of severity >= error anywhere
// aborts before any shader is emitted (spec.md §7: "compile returns null
// and emits nothing").
func Compile(sources []*source.Source, opts Options) *Result {
	global, _, _, log := Analyze(sources, opts.FileAccess)

	if log.HasErrors() {
		return &Result{Log: log}
	}

	rewriter.FoldAndSimplify(global, log)

	exports := exportedFunctions(global)

	clones := make([]*ast.Node, len(exports))
	for i, export := range exports {
		clones[i] = rewriter.TrimToExport(global, export, opts.TrimSymbols, opts.CompactSyntaxTree)
	}

	if log.HasErrors() {
		return &Result{Log: log}
	}

	renaming := renamer.Rename(exports, clones, opts.RenameSymbols)

	shaders := make([]Shader, len(exports))
	for i, export := range exports {
		shaders[i] = Shader{
			Name:   export.Name,
			Source: printer.Print(clones[i], printer.Options{RemoveWhitespace: opts.RemoveWhitespace}),
		}
	}

	return &Result{Shaders: shaders, Renaming: renaming, Log: log}
}

// exportedFunctions returns every top-level FUNCTION symbol flagged
// EXPORTED, in declaration order, skipping a prototype whose definition
// (its Sibling) already appears earlier in the list.
func exportedFunctions(global *ast.Node) []*types.Symbol {
	var out []*types.Symbol
	seen := map[*types.Symbol]bool{}
	for _, child := range global.Children {
		if child.Kind != ast.Function {
			continue
		}
		sym, ok := child.ResolvedSymbol.(*types.Symbol)
		if !ok || sym == nil || !sym.IsExported() {
			continue
		}
		if seen[sym] {
			continue
		}
		seen[sym] = true
		if sym.Sibling != nil {
			seen[sym.Sibling] = true
		}
		out = append(out, sym)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
