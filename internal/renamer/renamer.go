// Package renamer computes the global identifier-rename map described in
// spec.md §4.6: after every export root has been trimmed to its own
// reachable subgraph (internal/rewriter.TrimToExport), this package
// assigns each surviving symbol a name that minimizes emitted size
// without colliding with a keyword, a built-in API name, or another
// symbol visible at the same time.
package renamer

import (
	"sort"

	"github.com/cwbudde/glslx-go/internal/ast"
	"github.com/cwbudde/glslx-go/internal/types"
)

// Policy selects which symbols are eligible for renaming (spec.md §6
// Options "renameSymbols: ALL|INTERNAL|NONE").
type Policy int

const (
	// None renames nothing beyond the mandatory entry-point -> "main"
	// assignment every compiled shader needs to be valid output.
	None Policy = iota
	// Internal renames every symbol except the ones a host program binds
	// to by name: uniforms, attributes, varyings, and imported symbols
	// (and the exported entry point, already fixed to "main").
	Internal
	// All renames every symbol not NATIVE or IMPORTED, including
	// uniforms/attributes/varyings; a host using this policy must consult
	// the returned rename map to find each interface name's new spelling.
	All
)

// Rename assigns Symbol.RenamedName across every symbol reachable from
// exports (one entry per `export`-flagged function, paired with its
// already-trimmed clone in trimmed) and returns the subset of original
// names that actually changed, keyed by original name (spec.md §6
// CompilerResult.renaming). Each export's own top-level function symbol
// (and its prototype Sibling, if any) is always renamed to "main" first,
// reserving that name before the general algorithm runs, regardless of
// policy: a compiled shader is not valid output otherwise.
func Rename(exports []*types.Symbol, trimmed []*ast.Node, policy Policy) map[string]string {
	renaming := map[string]string{}

	for _, export := range exports {
		assign(export, "main", renaming)
		if export.Sibling != nil {
			assign(export.Sibling, "main", renaming)
		}
	}

	if policy == None {
		return renaming
	}

	blacklist := map[string]bool{}
	for name := range reservedWords {
		blacklist[name] = true
	}
	blacklist["main"] = true

	global, locals, fields := collectCandidates(trimmed, policy, blacklist)

	globalSeq := &sequence{blacklist: blacklist}
	rankAndAssign(global, globalSeq, renaming)

	for _, scopeLocals := range locals {
		seq := &sequence{blacklist: blacklist}
		rankAndAssign(scopeLocals, seq, renaming)
	}

	for _, structFields := range fields {
		seq := &sequence{blacklist: blacklist}
		rankAndAssign(structFields, seq, renaming)
	}

	return renaming
}

func assign(sym *types.Symbol, name string, renaming map[string]string) {
	if sym.Name != name {
		renaming[sym.Name] = name
	}
	sym.RenamedName = name
}

// rankAndAssign orders candidates by descending RefCount (ties broken by
// ascending ID for determinism, spec.md §4.6) and assigns each the next
// available short name from seq.
func rankAndAssign(candidates []*types.Symbol, seq *sequence, renaming map[string]string) {
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].RefCount != candidates[j].RefCount {
			return candidates[i].RefCount > candidates[j].RefCount
		}
		return candidates[i].ID < candidates[j].ID
	})
	for _, sym := range candidates {
		if sym.RenamedName != "" {
			continue // already fixed (the entry point, or a Sibling pair)
		}
		name := seq.next()
		assign(sym, name, renaming)
		if sym.Sibling != nil && sym.Sibling.RenamedName == "" {
			assign(sym.Sibling, name, renaming)
		}
	}
}

// sequence hands out successive shortest-first identifiers, skipping any
// that collide with blacklist.
type sequence struct {
	blacklist map[string]bool
	counter   int
}

const firstAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_"
const restAlphabet = firstAlphabet + "0123456789"

func (s *sequence) next() string {
	for {
		name := indexToName(s.counter)
		s.counter++
		if !s.blacklist[name] {
			return name
		}
	}
}

// indexToName maps a non-negative counter to a bijective base-N
// identifier: index 0..52 are the single characters of firstAlphabet, then
// two-character names resume at "aa" and so on, so names are handed out
// shortest-first (spec.md §4.6 "minimizes emitted size").
func indexToName(i int) string {
	first := i % len(firstAlphabet)
	rem := i / len(firstAlphabet)
	out := []byte{firstAlphabet[first]}
	for rem > 0 {
		rem--
		d := rem % len(restAlphabet)
		out = append(out, restAlphabet[d])
		rem /= len(restAlphabet)
	}
	return string(out)
}
