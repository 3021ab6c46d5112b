package types

import "github.com/cwbudde/glslx-go/internal/source"

// ExtensionBehavior is the GLSL `#extension` behavior value.
type ExtensionBehavior int

const (
	ExtDefault ExtensionBehavior = iota
	ExtDisable
	ExtEnable
	ExtRequire
	ExtWarn
)

// FileAccess resolves a `#include "path"` relative to the including
// source. It must be synchronous, reentrant-safe (nested includes happen
// within one compilation), idempotent, and side-effect-free with respect
// to compilation order (spec.md §9). Returning nil signals "not found".
type FileAccess func(includerPath, relativePath string) *source.Source

// CompilerData is the per-compilation shared state: nothing here is ever
// hoisted to process scope, because a concurrent caller is expected to
// build one CompilerData per compilation (spec.md §5, §9).
type CompilerData struct {
	ExtensionBehavior map[string]ExtensionBehavior
	FileAccess        FileAccess

	nextSymbolID int64
}

// NewCompilerData creates a fresh, empty compilation context.
func NewCompilerData(fileAccess FileAccess) *CompilerData {
	return &CompilerData{
		ExtensionBehavior: make(map[string]ExtensionBehavior),
		FileAccess:        fileAccess,
	}
}

// NextSymbolID issues the next monotonically increasing symbol id. Ids
// from two different CompilerData values are not comparable (spec.md §5).
func (c *CompilerData) NextSymbolID() int64 {
	c.nextSymbolID++
	return c.nextSymbolID
}
