// Package config loads the optional glslx.yaml project file: search
// roots for #include resolution, default compile options, and
// extension-behavior overrides, so a project's settings don't need to be
// repeated as flags on every invocation (SPEC_FULL.md §3 "Configuration").
package config

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/cwbudde/glslx-go/pkg/glslx"
)

// Config is the decoded shape of glslx.yaml.
type Config struct {
	// IncludePaths are directories searched, in order, to resolve a
	// `#include "path"` that isn't found relative to the including file.
	IncludePaths []string `yaml:"includePaths"`

	// CompactSyntaxTree and RemoveWhitespace are OR-ed with the matching
	// compile flags; RenameSymbols applies when --rename-symbols is not
	// given. TrimSymbols is decoded but not consulted: the compile command
	// takes trimming from its --trim-symbols flag alone.
	CompactSyntaxTree bool   `yaml:"compactSyntaxTree"`
	RemoveWhitespace  bool   `yaml:"removeWhitespace"`
	TrimSymbols       bool   `yaml:"trimSymbols"`
	RenameSymbols     string `yaml:"renameSymbols"` // ALL|INTERNAL|NONE

	// ExtensionBehavior maps an extension name to a behavior
	// (default|disable|enable|require|warn). It is decoded but no command
	// passes it to the compiler, so only `#extension` directives in source
	// set extension behavior.
	ExtensionBehavior map[string]string `yaml:"extensionBehavior"`
}

// DefaultFileName is the project config file glslx looks for in the
// current directory when no --config flag is given.
const DefaultFileName = "glslx.yaml"

// Load reads and decodes path. A missing file is not an error: it
// returns a zero-value Config so the CLI falls back to flag defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// RenamePolicy parses the RenameSymbols field into a glslx.RenameSymbols,
// defaulting to RenameNone when empty or unrecognized.
func (c *Config) RenamePolicy() glslx.RenameSymbols {
	switch c.RenameSymbols {
	case "ALL":
		return glslx.RenameAll
	case "INTERNAL":
		return glslx.RenameInternal
	default:
		return glslx.RenameNone
	}
}

// ResolveInclude implements glslx.FileAccess: it first tries the path
// relative to the includer, then each configured IncludePaths entry, in
// order.
func (c *Config) ResolveInclude(includerPath, relativePath string) string {
	candidate := filepath.Join(filepath.Dir(includerPath), relativePath)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	for _, root := range c.IncludePaths {
		candidate = filepath.Join(root, relativePath)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
