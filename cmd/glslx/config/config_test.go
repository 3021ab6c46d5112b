package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/glslx-go/pkg/glslx"
)

func TestLoadMissingFileReturnsZeroValue(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for a missing file", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned a nil Config for a missing file")
	}
	if len(cfg.IncludePaths) != 0 {
		t.Errorf("IncludePaths = %v, want empty", cfg.IncludePaths)
	}
}

func TestLoadDecodesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "glslx.yaml")
	contents := `
includePaths:
  - lib
  - vendor/shaders
compactSyntaxTree: true
removeWhitespace: true
trimSymbols: true
renameSymbols: ALL
extensionBehavior:
  GL_OES_standard_derivatives: enable
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if got := cfg.IncludePaths; len(got) != 2 || got[0] != "lib" || got[1] != "vendor/shaders" {
		t.Errorf("IncludePaths = %v, want [lib vendor/shaders]", got)
	}
	if !cfg.CompactSyntaxTree || !cfg.RemoveWhitespace || !cfg.TrimSymbols {
		t.Errorf("boolean fields not decoded: %+v", cfg)
	}
	if cfg.RenameSymbols != "ALL" {
		t.Errorf("RenameSymbols = %q, want ALL", cfg.RenameSymbols)
	}
	if cfg.ExtensionBehavior["GL_OES_standard_derivatives"] != "enable" {
		t.Errorf("ExtensionBehavior = %v", cfg.ExtensionBehavior)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "glslx.yaml")
	if err := os.WriteFile(path, []byte("includePaths: [unterminated"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected Load() to fail on malformed YAML")
	}
}

func TestRenamePolicy(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want glslx.RenameSymbols
	}{
		{"all", "ALL", glslx.RenameAll},
		{"internal", "INTERNAL", glslx.RenameInternal},
		{"none explicit", "NONE", glslx.RenameNone},
		{"empty defaults to none", "", glslx.RenameNone},
		{"unrecognized defaults to none", "garbage", glslx.RenameNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{RenameSymbols: tt.in}
			if got := cfg.RenamePolicy(); got != tt.want {
				t.Errorf("RenamePolicy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveIncludePrefersPathRelativeToIncluder(t *testing.T) {
	dir := t.TempDir()
	includer := filepath.Join(dir, "main.glsl")
	if err := os.WriteFile(includer, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}
	sibling := filepath.Join(dir, "common.glsl")
	if err := os.WriteFile(sibling, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{}
	got := cfg.ResolveInclude(includer, "common.glsl")
	if got != sibling {
		t.Errorf("ResolveInclude() = %q, want %q", got, sibling)
	}
}

func TestResolveIncludeFallsBackToIncludePaths(t *testing.T) {
	dir := t.TempDir()
	includer := filepath.Join(dir, "main.glsl")
	libDir := filepath.Join(dir, "lib")
	if err := os.Mkdir(libDir, 0o755); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(libDir, "common.glsl")
	if err := os.WriteFile(target, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{IncludePaths: []string{libDir}}
	got := cfg.ResolveInclude(includer, "common.glsl")
	if got != target {
		t.Errorf("ResolveInclude() = %q, want %q", got, target)
	}
}

func TestResolveIncludeReturnsEmptyWhenNotFound(t *testing.T) {
	dir := t.TempDir()
	includer := filepath.Join(dir, "main.glsl")

	cfg := &Config{}
	if got := cfg.ResolveInclude(includer, "missing.glsl"); got != "" {
		t.Errorf("ResolveInclude() = %q, want empty", got)
	}
}
