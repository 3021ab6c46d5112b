package cmd

import (
	"strings"
	"testing"

	"github.com/cwbudde/glslx-go/internal/ast"
	"github.com/cwbudde/glslx-go/internal/compiler"
	"github.com/cwbudde/glslx-go/internal/source"
)

func TestDumpNodeShowsKindAndLiteral(t *testing.T) {
	src := source.New("shader.glsl", "export float f() { return 1.0; }")
	global, _, _, log := compiler.Analyze([]*source.Source{src}, nil)
	if log.HasErrors() {
		t.Fatalf("unexpected errors: %s", log.Format(false))
	}

	out := captureStdout(t, func() { dumpNode(global, 0) })
	if !strings.Contains(out, "GLOBAL") {
		t.Errorf("output = %q, want the root GLOBAL kind printed", out)
	}
	if !strings.Contains(out, "1.0") {
		t.Errorf("output = %q, want the float literal's text printed", out)
	}
}

func TestDumpNodeNilIsANoOp(t *testing.T) {
	out := captureStdout(t, func() { dumpNode(nil, 0) })
	if out != "" {
		t.Errorf("dumpNode(nil) printed %q, want nothing", out)
	}
}

func TestDumpNodeIndentsChildren(t *testing.T) {
	rng := source.NewRange(source.New("t.glsl", ""), 0, 0)
	child := ast.New(ast.Name, rng)
	child.Literal = "x"
	parent := ast.New(ast.Block, rng)
	parent.Append(child)

	out := captureStdout(t, func() { dumpNode(parent, 0) })
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), out)
	}
	if strings.HasPrefix(lines[0], " ") {
		t.Errorf("root line = %q, want no leading indent", lines[0])
	}
	if !strings.HasPrefix(lines[1], "  ") {
		t.Errorf("child line = %q, want a 2-space indent", lines[1])
	}
}
