package printer_test

import (
	"strings"
	"testing"

	"github.com/cwbudde/glslx-go/internal/compiler"
	"github.com/cwbudde/glslx-go/internal/printer"
	"github.com/cwbudde/glslx-go/internal/source"
)

func mustPrint(t *testing.T, contents string, opts printer.Options) string {
	t.Helper()
	src := source.New("shader.glsl", contents)
	global, _, _, log := compiler.Analyze([]*source.Source{src}, nil)
	if log.HasErrors() {
		t.Fatalf("unexpected errors: %s", log.Format(false))
	}
	return printer.Print(global, opts)
}

func TestPrintReinsertsParensLowerPrecedenceOnLeftOfMultiply(t *testing.T) {
	out := mustPrint(t, `
float f(float x, float y, float z) {
  return (x + y) * z;
}
`, printer.Options{})
	if !strings.Contains(out, "(x + y) * z") {
		t.Errorf("output = %q, want parens preserved around the addition", out)
	}
}

func TestPrintOmitsParensWhenPrecedenceAlreadyBinds(t *testing.T) {
	out := mustPrint(t, `
float f(float x, float y, float z) {
  return x + y * z;
}
`, printer.Options{})
	if !strings.Contains(out, "return x + y * z;") {
		t.Errorf("output = %q, want no parens: multiply already binds tighter than add", out)
	}
}

func TestPrintRemoveWhitespaceProtectsAdjacentIdentifierTokens(t *testing.T) {
	out := mustPrint(t, `
float f(float x) {
  return x;
}
`, printer.Options{RemoveWhitespace: true})
	if strings.Contains(out, "floatf") {
		t.Errorf("output = %q, merged the return type into the function name", out)
	}
	if strings.Contains(out, "\n") {
		t.Errorf("output = %q, want no newlines when whitespace is removed", out)
	}
}

func TestPrintRemoveWhitespaceProtectsPlusPlusFromMerging(t *testing.T) {
	out := mustPrint(t, `
float f(float x, float y) {
  return x + +y;
}
`, printer.Options{RemoveWhitespace: true})
	if strings.Contains(out, "x+++y") {
		t.Errorf("output = %q, want a protective space so '+' '+' doesn't read as '++'", out)
	}
}

func TestPrintFunctionPrototypeHasNoBody(t *testing.T) {
	out := mustPrint(t, `
float f(float x);
float f(float x) {
  return x;
}
`, printer.Options{})
	if !strings.Contains(out, "float f(float x);") {
		t.Errorf("output = %q, want the prototype printed with a trailing semicolon and no body", out)
	}
}

func TestPrintQualifiersConstBeforePrecision(t *testing.T) {
	out := mustPrint(t, `
const highp float kLimit = 1.0;
`, printer.Options{})
	if !strings.Contains(out, "const highp float kLimit") {
		t.Errorf("output = %q, want const before highp before the type name", out)
	}
}

func TestPrintStructFieldsAndBraces(t *testing.T) {
	out := mustPrint(t, `
struct Particle {
  vec3 position;
  float life;
};
`, printer.Options{})
	if !strings.Contains(out, "struct Particle {") || !strings.Contains(out, "vec3 position;") || !strings.Contains(out, "float life;") {
		t.Errorf("output = %q, want every field printed inside the struct body", out)
	}
}
