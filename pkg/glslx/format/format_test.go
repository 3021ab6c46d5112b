package format

import (
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/cwbudde/glslx-go/pkg/glslx"
)

func TestJSONShapeAndIndentation(t *testing.T) {
	result := &glslx.CompilerResult{
		Shaders: []glslx.Shader{
			{Name: "vertexMain", Contents: "void main() {}"},
		},
		Renaming: map[string]string{"myHelper": "a"},
	}

	doc, err := JSON(result)
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	if !strings.HasSuffix(doc, "\n") {
		t.Error("expected JSON() to end with a trailing newline")
	}
	if !gjson.Valid(doc) {
		t.Fatalf("JSON() produced invalid JSON:\n%s", doc)
	}

	if got := gjson.Get(doc, "shaders.0.name").String(); got != "vertexMain" {
		t.Errorf("shaders.0.name = %q, want %q", got, "vertexMain")
	}
	if got := gjson.Get(doc, "shaders.0.contents").String(); got != "void main() {}" {
		t.Errorf("shaders.0.contents = %q", got)
	}
	if got := gjson.Get(doc, "shaders.#").Int(); got != 1 {
		t.Errorf("shaders.# = %d, want 1", got)
	}
	if got := gjson.Get(doc, "renaming.myHelper").String(); got != "a" {
		t.Errorf("renaming.myHelper = %q, want %q", got, "a")
	}

	if !strings.Contains(doc, "  \"shaders\"") {
		t.Errorf("expected 2-space indentation, got %q", doc)
	}
}

func TestJSONEmptyResult(t *testing.T) {
	result := &glslx.CompilerResult{}

	doc, err := JSON(result)
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	if !gjson.Valid(doc) {
		t.Fatalf("JSON() produced invalid JSON:\n%s", doc)
	}

	shaders := gjson.Get(doc, "shaders")
	if !shaders.IsArray() {
		t.Errorf("shaders = %s, want an empty array, not null", shaders.Raw)
	}
	renaming := gjson.Get(doc, "renaming")
	if !renaming.IsObject() {
		t.Errorf("renaming = %s, want an empty object, not null", renaming.Raw)
	}
}

func TestConstantDeclarationsJS(t *testing.T) {
	result := &glslx.CompilerResult{
		Shaders:  []glslx.Shader{{Name: "vertexMain", Contents: "void main() {}"}},
		Renaming: map[string]string{"myHelper": "a"},
	}

	out := ConstantDeclarations(result, JS)

	if !strings.Contains(out, `const GLSLX_SOURCE_VERTEX_MAIN = "void main() {}";`) {
		t.Errorf("JS output missing expected source constant, got:\n%s", out)
	}
	if !strings.Contains(out, `const GLSLX_NAME_MY_HELPER = "a";`) {
		t.Errorf("JS output missing expected name constant, got:\n%s", out)
	}
}

func TestConstantDeclarationsCPPWrapsHeaderGuard(t *testing.T) {
	result := &glslx.CompilerResult{Shaders: []glslx.Shader{{Name: "main", Contents: "x"}}}

	out := ConstantDeclarations(result, CPP)

	if !strings.HasPrefix(out, "#ifndef GLSLX_STRINGS_H\n#define GLSLX_STRINGS_H\n") {
		t.Errorf("expected a CPP header guard prefix, got:\n%s", out)
	}
	if !strings.HasSuffix(out, "#endif\n") {
		t.Errorf("expected a CPP header guard suffix, got:\n%s", out)
	}
	if !strings.Contains(out, `static const char *GLSLX_SOURCE_MAIN = "x";`) {
		t.Errorf("expected a C string constant, got:\n%s", out)
	}
}

func TestConstantDeclarationsRustAndSkew(t *testing.T) {
	result := &glslx.CompilerResult{Shaders: []glslx.Shader{{Name: "main", Contents: "x"}}}

	rust := ConstantDeclarations(result, Rust)
	if !strings.Contains(rust, `pub static GLSLX_SOURCE_MAIN: &str = "x";`) {
		t.Errorf("unexpected Rust output:\n%s", rust)
	}

	skew := ConstantDeclarations(result, Skew)
	if !strings.Contains(skew, `const GLSLX_SOURCE_MAIN string = "x"`) {
		t.Errorf("unexpected Skew output:\n%s", skew)
	}
}

func TestConstantDeclarationsEscapesStringContents(t *testing.T) {
	result := &glslx.CompilerResult{
		Shaders: []glslx.Shader{{Name: "main", Contents: "a\nb\t\"c\"\\d"}},
	}

	out := ConstantDeclarations(result, JS)

	if !strings.Contains(out, `"a\nb\t\"c\"\\d"`) {
		t.Errorf("expected escaped string literal, got:\n%s", out)
	}
}

func TestScreamingSnakeNaming(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single lowercase word", "main", "MAIN"},
		{"camelCase", "vertexMain", "VERTEX_MAIN"},
		{"already upper", "ID", "ID"},
		{"lower then digit then upper", "a1B", "A1_B"},
		{"leading underscore", "_private", "_PRIVATE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := screamingSnake(tt.in); got != tt.want {
				t.Errorf("screamingSnake(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
