// Package format packages a glslx.CompilerResult for a host: either as a
// JSON document or as constant declarations a build embeds directly into
// a JS/Skew/C++/Rust program (spec.md §6 "Output formats").
package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/sjson"

	"github.com/cwbudde/glslx-go/pkg/glslx"
)

// Language selects a constant-declaration output flavor.
type Language int

const (
	JS Language = iota
	Skew
	CPP
	Rust
)

// JSON renders result as `{ "shaders": [{ "name", "contents" }],
// "renaming": { orig: new, ... } }`, two-space indented with a trailing
// newline (spec.md §6). Built incrementally with sjson (the teacher
// stack's JSON-patching library) since the document has a dynamic number
// of shader/renaming entries; sjson has no pretty-printer of its own, so
// the final indent pass uses the standard library's json.Indent.
func JSON(result *glslx.CompilerResult) (string, error) {
	doc := "{}"
	var err error
	for i, shader := range result.Shaders {
		doc, err = sjson.Set(doc, fmt.Sprintf("shaders.%d.name", i), shader.Name)
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, fmt.Sprintf("shaders.%d.contents", i), shader.Contents)
		if err != nil {
			return "", err
		}
	}
	if len(result.Shaders) == 0 {
		doc, err = sjson.SetRaw(doc, "shaders", "[]")
		if err != nil {
			return "", err
		}
	}

	names := make([]string, 0, len(result.Renaming))
	for orig := range result.Renaming {
		names = append(names, orig)
	}
	sort.Strings(names)
	if len(names) == 0 {
		doc, err = sjson.SetRaw(doc, "renaming", "{}")
	} else {
		for _, orig := range names {
			doc, err = sjson.Set(doc, "renaming."+orig, result.Renaming[orig])
			if err != nil {
				return "", err
			}
		}
	}
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(doc), "", "  "); err != nil {
		return "", err
	}
	buf.WriteByte('\n')
	return buf.String(), nil
}

// ConstantDeclarations renders result's shaders as a sequence of
// `GLSLX_SOURCE_<NAME>` / `GLSLX_NAME_<ORIG>` constant declarations in
// the given host language (spec.md §6). The CPP flavor wraps the
// declarations in the conventional include-guard triple.
func ConstantDeclarations(result *glslx.CompilerResult, lang Language) string {
	var b strings.Builder
	if lang == CPP {
		b.WriteString("#ifndef GLSLX_STRINGS_H\n#define GLSLX_STRINGS_H\n\n")
	}
	for _, shader := range result.Shaders {
		constName := "GLSLX_SOURCE_" + screamingSnake(shader.Name)
		writeStringConst(&b, lang, constName, shader.Contents)
	}
	names := make([]string, 0, len(result.Renaming))
	for orig := range result.Renaming {
		names = append(names, orig)
	}
	sort.Strings(names)
	for _, orig := range names {
		constName := "GLSLX_NAME_" + screamingSnake(orig)
		writeStringConst(&b, lang, constName, result.Renaming[orig])
	}
	if lang == CPP {
		b.WriteString("\n#endif\n")
	}
	return b.String()
}

func writeStringConst(b *strings.Builder, lang Language, name, value string) {
	quoted := goStringLiteral(value)
	switch lang {
	case JS:
		fmt.Fprintf(b, "const %s = %s;\n", name, quoted)
	case Skew:
		fmt.Fprintf(b, "const %s string = %s\n", name, quoted)
	case CPP:
		fmt.Fprintf(b, "static const char *%s = %s;\n", name, quoted)
	case Rust:
		fmt.Fprintf(b, "pub static %s: &str = %s;\n", name, quoted)
	}
}

// goStringLiteral renders value as a double-quoted, backslash-escaped
// string literal; the escaping rules (", \, newline, tab) are shared
// verbatim by every target language this function emits for.
func goStringLiteral(value string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range value {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// screamingSnake derives `<NAME>` from an identifier by inserting `_`
// between a lowercase letter or digit and a following uppercase letter,
// then uppercasing the whole string (spec.md §6).
func screamingSnake(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if i > 0 && isUpper(r) && isLowerOrDigit(runes[i-1]) {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }

func isLowerOrDigit(r rune) bool { return r >= 'a' && r <= 'z' || r >= '0' && r <= '9' }
