package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatSource(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantContain string
		wantErr     bool
	}{
		{
			name:        "simple export",
			input:       "export float addOne(float x) {\n  return x+1.0;\n}\n",
			wantContain: "x + 1.0",
			wantErr:     false,
		},
		{
			name:        "uniform declaration",
			input:       "uniform float uTime;\nexport float f() {\n  return uTime;\n}\n",
			wantContain: "uniform float uTime;",
			wantErr:     false,
		},
		{
			name:    "syntax error",
			input:   "export float f( {\n  return 1.0;\n}\n",
			wantErr: true,
		},
		{
			name:    "undefined symbol",
			input:   "export float f() {\n  return undefinedThing;\n}\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatSource("shader.glsl", tt.input)

			if (err != nil) != tt.wantErr {
				t.Errorf("formatSource() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && !strings.Contains(got, tt.wantContain) {
				t.Errorf("formatSource() = %q, want to contain %q", got, tt.wantContain)
			}
		})
	}
}

func TestFormatSourceIsIdempotent(t *testing.T) {
	input := "export float addOne(float x) {\n  return x+1.0;\n}\n"

	first, err := formatSource("shader.glsl", input)
	if err != nil {
		t.Fatalf("first formatSource() error = %v", err)
	}
	second, err := formatSource("shader.glsl", first)
	if err != nil {
		t.Fatalf("second formatSource() error = %v", err)
	}
	if first != second {
		t.Errorf("not idempotent:\nfirst:  %q\nsecond: %q", first, second)
	}
}

func TestFormatFile_List(t *testing.T) {
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "unformatted.glsl")
	content := "export float addOne(float x){return x+1.0;}\n"
	if err := os.WriteFile(filePath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	oldList := fmtList
	defer func() { fmtList = oldList }()
	fmtList = true

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := formatFile(filePath)

	w.Close()
	os.Stdout = oldStdout

	if err != nil {
		t.Errorf("formatFile() error = %v", err)
	}

	buf := make([]byte, 4096)
	n, _ := r.Read(buf)
	if !strings.Contains(string(buf[:n]), "unformatted.glsl") {
		t.Errorf("list output = %q, want it to name the changed file", string(buf[:n]))
	}
}

func TestFormatFile_Write(t *testing.T) {
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "unformatted.glsl")
	content := "export float addOne(float x){return x+1.0;}\n"
	if err := os.WriteFile(filePath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	oldWrite := fmtWrite
	defer func() { fmtWrite = oldWrite }()
	fmtWrite = true
	defer func() { fmtWrite = false }()

	if err := formatFile(filePath); err != nil {
		t.Fatalf("formatFile() error = %v", err)
	}

	rewritten, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatalf("failed to read rewritten file: %v", err)
	}
	if string(rewritten) == content {
		t.Error("file was not rewritten even though formatting changed it")
	}
}

func TestProcessPath(t *testing.T) {
	tmpDir := t.TempDir()
	subdir := filepath.Join(tmpDir, "subdir")
	if err := os.Mkdir(subdir, 0o755); err != nil {
		t.Fatalf("failed to create subdir: %v", err)
	}

	file1 := filepath.Join(tmpDir, "file1.glsl")
	file3 := filepath.Join(subdir, "file3.frag")
	ignored := filepath.Join(subdir, "ignored.txt")

	content := "export float addOne(float x){return x+1.0;}\n"
	for _, f := range []string{file1, file3, ignored} {
		if err := os.WriteFile(f, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to create test file %s: %v", f, err)
		}
	}

	t.Run("single file", func(t *testing.T) {
		oldStdout := os.Stdout
		r, w, _ := os.Pipe()
		os.Stdout = w

		err := processPath(file1)

		w.Close()
		os.Stdout = oldStdout
		_, _ = r.Read(make([]byte, 4096))

		if err != nil {
			t.Errorf("processPath() error = %v", err)
		}
	})

	t.Run("directory without recursive", func(t *testing.T) {
		oldRecursive := fmtRecursive
		defer func() { fmtRecursive = oldRecursive }()
		fmtRecursive = false

		if err := processPath(tmpDir); err == nil {
			t.Error("expected an error when processing a directory without -r")
		}
	})

	t.Run("directory with recursive only formats known extensions", func(t *testing.T) {
		oldRecursive := fmtRecursive
		oldList := fmtList
		defer func() {
			fmtRecursive = oldRecursive
			fmtList = oldList
		}()
		fmtRecursive = true
		fmtList = true

		oldStdout := os.Stdout
		r, w, _ := os.Pipe()
		os.Stdout = w

		err := processPath(tmpDir)

		w.Close()
		os.Stdout = oldStdout
		buf := make([]byte, 4096)
		n, _ := r.Read(buf)
		out := string(buf[:n])

		if err != nil {
			t.Errorf("processPath() error = %v", err)
		}
		if !strings.Contains(out, "file1.glsl") {
			t.Errorf("output = %q, want file1.glsl listed", out)
		}
		if !strings.Contains(out, "file3.frag") {
			t.Errorf("output = %q, want file3.frag listed", out)
		}
		if strings.Contains(out, "ignored.txt") {
			t.Errorf("output = %q, want ignored.txt skipped (unrecognized extension)", out)
		}
	})
}

func TestFormatFile_SyntaxErrorIsReported(t *testing.T) {
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "broken.glsl")
	if err := os.WriteFile(filePath, []byte("export float f( {\n"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	if err := formatFile(filePath); err == nil {
		t.Error("expected formatFile() to report the syntax error")
	}
}
