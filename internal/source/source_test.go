package source

import "testing"

func TestLineColumn(t *testing.T) {
	src := New("test.glsl", "abc\ndef\nghi")

	tests := []struct {
		name       string
		index      int
		wantLine   int
		wantColumn int
	}{
		{"start of file", 0, 1, 1},
		{"mid first line", 2, 1, 3},
		{"start of second line", 4, 2, 1},
		{"mid third line", 9, 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, col := src.LineColumn(tt.index)
			if line != tt.wantLine || col != tt.wantColumn {
				t.Errorf("LineColumn(%d) = (%d, %d), want (%d, %d)", tt.index, line, col, tt.wantLine, tt.wantColumn)
			}
		})
	}
}

func TestIndexFromLineColumnRoundTrip(t *testing.T) {
	src := New("test.glsl", "abc\ndef\nghi")

	for index := 0; index < len(src.Contents); index++ {
		line, col := src.LineColumn(index)
		got := src.IndexFromLineColumn(line, col)
		if got != index {
			t.Errorf("IndexFromLineColumn(%d, %d) = %d, want %d", line, col, got, index)
		}
	}
}

func TestRangeText(t *testing.T) {
	src := New("test.glsl", "hello world")
	r := NewRange(src, 6, 11)

	if got := r.Text(); got != "world" {
		t.Errorf("Text() = %q, want %q", got, "world")
	}
	if got := r.Len(); got != 5 {
		t.Errorf("Len() = %d, want %d", got, 5)
	}
}

func TestRangeLocation(t *testing.T) {
	src := New("shader.glsl", "float x;\nfloat y;")
	r := NewRange(src, 9, 14)

	if got, want := r.Location(), "shader.glsl:2:1"; got != want {
		t.Errorf("Location() = %q, want %q", got, want)
	}
}

func TestSpan(t *testing.T) {
	src := New("test.glsl", "abcdefgh")
	a := NewRange(src, 2, 4)
	b := NewRange(src, 5, 7)

	got := Span(a, b)
	if got.Start != 2 || got.End != 7 {
		t.Errorf("Span() = [%d,%d), want [2,7)", got.Start, got.End)
	}
}

func TestSpanPanicsOnDifferentSources(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected Span to panic on ranges from different sources")
		}
	}()

	a := NewRange(New("a.glsl", "abc"), 0, 1)
	b := NewRange(New("b.glsl", "abc"), 0, 1)
	Span(a, b)
}

func TestTwoSourcesNeverEqualByValue(t *testing.T) {
	a := New("same.glsl", "same contents")
	b := New("same.glsl", "same contents")
	if a == b {
		t.Error("New should return distinct pointers even for identical name/contents")
	}
}
