// Package source holds the textual substrate every other compiler package
// builds on: an immutable (name, contents) pair with a lazily computed
// line-offset index, and the Range type every diagnostic and AST node
// carries.
package source

import "sort"

// Source is an immutable named body of text. Two Sources are never the
// same even if their Name and Contents match byte-for-byte; identity is
// used for include-cycle detection, so compare Sources by pointer.
type Source struct {
	Name     string
	Contents string

	lineOffsets []int // byte offset of the first byte of each line; computed lazily
}

// New creates a Source from raw file contents.
func New(name, contents string) *Source {
	return &Source{Name: name, Contents: contents}
}

// lines computes (and caches) the byte offset of every line start.
func (s *Source) lines() []int {
	if s.lineOffsets != nil {
		return s.lineOffsets
	}
	offsets := []int{0}
	for i := 0; i < len(s.Contents); i++ {
		if s.Contents[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	s.lineOffsets = offsets
	return offsets
}

// LineColumn converts a byte index into a 1-based (line, column) pair in
// O(log lines) via binary search over the cached line-offset table.
func (s *Source) LineColumn(index int) (line, column int) {
	offsets := s.lines()
	// largest i such that offsets[i] <= index
	i := sort.Search(len(offsets), func(i int) bool { return offsets[i] > index }) - 1
	if i < 0 {
		i = 0
	}
	return i + 1, index - offsets[i] + 1
}

// IndexFromLineColumn is the inverse of LineColumn, used by tooling that
// addresses positions by line/column (editor integrations, CLI flags).
func (s *Source) IndexFromLineColumn(line, column int) int {
	offsets := s.lines()
	if line < 1 {
		line = 1
	}
	if line > len(offsets) {
		return len(s.Contents)
	}
	return offsets[line-1] + column - 1
}

// Range is a half-open [Start, End) byte span within a single Source.
// Ranges from two different Sources are never merged or compared.
type Range struct {
	Source *Source
	Start  int
	End    int
}

// NewRange builds a Range, clamping to the bounds of src.Contents.
func NewRange(src *Source, start, end int) Range {
	if src != nil {
		n := len(src.Contents)
		start = min(max(start, 0), n)
		end = min(max(end, start), n)
	}
	return Range{Source: src, Start: start, End: end}
}

// Text returns the exact substring covered by the range.
func (r Range) Text() string {
	if r.Source == nil {
		return ""
	}
	return r.Source.Contents[r.Start:r.End]
}

// Len reports the byte length of the range.
func (r Range) Len() int { return r.End - r.Start }

// Location renders "name:line:col" for diagnostics.
func (r Range) Location() string {
	if r.Source == nil {
		return "?"
	}
	line, col := r.Source.LineColumn(r.Start)
	return r.Source.Name + ":" + itoa(line) + ":" + itoa(col)
}

// Span returns a Range covering both a and b, which must share a Source.
// Panics if they don't, matching the invariant that ranges from two
// sources are never merged (spec.md §3).
func Span(a, b Range) Range {
	if a.Source != b.Source {
		panic("source: cannot span ranges from different sources")
	}
	start, end := a.Start, a.End
	if b.Start < start {
		start = b.Start
	}
	if b.End > end {
		end = b.End
	}
	return Range{Source: a.Source, Start: start, End: end}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
