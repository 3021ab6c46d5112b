package types

import "testing"

func TestNewCompilerDataStartsEmpty(t *testing.T) {
	data := NewCompilerData(nil)
	if data.FileAccess != nil {
		t.Error("FileAccess should be nil when none is given")
	}
	if len(data.ExtensionBehavior) != 0 {
		t.Error("ExtensionBehavior should start empty")
	}
}

func TestNextSymbolIDIsMonotonicAndOneIndexed(t *testing.T) {
	data := NewCompilerData(nil)
	first := data.NextSymbolID()
	second := data.NextSymbolID()
	if first != 1 {
		t.Errorf("first NextSymbolID() = %d, want 1", first)
	}
	if second != 2 {
		t.Errorf("second NextSymbolID() = %d, want 2", second)
	}
}

func TestNextSymbolIDIsPerInstance(t *testing.T) {
	a := NewCompilerData(nil)
	b := NewCompilerData(nil)
	a.NextSymbolID()
	a.NextSymbolID()
	if got := b.NextSymbolID(); got != 1 {
		t.Errorf("a new CompilerData's first id = %d, want 1 (independent counters)", got)
	}
}
