package types

import "testing"

func TestFlagHasRequiresEveryBit(t *testing.T) {
	f := Native | Out
	if !f.Has(Native) || !f.Has(Out) {
		t.Error("Has() missed a bit that is actually set")
	}
	if !f.Has(Native | Out) {
		t.Error("Has() should report true when every requested bit is set")
	}
	if f.Has(Uniform) {
		t.Error("Has() reported a bit that was never set")
	}
	if f.Has(Native | Uniform) {
		t.Error("Has() should require ALL requested bits, not just one")
	}
}

func TestSymbolFlagPredicates(t *testing.T) {
	sym := &Symbol{Flags: Exported | Native}
	if !sym.IsExported() {
		t.Error("IsExported() = false, want true")
	}
	if !sym.IsNative() {
		t.Error("IsNative() = false, want true")
	}
	if sym.IsImported() {
		t.Error("IsImported() = true, want false")
	}
	if sym.IsUsed() {
		t.Error("IsUsed() = true before MarkUsed, want false")
	}
}

func TestMarkUsedIsIdempotentAndPreservesOtherFlags(t *testing.T) {
	sym := &Symbol{Flags: Native}
	sym.MarkUsed()
	sym.MarkUsed()
	if !sym.IsUsed() {
		t.Error("IsUsed() = false after MarkUsed, want true")
	}
	if !sym.IsNative() {
		t.Error("MarkUsed cleared an unrelated flag")
	}
}

func TestOutputNameFallsBackToDeclaredName(t *testing.T) {
	sym := &Symbol{Name: "kFactor"}
	if got := sym.OutputName(); got != "kFactor" {
		t.Errorf("OutputName() = %q, want %q", got, "kFactor")
	}
	sym.RenamedName = "a"
	if got := sym.OutputName(); got != "a" {
		t.Errorf("OutputName() = %q, want %q after renaming", got, "a")
	}
}
