package renamer

import (
	"testing"

	"github.com/cwbudde/glslx-go/internal/ast"
	"github.com/cwbudde/glslx-go/internal/types"
)

func TestIndexToNameIsShortestFirstAndBijective(t *testing.T) {
	seen := map[string]int{}
	for i := 0; i < len(firstAlphabet)+5; i++ {
		name := indexToName(i)
		if other, ok := seen[name]; ok {
			t.Fatalf("indexToName(%d) and indexToName(%d) both produced %q", i, other, name)
		}
		seen[name] = i
	}
	if got := indexToName(0); got != "a" {
		t.Errorf("indexToName(0) = %q, want %q", got, "a")
	}
	// Index len(firstAlphabet) is the first two-character name.
	if got := indexToName(len(firstAlphabet)); len(got) != 2 {
		t.Errorf("indexToName(%d) = %q, want a two-character name", len(firstAlphabet), got)
	}
}

func TestSequenceSkipsBlacklistedNames(t *testing.T) {
	seq := &sequence{blacklist: map[string]bool{"a": true, "b": true}}
	if got := seq.next(); got != "c" {
		t.Errorf("first non-blacklisted name = %q, want %q", got, "c")
	}
}

func newSymbol(id int64, name string, refCount int, flags types.Flag) *types.Symbol {
	return &types.Symbol{ID: id, Name: name, RefCount: refCount, Flags: flags}
}

func globalFunctionNode(sym *types.Symbol) *ast.Node {
	fn := &ast.Node{Kind: ast.Function, ResolvedSymbol: sym}
	return fn
}

func TestRenameAlwaysRenamesExportToMain(t *testing.T) {
	export := newSymbol(1, "addOne", 0, types.Exported)
	trimmed := []*ast.Node{{Kind: ast.Global, Children: []*ast.Node{globalFunctionNode(export)}}}

	renaming := Rename([]*types.Symbol{export}, trimmed, None)

	if export.RenamedName != "main" {
		t.Errorf("export.RenamedName = %q, want %q", export.RenamedName, "main")
	}
	if renaming["addOne"] != "main" {
		t.Errorf("renaming[%q] = %q, want %q", "addOne", renaming["addOne"], "main")
	}
}

func TestRenameNonePolicyTouchesNothingElse(t *testing.T) {
	export := newSymbol(1, "addOne", 0, types.Exported)
	helper := newSymbol(2, "square", 5, 0)
	trimmed := []*ast.Node{{Kind: ast.Global, Children: []*ast.Node{
		globalFunctionNode(export),
		globalFunctionNode(helper),
	}}}

	Rename([]*types.Symbol{export}, trimmed, None)

	if helper.RenamedName != "" {
		t.Errorf("helper.RenamedName = %q, want unchanged under None policy", helper.RenamedName)
	}
}

func TestRenameInternalPolicyRenamesGlobalHelpersByDescendingRefCount(t *testing.T) {
	export := newSymbol(1, "addOne", 0, types.Exported)
	frequentHelper := newSymbol(2, "square", 10, 0)
	rareHelper := newSymbol(3, "cube", 1, 0)
	trimmed := []*ast.Node{{Kind: ast.Global, Children: []*ast.Node{
		globalFunctionNode(export),
		globalFunctionNode(frequentHelper),
		globalFunctionNode(rareHelper),
	}}}

	Rename([]*types.Symbol{export}, trimmed, Internal)

	// The most-referenced helper claims the shortest available name ("a";
	// "main" is reserved so it never collides, but it isn't skipped here).
	if frequentHelper.RenamedName != "a" {
		t.Errorf("frequentHelper.RenamedName = %q, want %q", frequentHelper.RenamedName, "a")
	}
	if rareHelper.RenamedName != "b" {
		t.Errorf("rareHelper.RenamedName = %q, want %q", rareHelper.RenamedName, "b")
	}
}

func TestRenameInternalPolicyLeavesInterfaceSymbolsAlone(t *testing.T) {
	export := newSymbol(1, "addOne", 0, types.Exported)
	uniform := newSymbol(2, "uTime", 3, types.Uniform)
	trimmed := []*ast.Node{{Kind: ast.Global, Children: []*ast.Node{
		globalFunctionNode(export),
		{Kind: ast.Variables, Children: []*ast.Node{{Kind: ast.Name, ResolvedSymbol: uniform}}},
	}}}

	Rename([]*types.Symbol{export}, trimmed, Internal)

	if uniform.RenamedName != "" {
		t.Errorf("uniform.RenamedName = %q, want unchanged under Internal policy", uniform.RenamedName)
	}
}

func TestRenameAllPolicyRenamesInterfaceSymbolsToo(t *testing.T) {
	export := newSymbol(1, "addOne", 0, types.Exported)
	uniform := newSymbol(2, "uTime", 3, types.Uniform)
	trimmed := []*ast.Node{{Kind: ast.Global, Children: []*ast.Node{
		globalFunctionNode(export),
		{Kind: ast.Variables, Children: []*ast.Node{{Kind: ast.Name, ResolvedSymbol: uniform}}},
	}}}

	renaming := Rename([]*types.Symbol{export}, trimmed, All)

	if uniform.RenamedName == "" {
		t.Error("uniform.RenamedName unset, want a renamed identifier under All policy")
	}
	if renaming["uTime"] == "" {
		t.Error("renaming map missing an entry for the renamed uniform")
	}
}

func TestRenameNativeAndImportedSymbolsAreNeverRenamed(t *testing.T) {
	export := newSymbol(1, "addOne", 0, types.Exported)
	native := newSymbol(2, "sin", 99, types.Native)
	imported := newSymbol(3, "externalHelper", 50, types.Imported)
	trimmed := []*ast.Node{{Kind: ast.Global, Children: []*ast.Node{
		globalFunctionNode(export),
		globalFunctionNode(native),
		globalFunctionNode(imported),
	}}}

	Rename([]*types.Symbol{export}, trimmed, All)

	if native.RenamedName != "" {
		t.Errorf("native.RenamedName = %q, want untouched", native.RenamedName)
	}
	if imported.RenamedName != "" {
		t.Errorf("imported.RenamedName = %q, want untouched", imported.RenamedName)
	}
}

func TestRenameSiblingPrototypeSharesItsDefinitionsName(t *testing.T) {
	export := newSymbol(1, "addOne", 0, types.Exported)
	def := newSymbol(2, "square", 5, 0)
	proto := newSymbol(3, "square", 0, 0)
	def.Sibling = proto
	proto.Sibling = def
	trimmed := []*ast.Node{{Kind: ast.Global, Children: []*ast.Node{
		globalFunctionNode(export),
		globalFunctionNode(def),
	}}}

	Rename([]*types.Symbol{export}, trimmed, Internal)

	if def.RenamedName == "" {
		t.Fatal("def.RenamedName unset")
	}
	if proto.RenamedName != def.RenamedName {
		t.Errorf("proto.RenamedName = %q, want to match its sibling %q", proto.RenamedName, def.RenamedName)
	}
}
