package ast

import (
	"testing"

	"github.com/cwbudde/glslx-go/internal/source"
)

var testSource = source.New("t.glsl", "")

func rng() source.Range { return source.NewRange(testSource, 0, 0) }

func leaf(kind Kind) *Node { return New(kind, rng()) }

func TestAppendSetsParentAndSkipsNil(t *testing.T) {
	parent := leaf(Block)
	child := leaf(Name)
	parent.Append(child)
	parent.Append(nil)

	if len(parent.Children) != 1 {
		t.Fatalf("got %d children, want 1 (nil append ignored)", len(parent.Children))
	}
	if child.Parent != parent {
		t.Error("child.Parent not set to parent after Append")
	}
}

func TestChildOutOfRangeReturnsNil(t *testing.T) {
	n := leaf(Block)
	n.Append(leaf(Name))
	if got := n.Child(5); got != nil {
		t.Errorf("Child(5) = %v, want nil", got)
	}
	if got := n.Child(-1); got != nil {
		t.Errorf("Child(-1) = %v, want nil", got)
	}
}

func TestRemoveChildShiftsRemainingSiblings(t *testing.T) {
	n := leaf(Block)
	a, b, c := leaf(Name), leaf(Name), leaf(Name)
	n.AppendAll(a, b, c)

	n.RemoveChild(1)

	if len(n.Children) != 2 {
		t.Fatalf("got %d children, want 2", len(n.Children))
	}
	if n.Children[0] != a || n.Children[1] != c {
		t.Error("RemoveChild(1) did not leave [a, c]")
	}
	if b.Parent != nil {
		t.Error("removed child still has a Parent pointer")
	}
}

func TestReplaceChildFixesUpBothParentPointers(t *testing.T) {
	n := leaf(Block)
	old := leaf(Name)
	n.Append(old)

	replacement := leaf(IntLiteral)
	n.ReplaceChild(0, replacement)

	if n.Children[0] != replacement {
		t.Error("ReplaceChild did not install the replacement")
	}
	if replacement.Parent != n {
		t.Error("replacement.Parent not set")
	}
	if old.Parent != nil {
		t.Error("replaced-out child still has a Parent pointer")
	}
}

func TestIsExpressionBoundary(t *testing.T) {
	if Block.IsExpression() {
		t.Error("BLOCK.IsExpression() = true, want false")
	}
	if !BoolLiteral.IsExpression() {
		t.Error("BOOL.IsExpression() = false, want true (the first expression kind)")
	}
}

func TestIsBinaryAndIsAssignRanges(t *testing.T) {
	if !Add.IsBinary() {
		t.Error("ADD.IsBinary() = false, want true")
	}
	if Not.IsBinary() {
		t.Error("NOT.IsBinary() = true, want false (unary)")
	}
	if !Assign.IsAssign() {
		t.Error("ASSIGN.IsAssign() = false, want true")
	}
	if Add.IsAssign() {
		t.Error("ADD.IsAssign() = true, want false")
	}
	if !AddAssign.IsBinary() {
		t.Error("ADD_ASSIGN.IsBinary() = false, want true (assignment is in the binary range)")
	}
}

func TestIsLiteral(t *testing.T) {
	for _, k := range []Kind{BoolLiteral, IntLiteral, FloatLiteral} {
		if !leaf(k).IsLiteral() {
			t.Errorf("%v.IsLiteral() = false, want true", k)
		}
	}
	if leaf(Name).IsLiteral() {
		t.Error("NAME.IsLiteral() = true, want false")
	}
}

func TestHasSideEffectsLeavesAreClean(t *testing.T) {
	if leaf(Name).HasSideEffects() {
		t.Error("a bare NAME has side effects, want false")
	}
	if leaf(FloatLiteral).HasSideEffects() {
		t.Error("a bare FLOAT literal has side effects, want false")
	}
}

func TestHasSideEffectsAssignAndIncrementAreDirty(t *testing.T) {
	if !leaf(Assign).HasSideEffects() {
		t.Error("ASSIGN.HasSideEffects() = false, want true")
	}
	if !leaf(PostfixIncrement).HasSideEffects() {
		t.Error("POSTFIX_INCREMENT.HasSideEffects() = false, want true")
	}
}

func TestHasSideEffectsCallIsDirtyUnlessMarkedPure(t *testing.T) {
	impure := leaf(Call)
	impure.Append(leaf(Name)) // callee
	if !impure.HasSideEffects() {
		t.Error("an unmarked CALL has side effects, want true (conservative default)")
	}

	pure := leaf(Call)
	pure.Extra = true
	pure.Append(leaf(Name))      // callee
	pure.Append(leaf(FloatLiteral)) // clean argument
	if pure.HasSideEffects() {
		t.Error("a pure CALL with clean arguments has side effects, want false")
	}

	dirtyArg := leaf(Call)
	dirtyArg.Extra = true
	dirtyArg.Append(leaf(Name))
	inner := leaf(Call) // unmarked, conservative
	dirtyArg.Append(inner)
	if !dirtyArg.HasSideEffects() {
		t.Error("a pure CALL with a dirty argument has side effects, want true")
	}
}

func TestHasSideEffectsPropagatesThroughGenericChildren(t *testing.T) {
	outer := leaf(Add)
	outer.Append(leaf(Name))
	outer.Append(leaf(Assign))
	if !outer.HasSideEffects() {
		t.Error("ADD containing an ASSIGN child has side effects, want true")
	}
}

func TestCloneCopiesTreeShapeAndRemapsIfClauses(t *testing.T) {
	cond := leaf(Name)
	then := leaf(Block)
	els := leaf(Block)
	orig := leaf(If)
	orig.AppendAll(cond, then, els)
	orig.Extra = &IfClauses{Cond: cond, Then: then, Else: els}

	clone := Clone(orig)

	if clone == orig {
		t.Fatal("Clone returned the same pointer")
	}
	if len(clone.Children) != 3 {
		t.Fatalf("got %d cloned children, want 3", len(clone.Children))
	}
	for _, c := range clone.Children {
		if c.Parent != clone {
			t.Error("cloned child's Parent does not point at the clone")
		}
	}

	extra, ok := clone.Extra.(*IfClauses)
	if !ok {
		t.Fatal("clone.Extra is not *IfClauses")
	}
	if extra.Cond == cond || extra.Then == then || extra.Else == els {
		t.Error("IfClauses in the clone still points at the original nodes")
	}
	if extra.Cond != clone.Children[0] || extra.Then != clone.Children[1] || extra.Else != clone.Children[2] {
		t.Error("IfClauses in the clone does not point at the corresponding cloned children")
	}
}

func TestCloneOfNilIsNil(t *testing.T) {
	if Clone(nil) != nil {
		t.Error("Clone(nil) != nil")
	}
}

func TestCloneIsIndependentOfOriginal(t *testing.T) {
	orig := leaf(Block)
	orig.Append(leaf(Name))

	clone := Clone(orig)
	clone.Append(leaf(IntLiteral))

	if len(orig.Children) != 1 {
		t.Errorf("mutating the clone's children affected the original: got %d, want 1", len(orig.Children))
	}
}
