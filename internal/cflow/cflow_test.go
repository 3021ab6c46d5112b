package cflow

import (
	"testing"

	"github.com/cwbudde/glslx-go/internal/ast"
	"github.com/cwbudde/glslx-go/internal/errors"
	"github.com/cwbudde/glslx-go/internal/source"
)

var testSource = source.New("test.glsl", "")

func rng() source.Range { return source.NewRange(testSource, 0, 0) }

func block(stmts ...*ast.Node) *ast.Node {
	b := ast.New(ast.Block, rng())
	b.AppendAll(stmts...)
	return b
}

func function(body *ast.Node) *ast.Node {
	fn := ast.New(ast.Function, rng())
	fn.Append(body)
	return fn
}

func boolLiteral(v bool) *ast.Node {
	n := ast.New(ast.BoolLiteral, rng())
	if v {
		n.Literal = "true"
	} else {
		n.Literal = "false"
	}
	return n
}

func stmt(kind ast.Kind) *ast.Node {
	return ast.New(kind, rng())
}

func ifNode(cond, then, els *ast.Node) *ast.Node {
	n := ast.New(ast.If, rng())
	n.Extra = &ast.IfClauses{Cond: cond, Then: then, Else: els}
	return n
}

func whileNode(cond, body *ast.Node) *ast.Node {
	n := ast.New(ast.While, rng())
	n.Extra = &ast.LoopClauses{Cond: cond, Body: body}
	return n
}

func forNode(cond, body *ast.Node) *ast.Node {
	n := ast.New(ast.For, rng())
	n.Extra = &ast.ForClauses{Cond: cond, Body: body}
	return n
}

func TestAnalyzeGlobalAnalyzesEveryFunctionAndSkipsOtherChildren(t *testing.T) {
	discardBody := block(stmt(ast.Discard))
	returnBody := block(stmt(ast.Return))
	global := ast.New(ast.Global, rng())
	global.AppendAll(stmt(ast.Variables), function(discardBody), function(returnBody))

	AnalyzeGlobal(global, errors.NewLog())

	if discardBody.HasControlFlowAtEnd {
		t.Error("first function body.HasControlFlowAtEnd = true after a discard, want false")
	}
	if returnBody.HasControlFlowAtEnd {
		t.Error("second function body.HasControlFlowAtEnd = true after a return, want false")
	}
}

func TestAnalyzeFunctionMarksBlockDeadAfterDiscard(t *testing.T) {
	body := block(stmt(ast.Discard))
	New(errors.NewLog()).AnalyzeFunction(function(body))
	if body.HasControlFlowAtEnd {
		t.Error("block.HasControlFlowAtEnd = true after a discard, want false")
	}
}

func TestAnalyzeFunctionMarksBlockDeadAfterReturn(t *testing.T) {
	body := block(stmt(ast.Return))
	New(errors.NewLog()).AnalyzeFunction(function(body))
	if body.HasControlFlowAtEnd {
		t.Error("block.HasControlFlowAtEnd = true after a return, want false")
	}
}

func TestAnalyzeFunctionLeavesLiveBlockWithNoTerminator(t *testing.T) {
	body := block()
	New(errors.NewLog()).AnalyzeFunction(function(body))
	if !body.HasControlFlowAtEnd {
		t.Error("block.HasControlFlowAtEnd = false for an empty body, want true")
	}
}

func TestAnalyzeFunctionWarnsOnUnreachableCodeAfterReturn(t *testing.T) {
	unreachable := stmt(ast.Discard)
	body := block(stmt(ast.Return), unreachable)
	log := errors.NewLog()
	New(log).AnalyzeFunction(function(body))

	found := false
	for _, d := range log.Diagnostics() {
		if d.Kind == errors.Warning {
			found = true
		}
	}
	if !found {
		t.Error("expected an unreachable-code warning after a return statement")
	}
}

func TestAnalyzeFunctionOnlyWarnsOnceForAStretchOfUnreachableCode(t *testing.T) {
	body := block(stmt(ast.Return), stmt(ast.Discard), stmt(ast.Continue))
	log := errors.NewLog()
	New(log).AnalyzeFunction(function(body))

	count := 0
	for _, d := range log.Diagnostics() {
		if d.Kind == errors.Warning {
			count++
		}
	}
	if count != 1 {
		t.Errorf("got %d unreachable-code warnings, want exactly 1", count)
	}
}

func TestAnalyzeFunctionIfBothBranchesReturnIsDead(t *testing.T) {
	then := block(stmt(ast.Return))
	els := block(stmt(ast.Return))
	cond := ast.New(ast.Name, rng())
	body := block(ifNode(cond, then, els))

	New(errors.NewLog()).AnalyzeFunction(function(body))
	if body.HasControlFlowAtEnd {
		t.Error("block.HasControlFlowAtEnd = true when both if/else branches return, want false")
	}
}

func TestAnalyzeFunctionIfOnlyOneBranchReturnsStaysLive(t *testing.T) {
	then := block(stmt(ast.Return))
	cond := ast.New(ast.Name, rng())
	body := block(ifNode(cond, then, nil))

	New(errors.NewLog()).AnalyzeFunction(function(body))
	if !body.HasControlFlowAtEnd {
		t.Error("block.HasControlFlowAtEnd = false when the else branch is absent, want true (falls through)")
	}
}

func TestAnalyzeFunctionForInfiniteWithoutBreakIsDeadAfter(t *testing.T) {
	body := block(forNode(nil, block()))
	New(errors.NewLog()).AnalyzeFunction(function(body))
	if body.HasControlFlowAtEnd {
		t.Error("block.HasControlFlowAtEnd = true after an infinite for loop with no break, want false")
	}
}

func TestAnalyzeFunctionForWithBreakStaysLive(t *testing.T) {
	body := block(forNode(nil, block(stmt(ast.Break))))
	New(errors.NewLog()).AnalyzeFunction(function(body))
	if !body.HasControlFlowAtEnd {
		t.Error("block.HasControlFlowAtEnd = false after an infinite for loop that breaks, want true")
	}
}

func TestAnalyzeFunctionWhileFalseNeverRunsAndFallsThrough(t *testing.T) {
	body := block(whileNode(boolLiteral(false), block(stmt(ast.Return))))
	New(errors.NewLog()).AnalyzeFunction(function(body))
	if !body.HasControlFlowAtEnd {
		t.Error("block.HasControlFlowAtEnd = false after while(false), want true: the body never runs")
	}
}

func TestAnalyzeFunctionWhileTrueWithoutBreakIsDead(t *testing.T) {
	body := block(whileNode(boolLiteral(true), block()))
	New(errors.NewLog()).AnalyzeFunction(function(body))
	if body.HasControlFlowAtEnd {
		t.Error("block.HasControlFlowAtEnd = true after while(true) with no break, want false")
	}
}
