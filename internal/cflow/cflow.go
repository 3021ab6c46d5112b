// Package cflow implements the conservative control-flow liveness pass
// described in spec.md §4.4: two boolean stacks walked alongside the
// AST, used to mark BLOCK nodes with whether control reaches their end
// and to detect code made unreachable by an always-breakless infinite
// loop. The rewriter consumes HasControlFlowAtEnd and the unreachable
// diagnostics to drive dead-code removal.
package cflow

import (
	"github.com/cwbudde/glslx-go/internal/ast"
	"github.com/cwbudde/glslx-go/internal/errors"
)

// Analyzer walks one function body, tracking liveness and whether the
// innermost loop has a reachable break.
type Analyzer struct {
	log *errors.Log

	isControlFlowLive []bool
	isLoopBreakTarget []bool
}

// New creates a control-flow analyzer reporting to log.
func New(log *errors.Log) *Analyzer {
	return &Analyzer{log: log}
}

// AnalyzeFunction walks a FUNCTION node's body, if it has one.
func (a *Analyzer) AnalyzeFunction(fn *ast.Node) {
	if len(fn.Children) == 0 {
		return
	}
	body := fn.Children[len(fn.Children)-1]
	if body.Kind != ast.Block {
		return
	}
	a.pushLive(true)
	a.analyzeBlock(body)
	a.popLive()
}

func (a *Analyzer) live() bool {
	if len(a.isControlFlowLive) == 0 {
		return true
	}
	return a.isControlFlowLive[len(a.isControlFlowLive)-1]
}

func (a *Analyzer) setLive(v bool) {
	if len(a.isControlFlowLive) == 0 {
		a.isControlFlowLive = append(a.isControlFlowLive, v)
		return
	}
	a.isControlFlowLive[len(a.isControlFlowLive)-1] = v
}

func (a *Analyzer) pushLive(v bool) { a.isControlFlowLive = append(a.isControlFlowLive, v) }
func (a *Analyzer) popLive() bool {
	v := a.live()
	a.isControlFlowLive = a.isControlFlowLive[:len(a.isControlFlowLive)-1]
	return v
}

func (a *Analyzer) pushLoop()    { a.isLoopBreakTarget = append(a.isLoopBreakTarget, false) }
func (a *Analyzer) markBreak() {
	if len(a.isLoopBreakTarget) > 0 {
		a.isLoopBreakTarget[len(a.isLoopBreakTarget)-1] = true
	}
}
func (a *Analyzer) popLoop() bool {
	v := false
	if len(a.isLoopBreakTarget) > 0 {
		v = a.isLoopBreakTarget[len(a.isLoopBreakTarget)-1]
		a.isLoopBreakTarget = a.isLoopBreakTarget[:len(a.isLoopBreakTarget)-1]
	}
	return v
}

// analyzeBlock walks a BLOCK's statements in order; once liveness goes
// false, subsequent statements are reported as unreachable (but still
// visited, since nested declarations/diagnostics must still run).
func (a *Analyzer) analyzeBlock(block *ast.Node) {
	reportedUnreachable := false
	for _, stmt := range block.Children {
		if !a.live() && !reportedUnreachable {
			a.log.Warn(errors.Warning, stmt.Range, "unreachable code")
			reportedUnreachable = true
		}
		a.analyzeStatement(stmt)
	}
	block.HasControlFlowAtEnd = a.live()
}

func (a *Analyzer) analyzeStatement(n *ast.Node) {
	switch n.Kind {
	case ast.Block:
		inner := a.live()
		a.pushLive(inner)
		a.analyzeBlock(n)
		inner = a.popLive()
		a.setLive(inner)

	case ast.If:
		a.analyzeIf(n)

	case ast.For:
		a.analyzeFor(n)

	case ast.While, ast.DoWhile:
		a.analyzeLoop(n)

	case ast.Return, ast.Discard, ast.Continue:
		a.setLive(false)

	case ast.Break:
		a.markBreak()
		a.setLive(false)

	default:
		// expression statements, VARIABLES declarations, and anything
		// else with no control-flow effect of its own.
	}
}

func (a *Analyzer) analyzeIf(n *ast.Node) {
	clauses, _ := n.Extra.(*ast.IfClauses)
	if clauses == nil {
		return
	}
	constCond, isConst := constBool(clauses.Cond)

	if isConst && constCond {
		if clauses.Then != nil {
			a.analyzeStatement(clauses.Then)
		}
		return
	}
	if isConst && !constCond {
		if clauses.Else != nil {
			a.analyzeStatement(clauses.Else)
		} else {
			a.setLive(true)
		}
		return
	}

	enteredLive := a.live()

	a.pushLive(enteredLive)
	if clauses.Then != nil {
		a.analyzeStatement(clauses.Then)
	}
	thenLive := a.popLive()

	a.pushLive(enteredLive)
	if clauses.Else != nil {
		a.analyzeStatement(clauses.Else)
	}
	elseLive := a.popLive()

	a.setLive(thenLive || elseLive)
}

func (a *Analyzer) analyzeFor(n *ast.Node) {
	clauses, _ := n.Extra.(*ast.ForClauses)
	if clauses == nil {
		return
	}
	a.pushLoop()
	a.pushLive(true)
	if clauses.Body != nil {
		a.analyzeStatement(clauses.Body)
	}
	a.popLive()
	hasBreak := a.popLoop()

	// An absent condition, or a constant-true one, makes the statement
	// after the loop unreachable unless the body breaks (spec.md §4.4).
	cond, isConst := constBool(clauses.Cond)
	alwaysTrue := clauses.Cond == nil || (isConst && cond)
	a.setLive(!alwaysTrue || hasBreak)
}

func (a *Analyzer) analyzeLoop(n *ast.Node) {
	clauses, _ := n.Extra.(*ast.LoopClauses)
	if clauses == nil {
		return
	}
	a.pushLoop()
	a.pushLive(true)
	if clauses.Body != nil {
		a.analyzeStatement(clauses.Body)
	}
	a.popLive()
	hasBreak := a.popLoop()

	cond, isConst := constBool(clauses.Cond)
	alwaysTrue := isConst && cond
	a.setLive(!alwaysTrue || hasBreak)
}

// constBool reports whether n is a literal boolean constant, and its
// value; used to recognize `while(true)`/`for(;;)` idioms.
func constBool(n *ast.Node) (value bool, isConst bool) {
	if n == nil {
		return false, false
	}
	if n.Kind == ast.BoolLiteral {
		return n.Literal == "true", true
	}
	return false, false
}

// AnalyzeGlobal runs control-flow analysis over every FUNCTION
// declaration in a merged global AST (spec.md §2: step 7 in the
// pipeline, after resolution and before rewriting).
func AnalyzeGlobal(global *ast.Node, log *errors.Log) {
	for _, child := range global.Children {
		if child.Kind != ast.Function {
			continue
		}
		New(log).AnalyzeFunction(child)
	}
}
