package rewriter

import "github.com/cwbudde/glslx-go/internal/ast"

// simplifyStatement applies dead-code removal (spec.md §4.5 step 3): a
// BLOCK drops every statement after the first one that unconditionally
// ends control flow, an IF with a constant condition collapses to
// whichever branch is live, and an otherwise-empty statement
// disappears entirely unless its condition expression still has a
// side effect worth keeping. It returns the replacement for n, or nil
// if n should be dropped from its parent.
func simplifyStatement(n *ast.Node) *ast.Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case ast.Block:
		simplifyBlock(n)
		if len(n.Children) == 0 {
			return nil
		}
		return n

	case ast.If:
		clauses, _ := n.Extra.(*ast.IfClauses)
		if clauses == nil {
			return n
		}
		if v, isConst := constBool(clauses.Cond); isConst {
			if v {
				return simplifyStatement(clauses.Then)
			}
			return simplifyStatement(clauses.Else)
		}
		clauses.Then = simplifyStatement(clauses.Then)
		clauses.Else = simplifyStatement(clauses.Else)
		if clauses.Then == nil && clauses.Else == nil {
			if clauses.Cond.HasSideEffects() {
				return clauses.Cond
			}
			return nil
		}
		rebuildIfChildren(n, clauses)
		return n

	case ast.For:
		clauses, _ := n.Extra.(*ast.ForClauses)
		if clauses == nil {
			return n
		}
		clauses.Body = simplifyStatement(clauses.Body)
		rebuildForChildren(n, clauses)
		return n

	case ast.While, ast.DoWhile:
		clauses, _ := n.Extra.(*ast.LoopClauses)
		if clauses == nil {
			return n
		}
		clauses.Body = simplifyStatement(clauses.Body)
		rebuildLoopChildren(n, clauses)
		return n

	default:
		return n
	}
}

func simplifyBlock(block *ast.Node) {
	kept := make([]*ast.Node, 0, len(block.Children))
	for _, stmt := range block.Children {
		replaced := simplifyStatement(stmt)
		if replaced == nil {
			continue
		}
		replaced.Parent = block
		kept = append(kept, replaced)
		if isTerminalStatement(replaced) {
			break
		}
	}
	block.Children = kept
}

// isTerminalStatement reports whether n unconditionally ends control
// flow, mirroring the liveness rules in internal/cflow.
func isTerminalStatement(n *ast.Node) bool {
	if n == nil {
		return false
	}
	switch n.Kind {
	case ast.Return, ast.Discard, ast.Continue, ast.Break:
		return true
	case ast.Block:
		if len(n.Children) == 0 {
			return false
		}
		return isTerminalStatement(n.Children[len(n.Children)-1])
	case ast.If:
		clauses, _ := n.Extra.(*ast.IfClauses)
		return clauses != nil && clauses.Else != nil &&
			isTerminalStatement(clauses.Then) && isTerminalStatement(clauses.Else)
	}
	return false
}

func rebuildIfChildren(n *ast.Node, c *ast.IfClauses) {
	n.Children = nil
	n.Append(c.Cond)
	n.Append(c.Then)
	n.Append(c.Else)
}

func rebuildForChildren(n *ast.Node, c *ast.ForClauses) {
	n.Children = nil
	n.AppendAll(c.Init, c.Cond, c.Post, c.Body)
}

func rebuildLoopChildren(n *ast.Node, c *ast.LoopClauses) {
	n.Children = nil
	if n.Kind == ast.DoWhile {
		n.AppendAll(c.Body, c.Cond)
		return
	}
	n.AppendAll(c.Cond, c.Body)
}

// constBool reports whether n is a literal boolean constant, and its
// value.
func constBool(n *ast.Node) (value bool, isConst bool) {
	if n == nil {
		return false, false
	}
	if n.Kind == ast.BoolLiteral {
		return n.Literal == "true", true
	}
	return false, false
}
