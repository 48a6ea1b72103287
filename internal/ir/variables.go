package ir

import "sigtrace/internal/ast"

// VariablesRead returns every variable use a statement's own fields
// contribute, not counting nested sub-blocks (those are walked separately
// by the CFG builder and visited in their own right during traversal).
//
// Grounded on spec.md §3's "each expression node carries ... a set of
// variables read" and extended per-statement per spec.md's tag list.
func VariablesRead(stmt ast.Stmt) []VariableUse {
	switch s := stmt.(type) {
	case *ast.DeclStmt:
		var uses []VariableUse
		for _, dim := range s.Dimensions {
			uses = append(uses, variablesReadExpr(dim)...)
		}
		return uses
	case *ast.SubstitutionStmt:
		uses := variablesReadExpr(s.Value)
		uses = append(uses, targetReads(s.Target)...)
		return uses
	case *ast.ConstraintStmt:
		uses := variablesReadExpr(s.Left)
		uses = append(uses, variablesReadExpr(s.Right)...)
		return uses
	case *ast.ReturnStmt:
		if s.Value == nil {
			return nil
		}
		return variablesReadExpr(s.Value)
	case *ast.AssertStmt:
		return variablesReadExpr(s.Cond)
	case *ast.IfStmt:
		return variablesReadExpr(s.Cond)
	case *ast.WhileStmt:
		return variablesReadExpr(s.Cond)
	case *ast.LogStmt:
		var uses []VariableUse
		for _, a := range s.Args {
			uses = append(uses, variablesReadExpr(a)...)
		}
		return uses
	case *ast.BlockStmt:
		return nil
	default:
		return nil
	}
}

// targetReads handles the read side-effects of assigning into a compound
// target. A plain identifier target contributes no extra reads (the whole
// name is simply redefined). An indexed target ("out[k] <-- ...") is
// modeled as reading the prior value of the whole array (since only one
// element is known to change) plus whatever the index expression reads;
// sigtrace deliberately does not track per-index SSA versions, so writing
// any one element taints the array's base name as a self-dependency. A
// component-access target ("left.a <== ...") similarly reads the component
// instance it targets.
func targetReads(target ast.Expr) []VariableUse {
	switch t := target.(type) {
	case *ast.Ident:
		return nil
	case *ast.IndexExpr:
		uses := variablesReadExpr(t.Target)
		uses = append(uses, variablesReadExpr(t.Index)...)
		return uses
	case *ast.ComponentAccessExpr:
		return variablesReadExpr(t.Target)
	default:
		return variablesReadExpr(target)
	}
}

// VariablesReadExpr returns every variable use within a single expression,
// recursing through its subexpressions.
func VariablesReadExpr(expr ast.Expr) []VariableUse {
	return variablesReadExpr(expr)
}

func variablesReadExpr(expr ast.Expr) []VariableUse {
	if expr == nil {
		return nil
	}
	switch e := expr.(type) {
	case *ast.Ident:
		return []VariableUse{{Name: e.Name, Pos: e.Pos}}
	case *ast.LiteralExpr:
		return nil
	case *ast.BinaryExpr:
		uses := variablesReadExpr(e.Left)
		return append(uses, variablesReadExpr(e.Right)...)
	case *ast.UnaryExpr:
		return variablesReadExpr(e.Value)
	case *ast.IndexExpr:
		uses := variablesReadExpr(e.Target)
		return append(uses, variablesReadExpr(e.Index)...)
	case *ast.CallExpr:
		var uses []VariableUse
		for _, a := range e.Args {
			uses = append(uses, variablesReadExpr(a)...)
		}
		return uses
	case *ast.ComponentAccessExpr:
		return variablesReadExpr(e.Target)
	default:
		return nil
	}
}
