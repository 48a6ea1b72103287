// Package semantic implements the three analyses the side-effect orchestrator
// composes: taint analysis, constraint analysis, and the orchestrator itself.
// Grounded on the teacher's internal/semantic package layout (one file per
// analysis plus an orchestrator), generalized from type/borrow checking to
// the dataflow and constraint reachability problems this spec defines.
package semantic

import (
	"sigtrace/internal/ast"
	"sigtrace/internal/ir"
)

// TaintAnalysis is a directed reachability graph over variable names: an
// edge u -> v means v's defining statement reads u (spec.md §4.3).
type TaintAnalysis struct {
	defs  []ir.VariableUse
	edges map[string]map[string]struct{} // u -> { v : u -> v }
	cache map[string]map[string]struct{}
}

// BuildTaintAnalysis traverses every statement in cfg once, adding an edge
// from each read to the name it feeds and recording one definitions()
// entry per assignment or declaration site.
func BuildTaintAnalysis(cfg *ir.CFG) *TaintAnalysis {
	ta := &TaintAnalysis{
		edges: map[string]map[string]struct{}{},
		cache: map[string]map[string]struct{}{},
	}
	// Parameters are definition sites with no incoming edges: their value
	// arrives from the caller, not from any statement in this construct.
	for _, name := range cfg.Parameters() {
		ta.define(name, ir.VariableUse{Name: name, Pos: cfg.ParamPos[name]})
	}
	for _, stmt := range cfg.AllStatements() {
		ta.visitStmt(stmt)
	}
	return ta
}

func (ta *TaintAnalysis) visitStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.DeclStmt:
		ta.define(s.Name.Name, ir.VariableUse{Name: s.Name.Name, Pos: s.Pos})
		for _, dim := range s.Dimensions {
			for _, use := range ir.VariablesReadExpr(dim) {
				ta.addEdge(use.Name, s.Name.Name)
			}
		}
	case *ast.SubstitutionStmt:
		target := targetName(s.Target)
		if target == "" {
			return
		}
		ta.define(target, ir.VariableUse{Name: target, Pos: s.Pos})
		for _, use := range ir.VariablesRead(s) {
			ta.addEdge(use.Name, target)
		}
	default:
		// ConstraintEquality, Return, Assert, IfThenElse, While, Block, and
		// LogCall statements do not themselves define a name.
	}
}

func targetName(target ast.Expr) string {
	switch t := target.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.IndexExpr:
		return targetName(t.Target)
	case *ast.ComponentAccessExpr:
		return targetName(t.Target)
	default:
		return ""
	}
}

func (ta *TaintAnalysis) define(name string, use ir.VariableUse) {
	ta.defs = append(ta.defs, use)
	if _, ok := ta.edges[name]; !ok {
		ta.edges[name] = map[string]struct{}{}
	}
}

func (ta *TaintAnalysis) addEdge(from, to string) {
	if _, ok := ta.edges[from]; !ok {
		ta.edges[from] = map[string]struct{}{}
	}
	ta.edges[from][to] = struct{}{}
	ta.cache = map[string]map[string]struct{}{} // invalidate memoized closures
}

// Definitions returns every SSA definition site in traversal order.
func (ta *TaintAnalysis) Definitions() []ir.VariableUse { return ta.defs }

// SingleStepTaint returns name's direct successors.
func (ta *TaintAnalysis) SingleStepTaint(name string) map[string]struct{} {
	out := map[string]struct{}{}
	for v := range ta.edges[name] {
		out[v] = struct{}{}
	}
	return out
}

// MultiStepTaint returns the transitive closure of name's outgoing edges,
// including name itself if it has any outgoing edge at all (spec.md §4.3).
func (ta *TaintAnalysis) MultiStepTaint(name string) map[string]struct{} {
	if cached, ok := ta.cache[name]; ok {
		return cached
	}
	visited := map[string]struct{}{}
	var stack []string
	for v := range ta.edges[name] {
		stack = append(stack, v)
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := visited[n]; ok {
			continue
		}
		visited[n] = struct{}{}
		for v := range ta.edges[n] {
			if _, ok := visited[v]; !ok {
				stack = append(stack, v)
			}
		}
	}
	if len(ta.edges[name]) > 0 {
		visited[name] = struct{}{}
	}
	ta.cache[name] = visited
	return visited
}

// TaintsAny reports whether name's multi-step taint intersects set.
func (ta *TaintAnalysis) TaintsAny(name string, set map[string]struct{}) bool {
	closure := ta.MultiStepTaint(name)
	for v := range closure {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}
