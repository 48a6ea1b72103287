package semantic

import (
	"sigtrace/internal/ast"
	"sigtrace/internal/ir"
)

// ConstraintAnalysis is an undirected reachability graph over variable
// names built from ConstraintEquality statements (spec.md §4.4). The DSL's
// `===` operator is bidirectional: every name appearing on either side of a
// constraint is pairwise connected to every other name in that statement.
type ConstraintAnalysis struct {
	edges map[string]map[string]struct{}
	cache map[string]map[string]struct{}
}

// BuildConstraintAnalysis traverses every ConstraintStmt in cfg, adding an
// undirected edge between each pair of distinct names read on either side.
func BuildConstraintAnalysis(cfg *ir.CFG) *ConstraintAnalysis {
	ca := &ConstraintAnalysis{
		edges: map[string]map[string]struct{}{},
		cache: map[string]map[string]struct{}{},
	}
	for _, stmt := range cfg.AllStatements() {
		c, ok := stmt.(*ast.ConstraintStmt)
		if !ok {
			continue
		}
		ca.visitConstraint(c)
	}
	return ca
}

func (ca *ConstraintAnalysis) visitConstraint(c *ast.ConstraintStmt) {
	var names []string
	seen := map[string]struct{}{}
	for _, use := range append(ir.VariablesReadExpr(c.Left), ir.VariablesReadExpr(c.Right)...) {
		if _, ok := seen[use.Name]; ok {
			continue
		}
		seen[use.Name] = struct{}{}
		names = append(names, use.Name)
	}
	for _, u := range names {
		if _, ok := ca.edges[u]; !ok {
			ca.edges[u] = map[string]struct{}{}
		}
	}
	for _, u := range names {
		for _, v := range names {
			if u == v {
				continue
			}
			ca.edges[u][v] = struct{}{}
		}
	}
}

// ConstrainedVariables returns every name appearing in at least one
// ConstraintEquality statement.
func (ca *ConstraintAnalysis) ConstrainedVariables() map[string]struct{} {
	out := map[string]struct{}{}
	for n := range ca.edges {
		out[n] = struct{}{}
	}
	return out
}

// SingleStepConstraint returns name's direct neighbors.
func (ca *ConstraintAnalysis) SingleStepConstraint(name string) map[string]struct{} {
	out := map[string]struct{}{}
	for v := range ca.edges[name] {
		out[v] = struct{}{}
	}
	return out
}

// MultiStepConstraint returns the transitive neighborhood of name under the
// symmetric constraint relation. It returns nil when name appears in no
// constraint at all, and an empty non-nil set when name appears only in
// constraints with itself (e.g. "in === in"); the side-effect orchestrator
// treats both as empty (spec.md §4.4, §9).
func (ca *ConstraintAnalysis) MultiStepConstraint(name string) map[string]struct{} {
	if _, ok := ca.edges[name]; !ok {
		return nil
	}
	if cached, ok := ca.cache[name]; ok {
		return cached
	}
	visited := map[string]struct{}{}
	var stack []string
	for v := range ca.edges[name] {
		stack = append(stack, v)
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := visited[n]; ok {
			continue
		}
		visited[n] = struct{}{}
		for v := range ca.edges[n] {
			if _, ok := visited[v]; !ok {
				stack = append(stack, v)
			}
		}
	}
	// The neighborhood excludes the source itself; the orchestrator adds it
	// back explicitly exactly when this set is non-empty (spec.md §4.5 step 6).
	delete(visited, name)
	ca.cache[name] = visited
	return visited
}
