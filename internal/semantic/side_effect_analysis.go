package semantic

import (
	"fmt"
	"strings"

	"sigtrace/internal/ast"
	"sigtrace/internal/ir"
	"sigtrace/internal/report"
)

// RunSideEffectAnalysis implements the orchestrator algorithm of spec.md
// §4.5: it composes taint and constraint analysis with the CFG's own
// declarations/parameters to find variables and signals whose value never
// reaches an observable sink.
func RunSideEffectAnalysis(cfg *ir.CFG) *report.ReportCollection {
	taint := BuildTaintAnalysis(cfg)
	constraints := BuildConstraintAnalysis(cfg)
	return runSideEffectAnalysis(cfg, taint, constraints)
}

func runSideEffectAnalysis(cfg *ir.CFG, taint *TaintAnalysis, constraints *ConstraintAnalysis) *report.ReportCollection {
	rc := &report.ReportCollection{}

	// Step 2: every name read anywhere in the CFG.
	variablesRead := map[string]struct{}{}
	for _, stmt := range cfg.AllStatements() {
		for _, use := range ir.VariablesRead(stmt) {
			variablesRead[use.Name] = struct{}{}
		}
	}

	// Steps 3-4: exported signal names (input/output).
	params := map[string]struct{}{}
	for _, p := range cfg.Parameters() {
		params[p] = struct{}{}
	}

	var exported []string
	signalDecls := map[string]*ir.Declaration{}
	for name, decl := range cfg.Declarations() {
		if decl.Kind.IsSignal() {
			signalDecls[name] = decl
			if decl.Kind.IsExported() {
				exported = append(exported, name)
			}
		}
	}

	// Step 5: taint reachable from every exported signal.
	exportedTaint := map[string]struct{}{}
	for _, n := range exported {
		for v := range taint.MultiStepTaint(n) {
			exportedTaint[v] = struct{}{}
		}
	}

	// Step 6: extend sinks through the constraint graph, re-adding the
	// source only when its constraint neighborhood is non-empty.
	sinks := map[string]struct{}{}
	for s := range exportedTaint {
		c := constraints.MultiStepConstraint(s)
		if len(c) > 0 {
			for v := range c {
				sinks[v] = struct{}{}
			}
			sinks[s] = struct{}{}
		}
	}

	// Step 7: exported names are always sinks.
	for _, n := range exported {
		sinks[n] = struct{}{}
	}

	// Step 8: Declaration/Return/Assert/IfThenElse reads are always sinks.
	for _, stmt := range cfg.AllStatements() {
		switch stmt.(type) {
		case *ast.DeclStmt, *ast.ReturnStmt, *ast.AssertStmt, *ast.IfStmt:
			for _, use := range ir.VariablesRead(stmt) {
				sinks[use.Name] = struct{}{}
			}
		}
	}

	// Step 9: every definition that either never gets read, or is read but
	// never reaches a sink. A name that is itself a sink is never reported,
	// regardless of which branch would otherwise fire (spec.md §8: "no
	// report is emitted for any name that is a sink"). Signals are excluded
	// here entirely; step 10 reports them so the message can carry their
	// declared dimensions.
	reported := map[string]struct{}{}
	for _, def := range taint.Definitions() {
		if _, already := reported[def.Name]; already {
			continue
		}
		if _, isSink := sinks[def.Name]; isSink {
			continue
		}
		if _, isSignal := signalDecls[def.Name]; isSignal {
			continue
		}
		_, isParam := params[def.Name]

		if _, read := variablesRead[def.Name]; !read {
			code := report.UnusedVariableValue
			kind := "variable"
			if isParam {
				code = report.UnusedParameterValue
				kind = "parameter"
			}
			rc.Add(unusedReport(cfg, def, code, kind))
			reported[def.Name] = struct{}{}
			continue
		}

		if !taint.TaintsAny(def.Name, sinks) {
			kind := "variable"
			if isParam {
				kind = "parameter"
			}
			rc.Add(noSideEffectReport(cfg, def, report.VariableWithoutSideEffect, kind))
			reported[def.Name] = struct{}{}
		}
	}

	// Step 10: signals not already reported get their own pass, so the
	// message can include the declared dimensions. Exported signals are
	// sinks (step 7) and so are skipped by the same guard as step 9.
	// Signals are visited once each, in declaration order, so the report
	// order is the same on every run.
	for _, stmt := range cfg.AllStatements() {
		d, ok := stmt.(*ast.DeclStmt)
		if !ok {
			continue
		}
		name := d.Name.Name
		decl, isSignal := signalDecls[name]
		if _, already := reported[name]; already || !isSignal {
			continue
		}
		reported[name] = struct{}{}
		if _, isSink := sinks[name]; isSink {
			continue
		}
		if _, read := variablesRead[name]; !read {
			rc.Add(unusedSignalReport(cfg, decl))
			continue
		}
		if !taint.TaintsAny(name, constraints.ConstrainedVariables()) {
			rc.Add(unconstrainedSignalReport(cfg, decl))
		}
	}

	return rc
}

func unusedReport(cfg *ir.CFG, def ir.VariableUse, code report.Code, kind string) report.Report {
	return report.Report{
		Severity: report.Warning,
		Code:     code,
		Message:  fmt.Sprintf("%s in %q is never used: %s", kind, cfg.Name, def.Name),
		PrimaryLabels: []report.Label{
			{FileID: def.Pos.FileID, Span: pointSpan(def.Pos), Note: fmt.Sprintf("%q is assigned here but never read", def.Name)},
		},
	}
}

func noSideEffectReport(cfg *ir.CFG, def ir.VariableUse, code report.Code, kind string) report.Report {
	return report.Report{
		Severity: report.Warning,
		Code:     code,
		Message:  fmt.Sprintf("%s in %q has no side effect: %s", kind, cfg.Name, def.Name),
		PrimaryLabels: []report.Label{
			{FileID: def.Pos.FileID, Span: pointSpan(def.Pos), Note: fmt.Sprintf("%q is read but never reaches a constraint, output, return, or assert", def.Name)},
		},
	}
}

func unusedSignalReport(cfg *ir.CFG, decl *ir.Declaration) report.Report {
	dims := dimensionsToString(decl.Dimensions)
	return report.Report{
		Severity: report.Warning,
		Code:     report.UnusedVariableValue,
		Message:  fmt.Sprintf("signal in %q is never used: %s%s", cfg.Name, decl.Name, dims),
		PrimaryLabels: []report.Label{
			{FileID: decl.Pos.FileID, Span: pointSpan(decl.Pos), Note: fmt.Sprintf("signal %q is declared here but never read", decl.Name)},
		},
	}
}

func unconstrainedSignalReport(cfg *ir.CFG, decl *ir.Declaration) report.Report {
	dims := dimensionsToString(decl.Dimensions)
	return report.Report{
		Severity: report.Warning,
		Code:     report.UnconstrainedSignal,
		Message:  fmt.Sprintf("signal in %q is assigned but not constrained: %s%s", cfg.Name, decl.Name, dims),
		PrimaryLabels: []report.Label{
			{FileID: decl.Pos.FileID, Span: pointSpan(decl.Pos), Note: fmt.Sprintf("signal %q never appears in a constraint", decl.Name)},
		},
	}
}

// dimensionsToString renders a signal's declared dimensions as a bracketed
// suffix (e.g. "[n][5]"), mirroring the original's dimensions_to_string.
// Returns "" for a scalar (no dimensions) signal.
func dimensionsToString(dims []ast.Expr) string {
	if len(dims) == 0 {
		return ""
	}
	var b strings.Builder
	for _, d := range dims {
		b.WriteByte('[')
		b.WriteString(dimensionExprString(d))
		b.WriteByte(']')
	}
	return b.String()
}

func dimensionExprString(e ast.Expr) string {
	switch v := e.(type) {
	case *ast.Ident:
		return v.Name
	case *ast.LiteralExpr:
		return v.Value
	case *ast.BinaryExpr:
		return dimensionExprString(v.Left) + " " + v.Op + " " + dimensionExprString(v.Right)
	case *ast.UnaryExpr:
		return v.Op + dimensionExprString(v.Value)
	default:
		return "?"
	}
}

func pointSpan(pos ast.Position) report.Span {
	return report.Span{FileID: pos.FileID, Start: pos, End: pos}
}
