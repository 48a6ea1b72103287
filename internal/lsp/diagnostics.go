package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"sigtrace/internal/ir"
	"sigtrace/internal/parser"
	"sigtrace/internal/report"
	"sigtrace/internal/semantic"
)

// AnalyzeSource runs the full pipeline — parse, lower every template and
// function to a CFG, run the side-effect analysis on each — and returns the
// combined findings plus any parse errors. A non-empty parseErrs means
// analysis did not run at all (spec.md §7: a malformed file produces no CFG).
func AnalyzeSource(source string, fileID int) (*report.ReportCollection, []parser.ParseError) {
	circuit, errs := parser.ParseSource(source, fileID)
	if len(errs) > 0 {
		return nil, errs
	}

	rc := &report.ReportCollection{}
	for _, t := range circuit.Templates {
		rc.Append(semantic.RunSideEffectAnalysis(ir.BuildTemplateCFG(t)))
	}
	for _, f := range circuit.Functions {
		rc.Append(semantic.RunSideEffectAnalysis(ir.BuildFunctionCFG(f)))
	}
	return rc, nil
}

func reportDiagnostics(rc *report.ReportCollection) []protocol.Diagnostic {
	if rc == nil {
		return nil
	}
	var out []protocol.Diagnostic
	for _, r := range rc.Reports {
		labels := r.PrimaryLabels
		if len(labels) == 0 {
			labels = r.SecondaryLabels
		}
		if len(labels) == 0 {
			continue
		}
		label := labels[0]
		out = append(out, protocol.Diagnostic{
			Range:    spanToRange(label.Span),
			Severity: severityPtr(r.Severity),
			Source:   ptrString("sigtrace"),
			Message:  r.Message,
		})
	}
	return out
}

func parseErrorDiagnostics(source string, errs []parser.ParseError) []protocol.Diagnostic {
	if len(errs) == 0 {
		return nil
	}
	lines := newLineIndex(source)
	var out []protocol.Diagnostic
	for _, e := range errs {
		startLine, startCol := lines.lineCol(e.Start)
		endLine, endCol := lines.lineCol(e.End)
		if e.End <= e.Start {
			endCol = startCol + 1
		}
		out = append(out, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: uint32(startLine), Character: uint32(startCol)},
				End:   protocol.Position{Line: uint32(endLine), Character: uint32(endCol)},
			},
			Severity: severityPtr(report.Error),
			Source:   ptrString("sigtrace-parser"),
			Message:  e.Message,
		})
	}
	return out
}

func spanToRange(s report.Span) protocol.Range {
	startCol := s.Start.Column - 1
	if startCol < 0 {
		startCol = 0
	}
	endCol := s.End.Column - 1
	if endCol <= startCol {
		endCol = startCol + 1
	}
	return protocol.Range{
		Start: protocol.Position{Line: uint32(max0(s.Start.Line - 1)), Character: uint32(startCol)},
		End:   protocol.Position{Line: uint32(max0(s.End.Line - 1)), Character: uint32(endCol)},
	}
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func severityPtr(sev report.Severity) *protocol.DiagnosticSeverity {
	s := protocol.DiagnosticSeverityWarning
	if sev == report.Error {
		s = protocol.DiagnosticSeverityError
	}
	return &s
}

func ptrString(s string) *string { return &s }

// lineIndex maps a byte offset in the original source back to a 0-based
// line/column pair, for parse errors (which, unlike report.Span, carry only
// byte offsets and no ast.Position to read one from).
type lineIndex struct {
	lineStarts []int
}

func newLineIndex(source string) *lineIndex {
	starts := []int{0}
	for i, b := range []byte(source) {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{lineStarts: starts}
}

func (l *lineIndex) lineCol(offset int) (line, col int) {
	line = len(l.lineStarts) - 1
	for i, start := range l.lineStarts {
		if start > offset {
			line = i - 1
			break
		}
	}
	if line < 0 {
		line = 0
	}
	col = offset - l.lineStarts[line]
	if col < 0 {
		col = 0
	}
	return line, col
}
