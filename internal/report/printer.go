package report

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Printer renders a ReportCollection as Rust-style terminal diagnostics.
// Grounded on the teacher's internal/errors.ErrorReporter: a bold
// "severity[CODE]: message" header, a "--> file:line:col" location line,
// and a source snippet with a caret underline, all via fatih/color.
type Printer struct {
	// sources maps a file id to its original (non-preprocessed) text and
	// display name, so labels can render a snippet and a readable path.
	sources map[int]sourceFile
}

type sourceFile struct {
	name  string
	lines []string
}

func NewPrinter() *Printer {
	return &Printer{sources: map[int]sourceFile{}}
}

// AddFile registers a file's source text under its id for snippet
// rendering. Unregistered file ids still render a location line without a
// snippet.
func (p *Printer) AddFile(fileID int, name, source string) {
	p.sources[fileID] = sourceFile{name: name, lines: strings.Split(source, "\n")}
}

// Print renders every report in rc to a single string.
func (p *Printer) Print(rc *ReportCollection) string {
	var out strings.Builder
	for _, r := range rc.Reports {
		out.WriteString(p.renderOne(r))
	}
	return out.String()
}

func (p *Printer) renderOne(r Report) string {
	var out strings.Builder
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	levelColor := color.New(color.FgYellow, color.Bold).SprintFunc()
	if r.Severity == Error {
		levelColor = color.New(color.FgRed, color.Bold).SprintFunc()
	}

	out.WriteString(fmt.Sprintf("%s[%s]: %s\n", levelColor(r.Severity.String()), r.Code.String(), r.Message))

	labels := r.PrimaryLabels
	if len(labels) == 0 {
		labels = r.SecondaryLabels
	}
	if len(labels) == 0 {
		out.WriteString("\n")
		return out.String()
	}

	for i, label := range labels {
		src, ok := p.sources[label.FileID]
		indent := "   "
		loc := fmt.Sprintf("%d:%d", label.Span.Start.Line, label.Span.Start.Column)
		name := fmt.Sprintf("file#%d", label.FileID)
		if ok {
			name = src.name
		}
		out.WriteString(fmt.Sprintf("%s %s %s:%s\n", indent, dim("-->"), name, loc))
		out.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

		if ok && label.Span.Start.Line >= 1 && label.Span.Start.Line <= len(src.lines) {
			line := src.lines[label.Span.Start.Line-1]
			lineNo := fmt.Sprintf("%3d", label.Span.Start.Line)
			out.WriteString(fmt.Sprintf("%s %s %s\n", bold(lineNo), dim("│"), line))

			width := label.Span.End.Offset - label.Span.Start.Offset
			if width <= 0 {
				width = 1
			}
			marker := strings.Repeat(" ", max(0, label.Span.Start.Column-1)) + strings.Repeat("^", width)
			out.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("│"), levelColor(marker)))
		}

		if label.Note != "" {
			out.WriteString(fmt.Sprintf("%s %s %s %s\n", indent, dim("│"), color.New(color.FgBlue).Sprint("note:"), label.Note))
		}
		if i < len(labels)-1 {
			out.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))
		}
	}
	out.WriteString("\n")
	return out.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
