package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"sigtrace/internal/ir"
	"sigtrace/internal/parser"
	"sigtrace/internal/report"
	"sigtrace/internal/semantic"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: sigtrace <file.circ>")
		os.Exit(1)
	}

	path := os.Args[1]
	source, err := os.ReadFile(path)
	if err != nil {
		color.Red("failed to read %s: %v", path, err)
		os.Exit(1)
	}

	circuit, errs := parser.ParseSource(string(source), 0)
	if len(errs) > 0 {
		reportParseErrors(path, string(source), errs)
		os.Exit(1)
	}

	rc := &report.ReportCollection{}
	for _, t := range circuit.Templates {
		rc.Append(semantic.RunSideEffectAnalysis(ir.BuildTemplateCFG(t)))
	}
	for _, f := range circuit.Functions {
		rc.Append(semantic.RunSideEffectAnalysis(ir.BuildFunctionCFG(f)))
	}

	printer := report.NewPrinter()
	printer.AddFile(0, path, string(source))
	fmt.Print(printer.Print(rc))

	if rc.Len() == 0 {
		color.Green("✅ %s: no findings", path)
		return
	}
	fmt.Printf("%d finding(s) in %s\n", rc.Len(), path)
}

// reportParseErrors prints a friendly caret-style message per parse error,
// grounded on the teacher's cmd/kanso-cli/main.go::reportParseError, adapted
// for sigtrace/internal/parser.ParseError's byte-offset-only Position (it
// records the byte offsets of the offending token or character but not its
// line and column, so those are recomputed from the source here).
func reportParseErrors(path, src string, errs []parser.ParseError) {
	lines := strings.Split(src, "\n")
	for _, e := range errs {
		line, col := lineColOf(src, e.Start)
		color.Red("❌ parse error in %s at byte %d (line %d, column %d):", path, e.Start, line, col)
		if line >= 1 && line <= len(lines) {
			fmt.Println(lines[line-1])
			fmt.Println(strings.Repeat(" ", max0(col-1)) + color.HiRedString("^"))
		}
		fmt.Printf("→ %s\n", e.Message)
	}
}

func lineColOf(src string, offset int) (line, col int) {
	line = 1
	col = 1
	for i, b := range []byte(src) {
		if i >= offset {
			break
		}
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
