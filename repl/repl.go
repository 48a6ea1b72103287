// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"sigtrace/internal/ir"
	"sigtrace/internal/parser"
	"sigtrace/internal/report"
	"sigtrace/internal/semantic"
)

const PROMPT = ">> "

// Start reads template/function declarations from in, one blank-line-
// terminated block at a time, and prints the side-effect findings for each.
// The DSL has no bare top-level expression, unlike the teacher's original
// line-at-a-time language — a construct only exists once its closing brace
// is read, so the prompt accumulates lines until the input blanks out.
func Start(in io.Reader) {
	scanner := bufio.NewScanner(in)
	fileID := 0

	for {
		fmt.Print(PROMPT)
		var block strings.Builder
		blank := false
		for scanner.Scan() {
			line := scanner.Text()
			if strings.TrimSpace(line) == "" {
				blank = true
				break
			}
			block.WriteString(line)
			block.WriteString("\n")
		}
		if block.Len() == 0 {
			if !blank {
				return // EOF with nothing pending
			}
			continue
		}

		source := block.String()
		circuit, errs := parser.ParseSource(source, fileID)
		if len(errs) > 0 {
			for _, e := range errs {
				fmt.Printf("parse error: %s\n", e.Message)
			}
			fileID++
			continue
		}

		rc := &report.ReportCollection{}
		for _, t := range circuit.Templates {
			rc.Append(semantic.RunSideEffectAnalysis(ir.BuildTemplateCFG(t)))
		}
		for _, f := range circuit.Functions {
			rc.Append(semantic.RunSideEffectAnalysis(ir.BuildFunctionCFG(f)))
		}

		printer := report.NewPrinter()
		printer.AddFile(fileID, fmt.Sprintf("<repl:%d>", fileID), source)
		fmt.Print(printer.Print(rc))
		if rc.Len() == 0 {
			fmt.Println("no findings")
		}
		fileID++
	}
}
