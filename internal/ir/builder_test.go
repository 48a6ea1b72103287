package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sigtrace/internal/ir"
	"sigtrace/internal/parser"
)

func parseTemplate(t *testing.T, src string) *ir.CFG {
	t.Helper()
	circuit, errs := parser.ParseSource(src, 0)
	if !assert.Empty(t, errs) {
		t.FailNow()
	}
	if !assert.Len(t, circuit.Templates, 1) {
		t.FailNow()
	}
	return ir.BuildTemplateCFG(circuit.Templates[0])
}

func TestBuildTemplateCFG_FlatBody(t *testing.T) {
	cfg := parseTemplate(t, `
template Pass() {
	signal input in;
	signal output out;
	out <-- in;
}
`)
	assert.Len(t, cfg.Blocks(), 1)
	assert.Contains(t, cfg.Declarations(), "in")
	assert.Contains(t, cfg.Declarations(), "out")
}

func TestBuildTemplateCFG_IfCreatesBranchBlocks(t *testing.T) {
	cfg := parseTemplate(t, `
template Choose(n) {
	signal input in;
	signal output out;
	var v = 0;
	if (n > 0) {
		v = in;
	} else {
		v = 0;
	}
	out <-- v;
}
`)
	assert.Len(t, cfg.Blocks(), 3)
	entry := cfg.Blocks()[0]
	assert.Len(t, entry.Succs, 2)
}

func TestBuildTemplateCFG_WhileLinksBackToItself(t *testing.T) {
	cfg := parseTemplate(t, `
template Sum(n) {
	signal input in[n];
	signal output out;
	var acc = 0;
	var i = 0;
	while (i < n) {
		acc = acc + in[i];
		i = i + 1;
	}
	out <-- acc;
}
`)
	assert.Len(t, cfg.Blocks(), 2)
	body := cfg.Blocks()[1]
	assert.Contains(t, body.Succs, body.ID)
}

func TestBuildTemplateCFG_DeclWithInitializerStaysInSameBlock(t *testing.T) {
	cfg := parseTemplate(t, `
template Const() {
	signal output out;
	var lout = 5;
	out <-- lout;
}
`)
	assert.Len(t, cfg.Blocks(), 1)
	assert.Len(t, cfg.Blocks()[0].Stmts, 4)
}
