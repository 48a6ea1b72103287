package semantic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sigtrace/internal/ir"
	"sigtrace/internal/parser"
	"sigtrace/internal/semantic"
)

func mustParseTemplate(t *testing.T, src string) *ir.CFG {
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

func mustParseFunction(t *testing.T, src string) *ir.CFG {
	t.Helper()
	circuit, errs := parser.ParseSource(src, 0)
	if !assert.Empty(t, errs) {
		t.FailNow()
	}
	if !assert.Len(t, circuit.Functions, 1) {
		t.FailNow()
	}
	return ir.BuildFunctionCFG(circuit.Functions[0])
}

func TestTaintAnalysis_AccumulatorProducesSelfLoop(t *testing.T) {
	cfg := mustParseTemplate(t, `
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
	ta := semantic.BuildTaintAnalysis(cfg)
	closure := ta.MultiStepTaint("acc")
	assert.Contains(t, closure, "acc")
	assert.Contains(t, closure, "out")
}

func TestTaintAnalysis_ParametersAreDefinitionsWithNoIncomingEdges(t *testing.T) {
	cfg := mustParseFunction(t, `
function Double(x) {
	return x + x;
}
`)
	ta := semantic.BuildTaintAnalysis(cfg)
	var names []string
	for _, d := range ta.Definitions() {
		names = append(names, d.Name)
	}
	assert.Contains(t, names, "x")
	assert.Empty(t, ta.SingleStepTaint("x"))
	for _, n := range names {
		assert.NotContains(t, ta.SingleStepTaint(n), "x", "%q must not feed parameter x", n)
	}
}

func TestTaintAnalysis_IndexedWriteTaintsArrayBaseName(t *testing.T) {
	cfg := mustParseTemplate(t, `
template Scatter(n) {
	signal output out[n];
	var i = 0;
	while (i < n) {
		out[i] <-- i;
		i = i + 1;
	}
}
`)
	ta := semantic.BuildTaintAnalysis(cfg)
	closure := ta.MultiStepTaint("out")
	assert.Contains(t, closure, "out")
}

func TestTaintAnalysis_TaintsAnyDetectsUnreachableSet(t *testing.T) {
	cfg := mustParseTemplate(t, `
template Isolated() {
	signal output out;
	var deadA = 0;
	var deadB = 1;
	deadB = deadB + deadB;
	out <-- 0;
}
`)
	ta := semantic.BuildTaintAnalysis(cfg)
	assert.False(t, ta.TaintsAny("deadB", map[string]struct{}{"out": {}}))
}
