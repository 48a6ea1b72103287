package semantic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sigtrace/internal/report"
	"sigtrace/internal/semantic"
)

func codes(rc *report.ReportCollection) []report.Code {
	var out []report.Code
	for _, r := range rc.Reports {
		out = append(out, r.Code)
	}
	return out
}

// Dead reductions accumulated inside a loop never reach the output and are
// each reported once, alongside the loop counter i and the loop bound
// parameter n (which only ever control iteration count, never a computed
// value).
func TestSideEffectAnalysis_DeadLoopReductions(t *testing.T) {
	cfg := mustParseTemplate(t, `
template DeadLoop(n) {
	signal input in;
	signal output out;
	var acc = 0;
	var deadA = 0;
	var deadB = 1;
	var i = 0;
	while (i < n) {
		acc = acc + in;
		deadA = deadA + in;
		deadB = deadB + deadB;
		i = i + 1;
	}
	out <-- acc;
}
`)
	rc := semantic.RunSideEffectAnalysis(cfg)
	assert.Len(t, rc.Reports, 4)
	assert.ElementsMatch(t, codes(rc), []report.Code{
		report.VariableWithoutSideEffect,
		report.VariableWithoutSideEffect,
		report.VariableWithoutSideEffect,
		report.VariableWithoutSideEffect,
	})
}

// A helper function with one live computation and several locals that are
// assigned but never read: three dead locals plus one unused parameter.
func TestSideEffectAnalysis_FunctionWithDeadLocalsAndUnusedParam(t *testing.T) {
	cfg := mustParseFunction(t, `
function Helper(a, b, deadP) {
	var sum = a + b;
	var deadX = a;
	var deadY = b;
	var deadZ = 0;
	return sum;
}
`)
	rc := semantic.RunSideEffectAnalysis(cfg)
	assert.Len(t, rc.Reports, 4)
	assert.ElementsMatch(t, codes(rc), []report.Code{
		report.UnusedParameterValue,
		report.UnusedVariableValue,
		report.UnusedVariableValue,
		report.UnusedVariableValue,
	})
}

// Every parameter and local flows into the output; nothing is reported.
func TestSideEffectAnalysis_FullyLiveTemplateReportsNothing(t *testing.T) {
	cfg := mustParseTemplate(t, `
template AllLive(a, b) {
	signal input in;
	signal output out;
	var sum = a + b;
	out <-- in + sum;
}
`)
	rc := semantic.RunSideEffectAnalysis(cfg)
	assert.Empty(t, rc.Reports)
}

// An intermediate array signal is assigned one element but never appears in
// a constraint: a single UnconstrainedSignal report, not a generic one, and
// the array-size parameter (read only inside the declaration's dimension)
// is shielded as a sink.
func TestSideEffectAnalysis_UnconstrainedArraySignal(t *testing.T) {
	cfg := mustParseTemplate(t, `
template UnconstrainedTmp(n) {
	signal input in;
	signal output out;
	signal tmp[n];
	tmp[0] <-- 0;
	out <-- in;
}
`)
	rc := semantic.RunSideEffectAnalysis(cfg)
	if assert.Len(t, rc.Reports, 1) {
		assert.Equal(t, report.UnconstrainedSignal, rc.Reports[0].Code)
	}
}

// A pure function whose only parameter feeds directly into the returned
// expression: nothing is reported.
func TestSideEffectAnalysis_PureFunctionReportsNothing(t *testing.T) {
	cfg := mustParseFunction(t, `
function Double(x) {
	return x + x;
}
`)
	rc := semantic.RunSideEffectAnalysis(cfg)
	assert.Empty(t, rc.Reports)
}

// `<==` assigns a witness value and constrains it in the same step: an
// intermediate signal assigned this way is never reported as unconstrained,
// even though no bare `===` ever mentions it.
func TestSideEffectAnalysis_AssignConstrImpliesConstraint(t *testing.T) {
	cfg := mustParseTemplate(t, `
template Foo() {
	signal input in;
	signal output out;
	signal tmp;
	tmp <== in;
	out <-- tmp;
}
`)
	rc := semantic.RunSideEffectAnalysis(cfg)
	assert.Empty(t, rc.Reports)
}

// A witness-and-constraint assignment shields both the output signal and
// the parameter it reads; the second, untouched parameter is reported.
func TestSideEffectAnalysis_UnusedParameter(t *testing.T) {
	cfg := mustParseTemplate(t, `
template UnusedParam(n, unused) {
	signal output out;
	out <== n;
}
`)
	rc := semantic.RunSideEffectAnalysis(cfg)
	if assert.Len(t, rc.Reports, 1) {
		assert.Equal(t, report.UnusedParameterValue, rc.Reports[0].Code)
	}
}
