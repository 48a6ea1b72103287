package semantic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sigtrace/internal/semantic"
)

func TestConstraintAnalysis_BidirectionalEquality(t *testing.T) {
	cfg := mustParseTemplate(t, `
template Pass() {
	signal input in;
	signal output out;
	out <-- in;
	in === out;
}
`)
	ca := semantic.BuildConstraintAnalysis(cfg)
	assert.Contains(t, ca.SingleStepConstraint("in"), "out")
	assert.Contains(t, ca.SingleStepConstraint("out"), "in")
}

func TestConstraintAnalysis_MultiStepChainsThroughSharedNames(t *testing.T) {
	cfg := mustParseTemplate(t, `
template Chain() {
	signal input a;
	signal input b;
	signal input c;
	a === b;
	b === c;
}
`)
	ca := semantic.BuildConstraintAnalysis(cfg)
	closure := ca.MultiStepConstraint("a")
	assert.Contains(t, closure, "b")
	assert.Contains(t, closure, "c")
	assert.NotContains(t, closure, "a")
}

func TestConstraintAnalysis_AssignConstrDesugarsToAnEdge(t *testing.T) {
	cfg := mustParseTemplate(t, `
template Foo() {
	signal input in;
	signal tmp;
	tmp <== in;
}
`)
	ca := semantic.BuildConstraintAnalysis(cfg)
	assert.Contains(t, ca.SingleStepConstraint("tmp"), "in")
	assert.Contains(t, ca.SingleStepConstraint("in"), "tmp")
}

func TestConstraintAnalysis_NoEdgesReturnsNilNotEmptySet(t *testing.T) {
	cfg := mustParseTemplate(t, `
template Unconstrained() {
	signal input in;
	signal output out;
	out <-- in;
}
`)
	ca := semantic.BuildConstraintAnalysis(cfg)
	assert.Nil(t, ca.MultiStepConstraint("in"))
}

func TestConstraintAnalysis_NamedButIsolatedHasEmptyNonNilNeighborhood(t *testing.T) {
	cfg := mustParseTemplate(t, `
template SelfConstrained() {
	signal input in;
	in === in;
}
`)
	ca := semantic.BuildConstraintAnalysis(cfg)
	closure := ca.MultiStepConstraint("in")
	assert.NotNil(t, closure)
	assert.Empty(t, closure)
}
