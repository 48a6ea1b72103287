package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sigtrace/internal/ast"
)

func TestScanner_AssignmentOperators(t *testing.T) {
	src := "a = b; c <-- d; e <== f; g === h; i += 1; j++;"
	sc := NewScanner(0, src)
	toks, errs := sc.ScanAll()
	assert.Empty(t, errs)

	var types []TokenType
	for _, tok := range toks {
		if tok.Type != EOF {
			types = append(types, tok.Type)
		}
	}
	assert.Contains(t, types, ASSIGN)
	assert.Contains(t, types, ASSIGN_SIG)
	assert.Contains(t, types, ASSIGN_CONST)
	assert.Contains(t, types, CONSTRAINT)
	assert.Contains(t, types, PLUS_ASSIGN)
	assert.Contains(t, types, INC)
}

func TestScanner_LessThanFollowedByNegativeDoesNotOverconsume(t *testing.T) {
	sc := NewScanner(0, "i<-1")
	toks, errs := sc.ScanAll()
	assert.Empty(t, errs)
	assert.Equal(t, []TokenType{IDENT, LT, MINUS, NUMBER, EOF}, tokenTypes(toks))
	ltTok := toks[1]
	assert.Equal(t, "<", ltTok.Lexeme)
}

func tokenTypes(toks []Token) []TokenType {
	out := make([]TokenType, len(toks))
	for i, tok := range toks {
		out[i] = tok.Type
	}
	return out
}

func TestParseSource_SimpleTemplate(t *testing.T) {
	src := `
template IsZero(n) {
	signal input in;
	signal output out;
	var inv = 0;
	out <-- in;
	in * out === 0;
}
`
	circuit, errs := ParseSource(src, 0)
	assert.Empty(t, errs)
	assert.Len(t, circuit.Templates, 1)
	tmpl := circuit.Templates[0]
	assert.Equal(t, "IsZero", tmpl.Name.Name)
	assert.Len(t, tmpl.Params, 1)
}

func TestParseSource_FunctionWithReturn(t *testing.T) {
	src := `
function log2(n) {
	var result = 0;
	while (n > 1) {
		n = n / 2;
		result = result + 1;
	}
	return result;
}
`
	circuit, errs := ParseSource(src, 0)
	assert.Empty(t, errs)
	assert.Len(t, circuit.Functions, 1)
	assert.True(t, circuit.Functions[0].HasReturns)
}

func TestParseSource_ForLoopDesugarsToWhile(t *testing.T) {
	src := `
template Sum(n) {
	signal input in[n];
	signal output out;
	var acc = 0;
	for (var i = 0; i < n; i++) {
		acc = acc + in[i];
	}
	out <-- acc;
}
`
	circuit, errs := ParseSource(src, 0)
	assert.Empty(t, errs)
	assert.Len(t, circuit.Templates, 1)

	body := circuit.Templates[0].Body
	found := false
	for _, item := range body.Items {
		if block, ok := item.(*ast.BlockStmt); ok {
			for _, inner := range block.Items {
				if _, ok := inner.(*ast.WhileStmt); ok {
					found = true
				}
			}
		}
		if _, ok := item.(*ast.WhileStmt); ok {
			found = true
		}
	}
	assert.True(t, found, "expected a desugared while loop in the body")
}

func TestParseSource_ConstraintAndComponentAccess(t *testing.T) {
	src := `
template Pair() {
	signal input a;
	signal input b;
	component left;
	component right;
	left.a === right.b;
}
`
	circuit, errs := ParseSource(src, 0)
	assert.Empty(t, errs)
	tmpl := circuit.Templates[0]

	var constraint *ast.ConstraintStmt
	for _, item := range tmpl.Body.Items {
		if c, ok := item.(*ast.ConstraintStmt); ok {
			constraint = c
		}
	}
	if assert.NotNil(t, constraint) {
		left, ok := constraint.Left.(*ast.ComponentAccessExpr)
		assert.True(t, ok)
		assert.Equal(t, "a", left.Field)
	}
}

func TestParseSource_InvalidTokenProducesParseError(t *testing.T) {
	src := `template Bad( { signal input x; }`
	_, errs := ParseSource(src, 0)
	assert.NotEmpty(t, errs)
}

func TestParseSource_PrecedenceClimbing(t *testing.T) {
	src := `
function f(a, b, c) {
	return a + b * c;
}
`
	circuit, errs := ParseSource(src, 0)
	assert.Empty(t, errs)
	ret := circuit.Functions[0].Body.Items[0].(*ast.ReturnStmt)
	bin, ok := ret.Value.(*ast.BinaryExpr)
	if assert.True(t, ok) {
		assert.Equal(t, "+", bin.Op)
		rhs, ok := bin.Right.(*ast.BinaryExpr)
		assert.True(t, ok)
		assert.Equal(t, "*", rhs.Op)
	}
}
