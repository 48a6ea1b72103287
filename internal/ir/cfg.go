// Package ir is the CFG/SSA substrate the semantic analyses run against.
// It is deliberately thin: basic blocks hold the statement tags named in
// spec.md §3 directly (Declaration, Substitution, ConstraintEquality,
// Return, Assert, IfThenElse, While, LogCall; Block statements are
// flattened into the block that contains them) rather than lowering
// control flow into an edge-only graph, because the side-effect orchestrator
// needs the IfThenElse/While statements themselves (to read their
// conditions as sinks), not just the blocks they guard.
//
// The canonical-name convention is "always base": no SSA version suffix is
// ever materialized. Every definition site (a Declaration or a
// Substitution's target) is recorded against the bare source identifier, and
// every read resolves to that same identifier. Reassigning a variable adds
// another definitions() entry under the same name rather than minting a
// fresh versioned one; self-referential statements such as a loop
// accumulator (`acc = acc + x`) then naturally produce a taint self-loop,
// which spec.md §4.3's multi_step_taint already treats as "this name has an
// outgoing edge". This sidesteps dominance-frontier phi placement entirely:
// a join block's reads simply refer to the one name both predecessors wrote.
//
// Grounded on the teacher's internal/ir package shape (BasicBlock, CFG,
// arena-of-blocks-by-id) described in SPEC_FULL.md §11.2.
package ir

import "sigtrace/internal/ast"

// Declaration is the per-construct binding-site record the CFG exposes via
// Declarations(), keyed by bare identifier.
type Declaration struct {
	Name       string
	Kind       ast.VariableKind
	Dimensions []ast.Expr
	Pos        ast.Position
}

// VariableUse names a single read or definition occurrence.
type VariableUse struct {
	Name string
	Pos  ast.Position
}

// BasicBlock is an ordered statement list. Preds/Succs are populated for
// structural fidelity with a conventional CFG shape; the analyses in
// internal/semantic never consult them; they only iterate blocks and
// statements (spec.md §4.2 contract (a)/(b)).
type BasicBlock struct {
	ID    int
	Stmts []ast.Stmt
	Preds []int
	Succs []int
}

// ConstructKind distinguishes a template from a function. It is recorded on
// the CFG only; neither the analyses nor their Report messages read it.
type ConstructKind int

const (
	ConstructTemplate ConstructKind = iota
	ConstructFunction
)

// CFG is one template or function body lowered into basic blocks, plus the
// declaration and parameter metadata the semantic analyses need.
type CFG struct {
	Name         string
	Kind         ConstructKind
	Params       []string
	ParamPos     map[string]ast.Position
	HasReturns   bool
	blocks       []*BasicBlock
	declarations map[string]*Declaration
}

func (c *CFG) Blocks() []*BasicBlock { return c.blocks }

func (c *CFG) Declarations() map[string]*Declaration { return c.declarations }

func (c *CFG) Parameters() []string { return c.Params }

// AllStatements flattens every block's statement list in block order. It is
// a convenience used by the side-effect orchestrator for spec.md §4.5 step
// 2's "variables_read ← ⋃ basic_block.variables_read() over the whole CFG".
func (c *CFG) AllStatements() []ast.Stmt {
	var out []ast.Stmt
	for _, b := range c.blocks {
		out = append(out, b.Stmts...)
	}
	return out
}

func (c *CFG) addBlock() *BasicBlock {
	b := &BasicBlock{ID: len(c.blocks)}
	c.blocks = append(c.blocks, b)
	return b
}

func link(from, to *BasicBlock) {
	from.Succs = append(from.Succs, to.ID)
	to.Preds = append(to.Preds, from.ID)
}
