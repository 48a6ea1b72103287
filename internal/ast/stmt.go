package ast

// Stmt is implemented by every IR statement tag named in spec.md §3:
// Declaration, Substitution, ConstraintEquality, Return, Assert, IfThenElse,
// While, Block, LogCall.
type Stmt interface {
	Node
	isStmt()
}

// DeclStmt binds a name to a kind and (for signals) an array shape.
// Example: "signal input in;", "signal output out[n];", "var lout;",
// "component left;"
type DeclStmt struct {
	Pos        Position
	EndPos     Position
	Name       Ident
	Kind       VariableKind
	Dimensions []Expr
}

func (d *DeclStmt) NodePos() Position    { return d.Pos }
func (d *DeclStmt) NodeEndPos() Position { return d.EndPos }
func (*DeclStmt) NodeType() NodeType     { return DECLARATION }
func (*DeclStmt) isStmt()                {}

// SubstitutionStmt is an ordinary assignment, a witness-only signal
// assignment (`<--`), or a witness+constraint assignment (`<==`).
// Example: "lout = lout + e;", "out[k] <-- (in - k) * 2;",
// "left.a <== right[0].a;"
type SubstitutionStmt struct {
	Pos    Position
	EndPos Position
	Target Expr
	Op     AssignOp
	Value  Expr
}

func (s *SubstitutionStmt) NodePos() Position    { return s.Pos }
func (s *SubstitutionStmt) NodeEndPos() Position { return s.EndPos }
func (*SubstitutionStmt) NodeType() NodeType     { return SUBSTITUTION }
func (*SubstitutionStmt) isStmt()                {}

// ConstraintStmt is the `===` operator, which is bidirectional: it neither
// reads nor writes in the imperative sense, it relates both sides.
// Example: "out[k] * (out[k] - 1) === 0;", "lin === lout;"
type ConstraintStmt struct {
	Pos    Position
	EndPos Position
	Left   Expr
	Right  Expr
}

func (c *ConstraintStmt) NodePos() Position    { return c.Pos }
func (c *ConstraintStmt) NodeEndPos() Position { return c.EndPos }
func (*ConstraintStmt) NodeType() NodeType     { return CONSTRAINT_EQUALITY }
func (*ConstraintStmt) isStmt()                {}

// ReturnStmt returns a value from a function.
// Example: "return lout;", "return;"
type ReturnStmt struct {
	Pos    Position
	EndPos Position
	Value  Expr // nil for a bare "return;"
}

func (r *ReturnStmt) NodePos() Position    { return r.Pos }
func (r *ReturnStmt) NodeEndPos() Position { return r.EndPos }
func (*ReturnStmt) NodeType() NodeType     { return RETURN_STMT }
func (*ReturnStmt) isStmt()                {}

// AssertStmt enforces a host-side (non-constraint) invariant.
// Example: "assert(3 * n + LOGK2 < 251);"
type AssertStmt struct {
	Pos    Position
	EndPos Position
	Cond   Expr
}

func (a *AssertStmt) NodePos() Position    { return a.Pos }
func (a *AssertStmt) NodeEndPos() Position { return a.EndPos }
func (*AssertStmt) NodeType() NodeType     { return ASSERT_STMT }
func (*AssertStmt) isStmt()                {}

// IfStmt is a conditional. Else is nil, a *BlockStmt, or another *IfStmt
// (for "else if" chains).
// Example: "if (i < n) { ... } else { ... }"
type IfStmt struct {
	Pos    Position
	EndPos Position
	Cond   Expr
	Then   *BlockStmt
	Else   Stmt
}

func (i *IfStmt) NodePos() Position    { return i.Pos }
func (i *IfStmt) NodeEndPos() Position { return i.EndPos }
func (*IfStmt) NodeType() NodeType     { return IF_STMT }
func (*IfStmt) isStmt()                {}

// WhileStmt is a loop; the DSL's `for` desugars to this at parse time.
// Example: "while (i < n) { ... i = i + 1; }"
type WhileStmt struct {
	Pos    Position
	EndPos Position
	Cond   Expr
	Body   *BlockStmt
}

func (w *WhileStmt) NodePos() Position    { return w.Pos }
func (w *WhileStmt) NodeEndPos() Position { return w.EndPos }
func (*WhileStmt) NodeType() NodeType     { return WHILE_STMT }
func (*WhileStmt) isStmt()                {}

// BlockStmt is an ordered sequence of statements.
type BlockStmt struct {
	Pos    Position
	EndPos Position
	Items  []Stmt
}

func (b *BlockStmt) NodePos() Position    { return b.Pos }
func (b *BlockStmt) NodeEndPos() Position { return b.EndPos }
func (*BlockStmt) NodeType() NodeType     { return BLOCK_STMT }
func (*BlockStmt) isStmt()                {}

// LogStmt prints diagnostic output during witness generation. Unlike
// AssertStmt, its arguments are ordinary reads only — spec.md §4.5 step 8
// promotes Declaration/Return/Assert/IfThenElse reads to sinks but does not
// name LogCall, so a variable that flows only into a log call is still
// reported as side-effect free.
// Example: "log(lout);"
type LogStmt struct {
	Pos    Position
	EndPos Position
	Args   []Expr
}

func (l *LogStmt) NodePos() Position    { return l.Pos }
func (l *LogStmt) NodeEndPos() Position { return l.EndPos }
func (*LogStmt) NodeType() NodeType     { return LOG_STMT }
func (*LogStmt) isStmt()                {}
