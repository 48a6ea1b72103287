package ast

// Circuit is the top-level AST for one source file: an ordered sequence of
// template and function declarations.
type Circuit struct {
	Pos       Position
	EndPos    Position
	Templates []*Template
	Functions []*Function
}

func (c *Circuit) NodePos() Position    { return c.Pos }
func (c *Circuit) NodeEndPos() Position { return c.EndPos }
func (*Circuit) NodeType() NodeType     { return CIRCUIT }

// Param is a formal parameter of a template or function. Parameters are
// ordinary host-side values (loop bounds, array sizes, template arguments);
// they are never signals.
type Param struct {
	Pos    Position
	EndPos Position
	Name   Ident
}

func (p *Param) NodePos() Position    { return p.Pos }
func (p *Param) NodeEndPos() Position { return p.EndPos }
func (*Param) NodeType() NodeType     { return FUNCTION_PARAM }

// Template declares signals, local variables, and constraints. It may
// instantiate other templates as components.
type Template struct {
	Pos    Position
	EndPos Position
	Name   Ident
	Params []*Param
	Body   *BlockStmt
}

func (t *Template) NodePos() Position    { return t.Pos }
func (t *Template) NodeEndPos() Position { return t.EndPos }
func (*Template) NodeType() NodeType     { return TEMPLATE }

// Function is a pure, host-side computation: it declares no signals and
// returns a value. Functions may still be called from within templates (for
// example to compute array dimensions), which is why their return values
// are always sinks (spec.md §4.5's "Function-return constructs" edge case).
// Their parameters are not: an unused parameter is still reported.
type Function struct {
	Pos        Position
	EndPos     Position
	Name       Ident
	Params     []*Param
	Body       *BlockStmt
	HasReturns bool
}

func (f *Function) NodePos() Position    { return f.Pos }
func (f *Function) NodeEndPos() Position { return f.EndPos }
func (*Function) NodeType() NodeType     { return FUNCTION }
