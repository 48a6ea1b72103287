package ast

// Expr is implemented by every expression node.
// Example: "a + b", "out[k]", "left.a", "f(x, y)"
type Expr interface {
	Node
	isExpr()
}

// Ident is a bare identifier, used both as an expression and as a name slot
// inside declarations, parameters, etc.
// Example: "lin", "out", "n"
type Ident struct {
	Pos    Position
	EndPos Position
	Name   string
}

func (i *Ident) NodePos() Position    { return i.Pos }
func (i *Ident) NodeEndPos() Position { return i.EndPos }
func (*Ident) NodeType() NodeType     { return IDENT_EXPR }
func (*Ident) isExpr()                {}

// LiteralExpr is a numeric (field element) literal.
// Example: "0", "251", "1024"
type LiteralExpr struct {
	Pos    Position
	EndPos Position
	Value  string
}

func (l *LiteralExpr) NodePos() Position    { return l.Pos }
func (l *LiteralExpr) NodeEndPos() Position { return l.EndPos }
func (*LiteralExpr) NodeType() NodeType     { return LITERAL_EXPR }
func (*LiteralExpr) isExpr()                {}

// BinaryExpr is a binary operator expression.
// Example: "a + b", "out[k] - 1", "i < n"
type BinaryExpr struct {
	Pos    Position
	EndPos Position
	Op     string
	Left   Expr
	Right  Expr
}

func (b *BinaryExpr) NodePos() Position    { return b.Pos }
func (b *BinaryExpr) NodeEndPos() Position { return b.EndPos }
func (*BinaryExpr) NodeType() NodeType     { return BINARY_EXPR }
func (*BinaryExpr) isExpr()                {}

// UnaryExpr is a prefix unary operator expression.
// Example: "-e", "!done"
type UnaryExpr struct {
	Pos    Position
	EndPos Position
	Op     string
	Value  Expr
}

func (u *UnaryExpr) NodePos() Position    { return u.Pos }
func (u *UnaryExpr) NodeEndPos() Position { return u.EndPos }
func (*UnaryExpr) NodeType() NodeType     { return UNARY_EXPR }
func (*UnaryExpr) isExpr()                {}

// IndexExpr is an array subscript.
// Example: "out[k]", "right[i]"
type IndexExpr struct {
	Pos    Position
	EndPos Position
	Target Expr
	Index  Expr
}

func (x *IndexExpr) NodePos() Position    { return x.Pos }
func (x *IndexExpr) NodeEndPos() Position { return x.EndPos }
func (*IndexExpr) NodeType() NodeType     { return INDEX_EXPR }
func (*IndexExpr) isExpr()                {}

// CallExpr is a function call.
// Example: "log2(k)", "BigTemplate(n, k, 2 * n + LOGK + 1)"
type CallExpr struct {
	Pos    Position
	EndPos Position
	Callee string
	Args   []Expr
}

func (c *CallExpr) NodePos() Position    { return c.Pos }
func (c *CallExpr) NodeEndPos() Position { return c.EndPos }
func (*CallExpr) NodeType() NodeType     { return CALL_EXPR }
func (*CallExpr) isExpr()                {}

// ComponentAccessExpr reads a signal from a component instance.
// Example: "left.a", "right[0].b"
type ComponentAccessExpr struct {
	Pos    Position
	EndPos Position
	Target Expr
	Field  string
}

func (c *ComponentAccessExpr) NodePos() Position    { return c.Pos }
func (c *ComponentAccessExpr) NodeEndPos() Position { return c.EndPos }
func (*ComponentAccessExpr) NodeType() NodeType     { return COMPONENT_ACCESS_EXPR }
func (*ComponentAccessExpr) isExpr()                {}
