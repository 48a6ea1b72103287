package ir

import "sigtrace/internal/ast"

// BuildTemplateCFG lowers a template's body into a CFG.
func BuildTemplateCFG(t *ast.Template) *CFG {
	c := &CFG{Name: t.Name.Name, Kind: ConstructTemplate, Params: paramNames(t.Params), ParamPos: paramPositions(t.Params), declarations: map[string]*Declaration{}}
	b := c.addBlock()
	populateBlock(c, b, t.Body)
	return c
}

// BuildFunctionCFG lowers a function's body into a CFG.
func BuildFunctionCFG(f *ast.Function) *CFG {
	c := &CFG{Name: f.Name.Name, Kind: ConstructFunction, Params: paramNames(f.Params), ParamPos: paramPositions(f.Params), HasReturns: f.HasReturns, declarations: map[string]*Declaration{}}
	b := c.addBlock()
	populateBlock(c, b, f.Body)
	return c
}

func paramNames(params []*ast.Param) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name.Name
	}
	return names
}

func paramPositions(params []*ast.Param) map[string]ast.Position {
	pos := make(map[string]ast.Position, len(params))
	for _, p := range params {
		pos[p.Name.Name] = p.Pos
	}
	return pos
}

// populateBlock appends body's items into block, recursing into nested
// BasicBlocks for If/While sub-bodies and flattening the synthetic
// declaration-with-initializer wrapper blocks the parser emits (those are
// not real lexical scopes, just a pairing of a Declaration with its first
// Substitution, so they belong in the same basic block as their
// surroundings).
func populateBlock(c *CFG, block *BasicBlock, body *ast.BlockStmt) {
	for _, item := range body.Items {
		appendStmt(c, block, item)
	}
}

func appendStmt(c *CFG, block *BasicBlock, item ast.Stmt) {
	switch s := item.(type) {
	case *ast.DeclStmt:
		recordDecl(c, s)
		block.Stmts = append(block.Stmts, s)
	case *ast.BlockStmt:
		for _, inner := range s.Items {
			appendStmt(c, block, inner)
		}
	case *ast.IfStmt:
		block.Stmts = append(block.Stmts, s)
		thenBlock := c.addBlock()
		link(block, thenBlock)
		populateBlock(c, thenBlock, s.Then)
		if s.Else != nil {
			elseBlock := c.addBlock()
			link(block, elseBlock)
			appendElse(c, elseBlock, s.Else)
		}
	case *ast.WhileStmt:
		block.Stmts = append(block.Stmts, s)
		bodyBlock := c.addBlock()
		link(block, bodyBlock)
		link(bodyBlock, bodyBlock)
		populateBlock(c, bodyBlock, s.Body)
	default:
		block.Stmts = append(block.Stmts, s)
	}
}

func appendElse(c *CFG, block *BasicBlock, elseStmt ast.Stmt) {
	switch e := elseStmt.(type) {
	case *ast.BlockStmt:
		populateBlock(c, block, e)
	case *ast.IfStmt:
		appendStmt(c, block, e)
	default:
		appendStmt(c, block, elseStmt)
	}
}

func recordDecl(c *CFG, s *ast.DeclStmt) {
	c.declarations[s.Name.Name] = &Declaration{
		Name:       s.Name.Name,
		Kind:       s.Kind,
		Dimensions: s.Dimensions,
		Pos:        s.Pos,
	}
}
