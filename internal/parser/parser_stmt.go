package parser

import "sigtrace/internal/ast"

func (p *Parser) parseBlock() *ast.BlockStmt {
	start := p.consume(LBRACE, "expected '{'")
	b := &ast.BlockStmt{Pos: p.posOf(start)}
	for !p.check(RBRACE) && !p.check(EOF) {
		b.Items = append(b.Items, p.parseStmt())
	}
	end := p.consume(RBRACE, "expected '}'")
	b.EndPos = p.endPos(end)
	return b
}

func (p *Parser) parseStmt() ast.Stmt {
	switch {
	case p.check(SIGNAL), p.check(VAR), p.check(COMPONENT):
		return p.parseDeclStmt()
	case p.check(IF):
		return p.parseIfStmt()
	case p.check(WHILE):
		return p.parseWhileStmt()
	case p.check(FOR):
		return p.parseForStmt()
	case p.check(RETURN):
		return p.parseReturnStmt()
	case p.check(ASSERT):
		return p.parseAssertStmt()
	case p.check(LOG):
		return p.parseLogStmt()
	case p.check(LBRACE):
		return p.parseBlock()
	default:
		return p.parseSimpleStmt()
	}
}

// parseDeclStmt parses `signal input x;`, `signal output y[n];`,
// `var z = expr;`, and `component c = Template(...)`. A trailing
// initializer desugars to a Declaration followed by a Substitution, so the
// initial value is recorded as a definition site like any other assignment.
func (p *Parser) parseDeclStmt() ast.Stmt {
	start := p.peek()
	kind := ast.KindVariable

	switch {
	case p.check(SIGNAL):
		p.advance()
		switch {
		case p.match(INPUT):
			kind = ast.KindSignalInput
		case p.match(OUTPUT):
			kind = ast.KindSignalOutput
		default:
			kind = ast.KindSignalIntermediate
		}
	case p.check(COMPONENT):
		p.advance()
		kind = ast.KindComponent
	case p.check(VAR):
		p.advance()
		kind = ast.KindVariable
	}

	name := p.consumeIdent("expected declared name")

	var dims []ast.Expr
	for p.match(LBRACKET) {
		dims = append(dims, p.parseExpr())
		p.consume(RBRACKET, "expected ']'")
	}

	decl := &ast.DeclStmt{
		Pos:        p.posOf(start),
		EndPos:     name.EndPos,
		Name:       name,
		Kind:       kind,
		Dimensions: dims,
	}

	if p.match(ASSIGN) {
		value := p.parseExpr()
		end := p.consume(SEMI, "expected ';'")
		sub := &ast.SubstitutionStmt{
			Pos:    decl.Pos,
			EndPos: p.endPos(end),
			Target: &ast.Ident{Pos: name.Pos, EndPos: name.EndPos, Name: name.Name},
			Op:     ast.AssignPlain,
			Value:  value,
		}
		block := &ast.BlockStmt{Pos: decl.Pos, EndPos: sub.EndPos, Items: []ast.Stmt{decl, sub}}
		return block
	}

	end := p.consume(SEMI, "expected ';'")
	decl.EndPos = p.endPos(end)
	return decl
}

// parseSimpleStmt covers substitutions (`=`, `+=`, `<--`) and constraint
// statements (`===`), disambiguated by the operator that follows the
// leading expression.
func (p *Parser) parseSimpleStmt() ast.Stmt {
	start := p.here()
	lhs := p.parseExpr()

	switch {
	case p.match(ASSIGN):
		value := p.parseExpr()
		end := p.consume(SEMI, "expected ';'")
		return &ast.SubstitutionStmt{Pos: start, EndPos: p.endPos(end), Target: lhs, Op: ast.AssignPlain, Value: value}
	case p.match(PLUS_ASSIGN):
		value := p.parseExpr()
		end := p.consume(SEMI, "expected ';'")
		sum := &ast.BinaryExpr{Pos: lhs.NodePos(), EndPos: value.NodeEndPos(), Op: "+", Left: lhs, Right: value}
		return &ast.SubstitutionStmt{Pos: start, EndPos: p.endPos(end), Target: lhs, Op: ast.AssignPlain, Value: sum}
	case p.match(ASSIGN_SIG):
		value := p.parseExpr()
		end := p.consume(SEMI, "expected ';'")
		return &ast.SubstitutionStmt{Pos: start, EndPos: p.endPos(end), Target: lhs, Op: ast.AssignSignal, Value: value}
	case p.match(ASSIGN_CONST):
		value := p.parseExpr()
		end := p.consume(SEMI, "expected ';'")
		// `s <== e` is sugar for a witness assignment plus the equivalent
		// constraint: lower it into both so the constraint analysis sees
		// the edge the DSL's own semantics imply, the same Block-wrapping
		// pattern used above for declaration-with-initializer.
		endPos := p.endPos(end)
		sub := &ast.SubstitutionStmt{Pos: start, EndPos: endPos, Target: lhs, Op: ast.AssignConstr, Value: value}
		constr := &ast.ConstraintStmt{Pos: start, EndPos: endPos, Left: lhs, Right: value}
		return &ast.BlockStmt{Pos: start, EndPos: endPos, Items: []ast.Stmt{sub, constr}}
	case p.match(CONSTRAINT):
		rhs := p.parseExpr()
		end := p.consume(SEMI, "expected ';'")
		return &ast.ConstraintStmt{Pos: start, EndPos: p.endPos(end), Left: lhs, Right: rhs}
	case p.match(INC):
		end := p.consume(SEMI, "expected ';'")
		one := &ast.LiteralExpr{Pos: lhs.NodePos(), EndPos: lhs.NodeEndPos(), Value: "1"}
		sum := &ast.BinaryExpr{Pos: lhs.NodePos(), EndPos: lhs.NodeEndPos(), Op: "+", Left: lhs, Right: one}
		return &ast.SubstitutionStmt{Pos: start, EndPos: p.endPos(end), Target: lhs, Op: ast.AssignPlain, Value: sum}
	default:
		end := p.consume(SEMI, "expected ';' after expression statement")
		// A bare expression statement; modeled as a substitution whose
		// target and value are both the expression, so its operands still
		// count as reads. It adds no constraint edge.
		return &ast.SubstitutionStmt{Pos: start, EndPos: p.endPos(end), Target: lhs, Op: ast.AssignPlain, Value: lhs}
	}
}

func (p *Parser) parseIfStmt() ast.Stmt {
	start := p.advance() // 'if'
	p.consume(LPAREN, "expected '(' after if")
	cond := p.parseExpr()
	p.consume(RPAREN, "expected ')' after condition")
	then := p.parseBlock()

	stmt := &ast.IfStmt{Pos: p.posOf(start), EndPos: then.EndPos, Cond: cond, Then: then}

	if p.match(ELSE) {
		if p.check(IF) {
			elseIf := p.parseIfStmt()
			stmt.Else = elseIf
			stmt.EndPos = elseIf.NodeEndPos()
		} else {
			elseBlock := p.parseBlock()
			stmt.Else = elseBlock
			stmt.EndPos = elseBlock.EndPos
		}
	}
	return stmt
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	start := p.advance() // 'while'
	p.consume(LPAREN, "expected '(' after while")
	cond := p.parseExpr()
	p.consume(RPAREN, "expected ')' after condition")
	body := p.parseBlock()
	return &ast.WhileStmt{Pos: p.posOf(start), EndPos: body.EndPos, Cond: cond, Body: body}
}

// parseForStmt desugars `for (init; cond; post) body` into
// `{ init; while (cond) { body; post; } }`, so the IR builder only ever
// has to lower while-loops, the way the CFG/SSA substrate expects.
func (p *Parser) parseForStmt() ast.Stmt {
	start := p.advance() // 'for'
	p.consume(LPAREN, "expected '(' after for")

	var init ast.Stmt
	if !p.check(SEMI) {
		init = p.parseForClauseStmt()
	}
	p.consume(SEMI, "expected ';' after for-init")

	var cond ast.Expr
	if !p.check(SEMI) {
		cond = p.parseExpr()
	} else {
		cond = &ast.LiteralExpr{Pos: p.here(), EndPos: p.here(), Value: "1"}
	}
	p.consume(SEMI, "expected ';' after for-condition")

	var post ast.Stmt
	if !p.check(RPAREN) {
		post = p.parseForClauseStmt()
	}
	p.consume(RPAREN, "expected ')' after for-clauses")

	body := p.parseBlock()
	if post != nil {
		body.Items = append(body.Items, post)
		body.EndPos = post.NodeEndPos()
	}

	loop := &ast.WhileStmt{Pos: p.posOf(start), EndPos: body.EndPos, Cond: cond, Body: body}

	if init == nil {
		return loop
	}
	return &ast.BlockStmt{Pos: p.posOf(start), EndPos: loop.EndPos, Items: []ast.Stmt{init, loop}}
}

// parseForClauseStmt parses the init/post clauses of a for-loop, which
// share the substitution grammar but have no trailing semicolon consumed
// by the caller (the enclosing for-header owns that).
func (p *Parser) parseForClauseStmt() ast.Stmt {
	start := p.here()

	if p.check(VAR) {
		p.advance()
		name := p.consumeIdent("expected loop variable name")
		decl := &ast.DeclStmt{Pos: start, EndPos: name.EndPos, Name: name, Kind: ast.KindVariable}
		p.consume(ASSIGN, "expected '=' in for-loop initializer")
		value := p.parseExpr()
		sub := &ast.SubstitutionStmt{
			Pos:    start,
			EndPos: value.NodeEndPos(),
			Target: &ast.Ident{Pos: name.Pos, EndPos: name.EndPos, Name: name.Name},
			Op:     ast.AssignPlain,
			Value:  value,
		}
		return &ast.BlockStmt{Pos: start, EndPos: sub.EndPos, Items: []ast.Stmt{decl, sub}}
	}

	lhs := p.parseExpr()
	switch {
	case p.match(ASSIGN):
		value := p.parseExpr()
		return &ast.SubstitutionStmt{Pos: start, EndPos: value.NodeEndPos(), Target: lhs, Op: ast.AssignPlain, Value: value}
	case p.match(INC):
		one := &ast.LiteralExpr{Pos: lhs.NodePos(), EndPos: lhs.NodeEndPos(), Value: "1"}
		sum := &ast.BinaryExpr{Pos: lhs.NodePos(), EndPos: lhs.NodeEndPos(), Op: "+", Left: lhs, Right: one}
		return &ast.SubstitutionStmt{Pos: start, EndPos: lhs.NodeEndPos(), Target: lhs, Op: ast.AssignPlain, Value: sum}
	case p.match(PLUS_ASSIGN):
		value := p.parseExpr()
		sum := &ast.BinaryExpr{Pos: lhs.NodePos(), EndPos: value.NodeEndPos(), Op: "+", Left: lhs, Right: value}
		return &ast.SubstitutionStmt{Pos: start, EndPos: value.NodeEndPos(), Target: lhs, Op: ast.AssignPlain, Value: sum}
	default:
		return &ast.SubstitutionStmt{Pos: start, EndPos: lhs.NodeEndPos(), Target: lhs, Op: ast.AssignPlain, Value: lhs}
	}
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	start := p.advance() // 'return'
	var value ast.Expr
	if !p.check(SEMI) {
		value = p.parseExpr()
	}
	end := p.consume(SEMI, "expected ';' after return")
	return &ast.ReturnStmt{Pos: p.posOf(start), EndPos: p.endPos(end), Value: value}
}

func (p *Parser) parseAssertStmt() ast.Stmt {
	start := p.advance() // 'assert'
	p.consume(LPAREN, "expected '(' after assert")
	cond := p.parseExpr()
	p.consume(RPAREN, "expected ')' after assert condition")
	end := p.consume(SEMI, "expected ';'")
	return &ast.AssertStmt{Pos: p.posOf(start), EndPos: p.endPos(end), Cond: cond}
}

func (p *Parser) parseLogStmt() ast.Stmt {
	start := p.advance() // 'log'
	p.consume(LPAREN, "expected '(' after log")
	var args []ast.Expr
	if !p.check(RPAREN) {
		for {
			args = append(args, p.parseExpr())
			if !p.match(COMMA) {
				break
			}
		}
	}
	p.consume(RPAREN, "expected ')' after log arguments")
	end := p.consume(SEMI, "expected ';'")
	return &ast.LogStmt{Pos: p.posOf(start), EndPos: p.endPos(end), Args: args}
}
