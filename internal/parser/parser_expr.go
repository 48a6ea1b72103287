package parser

import "sigtrace/internal/ast"

// precedence maps binary operators to a climbing level. Grounded on the
// teacher's parser_pratt.go precedence table, extended with the DSL's
// modulo operator at the same level as '*' and '/'.
var precedence = map[TokenType]int{
	OR:      1,
	AND:     2,
	EQ:      3,
	NEQ:     3,
	LT:      4,
	LE:      4,
	GT:      4,
	GE:      4,
	PLUS:    5,
	MINUS:   5,
	STAR:    6,
	SLASH:   6,
	PERCENT: 6,
}

var opText = map[TokenType]string{
	OR: "||", AND: "&&", EQ: "==", NEQ: "!=",
	LT: "<", LE: "<=", GT: ">", GE: ">=",
	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", PERCENT: "%",
}

func (p *Parser) parseExpr() ast.Expr {
	return p.parseBinary(0)
}

func (p *Parser) parseBinary(minPrec int) ast.Expr {
	left := p.parseUnary()
	for {
		prec, ok := precedence[p.peek().Type]
		if !ok || prec < minPrec {
			return left
		}
		opTok := p.advance()
		right := p.parseBinary(prec + 1)
		left = &ast.BinaryExpr{
			Pos:    left.NodePos(),
			EndPos: right.NodeEndPos(),
			Op:     opText[opTok.Type],
			Left:   left,
			Right:  right,
		}
	}
}

func (p *Parser) parseUnary() ast.Expr {
	switch {
	case p.check(MINUS):
		tok := p.advance()
		operand := p.parseUnary()
		return &ast.UnaryExpr{Pos: p.posOf(tok), EndPos: operand.NodeEndPos(), Op: "-", Value: operand}
	case p.check(NOT):
		tok := p.advance()
		operand := p.parseUnary()
		return &ast.UnaryExpr{Pos: p.posOf(tok), EndPos: operand.NodeEndPos(), Op: "!", Value: operand}
	default:
		return p.parsePostfix()
	}
}

// parsePostfix handles array indexing ("a[i]") and component field access
// ("a.b") chained onto a primary expression. A call is only legal directly
// on a bare identifier, matching the DSL's restriction that callees are
// named functions or templates, never arbitrary expressions.
func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	for {
		switch {
		case p.check(LBRACKET):
			p.advance()
			index := p.parseExpr()
			end := p.consume(RBRACKET, "expected ']'")
			expr = &ast.IndexExpr{Pos: expr.NodePos(), EndPos: p.endPos(end), Target: expr, Index: index}
		case p.check(DOT):
			p.advance()
			field := p.consumeIdent("expected field name after '.'")
			expr = &ast.ComponentAccessExpr{Pos: expr.NodePos(), EndPos: field.EndPos, Target: expr, Field: field.Name}
		case p.check(LPAREN):
			ident, ok := expr.(*ast.Ident)
			if !ok {
				return expr
			}
			p.advance()
			var args []ast.Expr
			if !p.check(RPAREN) {
				for {
					args = append(args, p.parseExpr())
					if !p.match(COMMA) {
						break
					}
				}
			}
			end := p.consume(RPAREN, "expected ')' after call arguments")
			expr = &ast.CallExpr{Pos: ident.Pos, EndPos: p.endPos(end), Callee: ident.Name, Args: args}
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	switch {
	case p.check(NUMBER):
		tok := p.advance()
		return &ast.LiteralExpr{Pos: p.posOf(tok), EndPos: p.endPos(tok), Value: tok.Lexeme}
	case p.check(IDENT):
		tok := p.advance()
		return &ast.Ident{Pos: p.posOf(tok), EndPos: p.endPos(tok), Name: tok.Lexeme}
	case p.check(LPAREN):
		p.advance()
		inner := p.parseExpr()
		p.consume(RPAREN, "expected ')' to close parenthesized expression")
		return inner
	default:
		tok := p.peek()
		p.errorf("expected expression")
		if tok.Type != EOF {
			p.advance()
		}
		return &ast.LiteralExpr{Pos: p.posOf(tok), EndPos: p.endPos(tok), Value: "0"}
	}
}
