// Package parser implements the circuit DSL's scanner and recursive-
// descent/Pratt parser. Spec.md treats the concrete grammar as an external
// collaborator producing an AST for the IR lowering to consume; this
// package exists so the analyzer is runnable end-to-end and so the
// end-to-end scenarios in spec.md §8 can be expressed as source-text tests,
// the way the original Rust implementation's own tests do.
//
// Grounded on the teacher's internal/parser package: a hand-rolled byte
// scanner (scanner.go) feeding a precedence-climbing expression parser
// (parser_pratt.go) and per-construct recursive-descent methods
// (parser_function.go, parser_struct.go).
package parser

import (
	"fmt"

	"sigtrace/internal/ast"
	"sigtrace/internal/preprocess"
)

// Parser consumes a token stream and produces a *ast.Circuit.
type Parser struct {
	fileID int
	tokens []Token
	pos    int
	errs   []ParseError
}

// ParseSource preprocesses and parses one source file. It returns the
// circuit AST and the list of parse errors found; per spec.md §7, a
// non-empty error list means the caller should not proceed to IR lowering
// for this file.
func ParseSource(source string, fileID int) (*ast.Circuit, []ParseError) {
	clean, err := preprocess.Preprocess(source, fileID)
	if err != nil {
		uc := err.(*preprocess.UnclosedCommentError)
		return nil, []ParseError{{
			FileID:  fileID,
			Start:   uc.Start,
			End:     uc.Start,
			Message: err.Error(),
		}}
	}

	scanner := NewScanner(fileID, clean)
	tokens, scanErrs := scanner.ScanAll()

	p := &Parser{fileID: fileID, tokens: tokens}
	for _, se := range scanErrs {
		p.errs = append(p.errs, ParseError{FileID: fileID, Start: se.Pos.Offset, End: se.Pos.Offset, Message: se.Message})
	}

	circuit := p.parseCircuit()
	return circuit, p.errs
}

func (p *Parser) parseCircuit() *ast.Circuit {
	c := &ast.Circuit{Pos: p.here()}
	for !p.check(EOF) {
		switch {
		case p.check(TEMPLATE):
			c.Templates = append(c.Templates, p.parseTemplate())
		case p.check(FUNCTION):
			c.Functions = append(c.Functions, p.parseFunction())
		default:
			p.errorf("expected 'template' or 'function' declaration")
			p.advance()
		}
	}
	c.EndPos = p.here()
	return c
}

func (p *Parser) parseTemplate() *ast.Template {
	start := p.advance() // 'template'
	name := p.consumeIdent("expected template name")
	params := p.parseParamList()
	body := p.parseBlock()
	return &ast.Template{
		Pos:    p.posOf(start),
		EndPos: body.EndPos,
		Name:   name,
		Params: params,
		Body:   body,
	}
}

func (p *Parser) parseFunction() *ast.Function {
	start := p.advance() // 'function'
	name := p.consumeIdent("expected function name")
	params := p.parseParamList()
	body := p.parseBlock()
	return &ast.Function{
		Pos:        p.posOf(start),
		EndPos:     body.EndPos,
		Name:       name,
		Params:     params,
		Body:       body,
		HasReturns: containsReturn(body),
	}
}

func containsReturn(b *ast.BlockStmt) bool {
	for _, item := range b.Items {
		switch s := item.(type) {
		case *ast.ReturnStmt:
			return true
		case *ast.IfStmt:
			if containsReturn(s.Then) {
				return true
			}
			if elseBlock, ok := s.Else.(*ast.BlockStmt); ok && containsReturn(elseBlock) {
				return true
			}
		case *ast.WhileStmt:
			if containsReturn(s.Body) {
				return true
			}
		}
	}
	return false
}

func (p *Parser) parseParamList() []*ast.Param {
	p.consume(LPAREN, "expected '(' after name")
	var params []*ast.Param
	if !p.check(RPAREN) {
		for {
			name := p.consumeIdent("expected parameter name")
			params = append(params, &ast.Param{Pos: name.Pos, EndPos: name.EndPos, Name: name})
			if !p.match(COMMA) {
				break
			}
		}
	}
	p.consume(RPAREN, "expected ')' after parameters")
	return params
}

// --- token-stream helpers ---

func (p *Parser) peek() Token  { return p.tokens[p.pos] }
func (p *Parser) previous() Token {
	if p.pos == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.pos-1]
}

func (p *Parser) advance() Token {
	t := p.peek()
	if t.Type != EOF {
		p.pos++
	}
	return t
}

func (p *Parser) check(t TokenType) bool { return p.peek().Type == t }

func (p *Parser) match(types ...TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(t TokenType, msg string) Token {
	if p.check(t) {
		return p.advance()
	}
	p.errorf("%s (got %q)", msg, p.peek().Lexeme)
	return p.peek()
}

func (p *Parser) consumeIdent(msg string) ast.Ident {
	tok := p.consume(IDENT, msg)
	return ast.Ident{Pos: tok.Pos, EndPos: p.endPos(tok), Name: tok.Lexeme}
}

func (p *Parser) errorf(format string, args ...any) {
	tok := p.peek()
	p.errs = append(p.errs, ParseError{
		FileID:  p.fileID,
		Start:   tok.Pos.Offset,
		End:     tok.EndOffs,
		Message: fmt.Sprintf(format, args...),
	})
}

func (p *Parser) here() ast.Position  { return p.peek().Pos }
func (p *Parser) posOf(t Token) ast.Position { return t.Pos }
func (p *Parser) endPos(t Token) ast.Position {
	pos := t.Pos
	pos.Offset = t.EndOffs
	return pos
}
