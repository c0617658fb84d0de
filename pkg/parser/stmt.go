package parser

import (
	"github.com/lemonberrylabs/roundscript/pkg/ast"
	"github.com/lemonberrylabs/roundscript/pkg/token"
)

// parseStatement dispatches on the current token. An identifier starts an
// assignment only when the next token is '='.
func (p *Parser) parseStatement() (*ast.Statement, error) {
	tok := p.current()

	switch tok.Kind {
	case token.Ident:
		if p.peek(1).Is(token.Assign) {
			return p.parseAssign()
		}
	case token.Begin:
		return p.parseBegin()
	case token.Expect:
		return p.parseExpect()
	case token.Reveal:
		return p.parseReveal()
	case token.Print:
		return p.parsePrint()
	case token.If:
		return p.parseIf()
	}

	return nil, p.rep.custom(InvalidStatement, tok.Line, "expected statement, found %s", tok)
}

// parseAssign parses: IDENT = expr
func (p *Parser) parseAssign() (*ast.Statement, error) {
	name, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Assign); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Statement{Kind: ast.StmtAssign, Line: name.Line, Name: name.Text, Expr: value}, nil
}

// parseBegin parses: begin block
func (p *Parser) parseBegin() (*ast.Statement, error) {
	kw := p.advance()
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Statement{Kind: ast.StmtBegin, Line: kw.Line, Block: block}, nil
}

// parseExpect parses: expect expr block
func (p *Parser) parseExpect() (*ast.Statement, error) {
	kw := p.advance()
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Statement{Kind: ast.StmtExpect, Line: kw.Line, Expr: cond, Block: block}, nil
}

// parseReveal parses: reveal IDENT
func (p *Parser) parseReveal() (*ast.Statement, error) {
	kw := p.advance()
	name, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	return &ast.Statement{Kind: ast.StmtReveal, Line: kw.Line, Name: name.Text}, nil
}

// parsePrint parses: print ( [expr {, expr}] )
// The first argument is the statement's Expr; the rest go to AltExprs.
func (p *Parser) parsePrint() (*ast.Statement, error) {
	kw := p.advance()
	stmt := &ast.Statement{Kind: ast.StmtPrint, Line: kw.Line}

	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	if p.accept(token.RParen) {
		stmt.Expr = &ast.Empty{}
		return stmt, nil
	}

	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	stmt.Expr = first

	for p.accept(token.Comma) {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.AltExprs = append(stmt.AltExprs, arg)
	}

	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseIf parses: if expr block {elif expr block} [else block]
// The else block is appended to AltBlocks without a matching AltExpr.
func (p *Parser) parseIf() (*ast.Statement, error) {
	kw := p.advance()
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.Statement{Kind: ast.StmtIf, Line: kw.Line, Expr: cond, Block: block}

	for p.accept(token.Elif) {
		cond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.AltExprs = append(stmt.AltExprs, cond)
		stmt.AltBlocks = append(stmt.AltBlocks, block)
	}

	if p.accept(token.Else) {
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.AltBlocks = append(stmt.AltBlocks, block)
	}

	return stmt, nil
}

// parseBlock parses: { NEWLINE (statement NEWLINE)+ }
func (p *Parser) parseBlock() (ast.Block, error) {
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Newline); err != nil {
		return nil, err
	}

	var block ast.Block
	for {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Newline); err != nil {
			return nil, err
		}
		block = append(block, stmt)
		if p.accept(token.RBrace) {
			return block, nil
		}
	}
}
