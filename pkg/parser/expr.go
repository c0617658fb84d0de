package parser

import (
	"github.com/lemonberrylabs/roundscript/pkg/ast"
	"github.com/lemonberrylabs/roundscript/pkg/token"
)

// Binary operator tiers, lowest precedence first.
var (
	logicalOps = map[token.Kind]ast.BinaryOp{
		token.And: ast.OpAnd,
		token.Or:  ast.OpOr,
	}
	comparisonOps = map[token.Kind]ast.BinaryOp{
		token.Eq:  ast.OpEq,
		token.Neq: ast.OpNeq,
		token.Gt:  ast.OpGt,
		token.Gte: ast.OpGte,
		token.Lt:  ast.OpLt,
		token.Lte: ast.OpLte,
	}
	additiveOps = map[token.Kind]ast.BinaryOp{
		token.Plus:  ast.OpAdd,
		token.Minus: ast.OpSub,
	}
	multiplicativeOps = map[token.Kind]ast.BinaryOp{
		token.Star:  ast.OpMul,
		token.Slash: ast.OpDiv,
		token.Mod:   ast.OpMod,
	}
)

var prefixOps = map[token.Kind]ast.UnaryOp{
	token.Not:   ast.OpNot,
	token.Bang:  ast.OpFactorial,
	token.Minus: ast.OpNeg,
	token.Bar:   ast.OpAbs,
}

// parseExpression is the entry point: handles the lowest precedence operators.
// Precedence (low to high):
//
//	and, or
//	==, !=, >, >=, <, <=
//	+, -
//	*, /, mod
//	prefix not, !, -, |, prev
//	^
//	. (accessor, right side at the unary tier)
//	literals, identifiers, parentheses
//
// A prefix operator applies to the whole exponent expression after it,
// so -2^2 is -(2^2).
func (p *Parser) parseExpression() (ast.Expr, error) {
	return p.parseBinary(logicalOps, p.parseComparison)
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	return p.parseBinary(comparisonOps, p.parseAdditive)
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	return p.parseBinary(additiveOps, p.parseMultiplicative)
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	return p.parseBinary(multiplicativeOps, p.parseUnary)
}

// parseBinary parses a left-associative chain of operators from ops.
func (p *Parser) parseBinary(ops map[token.Kind]ast.BinaryOp, next func() (ast.Expr, error)) (ast.Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := ops[p.current().Kind]
		if !ok {
			return left, nil
		}
		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if op, ok := prefixOps[p.current().Kind]; ok {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: op, Operand: operand}, nil
	}
	return p.parseExponent()
}

func (p *Parser) parseExponent() (ast.Expr, error) {
	left, err := p.parseBase()
	if err != nil {
		return nil, err
	}

	for p.accept(token.Caret) {
		right, err := p.parseExponentOperand()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: ast.OpExponent, Left: left, Right: right}
	}
	return left, nil
}

// parseExponentOperand parses the right side of ^. It may carry prefix
// operators (2^-1) but stops before another ^ to keep ^ left-associative.
func (p *Parser) parseExponentOperand() (ast.Expr, error) {
	if op, ok := prefixOps[p.current().Kind]; ok {
		p.advance()
		operand, err := p.parseExponentOperand()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: op, Operand: operand}, nil
	}
	return p.parseBase()
}

// parseBase parses an exponent base: a prev lookup or an accessor chain.
func (p *Parser) parseBase() (ast.Expr, error) {
	if p.accept(token.Prev) {
		name, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		return &ast.Prev{Name: name.Text}, nil
	}
	return p.parseAccessor()
}

// parseAccessor parses an a.b.c chain. The right side of each dot is parsed
// at the unary tier, so chains nest to the right: a.b.c is a.(b.c). Every
// step needs at least one identifier operand.
func (p *Parser) parseAccessor() (ast.Expr, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for p.current().Is(token.Dot) {
		dot := p.advance()
		right, err := p.parseAccessorOperand()
		if err != nil {
			return nil, err
		}
		if !ast.IsIdent(left) && !ast.IsIdent(right) {
			return nil, p.rep.custom(InvalidAccessor, dot.Line,
				"one side of an accessor must be an identifier, got %s and %s", left, right)
		}
		left = &ast.BinaryExpr{Op: ast.OpAccessor, Left: left, Right: right}
	}
	return left, nil
}

// parseAccessorOperand parses the right side of a dot: prefix operators,
// a prev lookup, or another accessor chain. It never consumes ^, so a.b^2
// raises the whole accessor.
func (p *Parser) parseAccessorOperand() (ast.Expr, error) {
	if op, ok := prefixOps[p.current().Kind]; ok {
		p.advance()
		operand, err := p.parseAccessorOperand()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: op, Operand: operand}, nil
	}
	if p.current().Is(token.Prev) {
		return p.parseBase()
	}
	return p.parseAccessor()
}

func (p *Parser) parseFactor() (ast.Expr, error) {
	tok := p.advance()

	switch tok.Kind {
	case token.Ident:
		return &ast.Ident{Name: tok.Text}, nil
	case token.Int:
		return ast.NewInt(tok.Int), nil
	case token.Float:
		return ast.NewFloat(tok.Float), nil
	case token.True:
		return ast.NewBool(true), nil
	case token.False:
		return ast.NewBool(false), nil
	case token.LParen:
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		err := p.rep.custom(MalformedExpression, tok.Line, "unexpected token %s in expression", tok)
		err.Found = tok
		return nil, err
	}
}
