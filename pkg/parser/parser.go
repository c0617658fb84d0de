// Package parser turns a roundscript token stream into an ast.Program.
//
// The parser is a recursive descent parser with one token of lookahead. It
// stops at the first error and returns it as a *ParseError; no partial
// program is ever returned.
package parser

import (
	"github.com/lemonberrylabs/roundscript/pkg/ast"
	"github.com/lemonberrylabs/roundscript/pkg/token"
)

// Parser parses one token stream. It is not safe for concurrent use and
// parses its tokens once.
type Parser struct {
	cursor
	strict bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithSource attaches the source text the tokens came from, so errors can
// quote the offending line.
func WithSource(source []byte) Option {
	return func(p *Parser) {
		p.rep = newReporter(source)
	}
}

// WithStrictBlocks rejects a second begin or expect block instead of letting
// the later one replace the earlier.
func WithStrictBlocks() Option {
	return func(p *Parser) {
		p.strict = true
	}
}

// New creates a parser over tokens.
func New(tokens []token.Token, opts ...Option) *Parser {
	p := &Parser{cursor: cursor{tokens: tokens}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses a complete program from tokens.
func Parse(tokens []token.Token, opts ...Option) (*ast.Program, error) {
	return New(tokens, opts...).Parse()
}

// MustParse is like Parse but panics with the diagnostic if parsing fails.
func MustParse(tokens []token.Token, opts ...Option) *ast.Program {
	prog, err := Parse(tokens, opts...)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			panic("parser: " + pe.Diagnostic())
		}
		panic("parser: " + err.Error())
	}
	return prog
}

// ParseExpression parses a single expression, optionally followed by a line
// break, that must end the token stream.
func ParseExpression(tokens []token.Token, opts ...Option) (ast.Expr, error) {
	p := New(tokens, opts...)
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	p.accept(token.Newline)
	if _, err := p.expect(token.EOF); err != nil {
		return nil, err
	}
	return expr, nil
}

// Parse runs the program loop: one statement, its line break, then route
// the statement into the begin slot, the expect slot or the body. The loop
// ends when EOF follows a statement.
func (p *Parser) Parse() (*ast.Program, error) {
	prog := &ast.Program{}

	for {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Newline); err != nil {
			return nil, err
		}

		switch stmt.Kind {
		case ast.StmtBegin:
			if p.strict && prog.Begin != nil {
				return nil, p.rep.custom(DuplicateBlock, stmt.Line,
					"duplicate begin block (first begin at line %d)", prog.Begin.Line+1)
			}
			prog.Begin = stmt
		case ast.StmtExpect:
			if p.strict && prog.Expect != nil {
				return nil, p.rep.custom(DuplicateBlock, stmt.Line,
					"duplicate expect block (first expect at line %d)", prog.Expect.Line+1)
			}
			prog.Expect = stmt
		default:
			prog.Body = append(prog.Body, stmt)
		}

		if p.accept(token.EOF) {
			return prog, nil
		}
	}
}
