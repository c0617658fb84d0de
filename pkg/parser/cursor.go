package parser

import "github.com/lemonberrylabs/roundscript/pkg/token"

// cursor is a positional view over the token stream with lookahead.
// Reading past the end yields a synthesized EOF on the last known line.
type cursor struct {
	tokens []token.Token
	pos    int
	rep    reporter
}

// eof returns the synthesized end marker.
func (c *cursor) eof() token.Token {
	line := 0
	if n := len(c.tokens); n > 0 {
		line = c.tokens[n-1].Line
	}
	return token.Token{Kind: token.EOF, Line: line}
}

// current returns the current token without consuming it.
func (c *cursor) current() token.Token {
	return c.peek(0)
}

// peek returns the token k positions ahead of the current one.
func (c *cursor) peek(k int) token.Token {
	if c.pos+k >= len(c.tokens) {
		return c.eof()
	}
	return c.tokens[c.pos+k]
}

// advance consumes the current token and returns it.
func (c *cursor) advance() token.Token {
	tok := c.current()
	if c.pos < len(c.tokens) {
		c.pos++
	}
	return tok
}

// accept consumes the current token if it has the given kind.
func (c *cursor) accept(k token.Kind) bool {
	if c.current().Is(k) {
		c.advance()
		return true
	}
	return false
}

// expect consumes a token of the given kind or returns a MissingToken error.
func (c *cursor) expect(k token.Kind) (token.Token, error) {
	tok := c.current()
	if !tok.Is(k) {
		return tok, c.rep.missing(k, tok)
	}
	c.advance()
	return tok, nil
}
