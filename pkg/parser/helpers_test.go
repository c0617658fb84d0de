package parser

import (
	"strconv"
	"strings"
	"testing"

	"github.com/lemonberrylabs/roundscript/pkg/ast"
	"github.com/lemonberrylabs/roundscript/pkg/token"
)

// scan turns space-separated test source into tokens. Every token must be
// separated by whitespace; each non-blank line ends with a NEWLINE token.
func scan(t *testing.T, src string) []token.Token {
	t.Helper()

	lines := strings.Split(src, "\n")
	var toks []token.Token
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		for _, f := range fields {
			toks = append(toks, word(f, i))
		}
		toks = append(toks, token.Token{Kind: token.Newline, Line: i})
	}
	return append(toks, token.Token{Kind: token.EOF, Line: len(lines) - 1})
}

func word(f string, line int) token.Token {
	if n, err := strconv.ParseInt(f, 10, 64); err == nil {
		return token.Token{Kind: token.Int, Int: n, Line: line}
	}
	if x, err := strconv.ParseFloat(f, 64); err == nil {
		return token.Token{Kind: token.Float, Float: x, Line: line}
	}
	if k, ok := token.Lookup(f); ok {
		return token.Token{Kind: k, Line: line}
	}
	return token.Token{Kind: token.Ident, Text: f, Line: line}
}

func mustParse(t *testing.T, src string, opts ...Option) *ast.Program {
	t.Helper()
	prog, err := Parse(scan(t, src), opts...)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return prog
}

func parseErr(t *testing.T, src string, opts ...Option) *ParseError {
	t.Helper()
	_, err := Parse(scan(t, src), opts...)
	if err == nil {
		t.Fatalf("expected parse error for %q", src)
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	return pe
}
