// Package token defines the tokens the roundscript parser consumes.
// Tokens are produced by an external tokenizer; this package only names them.
package token

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind represents the type of a lexical token.
type Kind int

const (
	// Literals
	Ident Kind = iota // identifier
	Int               // integer literal
	Float             // float literal
	True              // true
	False             // false

	// Arithmetic
	Plus  // +
	Minus // -
	Star  // *
	Slash // /
	Mod   // mod
	Caret // ^

	// Assignment and comparison
	Assign // =
	Eq     // ==
	Neq    // !=
	Gt     // >
	Gte    // >=
	Lt     // <
	Lte    // <=

	// Logical
	And // and
	Or  // or
	Not // not

	// Other prefix operators
	Bang // ! (factorial)
	Bar  // | (absolute value)
	Prev // prev

	// Accessor
	Dot // .

	// Punctuation
	LParen  // (
	RParen  // )
	LBrace  // {
	RBrace  // }
	Comma   // ,
	Newline // line break

	// Keywords
	Begin
	Expect
	Reveal
	Print
	If
	Elif
	Else

	// Special
	EOF // end of token stream
)

var kindNames = [...]string{
	Ident:   "IDENT",
	Int:     "INT",
	Float:   "FLOAT",
	True:    "TRUE",
	False:   "FALSE",
	Plus:    "PLUS",
	Minus:   "MINUS",
	Star:    "STAR",
	Slash:   "SLASH",
	Mod:     "MOD",
	Caret:   "CARET",
	Assign:  "ASSIGN",
	Eq:      "EQ",
	Neq:     "NEQ",
	Gt:      "GT",
	Gte:     "GTE",
	Lt:      "LT",
	Lte:     "LTE",
	And:     "AND",
	Or:      "OR",
	Not:     "NOT",
	Bang:    "BANG",
	Bar:     "BAR",
	Prev:    "PREV",
	Dot:     "DOT",
	LParen:  "LPAREN",
	RParen:  "RPAREN",
	LBrace:  "LBRACE",
	RBrace:  "RBRACE",
	Comma:   "COMMA",
	Newline: "NEWLINE",
	Begin:   "BEGIN",
	Expect:  "EXPECT",
	Reveal:  "REVEAL",
	Print:   "PRINT",
	If:      "IF",
	Elif:    "ELIF",
	Else:    "ELSE",
	EOF:     "EOF",
}

// symbols are the spellings a kind has in source text, where it has one.
var symbols = map[Kind]string{
	Plus:   "+",
	Minus:  "-",
	Star:   "*",
	Slash:  "/",
	Caret:  "^",
	Assign: "=",
	Eq:     "==",
	Neq:    "!=",
	Gt:     ">",
	Gte:    ">=",
	Lt:     "<",
	Lte:    "<=",
	Bang:   "!",
	Bar:    "|",
	Dot:    ".",
	LParen: "(",
	RParen: ")",
	LBrace: "{",
	RBrace: "}",
	Comma:  ",",
}

// String returns a debug-friendly representation of the token kind.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// Symbol returns the source spelling of the kind, or its name when it has none.
func (k Kind) Symbol() string {
	if s, ok := symbols[k]; ok {
		return s
	}
	return strings.ToLower(k.String())
}

// Lookup resolves a kind from its name ("IDENT", "newline") or its symbol ("+", ">=").
func Lookup(name string) (Kind, bool) {
	for k, s := range symbols {
		if s == name {
			return k, true
		}
	}
	upper := strings.ToUpper(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == upper {
			return Kind(k), true
		}
	}
	return 0, false
}

// Token represents a single lexical token.
type Token struct {
	Kind  Kind
	Text  string  // identifier name (for Ident)
	Int   int64   // parsed value (for Int)
	Float float64 // parsed value (for Float)
	Line  int     // 0-based source line
}

// Is reports whether the token has the given kind. Payloads are ignored.
func (t Token) Is(k Kind) bool {
	return t.Kind == k
}

// String renders the token with its payload, e.g. IDENT(x) or INT(3).
func (t Token) String() string {
	switch t.Kind {
	case Ident:
		return fmt.Sprintf("IDENT(%s)", t.Text)
	case Int:
		return fmt.Sprintf("INT(%d)", t.Int)
	case Float:
		return fmt.Sprintf("FLOAT(%s)", strconv.FormatFloat(t.Float, 'g', -1, 64))
	default:
		return t.Kind.String()
	}
}
