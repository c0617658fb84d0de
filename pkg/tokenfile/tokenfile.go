// Package tokenfile decodes token-stream documents: the YAML or JSON form in
// which an external tokenizer hands roundscript tokens to the parser.
//
//	source: |
//	  a = 1
//	tokens:
//	  - {kind: IDENT, text: a, line: 0}
//	  - {kind: "=", line: 0}
//	  - {kind: INT, value: 1, line: 0}
//	  - {kind: NEWLINE, line: 0}
package tokenfile

import (
	"fmt"
	"os"
	"strconv"

	"github.com/lemonberrylabs/roundscript/pkg/token"
	"gopkg.in/yaml.v3"
)

// MaxDocumentSize is the maximum token document size in bytes (4 MB).
const MaxDocumentSize = 4 * 1024 * 1024

// File is a decoded token-stream document.
type File struct {
	// Source is the original program text, if the document carried it.
	Source []byte

	// Tokens always ends with an EOF token.
	Tokens []token.Token
}

// DecodeError represents an error in a token document.
// Index is the position of the offending token, or -1 for document-level errors.
type DecodeError struct {
	Index   int
	Message string
}

func (e *DecodeError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("token %d: %s", e.Index, e.Message)
	}
	return fmt.Sprintf("token document: %s", e.Message)
}

type document struct {
	Source string  `yaml:"source"`
	Tokens []entry `yaml:"tokens"`
}

type entry struct {
	Kind  string `yaml:"kind"`
	Text  string `yaml:"text"`
	Value string `yaml:"value"`
	Line  int    `yaml:"line"`
}

// Decode parses a YAML or JSON token document.
func Decode(data []byte) (*File, error) {
	if len(data) > MaxDocumentSize {
		return nil, &DecodeError{Index: -1, Message: fmt.Sprintf("size %d exceeds maximum %d bytes", len(data), MaxDocumentSize)}
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &DecodeError{Index: -1, Message: fmt.Sprintf("invalid YAML/JSON: %v", err)}
	}
	if len(doc.Tokens) == 0 {
		return nil, &DecodeError{Index: -1, Message: "no tokens"}
	}

	toks := make([]token.Token, 0, len(doc.Tokens)+1)
	for i, e := range doc.Tokens {
		tok, err := e.token()
		if err != nil {
			return nil, &DecodeError{Index: i, Message: err.Error()}
		}
		toks = append(toks, tok)
	}

	if last := toks[len(toks)-1]; last.Kind != token.EOF {
		toks = append(toks, token.Token{Kind: token.EOF, Line: last.Line})
	}

	return &File{Source: []byte(doc.Source), Tokens: toks}, nil
}

// ReadFile reads and decodes the token document at path.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading token document: %w", err)
	}
	f, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func (e entry) token() (token.Token, error) {
	kind, ok := token.Lookup(e.Kind)
	if !ok {
		return token.Token{}, fmt.Errorf("unknown kind %q", e.Kind)
	}
	if e.Line < 0 {
		return token.Token{}, fmt.Errorf("negative line %d", e.Line)
	}

	tok := token.Token{Kind: kind, Line: e.Line}
	switch kind {
	case token.Ident:
		if e.Text == "" {
			return token.Token{}, fmt.Errorf("IDENT requires text")
		}
		tok.Text = e.Text
	case token.Int:
		n, err := strconv.ParseInt(e.Value, 10, 64)
		if err != nil {
			return token.Token{}, fmt.Errorf("INT requires an integer value, got %q", e.Value)
		}
		tok.Int = n
	case token.Float:
		x, err := strconv.ParseFloat(e.Value, 64)
		if err != nil {
			return token.Token{}, fmt.Errorf("FLOAT requires a numeric value, got %q", e.Value)
		}
		tok.Float = x
	}
	return tok, nil
}
