package tokenfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lemonberrylabs/roundscript/pkg/token"
)

func TestDecodeYAML(t *testing.T) {
	src := []byte(`
source: |
  speed = 2.5 * 4
tokens:
  - {kind: IDENT, text: speed, line: 0}
  - {kind: "=", line: 0}
  - {kind: FLOAT, value: 2.5, line: 0}
  - {kind: "*", line: 0}
  - {kind: int, value: 4, line: 0}
  - {kind: newline, line: 0}
  - {kind: EOF, line: 1}
`)

	f, err := Decode(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(f.Source) != "speed = 2.5 * 4\n" {
		t.Errorf("unexpected source %q", f.Source)
	}
	if len(f.Tokens) != 7 {
		t.Fatalf("expected 7 tokens, got %d", len(f.Tokens))
	}

	want := []token.Token{
		{Kind: token.Ident, Text: "speed"},
		{Kind: token.Assign},
		{Kind: token.Float, Float: 2.5},
		{Kind: token.Star},
		{Kind: token.Int, Int: 4},
		{Kind: token.Newline},
		{Kind: token.EOF, Line: 1},
	}
	for i, w := range want {
		if f.Tokens[i] != w {
			t.Errorf("token %d: got %+v, want %+v", i, f.Tokens[i], w)
		}
	}
}

func TestDecodeJSON(t *testing.T) {
	src := []byte(`{"tokens": [
		{"kind": "reveal", "line": 3},
		{"kind": "IDENT", "text": "x", "line": 3},
		{"kind": "NEWLINE", "line": 3}
	]}`)

	f, err := Decode(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Tokens) != 4 {
		t.Fatalf("expected EOF to be appended, got %d tokens", len(f.Tokens))
	}
	if last := f.Tokens[3]; last.Kind != token.EOF || last.Line != 3 {
		t.Errorf("expected EOF on line 3, got %s on line %d", last, last.Line)
	}
	if len(f.Source) != 0 {
		t.Errorf("expected no source, got %q", f.Source)
	}
}

func TestDecodeBooleanKinds(t *testing.T) {
	f, err := Decode([]byte("tokens:\n  - {kind: true}\n  - {kind: false}\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Tokens[0].Kind != token.True || f.Tokens[1].Kind != token.False {
		t.Errorf("got %s %s", f.Tokens[0], f.Tokens[1])
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		index int
		msg   string
	}{
		{"invalid yaml", "tokens: [", -1, "invalid YAML/JSON"},
		{"no tokens", "source: x\n", -1, "no tokens"},
		{"unknown kind", "tokens:\n  - {kind: NEWLINE}\n  - {kind: ARROW}\n", 1, `unknown kind "ARROW"`},
		{"ident without text", "tokens:\n  - {kind: IDENT}\n", 0, "IDENT requires text"},
		{"int without value", "tokens:\n  - {kind: INT}\n", 0, "INT requires an integer value"},
		{"int with float value", "tokens:\n  - {kind: INT, value: 1.5}\n", 0, "INT requires an integer value"},
		{"bad float", "tokens:\n  - {kind: FLOAT, value: fast}\n", 0, "FLOAT requires a numeric value"},
		{"negative line", "tokens:\n  - {kind: EOF, line: -2}\n", 0, "negative line"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.src))
			if err == nil {
				t.Fatal("expected error")
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("expected *DecodeError, got %T", err)
			}
			if de.Index != tt.index {
				t.Errorf("expected index %d, got %d", tt.index, de.Index)
			}
			if !strings.Contains(de.Error(), tt.msg) {
				t.Errorf("expected %q in %q", tt.msg, de.Error())
			}
		})
	}
}

func TestDecodeTooLarge(t *testing.T) {
	_, err := Decode(make([]byte, MaxDocumentSize+1))
	if err == nil || !strings.Contains(err.Error(), "exceeds maximum") {
		t.Fatalf("expected size error, got %v", err)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.yaml")
	if err := os.WriteFile(path, []byte("tokens:\n  - {kind: NEWLINE}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Tokens) != 2 {
		t.Errorf("expected 2 tokens, got %d", len(f.Tokens))
	}

	_, err = ReadFile(filepath.Join(dir, "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("tokens:\n  - {kind: WAT}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = ReadFile(bad)
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected wrapped *DecodeError, got %v", err)
	}
	if !strings.Contains(err.Error(), "bad.yaml") {
		t.Errorf("expected path in error, got %v", err)
	}
}
