package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lemonberrylabs/roundscript/pkg/token"
)

// ErrorKind classifies a parse failure.
type ErrorKind int

const (
	// MissingToken: a structurally required token is absent at the cursor.
	MissingToken ErrorKind = iota
	// MalformedExpression: no atomic factor matches the current token.
	MalformedExpression
	// InvalidAccessor: neither operand of an accessor is an identifier.
	InvalidAccessor
	// InvalidStatement: the current token starts no statement form.
	InvalidStatement
	// DuplicateBlock: a second begin or expect block under WithStrictBlocks.
	DuplicateBlock
)

func (k ErrorKind) String() string {
	switch k {
	case MissingToken:
		return "MissingToken"
	case MalformedExpression:
		return "MalformedExpression"
	case InvalidAccessor:
		return "InvalidAccessor"
	case InvalidStatement:
		return "InvalidStatement"
	case DuplicateBlock:
		return "DuplicateBlock"
	default:
		return "Unknown"
	}
}

// ParseError represents an error encountered while parsing a token stream.
// Line is 0-based like token lines; messages show it 1-based.
type ParseError struct {
	Kind     ErrorKind
	Line     int
	Expected token.Kind  // MissingToken only
	Found    token.Token // MissingToken and MalformedExpression
	Message  string      // free-form kinds
	Context  string      // source text of the offending line, when known
}

func (e *ParseError) Error() string {
	if e.Kind == MissingToken {
		return fmt.Sprintf("expected %s, found %s at line %d", e.Expected, e.Found, e.Line+1)
	}
	return fmt.Sprintf("%s at line %d", e.Message, e.Line+1)
}

// Diagnostic renders the error followed by the quoted source line, if known.
func (e *ParseError) Diagnostic() string {
	if e.Context == "" {
		return e.Error()
	}
	return fmt.Sprintf("%s\n  %d | %s", e.Error(), e.Line+1, e.Context)
}

// IsKind reports whether err is a *ParseError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Kind == kind
}

// reporter builds ParseErrors and attaches source context.
type reporter struct {
	lines []string
}

func newReporter(source []byte) reporter {
	if len(source) == 0 {
		return reporter{}
	}
	return reporter{lines: strings.Split(string(source), "\n")}
}

func (r reporter) context(line int) string {
	if line < 0 || line >= len(r.lines) {
		return ""
	}
	return strings.TrimRight(r.lines[line], " \t\r")
}

func (r reporter) missing(want token.Kind, found token.Token) *ParseError {
	return &ParseError{
		Kind:     MissingToken,
		Line:     found.Line,
		Expected: want,
		Found:    found,
		Context:  r.context(found.Line),
	}
}

func (r reporter) custom(kind ErrorKind, line int, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Kind:    kind,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
		Context: r.context(line),
	}
}
