// Package ast defines the tree the roundscript parser produces.
// A Program is built once, top to bottom, and is read-only afterwards.
package ast

// StmtKind tags a statement.
type StmtKind int

const (
	StmtNone StmtKind = iota
	StmtPrint
	StmtReveal
	StmtAssign
	StmtIf
	StmtElse
	StmtBegin
	StmtExpect
)

func (k StmtKind) String() string {
	switch k {
	case StmtNone:
		return "NONE"
	case StmtPrint:
		return "PRINT"
	case StmtReveal:
		return "REVEAL"
	case StmtAssign:
		return "ASSIGN"
	case StmtIf:
		return "IF"
	case StmtElse:
		return "ELSE"
	case StmtBegin:
		return "BEGIN"
	case StmtExpect:
		return "EXPECT"
	default:
		return "UNKNOWN"
	}
}

// HasBlock reports whether statements of this kind carry a code block.
func (k StmtKind) HasBlock() bool {
	switch k {
	case StmtIf, StmtElse, StmtBegin, StmtExpect:
		return true
	}
	return false
}

// Block is a brace-delimited sequence of one or more statements.
type Block []*Statement

// Statement is a single roundscript statement.
type Statement struct {
	Kind StmtKind

	// Line is the 0-based source line of the statement's first token.
	Line int

	// Name is the assignment target or the revealed variable.
	Name string

	// Expr is the assigned value, the if/expect condition or the first print argument.
	Expr Expr

	// Block is the body of if, begin and expect statements.
	Block Block

	// AltExprs holds elif conditions (if) or the remaining arguments (print).
	AltExprs []Expr

	// AltBlocks holds one block per elif, then the else block if there is one.
	AltBlocks []Block
}

// HasElse reports whether an if statement ends with an else block.
func (s *Statement) HasElse() bool {
	return len(s.AltBlocks) > len(s.AltExprs)
}

// Else returns the trailing else block, or nil.
func (s *Statement) Else() Block {
	if !s.HasElse() {
		return nil
	}
	return s.AltBlocks[len(s.AltBlocks)-1]
}

// Program is the parser's output.
type Program struct {
	// Begin runs once before Body. Nil when the source has no begin block.
	Begin *Statement

	// Expect is the terminal assertion. Nil when the source has none.
	Expect *Statement

	// Body holds every other top-level statement in source order.
	Body []*Statement
}

// Len returns the number of top-level statements, counting begin and expect.
func (p *Program) Len() int {
	n := len(p.Body)
	if p.Begin != nil {
		n++
	}
	if p.Expect != nil {
		n++
	}
	return n
}
