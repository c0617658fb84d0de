package ast

import (
	"fmt"
	"strings"
)

// String renders the literal's value.
func (n *Literal) String() string { return n.Value.String() }

// String renders the identifier's name.
func (n *Ident) String() string { return n.Name }

// String renders PREV(name).
func (n *Prev) String() string { return "PREV(" + n.Name + ")" }

// String renders NONE.
func (n *Empty) String() string { return "NONE" }

// String renders OP(left, right).
func (n *BinaryExpr) String() string {
	return fmt.Sprintf("%s(%s, %s)", n.Op, n.Left, n.Right)
}

// String renders OP(operand).
func (n *UnaryExpr) String() string {
	return fmt.Sprintf("%s(%s)", n.Op, n.Operand)
}

// String renders the statement and any nested blocks as an indented outline.
func (s *Statement) String() string {
	var b strings.Builder
	writeStatement(&b, s, 0)
	return strings.TrimSuffix(b.String(), "\n")
}

// String renders the whole program: begin first, then the body, then expect.
func (p *Program) String() string {
	var b strings.Builder
	if p.Begin != nil {
		writeStatement(&b, p.Begin, 0)
	}
	for _, s := range p.Body {
		writeStatement(&b, s, 0)
	}
	if p.Expect != nil {
		writeStatement(&b, p.Expect, 0)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func writeStatement(b *strings.Builder, s *Statement, depth int) {
	indent := strings.Repeat("  ", depth)
	switch s.Kind {
	case StmtAssign:
		fmt.Fprintf(b, "%sASSIGN %s = %s\n", indent, s.Name, s.Expr)
	case StmtReveal:
		fmt.Fprintf(b, "%sREVEAL %s\n", indent, s.Name)
	case StmtPrint:
		args := make([]string, 0, len(s.AltExprs)+1)
		if _, empty := s.Expr.(*Empty); !empty {
			args = append(args, s.Expr.String())
		}
		for _, e := range s.AltExprs {
			args = append(args, e.String())
		}
		fmt.Fprintf(b, "%sPRINT(%s)\n", indent, strings.Join(args, ", "))
	case StmtExpect, StmtIf:
		fmt.Fprintf(b, "%s%s %s\n", indent, s.Kind, s.Expr)
	default:
		fmt.Fprintf(b, "%s%s\n", indent, s.Kind)
	}

	if s.Kind.HasBlock() {
		writeBlock(b, s.Block, depth+1)
	}

	if s.Kind == StmtIf {
		for i, cond := range s.AltExprs {
			fmt.Fprintf(b, "%sELIF %s\n", indent, cond)
			writeBlock(b, s.AltBlocks[i], depth+1)
		}
		if s.HasElse() {
			fmt.Fprintf(b, "%sELSE\n", indent)
			writeBlock(b, s.Else(), depth+1)
		}
	}
}

func writeBlock(b *strings.Builder, block Block, depth int) {
	for _, s := range block {
		writeStatement(b, s, depth)
	}
}
