package ast

import (
	"github.com/lemonberrylabs/roundscript/pkg/types"
)

// Expr is the interface for all expression nodes.
// Non-leaf nodes own their operands; trees never share sub-trees.
type Expr interface {
	exprNode()
	String() string
}

// Literal represents an integer, float or boolean literal.
type Literal struct {
	Value types.Value
}

// Ident represents a variable reference.
type Ident struct {
	Name string
}

// Prev represents the value Name held in the previous execution round.
// The evaluator resolves it; the parser only records the name.
type Prev struct {
	Name string
}

// Empty is the expression of a print statement with no arguments.
type Empty struct{}

// BinaryOp identifies a binary operator.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNeq
	OpGt
	OpGte
	OpLt
	OpLte
	OpAnd
	OpOr
	OpExponent
	OpAccessor
)

var binaryOpNames = [...]string{
	OpAdd:      "ADD",
	OpSub:      "SUB",
	OpMul:      "MUL",
	OpDiv:      "DIV",
	OpMod:      "MOD",
	OpEq:       "EQU",
	OpNeq:      "NEQU",
	OpGt:       "GTH",
	OpGte:      "GTHE",
	OpLt:       "LTH",
	OpLte:      "LTHE",
	OpAnd:      "AND",
	OpOr:       "OR",
	OpExponent: "EXPONENT",
	OpAccessor: "ACCESSOR",
}

func (op BinaryOp) String() string {
	if op >= 0 && int(op) < len(binaryOpNames) {
		return binaryOpNames[op]
	}
	return "UNKNOWN"
}

// BinaryExpr represents a binary operation (e.g., a + b, x >= y, a.b).
type BinaryExpr struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

// UnaryOp identifies a prefix operator.
type UnaryOp int

const (
	OpNot UnaryOp = iota
	OpFactorial
	OpNeg
	OpAbs
)

var unaryOpNames = [...]string{
	OpNot:       "NOT",
	OpFactorial: "FACTORIAL",
	OpNeg:       "UMIN",
	OpAbs:       "ABS",
}

func (op UnaryOp) String() string {
	if op >= 0 && int(op) < len(unaryOpNames) {
		return unaryOpNames[op]
	}
	return "UNKNOWN"
}

// UnaryExpr represents a prefix operation (e.g., -x, not x, |x).
type UnaryExpr struct {
	Op      UnaryOp
	Operand Expr
}

func (*Literal) exprNode()    {}
func (*Ident) exprNode()      {}
func (*Prev) exprNode()       {}
func (*Empty) exprNode()      {}
func (*BinaryExpr) exprNode() {}
func (*UnaryExpr) exprNode()  {}

// NewInt returns an integer literal.
func NewInt(v int64) *Literal { return &Literal{Value: types.NewInteger(v)} }

// NewFloat returns a float literal.
func NewFloat(v float64) *Literal { return &Literal{Value: types.NewFloat(v)} }

// NewBool returns a boolean literal.
func NewBool(v bool) *Literal { return &Literal{Value: types.NewBool(v)} }

// IsIdent reports whether e is a plain identifier reference.
func IsIdent(e Expr) bool {
	_, ok := e.(*Ident)
	return ok
}
