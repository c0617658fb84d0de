// Package types defines the runtime values shared by the roundscript parser
// and evaluator: float, integer, boolean and string.
package types

import (
	"fmt"
	"math"
	"strconv"
)

// ValueType represents the type of a roundscript value.
type ValueType int

const (
	TypeFloat   ValueType = iota // float64
	TypeInteger                  // int64
	TypeBool                     // bool
	TypeString                   // string
)

// String returns the type name used in diagnostics.
func (t ValueType) String() string {
	switch t {
	case TypeFloat:
		return "float"
	case TypeInteger:
		return "integer"
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is a roundscript runtime value. It uses a tagged union approach.
type Value struct {
	typ       ValueType
	floatVal  float64
	intVal    int64
	boolVal   bool
	stringVal string
}

// NewFloat creates a float value.
func NewFloat(v float64) Value {
	return Value{typ: TypeFloat, floatVal: v}
}

// NewInteger creates an integer value.
func NewInteger(v int64) Value {
	return Value{typ: TypeInteger, intVal: v}
}

// NewBool creates a boolean value.
func NewBool(v bool) Value {
	return Value{typ: TypeBool, boolVal: v}
}

// NewString creates a string value.
func NewString(v string) Value {
	return Value{typ: TypeString, stringVal: v}
}

// Type returns the value's type.
func (v Value) Type() ValueType {
	return v.typ
}

// AsFloat returns the float value. Panics if not a float.
func (v Value) AsFloat() float64 {
	if v.typ != TypeFloat {
		panic(fmt.Sprintf("AsFloat called on %s value", v.typ))
	}
	return v.floatVal
}

// AsInteger returns the integer value. Panics if not an integer.
func (v Value) AsInteger() int64 {
	if v.typ != TypeInteger {
		panic(fmt.Sprintf("AsInteger called on %s value", v.typ))
	}
	return v.intVal
}

// AsBool returns the boolean value. Panics if not a bool.
func (v Value) AsBool() bool {
	if v.typ != TypeBool {
		panic(fmt.Sprintf("AsBool called on %s value", v.typ))
	}
	return v.boolVal
}

// AsString returns the string value. Panics if not a string.
func (v Value) AsString() string {
	if v.typ != TypeString {
		panic(fmt.Sprintf("AsString called on %s value", v.typ))
	}
	return v.stringVal
}

// Truthy returns the truthiness of a value.
// Numbers are truthy from 1 upwards, so 0.5 and -3 are both falsy.
func (v Value) Truthy() bool {
	switch v.typ {
	case TypeFloat:
		return v.floatVal >= 1
	case TypeInteger:
		return v.intVal >= 1
	case TypeBool:
		return v.boolVal
	case TypeString:
		return v.stringVal != ""
	default:
		return false
	}
}

// Negate returns the logical negation of the value's truthiness.
func (v Value) Negate() Value {
	return NewBool(!v.Truthy())
}

// Numeric converts a boolean to the integer 1 or 0 for arithmetic.
// Other values are returned unchanged.
func (v Value) Numeric() Value {
	if v.typ != TypeBool {
		return v
	}
	if v.boolVal {
		return NewInteger(1)
	}
	return NewInteger(0)
}

// Equal reports whether two values have the same type and payload.
func (v Value) Equal(other Value) bool {
	if v.typ != other.typ {
		return false
	}
	switch v.typ {
	case TypeFloat:
		return v.floatVal == other.floatVal
	case TypeInteger:
		return v.intVal == other.intVal
	case TypeBool:
		return v.boolVal == other.boolVal
	case TypeString:
		return v.stringVal == other.stringVal
	}
	return false
}

// String returns a human-readable representation of the value for debugging.
func (v Value) String() string {
	switch v.typ {
	case TypeFloat:
		if v.floatVal == math.Trunc(v.floatVal) && !math.IsInf(v.floatVal, 0) {
			return fmt.Sprintf("%.1f", v.floatVal)
		}
		return strconv.FormatFloat(v.floatVal, 'g', -1, 64)
	case TypeInteger:
		return strconv.FormatInt(v.intVal, 10)
	case TypeBool:
		if v.boolVal {
			return "true"
		}
		return "false"
	case TypeString:
		return strconv.Quote(v.stringVal)
	}
	return "<unknown>"
}
