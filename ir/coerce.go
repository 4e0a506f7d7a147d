package ir

import (
	"math"
	"strconv"
)

// The As* accessors coerce a node to a primitive Go value. They are total:
// a node whose variant does not match the requested type yields a fixed
// zero-equivalent rather than an error. Cross-type rules: booleans and
// numbers interconvert via 1/0 and != 0, strings parse as numbers with a
// fallback of zero, and the string form of a container is the placeholder
// "Object".

// AsBool returns the node coerced to a bool. Numbers are true when nonzero,
// strings are true only when exactly "true", containers, Null, and
// Undefined are false.
func (node *Node) AsBool() bool {
	switch node.Type {
	case BoolType:
		return node.Bool
	case NumberType:
		if node.Int64 != nil {
			return *node.Int64 != 0
		}
		if node.Float64 != nil {
			return *node.Float64 != 0
		}
	case StringType:
		return node.String == "true"
	}
	return false
}

// AsInt64 returns the node coerced to an int64. Floats truncate toward
// zero, bools map to 1/0, strings parse as decimal integers with a fallback
// of 0, containers, Null, and Undefined are 0.
func (node *Node) AsInt64() int64 {
	switch node.Type {
	case BoolType:
		if node.Bool {
			return 1
		}
	case NumberType:
		if node.Int64 != nil {
			return *node.Int64
		}
		if node.Float64 != nil {
			return int64(*node.Float64)
		}
	case StringType:
		i, err := strconv.ParseInt(node.String, 10, 64)
		if err != nil {
			return 0
		}
		return i
	}
	return 0
}

// AsFloat64 returns the node coerced to a float64. Bools map to 1/0,
// strings parse as decimal floats with a fallback of 0, containers, Null,
// and Undefined are 0.
func (node *Node) AsFloat64() float64 {
	switch node.Type {
	case BoolType:
		if node.Bool {
			return 1
		}
	case NumberType:
		if node.Int64 != nil {
			return float64(*node.Int64)
		}
		if node.Float64 != nil {
			return *node.Float64
		}
	case StringType:
		f, err := strconv.ParseFloat(node.String, 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

// AsString returns the node coerced to a string. Bools and numbers render
// as their text, arrays and objects as the placeholder "Object", Null and
// Undefined as the empty string.
func (node *Node) AsString() string {
	switch node.Type {
	case BoolType:
		return strconv.FormatBool(node.Bool)
	case NumberType:
		return numberText(node)
	case StringType:
		return node.String
	case ArrayType, ObjectType:
		return "Object"
	}
	return ""
}

// numberText renders a number node. Floats with no fractional part keep a
// trailing ".0" so they remain distinguishable from integers.
func numberText(node *Node) string {
	if node.Int64 != nil {
		return strconv.FormatInt(*node.Int64, 10)
	}
	if node.Float64 == nil {
		return "0"
	}
	f := *node.Float64
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !hasDotOrExp(s) {
		s += ".0"
	}
	return s
}

func hasDotOrExp(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '.', 'e', 'E':
			return true
		}
	}
	return false
}
