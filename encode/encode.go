package encode

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/signadot/laxjson/ir"
	"github.com/signadot/laxjson/token"
)

type EncState struct {
	depth    int
	indent   string
	omitNull bool

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes node to w. Without options the output is maximally
// compact: no whitespace is inserted anywhere. EncodeIndent switches to
// multi-line output with one indent unit per nesting level.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return encode(node, w, es)
}

func encode(node *ir.Node, w io.Writer, es *EncState) error {
	switch node.Type {
	case ir.ObjectType:
		return encodeObject(node, w, es)
	case ir.ArrayType:
		return encodeArray(node, w, es)
	case ir.StringType:
		return encodeString(node, w, es)
	case ir.NumberType:
		return encodeNumber(node, w, es)
	case ir.BoolType:
		return encodeBool(node, w, es)
	case ir.NullType:
		return encodeNull(node, w, es)
	case ir.UndefinedType:
		return encodeUndefined(node, w, es)
	default:
		panic("type")
	}
}

// Helper functions for writing

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}

func writeNL(w io.Writer, es *EncState) error {
	if es.indent == "" {
		return nil
	}
	return writeString(w, "\n"+strings.Repeat(es.indent, es.depth))
}

func applyColor(es *EncState, t ir.Type, attr ColorAttr, v string) string {
	if es.Color == nil {
		return v
	}
	return es.Color(t, attr, v)
}

// writeField writes a quoted member name and its colon separator. Member
// names are always double-quoted on output, even if they were bare
// identifiers on input.
func writeField(w io.Writer, key string, es *EncState) error {
	v := applyColor(es, ir.ObjectType, FieldColor, token.Quote(key))
	sep := applyColor(es, ir.ObjectType, SepColor, ":")
	if es.indent != "" {
		sep += " "
	}
	return writeString(w, v+sep)
}

// encodeObject

func encodeObject(node *ir.Node, w io.Writer, es *EncState) error {
	keys, vals := node.Keys, node.Values
	if es.omitNull {
		keys, vals = presentMembers(keys, vals)
	}
	if len(keys) == 0 {
		return writeString(w, "{}")
	}
	if err := writeString(w, "{"); err != nil {
		return err
	}
	es.depth++
	for i, key := range keys {
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := writeField(w, key, es); err != nil {
			return err
		}
		if err := encode(vals[i], w, es); err != nil {
			return err
		}
		if i < len(keys)-1 {
			if err := writeString(w, applyColor(es, ir.ObjectType, SepColor, ",")); err != nil {
				return err
			}
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeString(w, "}")
}

// presentMembers filters out members whose value is null or undefined.
func presentMembers(keys []string, vals []*ir.Node) ([]string, []*ir.Node) {
	outKeys := make([]string, 0, len(keys))
	outVals := make([]*ir.Node, 0, len(vals))
	for i, key := range keys {
		switch vals[i].Type {
		case ir.NullType, ir.UndefinedType:
			continue
		}
		outKeys = append(outKeys, key)
		outVals = append(outVals, vals[i])
	}
	return outKeys, outVals
}

// encodeArray

func encodeArray(node *ir.Node, w io.Writer, es *EncState) error {
	// null elements are kept even under omitNull: dropping them would
	// shift the meaning of the remaining indices
	if len(node.Values) == 0 {
		return writeString(w, "[]")
	}
	if err := writeString(w, "["); err != nil {
		return err
	}
	es.depth++
	for i, v := range node.Values {
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := encode(v, w, es); err != nil {
			return err
		}
		if i < len(node.Values)-1 {
			if err := writeString(w, applyColor(es, ir.ArrayType, SepColor, ",")); err != nil {
				return err
			}
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeString(w, "]")
}

// String encoding

func encodeString(node *ir.Node, w io.Writer, es *EncState) error {
	v := token.Quote(node.String)
	v = applyColor(es, ir.StringType, ValueColor, v)
	return writeString(w, v)
}

// Number encoding

func encodeNumber(node *ir.Node, w io.Writer, es *EncState) error {
	switch {
	case node.Int64 != nil:
		v := strconv.FormatInt(*node.Int64, 10)
		v = applyColor(es, ir.NumberType, ValueColor, v)
		return writeString(w, v)
	case node.Float64 != nil:
		f := *node.Float64
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: %v has no representation", ErrEncoding, f)
		}
		v := strconv.FormatFloat(f, 'f', -1, 64)
		// Whole floats keep a trailing .0 so they reparse as floats
		if !strings.ContainsAny(v, ".eE") {
			v += ".0"
		}
		v = applyColor(es, ir.NumberType, ValueColor, v)
		return writeString(w, v)
	default:
		return fmt.Errorf("%w: number node without value", ErrEncoding)
	}
}

// Bool encoding

func encodeBool(node *ir.Node, w io.Writer, es *EncState) error {
	v := strconv.FormatBool(node.Bool)
	v = applyColor(es, ir.BoolType, ValueColor, v)
	return writeString(w, v)
}

// Null encoding

func encodeNull(_ *ir.Node, w io.Writer, es *EncState) error {
	return writeString(w, applyColor(es, ir.NullType, ValueColor, "null"))
}

// Undefined encoding; reachable only when a caller has placed the shared
// undefined node inside a container. The bare word is a deviation from
// strict notation.

func encodeUndefined(_ *ir.Node, w io.Writer, es *EncState) error {
	return writeString(w, applyColor(es, ir.UndefinedType, ValueColor, "undefined"))
}
