package parse

import (
	"math"
	"strconv"
	"strings"

	"github.com/signadot/laxjson/ir"
)

// parseNumber classifies and parses a numeric literal. In priority order:
// a literal containing 'x' is a hexadecimal integer (only the part after
// the x is parsed, so 0x1f reads as 31), one containing e/E applies a
// decimal exponent to the mantissa, one containing '.' is a float, and
// anything else is a decimal integer.
func parseNumber(d []byte, neg bool) (*ir.Node, error) {
	s := string(d)
	if strings.IndexByte(s, '_') >= 0 {
		return nil, strconv.ErrSyntax
	}
	if i := strings.IndexByte(s, 'x'); i >= 0 {
		v, err := strconv.ParseInt(s[i+1:], 16, 64)
		if err != nil {
			return nil, err
		}
		if neg {
			v = -v
		}
		return ir.FromInt(v), nil
	}
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mant, err := strconv.ParseFloat(s[:i], 64)
		if err != nil {
			return nil, err
		}
		exp, err := strconv.ParseFloat(s[i+1:], 64)
		if err != nil {
			return nil, err
		}
		// Applying the exponent through a float power can lose
		// precision for very large exponents.
		f := mant * math.Pow(10, exp)
		if neg {
			f = -f
		}
		return ir.FromFloat(f), nil
	}
	if strings.IndexByte(s, '.') >= 0 {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		if neg {
			f = -f
		}
		return ir.FromFloat(f), nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	if neg {
		v = -v
	}
	return ir.FromInt(v), nil
}
