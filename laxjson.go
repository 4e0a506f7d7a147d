// Package laxjson reads and writes a lenient superset of JSON. Input may
// use unquoted member names, single-quoted strings, and hexadecimal
// integer literals; output is strict JSON unless the tree itself contains
// values with no strict rendering (undefined, NUL escapes).
//
// The package-level functions cover the common paths. Parse and Read
// produce an *ir.Node tree for callers who want to inspect or edit
// structure; Unmarshal and Marshal convert to and from native Go values
// through the gomap package.
package laxjson

import (
	"bytes"
	"io"

	"github.com/signadot/laxjson/encode"
	"github.com/signadot/laxjson/gomap"
	"github.com/signadot/laxjson/ir"
	"github.com/signadot/laxjson/parse"
)

type Config struct {
	Indent   string
	OmitNull bool
	Registry *gomap.Registry
}

type Option func(*Config)

// Indent sets the unit of indentation for written output, typically a
// run of spaces or a tab. The default writes maximally compact text.
func Indent(unit string) Option {
	return func(c *Config) { c.Indent = unit }
}

// OmitNull skips object members whose value is null or undefined when
// writing. Array elements are kept regardless.
func OmitNull(v bool) Option {
	return func(c *Config) { c.OmitNull = v }
}

// WithRegistry selects the converter registry consulted when converting
// between native values and trees. The default is the process-wide
// registry returned by gomap.DefaultRegistry.
func WithRegistry(reg *gomap.Registry) Option {
	return func(c *Config) { c.Registry = reg }
}

func newConfig(opts []Option) *Config {
	c := &Config{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Config) mapper() *gomap.Mapper {
	return gomap.NewMapper(c.Registry)
}

func (c *Config) encodeOpts() []encode.EncodeOption {
	var eo []encode.EncodeOption
	if c.Indent != "" {
		eo = append(eo, encode.EncodeIndent(c.Indent))
	}
	if c.OmitNull {
		eo = append(eo, encode.EncodeOmitNull(true))
	}
	return eo
}

// Parse parses the first complete structure in d. Trailing input after
// that structure is ignored. Empty or whitespace-only input yields
// (nil, nil).
func Parse(d []byte) (*ir.Node, error) {
	return parse.Parse(d)
}

// ParseString is Parse on a string input.
func ParseString(s string) (*ir.Node, error) {
	return parse.ParseString(s)
}

// Read consumes r fully and parses the first complete structure found.
func Read(r io.Reader) (*ir.Node, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parse.Parse(d)
}

// Unmarshal parses d and applies the result to out, which must be a
// non-nil pointer. Empty input leaves out untouched.
func Unmarshal(d []byte, out any, opts ...Option) error {
	y, err := parse.Parse(d)
	if err != nil {
		return err
	}
	if y == nil {
		return nil
	}
	return newConfig(opts).mapper().FromIR(y, out)
}

// ReadAs consumes r fully, parses the first structure, and applies it
// to out.
func ReadAs(r io.Reader, out any, opts ...Option) error {
	d, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return Unmarshal(d, out, opts...)
}

// Marshal converts v to a tree when it is not an *ir.Node already and
// renders it as text.
func Marshal(v any, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, v, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalString is Marshal returning a string.
func MarshalString(v any, opts ...Option) (string, error) {
	d, err := Marshal(v, opts...)
	if err != nil {
		return "", err
	}
	return string(d), nil
}

// Write converts v to a tree when it is not an *ir.Node already and
// encodes it to w.
func Write(w io.Writer, v any, opts ...Option) error {
	c := newConfig(opts)
	y, err := c.mapper().ToIR(v)
	if err != nil {
		return err
	}
	return encode.Encode(y, w, c.encodeOpts()...)
}
