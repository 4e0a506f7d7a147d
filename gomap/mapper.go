package gomap

import (
	"reflect"

	"github.com/signadot/laxjson/ir"
)

// Mapper converts between Go values and IR trees using one converter
// registry. The zero-setup package functions ToIR and FromIR use the
// default registry; construct a Mapper to use a private one.
type Mapper struct {
	registry *Registry
}

// NewMapper creates a Mapper bound to the given registry. A nil registry
// means the process-wide default.
func NewMapper(reg *Registry) *Mapper {
	if reg == nil {
		reg = DefaultRegistry()
	}
	return &Mapper{registry: reg}
}

// DefaultMapper returns a Mapper using the default registry. It is
// equivalent to NewMapper(nil).
func DefaultMapper() *Mapper {
	return NewMapper(nil)
}

// Registry returns the registry this mapper consults.
func (m *Mapper) Registry() *Registry {
	return m.registry
}

// ToIR builds an IR tree from a Go value.
//
// An *ir.Node input is returned as-is, not copied; mutating the result
// mutates the input. nil becomes Null. Primitives map to their IR
// variants, arrays and slices to Array nodes, maps to Object nodes with
// stringified keys in sorted order. Anything else consults the registry,
// then encoding.TextMarshaler, and finally maps structurally through the
// type's profile: getter methods first, then exported fields, so a field
// wins when both produce the same member name.
func (m *Mapper) ToIR(v any) (*ir.Node, error) {
	if v == nil {
		return ir.Null(), nil
	}
	if n, ok := v.(*ir.Node); ok {
		if n == nil {
			return ir.Null(), nil
		}
		return n, nil
	}
	visited := make(map[uintptr]string)
	return m.toIR(reflect.ValueOf(v), "", visited)
}

// FromIR applies an IR tree to a Go value. out must be a non-nil
// pointer; the pointed-to value is overwritten member by member.
//
// Registered converters take the whole node for their type. Otherwise
// scalar targets are filled through the ir coercions (never failing on
// shape), container targets require the matching container variant, and
// struct targets resolve each source member by tag alias first, then
// field name, then SetXxx method, ignoring members that match nothing.
func (m *Mapper) FromIR(y *ir.Node, out any) error {
	if y == nil {
		return &ConversionError{Message: "source node is nil"}
	}
	if out == nil {
		return &ConversionError{Message: "destination value cannot be nil"}
	}
	val := reflect.ValueOf(out)
	if val.Kind() != reflect.Ptr {
		return &ConversionError{Message: "destination value must be a pointer"}
	}
	if val.IsNil() {
		return &ConversionError{Message: "destination pointer cannot be nil"}
	}
	visited := make(map[uintptr]string)
	return m.fromIR(y, val.Elem(), "", visited)
}

// ToIR builds an IR tree from a Go value using the default registry.
func ToIR(v any) (*ir.Node, error) {
	return DefaultMapper().ToIR(v)
}

// FromIR applies an IR tree to a Go value using the default registry.
// out must be a non-nil pointer.
func FromIR(y *ir.Node, out any) error {
	return DefaultMapper().FromIR(y, out)
}
