package gomap

import (
	"encoding"
	"fmt"
	"reflect"
	"sort"

	"github.com/signadot/laxjson/ir"
)

var irNodeType = reflect.TypeOf((*ir.Node)(nil))

// toIR converts one reflect value, carrying a field path for error
// reporting and a visited set for cycle detection.
func (m *Mapper) toIR(val reflect.Value, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	if !val.IsValid() {
		return ir.Null(), nil
	}
	typ := val.Type()

	// Raw nodes pass through untouched, shared rather than copied.
	if typ == irNodeType {
		n, _ := val.Interface().(*ir.Node)
		if n == nil {
			return ir.Null(), nil
		}
		return n, nil
	}

	// Unwrap interfaces first so converter and marshaler lookups see the
	// concrete type.
	if typ.Kind() == reflect.Interface {
		if val.IsNil() {
			return ir.Null(), nil
		}
		return m.toIR(val.Elem(), fieldPath, visited)
	}

	switch typ.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice:
		if val.IsNil() {
			return ir.Null(), nil
		}
	}

	// A registered converter takes the value whole.
	if c := m.registry.Converter(typ); c != nil {
		n, err := c.ToIR(val.Interface())
		if err != nil {
			return nil, &ConversionError{FieldPath: fieldPath, Message: "converter failed", Err: err}
		}
		if n == nil {
			return ir.Null(), nil
		}
		return n, nil
	}

	// TextMarshaler renders as a string, the structural analog of an
	// enumerated value's symbolic name.
	if tm, ok := textMarshaler(val); ok {
		text, err := tm.MarshalText()
		if err != nil {
			return nil, &ConversionError{FieldPath: fieldPath, Message: "MarshalText failed", Err: err}
		}
		return ir.FromString(string(text)), nil
	}

	switch typ.Kind() {
	case reflect.Ptr:
		ptrAddr := val.Pointer()
		if prevPath, seen := visited[ptrAddr]; seen {
			return nil, convErr(fieldPath, "circular reference detected, previously seen at %s", prevPath)
		}
		visited[ptrAddr] = fieldPath
		defer delete(visited, ptrAddr)
		return m.toIR(val.Elem(), fieldPath, visited)

	case reflect.Bool:
		return ir.FromBool(val.Bool()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.FromInt(val.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return ir.FromInt(int64(val.Uint())), nil

	case reflect.Float32, reflect.Float64:
		return ir.FromFloat(val.Float()), nil

	case reflect.String:
		return ir.FromString(val.String()), nil

	case reflect.Slice, reflect.Array:
		return m.sliceToIR(val, fieldPath, visited)

	case reflect.Map:
		return m.mapToIR(val, fieldPath, visited)

	case reflect.Struct:
		return m.structToIR(val, fieldPath, visited)

	default:
		return nil, convErr(fieldPath, "unsupported type: %s", typ)
	}
}

func (m *Mapper) sliceToIR(val reflect.Value, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	if val.Kind() == reflect.Slice {
		ptr := val.Pointer()
		if prevPath, seen := visited[ptr]; seen {
			return nil, convErr(fieldPath, "circular reference detected, previously seen at %s", prevPath)
		}
		visited[ptr] = fieldPath
		defer delete(visited, ptr)
	}
	out := ir.EmptyArray()
	for i := 0; i < val.Len(); i++ {
		child, err := m.toIR(val.Index(i), elemPath(fieldPath, i), visited)
		if err != nil {
			return nil, err
		}
		if err := out.Push(child); err != nil {
			return nil, &ConversionError{FieldPath: fieldPath, Message: "append failed", Err: err}
		}
	}
	return out, nil
}

func (m *Mapper) mapToIR(val reflect.Value, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	ptr := val.Pointer()
	if prevPath, seen := visited[ptr]; seen {
		return nil, convErr(fieldPath, "circular reference detected, previously seen at %s", prevPath)
	}
	visited[ptr] = fieldPath
	defer delete(visited, ptr)

	// Member names are the string form of each key, emitted in sorted
	// order so output is deterministic across map iterations.
	keys := val.MapKeys()
	names := make([]string, len(keys))
	byName := make(map[string]reflect.Value, len(keys))
	for i, k := range keys {
		name := ""
		if k.Kind() == reflect.String {
			name = k.String()
		} else {
			name = fmt.Sprint(k.Interface())
		}
		names[i] = name
		byName[name] = k
	}
	sort.Strings(names)

	out := ir.EmptyObject()
	for _, name := range names {
		child, err := m.toIR(val.MapIndex(byName[name]), memberPath(fieldPath, name), visited)
		if err != nil {
			return nil, err
		}
		if err := out.SetMember(name, child); err != nil {
			return nil, &ConversionError{FieldPath: fieldPath, Message: fmt.Sprintf("bad member name %q", name), Err: err}
		}
	}
	return out, nil
}

func (m *Mapper) structToIR(val reflect.Value, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	p, err := ProfileOf(val.Type())
	if err != nil {
		return nil, &ConversionError{FieldPath: fieldPath, Message: err.Error(), Err: err}
	}

	out := ir.EmptyObject()

	// Getters first, fields second: a field replaces a getter's member
	// in place when both derive the same name, so fields win ties.
	pv := addressable(val)
	for _, g := range p.Getters {
		res := pv.Method(g.Method).Call(nil)[0]
		child, err := m.toIR(res, memberPath(fieldPath, g.Name), visited)
		if err != nil {
			return nil, err
		}
		if err := out.SetMember(g.Name, child); err != nil {
			return nil, &ConversionError{FieldPath: fieldPath, Message: fmt.Sprintf("bad member name %q", g.Name), Err: err}
		}
	}
	for _, f := range p.Fields {
		fv, ok := fieldByIndex(val, f.Index)
		if !ok {
			continue
		}
		name := f.MemberName()
		child, err := m.toIR(fv, memberPath(fieldPath, name), visited)
		if err != nil {
			return nil, err
		}
		if err := out.SetMember(name, child); err != nil {
			return nil, &ConversionError{FieldPath: fieldPath, Message: fmt.Sprintf("bad member name %q", name), Err: err}
		}
	}
	return out, nil
}

// textMarshaler finds an encoding.TextMarshaler on the value or, when
// the value is addressable, on its pointer.
func textMarshaler(val reflect.Value) (encoding.TextMarshaler, bool) {
	if tm, ok := val.Interface().(encoding.TextMarshaler); ok {
		return tm, true
	}
	if val.CanAddr() {
		if tm, ok := val.Addr().Interface().(encoding.TextMarshaler); ok {
			return tm, true
		}
	}
	return nil, false
}

// addressable returns a pointer to val, copying when the value cannot be
// addressed directly. Accessor methods with pointer receivers need it.
func addressable(val reflect.Value) reflect.Value {
	if val.CanAddr() {
		return val.Addr()
	}
	pv := reflect.New(val.Type())
	pv.Elem().Set(val)
	return pv
}

// fieldByIndex walks an index chain, reporting false when a nil embedded
// pointer interrupts it.
func fieldByIndex(val reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 {
			if val.Kind() == reflect.Ptr {
				if val.IsNil() {
					return reflect.Value{}, false
				}
				val = val.Elem()
			}
		}
		val = val.Field(x)
	}
	return val, true
}

// memberPath extends a field path by one object member.
func memberPath(fieldPath, name string) string {
	if fieldPath == "" {
		return name
	}
	return fieldPath + "." + name
}

// elemPath extends a field path by one array index.
func elemPath(fieldPath string, i int) string {
	return fmt.Sprintf("%s[%d]", fieldPath, i)
}
