package gomap

import (
	"encoding"
	"math"
	"reflect"

	"github.com/signadot/laxjson/ir"
)

// fromIR applies one node to one settable reflect value.
func (m *Mapper) fromIR(y *ir.Node, val reflect.Value, fieldPath string, visited map[uintptr]string) error {
	if y == nil {
		return convErr(fieldPath, "source node is nil")
	}
	typ := val.Type()

	// A registered converter takes over entirely, Null included.
	if c := m.registry.Converter(typ); c != nil {
		res, err := c.FromIR(y, typ)
		if err != nil {
			return &ConversionError{FieldPath: fieldPath, Message: "converter failed", Err: err}
		}
		return assign(val, res, fieldPath)
	}

	// Raw node targets take the source tree as-is, shared.
	if typ == irNodeType {
		val.Set(reflect.ValueOf(y))
		return nil
	}

	switch typ.Kind() {
	case reflect.Ptr:
		if y.IsNull() || y.IsUndefined() {
			val.Set(reflect.Zero(typ))
			return nil
		}
		if val.IsNil() {
			val.Set(reflect.New(typ.Elem()))
		}
		ptrAddr := val.Pointer()
		if prevPath, seen := visited[ptrAddr]; seen {
			return convErr(fieldPath, "circular reference detected, previously seen at %s", prevPath)
		}
		visited[ptrAddr] = fieldPath
		defer delete(visited, ptrAddr)
		return m.fromIR(y, val.Elem(), fieldPath, visited)

	case reflect.Interface:
		if typ.NumMethod() != 0 {
			return convErr(fieldPath, "unsupported target type: %s", typ)
		}
		v, err := m.anyFromIR(y, fieldPath, visited)
		if err != nil {
			return err
		}
		if v == nil {
			val.Set(reflect.Zero(typ))
			return nil
		}
		val.Set(reflect.ValueOf(v))
		return nil
	}

	// Null zeroes every remaining target. Undefined carries no value at
	// all, which a concrete target cannot absorb.
	if y.IsNull() {
		val.Set(reflect.Zero(typ))
		return nil
	}
	if y.IsUndefined() {
		return convErr(fieldPath, "cannot apply undefined to %s", typ)
	}

	// TextUnmarshaler absorbs String values, the enum-name analog.
	if y.Type == ir.StringType && val.CanAddr() {
		if tu, ok := val.Addr().Interface().(encoding.TextUnmarshaler); ok {
			if err := tu.UnmarshalText([]byte(y.String)); err != nil {
				return &ConversionError{FieldPath: fieldPath, Message: "UnmarshalText failed", Err: err}
			}
			return nil
		}
	}

	switch typ.Kind() {
	case reflect.Bool:
		val.SetBool(y.AsBool())
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// Conversion, not SetInt: narrowing truncates instead of
		// panicking, matching the total coercions.
		val.Set(reflect.ValueOf(y.AsInt64()).Convert(typ))
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i := y.AsInt64()
		if i < 0 {
			i = 0
		}
		val.Set(reflect.ValueOf(uint64(i)).Convert(typ))
		return nil

	case reflect.Float32, reflect.Float64:
		val.Set(reflect.ValueOf(y.AsFloat64()).Convert(typ))
		return nil

	case reflect.String:
		val.Set(reflect.ValueOf(y.AsString()).Convert(typ))
		return nil

	case reflect.Slice, reflect.Array:
		return m.arrayFromIR(y, val, fieldPath, visited)

	case reflect.Map:
		return m.mapFromIR(y, val, fieldPath, visited)

	case reflect.Struct:
		return m.structFromIR(y, val, fieldPath, visited)

	default:
		return convErr(fieldPath, "unsupported target type: %s", typ)
	}
}

// anyFromIR picks natural Go shapes for an untyped slot: bool, string,
// int when the number round-trips through 32 bits, int64 for wider
// integers, float64, []any, map[string]any, nil for Null and Undefined.
func (m *Mapper) anyFromIR(y *ir.Node, fieldPath string, visited map[uintptr]string) (any, error) {
	switch y.Type {
	case ir.NullType, ir.UndefinedType:
		return nil, nil
	case ir.BoolType:
		return y.Bool, nil
	case ir.NumberType:
		if y.Int64 != nil {
			i := *y.Int64
			if i >= math.MinInt32 && i <= math.MaxInt32 {
				return int(i), nil
			}
			return i, nil
		}
		if y.Float64 != nil {
			return *y.Float64, nil
		}
		return nil, convErr(fieldPath, "number node without value")
	case ir.StringType:
		return y.String, nil
	case ir.ArrayType:
		out := make([]any, len(y.Values))
		for i, el := range y.Values {
			v, err := m.anyFromIR(el, elemPath(fieldPath, i), visited)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case ir.ObjectType:
		out := make(map[string]any, len(y.Keys))
		for i, k := range y.Keys {
			v, err := m.anyFromIR(y.Values[i], memberPath(fieldPath, k), visited)
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	}
	return nil, convErr(fieldPath, "unsupported node type: %s", y.Type)
}

func (m *Mapper) arrayFromIR(y *ir.Node, val reflect.Value, fieldPath string, visited map[uintptr]string) error {
	if y.Type != ir.ArrayType {
		return convErr(fieldPath, "expected array, got %s", y.Type)
	}
	length := len(y.Values)
	typ := val.Type()
	if typ.Kind() == reflect.Array {
		// Fixed-size targets absorb min(target, source) elements and
		// keep the rest: size mismatch is truncation, not an error.
		if val.Len() < length {
			length = val.Len()
		}
	} else {
		val.Set(reflect.MakeSlice(typ, length, length))
		slicePtr := val.Pointer()
		if prevPath, seen := visited[slicePtr]; seen {
			return convErr(fieldPath, "circular reference detected, previously seen at %s", prevPath)
		}
		visited[slicePtr] = fieldPath
		defer delete(visited, slicePtr)
	}
	for i := 0; i < length; i++ {
		if err := m.fromIR(y.Values[i], val.Index(i), elemPath(fieldPath, i), visited); err != nil {
			return err
		}
	}
	return nil
}

func (m *Mapper) mapFromIR(y *ir.Node, val reflect.Value, fieldPath string, visited map[uintptr]string) error {
	if y.Type != ir.ObjectType {
		return convErr(fieldPath, "expected object, got %s", y.Type)
	}
	typ := val.Type()
	keyType := typ.Key()
	valType := typ.Elem()

	val.Set(reflect.MakeMap(typ))
	mapPtr := val.Pointer()
	if prevPath, seen := visited[mapPtr]; seen {
		return convErr(fieldPath, "circular reference detected, previously seen at %s", prevPath)
	}
	visited[mapPtr] = fieldPath
	defer delete(visited, mapPtr)

	for i, k := range y.Keys {
		// Member names pass back through the engine to reach the key
		// type, so integer and text-unmarshaling keys both work.
		keyVal := reflect.New(keyType).Elem()
		if err := m.fromIR(ir.FromString(k), keyVal, memberPath(fieldPath, k), visited); err != nil {
			return err
		}
		elemVal := reflect.New(valType).Elem()
		if err := m.fromIR(y.Values[i], elemVal, memberPath(fieldPath, k), visited); err != nil {
			return err
		}
		val.SetMapIndex(keyVal, elemVal)
	}
	return nil
}

func (m *Mapper) structFromIR(y *ir.Node, val reflect.Value, fieldPath string, visited map[uintptr]string) error {
	if y.Type != ir.ObjectType {
		return convErr(fieldPath, "expected object, got %s", y.Type)
	}
	p, err := ProfileOf(val.Type())
	if err != nil {
		return &ConversionError{FieldPath: fieldPath, Message: err.Error(), Err: err}
	}
	for i, name := range y.Keys {
		member := y.Values[i]
		if member.IsUndefined() {
			continue
		}
		field, setter := p.resolveMember(name)
		switch {
		case field != nil:
			fv, ok := settableFieldByIndex(val, field.Index)
			if !ok {
				continue
			}
			if err := m.fromIR(member, fv, memberPath(fieldPath, name), visited); err != nil {
				return err
			}
		case setter != nil:
			arg := reflect.New(setter.Type).Elem()
			if err := m.fromIR(member, arg, memberPath(fieldPath, name), visited); err != nil {
				return err
			}
			val.Addr().Method(setter.Method).Call([]reflect.Value{arg})
		}
		// Members matching nothing are ignored: extra input is never an
		// error.
	}
	return nil
}

// assign places a converter result into the target slot.
func assign(val reflect.Value, res any, fieldPath string) error {
	if res == nil {
		val.Set(reflect.Zero(val.Type()))
		return nil
	}
	rv := reflect.ValueOf(res)
	if !rv.Type().AssignableTo(val.Type()) {
		return convErr(fieldPath, "converter returned %s, need %s", rv.Type(), val.Type())
	}
	val.Set(rv)
	return nil
}

// settableFieldByIndex walks an index chain for writing, allocating nil
// embedded pointers along the way.
func settableFieldByIndex(val reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 {
			if val.Kind() == reflect.Ptr {
				if val.IsNil() {
					if !val.CanSet() {
						return reflect.Value{}, false
					}
					val.Set(reflect.New(val.Type().Elem()))
				}
				val = val.Elem()
			}
		}
		val = val.Field(x)
	}
	return val, true
}
