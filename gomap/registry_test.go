package gomap

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/signadot/laxjson/ir"
)

type celsius struct {
	Degrees float64
}

type celsiusConverter struct{}

func (celsiusConverter) ToIR(v any) (*ir.Node, error) {
	c, ok := v.(celsius)
	if !ok {
		return nil, fmt.Errorf("got %T, need celsius", v)
	}
	return ir.FromString(fmt.Sprintf("%gC", c.Degrees)), nil
}

func (celsiusConverter) FromIR(y *ir.Node, _ reflect.Type) (any, error) {
	var deg float64
	if _, err := fmt.Sscanf(y.AsString(), "%gC", &deg); err != nil {
		return nil, err
	}
	return celsius{Degrees: deg}, nil
}

func TestConverterBeatsStructural(t *testing.T) {
	reg := NewRegistry()
	reg.Register(reflect.TypeOf(celsius{}), celsiusConverter{})
	m := NewMapper(reg)

	y, err := m.ToIR(celsius{Degrees: 21.5})
	if err != nil {
		t.Fatalf("ToIR() error = %v", err)
	}
	if y.Type != ir.StringType || y.String != "21.5C" {
		t.Errorf("ToIR() = %s %q, want the converter's string form", y.Type, y.String)
	}

	var back celsius
	if err := m.FromIR(y, &back); err != nil {
		t.Fatalf("FromIR() error = %v", err)
	}
	if back.Degrees != 21.5 {
		t.Errorf("Degrees = %g, want 21.5", back.Degrees)
	}
}

func TestConverterIgnoredWithoutRegistration(t *testing.T) {
	// The same type maps structurally through a registry that has no
	// converter for it.
	y, err := NewMapper(NewRegistry()).ToIR(celsius{Degrees: 21.5})
	if err != nil {
		t.Fatalf("ToIR() error = %v", err)
	}
	if y.Type != ir.ObjectType {
		t.Fatalf("ToIR() = %s, want an object from the structural path", y.Type)
	}
	if got := ir.Get(y, "Degrees").AsFloat64(); got != 21.5 {
		t.Errorf("Degrees member = %g, want 21.5", got)
	}
}

func TestRegistriesAreIndependent(t *testing.T) {
	withConv := NewRegistry()
	withConv.Register(reflect.TypeOf(celsius{}), celsiusConverter{})
	without := NewRegistry()

	if c := withConv.Converter(reflect.TypeOf(celsius{})); c == nil {
		t.Error("Converter() = nil on the registry that registered one")
	}
	if c := without.Converter(reflect.TypeOf(celsius{})); c != nil {
		t.Error("Converter() leaked into an unrelated registry")
	}
}

type fahrenheit struct {
	Degrees float64
}

func (fahrenheit) LaxConverter() Converter { return fahrenheitConverter{} }

type fahrenheitConverter struct{}

func (fahrenheitConverter) ToIR(v any) (*ir.Node, error) {
	f := v.(fahrenheit)
	return ir.FromString(fmt.Sprintf("%gF", f.Degrees)), nil
}

func (fahrenheitConverter) FromIR(y *ir.Node, _ reflect.Type) (any, error) {
	var deg float64
	if _, err := fmt.Sscanf(y.AsString(), "%gF", &deg); err != nil {
		return nil, err
	}
	return fahrenheit{Degrees: deg}, nil
}

func TestConverterProviderSelfRegisters(t *testing.T) {
	reg := NewRegistry()
	m := NewMapper(reg)

	y, err := m.ToIR(fahrenheit{Degrees: 98.6})
	if err != nil {
		t.Fatalf("ToIR() error = %v", err)
	}
	if y.Type != ir.StringType || y.String != "98.6F" {
		t.Errorf("ToIR() = %s %q, want the provided converter's form", y.Type, y.String)
	}
	// The lazy binding is cached in the registry after first use.
	if c := reg.Converter(reflect.TypeOf(fahrenheit{})); c == nil {
		t.Error("Converter() = nil after a conversion that should have bound the provider")
	}
}

func TestTimeMillisConverter(t *testing.T) {
	reg := NewRegistry()
	reg.Register(reflect.TypeOf(time.Time{}), TimeMillisConverter{})
	m := NewMapper(reg)

	at := time.Date(2023, 4, 5, 6, 7, 8, int(900*time.Millisecond), time.UTC)
	y, err := m.ToIR(at)
	if err != nil {
		t.Fatalf("ToIR() error = %v", err)
	}
	if y.Type != ir.NumberType || y.AsInt64() != at.UnixMilli() {
		t.Fatalf("ToIR() = %s %d, want epoch millis %d", y.Type, y.AsInt64(), at.UnixMilli())
	}

	var back time.Time
	if err := m.FromIR(y, &back); err != nil {
		t.Fatalf("FromIR() error = %v", err)
	}
	if !back.Equal(at) {
		t.Errorf("FromIR() = %v, want %v", back, at)
	}
}

func TestISOTimeConverter(t *testing.T) {
	conv := ISOTimeConverter()
	at := time.Date(2023, 4, 5, 6, 7, 8, int(900*time.Millisecond), time.UTC)

	y, err := conv.ToIR(at)
	if err != nil {
		t.Fatalf("ToIR() error = %v", err)
	}
	if want := "2023-04-05T06:07:08.900Z"; y.String != want {
		t.Errorf("ToIR() = %q, want %q", y.String, want)
	}

	got, err := conv.FromIR(y, nil)
	if err != nil {
		t.Fatalf("FromIR() error = %v", err)
	}
	if back := got.(time.Time); !back.Equal(at) {
		t.Errorf("FromIR() = %v, want %v", back, at)
	}

	if _, err := conv.FromIR(ir.FromString("not a time"), nil); err == nil {
		t.Error("FromIR() expected a parse error")
	}
}

func TestTimeFieldWithoutConverter(t *testing.T) {
	// With no converter registered, time.Time falls back to its
	// TextMarshaler form.
	type stamped struct {
		At time.Time
	}
	at := time.Date(2023, 4, 5, 6, 7, 8, 0, time.UTC)
	y, err := NewMapper(NewRegistry()).ToIR(stamped{At: at})
	if err != nil {
		t.Fatalf("ToIR() error = %v", err)
	}
	member := ir.Get(y, "At")
	if member.Type != ir.StringType || member.String != "2023-04-05T06:07:08Z" {
		t.Errorf("At member = %s %q, want the RFC 3339 text", member.Type, member.String)
	}
}
