package gomap

import (
	"strings"
	"testing"

	"github.com/signadot/laxjson/encode"
	"github.com/signadot/laxjson/ir"
)

func mustCompact(t *testing.T, y *ir.Node) string {
	t.Helper()
	var sb strings.Builder
	if err := encode.Encode(y, &sb); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	return sb.String()
}

func TestToIR_BasicTypes(t *testing.T) {
	tests := []struct {
		name string
		v    interface{}
		want string
	}{
		{name: "nil", v: nil, want: `null`},
		{name: "bool", v: true, want: `true`},
		{name: "int", v: 42, want: `42`},
		{name: "int64", v: int64(-7), want: `-7`},
		{name: "uint", v: uint16(9), want: `9`},
		{name: "float", v: 2.5, want: `2.5`},
		{name: "whole float stays float", v: float64(3), want: `3.0`},
		{name: "string", v: "hi", want: `"hi"`},
		{name: "slice", v: []int{1, 2}, want: `[1,2]`},
		{name: "byte slice is element-wise", v: []byte{1, 2}, want: `[1,2]`},
		{name: "array", v: [2]string{"a", "b"}, want: `["a","b"]`},
		{name: "nil slice", v: []int(nil), want: `null`},
		{name: "nil map", v: map[string]int(nil), want: `null`},
		{name: "nil pointer", v: (*int)(nil), want: `null`},
		{name: "map sorted keys", v: map[string]int{"b": 2, "a": 1}, want: `{"a":1,"b":2}`},
		{name: "int keys stringified", v: map[int]string{2: "b", 10: "j", 1: "a"}, want: `{"1":"a","10":"j","2":"b"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, err := ToIR(tt.v)
			if err != nil {
				t.Fatalf("ToIR() error = %v", err)
			}
			if got := mustCompact(t, y); got != tt.want {
				t.Errorf("ToIR() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestToIR_RawNodeShared(t *testing.T) {
	y := ir.FromString("aliased")
	got, err := ToIR(y)
	if err != nil {
		t.Fatalf("ToIR() error = %v", err)
	}
	if got != y {
		t.Errorf("ToIR(*ir.Node) = %p, want the input node %p back unchanged", got, y)
	}
	var nilNode *ir.Node
	got, err = ToIR(nilNode)
	if err != nil {
		t.Fatalf("ToIR(nil node) error = %v", err)
	}
	if !got.IsNull() {
		t.Errorf("ToIR(nil node) = %s, want null", got.Type)
	}
}

type toAddress struct {
	Street string
	City   string `lax:"name=town"`
}

type toPerson struct {
	Name    string
	Age     int
	Email   string `lax:"ignore"`
	Skip    string `lax:"-"`
	Address toAddress
	secret  string
}

func TestToIR_StructFieldsAndTags(t *testing.T) {
	p := toPerson{
		Name:    "Alice",
		Age:     30,
		Email:   "nope@example.com",
		Skip:    "nope",
		Address: toAddress{Street: "Main", City: "Springfield"},
		secret:  "hidden",
	}
	y, err := ToIR(p)
	if err != nil {
		t.Fatalf("ToIR() error = %v", err)
	}
	want := `{"Name":"Alice","Age":30,"Address":{"Street":"Main","town":"Springfield"}}`
	if got := mustCompact(t, y); got != want {
		t.Errorf("ToIR() = %s, want %s", got, want)
	}
}

type toAccount struct {
	ID int64
}

func (a *toAccount) GetBalance() float64 { return 42.5 }
func (a *toAccount) IsActive() bool      { return true }
func (a *toAccount) Isolate() string     { return "not an accessor" }
func (a *toAccount) GetTotal(n int) int  { return n } // takes an argument, not a getter

func TestToIR_StructGetters(t *testing.T) {
	y, err := ToIR(toAccount{ID: 7})
	if err != nil {
		t.Fatalf("ToIR() error = %v", err)
	}
	want := `{"Balance":42.5,"Active":true,"ID":7}`
	if got := mustCompact(t, y); got != want {
		t.Errorf("ToIR() = %s, want %s", got, want)
	}
}

type toTie struct {
	Color string `lax:"name=Shade"`
}

func (toTie) GetShade() string { return "from getter" }

func TestToIR_FieldBeatsGetterOnNameTie(t *testing.T) {
	y, err := ToIR(toTie{Color: "from field"})
	if err != nil {
		t.Fatalf("ToIR() error = %v", err)
	}
	if got := mustCompact(t, y); got != `{"Shade":"from field"}` {
		t.Errorf("ToIR() = %s, want the field value under the shared name", got)
	}
}

type toBase struct {
	ID int
}

type toDerived struct {
	toBase
	Name string
}

func TestToIR_EmbeddedStructFlattens(t *testing.T) {
	y, err := ToIR(toDerived{toBase: toBase{ID: 3}, Name: "x"})
	if err != nil {
		t.Fatalf("ToIR() error = %v", err)
	}
	if got := mustCompact(t, y); got != `{"ID":3,"Name":"x"}` {
		t.Errorf("ToIR() = %s, want promoted fields inline", got)
	}
}

type toLevel int

const (
	toLevelLow toLevel = iota
	toLevelHigh
)

func (l toLevel) MarshalText() ([]byte, error) {
	if l == toLevelHigh {
		return []byte("high"), nil
	}
	return []byte("low"), nil
}

func TestToIR_TextMarshaler(t *testing.T) {
	y, err := ToIR(struct{ Level toLevel }{Level: toLevelHigh})
	if err != nil {
		t.Fatalf("ToIR() error = %v", err)
	}
	if got := mustCompact(t, y); got != `{"Level":"high"}` {
		t.Errorf("ToIR() = %s, want the symbolic name", got)
	}
}

type toCycle struct {
	Next *toCycle
}

func TestToIR_CycleDetected(t *testing.T) {
	a := &toCycle{}
	a.Next = a
	_, err := ToIR(a)
	if err == nil {
		t.Fatal("ToIR() expected an error for a self-referential value")
	}
	if !strings.Contains(err.Error(), "circular") {
		t.Errorf("ToIR() error = %v, want a circular reference report", err)
	}
}

func TestToIR_ErrorFieldPath(t *testing.T) {
	type inner struct {
		Ch chan int
	}
	type outer struct {
		List []inner
	}
	_, err := ToIR(outer{List: []inner{{}}})
	if err == nil {
		t.Fatal("ToIR() expected an error for a chan field")
	}
	ce, ok := err.(*ConversionError)
	if !ok {
		t.Fatalf("ToIR() error type = %T, want *ConversionError", err)
	}
	if ce.FieldPath != "List[0].Ch" {
		t.Errorf("FieldPath = %q, want %q", ce.FieldPath, "List[0].Ch")
	}
}
