package laxjson

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/signadot/laxjson/gomap"
	"github.com/signadot/laxjson/ir"
	"github.com/signadot/laxjson/parse"
)

func TestParseLenientInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bare names",
			in:   `{name: 'Bob', age: 40}`,
			want: `{"name":"Bob","age":40}`,
		},
		{
			name: "hex and negative literals",
			in:   `[0x1F, -3, -0.5]`,
			want: `[31,-3,-0.5]`,
		},
		{
			name: "single quoted string",
			in:   `'it\'s'`,
			want: `"it's"`,
		},
		{
			name: "nested",
			in:   `{outer: {inner: [true, null]}}`,
			want: `{"outer":{"inner":[true,null]}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, err := ParseString(tt.in)
			if err != nil {
				t.Fatalf("ParseString(%q): %v", tt.in, err)
			}
			got, err := MarshalString(y)
			if err != nil {
				t.Fatalf("MarshalString: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseEmptyInput(t *testing.T) {
	y, err := Parse([]byte("  \n\t"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if y != nil {
		t.Errorf("got %v, want nil node", y)
	}
}

func TestPushPopRestoresParse(t *testing.T) {
	orig, err := ParseString(`[1,2,3]`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	y, err := ParseString(`[1,2,3]`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if err := y.Push(ir.FromInt(4)); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if _, err := y.Pop(); err != nil {
		t.Fatalf("Pop: %v", err)
	}
	if !ir.Equal(y, orig) {
		t.Errorf("push then pop changed the tree: %v", y)
	}
	if y.Len() != 3 {
		t.Errorf("Len() = %d, want 3", y.Len())
	}
}

func TestReadFirstStructureWins(t *testing.T) {
	r := strings.NewReader(`[1, 2] {ignored: true}`)
	y, err := Read(r)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	got, err := MarshalString(y)
	if err != nil {
		t.Fatalf("MarshalString: %v", err)
	}
	if want := `[1,2]`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }

func TestReadPropagatesReaderError(t *testing.T) {
	boom := errors.New("boom")
	if _, err := Read(errReader{err: boom}); !errors.Is(err, boom) {
		t.Errorf("got %v, want %v", err, boom)
	}
	var out map[string]int
	if err := ReadAs(errReader{err: boom}, &out); !errors.Is(err, boom) {
		t.Errorf("ReadAs: got %v, want %v", err, boom)
	}
}

type server struct {
	Name string
	Port int    `lax:"name=port"`
	Zone string `lax:"ignore"`
}

func TestUnmarshal(t *testing.T) {
	var s server
	in := `{Name: 'web1', port: 8080, Zone: 'dropped', extra: [1, 2]}`
	if err := Unmarshal([]byte(in), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	want := server{Name: "web1", Port: 8080}
	if !reflect.DeepEqual(s, want) {
		t.Errorf("got %+v, want %+v", s, want)
	}
}

func TestUnmarshalEmptyInputLeavesTarget(t *testing.T) {
	s := server{Name: "keep"}
	if err := Unmarshal([]byte("   "), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if s.Name != "keep" {
		t.Errorf("got %q, want %q", s.Name, "keep")
	}
}

func TestUnmarshalSyntaxError(t *testing.T) {
	var s server
	err := Unmarshal([]byte(`{Name: }`), &s)
	var serr *parse.SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("got %v, want a *parse.SyntaxError", err)
	}
}

func TestReadAs(t *testing.T) {
	var got map[string]int
	if err := ReadAs(strings.NewReader(`{a: 1, b: 2}`), &got); err != nil {
		t.Fatalf("ReadAs: %v", err)
	}
	want := map[string]int{"a": 1, "b": 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMarshalNative(t *testing.T) {
	got, err := MarshalString(server{Name: "web1", Port: 9})
	if err != nil {
		t.Fatalf("MarshalString: %v", err)
	}
	if want := `{"Name":"web1","port":9}`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestMarshalNil(t *testing.T) {
	got, err := MarshalString(nil)
	if err != nil {
		t.Fatalf("MarshalString: %v", err)
	}
	if got != "null" {
		t.Errorf("got %s, want null", got)
	}
}

func TestMarshalIndent(t *testing.T) {
	y, err := ParseString(`{a: 1, b: [true]}`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	got, err := MarshalString(y, Indent("  "))
	if err != nil {
		t.Fatalf("MarshalString: %v", err)
	}
	want := "{\n  \"a\": 1,\n  \"b\": [\n    true\n  ]\n}"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestMarshalOmitNull(t *testing.T) {
	y, err := ParseString(`{a: null, b: [null, 1], c: 2}`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	got, err := MarshalString(y, OmitNull(true))
	if err != nil {
		t.Fatalf("MarshalString: %v", err)
	}
	// null members drop, null array elements stay
	if want := `{"b":[null,1],"c":2}`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, []int{1, 2}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got, want := buf.String(), `[1,2]`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

type portRange struct {
	Lo, Hi int
}

type portRangeConverter struct{}

func (portRangeConverter) ToIR(v any) (*ir.Node, error) {
	pr, ok := v.(portRange)
	if !ok {
		return nil, fmt.Errorf("got %T, need portRange", v)
	}
	return ir.FromString(fmt.Sprintf("%d-%d", pr.Lo, pr.Hi)), nil
}

func (portRangeConverter) FromIR(y *ir.Node, _ reflect.Type) (any, error) {
	var pr portRange
	if _, err := fmt.Sscanf(y.AsString(), "%d-%d", &pr.Lo, &pr.Hi); err != nil {
		return nil, err
	}
	return pr, nil
}

func TestWithRegistry(t *testing.T) {
	reg := gomap.NewRegistry()
	reg.Register(reflect.TypeOf(portRange{}), portRangeConverter{})

	got, err := MarshalString(portRange{Lo: 80, Hi: 90}, WithRegistry(reg))
	if err != nil {
		t.Fatalf("MarshalString: %v", err)
	}
	if want := `"80-90"`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	// without the registry the struct converts structurally
	got, err = MarshalString(portRange{Lo: 80, Hi: 90})
	if err != nil {
		t.Fatalf("MarshalString: %v", err)
	}
	if want := `{"Lo":80,"Hi":90}`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	var pr portRange
	if err := Unmarshal([]byte(`'8000-9000'`), &pr, WithRegistry(reg)); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if want := (portRange{Lo: 8000, Hi: 9000}); pr != want {
		t.Errorf("got %+v, want %+v", pr, want)
	}
}
