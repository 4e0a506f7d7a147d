package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/signadot/laxjson/ir"
)

func obj(kvs ...any) *ir.Node {
	res := ir.EmptyObject()
	for i := 0; i < len(kvs); i += 2 {
		res.Keys = append(res.Keys, kvs[i].(string))
		res.Values = append(res.Values, kvs[i+1].(*ir.Node))
	}
	return res
}

func TestParseValues(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *ir.Node
	}{
		{"int", `42`, ir.FromInt(42)},
		{"negative int", `-42`, ir.FromInt(-42)},
		{"float", `1.5`, ir.FromFloat(1.5)},
		{"negative float", `-1.5`, ir.FromFloat(-1.5)},
		{"hex", `0x1F`, ir.FromInt(31)},
		{"hex lowercase digits", `0xff`, ir.FromInt(255)},
		{"negative hex", `-0x10`, ir.FromInt(-16)},
		{"exponent", `1.5e2`, ir.FromFloat(150.0)},
		{"uppercase exponent", `2E3`, ir.FromFloat(2000.0)},
		{"signed exponent", `25e-2`, ir.FromFloat(0.25)},
		{"true", `true`, ir.FromBool(true)},
		{"false", `false`, ir.FromBool(false)},
		{"null", `null`, ir.Null()},
		{"double quoted", `"hi"`, ir.FromString("hi")},
		{"single quoted", `'hi'`, ir.FromString("hi")},
		{"string escapes", `"a\tbA"`, ir.FromString("a\tbA")},
		{"empty array", `[]`, ir.EmptyArray()},
		{"empty object", `{}`, ir.EmptyObject()},
		{"array", `[1, "two", true, null]`, ir.FromSlice([]*ir.Node{
			ir.FromInt(1), ir.FromString("two"), ir.FromBool(true), ir.Null(),
		})},
		{"bare keys", `{a: 1, b: 2}`, obj("a", ir.FromInt(1), "b", ir.FromInt(2))},
		{"mixed quoting", `{a: 1, 'b': 2, "c": 3}`,
			obj("a", ir.FromInt(1), "b", ir.FromInt(2), "c", ir.FromInt(3))},
		{"nested", `{a: {b: [1, {c: null}]}}`,
			obj("a", obj("b", ir.FromSlice([]*ir.Node{
				ir.FromInt(1), obj("c", ir.Null()),
			})))},
		{"duplicate keys keep last", `{a: 1, a: 2}`, obj("a", ir.FromInt(2))},
		{"empty string key", `{"": 1}`, obj("", ir.FromInt(1))},
		{"trailing input ignored", `{a: 1} [2]`, obj("a", ir.FromInt(1))},
		{"no whitespace", `{a:1,b:[2,3]}`,
			obj("a", ir.FromInt(1), "b", ir.FromSlice([]*ir.Node{ir.FromInt(2), ir.FromInt(3)}))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseString(tt.in)
			if err != nil {
				t.Fatalf("ParseString(%q): %v", tt.in, err)
			}
			if !ir.Equal(got, tt.want) {
				t.Errorf("ParseString(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t \r\n"} {
		got, err := ParseString(in)
		if err != nil {
			t.Errorf("ParseString(%q): %v", in, err)
		}
		if got != nil {
			t.Errorf("ParseString(%q) = %v, want nil", in, got)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		msgs []string
	}{
		{"bare comma", `,`, []string{"Expected value."}},
		{"trailing comma in array", `[1,]`, []string{"Expected value."}},
		{"trailing comma in object", `{a: 1,}`,
			[]string{"Expected member name (string or identifier)."}},
		{"missing colon", `{a 1}`, []string{"Expected ':'"}},
		{"keyword member name", `{true: 1}`,
			[]string{"Expected member name (string or identifier)."}},
		{"missing array close", `[1, 2`, []string{"Expected ']'"}},
		{"missing object close", `{a: 1`, []string{"Expected '}'"}},
		{"stray token in array", `[1 2]`, []string{"Expected ']'"}},
		{"malformed number", `12q4`, []string{"Malformed number."}},
		{"uppercase hex marker", `0X1F`, []string{"Malformed number."}},
		{"empty hex", `0x`, []string{"Malformed number."}},
		{"minus without number", `-true`, []string{"Malformed number."}},
		{"integer overflow", `99999999999999999999`, []string{"Malformed number."}},
		{"two bad members", `{a: , b: }`,
			[]string{"Expected value.", "Expected value."}},
		{"bad element recovers", `[1, , 2, ]`,
			[]string{"Expected value.", "Expected value."}},
		{"bad value then bad name", `{a: !, true: 1}`,
			[]string{"Expected value.", "Expected member name (string or identifier)."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseString(tt.in)
			if err == nil {
				t.Fatalf("ParseString(%q) = %v, want error", tt.in, got)
			}
			var serr *SyntaxError
			if !errors.As(err, &serr) {
				t.Fatalf("err = %v, want *SyntaxError", err)
			}
			if len(serr.Issues) != len(tt.msgs) {
				t.Fatalf("got %d issues %q, want %d", len(serr.Issues), serr.Error(), len(tt.msgs))
			}
			for i, msg := range tt.msgs {
				if serr.Issues[i].Msg != msg {
					t.Errorf("issue %d = %q, want %q", i, serr.Issues[i].Msg, msg)
				}
			}
		})
	}
}

func TestParseErrorAggregation(t *testing.T) {
	_, err := ParseString(`{a: , b: }`)
	var serr *SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("err = %v, want *SyntaxError", err)
	}
	lines := strings.Split(serr.Error(), "\n")
	if len(lines) != 2 {
		t.Fatalf("Error() = %q, want two lines", serr.Error())
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "Expected value.") {
			t.Errorf("line %q does not start with the issue message", line)
		}
	}
}

func TestParseIssuePositions(t *testing.T) {
	_, err := ParseString("{\n  a: !\n}")
	var serr *SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("err = %v, want *SyntaxError", err)
	}
	if len(serr.Issues) == 0 {
		t.Fatal("no issues")
	}
	line, col := serr.Issues[0].Pos.LineCol()
	if line != 1 || col != 5 {
		t.Errorf("issue position = (%d, %d), want (1, 5)", line, col)
	}
}

func TestParseLexicalError(t *testing.T) {
	_, err := ParseString(`{a: "unterminated`)
	var serr *SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("err = %v, want *SyntaxError", err)
	}
	if len(serr.Issues) != 1 {
		t.Fatalf("got %d issues, want 1", len(serr.Issues))
	}
	if !strings.Contains(serr.Issues[0].Msg, "unterminated string") {
		t.Errorf("issue = %q, want unterminated string", serr.Issues[0].Msg)
	}
}

func TestParseRecoveryKeepsGoodMembers(t *testing.T) {
	got, err := ParseString(`{a: 1, b: , c: 2}`)
	if err == nil {
		t.Fatal("want error")
	}
	// the error wins, but recovery should have seen all issues exactly once
	var serr *SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("err = %v, want *SyntaxError", err)
	}
	if len(serr.Issues) != 1 {
		t.Errorf("issues = %q, want exactly one", serr.Error())
	}
	if got != nil {
		t.Errorf("node = %v, want nil on error", got)
	}
}
