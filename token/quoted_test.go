package token

import "testing"

func TestQuote(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", `"hello"`},
		{"short escapes", "a\tb\nc", `"a\tb\nc"`},
		{"backspace form feed", "\b\f\r", `"\b\f\r"`},
		{"backslash and quote", `a\"b`, `"a\\\"b"`},
		{"nul", "a\x00b", `"a\0b"`},
		{"control", "a\x1fb", `"a\u001fb"`},
		{"delete", "a\x7fb", `"a\u007fb"`},
		{"single quote stays", "it's", `"it's"`},
		{"slash stays", "a/b", `"a/b"`},
		{"non-ascii", "café", `"caf\u00e9"`},
		{"astral pair", "a\U0001F600b", `"a\ud83d\ude00b"`},
		{"empty", "", `""`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quote(tt.in); got != tt.want {
				t.Errorf("Quote(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestQuoteRoundTrip(t *testing.T) {
	inputs := []string{
		"hello",
		"tabs\tand\nnewlines",
		"quotes \" and ' mixed",
		"nul \x00 byte",
		"unicode é ☃ \U0001F600",
		"",
	}
	for _, in := range inputs {
		q := Quote(in)
		if got := QuotedToString([]byte(q)); got != in {
			t.Errorf("QuotedToString(Quote(%q)) = %q", in, got)
		}
	}
}
