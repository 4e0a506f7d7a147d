package token

import (
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// scanQuoted validates a quoted string literal starting at d[0], which must
// be the opening quote (single or double). It returns the length of the
// literal including both delimiters. Escapes are validated here and decoded
// later by QuotedToString.
func scanQuoted(d []byte) (int, error) {
	quoteChar := rune(d[0])
	escaped := false
	i := 1
	n := len(d)
	for i < n {
		r, sz := utf8.DecodeRune(d[i:])
		i += sz
		switch r {
		case utf8.RuneError:
			return i, ErrBadUTF8
		case quoteChar:
			if !escaped {
				return i, nil
			}
			escaped = false
		case 'u':
			if escaped {
				if i+4 > n {
					return i, ErrUnterminated
				}
				if !allHex(d[i : i+4]) {
					return i, ErrBadUnicode
				}
			}
			escaped = false
		case '/', '0', 'b', 'f', 'n', 'r', 't', '\'', '"':
			escaped = false
		case '\\':
			escaped = !escaped
		default:
			if unicode.IsControl(r) {
				return i, ErrUnicodeControl
			}
			if escaped {
				return i, ErrBadEscape
			}
		}
	}
	return i, ErrUnterminated
}

func hex4(d []byte) (rune, bool) {
	if len(d) < 4 {
		return 0, false
	}
	dst := []byte{0, 0}
	if _, err := hex.Decode(dst, d[:4]); err != nil {
		return 0, false
	}
	return rune(dst[0])<<8 | rune(dst[1]), true
}

func allHex(d []byte) bool {
	for _, c := range d {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// Quote renders s as a double-quoted literal, the inverse of
// QuotedToString. Escapes used: the two-character forms \b \t \n \f \r \\
// \" plus the nonstandard \0 for NUL, and \u with four lowercase hex
// digits for every other rune below 0x20 or at/above 0x7F, astral runes as
// a surrogate pair.
func Quote(s string) string {
	b := &strings.Builder{}
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case 0:
			b.WriteString(`\0`)
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			switch {
			case r >= 0x20 && r < 0x7F:
				b.WriteRune(r)
			case r > 0xFFFF:
				r1, r2 := utf16.EncodeRune(r)
				fmt.Fprintf(b, `\u%04x\u%04x`, r1, r2)
			default:
				fmt.Fprintf(b, `\u%04x`, r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// QuotedToString decodes a quoted string literal, delimiters included, that
// scanQuoted has already validated.
func QuotedToString(d []byte) string {
	qc := rune(d[0])
	b := &strings.Builder{}
	i := 1
	esc := false
	for i < len(d) {
		r, sz := utf8.DecodeRune(d[i:])
		i += sz
		switch r {
		case '\\':
			if esc {
				b.WriteByte('\\')
			}
			esc = !esc
		case qc:
			if !esc {
				return b.String()
			}
			b.WriteRune(qc)
			esc = false
		default:
			if !esc {
				b.WriteRune(r)
				continue
			}
			esc = false
			switch r {
			case 't':
				b.WriteByte('\t')
			case 'n':
				b.WriteByte('\n')
			case 'f':
				b.WriteByte('\f')
			case 'r':
				b.WriteByte('\r')
			case 'b':
				b.WriteByte('\b')
			case '/':
				b.WriteByte('/')
			case '0':
				b.WriteByte(0)
			case '\'', '"':
				b.WriteRune(r)
			case 'u':
				r1, ok := hex4(d[i:])
				if !ok {
					b.WriteRune(utf8.RuneError)
					return b.String()
				}
				i += 4
				if utf16.IsSurrogate(r1) && i+6 <= len(d) && d[i] == '\\' && d[i+1] == 'u' {
					if r2, ok := hex4(d[i+2:]); ok {
						if cp := utf16.DecodeRune(r1, r2); cp != utf8.RuneError {
							b.WriteRune(cp)
							i += 6
							continue
						}
					}
				}
				b.WriteRune(r1)
			}
		}
	}
	return b.String()
}
