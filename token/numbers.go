package token

// scanNumber measures the maximal numeric-literal run starting at d[0],
// which must be an ascii digit. The run is deliberately permissive: it
// swallows hex digits, the hex marker x, exponent markers, and a sign
// directly following an exponent marker. Classification and value parsing
// happen in the parser, so a malformed run surfaces there as a syntax
// issue rather than aborting tokenization.
func scanNumber(d []byte) int {
	i := 0
	for i < len(d) {
		c := d[i]
		switch {
		case asciiDigit(c) || asciiAlpha(c) || c == '.' || c == '_':
			i++
		case (c == '+' || c == '-') && i > 0 && (d[i-1] == 'e' || d[i-1] == 'E'):
			i++
		default:
			return i
		}
	}
	return i
}

func asciiDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func asciiAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
