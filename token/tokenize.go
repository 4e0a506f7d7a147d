package token

// Tokenize converts one input into its flat token sequence. It carries no
// grammar state and is re-entrant per input. The only hard failures are
// string-literal problems (unterminated, bad escape, control character);
// everything else, malformed numbers included, is left for the parser to
// judge so that it can accumulate issues across the whole input.
func Tokenize(d []byte) ([]Token, error) {
	doc := &PosDoc{d: d}
	toks := make([]Token, 0, len(d)/4+1)
	i, n := 0, len(d)
	for i < n {
		c := d[i]
		switch {
		case c == '\n':
			doc.nl(i)
			i++
		case c == ' ' || c == '\t' || c == '\r':
			i++
		case c == '{':
			toks = append(toks, Token{Type: TLCurl, Pos: doc.Pos(i), Bytes: d[i : i+1]})
			i++
		case c == '}':
			toks = append(toks, Token{Type: TRCurl, Pos: doc.Pos(i), Bytes: d[i : i+1]})
			i++
		case c == '[':
			toks = append(toks, Token{Type: TLSquare, Pos: doc.Pos(i), Bytes: d[i : i+1]})
			i++
		case c == ']':
			toks = append(toks, Token{Type: TRSquare, Pos: doc.Pos(i), Bytes: d[i : i+1]})
			i++
		case c == ':':
			toks = append(toks, Token{Type: TColon, Pos: doc.Pos(i), Bytes: d[i : i+1]})
			i++
		case c == ',':
			toks = append(toks, Token{Type: TComma, Pos: doc.Pos(i), Bytes: d[i : i+1]})
			i++
		case c == '-':
			toks = append(toks, Token{Type: TMinus, Pos: doc.Pos(i), Bytes: d[i : i+1]})
			i++
		case c == '\'' || c == '"':
			end, err := scanQuoted(d[i:])
			if err != nil {
				return nil, NewTokenizeErr(err, doc.Pos(i))
			}
			toks = append(toks, Token{Type: TString, Pos: doc.Pos(i), Bytes: d[i : i+end]})
			i += end
		case asciiDigit(c):
			end := scanNumber(d[i:])
			toks = append(toks, Token{Type: TNumber, Pos: doc.Pos(i), Bytes: d[i : i+end]})
			i += end
		default:
			end := scanIdent(d[i:])
			tok := Token{Type: TIdent, Pos: doc.Pos(i), Bytes: d[i : i+end]}
			switch string(tok.Bytes) {
			case "true":
				tok.Type = TTrue
			case "false":
				tok.Type = TFalse
			case "null":
				tok.Type = TNull
			}
			toks = append(toks, tok)
			i += end
		}
	}
	return toks, nil
}

// scanIdent measures a bare-identifier run: everything up to whitespace, a
// delimiter, or a quote. Unquoted object keys and stray garbage both land
// here; the parser decides which is which.
func scanIdent(d []byte) int {
	i := 0
	for i < len(d) {
		switch d[i] {
		case ' ', '\t', '\r', '\n', '{', '}', '[', ']', ':', ',', '-', '\'', '"':
			return i
		}
		i++
	}
	return i
}
