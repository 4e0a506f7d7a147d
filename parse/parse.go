package parse

import (
	"errors"

	"github.com/signadot/laxjson/ir"
	"github.com/signadot/laxjson/token"
)

// Parse parses d and returns the first complete value found. Trailing
// input after that value is not inspected. Empty or whitespace-only input
// yields (nil, nil). Any grammar violations are collected and returned
// together as a *SyntaxError; the returned node is nil in that case.
func Parse(d []byte) (*ir.Node, error) {
	toks, err := token.Tokenize(d)
	if err != nil {
		var terr *token.TokenizeErr
		if errors.As(err, &terr) {
			return nil, &SyntaxError{Issues: []Issue{{Pos: &terr.Pos, Msg: terr.Err.Error()}}}
		}
		return nil, err
	}
	if len(toks) == 0 {
		return nil, nil
	}
	last := &toks[len(toks)-1]
	p := &parser{
		toks: toks,
		end:  &token.Pos{I: last.Pos.I + len(last.Bytes), D: last.Pos.D},
	}
	v, _ := p.value()
	if len(p.issues) > 0 {
		return nil, &SyntaxError{Issues: p.issues}
	}
	return v, nil
}

// ParseString is Parse on a string input.
func ParseString(s string) (*ir.Node, error) {
	return Parse([]byte(s))
}

type parser struct {
	toks   []token.Token
	i      int
	issues []Issue

	// end is the position just past the last token, used for issues
	// reported at end of input.
	end *token.Pos
}

func (p *parser) cur() *token.Token {
	if p.i < len(p.toks) {
		return &p.toks[p.i]
	}
	return nil
}

func (p *parser) eof() bool {
	return p.i >= len(p.toks)
}

func (p *parser) pos() *token.Pos {
	if t := p.cur(); t != nil {
		return t.Pos
	}
	return p.end
}

func (p *parser) match(tt token.TokenType) bool {
	if p.i < len(p.toks) && p.toks[p.i].Type == tt {
		p.i++
		return true
	}
	return false
}

func (p *parser) report(pos *token.Pos, msg string) {
	p.issues = append(p.issues, Issue{Pos: pos, Msg: msg})
}

// sync advances past tokens up to, but not including, the next comma or
// closing delimiter at the current nesting depth, so that parsing can
// resume at the following element or member after a violation.
func (p *parser) sync() {
	depth := 0
	for p.i < len(p.toks) {
		switch p.toks[p.i].Type {
		case token.TLCurl, token.TLSquare:
			depth++
		case token.TRCurl, token.TRSquare:
			if depth == 0 {
				return
			}
			depth--
		case token.TComma:
			if depth == 0 {
				return
			}
		}
		p.i++
	}
}

func (p *parser) value() (*ir.Node, bool) {
	t := p.cur()
	if t == nil {
		p.report(p.end, "Expected value.")
		return nil, false
	}
	switch t.Type {
	case token.TLCurl:
		p.i++
		return p.object(), true
	case token.TLSquare:
		p.i++
		return p.array(), true
	case token.TString:
		p.i++
		return ir.FromString(t.Text()), true
	case token.TTrue:
		p.i++
		return ir.FromBool(true), true
	case token.TFalse:
		p.i++
		return ir.FromBool(false), true
	case token.TNull:
		p.i++
		return ir.Null(), true
	case token.TNumber:
		p.i++
		n, err := parseNumber(t.Bytes, false)
		if err != nil {
			p.report(t.Pos, "Malformed number.")
			return nil, false
		}
		return n, true
	case token.TMinus:
		p.i++
		nt := p.cur()
		if nt == nil || nt.Type != token.TNumber {
			p.report(t.Pos, "Malformed number.")
			return nil, false
		}
		p.i++
		n, err := parseNumber(nt.Bytes, true)
		if err != nil {
			p.report(nt.Pos, "Malformed number.")
			return nil, false
		}
		return n, true
	default:
		p.report(t.Pos, "Expected value.")
		return nil, false
	}
}

// array parses an array body, the opening bracket already consumed.
func (p *parser) array() *ir.Node {
	res := ir.EmptyArray()
	if p.match(token.TRSquare) {
		return res
	}
	for {
		v, ok := p.value()
		if ok {
			res.Values = append(res.Values, v)
		} else {
			p.sync()
		}
		switch {
		case p.match(token.TComma):
			continue
		case p.match(token.TRSquare):
			return res
		default:
			p.report(p.pos(), "Expected ']'")
			if p.eof() {
				return res
			}
			p.sync()
			if p.match(token.TComma) {
				continue
			}
			p.match(token.TRSquare)
			return res
		}
	}
}

// object parses an object body, the opening brace already consumed.
func (p *parser) object() *ir.Node {
	res := ir.EmptyObject()
	if p.match(token.TRCurl) {
		return res
	}
	for {
		key, ok := p.memberName()
		if !ok {
			p.sync()
		} else if !p.match(token.TColon) {
			p.report(p.pos(), "Expected ':'")
			p.sync()
		} else if v, vok := p.value(); vok {
			setMember(res, key, v)
		} else {
			p.sync()
		}
		switch {
		case p.match(token.TComma):
			continue
		case p.match(token.TRCurl):
			return res
		default:
			p.report(p.pos(), "Expected '}'")
			if p.eof() {
				return res
			}
			p.sync()
			if p.match(token.TComma) {
				continue
			}
			p.match(token.TRCurl)
			return res
		}
	}
}

// memberName accepts a quoted string or a bare identifier. Keywords are
// not valid member names.
func (p *parser) memberName() (string, bool) {
	t := p.cur()
	if t != nil && (t.Type == token.TString || t.Type == token.TIdent) {
		p.i++
		return t.Text(), true
	}
	p.report(p.pos(), "Expected member name (string or identifier).")
	return "", false
}

// setMember replaces an existing member in place or appends a new one.
// Unlike ir's SetMember it admits empty keys, which are valid JSON.
func setMember(obj *ir.Node, key string, val *ir.Node) {
	for i, k := range obj.Keys {
		if k == key {
			obj.Values[i] = val
			return
		}
	}
	obj.Keys = append(obj.Keys, key)
	obj.Values = append(obj.Values, val)
}
