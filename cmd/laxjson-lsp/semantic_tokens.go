package main

import (
	"context"

	"github.com/signadot/laxjson/token"

	"go.lsp.dev/protocol"
)

// The legend advertised in Initialize. Indexes into this slice are the
// token type values in the encoded data.
var semanticTokenTypes = []protocol.SemanticTokenTypes{
	protocol.SemanticTokenProperty,
	protocol.SemanticTokenString,
	protocol.SemanticTokenNumber,
	protocol.SemanticTokenKeyword,
	protocol.SemanticTokenOperator,
}

const (
	semProperty = uint32(iota)
	semString
	semNumber
	semKeyword
	semOperator
)

// collectSemanticTokens classifies the raw lexer token stream. A string
// or identifier is a property when the next token is a colon, a plain
// string otherwise; keywords and numbers map directly; delimiters are
// operators. Lexically broken documents yield no tokens at all, which
// keeps highlighting stable while the user types inside a string.
func collectSemanticTokens(content string, fromLine, toLine int) []uint32 {
	toks, err := token.Tokenize([]byte(content))
	if err != nil {
		return []uint32{}
	}
	data := []uint32{}
	prevLine, prevCol := 0, 0
	for i := range toks {
		t := &toks[i]
		var semType uint32
		switch t.Type {
		case token.TString, token.TIdent:
			if i+1 < len(toks) && toks[i+1].Type == token.TColon {
				semType = semProperty
			} else {
				semType = semString
			}
		case token.TNumber:
			semType = semNumber
		case token.TTrue, token.TFalse, token.TNull:
			semType = semKeyword
		default:
			semType = semOperator
		}
		line, col := t.Pos.LineCol()
		if line < fromLine || (toLine >= 0 && line > toLine) {
			continue
		}
		deltaLine := uint32(line - prevLine)
		deltaCol := uint32(col)
		if deltaLine == 0 {
			deltaCol = uint32(col - prevCol)
		}
		data = append(data, deltaLine, deltaCol, uint32(len(t.Bytes)), semType, 0)
		prevLine, prevCol = line, col
	}
	return data
}

func (s *Server) SemanticTokensFull(ctx context.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	return &protocol.SemanticTokens{
		Data: collectSemanticTokens(doc.content, 0, -1),
	}, nil
}

func (s *Server) SemanticTokensRange(ctx context.Context, params *protocol.SemanticTokensRangeParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	return &protocol.SemanticTokens{
		Data: collectSemanticTokens(doc.content, int(params.Range.Start.Line), int(params.Range.End.Line)),
	}, nil
}
