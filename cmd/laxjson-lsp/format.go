package main

import (
	"bytes"
	"context"
	"strings"

	"github.com/signadot/laxjson/encode"

	"go.lsp.dev/protocol"
)

func (s *Server) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.node == nil {
		return nil, nil
	}

	unit := "\t"
	if params.Options.InsertSpaces {
		unit = strings.Repeat(" ", int(params.Options.TabSize))
	}
	var buf bytes.Buffer
	if err := encode.Encode(doc.node, &buf, encode.EncodeIndent(unit)); err != nil {
		return nil, nil
	}
	buf.WriteByte('\n')
	formatted := buf.String()
	if formatted == doc.content {
		return []protocol.TextEdit{}, nil
	}

	lines := strings.Count(doc.content, "\n")
	if len(doc.content) > 0 && doc.content[len(doc.content)-1] != '\n' {
		lines++
	}
	// One edit replacing the whole document.
	return []protocol.TextEdit{
		{
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End:   protocol.Position{Line: uint32(lines), Character: 0},
			},
			NewText: formatted,
		},
	}, nil
}
