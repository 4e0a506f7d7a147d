package parse

import (
	"fmt"
	"strings"

	"github.com/signadot/laxjson/token"
)

// Issue is one grammar violation found during a parse, with the position
// of the offending token.
type Issue struct {
	Pos *token.Pos
	Msg string
}

func (i *Issue) String() string {
	if i.Pos == nil {
		return i.Msg
	}
	return fmt.Sprintf("%s at %s", i.Msg, i.Pos)
}

// SyntaxError aggregates every issue found in one parse, in encounter
// order. The parser does not stop at the first violation, so a single
// error can report several.
type SyntaxError struct {
	Issues []Issue
}

func (e *SyntaxError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i := range e.Issues {
		msgs[i] = e.Issues[i].String()
	}
	return strings.Join(msgs, "\n")
}
