package ir

import (
	"errors"
	"fmt"
)

// ErrOp is the sentinel wrapped by every *OpError, so callers can test for
// the whole class with errors.Is.
var ErrOp = errors.New("operation not supported")

// OpError reports a mutation invoked on a node variant that does not
// support it, such as Push on a string or SetMember on null.
type OpError struct {
	Op   string
	Type Type
}

func (e *OpError) Error() string {
	return fmt.Sprintf("cannot %s on %s node", e.Op, e.Type)
}

func (e *OpError) Unwrap() error {
	return ErrOp
}

func opErr(op string, t Type) *OpError {
	return &OpError{Op: op, Type: t}
}
