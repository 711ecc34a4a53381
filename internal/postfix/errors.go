package postfix

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrMalformedExpression is matched by every error caused by a badly formed
// regular expression.
var ErrMalformedExpression = errors.New("malformed expression")

// MalformedExpressionError reports where and why an expression was rejected.
type MalformedExpressionError struct {
	Pos    int // byte offset, -1 when the whole expression is at fault
	Reason string
}

func (e *MalformedExpressionError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("%s: %s", ErrMalformedExpression, e.Reason)
	}
	return fmt.Sprintf("%s at offset %d: %s", ErrMalformedExpression, e.Pos, e.Reason)
}

func (e *MalformedExpressionError) Unwrap() error { return ErrMalformedExpression }

func malformed(pos int, format string, args ...interface{}) error {
	return &MalformedExpressionError{Pos: pos, Reason: fmt.Sprintf(format, args...)}
}

// Malformed builds a MalformedExpressionError for callers that evaluate
// postfix output.
func Malformed(pos int, format string, args ...interface{}) error {
	return malformed(pos, format, args...)
}
