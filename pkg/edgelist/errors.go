package edgelist

import (
	"errors"
	"fmt"
)

// ErrFormat is matched by every FormatError.
var ErrFormat = errors.New("edgelist: invalid node identifier")

// FormatError reports a two-field row whose value is not a non-negative
// base-10 integer. It aborts the whole load.
type FormatError struct {
	Line   int    // 1-based line number, header included
	Column int    // 1 for source, 2 for target
	Value  string // raw field text
	Cause  error  // strconv error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("edgelist: line %d column %d: invalid node identifier %q: %v",
		e.Line, e.Column, e.Value, e.Cause)
}

func (e *FormatError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}
