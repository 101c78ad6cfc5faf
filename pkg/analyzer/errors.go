package analyzer

import (
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-graphstats/pkg/edgelist"
)

var (
	// ErrIO matches load failures caused by opening or reading the input.
	ErrIO = errors.New("graph input unreadable")
	// ErrFormat matches load failures caused by a non-integer identifier.
	ErrFormat = edgelist.ErrFormat
)

// Failure kinds, used as metric labels.
const (
	KindIO     = "io"
	KindFormat = "format"
)

// LoadError describes why a graph could not be loaded. No partial graph is
// ever returned alongside it.
type LoadError struct {
	Op    string // "open" or "read"
	Path  string // empty when loading from a reader
	Cause error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("load graph: %s %s: %v", e.Op, e.Path, e.Cause)
	}
	return fmt.Sprintf("load graph: %s: %v", e.Op, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Is makes errors.Is(err, ErrIO) true for every failure that is not a
// format failure.
func (e *LoadError) Is(target error) bool {
	return target == ErrIO && !errors.Is(e.Cause, edgelist.ErrFormat)
}

// Kind returns KindFormat or KindIO.
func (e *LoadError) Kind() string {
	if errors.Is(e.Cause, edgelist.ErrFormat) {
		return KindFormat
	}
	return KindIO
}
