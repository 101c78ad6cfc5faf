package report

import (
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-graphstats/pkg/analyzer"
)

var (
	// ErrSink matches every SinkError.
	ErrSink = errors.New("report sink failed")
	// ErrBadReport is returned by ReadDistribution for malformed input.
	ErrBadReport = errors.New("malformed degree distribution report")
)

// SinkError reports a failed write to one sink. It also matches
// analyzer.ErrIO: every sink is an output device.
type SinkError struct {
	Sink   string // "file", "s3", "postgres"
	Target string // path, object key or table
	Cause  error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("%s sink %s: %v", e.Sink, e.Target, e.Cause)
}

func (e *SinkError) Unwrap() error {
	return e.Cause
}

func (e *SinkError) Is(target error) bool {
	return target == ErrSink || target == analyzer.ErrIO
}
