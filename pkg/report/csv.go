// Package report renders analyzer results: a two-column degree,count file,
// a console summary, and uploads of the same file to S3 or Postgres.
package report

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dd0wney/cluso-graphstats/pkg/analyzer"
	"github.com/dd0wney/cluso-graphstats/pkg/edgelist"
	"github.com/golang/snappy"
)

// Header is the first line of every distribution report.
var Header = []string{"degree", "count"}

// WriteDistribution writes the header and one degree,count row per observed
// degree, in ascending degree order.
func WriteDistribution(w io.Writer, d analyzer.DegreeDistribution) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, degree := range d.Degrees() {
		if err := cw.Write([]string{strconv.Itoa(degree), strconv.Itoa(d[degree])}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadDistribution parses a report written by WriteDistribution.
func ReadDistribution(r io.Reader) (analyzer.DegreeDistribution, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: missing header", ErrBadReport)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadReport, err)
	}
	if header[0] != Header[0] || header[1] != Header[1] {
		return nil, fmt.Errorf("%w: unexpected header %q", ErrBadReport, header)
	}

	d := make(analyzer.DegreeDistribution)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return d, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadReport, err)
		}

		degree, err := strconv.Atoi(record[0])
		if err != nil || degree < 0 {
			return nil, fmt.Errorf("%w: bad degree %q", ErrBadReport, record[0])
		}
		count, err := strconv.Atoi(record[1])
		if err != nil || count < 1 {
			return nil, fmt.Errorf("%w: bad count %q", ErrBadReport, record[1])
		}
		if _, dup := d[degree]; dup {
			return nil, fmt.Errorf("%w: duplicate degree %d", ErrBadReport, degree)
		}
		d[degree] = count
	}
}

// SaveDistribution writes the report to path, snappy-framed when the path
// ends in .snappy or .sz.
func SaveDistribution(path string, d analyzer.DegreeDistribution) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	if edgelist.IsSnappyPath(path) {
		sw := snappy.NewBufferedWriter(f)
		if err := WriteDistribution(sw, d); err != nil {
			return err
		}
		return sw.Close()
	}

	bw := bufio.NewWriter(f)
	if err := WriteDistribution(bw, d); err != nil {
		return err
	}
	return bw.Flush()
}

// LoadDistribution reads a report from path, undoing snappy framing when
// the suffix says so.
func LoadDistribution(path string) (analyzer.DegreeDistribution, error) {
	rc, err := edgelist.Open(path, edgelist.OpenOptions{Compression: edgelist.CompressionAuto})
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ReadDistribution(rc)
}

// Sink receives a finished distribution.
type Sink interface {
	Name() string
	Target(runID string) string
	Write(ctx context.Context, runID string, d analyzer.DegreeDistribution) error
}

// FileSink saves the report to a local path.
type FileSink struct {
	Path string
}

func (s FileSink) Name() string { return "file" }

func (s FileSink) Target(string) string { return s.Path }

func (s FileSink) Write(_ context.Context, _ string, d analyzer.DegreeDistribution) error {
	if err := SaveDistribution(s.Path, d); err != nil {
		return &SinkError{Sink: s.Name(), Target: s.Path, Cause: err}
	}
	return nil
}
