package edgelist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/snappy"
	"golang.org/x/exp/mmap"
)

// Compression selects how an edge-list file is decoded.
type Compression string

const (
	// CompressionAuto picks snappy for .snappy and .sz files.
	CompressionAuto   Compression = "auto"
	CompressionNone   Compression = "none"
	CompressionSnappy Compression = "snappy"
)

// ErrMmapCompressed is returned when memory mapping is combined with snappy.
var ErrMmapCompressed = errors.New("edgelist: mmap cannot be combined with snappy input")

// OpenOptions controls how Open reads the file.
type OpenOptions struct {
	// Mmap reads the file through a read-only memory mapping.
	Mmap        bool
	Compression Compression
}

// IsSnappyPath reports whether path carries a snappy framing suffix.
func IsSnappyPath(path string) bool {
	return strings.HasSuffix(path, ".snappy") || strings.HasSuffix(path, ".sz")
}

func (o OpenOptions) useSnappy(path string) bool {
	switch o.Compression {
	case CompressionSnappy:
		return true
	case CompressionNone:
		return false
	default:
		return IsSnappyPath(path)
	}
}

// Open returns a reader over the edge list at path. The caller must Close it.
func Open(path string, opts OpenOptions) (io.ReadCloser, error) {
	snappyInput := opts.useSnappy(path)
	if opts.Mmap && snappyInput {
		return nil, ErrMmapCompressed
	}

	if opts.Mmap {
		ra, err := mmap.Open(path)
		if err != nil {
			return nil, err
		}
		return &mappedReader{
			SectionReader: io.NewSectionReader(ra, 0, int64(ra.Len())),
			ra:            ra,
		}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if snappyInput {
		return &snappyReader{Reader: snappy.NewReader(bufio.NewReader(f)), file: f}, nil
	}
	return f, nil
}

type mappedReader struct {
	*io.SectionReader
	ra *mmap.ReaderAt
}

func (m *mappedReader) Close() error {
	return m.ra.Close()
}

type snappyReader struct {
	*snappy.Reader
	file *os.File
}

func (s *snappyReader) Close() error {
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("close snappy source: %w", err)
	}
	return nil
}
