// Package edgelist reads two-column, comma-delimited edge lists.
//
// The first line is a header and is discarded without inspection. Rows that
// do not split into exactly two fields are skipped. A two-field row whose
// values are not non-negative integers fails the read with a *FormatError.
package edgelist

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
)

// Delimiter separates the two identifiers on a row.
const Delimiter = ","

// MaxLineBytes bounds a single row; longer rows fail with bufio.ErrTooLong.
const MaxLineBytes = 1 << 20

// Pair is one undirected edge between two external node identifiers.
type Pair struct {
	Source uint64
	Target uint64
}

// Stats counts what the parser saw. Lines includes the header.
type Stats struct {
	Lines   int
	Skipped int
	Pairs   int
}

// ParseLine parses one data row. ok is false when the row does not have
// exactly two fields; that is not an error.
func ParseLine(line string) (p Pair, ok bool, err error) {
	fields := strings.Split(line, Delimiter)
	if len(fields) != 2 {
		return Pair{}, false, nil
	}

	src, err := parseID(fields[0])
	if err != nil {
		return Pair{}, false, &FormatError{Column: 1, Value: fields[0], Cause: err}
	}
	dst, err := parseID(fields[1])
	if err != nil {
		return Pair{}, false, &FormatError{Column: 2, Value: fields[1], Cause: err}
	}
	return Pair{Source: src, Target: dst}, true, nil
}

// parseID accepts an optional single leading '+', nothing else.
func parseID(s string) (uint64, error) {
	digits := s
	if strings.HasPrefix(digits, "+") {
		digits = digits[1:]
	}
	if digits == "" || digits[0] == '+' {
		return 0, &strconv.NumError{Func: "ParseUint", Num: s, Err: strconv.ErrSyntax}
	}
	return strconv.ParseUint(digits, 10, 64)
}

// Parser yields pairs from a reader, bufio.Scanner style:
//
//	p := edgelist.NewParser(r)
//	for p.Scan() {
//		use(p.Pair())
//	}
//	if err := p.Err(); err != nil { ... }
type Parser struct {
	scanner *bufio.Scanner
	pair    Pair
	stats   Stats
	err     error
}

// NewParser returns a parser reading from r.
func NewParser(r io.Reader) *Parser {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)
	return &Parser{scanner: s}
}

// Scan advances to the next valid pair. It returns false at end of input or
// on the first error.
func (p *Parser) Scan() bool {
	if p.err != nil {
		return false
	}
	for p.scanner.Scan() {
		p.stats.Lines++
		if p.stats.Lines == 1 {
			continue
		}

		pair, ok, err := ParseLine(p.scanner.Text())
		if err != nil {
			var fe *FormatError
			if errors.As(err, &fe) {
				fe.Line = p.stats.Lines
			}
			p.err = err
			return false
		}
		if !ok {
			p.stats.Skipped++
			continue
		}

		p.pair = pair
		p.stats.Pairs++
		return true
	}
	p.err = p.scanner.Err()
	return false
}

// Pair returns the pair produced by the last successful Scan.
func (p *Parser) Pair() Pair {
	return p.pair
}

// Err returns the first error encountered, or nil at clean end of input.
func (p *Parser) Err() error {
	return p.err
}

// Stats returns the counters accumulated so far.
func (p *Parser) Stats() Stats {
	return p.stats
}

// ReadAll parses every pair from r. On error no pairs are returned.
func ReadAll(r io.Reader) ([]Pair, Stats, error) {
	p := NewParser(r)
	var pairs []Pair
	for p.Scan() {
		pairs = append(pairs, p.Pair())
	}
	if err := p.Err(); err != nil {
		return nil, p.Stats(), err
	}
	return pairs, p.Stats(), nil
}
