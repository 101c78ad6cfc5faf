package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dd0wney/cluso-graphstats/pkg/analyzer"
)

func TestWriteDistribution(t *testing.T) {
	var buf bytes.Buffer
	d := analyzer.DegreeDistribution{2: 2, 1: 2, 10: 1}
	if err := WriteDistribution(&buf, d); err != nil {
		t.Fatalf("WriteDistribution() error = %v", err)
	}

	want := "degree,count\n1,2\n2,2\n10,1\n"
	if buf.String() != want {
		t.Errorf("WriteDistribution() = %q, want %q", buf.String(), want)
	}
}

func TestWriteEmptyDistribution(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDistribution(&buf, analyzer.DegreeDistribution{}); err != nil {
		t.Fatalf("WriteDistribution() error = %v", err)
	}
	if buf.String() != "degree,count\n" {
		t.Errorf("WriteDistribution() = %q", buf.String())
	}
}

func TestRoundTrip(t *testing.T) {
	a, err := analyzer.LoadReader(strings.NewReader("h\n0,1\n1,2\n2,3\n3,3\n7,8\n"))
	if err != nil {
		t.Fatalf("LoadReader() error = %v", err)
	}
	d := a.DegreeDistribution()

	var buf bytes.Buffer
	if err := WriteDistribution(&buf, d); err != nil {
		t.Fatalf("WriteDistribution() error = %v", err)
	}
	got, err := ReadDistribution(&buf)
	if err != nil {
		t.Fatalf("ReadDistribution() error = %v", err)
	}
	if !got.Equal(d) {
		t.Errorf("round trip = %v, want %v", got, d)
	}
}

func TestReadDistributionRejectsMalformed(t *testing.T) {
	inputs := map[string]string{
		"empty":        "",
		"wrong header": "deg,cnt\n1,2\n",
		"three fields": "degree,count\n1,2,3\n",
		"negative":     "degree,count\n-1,2\n",
		"zero count":   "degree,count\n1,0\n",
		"non numeric":  "degree,count\nx,2\n",
		"duplicate":    "degree,count\n1,2\n1,3\n",
	}
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			if _, err := ReadDistribution(strings.NewReader(input)); !errors.Is(err, ErrBadReport) {
				t.Errorf("ReadDistribution(%q) error = %v, want ErrBadReport", input, err)
			}
		})
	}
}

func TestSaveAndLoadDistribution(t *testing.T) {
	d := analyzer.DegreeDistribution{0: 3, 1: 4, 5: 1}
	dir := t.TempDir()

	for _, name := range []string{"degree_distribution.csv", "degree_distribution.csv.snappy"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := SaveDistribution(path, d); err != nil {
				t.Fatalf("SaveDistribution() error = %v", err)
			}
			got, err := LoadDistribution(path)
			if err != nil {
				t.Fatalf("LoadDistribution() error = %v", err)
			}
			if !got.Equal(d) {
				t.Errorf("LoadDistribution() = %v, want %v", got, d)
			}
		})
	}

	raw, err := os.ReadFile(filepath.Join(dir, "degree_distribution.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(raw), "degree,count\n") {
		t.Errorf("plain report starts with %q", raw)
	}
}

func TestFileSinkUnwritable(t *testing.T) {
	sink := FileSink{Path: filepath.Join(t.TempDir(), "missing-dir", "out.csv")}
	err := sink.Write(t.Context(), "run", analyzer.DegreeDistribution{1: 1})

	if !errors.Is(err, ErrSink) || !errors.Is(err, analyzer.ErrIO) {
		t.Fatalf("err = %v, want ErrSink and ErrIO", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v does not wrap the os error", err)
	}
	var se *SinkError
	if !errors.As(err, &se) || se.Sink != "file" {
		t.Errorf("SinkError = %+v", se)
	}
}
