package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dd0wney/cluso-graphstats/pkg/analyzer"
)

func chainSummary(t *testing.T) analyzer.Summary {
	t.Helper()
	a, err := analyzer.LoadReader(strings.NewReader("h\n0,1\n1,2\n2,3\n"))
	if err != nil {
		t.Fatalf("LoadReader() error = %v", err)
	}
	return a.Summary()
}

func TestRenderConsolePlain(t *testing.T) {
	var buf bytes.Buffer
	RenderConsole(&buf, chainSummary(t), false)

	want := strings.Join([]string{
		"Graph loaded with 4 nodes and 3 edges",
		"Degree Distribution:",
		"Degree 1: 2 nodes",
		"Degree 2: 2 nodes",
		"Average node degree: 1.50",
		"The graph has 1 connected components.",
		"Largest component: 4 nodes",
		"Max degree: 2 (median ",
	}, "\n")
	if !strings.HasPrefix(buf.String(), want) {
		t.Errorf("RenderConsole() =\n%s\nwant prefix\n%s", buf.String(), want)
	}
}

func TestRenderConsoleStyledKeepsContent(t *testing.T) {
	var buf bytes.Buffer
	RenderConsole(&buf, chainSummary(t), true)

	for _, want := range []string{"Graph loaded with", "Degree 2:", "1.50", "connected components."} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("styled output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestConsoleSinkLines(t *testing.T) {
	var out, errOut bytes.Buffer
	c := NewConsole(&out, &errOut, false)

	c.Saved("file", "degree_distribution.csv")
	c.Saved("s3", "s3://bucket/run/degree_distribution.csv")
	c.Failed("Failed to save degree distribution", errors.New("permission denied"))

	wantOut := "Saved degree distribution to file.\n" +
		"Saved degree distribution to s3 (s3://bucket/run/degree_distribution.csv).\n"
	if out.String() != wantOut {
		t.Errorf("stdout = %q, want %q", out.String(), wantOut)
	}
	if errOut.String() != "Failed to save degree distribution: permission denied\n" {
		t.Errorf("stderr = %q", errOut.String())
	}
}
