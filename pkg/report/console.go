package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dd0wney/cluso-graphstats/pkg/analyzer"
)

// Console prints statistics the way an analyst reads them in a terminal.
// Styling degrades to plain text when out is not a color terminal.
type Console struct {
	out    io.Writer
	err    io.Writer
	styled bool

	title   lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
}

// NewConsole writes statistics to out and failures to errOut. With styled
// false no escape sequences are ever emitted.
func NewConsole(out, errOut io.Writer, styled bool) *Console {
	c := &Console{out: out, err: errOut, styled: styled}
	if !styled {
		return c
	}

	r := lipgloss.NewRenderer(out)
	c.title = r.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FFFF"))
	c.label = r.NewStyle().Foreground(lipgloss.Color("#888888"))
	c.value = r.NewStyle().Bold(true)
	c.success = r.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	c.failure = lipgloss.NewRenderer(errOut).NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
	return c
}

func (c *Console) paint(style lipgloss.Style, s string) string {
	if !c.styled {
		return s
	}
	return style.Render(s)
}

func (c *Console) num(v any) string {
	return c.paint(c.value, fmt.Sprint(v))
}

// Loaded prints the graph size after a successful load.
func (c *Console) Loaded(nodes, edges int) {
	fmt.Fprintf(c.out, "%s %s nodes and %s edges\n",
		c.paint(c.title, "Graph loaded with"), c.num(nodes), c.num(edges))
}

// Distribution prints one line per observed degree, ascending.
func (c *Console) Distribution(d analyzer.DegreeDistribution) {
	fmt.Fprintln(c.out, c.paint(c.title, "Degree Distribution:"))
	for _, degree := range d.Degrees() {
		fmt.Fprintf(c.out, "%s %s nodes\n", c.paint(c.label, fmt.Sprintf("Degree %d:", degree)), c.num(d[degree]))
	}
}

// Saved confirms a sink write.
func (c *Console) Saved(sink, target string) {
	if sink == "file" {
		fmt.Fprintln(c.out, c.paint(c.success, "Saved degree distribution to file."))
		return
	}
	fmt.Fprintln(c.out, c.paint(c.success, fmt.Sprintf("Saved degree distribution to %s (%s).", sink, target)))
}

// Failed reports an error on the error stream.
func (c *Console) Failed(what string, err error) {
	fmt.Fprintln(c.err, c.paint(c.failure, fmt.Sprintf("%s: %v", what, err)))
}

// Totals prints the scalar statistics.
func (c *Console) Totals(s analyzer.Summary) {
	fmt.Fprintf(c.out, "%s %s\n", c.paint(c.label, "Average node degree:"), c.num(fmt.Sprintf("%.2f", s.AverageDegree)))
	fmt.Fprintf(c.out, "The graph has %s connected components.\n", c.num(s.Components))
	fmt.Fprintf(c.out, "%s %s nodes\n", c.paint(c.label, "Largest component:"), c.num(s.LargestComponent))
	fmt.Fprintf(c.out, "%s %s (median %s)\n", c.paint(c.label, "Max degree:"), c.num(s.MaxDegree), c.num(fmt.Sprintf("%g", s.MedianDegree)))
}

// RenderConsole prints a complete summary with no sink lines.
func RenderConsole(w io.Writer, s analyzer.Summary, styled bool) {
	c := NewConsole(w, w, styled)
	c.Loaded(s.Nodes, s.Edges)
	c.Distribution(s.Distribution)
	c.Totals(s)
}
