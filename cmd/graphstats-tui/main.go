package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dd0wney/cluso-graphstats/pkg/analyzer"
	"github.com/dd0wney/cluso-graphstats/pkg/config"
	"github.com/dd0wney/cluso-graphstats/pkg/edgelist"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF00FF")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type view int

const (
	overviewView view = iota
	distributionView
	componentsView
	viewCount
)

var tabNames = []string{"Overview", "Distribution", "Components"}

// maxComponentRows caps the components table; the tail is all singletons
// on most real graphs.
const maxComponentRows = 500

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev view"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Up, k.Down, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab},
		{k.Up, k.Down},
		{k.Quit},
	}
}

type loadedMsg struct {
	summary    analyzer.Summary
	components []*analyzer.Component
}

type loadFailedMsg struct{ err error }

type model struct {
	path        string
	open        edgelist.OpenOptions
	loaded      bool
	err         error
	summary     analyzer.Summary
	currentView view
	distTable   table.Model
	compTable   table.Model
	help        help.Model
	keys        keyMap
	width       int
}

func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#FF00FF")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func initialModel(path string, open edgelist.OpenOptions) model {
	return model{
		path: path,
		open: open,
		distTable: newTable([]table.Column{
			{Title: "Degree", Width: 10},
			{Title: "Nodes", Width: 12},
			{Title: "Share", Width: 10},
		}),
		compTable: newTable([]table.Column{
			{Title: "Component", Width: 10},
			{Title: "Size", Width: 10},
			{Title: "Sample nodes", Width: 40},
		}),
		help: help.New(),
		keys: keys,
	}
}

func loadCmd(path string, open edgelist.OpenOptions) tea.Cmd {
	return func() tea.Msg {
		a, err := analyzer.Load(path, analyzer.WithOpenOptions(open))
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return loadedMsg{summary: a.Summary(), components: a.Components()}
	}
}

func (m model) Init() tea.Cmd {
	return loadCmd(m.path, m.open)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case loadedMsg:
		m.loaded = true
		m.summary = msg.summary
		m.distTable.SetRows(distributionRows(msg.summary))
		m.compTable.SetRows(componentRows(msg.components))
		return m, nil

	case loadFailedMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.currentView = (m.currentView + 1) % viewCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.currentView = (m.currentView + viewCount - 1) % viewCount
			return m, nil
		}
	}

	// Update focused component
	switch m.currentView {
	case distributionView:
		m.distTable, cmd = m.distTable.Update(msg)
	case componentsView:
		m.compTable, cmd = m.compTable.Update(msg)
	}
	return m, cmd
}

func distributionRows(s analyzer.Summary) []table.Row {
	degrees := s.Distribution.Degrees()
	rows := make([]table.Row, 0, len(degrees))
	for _, degree := range degrees {
		count := s.Distribution[degree]
		share := 0.0
		if s.Nodes > 0 {
			share = 100 * float64(count) / float64(s.Nodes)
		}
		rows = append(rows, table.Row{
			strconv.Itoa(degree),
			strconv.Itoa(count),
			fmt.Sprintf("%.2f%%", share),
		})
	}
	return rows
}

func componentRows(components []*analyzer.Component) []table.Row {
	n := min(len(components), maxComponentRows)
	rows := make([]table.Row, 0, n)
	for _, c := range components[:n] {
		sample := c.Nodes[:min(len(c.Nodes), 5)]
		ids := make([]string, len(sample))
		for i, id := range sample {
			ids[i] = strconv.FormatUint(id, 10)
		}
		if len(c.Nodes) > len(sample) {
			ids = append(ids, "...")
		}
		rows = append(rows, table.Row{
			strconv.Itoa(c.ID),
			strconv.Itoa(c.Size),
			strings.Join(ids, ", "),
		})
	}
	return rows
}

func (m model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("graphstats: " + m.path))
	s.WriteString("\n\n")

	switch {
	case m.err != nil:
		s.WriteString(contentStyle.Render(errorStyle.Render("✗ Error loading graph: " + m.err.Error())))
	case !m.loaded:
		s.WriteString(contentStyle.Render("Loading..."))
	default:
		s.WriteString(m.renderTabs())
		s.WriteString("\n\n")
		switch m.currentView {
		case overviewView:
			s.WriteString(m.renderOverview())
		case distributionView:
			s.WriteString(contentStyle.Render(m.distTable.View()))
		case componentsView:
			s.WriteString(contentStyle.Render(m.compTable.View()))
		}
	}

	// Help
	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return s.String()
}

func (m model) renderTabs() string {
	rendered := make([]string, 0, len(tabNames))
	for i, tab := range tabNames {
		if view(i) == m.currentView {
			rendered = append(rendered, activeTabStyle.Render(tab))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m model) renderOverview() string {
	s := m.summary
	content := fmt.Sprintf(`Nodes:              %d
Edges:              %d
Average degree:     %.2f
Max degree:         %d
Median degree:      %g
Components:         %d
Largest component:  %d
Rows skipped:       %d`,
		s.Nodes, s.Edges, s.AverageDegree, s.MaxDegree, s.MedianDegree,
		s.Components, s.LargestComponent, s.Lines.Skipped)
	return contentStyle.Render(statsBoxStyle.Render(content))
}

func main() {
	input := flag.String("input", config.DefaultInput, "Edge-list CSV to browse")
	mmap := flag.Bool("mmap", false, "Read the input through a memory mapping")
	flag.Parse()

	open := edgelist.OpenOptions{Mmap: *mmap, Compression: edgelist.CompressionAuto}
	p := tea.NewProgram(initialModel(*input, open), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
