package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dd0wney/cluso-graphstats/pkg/edgelist"
)

func loadedModel(t *testing.T, content string) model {
	t.Helper()
	path := filepath.Join(t.TempDir(), "edges.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	m := initialModel(path, edgelist.OpenOptions{Compression: edgelist.CompressionAuto})
	updated, _ := m.Update(m.Init()())
	return updated.(model)
}

func TestModelLoads(t *testing.T) {
	m := loadedModel(t, "h\n0,1\n1,2\n5,6\n")
	if !m.loaded || m.err != nil {
		t.Fatalf("loaded = %v, err = %v", m.loaded, m.err)
	}
	if got := len(m.distTable.Rows()); got != 2 {
		t.Errorf("distribution rows = %d, want 2", got)
	}
	rows := m.compTable.Rows()
	if len(rows) != 2 || rows[0][1] != "3" || rows[1][1] != "2" {
		t.Errorf("component rows = %v", rows)
	}
	if view := m.View(); !strings.Contains(view, "Components:         2") {
		t.Errorf("overview missing component count:\n%s", view)
	}
}

func TestModelLoadFailure(t *testing.T) {
	m := initialModel(filepath.Join(t.TempDir(), "missing.csv"), edgelist.OpenOptions{})
	updated, _ := m.Update(m.Init()())
	got := updated.(model)
	if got.err == nil {
		t.Fatal("expected a load error")
	}
	if !strings.Contains(got.View(), "Error loading graph") {
		t.Error("view does not report the load error")
	}
}

func TestModelTabsCycle(t *testing.T) {
	m := loadedModel(t, "h\n0,1\n")
	for _, want := range []view{distributionView, componentsView, overviewView} {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = updated.(model)
		if m.currentView != want {
			t.Fatalf("currentView = %d, want %d", m.currentView, want)
		}
	}
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if updated.(model).currentView != componentsView {
		t.Error("shift+tab did not wrap to the last view")
	}
}

func TestComponentRowsSample(t *testing.T) {
	m := loadedModel(t, "h\n1,2\n2,3\n3,4\n4,5\n5,6\n6,7\n")
	rows := m.compTable.Rows()
	if len(rows) != 1 {
		t.Fatalf("rows = %v", rows)
	}
	if rows[0][2] != "1, 2, 3, 4, 5, ..." {
		t.Errorf("sample = %q", rows[0][2])
	}
}
