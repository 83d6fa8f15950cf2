package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/stationviz/pkg/transit"
	"github.com/matzehuels/stationviz/pkg/visgraph"
)

func testGraph() visgraph.Graph {
	return visgraph.Graph{
		Nodes: []visgraph.Node{
			visgraph.NodeFromStop(transit.Stop{ID: 5, Name: "Platform"}),
			visgraph.NodeFromStop(transit.Stop{ID: 6, Name: "Entrance", LocationType: transit.EntranceExit}),
		},
		Edges: []visgraph.Edge{
			visgraph.EdgeFromPathway(transit.Pathway{ID: 10, FromStopID: 6, ToStopID: 5, Mode: transit.ModeStairs}),
		},
	}
}

func press(m tea.Model, key string) tea.Model {
	var msg tea.KeyMsg
	switch key {
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	m, _ = m.Update(msg)
	return m
}

func TestGraphModelNavigation(t *testing.T) {
	var m tea.Model = NewGraphModel("Central", testGraph())

	m = press(m, "down")
	m = press(m, "down")
	if got := m.(GraphModel).Cursor; got != 1 {
		t.Errorf("cursor after two downs = %d, want 1 (clamped)", got)
	}

	m = press(m, "tab")
	gm := m.(GraphModel)
	if gm.Tab != tabEdges || gm.Cursor != 0 {
		t.Errorf("after tab: tab=%v cursor=%d, want edges at 0", gm.Tab, gm.Cursor)
	}

	m = press(m, "up")
	if got := m.(GraphModel).Cursor; got != 0 {
		t.Errorf("cursor after up at top = %d, want 0", got)
	}
}

func TestGraphModelView(t *testing.T) {
	var m tea.Model = NewGraphModel("Central", testGraph())

	view := m.View()
	for _, want := range []string{"Central", "Nodes (2)", "Edges (1)", "Platform", "Entrance"} {
		if !strings.Contains(view, want) {
			t.Errorf("node view missing %q", want)
		}
	}

	m = press(press(m, "tab"), "enter")
	view = m.View()
	for _, want := range []string{"Stairs", "pathway id", "6 → 5"} {
		if !strings.Contains(view, want) {
			t.Errorf("edge detail view missing %q", want)
		}
	}
}

func TestGraphModelQuit(t *testing.T) {
	m := NewGraphModel("Central", testGraph())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
