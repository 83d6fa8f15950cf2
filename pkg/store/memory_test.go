package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/stationviz/pkg/visgraph"
)

func node(id string) visgraph.Node { return visgraph.Node{ID: id, Label: id} }

func edge(id, from, to string) visgraph.Edge {
	return visgraph.Edge{ID: id, From: from, To: to}
}

func seeded(t *testing.T) *Memory {
	t.Helper()
	m, err := NewMemory(visgraph.Graph{
		Nodes: []visgraph.Node{node("5"), node("6"), node("7"), node("8")},
		Edges: []visgraph.Edge{edge("5-6", "5", "6"), edge("5-7", "5", "7"), edge("7-8", "7", "8")},
	})
	require.NoError(t, err)
	return m
}

func TestNewMemoryRejectsBadSeed(t *testing.T) {
	_, err := NewMemory(visgraph.Graph{
		Nodes: []visgraph.Node{node("1")},
		Edges: []visgraph.Edge{edge("e", "1", "2")},
	})
	assert.ErrorIs(t, err, ErrDanglingEdge)
}

func TestInsert(t *testing.T) {
	t.Run("batch with edges onto new nodes", func(t *testing.T) {
		m := seeded(t)
		err := m.Insert(
			[]visgraph.Node{node("20"), node("21")},
			[]visgraph.Edge{edge("20-21", "20", "21"), edge("8-20", "8", "20")},
		)
		require.NoError(t, err)
		_, ok := m.Edge("8-20")
		assert.True(t, ok)
		assert.Len(t, m.Snapshot().Nodes, 6)
	})

	t.Run("duplicate node inserts nothing", func(t *testing.T) {
		m := seeded(t)
		err := m.Insert([]visgraph.Node{node("30"), node("5")}, nil)
		assert.ErrorIs(t, err, ErrDuplicate)
		_, ok := m.Node("30")
		assert.False(t, ok)
	})

	t.Run("duplicate within batch", func(t *testing.T) {
		m := seeded(t)
		err := m.Insert([]visgraph.Node{node("30"), node("30")}, nil)
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("dangling edge inserts nothing", func(t *testing.T) {
		m := seeded(t)
		err := m.Insert([]visgraph.Node{node("40")}, []visgraph.Edge{edge("40-99", "40", "99")})
		assert.ErrorIs(t, err, ErrDanglingEdge)
		_, ok := m.Node("40")
		assert.False(t, ok)
	})

	t.Run("empty id", func(t *testing.T) {
		m := seeded(t)
		assert.ErrorIs(t, m.Insert([]visgraph.Node{{}}, nil), ErrEmptyID)
		assert.ErrorIs(t, m.Insert(nil, []visgraph.Edge{edge("", "5", "6")}), ErrEmptyID)
	})
}

func TestUpdateNodeKeepsPosition(t *testing.T) {
	m := seeded(t)
	m.SetPositions(map[string]visgraph.Point{"5": {X: 10, Y: 20}})

	require.NoError(t, m.UpdateNode(visgraph.Node{ID: "5", Label: "renamed"}))
	n, _ := m.Node("5")
	assert.Equal(t, "renamed", n.Label)
	p, ok := n.Position()
	assert.True(t, ok)
	assert.Equal(t, visgraph.Point{X: 10, Y: 20}, p)

	assert.ErrorIs(t, m.UpdateNode(node("missing")), ErrNotFound)
}

func TestUpdateEdge(t *testing.T) {
	m := seeded(t)
	require.NoError(t, m.UpdateEdge(edge("5-6", "5", "8")))
	e, _ := m.Edge("5-6")
	assert.Equal(t, "8", e.To)

	assert.ErrorIs(t, m.UpdateEdge(edge("5-6", "5", "99")), ErrDanglingEdge)
	assert.ErrorIs(t, m.UpdateEdge(edge("nope", "5", "6")), ErrNotFound)
}

func TestConnectedEdges(t *testing.T) {
	m := seeded(t)
	assert.Equal(t, []string{"5-6", "5-7"}, m.ConnectedEdges("5"))
	assert.Equal(t, []string{"5-7", "7-8"}, m.ConnectedEdges("7"))
	assert.Empty(t, m.ConnectedEdges("99"))
}

func TestRemove(t *testing.T) {
	t.Run("node cascades to its edges", func(t *testing.T) {
		m := seeded(t)
		removed, err := m.Remove(Selection{Nodes: []string{"5"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"5"}, removed.Nodes)
		assert.ElementsMatch(t, []string{"5-6", "5-7"}, removed.Edges)
		assert.Len(t, m.Snapshot().Edges, 1)
	})

	t.Run("missing id removes nothing", func(t *testing.T) {
		m := seeded(t)
		_, err := m.Remove(Selection{Nodes: []string{"6"}, Edges: []string{"nope"}})
		assert.ErrorIs(t, err, ErrNotFound)
		_, ok := m.Node("6")
		assert.True(t, ok)
	})

	t.Run("single edge", func(t *testing.T) {
		m := seeded(t)
		removed, err := m.Remove(Selection{Edges: []string{"7-8"}})
		require.NoError(t, err)
		assert.Equal(t, Selection{Edges: []string{"7-8"}}, removed)
		assert.Len(t, m.Snapshot().Nodes, 4)
	})
}

func TestPositions(t *testing.T) {
	m := seeded(t)
	moved := m.SetPositions(map[string]visgraph.Point{"5": {X: 1, Y: 2}, "ghost": {X: 3, Y: 4}})
	assert.Equal(t, 1, moved)
	assert.Equal(t, map[string]visgraph.Point{"5": {X: 1, Y: 2}}, m.Positions())
}

func TestSelection(t *testing.T) {
	assert.True(t, Selection{}.Empty())
	assert.True(t, Selection{Nodes: []string{"1"}}.Single())
	assert.True(t, Selection{Edges: []string{"1"}}.Single())
	assert.False(t, Selection{Nodes: []string{"1"}, Edges: []string{"2"}}.Single())
	assert.False(t, Selection{Nodes: []string{"1", "2"}}.Single())
}
