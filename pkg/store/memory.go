package store

import (
	"fmt"
	"slices"
	"sync"

	"github.com/matzehuels/stationviz/pkg/visgraph"
)

// Memory is an in-memory [Store]. It is safe for concurrent use.
type Memory struct {
	mu        sync.RWMutex
	nodes     map[string]visgraph.Node
	edges     map[string]visgraph.Edge
	nodeOrder []string
	edgeOrder []string
}

// NewMemory returns a store seeded with g.
// It fails when g itself has duplicate ids or dangling edges.
func NewMemory(g visgraph.Graph) (*Memory, error) {
	m := &Memory{
		nodes: make(map[string]visgraph.Node, len(g.Nodes)),
		edges: make(map[string]visgraph.Edge, len(g.Edges)),
	}
	if err := m.Insert(g.Nodes, g.Edges); err != nil {
		return nil, fmt.Errorf("seed store: %w", err)
	}
	return m, nil
}

func (m *Memory) Node(id string) (visgraph.Node, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n, ok := m.nodes[id]
	return n, ok
}

func (m *Memory) Edge(id string) (visgraph.Edge, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.edges[id]
	return e, ok
}

func (m *Memory) Nodes() []visgraph.Node { return m.Snapshot().Nodes }

func (m *Memory) Edges() []visgraph.Edge { return m.Snapshot().Edges }

func (m *Memory) Insert(nodes []visgraph.Node, edges []visgraph.Edge) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	batch := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if n.ID == "" {
			return fmt.Errorf("node: %w", ErrEmptyID)
		}
		if _, ok := m.nodes[n.ID]; ok || batch[n.ID] {
			return fmt.Errorf("node %s: %w", n.ID, ErrDuplicate)
		}
		batch[n.ID] = true
	}
	edgeBatch := make(map[string]bool, len(edges))
	for _, e := range edges {
		if e.ID == "" {
			return fmt.Errorf("edge: %w", ErrEmptyID)
		}
		if _, ok := m.edges[e.ID]; ok || edgeBatch[e.ID] {
			return fmt.Errorf("edge %s: %w", e.ID, ErrDuplicate)
		}
		edgeBatch[e.ID] = true
		for _, end := range []string{e.From, e.To} {
			if _, ok := m.nodes[end]; !ok && !batch[end] {
				return fmt.Errorf("edge %s endpoint %s: %w", e.ID, end, ErrDanglingEdge)
			}
		}
	}

	for _, n := range nodes {
		m.nodes[n.ID] = n
		m.nodeOrder = append(m.nodeOrder, n.ID)
	}
	for _, e := range edges {
		m.edges[e.ID] = e
		m.edgeOrder = append(m.edgeOrder, e.ID)
	}
	return nil
}

func (m *Memory) UpdateNode(n visgraph.Node) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.nodes[n.ID]
	if !ok {
		return fmt.Errorf("node %s: %w", n.ID, ErrNotFound)
	}
	if _, placed := n.Position(); !placed {
		n.X, n.Y = old.X, old.Y
	}
	m.nodes[n.ID] = n
	return nil
}

func (m *Memory) UpdateEdge(e visgraph.Edge) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.edges[e.ID]; !ok {
		return fmt.Errorf("edge %s: %w", e.ID, ErrNotFound)
	}
	for _, end := range []string{e.From, e.To} {
		if _, ok := m.nodes[end]; !ok {
			return fmt.Errorf("edge %s endpoint %s: %w", e.ID, end, ErrDanglingEdge)
		}
	}
	m.edges[e.ID] = e
	return nil
}

func (m *Memory) Remove(sel Selection) (Selection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range sel.Nodes {
		if _, ok := m.nodes[id]; !ok {
			return Selection{}, fmt.Errorf("node %s: %w", id, ErrNotFound)
		}
	}
	for _, id := range sel.Edges {
		if _, ok := m.edges[id]; !ok {
			return Selection{}, fmt.Errorf("edge %s: %w", id, ErrNotFound)
		}
	}

	nodeSet := make(map[string]bool, len(sel.Nodes))
	for _, id := range sel.Nodes {
		nodeSet[id] = true
	}
	edgeSet := make(map[string]bool, len(sel.Edges))
	for _, id := range sel.Edges {
		edgeSet[id] = true
	}
	for _, id := range m.edgeOrder {
		e := m.edges[id]
		if nodeSet[e.From] || nodeSet[e.To] {
			edgeSet[id] = true
		}
	}

	var removed Selection
	m.edgeOrder = slices.DeleteFunc(m.edgeOrder, func(id string) bool {
		if edgeSet[id] {
			delete(m.edges, id)
			removed.Edges = append(removed.Edges, id)
			return true
		}
		return false
	})
	m.nodeOrder = slices.DeleteFunc(m.nodeOrder, func(id string) bool {
		if nodeSet[id] {
			delete(m.nodes, id)
			removed.Nodes = append(removed.Nodes, id)
			return true
		}
		return false
	})
	return removed, nil
}

func (m *Memory) ConnectedEdges(nodeID string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var ids []string
	for _, id := range m.edgeOrder {
		e := m.edges[id]
		if e.From == nodeID || e.To == nodeID {
			ids = append(ids, id)
		}
	}
	return ids
}

func (m *Memory) SetPositions(pos map[string]visgraph.Point) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	moved := 0
	for id, p := range pos {
		n, ok := m.nodes[id]
		if !ok {
			continue
		}
		n.SetPosition(p)
		m.nodes[id] = n
		moved++
	}
	return moved
}

func (m *Memory) Positions() map[string]visgraph.Point {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]visgraph.Point, len(m.nodes))
	for id, n := range m.nodes {
		if p, ok := n.Position(); ok {
			out[id] = p
		}
	}
	return out
}

func (m *Memory) Snapshot() visgraph.Graph {
	m.mu.RLock()
	defer m.mu.RUnlock()

	g := visgraph.Graph{
		Nodes: make([]visgraph.Node, 0, len(m.nodeOrder)),
		Edges: make([]visgraph.Edge, 0, len(m.edgeOrder)),
	}
	for _, id := range m.nodeOrder {
		g.Nodes = append(g.Nodes, m.nodes[id])
	}
	for _, id := range m.edgeOrder {
		g.Edges = append(g.Edges, m.edges[id])
	}
	return g
}

var _ Store = (*Memory)(nil)
