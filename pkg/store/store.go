// Package store holds the live node and edge collections behind the widget.
//
// The widget keeps its own mutable data sets; stationviz models them as an
// owned [Store] so that the event bridge never reaches into widget internals.
// All mutations are all-or-nothing: an [Store.Insert] that would create a
// duplicate id or a dangling edge inserts nothing.
package store

import (
	"errors"

	"github.com/matzehuels/stationviz/pkg/visgraph"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when an id is not in the store.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when an inserted id is already present.
	ErrDuplicate = errors.New("duplicate id")

	// ErrDanglingEdge is returned when an edge endpoint is not a stored node.
	ErrDanglingEdge = errors.New("edge endpoint not in store")

	// ErrEmptyID is returned for nodes or edges without an id.
	ErrEmptyID = errors.New("empty id")
)

// Selection names nodes and edges by id.
type Selection struct {
	Nodes []string `json:"nodes"`
	Edges []string `json:"edges"`
}

// Empty reports whether nothing is selected.
func (s Selection) Empty() bool { return len(s.Nodes) == 0 && len(s.Edges) == 0 }

// Single reports whether exactly one node or exactly one edge is selected,
// and nothing else.
func (s Selection) Single() bool {
	return (len(s.Nodes) == 1 && len(s.Edges) == 0) || (len(s.Nodes) == 0 && len(s.Edges) == 1)
}

// Store is the live node/edge collection of one mounted graph.
type Store interface {
	Node(id string) (visgraph.Node, bool)
	Edge(id string) (visgraph.Edge, bool)

	// Nodes and Edges list the stored items in insertion order.
	Nodes() []visgraph.Node
	Edges() []visgraph.Edge

	// Insert adds nodes and edges together. Edges may reference nodes from
	// the same call.
	Insert(nodes []visgraph.Node, edges []visgraph.Edge) error

	// UpdateNode replaces a node. A replacement without a position keeps
	// the stored one.
	UpdateNode(n visgraph.Node) error

	// UpdateEdge replaces an edge; its endpoints must exist.
	UpdateEdge(e visgraph.Edge) error

	// Remove deletes the selection and returns what was removed. Edges
	// attached to a removed node are removed with it.
	Remove(sel Selection) (Selection, error)

	// ConnectedEdges lists edge ids with nodeID as an endpoint.
	ConnectedEdges(nodeID string) []string

	// SetPositions moves nodes; unknown ids are skipped. It returns the
	// number of nodes moved.
	SetPositions(pos map[string]visgraph.Point) int

	// Positions returns the positions of all placed nodes.
	Positions() map[string]visgraph.Point

	// Snapshot copies the current contents in insertion order.
	Snapshot() visgraph.Graph
}
