package visgraph

import (
	"strconv"

	"github.com/matzehuels/stationviz/pkg/errors"
	"github.com/matzehuels/stationviz/pkg/transit"
)

// Point is a canvas position in widget pixels.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Node is the render-only projection of a stop.
type Node struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	X     *float64 `json:"x,omitempty"`
	Y     *float64 `json:"y,omitempty"`
	Shape string   `json:"shape"`
	Image string   `json:"image,omitempty"`
	Color string   `json:"color,omitempty"`
	Size  int      `json:"size"`

	Stop transit.Stop `json:"stop"`
}

// Position returns the node position and whether one is set.
func (n Node) Position() (Point, bool) {
	if n.X == nil || n.Y == nil {
		return Point{}, false
	}
	return Point{X: *n.X, Y: *n.Y}, true
}

// SetPosition pins the node at p.
func (n *Node) SetPosition(p Point) {
	x, y := p.X, p.Y
	n.X, n.Y = &x, &y
}

// Edge is the render-only projection of a pathway.
type Edge struct {
	ID     string `json:"id"`
	From   string `json:"from"`
	To     string `json:"to"`
	Label  string `json:"label"`
	Color  string `json:"color"`
	Arrows string `json:"arrows,omitempty"`

	Pathway transit.Pathway `json:"pathway"`
}

// Graph is the aligned node and edge collections handed to the widget.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// NodeID returns the node id for a stop id.
func NodeID(stopID int) string { return strconv.Itoa(stopID) }

// EdgeID returns the edge id for a pathway id.
func EdgeID(pathwayID int) string { return strconv.Itoa(pathwayID) }

// StopID inverts [NodeID].
func StopID(nodeID string) (int, error) {
	id, err := strconv.Atoi(nodeID)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidID, err, "node id %q", nodeID)
	}
	return id, nil
}

// PathwayID inverts [EdgeID].
func PathwayID(edgeID string) (int, error) {
	id, err := strconv.Atoi(edgeID)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidID, err, "edge id %q", edgeID)
	}
	return id, nil
}

// SourceIDs maps every node and edge of g back to its stop or pathway id.
func SourceIDs(g Graph) (stops, pathways []int, err error) {
	stops = make([]int, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		id, err := StopID(n.ID)
		if err != nil {
			return nil, nil, err
		}
		stops = append(stops, id)
	}
	pathways = make([]int, 0, len(g.Edges))
	for _, e := range g.Edges {
		id, err := PathwayID(e.ID)
		if err != nil {
			return nil, nil, err
		}
		pathways = append(pathways, id)
	}
	return stops, pathways, nil
}
