package visgraph

import (
	"github.com/matzehuels/stationviz/pkg/transit"
)

type nodeStyle struct {
	shape string
	color string
	size  int
}

var locationStyles = map[transit.LocationType]nodeStyle{
	transit.StopOrPlatform: {shape: "box", color: "#2b7ce9", size: 20},
	transit.Station:        {shape: "database", color: "#666666", size: 30},
	transit.EntranceExit:   {shape: "triangle", color: "#f2565c", size: 20},
	transit.GenericNode:    {shape: "dot", color: "#888888", size: 10},
	transit.BoardingArea:   {shape: "square", color: "#7ecb7d", size: 15},
}

// NodeFromStop projects a single stop. The result carries no position.
// A stop with an image renders as that image.
func NodeFromStop(s transit.Stop) Node {
	style, ok := locationStyles[s.LocationType]
	if !ok {
		style = locationStyles[transit.GenericNode]
	}
	n := Node{
		ID:    NodeID(s.ID),
		Label: s.DisplayName(),
		Shape: style.shape,
		Color: style.color,
		Size:  style.size,
		Stop:  s,
	}
	if s.ImageURL != "" {
		n.Shape = "image"
		n.Image = s.ImageURL
	}
	return n
}

// EdgeFromPathway projects a single pathway.
func EdgeFromPathway(p transit.Pathway) Edge {
	return Edge{
		ID:      EdgeID(p.ID),
		From:    NodeID(p.FromStopID),
		To:      NodeID(p.ToStopID),
		Label:   ModeLabel(p.Mode),
		Color:   ModeColor(p.Mode),
		Arrows:  arrows(p.IsBidirectional),
		Pathway: p,
	}
}

// RefreshEdge re-derives e after its endpoints moved to from and to.
//
// The widget reports endpoint changes as a bare {id, from, to} object. The
// pathway endpoints are rewritten from the node ids and the label, color and
// arrows are recomputed, so the result is a complete domain edge again.
func RefreshEdge(e Edge, from, to string) (Edge, error) {
	fromID, err := StopID(from)
	if err != nil {
		return Edge{}, err
	}
	toID, err := StopID(to)
	if err != nil {
		return Edge{}, err
	}
	p := e.Pathway
	p.FromStopID = fromID
	p.ToStopID = toID

	out := EdgeFromPathway(p)
	if e.ID != "" {
		out.ID = e.ID
	}
	return out, nil
}

func arrows(bidirectional bool) string {
	if bidirectional {
		return ""
	}
	return "to"
}
