package visgraph

import (
	"fmt"

	"github.com/paulmach/orb"

	"github.com/matzehuels/stationviz/pkg/errors"
	"github.com/matzehuels/stationviz/pkg/transit"
)

// Layout selects how initial node positions are computed.
type Layout string

const (
	LayoutGeographic Layout = "geo"
	LayoutLayered    Layout = "layered"
	LayoutPhysics    Layout = "physics"
)

// Default values for [Options].
const (
	DefaultCanvasSize = 1000.0
	DefaultStepX      = 120.0
	DefaultStepY      = 150.0
)

// ParseLayout accepts "geo", "geographic", "layered" or "physics".
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "geo", "geographic":
		return LayoutGeographic, nil
	case "layered":
		return LayoutLayered, nil
	case "physics", "":
		return LayoutPhysics, nil
	}
	return "", errors.New(errors.ErrCodeInvalidLayout, "unknown layout %q (must be geo, layered or physics)", s)
}

// Options configures [Build].
type Options struct {
	Layout Layout

	// CanvasSize is the side of the square the geographic layout fills.
	CanvasSize float64

	// StepX and StepY are the layered layout spacings.
	StepX float64
	StepY float64

	// Center anchors the layered layout, usually the viewport center.
	// Nil means the canvas center.
	Center *Point

	// ShowStations keeps station containers as nodes. By default they are
	// background context and are left out of the graph.
	ShowStations bool
}

// withDefaults fills zero values.
func (o Options) withDefaults() Options {
	if o.Layout == "" {
		o.Layout = LayoutPhysics
	}
	if o.CanvasSize <= 0 {
		o.CanvasSize = DefaultCanvasSize
	}
	if o.StepX <= 0 {
		o.StepX = DefaultStepX
	}
	if o.StepY <= 0 {
		o.StepY = DefaultStepY
	}
	return o
}

// Build projects ds into a graph.
//
// The dataset is validated first; a pathway referencing an unknown stop or a
// station container fails the build instead of producing a dangling edge.
func Build(ds transit.Dataset, opts Options) (Graph, error) {
	opts = opts.withDefaults()
	if _, err := ParseLayout(string(opts.Layout)); err != nil {
		return Graph{}, err
	}
	if err := ds.Validate(); err != nil {
		return Graph{}, fmt.Errorf("validate dataset: %w", err)
	}

	nodes := make([]Node, 0, len(ds.Stops))
	for _, s := range ds.Stops {
		if s.LocationType.IsStation() && !opts.ShowStations {
			continue
		}
		nodes = append(nodes, NodeFromStop(s))
	}

	switch opts.Layout {
	case LayoutGeographic:
		placeGeographic(nodes, opts.CanvasSize)
	case LayoutLayered:
		center := Point{X: opts.CanvasSize / 2, Y: opts.CanvasSize / 2}
		if opts.Center != nil {
			center = *opts.Center
		}
		placeLayered(nodes, center, opts.StepX, opts.StepY)
	}

	edges := make([]Edge, len(ds.Pathways))
	for i, p := range ds.Pathways {
		edges[i] = EdgeFromPathway(p)
	}

	return Graph{Nodes: nodes, Edges: edges}, nil
}

// placeGeographic maps stop coordinates linearly into [0, size]², north up.
// An axis with zero span puts every node at size/2 on that axis.
func placeGeographic(nodes []Node, size float64) {
	if len(nodes) == 0 {
		return
	}
	mp := make(orb.MultiPoint, len(nodes))
	for i, n := range nodes {
		mp[i] = orb.Point{n.Stop.Lon, n.Stop.Lat}
	}
	b := mp.Bound()
	spanLon := b.Max.X() - b.Min.X()
	spanLat := b.Max.Y() - b.Min.Y()

	for i := range nodes {
		p := Point{X: size / 2, Y: size / 2}
		if spanLon > 0 {
			p.X = (nodes[i].Stop.Lon - b.Min.X()) / spanLon * size
		}
		if spanLat > 0 {
			p.Y = (b.Max.Y() - nodes[i].Stop.Lat) / spanLat * size
		}
		nodes[i].SetPosition(p)
	}
}

// rankOrder lists location types top to bottom for the layered layout.
var rankOrder = []transit.LocationType{
	transit.EntranceExit,
	transit.GenericNode,
	transit.StopOrPlatform,
	transit.BoardingArea,
	transit.Station,
}

// placeLayered puts each location type on its own row, rows stepY apart and
// nodes stepX apart, every row centered horizontally on center.
func placeLayered(nodes []Node, center Point, stepX, stepY float64) {
	byRank := make(map[transit.LocationType][]int)
	for i, n := range nodes {
		byRank[n.Stop.LocationType] = append(byRank[n.Stop.LocationType], i)
	}

	row := 0
	for _, lt := range rankOrder {
		members := byRank[lt]
		if len(members) == 0 {
			continue
		}
		left := center.X - float64(len(members)-1)*stepX/2
		y := center.Y + float64(row)*stepY
		for j, idx := range members {
			nodes[idx].SetPosition(Point{X: left + float64(j)*stepX, Y: y})
		}
		row++
	}
}
