// Package host provides RepositoryHost, a bridge host that accepts every
// request and persists the result to a dataset source.
//
// It is what the HTTP server mounts when no interactive front end is
// deciding: new stops and pathways get the next free id, node deletes take
// their pathways along, and node positions reported by the bridge are kept
// as layout hints in the cache.
package host

import (
	"context"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stationviz/pkg/bridge"
	"github.com/matzehuels/stationviz/pkg/cache"
	"github.com/matzehuels/stationviz/pkg/dataset"
	"github.com/matzehuels/stationviz/pkg/store"
	"github.com/matzehuels/stationviz/pkg/transit"
	"github.com/matzehuels/stationviz/pkg/visgraph"
)

// FareZoneGap is the distance between the two nodes of a new fare zone.
const FareZoneGap = 40.0

// Options configures a [RepositoryHost].
type Options struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// RepositoryHost commits every request against one station of a source.
type RepositoryHost struct {
	src       dataset.Source
	stationID int
	cache     cache.Cache
	keyer     cache.Keyer
	logger    *log.Logger

	mu         sync.Mutex
	ds         transit.Dataset
	positions  map[string]visgraph.Point
	stabilized bool
}

// New loads the station and returns a host for it. Position hints already
// in the cache are picked up.
func New(ctx context.Context, src dataset.Source, stationID int, opts Options) (*RepositoryHost, error) {
	ds, err := src.Load(ctx, stationID)
	if err != nil {
		return nil, err
	}
	h := &RepositoryHost{
		src:       src,
		stationID: stationID,
		cache:     opts.Cache,
		keyer:     opts.Keyer,
		logger:    opts.Logger,
		ds:        ds,
		positions: make(map[string]visgraph.Point),
	}
	if h.cache == nil {
		h.cache = cache.NewNullCache()
	}
	if h.keyer == nil {
		h.keyer = cache.NewDefaultKeyer()
	}
	if h.logger == nil {
		h.logger = log.Default()
	}
	if hints, err := cache.LoadPositions(ctx, h.cache, h.keyer, stationID); err == nil {
		h.positions = hints
	}
	return h, nil
}

// Dataset returns a copy of the current dataset.
func (h *RepositoryHost) Dataset() transit.Dataset {
	h.mu.Lock()
	defer h.mu.Unlock()
	return clone(h.ds)
}

// Positions returns a copy of the position hints.
func (h *RepositoryHost) Positions() map[string]visgraph.Point {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.positionsCopy()
}

// Stabilized reports whether the widget has finished its first layout.
func (h *RepositoryHost) Stabilized() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stabilized
}

// =============================================================================
// Stops
// =============================================================================

func (h *RepositoryHost) AddStop(ctx context.Context, proposed visgraph.Node) (bridge.Decision[visgraph.Node], error) {
	var n visgraph.Node
	err := h.update(ctx, func(ds *transit.Dataset) error {
		s := h.newStop(ds, transit.GenericNode, "")
		ds.Stops = append(ds.Stops, s)
		n = visgraph.NodeFromStop(s)
		n.X, n.Y = proposed.X, proposed.Y
		return nil
	})
	if err != nil {
		return bridge.Cancel[visgraph.Node](), err
	}
	h.logger.Info("stop added", "station", h.stationID, "stop", n.ID)
	return bridge.Commit(n), nil
}

func (h *RepositoryHost) EditStop(ctx context.Context, node visgraph.Node) (bridge.Decision[visgraph.Node], error) {
	id, err := visgraph.StopID(node.ID)
	if err != nil {
		return bridge.Cancel[visgraph.Node](), err
	}
	var n visgraph.Node
	err = h.update(ctx, func(ds *transit.Dataset) error {
		i := slices.IndexFunc(ds.Stops, func(s transit.Stop) bool { return s.ID == id })
		if i < 0 {
			return store.ErrNotFound
		}
		s := node.Stop
		s.ID = id
		ds.Stops[i] = s
		n = visgraph.NodeFromStop(s)
		n.X, n.Y = node.X, node.Y
		return nil
	})
	if err != nil {
		return bridge.Cancel[visgraph.Node](), err
	}
	return bridge.Commit(n), nil
}

// =============================================================================
// Pathways
// =============================================================================

func (h *RepositoryHost) AddPathway(ctx context.Context, proposed visgraph.Edge) (bridge.Decision[visgraph.Edge], error) {
	from, err := visgraph.StopID(proposed.From)
	if err != nil {
		return bridge.Cancel[visgraph.Edge](), err
	}
	to, err := visgraph.StopID(proposed.To)
	if err != nil {
		return bridge.Cancel[visgraph.Edge](), err
	}
	var e visgraph.Edge
	err = h.update(ctx, func(ds *transit.Dataset) error {
		p := transit.Pathway{ID: nextPathwayID(*ds), FromStopID: from, ToStopID: to, Mode: transit.ModeWalkway}
		ds.Pathways = append(ds.Pathways, p)
		e = visgraph.EdgeFromPathway(p)
		return nil
	})
	if err != nil {
		return bridge.Cancel[visgraph.Edge](), err
	}
	h.logger.Info("pathway added", "station", h.stationID, "pathway", e.ID, "from", e.From, "to", e.To)
	return bridge.Commit(e), nil
}

func (h *RepositoryHost) EditPathway(ctx context.Context, edge visgraph.Edge) (bridge.Decision[visgraph.Edge], error) {
	id, err := visgraph.PathwayID(edge.ID)
	if err != nil {
		return bridge.Cancel[visgraph.Edge](), err
	}
	refreshed, err := visgraph.RefreshEdge(edge, edge.From, edge.To)
	if err != nil {
		return bridge.Cancel[visgraph.Edge](), err
	}
	var e visgraph.Edge
	err = h.update(ctx, func(ds *transit.Dataset) error {
		i := slices.IndexFunc(ds.Pathways, func(p transit.Pathway) bool { return p.ID == id })
		if i < 0 {
			return store.ErrNotFound
		}
		p := refreshed.Pathway
		p.ID = id
		ds.Pathways[i] = p
		e = visgraph.EdgeFromPathway(p)
		return nil
	})
	if err != nil {
		return bridge.Cancel[visgraph.Edge](), err
	}
	return bridge.Commit(e), nil
}

// =============================================================================
// Deletes and fare zones
// =============================================================================

// DeleteItems removes the selection. Pathways touching a removed stop are
// removed too and reported in the confirmed selection.
func (h *RepositoryHost) DeleteItems(ctx context.Context, sel store.Selection) (bridge.Decision[store.Selection], error) {
	stops := make(map[int]bool, len(sel.Nodes))
	for _, nid := range sel.Nodes {
		id, err := visgraph.StopID(nid)
		if err != nil {
			return bridge.Cancel[store.Selection](), err
		}
		stops[id] = true
	}
	pathways := make(map[int]bool, len(sel.Edges))
	for _, eid := range sel.Edges {
		id, err := visgraph.PathwayID(eid)
		if err != nil {
			return bridge.Cancel[store.Selection](), err
		}
		pathways[id] = true
	}

	var confirmed store.Selection
	err := h.update(ctx, func(ds *transit.Dataset) error {
		ds.Stops = slices.DeleteFunc(ds.Stops, func(s transit.Stop) bool {
			if stops[s.ID] {
				confirmed.Nodes = append(confirmed.Nodes, visgraph.NodeID(s.ID))
				return true
			}
			return false
		})
		ds.Pathways = slices.DeleteFunc(ds.Pathways, func(p transit.Pathway) bool {
			if pathways[p.ID] || stops[p.FromStopID] || stops[p.ToStopID] {
				confirmed.Edges = append(confirmed.Edges, visgraph.EdgeID(p.ID))
				return true
			}
			return false
		})
		return nil
	})
	if err != nil {
		return bridge.Cancel[store.Selection](), err
	}

	h.mu.Lock()
	for _, id := range confirmed.Nodes {
		delete(h.positions, id)
	}
	h.mu.Unlock()
	h.logger.Info("items deleted", "station", h.stationID, "stops", len(confirmed.Nodes), "pathways", len(confirmed.Edges))
	return bridge.Commit(confirmed), nil
}

// AddFareZone places two generic nodes FareZoneGap apart around at and
// joins them with a fare gate pathway.
func (h *RepositoryHost) AddFareZone(ctx context.Context, at visgraph.Point) (bridge.Decision[bridge.Zone], error) {
	var z bridge.Zone
	err := h.update(ctx, func(ds *transit.Dataset) error {
		outside := h.newStop(ds, transit.GenericNode, "Fare zone outside")
		ds.Stops = append(ds.Stops, outside)
		inside := h.newStop(ds, transit.GenericNode, "Fare zone inside")
		ds.Stops = append(ds.Stops, inside)
		gate := transit.Pathway{
			ID:         nextPathwayID(*ds),
			FromStopID: outside.ID,
			ToStopID:   inside.ID,
			Mode:       transit.ModeFareGate,
		}
		ds.Pathways = append(ds.Pathways, gate)

		a, b := visgraph.NodeFromStop(outside), visgraph.NodeFromStop(inside)
		a.SetPosition(visgraph.Point{X: at.X - FareZoneGap/2, Y: at.Y})
		b.SetPosition(visgraph.Point{X: at.X + FareZoneGap/2, Y: at.Y})
		z = bridge.Zone{
			Nodes: []visgraph.Node{a, b},
			Edges: []visgraph.Edge{visgraph.EdgeFromPathway(gate)},
		}
		return nil
	})
	if err != nil {
		return bridge.Cancel[bridge.Zone](), err
	}
	return bridge.Commit(z), nil
}

// =============================================================================
// Positions
// =============================================================================

func (h *RepositoryHost) MoveStop(ctx context.Context, nodeID string, at visgraph.Point) {
	h.mu.Lock()
	h.positions[nodeID] = at
	hints := h.positionsCopy()
	h.mu.Unlock()

	h.flush(ctx, hints)
}

// MovePositions records a whole stabilization and writes the hints once.
func (h *RepositoryHost) MovePositions(ctx context.Context, positions map[string]visgraph.Point) {
	h.mu.Lock()
	for id, at := range positions {
		h.positions[id] = at
	}
	hints := h.positionsCopy()
	h.mu.Unlock()

	h.flush(ctx, hints)
}

func (h *RepositoryHost) NetworkStabilized(ctx context.Context) {
	h.mu.Lock()
	h.stabilized = true
	hints := h.positionsCopy()
	h.mu.Unlock()

	h.flush(ctx, hints)
	h.logger.Info("network stabilized", "station", h.stationID, "positions", len(hints))
}

// positionsCopy must be called with h.mu held.
func (h *RepositoryHost) positionsCopy() map[string]visgraph.Point {
	out := make(map[string]visgraph.Point, len(h.positions))
	for k, v := range h.positions {
		out[k] = v
	}
	return out
}

func (h *RepositoryHost) flush(ctx context.Context, pos map[string]visgraph.Point) {
	if err := cache.SavePositions(ctx, h.cache, h.keyer, h.stationID, pos); err != nil {
		h.logger.Warn("store position hints", "station", h.stationID, "err", err)
	}
}

// =============================================================================
// Helpers
// =============================================================================

// update applies fn to a copy of the dataset and persists it. The in-memory
// dataset only changes when the save succeeds.
func (h *RepositoryHost) update(ctx context.Context, fn func(ds *transit.Dataset) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	next := clone(h.ds)
	if err := fn(&next); err != nil {
		return err
	}
	if err := h.src.Save(ctx, h.stationID, next); err != nil {
		return err
	}
	h.ds = next
	return nil
}

func (h *RepositoryHost) newStop(ds *transit.Dataset, lt transit.LocationType, name string) transit.Stop {
	s := transit.Stop{ID: nextStopID(*ds), Name: name, LocationType: lt}
	if st, ok := ds.StationStop(); ok {
		s.ParentStation = st.ID
	}
	return s
}

func nextStopID(ds transit.Dataset) int {
	id := 0
	if ds.Station != nil {
		id = ds.Station.ID
	}
	for _, s := range ds.Stops {
		id = max(id, s.ID)
	}
	return id + 1
}

func nextPathwayID(ds transit.Dataset) int {
	id := 0
	for _, p := range ds.Pathways {
		id = max(id, p.ID)
	}
	return id + 1
}

func clone(ds transit.Dataset) transit.Dataset {
	out := transit.Dataset{
		Stops:    slices.Clone(ds.Stops),
		Pathways: slices.Clone(ds.Pathways),
	}
	if ds.Station != nil {
		st := *ds.Station
		out.Station = &st
	}
	return out
}

var (
	_ bridge.Host            = (*RepositoryHost)(nil)
	_ bridge.PositionBatcher = (*RepositoryHost)(nil)
)
