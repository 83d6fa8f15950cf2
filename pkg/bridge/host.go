package bridge

import (
	"context"

	"github.com/matzehuels/stationviz/pkg/store"
	"github.com/matzehuels/stationviz/pkg/visgraph"
)

// Decision is the host's answer to a request: commit a value or cancel.
type Decision[T any] struct {
	value     T
	committed bool
}

// Commit returns a decision that applies v.
func Commit[T any](v T) Decision[T] { return Decision[T]{value: v, committed: true} }

// Cancel returns a decision that leaves the store unchanged.
func Cancel[T any]() Decision[T] { return Decision[T]{} }

// Committed reports whether the host accepted the request.
func (d Decision[T]) Committed() bool { return d.committed }

// Value returns the committed value, or the zero value after a cancel.
func (d Decision[T]) Value() T { return d.value }

// Zone is a bulk insert produced by a fare-zone add.
type Zone struct {
	Nodes []visgraph.Node `json:"nodes"`
	Edges []visgraph.Edge `json:"edges"`
}

// Host is the application side of the bridge.
//
// Request methods block until the user has decided and may do I/O. A
// returned error is treated as a cancel. MoveStop and NetworkStabilized are
// notifications; their order matches the order of the events that caused
// them.
type Host interface {
	AddStop(ctx context.Context, proposed visgraph.Node) (Decision[visgraph.Node], error)
	EditStop(ctx context.Context, node visgraph.Node) (Decision[visgraph.Node], error)
	DeleteItems(ctx context.Context, sel store.Selection) (Decision[store.Selection], error)
	AddPathway(ctx context.Context, proposed visgraph.Edge) (Decision[visgraph.Edge], error)
	EditPathway(ctx context.Context, edge visgraph.Edge) (Decision[visgraph.Edge], error)
	AddFareZone(ctx context.Context, at visgraph.Point) (Decision[Zone], error)
	MoveStop(ctx context.Context, nodeID string, at visgraph.Point)
	NetworkStabilized(ctx context.Context)
}

// PositionBatcher is an optional [Host] extension. A host that implements
// it receives each stabilization as one call instead of a MoveStop per node.
type PositionBatcher interface {
	MovePositions(ctx context.Context, positions map[string]visgraph.Point)
}

// DialogGuard reports whether a modal dialog currently has focus.
type DialogGuard interface {
	DialogShown() bool
}

// DialogFunc adapts a function to [DialogGuard].
type DialogFunc func() bool

func (f DialogFunc) DialogShown() bool { return f() }
