package bridge

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/stationviz/pkg/observability"
	"github.com/matzehuels/stationviz/pkg/store"
	"github.com/matzehuels/stationviz/pkg/visgraph"
)

// DefaultResolveTimeout bounds how long a host request may stay pending.
const DefaultResolveTimeout = 2 * time.Minute

const canvasKey = "canvas"

var (
	// ErrBusy is returned when a gesture targets an element that already
	// has a pending operation.
	ErrBusy = errors.New("element has a pending operation")

	// ErrNoTarget is returned when the selection does not fit the gesture.
	ErrNoTarget = errors.New("gesture has no target")

	// ErrSuppressed is returned for a keyboard delete while a dialog is shown.
	ErrSuppressed = errors.New("keyboard delete suppressed while a dialog is shown")

	// ErrWrongMode is returned for an edge drag outside edge-edit mode.
	ErrWrongMode = errors.New("not in edge-edit mode")

	// ErrClosed is returned by Submit after Close or once Run has returned.
	ErrClosed = errors.New("bridge closed")
)

// Options configures a [Bridge].
type Options struct {
	// ResolveTimeout cancels host requests that stay pending this long.
	// Zero means [DefaultResolveTimeout].
	ResolveTimeout time.Duration

	// DialogGuard suppresses keyboard deletes while it reports a dialog.
	DialogGuard DialogGuard

	Logger *log.Logger
}

// Bridge routes events for one mounted graph.
type Bridge struct {
	store  store.Store
	host   Host
	opts   Options
	logger *log.Logger

	requests chan request
	results  chan resolution
	notify   chan func(context.Context)

	closeOnce sync.Once
	closed    chan struct{}
	stopped   chan struct{}

	mode atomic.Int32

	subsMu sync.Mutex
	subs   map[*subscription]struct{}

	// Owned by the loop goroutine.
	selection  store.Selection
	held       map[string]*Operation
	stabilized bool
}

type request struct {
	ev    Event
	reply chan reply
}

type reply struct {
	op  *Operation
	err error
}

type resolution struct {
	op    *Operation
	state State
	apply func() error
}

// New returns a bridge over s that asks h for decisions.
func New(s store.Store, h Host, opts Options) *Bridge {
	if opts.ResolveTimeout <= 0 {
		opts.ResolveTimeout = DefaultResolveTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Bridge{
		store:    s,
		host:     h,
		opts:     opts,
		logger:   logger,
		requests: make(chan request),
		results:  make(chan resolution),
		notify:   make(chan func(context.Context), 1024),
		closed:   make(chan struct{}),
		stopped:  make(chan struct{}),
		subs:     make(map[*subscription]struct{}),
		held:     make(map[string]*Operation),
	}
}

// Mode returns the current manipulation mode.
func (b *Bridge) Mode() Mode { return Mode(b.mode.Load()) }

// Run processes events until ctx ends or Close is called. Operations still
// pending on return resolve as cancelled.
func (b *Bridge) Run(ctx context.Context) error {
	defer close(b.stopped)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		b.notifier(ctx)
	}()
	defer func() {
		cancel()
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			b.cancelPending()
			return ctx.Err()
		case <-b.closed:
			b.cancelPending()
			return nil
		case req := <-b.requests:
			op, err := b.route(ctx, req.ev)
			req.reply <- reply{op: op, err: err}
		case res := <-b.results:
			b.finish(ctx, res)
		}
	}
}

// Submit hands ev to the event loop and returns the operation it started,
// if any. Events that only update state return a nil operation.
func (b *Bridge) Submit(ev Event) (*Operation, error) {
	req := request{ev: ev, reply: make(chan reply, 1)}
	select {
	case b.requests <- req:
	case <-b.closed:
		return nil, ErrClosed
	case <-b.stopped:
		return nil, ErrClosed
	}
	r := <-req.reply
	return r.op, r.err
}

// Close stops the loop and releases every key subscription.
func (b *Bridge) Close() error {
	b.closeOnce.Do(func() { close(b.closed) })

	b.subsMu.Lock()
	subs := make([]*subscription, 0, len(b.subs))
	for s := range b.subs {
		subs = append(subs, s)
	}
	b.subsMu.Unlock()
	for _, s := range subs {
		s.Close()
	}
	return nil
}

// =============================================================================
// Routing
// =============================================================================

func (b *Bridge) route(ctx context.Context, ev Event) (*Operation, error) {
	switch ev := ev.(type) {
	case Select:
		b.selection = ev.Selection
		if b.Mode() == ModeEditEdge && !(len(ev.Selection.Nodes) == 0 && len(ev.Selection.Edges) == 1) {
			b.setMode(ModeNone)
		}
		return nil, nil
	case DoubleClick:
		return b.doubleClick(ctx, ev)
	case ContextClick:
		if len(b.selection.Nodes) != 0 || len(b.selection.Edges) != 1 {
			return nil, ErrNoTarget
		}
		b.setMode(ModeEditEdge)
		return nil, nil
	case EdgeDragged:
		return b.edgeDragged(ctx, ev)
	case ConnectNodes:
		return b.connect(ctx, ev)
	case DeleteSelected:
		return b.deleteSelection(ctx)
	case KeyDown:
		if !isDeleteKey(ev.Key) {
			return nil, nil
		}
		if g := b.opts.DialogGuard; g != nil && g.DialogShown() {
			b.logger.Debug("keyboard delete suppressed", "key", ev.Key)
			return nil, ErrSuppressed
		}
		return b.deleteSelection(ctx)
	case DragEnd:
		if ev.NodeID == "" {
			return nil, nil
		}
		if _, ok := b.store.Node(ev.NodeID); !ok {
			return nil, fmt.Errorf("drag end %s: %w", ev.NodeID, store.ErrNotFound)
		}
		b.store.SetPositions(map[string]visgraph.Point{ev.NodeID: ev.At})
		id, at := ev.NodeID, ev.At
		b.enqueue(func(ctx context.Context) { b.host.MoveStop(ctx, id, at) })
		return nil, nil
	case Stabilized:
		b.stabilize(ev)
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported event %T", ev)
	}
}

func (b *Bridge) doubleClick(ctx context.Context, ev DoubleClick) (*Operation, error) {
	sel := b.selection
	switch {
	case ev.Ctrl:
		at := ev.At
		return b.start(ctx, KindAddFareZone, []string{canvasKey}, func(ctx context.Context) (func() error, bool, error) {
			d, err := b.host.AddFareZone(ctx, at)
			if err != nil || !d.Committed() {
				return nil, false, err
			}
			z := d.Value()
			return func() error { return b.store.Insert(z.Nodes, z.Edges) }, true, nil
		})
	case len(sel.Nodes) == 1:
		return b.editNode(ctx, sel.Nodes[0])
	case len(sel.Edges) == 1:
		return b.editEdge(ctx, sel.Edges[0])
	default:
		return b.addNode(ctx, ev.At)
	}
}

func (b *Bridge) addNode(ctx context.Context, at visgraph.Point) (*Operation, error) {
	var proposed visgraph.Node
	proposed.SetPosition(at)
	return b.start(ctx, KindAddStop, []string{canvasKey}, func(ctx context.Context) (func() error, bool, error) {
		d, err := b.host.AddStop(ctx, proposed)
		if err != nil || !d.Committed() {
			return nil, false, err
		}
		n := d.Value()
		if _, ok := n.Position(); !ok {
			n.SetPosition(at)
		}
		return func() error { return b.store.Insert([]visgraph.Node{n}, nil) }, true, nil
	})
}

func (b *Bridge) editNode(ctx context.Context, id string) (*Operation, error) {
	n, ok := b.store.Node(id)
	if !ok {
		return nil, fmt.Errorf("edit node %s: %w", id, store.ErrNotFound)
	}
	return b.start(ctx, KindEditStop, []string{nodeKey(id)}, func(ctx context.Context) (func() error, bool, error) {
		d, err := b.host.EditStop(ctx, n)
		if err != nil || !d.Committed() {
			return nil, false, err
		}
		edited := d.Value()
		edited.ID = id
		return func() error { return b.store.UpdateNode(edited) }, true, nil
	})
}

func (b *Bridge) editEdge(ctx context.Context, id string) (*Operation, error) {
	e, ok := b.store.Edge(id)
	if !ok {
		return nil, fmt.Errorf("edit edge %s: %w", id, store.ErrNotFound)
	}
	return b.askEditEdge(ctx, e)
}

func (b *Bridge) edgeDragged(ctx context.Context, ev EdgeDragged) (*Operation, error) {
	if b.Mode() != ModeEditEdge {
		return nil, ErrWrongMode
	}
	e, ok := b.store.Edge(ev.EdgeID)
	if !ok {
		return nil, fmt.Errorf("edit edge %s: %w", ev.EdgeID, store.ErrNotFound)
	}
	for _, end := range []string{ev.From, ev.To} {
		if _, ok := b.store.Node(end); !ok {
			return nil, fmt.Errorf("edit edge %s endpoint %s: %w", ev.EdgeID, end, store.ErrNotFound)
		}
	}
	refreshed, err := visgraph.RefreshEdge(e, ev.From, ev.To)
	if err != nil {
		return nil, err
	}
	op, err := b.askEditEdge(ctx, refreshed)
	if err == nil {
		b.setMode(ModeNone)
	}
	return op, err
}

// askEditEdge holds the edge and both endpoints, so a pending node delete
// cannot miss an edge reattached to it.
func (b *Bridge) askEditEdge(ctx context.Context, e visgraph.Edge) (*Operation, error) {
	id := e.ID
	keys := []string{edgeKey(id), nodeKey(e.From)}
	if e.To != e.From {
		keys = append(keys, nodeKey(e.To))
	}
	return b.start(ctx, KindEditPathway, keys, func(ctx context.Context) (func() error, bool, error) {
		d, err := b.host.EditPathway(ctx, e)
		if err != nil || !d.Committed() {
			return nil, false, err
		}
		edited := d.Value()
		edited.ID = id
		return func() error { return b.store.UpdateEdge(edited) }, true, nil
	})
}

func (b *Bridge) connect(ctx context.Context, ev ConnectNodes) (*Operation, error) {
	for _, end := range []string{ev.From, ev.To} {
		if _, ok := b.store.Node(end); !ok {
			return nil, fmt.Errorf("connect %s: %w", end, store.ErrNotFound)
		}
	}
	proposed := visgraph.Edge{From: ev.From, To: ev.To}
	keys := []string{nodeKey(ev.From)}
	if ev.To != ev.From {
		keys = append(keys, nodeKey(ev.To))
	}
	return b.start(ctx, KindAddPathway, keys, func(ctx context.Context) (func() error, bool, error) {
		d, err := b.host.AddPathway(ctx, proposed)
		if err != nil || !d.Committed() {
			return nil, false, err
		}
		e := d.Value()
		if e.From == "" {
			e.From = proposed.From
		}
		if e.To == "" {
			e.To = proposed.To
		}
		return func() error { return b.store.Insert(nil, []visgraph.Edge{e}) }, true, nil
	})
}

func (b *Bridge) deleteSelection(ctx context.Context) (*Operation, error) {
	sel := b.selection
	if !sel.Single() {
		return nil, ErrNoTarget
	}

	var req store.Selection
	if len(sel.Nodes) == 1 {
		id := sel.Nodes[0]
		if _, ok := b.store.Node(id); !ok {
			return nil, fmt.Errorf("delete node %s: %w", id, store.ErrNotFound)
		}
		req.Nodes = []string{id}
		req.Edges = b.store.ConnectedEdges(id)
	} else {
		id := sel.Edges[0]
		if _, ok := b.store.Edge(id); !ok {
			return nil, fmt.Errorf("delete edge %s: %w", id, store.ErrNotFound)
		}
		req.Edges = []string{id}
	}

	keys := make([]string, 0, len(req.Nodes)+len(req.Edges))
	for _, id := range req.Nodes {
		keys = append(keys, nodeKey(id))
	}
	for _, id := range req.Edges {
		keys = append(keys, edgeKey(id))
	}

	return b.start(ctx, KindDelete, keys, func(ctx context.Context) (func() error, bool, error) {
		d, err := b.host.DeleteItems(ctx, req)
		if err != nil || !d.Committed() {
			return nil, false, err
		}
		confirmed := d.Value()
		return func() error {
			_, err := b.store.Remove(confirmed)
			return err
		}, true, nil
	})
}

func (b *Bridge) stabilize(ev Stabilized) {
	ids := make([]string, 0, len(ev.Positions))
	for id := range ev.Positions {
		if _, ok := b.store.Node(id); ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	known := make(map[string]visgraph.Point, len(ids))
	for _, id := range ids {
		known[id] = ev.Positions[id]
	}
	b.store.SetPositions(known)

	first := !b.stabilized
	b.stabilized = true
	b.enqueue(func(ctx context.Context) {
		if pb, ok := b.host.(PositionBatcher); ok {
			pb.MovePositions(ctx, known)
		} else {
			for _, id := range ids {
				b.host.MoveStop(ctx, id, known[id])
			}
		}
		observability.Bridge().OnPositionReport(ctx, len(ids))
		if first {
			b.host.NetworkStabilized(ctx)
		}
	})
}

// =============================================================================
// Operations
// =============================================================================

// hostCall runs on its own goroutine and reports what to apply on commit.
type hostCall func(ctx context.Context) (apply func() error, committed bool, err error)

func (b *Bridge) start(ctx context.Context, kind Kind, keys []string, fn hostCall) (*Operation, error) {
	for _, k := range keys {
		if held, ok := b.held[k]; ok {
			return nil, fmt.Errorf("%s on %s held by %s %s: %w", kind, k, held.Kind, held.ID, ErrBusy)
		}
	}

	op := newOperation(uuid.NewString(), kind, keys)
	for _, k := range keys {
		b.held[k] = op
	}
	b.logger.Debug("operation pending", "op", op.ID, "kind", kind, "keys", keys)
	observability.Bridge().OnOperationStart(ctx, op.ID, string(kind))

	go b.await(ctx, op, fn)
	return op, nil
}

func (b *Bridge) await(ctx context.Context, op *Operation, fn hostCall) {
	type outcome struct {
		apply     func() error
		committed bool
		err       error
	}

	actx, cancel := context.WithTimeout(ctx, b.opts.ResolveTimeout)
	defer cancel()

	ch := make(chan outcome, 1)
	go func() {
		apply, committed, err := fn(actx)
		ch <- outcome{apply, committed, err}
	}()

	res := resolution{op: op, state: StateCancelled}
	select {
	case o := <-ch:
		switch {
		case o.err != nil && errors.Is(actx.Err(), context.DeadlineExceeded):
			res.state = StateTimedOut
		case o.err != nil:
			b.logger.Warn("host request failed", "op", op.ID, "kind", op.Kind, "err", o.err)
		case o.committed:
			res.state, res.apply = StateCommitted, o.apply
		}
	case <-actx.Done():
		if errors.Is(actx.Err(), context.DeadlineExceeded) {
			res.state = StateTimedOut
		}
	}

	select {
	case b.results <- res:
	case <-b.stopped:
	}
}

func (b *Bridge) finish(ctx context.Context, res resolution) {
	op := res.op
	var err error
	if res.state == StateCommitted {
		if err = res.apply(); err != nil {
			b.logger.Error("apply committed decision", "op", op.ID, "kind", op.Kind, "err", err)
			res.state = StateCancelled
		} else {
			b.pruneSelection()
		}
	}
	b.release(op)
	op.resolve(res.state, err)

	b.logger.Debug("operation resolved", "op", op.ID, "kind", op.Kind, "state", res.state)
	observability.Bridge().OnOperationResolved(ctx, op.ID, string(op.Kind), res.state.String(), time.Since(op.Started))
}

// pruneSelection drops selected ids that are no longer in the store.
func (b *Bridge) pruneSelection() {
	b.selection.Nodes = slices.DeleteFunc(b.selection.Nodes, func(id string) bool {
		_, ok := b.store.Node(id)
		return !ok
	})
	b.selection.Edges = slices.DeleteFunc(b.selection.Edges, func(id string) bool {
		_, ok := b.store.Edge(id)
		return !ok
	})
}

func (b *Bridge) release(op *Operation) {
	for _, k := range op.Keys {
		if b.held[k] == op {
			delete(b.held, k)
		}
	}
}

func (b *Bridge) cancelPending() {
	seen := make(map[*Operation]bool)
	for _, op := range b.held {
		if seen[op] {
			continue
		}
		seen[op] = true
		op.resolve(StateCancelled, nil)
	}
	clear(b.held)
}

func (b *Bridge) setMode(m Mode) { b.mode.Store(int32(m)) }

func (b *Bridge) enqueue(fn func(context.Context)) {
	select {
	case b.notify <- fn:
	case <-b.closed:
	}
}

func (b *Bridge) notifier(ctx context.Context) {
	for {
		select {
		case fn := <-b.notify:
			fn(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func nodeKey(id string) string { return "node:" + id }
func edgeKey(id string) string { return "edge:" + id }
