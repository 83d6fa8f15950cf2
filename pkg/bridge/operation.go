package bridge

import (
	"context"
	"sync"
	"time"
)

// Kind names the host request behind an operation.
type Kind string

const (
	KindAddStop     Kind = "add-stop"
	KindEditStop    Kind = "edit-stop"
	KindDelete      Kind = "delete"
	KindAddPathway  Kind = "add-pathway"
	KindEditPathway Kind = "edit-pathway"
	KindAddFareZone Kind = "add-fare-zone"
)

// State is the lifecycle state of an operation.
type State int

const (
	StateIdle State = iota
	StatePending
	StateCommitted
	StateCancelled
	StateTimedOut
)

var stateNames = [...]string{"idle", "pending", "committed", "cancelled", "timed-out"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Final reports whether s is a resolved state.
func (s State) Final() bool { return s >= StateCommitted }

// Operation is one pending host request.
type Operation struct {
	ID      string
	Kind    Kind
	Keys    []string
	Started time.Time

	mu    sync.Mutex
	state State
	err   error
	done  chan struct{}
}

func newOperation(id string, kind Kind, keys []string) *Operation {
	return &Operation{
		ID:      id,
		Kind:    kind,
		Keys:    keys,
		Started: time.Now(),
		state:   StatePending,
		done:    make(chan struct{}),
	}
}

// State returns the current state.
func (o *Operation) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Err returns why a committed decision could not be applied, if it failed.
func (o *Operation) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}

// Done is closed once the operation is resolved.
func (o *Operation) Done() <-chan struct{} { return o.done }

// Wait blocks until the operation resolves or ctx ends.
func (o *Operation) Wait(ctx context.Context) (State, error) {
	select {
	case <-o.done:
		return o.State(), o.Err()
	case <-ctx.Done():
		return o.State(), ctx.Err()
	}
}

func (o *Operation) resolve(s State, err error) {
	o.mu.Lock()
	o.state = s
	o.err = err
	o.mu.Unlock()
	close(o.done)
}
