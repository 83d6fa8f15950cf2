package bridge

import (
	"github.com/matzehuels/stationviz/pkg/store"
	"github.com/matzehuels/stationviz/pkg/visgraph"
)

// Event is a widget interaction event.
type Event interface {
	event()
}

// Select reports the widget's current selection.
type Select struct {
	Selection store.Selection `json:"selection"`
}

// DoubleClick is a double click on the canvas or an element.
// With Ctrl held it adds a fare zone at At.
type DoubleClick struct {
	At   visgraph.Point `json:"at"`
	Ctrl bool           `json:"ctrl"`
}

// ContextClick is a right click. With one edge selected it enters
// edge-edit mode.
type ContextClick struct{}

// EdgeDragged reports new endpoints for an edge in edge-edit mode.
type EdgeDragged struct {
	EdgeID string `json:"edgeId"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// ConnectNodes is the widget's add-edge gesture.
type ConnectNodes struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// DeleteSelected is the widget toolbar's delete button.
type DeleteSelected struct{}

// KeyDown is a global key press. Backspace and Delete delete the selection.
type KeyDown struct {
	Key string `json:"key"`
}

// DragEnd reports where a dragged node was dropped.
type DragEnd struct {
	NodeID string         `json:"nodeId"`
	At     visgraph.Point `json:"at"`
}

// Stabilized reports node positions after the physics simulation settled.
type Stabilized struct {
	Positions map[string]visgraph.Point `json:"positions"`
}

func (Select) event()         {}
func (DoubleClick) event()    {}
func (ContextClick) event()   {}
func (EdgeDragged) event()    {}
func (ConnectNodes) event()   {}
func (DeleteSelected) event() {}
func (KeyDown) event()        {}
func (DragEnd) event()        {}
func (Stabilized) event()     {}

// Delete keys.
const (
	KeyBackspace = "Backspace"
	KeyDelete    = "Delete"
)

func isDeleteKey(k string) bool { return k == KeyBackspace || k == KeyDelete }

// Mode is the widget's manipulation mode as tracked by the bridge.
type Mode int32

const (
	ModeNone Mode = iota
	ModeEditEdge
)

func (m Mode) String() string {
	if m == ModeEditEdge {
		return "edit-edge"
	}
	return "none"
}
