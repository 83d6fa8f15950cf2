package server

import (
	"encoding/json"

	"github.com/matzehuels/stationviz/pkg/bridge"
	"github.com/matzehuels/stationviz/pkg/errors"
)

// dialogEventType toggles the keyboard delete guard. It never reaches the
// bridge.
const dialogEventType = "dialog"

// envelope is the wire form of a widget event.
type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

func decodeEvent(env envelope) (bridge.Event, error) {
	var ev bridge.Event
	switch env.Type {
	case "select":
		ev = &bridge.Select{}
	case "doubleClick":
		ev = &bridge.DoubleClick{}
	case "contextClick":
		return bridge.ContextClick{}, nil
	case "edgeDragged":
		ev = &bridge.EdgeDragged{}
	case "connectNodes":
		ev = &bridge.ConnectNodes{}
	case "deleteSelected":
		return bridge.DeleteSelected{}, nil
	case "keyDown":
		ev = &bridge.KeyDown{}
	case "dragEnd":
		ev = &bridge.DragEnd{}
	case "stabilized":
		ev = &bridge.Stabilized{}
	case "":
		return nil, errors.New(errors.ErrCodeInvalidInput, "event type is required")
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown event type %q", env.Type)
	}

	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, ev); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s event", env.Type)
		}
	}
	return deref(ev), nil
}

// deref turns the decode target back into the value the bridge routes on.
func deref(ev bridge.Event) bridge.Event {
	switch ev := ev.(type) {
	case *bridge.Select:
		return *ev
	case *bridge.DoubleClick:
		return *ev
	case *bridge.EdgeDragged:
		return *ev
	case *bridge.ConnectNodes:
		return *ev
	case *bridge.KeyDown:
		return *ev
	case *bridge.DragEnd:
		return *ev
	case *bridge.Stabilized:
		return *ev
	}
	return ev
}

func decodeDialog(env envelope) (bool, error) {
	var d struct {
		Shown *bool `json:"shown"`
	}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return false, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode dialog event")
		}
	}
	if d.Shown == nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "dialog event needs \"shown\"")
	}
	return *d.Shown, nil
}
