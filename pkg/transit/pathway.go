package transit

import "fmt"

// PathwayMode is the GTFS pathway_mode. Modes start at 1; 0 is reserved.
type PathwayMode int

const (
	ModeUnset          PathwayMode = 0
	ModeWalkway        PathwayMode = 1
	ModeStairs         PathwayMode = 2
	ModeMovingSidewalk PathwayMode = 3
	ModeEscalator      PathwayMode = 4
	ModeLift           PathwayMode = 5
	ModeFareGate       PathwayMode = 6
	ModeExitGate       PathwayMode = 7
)

// MaxPathwayMode is the highest defined pathway mode.
const MaxPathwayMode = ModeExitGate

// Valid reports whether m is within the reserved-or-defined range 0..7.
func (m PathwayMode) Valid() bool { return m >= ModeUnset && m <= MaxPathwayMode }

func (m PathwayMode) String() string {
	switch m {
	case ModeUnset:
		return "unset"
	case ModeWalkway:
		return "walkway"
	case ModeStairs:
		return "stairs"
	case ModeMovingSidewalk:
		return "moving_sidewalk"
	case ModeEscalator:
		return "escalator"
	case ModeLift:
		return "lift"
	case ModeFareGate:
		return "fare_gate"
	case ModeExitGate:
		return "exit_gate"
	}
	return fmt.Sprintf("pathway_mode(%d)", int(m))
}

// Pathway links two stops of the same station.
type Pathway struct {
	ID              int         `json:"pathwayId" bson:"pathway_id"`
	FromStopID      int         `json:"fromStopId" bson:"from_stop_id"`
	ToStopID        int         `json:"toStopId" bson:"to_stop_id"`
	Mode            PathwayMode `json:"pathwayMode" bson:"pathway_mode"`
	IsBidirectional bool        `json:"isBidirectional" bson:"is_bidirectional"`

	// Physical attributes, all optional.
	Length        *float64 `json:"length,omitempty" bson:"length,omitempty"`
	TraversalTime *int     `json:"traversalTime,omitempty" bson:"traversal_time,omitempty"`
	StairCount    *int     `json:"stairCount,omitempty" bson:"stair_count,omitempty"`
	MaxSlope      *float64 `json:"maxSlope,omitempty" bson:"max_slope,omitempty"`
	MinWidth      *float64 `json:"minWidth,omitempty" bson:"min_width,omitempty"`

	SignpostedAs         string `json:"signpostedAs,omitempty" bson:"signposted_as,omitempty"`
	ReversedSignpostedAs string `json:"reversedSignpostedAs,omitempty" bson:"reversed_signposted_as,omitempty"`
}

// Touches reports whether the pathway starts or ends at stopID.
func (p Pathway) Touches(stopID int) bool {
	return p.FromStopID == stopID || p.ToStopID == stopID
}
