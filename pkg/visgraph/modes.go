package visgraph

import "github.com/matzehuels/stationviz/pkg/transit"

// DefaultEdgeColor is used for mode 0 and any undefined mode.
const DefaultEdgeColor = "#000000"

// ModeLabels is indexed by pathway mode. Index 0 is reserved.
var ModeLabels = [...]string{
	"",
	"Walkway",
	"Stairs",
	"MovingSidewalk",
	"Escalator",
	"Lift",
	"FareGate",
	"ExitGate",
}

// ModeColors is indexed by pathway mode. Index 0 is reserved.
var ModeColors = [...]string{
	"",
	"#000000",
	"#6898ee",
	"#888888",
	"#7ecb7d",
	"#f38e1a",
	"#9772c4",
	"#f2565c",
}

// ModeLabel returns the edge label for m, or "" for reserved and unknown modes.
func ModeLabel(m transit.PathwayMode) string {
	if m <= transit.ModeUnset || int(m) >= len(ModeLabels) {
		return ""
	}
	return ModeLabels[m]
}

// ModeColor returns the edge color for m, or [DefaultEdgeColor].
func ModeColor(m transit.PathwayMode) string {
	if m <= transit.ModeUnset || int(m) >= len(ModeColors) {
		return DefaultEdgeColor
	}
	return ModeColors[m]
}
