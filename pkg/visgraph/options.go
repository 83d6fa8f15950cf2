package visgraph

import (
	"fmt"
	"math"
)

// LocaleName is the widget locale key the toolbar strings are registered under.
const LocaleName = "gtfs"

// Locale holds the manipulation toolbar strings.
type Locale struct {
	Edit                string `json:"edit" toml:"edit"`
	Del                 string `json:"del" toml:"del"`
	Back                string `json:"back" toml:"back"`
	AddNode             string `json:"addNode" toml:"add_node"`
	AddEdge             string `json:"addEdge" toml:"add_edge"`
	EditNode            string `json:"editNode" toml:"edit_node"`
	EditEdge            string `json:"editEdge" toml:"edit_edge"`
	AddDescription      string `json:"addDescription" toml:"add_description"`
	EdgeDescription     string `json:"edgeDescription" toml:"edge_description"`
	EditEdgeDescription string `json:"editEdgeDescription" toml:"edit_edge_description"`
	CreateEdgeError     string `json:"createEdgeError" toml:"create_edge_error"`
	DeleteClusterError  string `json:"deleteClusterError" toml:"delete_cluster_error"`
	EditClusterError    string `json:"editClusterError" toml:"edit_cluster_error"`
}

// DefaultLocale is the English toolbar.
var DefaultLocale = Locale{
	Edit:                "Edit",
	Del:                 "Delete selected",
	Back:                "Back",
	AddNode:             "Add Location",
	AddEdge:             "Add Pathway",
	EditNode:            "Edit Location",
	EditEdge:            "Edit Pathway",
	AddDescription:      "Click in an empty space to place a new location.",
	EdgeDescription:     "Click on a location and drag the pathway to another location to connect them.",
	EditEdgeDescription: "Click on the control points and drag them to a location to connect to it.",
	CreateEdgeError:     "Cannot link pathways to a cluster.",
	DeleteClusterError:  "Clusters cannot be deleted.",
	EditClusterError:    "Clusters cannot be edited.",
}

// WithDefaults fills every empty string from [DefaultLocale].
func (l Locale) WithDefaults() Locale {
	fill := func(s *string, def string) {
		if *s == "" {
			*s = def
		}
	}
	d := DefaultLocale
	fill(&l.Edit, d.Edit)
	fill(&l.Del, d.Del)
	fill(&l.Back, d.Back)
	fill(&l.AddNode, d.AddNode)
	fill(&l.AddEdge, d.AddEdge)
	fill(&l.EditNode, d.EditNode)
	fill(&l.EditEdge, d.EditEdge)
	fill(&l.AddDescription, d.AddDescription)
	fill(&l.EdgeDescription, d.EdgeDescription)
	fill(&l.EditEdgeDescription, d.EditEdgeDescription)
	fill(&l.CreateEdgeError, d.CreateEdgeError)
	fill(&l.DeleteClusterError, d.DeleteClusterError)
	fill(&l.EditClusterError, d.EditClusterError)
	return l
}

// Physics is passed through to the widget untouched.
type Physics struct {
	Enabled       bool          `json:"enabled" toml:"enabled"`
	Stabilization Stabilization `json:"stabilization" toml:"stabilization"`
}

// Stabilization controls the initial physics settle.
type Stabilization struct {
	Enabled    bool `json:"enabled" toml:"enabled"`
	Iterations int  `json:"iterations,omitempty" toml:"iterations"`
}

// NetworkConfig is the host-side input to [NetworkOptions].
type NetworkConfig struct {
	CanvasSize float64
	Physics    Physics
	Locale     Locale
}

// WidgetOptions is the options document handed to the widget at mount.
type WidgetOptions struct {
	Width        string             `json:"width"`
	Height       string             `json:"height"`
	Nodes        nodeDefaults       `json:"nodes"`
	Edges        edgeDefaults       `json:"edges"`
	Manipulation manipulation       `json:"manipulation"`
	Interaction  interaction        `json:"interaction"`
	Physics      Physics            `json:"physics"`
	Locales      map[string]Locale  `json:"locales"`
	Locale       string             `json:"locale"`
	PathwayModes PathwayModeOptions `json:"pathwayModes"`
}

// PathwayModeOptions ships the mode lookup tables with the options.
type PathwayModeOptions struct {
	Labels []string `json:"labels"`
	Colors []string `json:"colors"`
}

type nodeDefaults struct {
	BorderWidth int          `json:"borderWidth"`
	Scaling     labelScaling `json:"scaling"`
}

type labelScaling struct {
	Label scalingRange `json:"label"`
}

type scalingRange struct {
	Enabled bool `json:"enabled"`
	Min     int  `json:"min"`
	Max     int  `json:"max"`
}

type edgeDefaults struct {
	Width          int      `json:"width"`
	SelectionWidth int      `json:"selectionWidth"`
	Smooth         bool     `json:"smooth"`
	Font           edgeFont `json:"font"`
}

type edgeFont struct {
	Align string `json:"align"`
	Size  int    `json:"size"`
}

type manipulation struct {
	Enabled         bool `json:"enabled"`
	InitiallyActive bool `json:"initiallyActive"`
}

type interaction struct {
	DragView             bool `json:"dragView"`
	HoverConnectedEdges  bool `json:"hoverConnectedEdges"`
	SelectConnectedEdges bool `json:"selectConnectedEdges"`
	ZoomView             bool `json:"zoomView"`
}

// NetworkOptions builds the widget options for cfg.
func NetworkOptions(cfg NetworkConfig) WidgetOptions {
	size := cfg.CanvasSize
	if size <= 0 {
		size = DefaultCanvasSize
	}
	return WidgetOptions{
		Width:  "100%",
		Height: fmt.Sprintf("%dpx", int(math.Round(size))),
		Nodes: nodeDefaults{
			BorderWidth: 2,
			Scaling:     labelScaling{Label: scalingRange{Enabled: true, Min: 16, Max: 16}},
		},
		Edges: edgeDefaults{
			Width:          1,
			SelectionWidth: 2,
			Smooth:         true,
			Font:           edgeFont{Align: "middle", Size: 10},
		},
		Manipulation: manipulation{Enabled: true, InitiallyActive: true},
		Interaction: interaction{
			DragView: true,
			ZoomView: true,
		},
		Physics: cfg.Physics,
		Locales: map[string]Locale{LocaleName: cfg.Locale.WithDefaults()},
		Locale:  LocaleName,
		PathwayModes: PathwayModeOptions{
			Labels: ModeLabels[:],
			Colors: ModeColors[:],
		},
	}
}
