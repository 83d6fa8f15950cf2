// Package pipeline runs the load → build → export flow shared by the CLI
// and the HTTP server.
//
// # Stages
//
//  1. Load: a station dataset from a [dataset.Source] or a JSON file
//  2. Build: [visgraph.Build] with caching and optional position hints
//  3. Export: the built graph as widget JSON, GeoJSON, DOT, SVG, PNG or PDF
//
// # Caching
//
// Built graphs are cached under a key derived from the station id, the
// dataset content hash and the build options, so a changed dataset never
// returns a stale graph. Position hints (manual layouts saved by the host)
// are stored separately and applied on top of a build when
// [Options.ApplyHints] is set.
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Build(ctx, ds, pipeline.Options{StationID: 42, Layout: "geo"})
//	out, err := runner.Export(ctx, ds, res.Graph, pipeline.FormatSVG)
package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/stationviz/pkg/cache"
	"github.com/matzehuels/stationviz/pkg/visgraph"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatGeoJSON = "geojson"
	FormatDOT     = "dot"
	FormatSVG     = "svg"
	FormatPNG     = "png"
	FormatPDF     = "pdf"
)

// DefaultLayout is used when Options.Layout is empty.
const DefaultLayout = visgraph.LayoutPhysics

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON:    true,
	FormatGeoJSON: true,
	FormatDOT:     true,
	FormatSVG:     true,
	FormatPNG:     true,
	FormatPDF:     true,
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, geojson, dot, svg, png, pdf)", format)
	}
	return nil
}

// Options configures a build.
type Options struct {
	// StationID scopes cache keys. Zero disables caching for the build, as
	// does a non-nil Center.
	StationID int `json:"station_id"`

	Layout       string          `json:"layout,omitempty"`
	CanvasSize   float64         `json:"canvas_size,omitempty"`
	StepX        float64         `json:"step_x,omitempty"`
	StepY        float64         `json:"step_y,omitempty"`
	Center       *visgraph.Point `json:"center,omitempty"`
	ShowStations bool            `json:"show_stations,omitempty"`

	// ApplyHints overlays cached position hints on the built graph.
	ApplyHints bool `json:"apply_hints,omitempty"`

	// Refresh skips the graph cache read; the result is still written.
	Refresh bool `json:"refresh,omitempty"`

	// Detailed adds ids and location types to rendered labels.
	Detailed bool `json:"detailed,omitempty"`
}

// BuildOptions converts o to builder options.
func (o Options) BuildOptions() (visgraph.Options, error) {
	name := o.Layout
	if name == "" {
		name = string(DefaultLayout)
	}
	layout, err := visgraph.ParseLayout(name)
	if err != nil {
		return visgraph.Options{}, err
	}
	return visgraph.Options{
		Layout:       layout,
		CanvasSize:   o.CanvasSize,
		StepX:        o.StepX,
		StepY:        o.StepY,
		Center:       o.Center,
		ShowStations: o.ShowStations,
	}, nil
}

// GraphKeyOpts returns the options that take part in the graph cache key.
func (o Options) GraphKeyOpts() cache.GraphKeyOpts {
	layout := o.Layout
	if layout == "" {
		layout = string(DefaultLayout)
	}
	return cache.GraphKeyOpts{
		Layout:       layout,
		CanvasSize:   o.CanvasSize,
		StepX:        o.StepX,
		StepY:        o.StepY,
		ShowStations: o.ShowStations,
	}
}

// Result is the outcome of a build.
type Result struct {
	Graph       visgraph.Graph
	DatasetHash string
	CacheHit    bool
	HintsUsed   int
	Stats       Stats
}

// Stats holds build sizes and timing.
type Stats struct {
	Nodes     int
	Edges     int
	BuildTime time.Duration
}
