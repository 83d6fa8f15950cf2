package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/stationviz/pkg/transit"
	"github.com/matzehuels/stationviz/pkg/visgraph"
)

func writeDataset(t *testing.T, dir string, name string) string {
	t.Helper()
	ds := transit.Dataset{
		Stops: []transit.Stop{
			{ID: 1, Name: "Central", LocationType: transit.Station},
			{ID: 5, Name: "Platform", Lat: 45.50, Lon: -73.57, ParentStation: 1},
			{ID: 6, Name: "Entrance", Lat: 45.51, Lon: -73.56, LocationType: transit.EntranceExit, ParentStation: 1},
		},
		Pathways: []transit.Pathway{{ID: 10, FromStopID: 6, ToStopID: 5, Mode: transit.ModeWalkway}},
	}
	var buf bytes.Buffer
	if err := transit.WriteDataset(ds, &buf); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestBuildCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeDataset(t, dir, "station.json")
	out := filepath.Join(dir, "graph.json")

	if err := execute(t, "build", in, "--layout", "layered", "-o", out); err != nil {
		t.Fatalf("build: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var g visgraph.Graph
	if err := json.Unmarshal(data, &g); err != nil {
		t.Fatalf("output is not a graph: %v", err)
	}
	if len(g.Nodes) != 2 || len(g.Edges) != 1 {
		t.Errorf("got %d nodes, %d edges; want 2, 1", len(g.Nodes), len(g.Edges))
	}
}

func TestBuildCommandFromSource(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "42.json")
	cfg := writeConfig(t, "[source]\nbackend = \"file\"\ndir = \""+filepath.ToSlash(dir)+"\"\n")
	out := filepath.Join(dir, "stops.geojson")

	if err := execute(t, "--config", cfg, "build", "--station", "42", "-f", "geojson", "-o", out); err != nil {
		t.Fatalf("build: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "FeatureCollection") {
		t.Errorf("output is not GeoJSON: %s", data)
	}
}

func TestBuildCommandErrors(t *testing.T) {
	in := writeDataset(t, t.TempDir(), "station.json")

	tests := []struct {
		name string
		args []string
	}{
		{"no input", []string{"build"}},
		{"image format", []string{"build", in, "-f", "svg"}},
		{"bad layout", []string{"build", in, "--layout", "radial"}},
		{"missing file", []string{"build", "does-not-exist.json"}},
		{"too many args", []string{"build", in, in}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := execute(t, tt.args...); err == nil {
				t.Errorf("%v succeeded, want error", tt.args)
			}
		})
	}
}

func TestImageFormat(t *testing.T) {
	tests := []struct {
		format, output, want string
	}{
		{"", "", "svg"},
		{"", "out.PNG", "png"},
		{"", "out.pdf", "pdf"},
		{"png", "out.svg", "png"},
	}
	for _, tt := range tests {
		if got := imageFormat(tt.format, tt.output); got != tt.want {
			t.Errorf("imageFormat(%q, %q) = %q, want %q", tt.format, tt.output, got, tt.want)
		}
	}
	if err := validateImageFormat("json"); err == nil {
		t.Error("validateImageFormat accepted json")
	}
}

func TestDefaultOutput(t *testing.T) {
	if got := defaultOutput([]string{"data/central.json"}, 0, "svg"); got != "central.svg" {
		t.Errorf("defaultOutput(file) = %q", got)
	}
	if got := defaultOutput(nil, 42, "png"); got != "station-42.png" {
		t.Errorf("defaultOutput(station) = %q", got)
	}
}

func TestCachePathCommand(t *testing.T) {
	if err := execute(t, "cache", "path"); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if err := execute(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
}
