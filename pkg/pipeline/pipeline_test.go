package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stationviz/pkg/cache"
	"github.com/matzehuels/stationviz/pkg/transit"
	"github.com/matzehuels/stationviz/pkg/visgraph"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"geojson", false},
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"", true},
		{"SVG", true},
		{"html", true},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			err := ValidateFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}

func TestBuildOptions(t *testing.T) {
	tests := []struct {
		name    string
		layout  string
		want    visgraph.Layout
		wantErr bool
	}{
		{"Default", "", DefaultLayout, false},
		{"Geo", "geo", visgraph.LayoutGeographic, false},
		{"GeographicAlias", "geographic", visgraph.LayoutGeographic, false},
		{"Layered", "layered", visgraph.LayoutLayered, false},
		{"Unknown", "radial", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Options{Layout: tt.layout}.BuildOptions()
			if (err != nil) != tt.wantErr {
				t.Fatalf("BuildOptions() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got.Layout != tt.want {
				t.Errorf("Layout = %q, want %q", got.Layout, tt.want)
			}
		})
	}
}

func testDataset() transit.Dataset {
	return transit.Dataset{
		Stops: []transit.Stop{
			{ID: 1, Name: "Central", LocationType: transit.Station},
			{ID: 5, Name: "Platform A", Lat: 45.50, Lon: -73.57, ParentStation: 1},
			{ID: 6, Name: "Entrance", Lat: 45.51, Lon: -73.56, LocationType: transit.EntranceExit, ParentStation: 1},
		},
		Pathways: []transit.Pathway{
			{ID: 10, FromStopID: 6, ToStopID: 5, Mode: transit.ModeStairs, IsBidirectional: true},
		},
	}
}

func newTestRunner(t *testing.T) (*Runner, cache.Cache) {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	return NewRunner(fc, nil, log.New(io.Discard)), fc
}

func TestBuildCaches(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRunner(t)
	ds := testDataset()
	opts := Options{StationID: 1, Layout: "geo"}

	first, err := r.Build(ctx, ds, opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if first.CacheHit {
		t.Error("first build reported a cache hit")
	}
	if first.Stats.Nodes != 2 || first.Stats.Edges != 1 {
		t.Errorf("stats = %+v, want 2 nodes and 1 edge", first.Stats)
	}

	second, err := r.Build(ctx, ds, opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !second.CacheHit {
		t.Error("second build missed the cache")
	}
	if len(second.Graph.Nodes) != len(first.Graph.Nodes) {
		t.Errorf("cached graph has %d nodes, want %d", len(second.Graph.Nodes), len(first.Graph.Nodes))
	}

	refreshed, err := r.Build(ctx, ds, Options{StationID: 1, Layout: "geo", Refresh: true})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if refreshed.CacheHit {
		t.Error("refresh build reported a cache hit")
	}
}

func TestBuildCacheKeyedByContent(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRunner(t)
	ds := testDataset()
	opts := Options{StationID: 1, Layout: "geo"}

	if _, err := r.Build(ctx, ds, opts); err != nil {
		t.Fatalf("Build: %v", err)
	}

	ds.Stops[1].Name = "Platform B"
	res, err := r.Build(ctx, ds, opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.CacheHit {
		t.Error("edited dataset hit the cache")
	}
	if res.Graph.Nodes[0].Label != "Platform B" {
		t.Errorf("label = %q, want the edited name", res.Graph.Nodes[0].Label)
	}

	other, err := r.Build(ctx, ds, Options{StationID: 1, Layout: "layered"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if other.CacheHit {
		t.Error("different layout hit the cache")
	}
}

func TestBuildWithoutStationSkipsCache(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRunner(t)
	for i := 0; i < 2; i++ {
		res, err := r.Build(ctx, testDataset(), Options{Layout: "geo"})
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if res.CacheHit {
			t.Fatalf("build %d hit the cache without a station id", i)
		}
	}
}

func TestBuildAppliesHints(t *testing.T) {
	ctx := context.Background()
	r, c := newTestRunner(t)

	hints := map[string]visgraph.Point{"5": {X: 12, Y: 34}, "99": {X: 1, Y: 1}}
	if err := cache.SavePositions(ctx, c, r.Keyer, 1, hints); err != nil {
		t.Fatalf("SavePositions: %v", err)
	}

	res, err := r.Build(ctx, testDataset(), Options{StationID: 1, Layout: "geo", ApplyHints: true})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.HintsUsed != 1 {
		t.Errorf("HintsUsed = %d, want 1", res.HintsUsed)
	}
	for _, n := range res.Graph.Nodes {
		if n.ID != "5" {
			continue
		}
		if p, _ := n.Position(); p != hints["5"] {
			t.Errorf("node 5 at %v, want %v", p, hints["5"])
		}
	}

	plain, err := r.Build(ctx, testDataset(), Options{StationID: 1, Layout: "geo"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if plain.HintsUsed != 0 {
		t.Errorf("HintsUsed = %d without ApplyHints, want 0", plain.HintsUsed)
	}
}

func TestBuildRejectsInvalidDataset(t *testing.T) {
	r, _ := newTestRunner(t)
	ds := testDataset()
	ds.Pathways = append(ds.Pathways, transit.Pathway{ID: 11, FromStopID: 5, ToStopID: 404})
	if _, err := r.Build(context.Background(), ds, Options{Layout: "geo"}); err == nil {
		t.Fatal("Build accepted a dangling pathway")
	}
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRunner(t)
	ds := testDataset()
	res, err := r.Build(ctx, ds, Options{Layout: "geo"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	tests := []struct {
		format string
		check  func(t *testing.T, out []byte)
	}{
		{FormatJSON, func(t *testing.T, out []byte) {
			var g visgraph.Graph
			if err := json.Unmarshal(out, &g); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if len(g.Nodes) != 2 || len(g.Edges) != 1 {
				t.Errorf("got %d nodes, %d edges", len(g.Nodes), len(g.Edges))
			}
		}},
		{FormatGeoJSON, func(t *testing.T, out []byte) {
			if !strings.Contains(string(out), `"FeatureCollection"`) {
				t.Errorf("not a feature collection: %s", out)
			}
		}},
		{FormatDOT, func(t *testing.T, out []byte) {
			if !strings.HasPrefix(string(out), "digraph G {") {
				t.Errorf("unexpected DOT header: %q", out)
			}
			if !strings.Contains(string(out), `"6" -> "5"`) {
				t.Errorf("DOT is missing the pathway edge")
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := r.Export(ctx, ds, res.Graph, tt.format, Options{})
			if err != nil {
				t.Fatalf("Export: %v", err)
			}
			tt.check(t, out)
		})
	}

	if _, err := r.Export(ctx, ds, res.Graph, "html", Options{}); err == nil {
		t.Error("Export accepted an unknown format")
	}
}
