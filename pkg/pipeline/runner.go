package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stationviz/pkg/cache"
	"github.com/matzehuels/stationviz/pkg/dataset"
	"github.com/matzehuels/stationviz/pkg/observability"
	"github.com/matzehuels/stationviz/pkg/transit"
	"github.com/matzehuels/stationviz/pkg/visgraph"
)

// Runner executes pipeline stages with caching. It holds no per-build
// state and is safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner returns a runner. A nil cache disables caching and a nil keyer
// means [cache.DefaultKeyer].
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Load reads a station from src.
func (r *Runner) Load(ctx context.Context, src dataset.Source, stationID int) (transit.Dataset, error) {
	start := time.Now()
	ds, err := src.Load(ctx, stationID)
	if err != nil {
		return transit.Dataset{}, err
	}
	r.Logger.Debug("loaded station", "station", stationID, "stops", len(ds.Stops), "pathways", len(ds.Pathways), "duration", time.Since(start))
	return ds, nil
}

// Build projects ds into a graph, consulting the graph cache first.
func (r *Runner) Build(ctx context.Context, ds transit.Dataset, opts Options) (*Result, error) {
	bopts, err := opts.BuildOptions()
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(ds)
	if err != nil {
		return nil, fmt.Errorf("hash dataset: %w", err)
	}
	res := &Result{DatasetHash: cache.Hash(raw)}

	caching := opts.StationID != 0 && opts.Center == nil
	key := r.Keyer.GraphKey(opts.StationID, res.DatasetHash, opts.GraphKeyOpts())

	if caching && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var g visgraph.Graph
			if err := json.NewDecoder(bytes.NewReader(data)).Decode(&g); err == nil {
				res.Graph, res.CacheHit = g, true
			}
		}
	}

	if !res.CacheHit {
		start := time.Now()
		observability.Build().OnBuildStart(ctx, string(bopts.Layout), len(ds.Stops), len(ds.Pathways))
		g, err := visgraph.Build(ds, bopts)
		res.Stats.BuildTime = time.Since(start)
		observability.Build().OnBuildComplete(ctx, string(bopts.Layout), len(g.Nodes), len(g.Edges), res.Stats.BuildTime, err)
		if err != nil {
			return nil, err
		}
		res.Graph = g

		if caching {
			if data, err := json.Marshal(g); err == nil {
				if err := r.Cache.Set(ctx, key, data, cache.TTLGraph); err != nil {
					r.Logger.Warn("cache graph", "station", opts.StationID, "err", err)
				}
			}
		}
	}

	if opts.ApplyHints && opts.StationID != 0 {
		hints, err := cache.LoadPositions(ctx, r.Cache, r.Keyer, opts.StationID)
		if err != nil {
			r.Logger.Warn("load position hints", "station", opts.StationID, "err", err)
		}
		res.HintsUsed = applyHints(&res.Graph, hints)
	}

	res.Stats.Nodes = len(res.Graph.Nodes)
	res.Stats.Edges = len(res.Graph.Edges)
	r.Logger.Info("built graph",
		"station", opts.StationID,
		"layout", bopts.Layout,
		"nodes", res.Stats.Nodes,
		"edges", res.Stats.Edges,
		"cached", res.CacheHit,
		"hints", res.HintsUsed)
	return res, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func applyHints(g *visgraph.Graph, hints map[string]visgraph.Point) int {
	n := 0
	for i := range g.Nodes {
		if p, ok := hints[g.Nodes[i].ID]; ok {
			g.Nodes[i].SetPosition(p)
			n++
		}
	}
	return n
}
