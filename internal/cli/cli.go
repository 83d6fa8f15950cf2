// Package cli implements the stationviz command-line interface.
//
// # Commands
//
//   - build: project a station dataset into the widget graph (json, geojson, dot)
//   - render: draw a station graph as SVG, PNG or PDF
//   - serve: run the HTTP API with live event sessions
//   - inspect: browse the nodes and edges of a built graph in the terminal
//   - cache: clear or locate the graph cache
//
// Datasets come from a JSON file argument or, with --station, from the
// configured source (a directory of <station>.json files or MongoDB).
//
// # Configuration
//
// Defaults are read from a TOML file (see [Config]); flags override it.
// All commands accept --verbose (-v) for debug logging.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stationviz/pkg/buildinfo"
	"github.com/matzehuels/stationviz/pkg/cache"
	"github.com/matzehuels/stationviz/pkg/dataset"
	"github.com/matzehuels/stationviz/pkg/pipeline"
	"github.com/matzehuels/stationviz/pkg/transit"
)

// appName names the config and cache directories.
const appName = "stationviz"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	config     Config
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), config: DefaultConfig()}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// The config file is loaded before any subcommand runs.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Stationviz builds editable station pathway graphs",
		Long:         `Stationviz projects GTFS station stops and pathways into an interactive node-link graph, renders it, and serves an editing API that persists changes back to the station dataset.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cfg, err := loadConfig(c.configPath, c.Logger)
			if err != nil {
				return err
			}
			c.config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/stationviz/config.toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache.Observed(ch), c.keyer(), c.Logger), nil
}

// keyer returns the cache keyer, scoped when the config names a scope.
func (c *CLI) keyer() cache.Keyer {
	if scope := c.config.Cache.Scope; scope != "" {
		return cache.NewScopedKeyer(nil, scope)
	}
	return cache.NewDefaultKeyer()
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.config.Cache
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.Prefix,
		})
	case "", "file":
		dir := cfg.Dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				c.Logger.Warn("no cache directory, caching disabled", "err", err)
				return cache.NewNullCache(), nil
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	}
	return nil, fmt.Errorf("unknown cache backend %q (must be file, redis or none)", cfg.Backend)
}

// newSource opens the configured dataset source.
func (c *CLI) newSource(ctx context.Context) (dataset.Source, error) {
	cfg := c.config.Source
	switch cfg.Backend {
	case "", "file":
		dir := cfg.Dir
		if dir == "" {
			dir = "."
		}
		return dataset.NewFileSource(dir), nil
	case "mongo":
		return dataset.NewMongoSource(ctx, dataset.MongoOptions{
			URI:        cfg.MongoURI,
			Database:   cfg.Database,
			Collection: cfg.Collection,
		})
	}
	return nil, fmt.Errorf("unknown source backend %q (must be file or mongo)", cfg.Backend)
}

// loadDataset reads the dataset named by a file argument, or by stationID
// from the configured source when no file is given.
func (c *CLI) loadDataset(ctx context.Context, runner *pipeline.Runner, args []string, stationID int) (transit.Dataset, error) {
	if len(args) > 0 {
		return transit.LoadDataset(args[0])
	}
	if stationID <= 0 {
		return transit.Dataset{}, fmt.Errorf("a dataset file or --station is required")
	}
	src, err := c.newSource(ctx)
	if err != nil {
		return transit.Dataset{}, err
	}
	defer src.Close(ctx)
	return runner.Load(ctx, src, stationID)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/stationviz/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configPath returns the default config file (~/.config/stationviz/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
