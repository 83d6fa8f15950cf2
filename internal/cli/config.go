package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/stationviz/pkg/bridge"
	"github.com/matzehuels/stationviz/pkg/pipeline"
	"github.com/matzehuels/stationviz/pkg/visgraph"
)

// Config is the TOML configuration file.
//
//	[graph]
//	layout = "geo"
//	canvas_size = 1000
//
//	[physics]
//	enabled = true
//	[physics.stabilization]
//	enabled = true
//	iterations = 200
//
//	[server]
//	listen = ":8080"
//	resolve_timeout = "2m"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[source]
//	backend = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
type Config struct {
	Graph   GraphConfig      `toml:"graph"`
	Physics visgraph.Physics `toml:"physics"`
	Locale  visgraph.Locale  `toml:"locale"`
	Server  ServerConfig     `toml:"server"`
	Cache   CacheConfig      `toml:"cache"`
	Source  SourceConfig     `toml:"source"`
}

// GraphConfig holds the build defaults.
type GraphConfig struct {
	Layout       string  `toml:"layout"`
	CanvasSize   float64 `toml:"canvas_size"`
	StepX        float64 `toml:"step_x"`
	StepY        float64 `toml:"step_y"`
	ShowStations bool    `toml:"show_stations"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Listen         string        `toml:"listen"`
	ResolveTimeout time.Duration `toml:"resolve_timeout"`
	WaitTimeout    time.Duration `toml:"wait_timeout"`
	BackdropDir    string        `toml:"backdrop_dir"`
}

// CacheConfig selects the cache backend: file, redis or none.
type CacheConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Prefix        string `toml:"prefix"`

	// Scope namespaces every key, for deployments sharing one cache.
	Scope string `toml:"scope"`
}

// SourceConfig selects where station datasets live: file or mongo.
type SourceConfig struct {
	Backend    string `toml:"backend"`
	Dir        string `toml:"dir"`
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Graph: GraphConfig{
			Layout:     string(pipeline.DefaultLayout),
			CanvasSize: visgraph.DefaultCanvasSize,
			StepX:      visgraph.DefaultStepX,
			StepY:      visgraph.DefaultStepY,
		},
		Physics: visgraph.Physics{
			Enabled:       true,
			Stabilization: visgraph.Stabilization{Enabled: true},
		},
		Server: ServerConfig{
			Listen:         ":8080",
			ResolveTimeout: bridge.DefaultResolveTimeout,
		},
		Cache:  CacheConfig{Backend: "file"},
		Source: SourceConfig{Backend: "file", Dir: "."},
	}
}

// loadConfig reads path over the defaults. An empty path means the default
// location, which may be absent; an explicit path must exist.
func loadConfig(path string, logger *log.Logger) (Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		logger.Warn("unknown config keys", "file", path, "keys", strings.Join(keys, ", "))
	}
	logger.Debug("loaded config", "file", path)
	return cfg, nil
}

// buildOptions returns the pipeline options the config describes.
func (cfg Config) buildOptions() pipeline.Options {
	return pipeline.Options{
		Layout:       cfg.Graph.Layout,
		CanvasSize:   cfg.Graph.CanvasSize,
		StepX:        cfg.Graph.StepX,
		StepY:        cfg.Graph.StepY,
		ShowStations: cfg.Graph.ShowStations,
	}
}

// networkConfig returns the widget options input the config describes.
func (cfg Config) networkConfig() visgraph.NetworkConfig {
	return visgraph.NetworkConfig{
		CanvasSize: cfg.Graph.CanvasSize,
		Physics:    cfg.Physics,
		Locale:     cfg.Locale,
	}
}
