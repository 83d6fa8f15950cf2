// Package cache stores built graphs and layout hints between runs.
//
// # Backends
//
//   - [FileCache]: JSON entry files under a directory, for the CLI
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: caching disabled
//
// # Keys
//
// Keys come from a [Keyer] so every entry point agrees on them. A built
// graph is keyed by station, dataset content hash and build options;
// position hints are keyed by station only, so a user's manual layout
// survives dataset edits.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a byte-oriented key/value store with TTLs.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error
	Close() error
}

// Default TTLs.
const (
	TTLGraph     = 24 * time.Hour
	TTLPositions = 30 * 24 * time.Hour
	TTLBackdrop  = 7 * 24 * time.Hour
)

// GraphKeyOpts are the build options that change a built graph.
type GraphKeyOpts struct {
	Layout       string  `json:"layout"`
	CanvasSize   float64 `json:"canvas_size"`
	StepX        float64 `json:"step_x,omitempty"`
	StepY        float64 `json:"step_y,omitempty"`
	ShowStations bool    `json:"show_stations,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	GraphKey(stationID int, datasetHash string, opts GraphKeyOpts) string
	PositionsKey(stationID int) string
	BackdropKey(url string) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) GraphKey(stationID int, datasetHash string, opts GraphKeyOpts) string {
	return hashKey(fmt.Sprintf("graph:%d", stationID), datasetHash, opts)
}

func (DefaultKeyer) PositionsKey(stationID int) string {
	return fmt.Sprintf("positions:%d", stationID)
}

func (DefaultKeyer) BackdropKey(url string) string {
	return hashKey("backdrop", url)
}
