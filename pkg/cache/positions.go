package cache

import (
	"context"
	"encoding/json"

	"github.com/matzehuels/stationviz/pkg/visgraph"
)

// LoadPositions reads the position hints stored for a station. A miss is an
// empty map.
func LoadPositions(ctx context.Context, c Cache, k Keyer, stationID int) (map[string]visgraph.Point, error) {
	data, hit, err := c.Get(ctx, k.PositionsKey(stationID))
	if err != nil || !hit {
		return map[string]visgraph.Point{}, err
	}
	var pos map[string]visgraph.Point
	if err := json.Unmarshal(data, &pos); err != nil {
		return map[string]visgraph.Point{}, err
	}
	return pos, nil
}

// SavePositions replaces the position hints of a station.
func SavePositions(ctx context.Context, c Cache, k Keyer, stationID int, pos map[string]visgraph.Point) error {
	data, err := json.Marshal(pos)
	if err != nil {
		return err
	}
	return c.Set(ctx, k.PositionsKey(stationID), data, TTLPositions)
}
