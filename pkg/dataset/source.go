// Package dataset loads and stores station datasets by station id.
//
// Two sources are provided: [FileSource] reads <dir>/<station>.json files
// and [MongoSource] keeps one document per station in a MongoDB collection.
// A missing station is an error with code [errors.ErrCodeNotFound].
package dataset

import (
	"context"

	"github.com/matzehuels/stationviz/pkg/transit"
)

// Source is where station datasets live.
type Source interface {
	Load(ctx context.Context, stationID int) (transit.Dataset, error)
	Save(ctx context.Context, stationID int, ds transit.Dataset) error
	Close(ctx context.Context) error
}
