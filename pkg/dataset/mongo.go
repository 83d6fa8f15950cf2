package dataset

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/stationviz/pkg/errors"
	"github.com/matzehuels/stationviz/pkg/transit"
)

// Mongo defaults.
const (
	DefaultMongoDatabase   = "stationviz"
	DefaultMongoCollection = "stations"
)

// MongoOptions configures [NewMongoSource].
type MongoOptions struct {
	URI        string
	Database   string
	Collection string
}

// MongoSource keeps one document per station, keyed by station id.
type MongoSource struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type stationDoc struct {
	StationID       int `bson:"_id"`
	transit.Dataset `bson:",inline"`
	UpdatedAt       time.Time `bson:"updated_at"`
}

// NewMongoSource connects to opts.URI and pings the primary.
func NewMongoSource(ctx context.Context, opts MongoOptions) (*MongoSource, error) {
	if opts.Database == "" {
		opts.Database = DefaultMongoDatabase
	}
	if opts.Collection == "" {
		opts.Collection = DefaultMongoCollection
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "connect mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping mongo")
	}
	s := NewMongoSourceFromCollection(client.Database(opts.Database).Collection(opts.Collection))
	s.client = client
	return s, nil
}

// NewMongoSourceFromCollection uses an existing collection. Close does not
// disconnect its client.
func NewMongoSourceFromCollection(coll *mongo.Collection) *MongoSource {
	return &MongoSource{coll: coll}
}

func (s *MongoSource) Load(ctx context.Context, stationID int) (transit.Dataset, error) {
	var doc stationDoc
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: stationID}}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return transit.Dataset{}, errors.New(errors.ErrCodeNotFound, "station %d not found", stationID)
	}
	if err != nil {
		return transit.Dataset{}, errors.Wrap(errors.ErrCodeInternal, err, "load station %d", stationID)
	}
	return doc.Dataset, nil
}

func (s *MongoSource) Save(ctx context.Context, stationID int, ds transit.Dataset) error {
	if err := ds.Validate(); err != nil {
		return err
	}
	doc := stationDoc{StationID: stationID, Dataset: ds, UpdatedAt: time.Now().UTC()}
	_, err := s.coll.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: stationID}},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "save station %d", stationID)
	}
	return nil
}

func (s *MongoSource) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

var _ Source = (*MongoSource)(nil)
