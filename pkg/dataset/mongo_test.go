package dataset

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/matzehuels/stationviz/pkg/errors"
	"github.com/matzehuels/stationviz/pkg/transit"
)

const ns = "stationviz.stations"

func TestMongoSource(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("load", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: 7},
			{Key: "stops", Value: bson.A{
				bson.D{{Key: "stop_id", Value: 1}, {Key: "stop_name", Value: "Hall"}, {Key: "location_type", Value: 3}},
				bson.D{{Key: "stop_id", Value: 2}, {Key: "stop_name", Value: "Track 1"}, {Key: "location_type", Value: 0}},
			}},
			{Key: "pathways", Value: bson.A{
				bson.D{{Key: "pathway_id", Value: 10}, {Key: "from_stop_id", Value: 1}, {Key: "to_stop_id", Value: 2}, {Key: "pathway_mode", Value: 2}},
			}},
		}))

		src := NewMongoSourceFromCollection(mt.Coll)
		ds, err := src.Load(ctx, 7)
		if err != nil {
			mt.Fatalf("Load: %v", err)
		}
		if len(ds.Stops) != 2 || ds.Stops[0].LocationType != transit.GenericNode {
			mt.Errorf("stops = %+v", ds.Stops)
		}
		if len(ds.Pathways) != 1 || ds.Pathways[0].Mode != transit.ModeStairs {
			mt.Errorf("pathways = %+v", ds.Pathways)
		}
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		src := NewMongoSourceFromCollection(mt.Coll)
		if _, err := src.Load(ctx, 8); !errors.Is(err, errors.ErrCodeNotFound) {
			mt.Errorf("Load: err = %v, want NOT_FOUND", err)
		}
	})

	mt.Run("save", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		src := NewMongoSourceFromCollection(mt.Coll)
		if err := src.Save(ctx, 7, sample()); err != nil {
			mt.Errorf("Save: %v", err)
		}
	})

	mt.Run("save write error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))

		src := NewMongoSourceFromCollection(mt.Coll)
		if err := src.Save(ctx, 7, sample()); !errors.Is(err, errors.ErrCodeInternal) {
			mt.Errorf("Save: err = %v, want INTERNAL_ERROR", err)
		}
	})

	mt.Run("close without owned client", func(mt *mtest.T) {
		if err := NewMongoSourceFromCollection(mt.Coll).Close(ctx); err != nil {
			mt.Errorf("Close: %v", err)
		}
	})
}
