package dataset

import (
	"context"
	"testing"

	"github.com/matzehuels/stationviz/pkg/errors"
	"github.com/matzehuels/stationviz/pkg/transit"
)

func sample() transit.Dataset {
	return transit.Dataset{
		Stops: []transit.Stop{
			{ID: 1, Name: "Hall", LocationType: transit.GenericNode},
			{ID: 2, Name: "Track 1", LocationType: transit.StopOrPlatform},
		},
		Pathways: []transit.Pathway{
			{ID: 10, FromStopID: 1, ToStopID: 2, Mode: transit.ModeStairs},
		},
	}
}

func TestFileSource(t *testing.T) {
	ctx := context.Background()
	src := NewFileSource(t.TempDir())

	if _, err := src.Load(ctx, 7); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Fatalf("Load missing: err = %v, want NOT_FOUND", err)
	}

	if err := src.Save(ctx, 7, sample()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := src.Load(ctx, 7)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Stops) != 2 || len(got.Pathways) != 1 || got.Pathways[0].Mode != transit.ModeStairs {
		t.Errorf("Load = %+v", got)
	}
}

func TestFileSourceRejectsInvalid(t *testing.T) {
	ds := sample()
	ds.Pathways[0].ToStopID = 99

	src := NewFileSource(t.TempDir())
	err := src.Save(context.Background(), 7, ds)
	if !errors.Is(err, errors.ErrCodeDanglingReference) {
		t.Errorf("Save: err = %v, want DANGLING_REFERENCE", err)
	}
}
