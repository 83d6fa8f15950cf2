package io

import (
	"fmt"
	"io"

	geojson "github.com/paulmach/go.geojson"

	"github.com/matzehuels/stationviz/pkg/transit"
)

// GeoJSON builds the feature collection for ds. Pathways whose endpoints
// are unknown are skipped; validate ds first to rule that out.
func GeoJSON(ds transit.Dataset) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	stops := ds.StopIndex()

	for _, s := range ds.Stops {
		f := geojson.NewPointFeature([]float64{s.Lon, s.Lat})
		f.ID = s.ID
		f.SetProperty("kind", "stop")
		f.SetProperty("name", s.Name)
		f.SetProperty("location_type", int(s.LocationType))
		f.SetProperty("location_type_name", s.LocationType.String())
		if s.ParentStation != 0 {
			f.SetProperty("parent_station", s.ParentStation)
		}
		if s.LevelID != "" {
			f.SetProperty("level_id", s.LevelID)
		}
		if s.PlatformCode != "" {
			f.SetProperty("platform_code", s.PlatformCode)
		}
		fc.AddFeature(f)
	}

	for _, p := range ds.Pathways {
		from, ok1 := stops[p.FromStopID]
		to, ok2 := stops[p.ToStopID]
		if !ok1 || !ok2 {
			continue
		}
		f := geojson.NewLineStringFeature([][]float64{{from.Lon, from.Lat}, {to.Lon, to.Lat}})
		f.ID = p.ID
		f.SetProperty("kind", "pathway")
		f.SetProperty("mode", int(p.Mode))
		f.SetProperty("mode_name", p.Mode.String())
		f.SetProperty("bidirectional", p.IsBidirectional)
		f.SetProperty("from_stop_id", p.FromStopID)
		f.SetProperty("to_stop_id", p.ToStopID)
		if p.Length != nil {
			f.SetProperty("length", *p.Length)
		}
		if p.TraversalTime != nil {
			f.SetProperty("traversal_time", *p.TraversalTime)
		}
		if p.SignpostedAs != "" {
			f.SetProperty("signposted_as", p.SignpostedAs)
		}
		fc.AddFeature(f)
	}
	return fc
}

// WriteGeoJSON writes ds as a GeoJSON FeatureCollection.
func WriteGeoJSON(ds transit.Dataset, w io.Writer) error {
	data, err := GeoJSON(ds).MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode geojson: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
