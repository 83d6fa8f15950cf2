package transit

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/stationviz/pkg/errors"
)

// Dataset is everything the host knows about one station.
type Dataset struct {
	// Station is the container stop, when the host sends it separately.
	Station  *Stop     `json:"station,omitempty" bson:"station,omitempty"`
	Stops    []Stop    `json:"stops" bson:"stops"`
	Pathways []Pathway `json:"pathways" bson:"pathways"`
}

// StationStop returns the station container: the explicit Station field when
// set, otherwise the first stop whose location type is Station.
func (d Dataset) StationStop() (Stop, bool) {
	if d.Station != nil {
		return *d.Station, true
	}
	for _, s := range d.Stops {
		if s.LocationType.IsStation() {
			return s, true
		}
	}
	return Stop{}, false
}

// StopIndex returns the stops keyed by id.
func (d Dataset) StopIndex() map[int]Stop {
	idx := make(map[int]Stop, len(d.Stops))
	for _, s := range d.Stops {
		idx[s.ID] = s
	}
	return idx
}

// Validate checks ids and referential integrity.
//
// It rejects duplicate stop or pathway ids, unknown location types, pathway
// modes outside 0..7, and pathways whose endpoints are unknown or are station
// containers. The first violation is returned.
func (d Dataset) Validate() error {
	stops := make(map[int]Stop, len(d.Stops))
	for _, s := range d.Stops {
		if _, dup := stops[s.ID]; dup {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate stop id %d", s.ID)
		}
		if !s.LocationType.Valid() {
			return errors.New(errors.ErrCodeInvalidInput, "stop %d: unknown location type %d", s.ID, int(s.LocationType))
		}
		stops[s.ID] = s
	}

	seen := make(map[int]bool, len(d.Pathways))
	for _, p := range d.Pathways {
		if seen[p.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate pathway id %d", p.ID)
		}
		seen[p.ID] = true

		if !p.Mode.Valid() {
			return errors.New(errors.ErrCodeInvalidInput, "pathway %d: unknown mode %d", p.ID, int(p.Mode))
		}
		for _, end := range []int{p.FromStopID, p.ToStopID} {
			s, ok := stops[end]
			if !ok {
				return errors.New(errors.ErrCodeDanglingReference, "pathway %d references unknown stop %d", p.ID, end)
			}
			if s.LocationType.IsStation() {
				return errors.New(errors.ErrCodeDanglingReference, "pathway %d references station %d", p.ID, end)
			}
		}
	}
	return nil
}

// ReadDataset decodes a JSON dataset from r.
// The result is not validated; call [Dataset.Validate] or let the builder do it.
func ReadDataset(r io.Reader) (Dataset, error) {
	var d Dataset
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Dataset{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode dataset")
	}
	return d, nil
}

// LoadDataset reads a JSON dataset file.
func LoadDataset(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDataset(f)
}

// WriteDataset encodes d as indented JSON.
func WriteDataset(d Dataset, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
