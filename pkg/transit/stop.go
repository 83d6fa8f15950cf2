package transit

import "fmt"

// LocationType classifies a stop (GTFS location_type).
type LocationType int

const (
	StopOrPlatform LocationType = 0
	Station        LocationType = 1
	EntranceExit   LocationType = 2
	GenericNode    LocationType = 3
	BoardingArea   LocationType = 4
)

var locationTypeNames = map[LocationType]string{
	StopOrPlatform: "platform",
	Station:        "station",
	EntranceExit:   "entrance",
	GenericNode:    "node",
	BoardingArea:   "boarding_area",
}

// String returns a short lowercase name, or "location_type(N)" for unknown values.
func (t LocationType) String() string {
	if s, ok := locationTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("location_type(%d)", int(t))
}

// Valid reports whether t is one of the five GTFS location types.
func (t LocationType) Valid() bool {
	_, ok := locationTypeNames[t]
	return ok
}

// IsStation reports whether t marks a station container.
func (t LocationType) IsStation() bool { return t == Station }

// Stop is one stop, platform, entrance or node inside a station.
type Stop struct {
	ID                 int          `json:"stopId" bson:"stop_id"`
	Code               string       `json:"stopCode,omitempty" bson:"stop_code,omitempty"`
	Name               string       `json:"stopName" bson:"stop_name"`
	Lat                float64      `json:"stopLat" bson:"stop_lat"`
	Lon                float64      `json:"stopLon" bson:"stop_lon"`
	LocationType       LocationType `json:"locationType" bson:"location_type"`
	ParentStation      int          `json:"parentStation,omitempty" bson:"parent_station,omitempty"`
	LevelID            string       `json:"levelId,omitempty" bson:"level_id,omitempty"`
	PlatformCode       string       `json:"platformCode,omitempty" bson:"platform_code,omitempty"`
	WheelchairBoarding int          `json:"wheelchairBoarding,omitempty" bson:"wheelchair_boarding,omitempty"`

	// ImageURL is an optional display image. On the station stop it is the
	// floor plan drawn behind the graph.
	ImageURL string `json:"stationImgUrl,omitempty" bson:"image_url,omitempty"`
}

// DisplayName returns the stop name, or its id when the name is blank.
func (s Stop) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("#%d", s.ID)
}
