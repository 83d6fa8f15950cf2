// Package transit defines the station dataset that stationviz projects into a graph.
//
// A [Dataset] is the host application's view of one station: its [Stop] records
// (platforms, entrances, generic nodes, boarding areas and the station container
// itself) and the [Pathway] records linking them. The types mirror the GTFS
// stops.txt and pathways.txt columns that matter for station editing.
//
// # JSON Format
//
// The host application exchanges datasets in camelCase JSON:
//
//	{
//	  "stops": [
//	    {"stopId": 1, "stopName": "Main St", "stopLat": 45.5, "stopLon": -73.6, "locationType": 1},
//	    {"stopId": 2, "stopName": "Platform A", "stopLat": 45.5001, "stopLon": -73.6001, "locationType": 0}
//	  ],
//	  "pathways": [
//	    {"pathwayId": 10, "fromStopId": 2, "toStopId": 3, "pathwayMode": 2, "isBidirectional": true}
//	  ]
//	}
//
// # Validation
//
// Datasets are immutable inputs owned by the host. [Dataset.Validate] checks
// referential integrity up front so that the graph builder never produces an
// edge whose endpoint is missing.
package transit
