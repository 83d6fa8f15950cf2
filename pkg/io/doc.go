// Package io reads and writes built graphs and exports station datasets.
//
// # Graph JSON
//
// [WriteJSON] and [ReadJSON] use the document the widget consumes:
//
//	{
//	  "nodes": [{"id": "5", "label": "Hall", "x": 0, "y": 500, "shape": "dot", ...}],
//	  "edges": [{"id": "1", "from": "5", "to": "6", "label": "Stairs", ...}]
//	}
//
// [ReadJSON] rejects edges whose endpoints are not nodes of the document, so
// a graph read back is always safe to seed a store with.
//
// # GeoJSON
//
// [WriteGeoJSON] exports a dataset as a FeatureCollection for GIS tools:
// every stop becomes a Point at (lon, lat) and every pathway a LineString
// between its endpoints. Stop and pathway attributes are carried as
// feature properties.
package io
