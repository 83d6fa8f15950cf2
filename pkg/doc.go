// Package pkg holds the stationviz libraries.
//
// # Overview
//
// Stationviz turns a station's GTFS stops and pathways into the node-link
// graph an interactive widget edits, and routes the widget's gestures back to
// a host that owns the data.
//
//	dataset.Source (file, MongoDB)
//	         ↓
//	    [visgraph] build nodes, edges, initial layout
//	         ↓
//	    [store] live graph ← [bridge] widget events ⇄ [bridge.Host]
//	         ↓
//	    [io], [render/nodelink] JSON, GeoJSON, DOT, SVG, PNG, PDF
//
// # Packages
//
//   - [transit]: stops, pathways and station datasets
//   - [visgraph]: graph builder, layouts, widget options, viewport
//   - [store]: the mutable graph the widget shows
//   - [bridge]: event routing and the pending-operation state machine
//   - [host]: a bridge host that persists edits to a dataset source
//   - [dataset]: file and MongoDB dataset sources
//   - [pipeline]: load, build and export with caching
//   - [server]: HTTP API over per-station bridge sessions
//   - [cache]: file and Redis caches, position hints
//   - [backdrop]: station floor plan sizing
//   - [io], [render], [render/nodelink]: output formats
//   - [errors], [observability], [httputil], [buildinfo]: shared plumbing
//
// # Quick Start
//
//	ds, _ := transit.LoadDataset("station.json")
//	g, _ := visgraph.Build(ds, visgraph.Options{Layout: visgraph.LayoutGeographic})
//	svg, _ := nodelink.RenderSVG(ctx, nodelink.ToDOT(g, nodelink.Options{}))
package pkg
