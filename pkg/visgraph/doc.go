// Package visgraph projects a station dataset into the node and edge sets
// consumed by a vis-network style graph widget.
//
// # Overview
//
// [Build] turns a [transit.Dataset] into a [Graph]. Every stop becomes a [Node]
// and every pathway becomes an [Edge]. The projection is pure: identical input
// produces identical output, and node and edge ids map back to exactly one
// source stop or pathway through [StopID] and [PathwayID].
//
// # Layouts
//
// Initial positions come from one of three layouts, selected with
// [Options.Layout]:
//
//   - [LayoutGeographic]: stop coordinates are normalized into a square canvas,
//     north up. A zero latitude or longitude span centers every node on that axis.
//   - [LayoutLayered]: stops are grouped by location type (entrances first,
//     boarding areas last) and laid out in rows with fixed spacing.
//   - [LayoutPhysics]: positions are left unset and the widget's force-directed
//     simulation places nodes.
//
// # Pathway Modes
//
// Edge labels and colors come from fixed tables indexed by pathway mode.
// Mode 0 is reserved; it and any out-of-range mode render with an empty label
// and [DefaultEdgeColor].
//
// # Widget Configuration
//
// [NetworkOptions] produces the widget options document (manipulation toolbar,
// localized strings, physics pass-through, mode tables). [InitialViewport] and
// [BackdropSize] reproduce the initial camera and the station floor-plan sizing.
package visgraph
