// Package nodelink renders a station graph as a Graphviz diagram.
//
// # Positions
//
// Nodes that carry a position are pinned where the builder (or the user)
// put them, using neato with pos="x,y!". The widget's y axis points down
// and Graphviz's points up, so y is negated. Graphs built with the physics
// layout have no positions; neato then lays them out itself, which stands
// in for the widget's simulation.
//
// # Styling
//
// Node shape, fill color and edge color come from the built graph, so the
// diagram matches the widget: platforms are blue boxes, entrances red
// triangles, and each pathway mode keeps its color and label.
package nodelink
