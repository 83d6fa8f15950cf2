package nodelink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/stationviz/pkg/visgraph"
)

// Options configures DOT generation.
type Options struct {
	// Detailed adds the stop id and location type to node labels.
	Detailed bool

	// Scale multiplies widget pixels into Graphviz points. Zero means 1.
	Scale float64
}

var shapes = map[string]string{
	"box":      "box",
	"database": "cylinder",
	"triangle": "triangle",
	"dot":      "circle",
	"square":   "square",
	"image":    "box",
}

// ToDOT converts g to Graphviz DOT for the neato engine.
func ToDOT(g visgraph.Graph, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=filled, fontname=\"Helvetica\", fontsize=12, fontcolor=white];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	for _, n := range g.Nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, opts.Detailed, scale), ", "))
	}
	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(edgeAttrs(e), ", "))
	}
	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n visgraph.Node, detailed bool, scale float64) []string {
	label := n.Label
	if detailed {
		label = fmt.Sprintf("%s\n#%s %s", n.Label, n.ID, n.Stop.LocationType)
	}
	shape, ok := shapes[n.Shape]
	if !ok {
		shape = "ellipse"
	}
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("shape=%s", shape),
	}
	if n.Color != "" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", n.Color))
	}
	if p, ok := n.Position(); ok {
		attrs = append(attrs, fmt.Sprintf("pos=\"%.2f,%.2f!\"", p.X*scale, -p.Y*scale))
	}
	return attrs
}

func edgeAttrs(e visgraph.Edge) []string {
	attrs := []string{fmt.Sprintf("label=%q", e.Label)}
	if e.Color != "" {
		attrs = append(attrs, fmt.Sprintf("color=%q", e.Color), fmt.Sprintf("fontcolor=%q", e.Color))
	}
	if e.Arrows == "" {
		attrs = append(attrs, "dir=none")
	}
	return attrs
}
