// Package render turns built station graphs into static images.
//
// The [nodelink] subpackage lays the graph out with Graphviz and renders SVG
// or PNG in process. [ToPDF] converts an SVG to PDF with the external
// rsvg-convert tool.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//
// [nodelink]: github.com/matzehuels/stationviz/pkg/render/nodelink
package render
