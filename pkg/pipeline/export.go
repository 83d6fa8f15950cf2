package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/stationviz/pkg/io"
	"github.com/matzehuels/stationviz/pkg/render"
	"github.com/matzehuels/stationviz/pkg/render/nodelink"
	"github.com/matzehuels/stationviz/pkg/transit"
	"github.com/matzehuels/stationviz/pkg/visgraph"
)

// Export renders g (built from ds) in format.
func (r *Runner) Export(ctx context.Context, ds transit.Dataset, g visgraph.Graph, format string, opts Options) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch format {
	case FormatJSON:
		if err := io.WriteJSON(g, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatGeoJSON:
		if err := io.WriteGeoJSON(ds, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: opts.Detailed})
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		return nodelink.RenderPNG(ctx, dot)
	case FormatPDF:
		svg, err := nodelink.RenderSVG(ctx, dot)
		if err != nil {
			return nil, err
		}
		return render.ToPDF(ctx, svg)
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}
