package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stationviz/pkg/pipeline"
)

type renderOpts struct {
	graphFlags
	format   string
	output   string
	detailed bool
}

// renderCommand draws a station graph through graphviz.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [dataset.json]",
		Short: "Render a station graph to SVG, PNG or PDF",
		Long: `Render draws the station graph with nodes pinned at their layout positions.

The format comes from --format, else from the --output extension, else svg.
PDF output needs rsvg-convert on PATH.`,
		Example: `  stationviz render station.json -o station.svg
  stationviz render --station 42 --hints -f png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.format = imageFormat(opts.format, opts.output)
			if err := validateImageFormat(opts.format); err != nil {
				return err
			}
			if opts.output == "" {
				opts.output = defaultOutput(args, opts.station, opts.format)
			}
			return c.runRender(cmd, args, &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg, png or pdf")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label nodes with id and location type")
	return cmd
}

// imageFormat resolves the render format from the flag or the output extension.
func imageFormat(format, output string) string {
	if format != "" {
		return format
	}
	if ext := strings.TrimPrefix(filepath.Ext(output), "."); ext != "" {
		return strings.ToLower(ext)
	}
	return pipeline.FormatSVG
}

func validateImageFormat(format string) error {
	switch format {
	case pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF:
		return nil
	}
	return fmt.Errorf("invalid format: %q (must be svg, png or pdf)", format)
}

// defaultOutput names the output after the dataset file or the station.
func defaultOutput(args []string, station int, format string) string {
	base := "station-" + strconv.Itoa(station)
	if len(args) > 0 {
		base = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	}
	return base + "." + format
}

func (c *CLI) runRender(cmd *cobra.Command, args []string, opts *renderOpts) error {
	ctx := cmd.Context()
	runner, ds, res, err := c.buildGraph(ctx, cmd, &opts.graphFlags, args)
	if err != nil {
		return err
	}
	defer runner.Close()

	sp := newSpinner(ctx, "Rendering "+opts.format+"...").Start()
	out, err := runner.Export(ctx, ds, res.Graph, opts.format, pipeline.Options{Detailed: opts.detailed})
	if err != nil {
		sp.Fail("Render failed")
		return err
	}
	sp.Stop()

	if err := os.WriteFile(opts.output, out, 0o644); err != nil {
		return err
	}
	printSuccess("Rendered %s", strings.ToUpper(opts.format))
	fmt.Println(statsLine(res.Stats.Nodes, res.Stats.Edges, res.HintsUsed, res.CacheHit))
	printFile(opts.output)
	return nil
}
