package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stationviz/pkg/pipeline"
	"github.com/matzehuels/stationviz/pkg/transit"
)

// graphFlags are the build flags shared by build, render and inspect.
// Unset flags fall back to the config file.
type graphFlags struct {
	station      int
	layout       string
	canvasSize   float64
	stepX        float64
	stepY        float64
	showStations bool
	hints        bool
	refresh      bool
	noCache      bool
}

func (f *graphFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.station, "station", "s", 0, "station id: load from the configured source, and scope the cache")
	cmd.Flags().StringVarP(&f.layout, "layout", "l", "", "initial layout: geo, layered or physics")
	cmd.Flags().Float64Var(&f.canvasSize, "canvas-size", 0, "side of the geographic canvas in pixels")
	cmd.Flags().Float64Var(&f.stepX, "step-x", 0, "layered layout horizontal spacing")
	cmd.Flags().Float64Var(&f.stepY, "step-y", 0, "layered layout vertical spacing")
	cmd.Flags().BoolVar(&f.showStations, "show-stations", false, "keep station containers as nodes")
	cmd.Flags().BoolVar(&f.hints, "hints", false, "apply saved node positions")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "rebuild even when the graph is cached")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching entirely")
}

// options merges the flags that were set over the config defaults.
func (f *graphFlags) options(cmd *cobra.Command, cfg Config) pipeline.Options {
	opts := cfg.buildOptions()
	opts.StationID = f.station
	opts.ApplyHints = f.hints
	opts.Refresh = f.refresh

	set := cmd.Flags().Changed
	if set("layout") {
		opts.Layout = f.layout
	}
	if set("canvas-size") {
		opts.CanvasSize = f.canvasSize
	}
	if set("step-x") {
		opts.StepX = f.stepX
	}
	if set("step-y") {
		opts.StepY = f.stepY
	}
	if set("show-stations") {
		opts.ShowStations = f.showStations
	}
	return opts
}

// buildGraph loads the dataset and builds it, reporting progress.
func (c *CLI) buildGraph(ctx context.Context, cmd *cobra.Command, f *graphFlags, args []string) (*pipeline.Runner, transit.Dataset, *pipeline.Result, error) {
	opts := f.options(cmd, c.config)
	if _, err := opts.BuildOptions(); err != nil {
		return nil, transit.Dataset{}, nil, err
	}

	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return nil, transit.Dataset{}, nil, err
	}

	prog := newProgress(loggerFromContext(ctx))
	ds, err := c.loadDataset(ctx, runner, args, f.station)
	if err != nil {
		runner.Close()
		return nil, transit.Dataset{}, nil, err
	}
	res, err := runner.Build(ctx, ds, opts)
	if err != nil {
		runner.Close()
		return nil, transit.Dataset{}, nil, err
	}
	prog.done(fmt.Sprintf("Built %d nodes, %d edges", res.Stats.Nodes, res.Stats.Edges))
	return runner, ds, res, nil
}

// =============================================================================
// build
// =============================================================================

type buildOpts struct {
	graphFlags
	format string
	output string
}

// buildCommand projects a dataset and writes the graph in a data format.
func (c *CLI) buildCommand() *cobra.Command {
	opts := buildOpts{format: pipeline.FormatJSON}

	cmd := &cobra.Command{
		Use:   "build [dataset.json]",
		Short: "Build the widget graph of a station",
		Long: `Build projects a station dataset (stops and pathways) into the node and edge
collections the graph widget mounts, with initial positions from the chosen layout.

The dataset is read from a JSON file, or with --station from the configured source.`,
		Example: `  stationviz build station.json --layout geo -o graph.json
  stationviz build --station 42 -f geojson`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateDataFormat(opts.format); err != nil {
				return err
			}
			return c.runBuild(cmd, args, &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: json, geojson or dot")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	return cmd
}

// validateDataFormat accepts the formats build writes.
func validateDataFormat(format string) error {
	switch format {
	case pipeline.FormatJSON, pipeline.FormatGeoJSON, pipeline.FormatDOT:
		return nil
	}
	return fmt.Errorf("invalid format: %q (must be json, geojson or dot; use render for images)", format)
}

func (c *CLI) runBuild(cmd *cobra.Command, args []string, opts *buildOpts) error {
	ctx := cmd.Context()
	runner, ds, res, err := c.buildGraph(ctx, cmd, &opts.graphFlags, args)
	if err != nil {
		return err
	}
	defer runner.Close()

	out, err := runner.Export(ctx, ds, res.Graph, opts.format, pipeline.Options{})
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err := os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(opts.output, out, 0o644); err != nil {
		return err
	}
	printSuccess("Graph built")
	fmt.Println(statsLine(res.Stats.Nodes, res.Stats.Edges, res.HintsUsed, res.CacheHit))
	printFile(opts.output)
	printNextStep("Render it", "stationviz render "+argOrStation(args, opts.station))
	return nil
}

func argOrStation(args []string, station int) string {
	if len(args) > 0 {
		return args[0]
	}
	return fmt.Sprintf("--station %d", station)
}
