package cli

import (
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stationviz/pkg/cache"
	"github.com/matzehuels/stationviz/pkg/server"
)

type serveOpts struct {
	listen         string
	resolveTimeout time.Duration
	noCache        bool
}

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve station graphs and the editing API over HTTP",
		Long: `Serve exposes station graphs, widget options and an event endpoint. Every
station gets a live editing session on first access; committed edits are saved
to the configured source and node positions to the cache.`,
		Example: `  stationviz serve --listen :9000
  stationviz serve --config prod.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.listen, "listen", "", "listen address (default from config, :8080)")
	cmd.Flags().DurationVar(&opts.resolveTimeout, "resolve-timeout", 0, "cancel edit requests pending longer than this")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the graph and position cache")
	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts *serveOpts) error {
	ctx := cmd.Context()
	cfg := c.config

	listen := cfg.Server.Listen
	if opts.listen != "" {
		listen = opts.listen
	}
	resolveTimeout := cfg.Server.ResolveTimeout
	if opts.resolveTimeout > 0 {
		resolveTimeout = opts.resolveTimeout
	}

	ch, err := c.newCache(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer ch.Close()

	sp := newSpinner(ctx, "Opening "+cfg.Source.Backend+" source...").Start()
	src, err := c.newSource(ctx)
	if err != nil {
		sp.Fail("Source unavailable")
		return err
	}
	sp.Stop()
	defer src.Close(ctx)

	srv := server.New(server.Config{
		Source:         src,
		Cache:          cache.Observed(ch),
		Keyer:          c.keyer(),
		Logger:         c.Logger,
		Build:          cfg.buildOptions(),
		Network:        cfg.networkConfig(),
		ResolveTimeout: resolveTimeout,
		WaitTimeout:    cfg.Server.WaitTimeout,
		BackdropDir:    cfg.Server.BackdropDir,
	})

	printInfo("Serving on %s", StyleHighlight.Render(listen))
	printKeyValue("source", cfg.Source.Backend)
	printKeyValue("cache", cfg.Cache.Backend)

	err = srv.ListenAndServe(ctx, listen)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
