package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/branislavfamily/familysite/internal/server"
	"github.com/branislavfamily/familysite/pkg/cache"
	"github.com/branislavfamily/familysite/pkg/content"
	"github.com/branislavfamily/familysite/pkg/observability"
	"github.com/branislavfamily/familysite/pkg/pipeline"
)

// metricsNamespace prefixes every exported Prometheus metric.
const metricsNamespace = "familysite"

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string
	baseURL   string
	noMetrics bool
}

// serveCommand creates the serve command that runs the website.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the family website",
		Long: `Run the family website.

The listen address and base URL default to the config file and the
FAMILYSITE_ADDR, PORT and FAMILYSITE_BASE_URL environment variables.
Prometheus metrics are served at /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.addr != "" {
				c.cfg.Server.Addr = opts.addr
			}
			if opts.baseURL != "" {
				c.cfg.Site.BaseURL = opts.baseURL
			}
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&opts.baseURL, "base-url", "", "public base URL for canonical links and the sitemap")
	cmd.Flags().BoolVar(&opts.noMetrics, "no-metrics", false, "disable the /metrics endpoint")

	return cmd
}

// runServe wires the runner, tree source and metrics into the HTTP server.
func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	ch, err := cache.Open(ctx, c.cfg.Cache.Options())
	if err != nil {
		return err
	}
	var keyer cache.Keyer
	if c.cfg.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(nil, c.cfg.Cache.Prefix)
	}
	runner := pipeline.NewRunner(ch, keyer, logger)
	runner.TTL = c.cfg.Cache.TTL
	defer runner.Close()

	src, popts, closeSrc, err := c.treeSource(ctx)
	if err != nil {
		return err
	}
	defer closeSrc()

	srvOpts := server.Options{
		Runner:     runner,
		Source:     src,
		SourceName: popts.Source,
		SourceRef:  popts.Ref,
		Site:       content.NewSite(c.cfg.Site.BaseURL),
		Logger:     logger,
	}
	if !opts.noMetrics {
		prom := observability.NewPrometheus(metricsNamespace)
		observability.SetPipelineHooks(prom)
		observability.SetCacheHooks(prom)
		observability.SetHTTPHooks(prom)
		defer observability.Reset()
		srvOpts.Metrics = prom.Handler()
	}

	srv, err := server.New(srvOpts)
	if err != nil {
		return err
	}

	logger.Info("serving family site",
		"tree", popts.Source,
		"cache", c.cfg.Cache.Backend,
		"base_url", c.cfg.Site.BaseURL)

	s := c.cfg.Server
	return srv.ListenAndServe(ctx, s.Addr, s.ReadTimeout, s.WriteTimeout, s.ShutdownTimeout)
}
