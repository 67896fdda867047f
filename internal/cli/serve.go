package cli

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/venntower/pkg/api"
	"github.com/matzehuels/venntower/pkg/observability"
	"github.com/matzehuels/venntower/pkg/store"
)

// cleanupInterval is how often the server drops expired runs.
const cleanupInterval = time.Hour

// serveCommand starts the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noStore   bool
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pipeline over HTTP",
		Long: `Serve the pipeline over HTTP. Runs are stored in the backend selected by
the [store] section of the config file, and prometheus metrics are exposed
on /metrics.`,
		Example: `  venntower serve --addr :9090
  curl -d '{"notation":"a b ab","formats":["text"]}' localhost:9090/v1/runs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			if !noMetrics {
				hooks := observability.NewPrometheusHooks(prometheus.DefaultRegisterer)
				observability.SetPipelineHooks(hooks)
				observability.SetCacheHooks(hooks)
				observability.SetHTTPHooks(hooks)
				defer observability.Reset()
			}

			runner := c.newRunner(ctx, cfg, false)
			defer runner.Close()

			var st store.Store
			if !noStore {
				if st, err = cfg.OpenStore(ctx); err != nil {
					return err
				}
				defer st.Close()
				go c.cleanupRuns(ctx, st)
			}

			srv := api.New(api.Config{
				Runner:         runner,
				Store:          st,
				Logger:         c.Logger,
				RequestTimeout: cfg.Server.RequestTimeout,
				RunTTL:         cfg.Store.TTL,
			})
			c.Logger.Info("starting server", "addr", cfg.Server.Addr, "cache", cfg.Cache.Backend, "store", cfg.Store.Backend)
			return srv.ListenAndServe(ctx, cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, else :8080)")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "disable the saved run routes")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "do not record prometheus metrics")
	return cmd
}

// cleanupRuns removes expired runs every cleanupInterval until ctx ends.
func (c *CLI) cleanupRuns(ctx context.Context, st store.Store) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := st.Cleanup(ctx)
			if err != nil {
				c.Logger.Warn("run cleanup failed", "error", err)
				continue
			}
			if n > 0 {
				c.Logger.Info("removed expired runs", "count", n)
			}
		}
	}
}
