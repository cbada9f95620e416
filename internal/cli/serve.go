package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/stltree/pkg/observability/prom"
	"github.com/matzehuels/stltree/pkg/pipeline"
	"github.com/matzehuels/stltree/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render API",
		Long: `Serve POST /v1/render, GET /healthz and GET /metrics.

Render defaults come from the [render] section of the config file and can be
overridden per request with query parameters.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			metrics := prom.New(nil)
			metrics.Register()

			cfg := server.Config{
				Addr:           c.Config.Server.Addr,
				MaxBodyBytes:   c.Config.Server.MaxBodyBytes,
				RequestTimeout: c.Config.Server.RequestTimeout,
				Defaults: pipeline.Options{
					Format:     c.Config.Render.Format,
					Standalone: c.Config.Render.Standalone,
					Libraries:  c.Config.Render.Libraries,
					TTL:        c.Config.Cache.TTL,
				},
				Metrics: metrics.Handler(),
			}
			if addr != "" {
				cfg.Addr = addr
			}

			srv := server.New(cfg, runner, c.Logger)
			printInfo("Serving on %s", srv.Addr())
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}
