package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pixelgrid/internal/server"
	"github.com/matzehuels/pixelgrid/pkg/session"
)

// shutdownTimeout bounds the graceful shutdown on interrupt.
const shutdownTimeout = 5 * time.Second

// serveCommand creates the serve command for the live browser viewer.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		allowAll bool
		redis    string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the live grid viewer and frame API",
		Example: `  pixelgrid serve --addr :8080
  pixelgrid serve --redis redis://localhost:6379/0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("allow-all") {
				cfg.Server.AllowAll = allowAll
			}
			if redis != "" {
				cfg.Cache.Redis = redis
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, cfg, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(server.Config{
				Addr:     cfg.Server.Addr,
				AllowAll: cfg.Server.AllowAll,
				Grid:     cfg,
				Runner:   runner,
				Sessions: session.NewMemoryStore(),
				Logger:   logger,
			})

			errc := make(chan error, 1)
			go func() { errc <- srv.Start() }()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
				logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				return <-errc
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&allowAll, "allow-all", false, "allow all CORS origins")
	cmd.Flags().StringVar(&redis, "redis", "", "redis address or URL for the frame cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the frame cache")

	return cmd
}
