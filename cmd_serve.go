package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"jarvis/internal/database"
	"jarvis/internal/server"
)

const shutdownTimeout = 10 * time.Second

// ServeCmd returns the serve command
func ServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the jarvis HTTP API",
		Long: `Serve the context and tool API under /api/v1. The database must be
reachable at startup (JARVIS_DATABASE_URL); REDIS_URL selects the redis cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := app.toolRegistry()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = app.settings.HTTPAddr
			}

			srv := server.NewHTTPServer(server.Config{
				Addr:  addr,
				Debug: database.IsDevelopment(),
			}, app.services.Contexts, registry, app.logger)

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-cmd.Context().Done():
			}

			app.logger.Info("shutting down HTTP server")
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Stop(ctx); err != nil {
				return err
			}
			return <-errCh
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default JARVIS_HTTP_ADDR)")
	return cmd
}
