package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridlock/pkg/observability"
	"github.com/matzehuels/gridlock/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Endpoints:
  GET  /healthz
  GET  /v1/levels
  GET  /v1/levels/{n}?solve=true&explain=true
  POST /v1/evaluate
  POST /v1/explain.dot

The server shuts down gracefully on interrupt. Timeouts come from the
[server] section of the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config, :8080)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	// Request lines are logged by the server; the hooks add cache and
	// pipeline events at debug level.
	observability.NewLogHooks(logger).Register()

	prog := newProgress(logger)
	sc := c.Config.Server
	srv := server.New(runner, logger)
	err = srv.ListenAndServe(ctx, server.Config{
		Addr:            addr,
		ReadTimeout:     sc.ReadTimeout.Duration,
		WriteTimeout:    sc.WriteTimeout.Duration,
		ShutdownTimeout: sc.ShutdownTimeout.Duration,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("serve: %w", err)
	}
	prog.done("Server stopped")
	return nil
}
