package cli

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spritepack/internal/server"
	"github.com/matzehuels/spritepack/pkg/config"
)

// shutdownTimeout bounds how long in-flight requests may finish after
// the server is asked to stop.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        string
		root        string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve sprite generation over HTTP",
		Long: `Serve sprite generation over HTTP.

POST /v1/sprites accepts the same options as 'generate' as JSON. All paths in
a request are relative to --root and may not leave it. GET /healthz reports
liveness.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			addr = pick(cmd, "addr", addr, cfg.Serve.Addr)
			root = pick(cmd, "root", root, cfg.Serve.Root)
			concurrency = pick(cmd, "concurrency", concurrency, cfg.Sprite.Concurrency)
			return c.runServe(cmd.Context(), addr, server.Config{Root: root, Concurrency: concurrency})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&root, "root", config.DefaultRoot, "directory request paths are resolved against")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "maximum sources decoded in parallel per atlas (default 16)")

	return cmd
}

// runServe listens on addr until ctx is cancelled, then shuts down
// gracefully.
func (c *CLI) runServe(ctx context.Context, addr string, cfg server.Config) error {
	logger := loggerFromContext(ctx)
	cfg.Logger = logger

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           server.New(cfg),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	printInfo("Listening on %s (root %s)", ln.Addr(), cfg.Root)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}
