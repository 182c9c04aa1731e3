package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/planwright/internal/api"
	"github.com/matzehuels/planwright/pkg/cache"
	"github.com/matzehuels/planwright/pkg/pipeline"
)

const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		listen  string
		noCache bool
		prefix  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planner API over HTTP",
		Long: `Serve the planner API over HTTP.

Artifacts are cached in redis when redis_url (PLANWRIGHT_REDIS_URL) is set,
otherwise in the local cache directory. --prefix namespaces cache keys so
several deployments can share one redis.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen == "" {
				listen = c.settings().Listen
			}
			return c.runServe(cmd.Context(), listen, noCache, prefix)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from settings, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&prefix, "prefix", "", "cache key namespace")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, listen string, noCache bool, prefix string) error {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	var keyer cache.Keyer
	if prefix != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), prefix)
	}
	runner := pipeline.NewRunner(store, keyer, c.Logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              listen,
		Handler:           api.New(runner, c.Logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	c.Logger.Info("serving", "addr", listen)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
