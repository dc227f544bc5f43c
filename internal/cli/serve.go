package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ltschart/internal/server"
	"github.com/matzehuels/ltschart/pkg/cache"
	"github.com/matzehuels/ltschart/pkg/pipeline"
)

const shutdownTimeout = 5 * time.Second

// serveCommand creates the serve command, which renders charts over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve charts over HTTP",
		Long: `Serve the dataset over HTTP. The dataset is read once at start-up.

Routes:
  GET /healthz
  GET /v1/tracks
  GET /v1/segments?start=&end=&exclude_master=&track=
  GET /v1/chart.{svg,png,html,pdf,json}?start=&end=&width=&height=&animate=&theme=`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := c.config
			return c.runServe(cmd.Context(), serveOptions{
				addr:      v.GetString("addr"),
				data:      v.GetString("data"),
				redisURL:  v.GetString("redis-url"),
				keyPrefix: v.GetString("key-prefix"),
				noCache:   v.GetBool("no-cache"),
			})
		},
	}
	f := cmd.Flags()
	f.String("addr", "127.0.0.1:8080", "listen address")
	f.StringP("data", "d", defaultDataFile, "dataset file or http(s) URL (JSON, YAML or TOML)")
	f.String("redis-url", "", "Redis URL for a shared result cache (default: file cache)")
	f.String("key-prefix", "ltschart:", "prefix for keys in the Redis cache")
	f.Bool("no-cache", false, "disable the result cache")
	return cmd
}

type serveOptions struct {
	addr      string
	data      string
	redisURL  string
	keyPrefix string
	noCache   bool
}

func (c *CLI) runServe(ctx context.Context, o serveOptions) error {
	logger := loggerFromContext(ctx)

	ds, err := c.readDataset(ctx, o.data)
	if err != nil {
		return err
	}

	var store cache.Cache
	keyer := cache.NewDefaultKeyer()
	if o.redisURL != "" && !o.noCache {
		if store, err = cache.NewRedisCache(ctx, o.redisURL); err != nil {
			return err
		}
		keyer = cache.NewScopedKeyer(keyer, o.keyPrefix)
		logger.Info("using redis cache", "prefix", o.keyPrefix)
	} else if store, err = newCache(o.noCache); err != nil {
		return err
	}
	runner := pipeline.NewRunner(store, keyer, logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              o.addr,
		Handler:           server.New(server.Config{Dataset: ds, Runner: runner, Logger: logger}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	printInfo("Serving %d tracks from %s on http://%s", ds.Len(), o.data, o.addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("server stopped")
	return nil
}
