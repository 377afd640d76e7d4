package cli

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/cache"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/server"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		backend string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout API over HTTP.

Endpoints:
  GET    /healthz
  POST   /v1/layouts                       tags or text + options, returns an id
  GET    /v1/layouts/{id}
  DELETE /v1/layouts/{id}
  GET    /v1/layouts/{id}/render/{format}  svg, png, pdf, json

Layouts are stored in the configured cache backend ([cache] in the config
file): memory, file, redis or mongo. Options in [layout], [font] and [render]
become the defaults for every request.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				c.Config.Server.Addr = addr
			}
			if cmd.Flags().Changed("cache") {
				c.Config.Cache.Backend = backend
			}
			return c.runServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")
	cmd.Flags().StringVar(&backend, "cache", "", "layout store: memory, file, redis, mongo")

	return cmd
}

// runServe starts the API server and blocks until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context) error {
	if c.Config.Cache.Backend == cache.BackendNone {
		printWarning("Cache backend %q cannot store layouts, using memory", cache.BackendNone)
		c.Config.Cache.Backend = cache.BackendMemory
	}

	store, err := c.newCache(ctx, false)
	if err != nil {
		return fmt.Errorf("open %s store: %w", c.Config.Cache.Backend, err)
	}
	runner := pipeline.NewRunner(store, nil, c.Logger)
	defer runner.Close()

	defaults, err := c.baseOptions()
	if err != nil {
		return err
	}

	sc := c.Config.Server
	srv := server.New(runner,
		server.WithLogger(c.Logger),
		server.WithDefaults(defaults),
		server.WithRegistry(defaults.Registry),
		server.WithTimeouts(orDuration(sc.ReadTimeout, server.DefaultReadTimeout), orDuration(sc.WriteTimeout, server.DefaultWriteTimeout)),
		server.WithMaxBodyBytes(orInt64(sc.MaxBodyBytes, server.DefaultMaxBodyBytes)),
	)

	addr := sc.Addr
	if addr == "" {
		addr = ":8080"
	}
	printSuccess("Serving on %s", StyleLink.Render(displayURL(addr)))
	printDetail("Store: %s", storeName(c.Config.Cache.Backend))
	return srv.ListenAndServe(ctx, addr)
}

func storeName(backend string) string {
	if backend == "" {
		return cache.BackendMemory
	}
	return backend
}

// displayURL turns a listen address into a clickable local URL.
func displayURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}

func orDuration(d, def time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return def
}

func orInt64(n, def int64) int64 {
	if n > 0 {
		return n
	}
	return def
}
