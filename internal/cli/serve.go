package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cardspace/internal/server"
	"github.com/matzehuels/cardspace/pkg/scene"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
		src     sourceFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve one animated scene over HTTP",
		Long: `Serve one animated scene over HTTP.

The scene loads records from the configured source, then animates between
layouts on request:

  curl -X PUT localhost:8080/api/layout -d '{"layout":"helix"}'
  curl localhost:8080/api/objects`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				c.cfg.Server.Addr = addr
			}
			src.apply(c)
			return c.runServe(cmd.Context(), noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addSourceFlags(cmd, &src)

	return cmd
}

// runServe builds the scene, starts its loop and serves until ctx ends.
func (c *CLI) runServe(ctx context.Context, noCache bool) error {
	if err := c.cfg.Validate(); err != nil {
		return err
	}
	logger := loggerFromContext(ctx)

	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer store.Close()

	provider, closeProvider, err := c.newProvider(ctx, store)
	if err != nil {
		return fmt.Errorf("open %s source: %w", c.cfg.Source.Kind, err)
	}
	defer closeProvider()

	sc := c.newScene(provider)
	loop := scene.NewLoop(sc, c.cfg.FrameInterval())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go loop.Run(ctx)

	n, err := loop.Reload(ctx)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}

	srv := server.New(loop, server.Options{Cache: store, Keyer: c.newKeyer(), Logger: logger})

	printSuccess("Serving %d cards", n)
	printKeyValue("Address", StyleLink.Render("http://"+displayAddr(c.cfg.Server.Addr)))
	printKeyValue("Layout", c.cfg.Layout.Initial)
	printNewline()

	err = server.Run(ctx, c.cfg.Server.Addr, srv,
		c.cfg.Server.ReadTimeout.Duration, c.cfg.Server.WriteTimeout.Duration, logger)
	cancel()
	<-loop.Done()
	return err
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
