package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cardspace/internal/config"
	"github.com/matzehuels/cardspace/pkg/buildinfo"
	"github.com/matzehuels/cardspace/pkg/cache"
	"github.com/matzehuels/cardspace/pkg/layout"
	"github.com/matzehuels/cardspace/pkg/records"
	"github.com/matzehuels/cardspace/pkg/scene"
	"github.com/matzehuels/cardspace/pkg/transition"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "cardspace"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogError = log.ErrorLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "cardspace arranges record cards in 3D and animates between layouts",
		Long:         `cardspace lays one card per record out as a table, sphere, double helix, grid or tetrahedron, and animates staggered transitions between those layouts.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default: $XDG_CONFIG_HOME/cardspace/config.toml)")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file, attaches the logger to the command
// context and registers logging observability hooks.
func (c *CLI) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	registerHooks(c.Logger)
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	c.Logger.Debug("config loaded", "path", c.configPath, "source", cfg.Source.Kind, "layout", cfg.Layout.Initial)
	return nil
}

// =============================================================================
// Factories
// =============================================================================

// newCache builds the configured cache backend.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || c.cfg.Cache.Backend == config.CacheNone {
		return cache.NewNullCache(), nil
	}

	var backend cache.Cache
	switch c.cfg.Cache.Backend {
	case config.CacheRedis:
		rc := cache.NewRedisCache(cache.RedisOptions{
			Addr:     c.cfg.Cache.RedisAddr,
			Password: c.cfg.Cache.RedisPassword,
			DB:       c.cfg.Cache.RedisDB,
		})
		if err := rc.Ping(ctx); err != nil {
			c.Logger.Warn("redis unavailable, caching disabled", "addr", c.cfg.Cache.RedisAddr, "err", err)
			rc.Close()
			return cache.NewNullCache(), nil
		}
		backend = rc
	default:
		dir, err := c.fileCacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		backend = fc
	}
	return cache.Instrument(backend, c.cfg.Cache.Backend), nil
}

// newKeyer returns the keyer for the configured prefix.
func (c *CLI) newKeyer() cache.Keyer {
	if c.cfg.Cache.Prefix == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.cfg.Cache.Prefix)
}

// newProvider builds the configured record provider. The returned close
// function releases provider resources and is never nil.
func (c *CLI) newProvider(ctx context.Context, store cache.Cache) (records.Provider, func(), error) {
	src := c.cfg.Source
	switch src.Kind {
	case records.SourceSheet:
		return &records.Sheet{
			URL:    src.URL,
			Cache:  store,
			Keyer:  c.newKeyer(),
			TTL:    c.cfg.Cache.SheetTTL.Duration,
			Logger: c.Logger,
		}, func() {}, nil
	case records.SourceMongo:
		client, coll, err := records.ConnectMongo(ctx, src.MongoURI, src.MongoDatabase, src.MongoCollection)
		if err != nil {
			return nil, nil, err
		}
		return &records.Mongo{Collection: coll}, func() {
			_ = client.Disconnect(context.Background())
		}, nil
	default:
		return records.Placeholder{Count: src.Count, Seed: src.Seed}, func() {}, nil
	}
}

// newScene builds an empty scene over provider from the config.
func (c *CLI) newScene(provider records.Provider, ctrl ...transition.Option) *scene.Scene {
	if !c.cfg.Transition.Jitter {
		ctrl = append(ctrl, transition.WithoutJitter())
	}
	kind, _ := layout.ParseKind(c.cfg.Layout.Initial)
	return scene.New(scene.Options{
		Provider:   provider,
		Layout:     c.cfg.LayoutOptions(),
		Initial:    kind,
		Duration:   c.cfg.Transition.Duration.Duration,
		Controller: ctrl,
		Logger:     c.Logger,
	})
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/cardspace/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
