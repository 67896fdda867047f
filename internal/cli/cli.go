// Package cli implements the venntower command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/venntower/pkg/buildinfo"
	"github.com/matzehuels/venntower/pkg/cache"
	"github.com/matzehuels/venntower/pkg/config"
	"github.com/matzehuels/venntower/pkg/pipeline"
	"github.com/matzehuels/venntower/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "venntower"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath overrides config.DefaultPath when set by --config.
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Venntower decomposes and recomposes Euler diagram descriptions",
		Long: `Venntower reads an abstract Euler diagram description, removes its curves one at a
time and adds them back again, producing the step-by-step plan a drawing
routine needs to place each curve.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default ~/.config/venntower/config.toml)")

	root.AddCommand(c.decomposeCommand())
	root.AddCommand(c.recomposeCommand())
	root.AddCommand(c.runCommand())
	root.AddCommand(c.dualCommand())
	root.AddCommand(c.strategiesCommand())
	root.AddCommand(c.runsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Factories
// =============================================================================

// loadConfig reads the config file named by --config, or the default one.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return cfg, err
	}
	c.Logger.Debug("loaded config", "cache", cfg.Cache.Backend, "store", cfg.Store.Backend)
	return cfg, nil
}

// newRunner creates a pipeline runner for CLI use. An unreachable cache
// backend degrades to no caching.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) *pipeline.Runner {
	var cc cache.Cache = cache.NewNullCache()
	if !noCache {
		opened, err := cfg.OpenCache(ctx)
		if err != nil {
			c.Logger.Warn("cache unavailable, continuing without it", "backend", cfg.Cache.Backend, "error", err)
		} else {
			cc = opened
		}
	}
	runner := pipeline.NewRunner(cc, nil, c.Logger)
	runner.ArtifactTTL = cfg.Cache.TTL
	return runner
}

// openStore opens the configured run store. A CLI process is short-lived,
// so the in-memory backend is replaced by the file store.
func (c *CLI) openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	if cfg.Store.Backend == config.BackendMemory {
		cfg.Store.Backend = config.BackendFile
	}
	return cfg.OpenStore(ctx)
}
