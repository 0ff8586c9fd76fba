// Package cli implements the noticer command-line interface.
//
// # Commands
//
//   - collect: resolve library and license metadata for a dependency list
//   - inspect: show what noticer reads from a single descriptor
//   - config: print the default or effective configuration
//   - cache: manage cached HTTP responses and downloaded descriptors
//   - completion: generate shell completion scripts
//
// All commands accept --verbose (-v) for debug logging and --config to point
// at a TOML configuration file. Without --config, noticer looks for
// noticer/config.toml in the XDG config directories.
package cli

import (
	"context"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/noticer/pkg/buildinfo"
	"github.com/matzehuels/noticer/pkg/cache"
	"github.com/matzehuels/noticer/pkg/config"
)

// appName is the application name used for directories and display.
const appName = "noticer"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	configPath string
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
		Use:          appName,
		Short:        "Noticer collects library and license metadata for attribution notices",
		Long:         `Noticer resolves the descriptors of a project's dependencies, fills gaps from parent descriptors, deduplicates licenses and merges operator overrides into one report for notice generators.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "configuration file (default: $XDG_CONFIG_HOME/noticer/config.toml)")

	root.AddCommand(c.collectCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads --config, or the default config file when present.
func (c *CLI) loadConfig() (config.Config, error) {
	path := c.configPath
	if path == "" {
		path = defaultConfigFile()
	}
	if path != "" {
		c.Logger.Debug("loading config", "path", path)
	}
	return config.Load(path)
}

// newCache opens the configured cache backend.
func (c *CLI) newCache(ctx context.Context, cfg config.Cache, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Backend == config.BackendNone {
		return cache.NewNullCache(), nil
	}
	if cfg.Backend == config.BackendRedis {
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	}
	dir := cfg.Dir
	if dir == "" {
		base, err := cacheDir()
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		dir = filepath.Join(base, "http")
	}
	return cache.NewFileCache(config.ExpandHome(dir))
}
