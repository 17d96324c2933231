// Package cli implements the packforge command-line interface.
//
// Commands cover the pack lifecycle: generating the facade during a
// build (gen), discovering published packs (search, show, browse), and
// installing them (add, new). Registry responses are cached on disk;
// --no-cache and --refresh control reuse per invocation.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/packforge/packforge/internal/config"
	"github.com/packforge/packforge/pkg/buildinfo"
	"github.com/packforge/packforge/pkg/cache"
	"github.com/packforge/packforge/pkg/registry/crates"
)

const appName = "packforge"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	cfg    *config.Config
}

// New creates a CLI instance with a default logger. Configuration is
// loaded from the default file and environment; a broken config file
// degrades to defaults with a warning.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{Logger: newLogger(w, level)}

	cfg, err := config.NewLoader().Load(os.Getenv("PACKFORGE_CONFIG"))
	if err != nil {
		c.Logger.Warnf("Ignoring config: %v", err)
		cfg = (&config.Config{}).WithDefaults()
	}
	c.cfg = cfg

	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Packforge curates crate bundles behind a single facade",
		Long:         `Packforge manages packs: curated crate bundles published to crates.io that re-export their dependencies through a generated facade module.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.genCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.addCommand())
	root.AddCommand(c.newCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// cratesClient builds a registry client wired to the configured URLs.
// The returned closer releases the cache backend.
func (c *CLI) cratesClient(noCache bool) (*crates.Client, func()) {
	backend := c.newCache(noCache)
	client := crates.NewClient(backend, c.cfg.CacheTTL, c.cfg.UserAgent)
	client.APIBaseURL = c.cfg.RegistryURL
	client.CDNBaseURL = c.cfg.CDNURL
	return client, func() { _ = backend.Close() }
}

func (c *CLI) newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(c.cfg.CacheDir)
	if err != nil {
		c.Logger.Debugf("Cache disabled: %v", err)
		return cache.NewNullCache()
	}
	return fc
}

// cacheDir returns the cache directory using the XDG standard
// (~/.cache/packforge/) unless overridden by configuration.
func (c *CLI) cacheDir() string {
	if c.cfg.CacheDir != "" {
		return c.cfg.CacheDir
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName)
	}
	return config.DefaultCacheDir()
}
