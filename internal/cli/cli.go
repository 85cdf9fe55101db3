// Package cli implements the slidekit command-line interface.
package cli

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/KudcraftsHQ/slidekit/pkg/buildinfo"
	"github.com/KudcraftsHQ/slidekit/pkg/cache"
	"github.com/KudcraftsHQ/slidekit/pkg/fonts"
	"github.com/KudcraftsHQ/slidekit/pkg/httputil"
	"github.com/KudcraftsHQ/slidekit/pkg/pipeline"
	"github.com/KudcraftsHQ/slidekit/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "slidekit"
)

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
	Config *Config
}

// New creates a new CLI instance with a default logger and config.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// LoadConfig reads the config file at path, or the default location when
// path is empty. A missing default file is not an error.
func (c *CLI) LoadConfig(path string) error {
	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "slidekit",
		Short:        "Slidekit renders declarative slide documents to pixels",
		Long:         `Slidekit is a rendering engine for declarative slide documents: layered backgrounds, styled text boxes, and gradients composed onto a fixed canvas and exported as PNG, JPEG, or SVG.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.thumbnailCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.fontsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use, wiring the render cache
// and the engine's font and image caches from the config.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	renderCache, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	engine, err := c.newEngine(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(renderCache, nil, engine, c.Logger), nil
}

// newCache selects the render output cache: null when disabled, Redis when
// configured, file cache otherwise.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if c.Config.Redis.Addr != "" {
		return cache.NewRedisCache(ctx, c.Config.Redis.Addr, c.Config.Redis.Password, c.Config.Redis.DB)
	}
	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(filepath.Join(dir, "render"))
}

// newEngine builds a render engine with disk-backed font and image caches.
func (c *CLI) newEngine(noCache bool) (*render.Engine, error) {
	client := &http.Client{Timeout: c.Config.FetchTimeout()}

	var fontDisk cache.Cache = cache.NewNullCache()
	var imageDisk *httputil.Cache
	if !noCache {
		if dir, err := c.cacheDir(); err == nil {
			if fc, err := cache.NewFileCache(filepath.Join(dir, "fonts")); err == nil {
				fontDisk = fc
			}
			if ic, err := httputil.NewCache(filepath.Join(dir, "images"), cache.TTLImage); err == nil {
				imageDisk = ic
			}
		}
	}

	svc := fonts.NewService(fonts.Options{
		Registry: fonts.NewRegistry(c.Config.Families()...),
		Disk:     fontDisk,
		Client:   client,
		Logger:   c.Logger,
	})
	return render.NewEngine(render.Options{
		Fonts:  svc,
		Images: render.NewLoader(client, imageDisk),
		Logger: c.Logger,
	}), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory, preferring the configured path,
// then XDG standard (~/.cache/slidekit/).
func (c *CLI) cacheDir() (string, error) {
	if c.Config.CacheDir != "" {
		return c.Config.CacheDir, nil
	}
	return defaultCacheDir()
}

func defaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
