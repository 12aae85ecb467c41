package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/branislavfamily/familysite/internal/config"
	"github.com/branislavfamily/familysite/pkg/buildinfo"
	"github.com/branislavfamily/familysite/pkg/cache"
	"github.com/branislavfamily/familysite/pkg/family"
	"github.com/branislavfamily/familysite/pkg/pipeline"
	"github.com/branislavfamily/familysite/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "familysite"

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

	configPath string
	treePath   string
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
		Short:        "familysite serves the Branislav family website",
		Long:         `familysite serves the Branislav family website and renders the family tree as SVG, HTML, JSON, DOT or terminal text, with an interactive pan and zoom viewer.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", os.Getenv("FAMILYSITE_CONFIG"), "TOML config file")
	root.PersistentFlags().StringVar(&c.treePath, "tree", "", "load the family tree from a TOML, YAML or JSON file")

	// Register all subcommands
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.sitemapCommand())
	root.AddCommand(c.pushCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and environment, then applies the global
// flags on top and attaches the logger to the command context.
func (c *CLI) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.treePath != "" {
		cfg.Tree.Source = config.SourceFile
		cfg.Tree.Path = c.treePath
	}
	c.cfg = cfg
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The CLI caches to disk
// unless the config names another backend.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if c.cfg.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(nil, c.cfg.Cache.Prefix)
	}
	r := pipeline.NewRunner(ch, keyer, c.Logger)
	r.TTL = c.cfg.Cache.TTL
	return r, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	opts := c.cfg.Cache.Options()
	if opts.Backend == cache.BackendMemory && c.configPath == "" {
		// A process-local cache is useless to a one-shot command.
		opts.Backend = cache.BackendFile
	}
	if opts.Backend == cache.BackendFile && opts.Dir == "" {
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		opts.Dir = dir
	}
	return cache.Open(ctx, opts)
}

// treeSource opens the configured tree source. The returned close function
// is never nil.
func (c *CLI) treeSource(ctx context.Context) (src family.Source, opts pipeline.Options, closeFn func(), err error) {
	closeFn = func() {}
	opts.Source = c.cfg.Tree.Source
	switch c.cfg.Tree.Source {
	case config.SourceFile:
		return &family.FileSource{Path: c.cfg.Tree.Path}, opts, closeFn, nil
	case config.SourceMongo:
		m, err := store.Connect(ctx, c.cfg.Tree.MongoURI, c.cfg.Tree.Database)
		if err != nil {
			return nil, opts, closeFn, err
		}
		s := m.Source(c.cfg.Tree.Family)
		opts.Ref = s.Ref()
		return s, opts, func() { _ = m.Close(context.Background()) }, nil
	default:
		return family.NewSampleSource(), opts, closeFn, nil
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/familysite/).
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

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
