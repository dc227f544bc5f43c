// Package cli implements the ltschart command-line interface.
package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matzehuels/ltschart/pkg/buildinfo"
	"github.com/matzehuels/ltschart/pkg/cache"
	"github.com/matzehuels/ltschart/pkg/observability"
	"github.com/matzehuels/ltschart/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "ltschart"

	// envPrefix prefixes environment variables that override flags, so
	// --margin-left can be set as LTSCHART_MARGIN_LEFT.
	envPrefix = "LTSCHART"

	// defaultDataFile is the dataset read when --data is not given.
	defaultDataFile = "lts.json"
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

	config     *viper.Viper
	configFile string
	verbose    bool
	out        io.Writer // artifacts written to stdout
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return &CLI{
		Logger: newLogger(w, level),
		config: v,
		out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "ltschart draws release-track schedules as Gantt charts",
		Long: `ltschart turns a dataset of release tracks and their lifecycle milestones
(unstable, active, LTS, maintenance, end) into a Gantt chart of phase bars
clipped to a date window.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				hooks := observability.NewLogHooks(c.Logger)
				observability.SetPipelineHooks(hooks)
				observability.SetCacheHooks(hooks)
				observability.SetHTTPHooks(hooks)
			}
			cmd.SetContext(withLogger(contextOf(cmd), c.Logger))
			return c.loadConfig(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		_ = cmd.Usage()
		return err
	})
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default ./ltschart.yaml if present)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.tracksCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig binds the running command's flags to the config layer and reads
// the config file. Precedence is flag, then LTSCHART_* environment, then
// config file, then the flag default.
func (c *CLI) loadConfig(cmd *cobra.Command) error {
	if err := c.config.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	if c.configFile != "" {
		c.config.SetConfigFile(c.configFile)
	} else {
		c.config.SetConfigName(appName)
		c.config.AddConfigPath(".")
	}
	if err := c.config.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if c.configFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	c.Logger.Debug("loaded config", "file", c.config.ConfigFileUsed())
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/ltschart/).
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
