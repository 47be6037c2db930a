// Package cli implements the spritepack command-line interface.
//
// This package provides commands for packing source images into sprite
// atlases, emitting the matching stylesheet, and serving the same pipeline
// over HTTP. The CLI is built using cobra and supports verbose logging via
// the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - generate: Pack sources into a normal (and retina) atlas plus stylesheet
//   - style: Regenerate a stylesheet from an exported layout manifest
//   - inspect: Print the sprites recorded in a layout manifest
//   - serve: Expose generation as an HTTP API
//
// # Configuration
//
// Settings are read from spritepack.toml in the working directory (or the
// file named by --config). Flags that are set explicitly override it.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spritepack/pkg/config"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "spritepack"

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

	// configPath is the --config flag.
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

// =============================================================================
// Configuration
// =============================================================================

// loadConfig returns the project configuration: the --config file when
// given, else spritepack.toml in the working directory, else defaults.
func (c *CLI) loadConfig() (*config.Config, error) {
	path := c.configPath
	if path == "" {
		found, ok := config.Find(".")
		if !ok {
			return config.Default(), nil
		}
		path = found
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded config", "path", path)
	return cfg, nil
}

// pick returns the flag value when the flag was set explicitly, else the
// configured value when it is non-zero, else the flag's default.
func pick[T comparable](cmd *cobra.Command, name string, flagVal, cfgVal T) T {
	if cmd.Flags().Changed(name) {
		return flagVal
	}
	var zero T
	if cfgVal != zero {
		return cfgVal
	}
	return flagVal
}

// pickBool is pick for optional booleans in the config file.
func pickBool(cmd *cobra.Command, name string, flagVal bool, cfgVal *bool) bool {
	if cmd.Flags().Changed(name) || cfgVal == nil {
		return flagVal
	}
	return *cfgVal
}
