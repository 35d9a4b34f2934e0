// Package cli implements the lock command-line interface.
//
// Commands:
//   - rewrite: pin unversioned gem declarations in the Gemfile to the
//     versions recorded in Gemfile.lock
//   - report: count locally and remotely available versions matching the
//     Gemfile's requirements
//   - cache: manage the registry response cache
//   - completion: generate shell completion scripts
//
// All commands accept --exact (-e) and --config; main adds --verbose (-v).
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lockgemfile/internal/config"
	"github.com/matzehuels/lockgemfile/pkg/rewrite"
	"github.com/matzehuels/lockgemfile/pkg/syntax"
)

const appName = "lock"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	out      io.Writer
	err      io.Writer
	dir      string
	cacheDir string // empty selects httputil.DefaultDir
	parser   syntax.Parser

	// selectPins asks the user which pins to apply; ok is false on abort.
	selectPins func(pins []rewrite.Pin, mode rewrite.Mode) (chosen []rewrite.Pin, ok bool, err error)

	exact      bool
	configPath string
	cfg        *config.Config
}

// New creates a CLI logging to w at level. Command output goes to stdout
// and paths resolve against the working directory.
func New(w io.Writer, level log.Level) *CLI {
	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}
	return &CLI{
		Logger:     newLogger(w, level),
		out:        os.Stdout,
		err:        os.Stderr,
		dir:        dir,
		parser:     syntax.NewRubyParser(),
		selectPins: runPinSelection,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command output and progress indicators.
func (c *CLI) SetOutput(out, errOut io.Writer) {
	c.out = out
	c.err = errOut
}

// SetDir sets the directory that relative paths and the config file are
// resolved against.
func (c *CLI) SetDir(dir string) { c.dir = dir }

// config returns the loaded configuration, or defaults before loading.
func (c *CLI) config() *config.Config {
	if c.cfg == nil {
		return config.Default()
	}
	return c.cfg
}

func (c *CLI) mode() rewrite.Mode {
	if c.exact {
		return rewrite.Exact
	}
	return rewrite.Pessimistic
}

func (c *CLI) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.dir, p)
}
