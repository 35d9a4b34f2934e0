// Package config loads the optional project configuration file.
//
// The file is TOML, named .lockgemfile.toml and looked up in the working
// directory unless --config names one explicitly:
//
//	gemfile  = "Gemfile"
//	lockfile = "Gemfile.lock"
//	exact    = false
//
//	[report]
//	registry    = "https://rubygems.org/api/v1"
//	concurrency = 8
//	cache_ttl   = "24h"
//	gem_paths   = ["${HOME}/.gem/ruby/3.2.0"]
//	format      = "text"
//
// ${VAR} references in registry and gem_paths are expanded from the
// environment. Values set by command-line flags take precedence.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/lockgemfile/pkg/errors"
	"github.com/matzehuels/lockgemfile/pkg/integrations/rubygems"
	"github.com/matzehuels/lockgemfile/pkg/report"
)

// FileName is the configuration file looked up in the working directory.
const FileName = ".lockgemfile.toml"

// Config is the project configuration.
type Config struct {
	Gemfile  string       `toml:"gemfile"`
	Lockfile string       `toml:"lockfile"`
	Exact    bool         `toml:"exact"`
	Report   ReportConfig `toml:"report"`

	// Path is the file the configuration was read from; empty for defaults.
	Path string `toml:"-"`
}

// ReportConfig holds settings of the report command.
type ReportConfig struct {
	Registry    string   `toml:"registry"`
	Concurrency int      `toml:"concurrency"`
	CacheTTL    Duration `toml:"cache_ttl"`
	GemPaths    []string `toml:"gem_paths"`
	Format      string   `toml:"format"`
}

// Duration is a time.Duration written as a string such as "24h".
type Duration struct{ time.Duration }

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Gemfile:  "Gemfile",
		Lockfile: "Gemfile.lock",
		Report: ReportConfig{
			Registry:    rubygems.DefaultBaseURL,
			Concurrency: report.DefaultConcurrency,
			CacheTTL:    Duration{24 * time.Hour},
			Format:      string(report.FormatText),
		},
	}
}

// Load reads the file at path over the defaults. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config file %s", path)
	}

	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config file %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}

	cfg.Path = path
	cfg.Report.Registry = os.ExpandEnv(cfg.Report.Registry)
	for i, p := range cfg.Report.GemPaths {
		cfg.Report.GemPaths[i] = os.ExpandEnv(p)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find returns the path of the configuration file in dir, if any.
func Find(dir string) (string, bool) {
	p := filepath.Join(dir, FileName)
	if info, err := os.Stat(p); err == nil && !info.IsDir() {
		return p, true
	}
	return "", false
}

// Resolve loads explicit when set, otherwise the file found in dir, and
// falls back to [Default] when there is none.
func Resolve(dir, explicit string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	if p, ok := Find(dir); ok {
		return Load(p)
	}
	return Default(), nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Gemfile == "" || c.Lockfile == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "gemfile and lockfile must not be empty")
	}
	if err := errors.ValidateURL(c.Report.Registry); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "report.registry")
	}
	if c.Report.Concurrency < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "report.concurrency must be at least 1, got %d", c.Report.Concurrency)
	}
	if c.Report.CacheTTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "report.cache_ttl must not be negative")
	}
	if _, err := report.ParseFormat(c.Report.Format); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "report.format")
	}
	return nil
}
