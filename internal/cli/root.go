package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/lockgemfile/internal/config"
	"github.com/matzehuels/lockgemfile/pkg/buildinfo"
	"github.com/matzehuels/lockgemfile/pkg/errors"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName + " [options] <command>",
		Short: "Lock Gemfile dependencies to the versions in Gemfile.lock",
		Long: `lock rewrites a Gemfile so that every gem declared without a version
requirement is pinned to the version resolved in Gemfile.lock.

  gem 'rails'   becomes   gem 'rails', '~> 6.1.0'

Use --exact to pin the exact version instead of a pessimistic requirement.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Usage()
				return errors.New(errors.ErrCodeInvalidInput, "no command given")
			}
			return errors.New(errors.ErrCodeInvalidInput, "Unknown command: %s", args[0])
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.exact, "exact", "e", false, "use exact version instead of pessimistic")
	flags.StringVar(&c.configPath, "config", "", "config file (default ./"+config.FileName+")")

	root.AddCommand(c.rewriteCommand())
	root.AddCommand(c.reportCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration and attaches the logger to the command
// context. Flags given on the command line override the config file.
func (c *CLI) setup(cmd *cobra.Command) error {
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	if !needsConfig(cmd) {
		return nil
	}

	cfg, err := config.Resolve(c.dir, c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	if !cmd.Flags().Changed("exact") {
		c.exact = cfg.Exact
	}
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}
	return nil
}

// annotationNoConfig marks commands that run without the project config.
const annotationNoConfig = "lock/no-config"

func needsConfig(cmd *cobra.Command) bool {
	for ; cmd != nil; cmd = cmd.Parent() {
		if _, ok := cmd.Annotations[annotationNoConfig]; ok {
			return false
		}
	}
	return true
}
