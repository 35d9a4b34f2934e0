package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lockgemfile/pkg/errors"
	"github.com/matzehuels/lockgemfile/pkg/lockfile"
	"github.com/matzehuels/lockgemfile/pkg/rewrite"
)

// errFilesNotFound is reported when either input file is missing.
const errFilesNotFound = "Gemfile or Gemfile.lock not found in current directory"

type rewriteOptions struct {
	gemfile     string
	lockfile    string
	dryRun      bool
	interactive bool
}

// rewriteCommand creates the rewrite command.
func (c *CLI) rewriteCommand() *cobra.Command {
	var opts rewriteOptions

	cmd := &cobra.Command{
		Use:   "rewrite",
		Short: "Pin unversioned gems to the versions in Gemfile.lock",
		Long: `Rewrite the Gemfile in place, adding a version requirement to every
gem declaration that has none, using the version resolved in Gemfile.lock.

Declarations that already carry a requirement, and gems absent from the
lockfile, are left untouched. All other bytes of the Gemfile are preserved.`,
		Example: `  lock rewrite
  lock -e rewrite
  lock rewrite --dry-run
  lock rewrite --gemfile gems.rb --lockfile gems.locked`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config()
			if !cmd.Flags().Changed("gemfile") {
				opts.gemfile = cfg.Gemfile
			}
			if !cmd.Flags().Changed("lockfile") {
				opts.lockfile = cfg.Lockfile
			}
			return c.runRewrite(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.gemfile, "gemfile", "Gemfile", "path to the Gemfile")
	cmd.Flags().StringVar(&opts.lockfile, "lockfile", "Gemfile.lock", "path to the lockfile")
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "show the pins without writing")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "choose which gems to pin")
	cmd.MarkFlagsMutuallyExclusive("dry-run", "interactive")

	return cmd
}

func (c *CLI) runRewrite(ctx context.Context, opts rewriteOptions) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	mode := c.mode()

	gemfilePath := c.path(opts.gemfile)
	info, err := os.Stat(gemfilePath)
	if err != nil || info.IsDir() {
		return errors.New(errors.ErrCodeFileNotFound, errFilesNotFound)
	}
	specs, err := lockfile.Load(c.path(opts.lockfile))
	if err != nil {
		if errors.Is(err, errors.ErrCodeFileNotFound) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, errFilesNotFound)
		}
		return err
	}
	logger.Debug("read lockfile", "path", opts.lockfile, "specs", len(specs), "mode", mode)
	logger.Debug("locked gems", "names", specs.Names())

	src, err := os.ReadFile(gemfilePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", opts.gemfile, err)
	}

	res, err := rewrite.Rewrite(ctx, c.parser, src, specs, mode)
	if err != nil {
		return err
	}
	for _, p := range res.Pins {
		logger.Debug("pin", "gem", p.Gem, "line", p.Line, "requirement", p.Specifier(mode))
	}

	if !res.Changed() {
		printInfo(c.out, "Nothing to pin; %s unchanged", opts.gemfile)
		return nil
	}

	if opts.dryRun {
		fmt.Fprintln(c.out, renderPinTable(res.Pins, mode))
		printInfo(c.out, "%d gems would be pinned (dry run, nothing written)", len(res.Pins))
		printDetail(c.out, "Run without --dry-run to update %s", opts.gemfile)
		return nil
	}

	out := res.Source
	pinned := len(res.Pins)
	if opts.interactive {
		chosen, ok, err := c.selectPins(res.Pins, mode)
		if err != nil {
			return err
		}
		if !ok || len(chosen) == 0 {
			printInfo(c.out, "No gems selected; %s unchanged", opts.gemfile)
			return nil
		}
		if out, err = rewrite.Apply(src, chosen); err != nil {
			return err
		}
		pinned = len(chosen)
	}

	if err := os.WriteFile(gemfilePath, out, info.Mode().Perm()); err != nil {
		return fmt.Errorf("write %s: %w", opts.gemfile, err)
	}

	prog.done(fmt.Sprintf("Pinned %d gems", pinned))
	printSuccess(c.out, "Gemfile updated with locked versions")
	return nil
}
