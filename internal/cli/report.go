package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lockgemfile/pkg/gemfile"
	"github.com/matzehuels/lockgemfile/pkg/httputil"
	"github.com/matzehuels/lockgemfile/pkg/integrations/rubygems"
	"github.com/matzehuels/lockgemfile/pkg/localgems"
	"github.com/matzehuels/lockgemfile/pkg/report"
)

type reportOptions struct {
	gemfile string
	format  string
	refresh bool
	noCache bool
}

// reportCommand creates the report command.
func (c *CLI) reportCommand() *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Count installed and published versions matching the Gemfile",
		Long: `Report how many versions of the Gemfile's dependencies satisfy their
requirements, both in the local gem installation and on the registry.

Percentages show the surplus over one version per gem.`,
		Example: `  lock report
  lock report --format json
  lock report --refresh`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config()
			if !cmd.Flags().Changed("gemfile") {
				opts.gemfile = cfg.Gemfile
			}
			if !cmd.Flags().Changed("format") {
				opts.format = cfg.Report.Format
			}
			return c.runReport(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.gemfile, "gemfile", "Gemfile", "path to the Gemfile")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(report.FormatText), "output format (text, json, yaml)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached registry responses")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the registry response cache")

	return cmd
}

func (c *CLI) runReport(ctx context.Context, opts reportOptions) error {
	logger := loggerFromContext(ctx)
	cfg := c.config()

	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	deps, err := gemfile.New(c.parser).Parse(ctx, c.path(opts.gemfile))
	if err != nil {
		return err
	}
	logger.Debug("parsed Gemfile", "path", opts.gemfile, "dependencies", len(deps))

	var cache *httputil.Cache
	if !opts.noCache {
		cache, err = httputil.NewCache(c.cacheDir, cfg.Report.CacheTTL.Duration)
		if err != nil {
			printWarning(c.err, "Registry cache disabled: %v", err)
			cache = nil
		}
	}

	gen := &report.Generator{
		Local: localgems.New(cfg.Report.GemPaths...),
		Remote: &report.RemoteSource{
			Client:  rubygems.NewClientWithURL(cache, cfg.Report.Registry),
			Refresh: opts.refresh,
		},
		Concurrency: cfg.Report.Concurrency,
		Logf:        logger.Warnf,
	}

	spinner := newSpinnerWithContext(ctx, c.err, fmt.Sprintf("Counting versions of %d gems...", len(deps)))
	spinner.Start()
	rep, err := gen.Generate(ctx, deps)
	if err != nil {
		spinner.StopWithError("Report aborted")
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Counted versions of %d gems", len(deps)))

	return report.Write(c.out, rep, format)
}
