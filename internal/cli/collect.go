package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/noticer/pkg/collected"
	"github.com/matzehuels/noticer/pkg/config"
	"github.com/matzehuels/noticer/pkg/errors"
	"github.com/matzehuels/noticer/pkg/gather"
	"github.com/matzehuels/noticer/pkg/integrations/github"
	"github.com/matzehuels/noticer/pkg/integrations/maven"
	"github.com/matzehuels/noticer/pkg/locate"
)

// collectOpts holds the flags of the collect command.
type collectOpts struct {
	variant       string
	exclude       []string
	overrides     string
	repositories  []string
	fetchLicenses bool
	remote        bool
	noCache       bool
	strict        bool
	showTable     bool
	output        string
}

// collectCommand creates the collect command.
func (c *CLI) collectCommand() *cobra.Command {
	var opts collectOpts

	cmd := &cobra.Command{
		Use:   "collect <dependencies.json>",
		Short: "Resolve library and license metadata for a dependency list",
		Long: `Resolve library and license metadata for a dependency list.

The dependency list maps build variants to resolved coordinates:

  {"variants": {"release": {"com.squareup.okio:okio": ["3.6.0"]}}}

Descriptors are looked up in the local Maven repository and the Gradle module
cache, and with --remote in the configured remote repositories. The result is
written as JSON to stdout or to --output.`,
		Example: `  # Resolve the release variant and print JSON
  noticer collect build/dependencies.json --variant release

  # Fetch license texts from GitHub and write a file
  GITHUB_TOKEN=... noticer collect deps.json --fetch-remote-license -o libraries.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts.apply(cmd, &cfg)
			return c.runCollect(cmd, args[0], cfg, opts)
		},
	}

	cmd.Flags().StringVar(&opts.variant, "variant", "", "build variant to resolve (default: all variants merged)")
	cmd.Flags().StringArrayVar(&opts.exclude, "exclude", nil, "exclude unique ids matching this regular expression (repeatable)")
	cmd.Flags().StringVar(&opts.overrides, "overrides", "", "override directory with licenses/ and libraries/")
	cmd.Flags().StringArrayVar(&opts.repositories, "repository", nil, "local repository root, Maven or Gradle layout (repeatable, replaces configured ones)")
	cmd.Flags().BoolVar(&opts.fetchLicenses, "fetch-remote-license", false, "fetch license texts from GitHub")
	cmd.Flags().BoolVar(&opts.remote, "remote", false, "download descriptors missing locally from remote repositories")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "exit with an error if any dependency failed")
	cmd.Flags().BoolVar(&opts.showTable, "table", false, "print a license summary table")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

// apply overrides config values with explicitly set flags.
func (o *collectOpts) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("variant") {
		cfg.Variant = o.variant
	}
	cfg.Exclusions = append(cfg.Exclusions, o.exclude...)
	if flags.Changed("overrides") {
		cfg.OverrideDir = o.overrides
	}
	if flags.Changed("repository") {
		cfg.Repositories = o.repositories
	}
	if flags.Changed("fetch-remote-license") {
		cfg.FetchRemoteLicense = o.fetchLicenses
	}
}

func (c *CLI) runCollect(cmd *cobra.Command, input string, cfg config.Config, opts collectOpts) error {
	ctx := cmd.Context()
	prog := newProgress(c.Logger)

	container, err := collected.Load(input)
	if err != nil {
		return err
	}
	deps, err := container.ForVariant(cfg.Variant)
	if err != nil {
		return err
	}

	store, err := c.newCache(ctx, cfg.Cache, opts.noCache)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "open cache")
	}
	defer store.Close()

	chain := localLocators(cfg.LocalRepositories())
	if opts.remote {
		dir, err := descriptorDir()
		if err != nil {
			return err
		}
		chain = append(chain, locate.Remote{
			Client: maven.NewClient(store, cfg.Cache.TTL.Duration, cfg.RemoteRepositories...),
			Dir:    dir,
		})
	}

	gopts := gather.Options{
		Locator:            chain,
		Exclusions:         cfg.Exclusions,
		OverrideDir:        config.ExpandHome(cfg.OverrideDir),
		FetchRemoteLicense: cfg.FetchRemoteLicense,
		Logger:             c.Logger,
	}
	if cfg.FetchRemoteLicense {
		if cfg.GitHubToken == "" {
			c.Logger.Warn("no GitHub token, remote license lookups are limited to 60 per hour", "env", config.TokenEnv)
		}
		gh := github.NewClient(store, cfg.GitHubToken, cfg.Cache.TTL.Duration)
		gh.Logger = c.Logger
		gopts.Enricher = gh
		gopts.RateLimiter = gh
	}

	g, err := gather.New(gopts)
	if err != nil {
		return err
	}
	report, err := g.Gather(ctx, deps)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Resolved %d libraries", report.Stats.Resolved))

	if err := writeResult(report, opts.output); err != nil {
		return err
	}
	if opts.output != "" {
		printSummary(report, opts.output)
		if opts.showTable {
			licenseTable(os.Stdout, report.Result)
		}
	}

	if opts.strict && report.Stats.Failed > 0 {
		return fmt.Errorf("%d of %d dependencies failed", report.Stats.Failed, len(report.Outcomes))
	}
	return nil
}

// localLocators builds a locator per repository root. Roots inside a Gradle
// module cache use the Gradle layout, everything else the Maven layout.
func localLocators(roots []string) locate.Chain {
	chain := make(locate.Chain, 0, len(roots))
	for _, root := range roots {
		if isGradleCache(root) {
			chain = append(chain, locate.Gradle{Root: root})
		} else {
			chain = append(chain, locate.Maven{Root: root})
		}
	}
	return chain
}

func isGradleCache(root string) bool {
	return strings.HasPrefix(filepath.Base(filepath.Clean(root)), "files-2.")
}

func writeResult(report *gather.Report, output string) error {
	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return report.Result.WriteJSON(w)
}

func printSummary(report *gather.Report, output string) {
	printSuccess("Collected %d libraries with %d licenses", len(report.Result.Libraries), len(report.Result.Licenses))
	printStats(report.Stats)
	if report.Budget != nil {
		printDetail("Remote license budget left: %d", *report.Budget)
	}
	for _, f := range report.Failures() {
		printError("%s: %s", f.Coordinate, errors.UserMessage(f.Err))
	}
	if dangling := report.Result.Dangling(); len(dangling) > 0 {
		printWarning("%d license references do not resolve", len(dangling))
	}
	printFile(output)
}
