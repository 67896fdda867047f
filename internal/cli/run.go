package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/venntower/pkg/config"
	"github.com/matzehuels/venntower/pkg/pipeline"
	"github.com/matzehuels/venntower/pkg/store"
)

// runCommand executes the whole pipeline and writes the artifacts.
func (c *CLI) runCommand() *cobra.Command {
	var (
		in          inputOpts
		strategies  strategyOpts
		formatsStr  string
		output      string
		detailed    bool
		noCache     bool
		refresh     bool
		save        bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "run [notation]",
		Short: "Decompose, recompose and render a description",
		Long: `Run the complete pipeline on a description and write the requested
artifacts: the JSON plan, a text log of every step, or the dual graph as
DOT, SVG, PNG or PDF.

Artifacts are cached, so repeating a run with the same description and
strategies is served from the cache. Use --refresh to render again.

With --interactive the steps are shown in a browser instead.`,
		Example: `  venntower run "a b ab"
  venntower run "a b ab c, ab" --format text,dot -o diagram
  venntower run -f diagram.toml --save
  venntower run "a b c ab bc" --interactive`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			d, err := in.parse(cmd, args)
			if err != nil {
				return err
			}

			opts := cfg.PipelineOptions()
			strategies.apply(&opts)
			if formats := parseFormats(formatsStr); formats != nil {
				opts.Formats = formats
			}
			if cmd.Flags().Changed("detailed") {
				opts.Detailed = detailed
			}
			opts.Refresh = refresh
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			if !interactive {
				if _, err := outputPaths(output, opts.Formats); err != nil {
					return err
				}
			}

			runner := c.newRunner(ctx, cfg, noCache)
			defer runner.Close()

			spinner := newSpinner(ctx, "Running pipeline...")
			spinner.Start()
			res, err := runner.Execute(ctx, d, opts)
			if err != nil {
				spinner.StopWithError("Pipeline failed")
				return err
			}
			spinner.Stop()

			if save {
				run, err := c.saveRun(ctx, cfg, res, opts)
				if err != nil {
					return err
				}
				printSuccess("Saved run %s", run.ID)
				printNextStep("Show it again", "venntower runs show "+run.ID)
			}

			if interactive {
				return browseSteps(ctx, res)
			}

			written, err := writeArtifacts(cmd.OutOrStdout(), res.Artifacts, opts.Formats, output)
			if err != nil {
				return err
			}
			if len(written) > 0 {
				printSuccess("Recomposed %d curves", res.Stats.CurvesAdded)
				printStats(res.Stats.Curves, res.Stats.Zones, len(res.Recomposition), res.CacheInfo.RenderHit)
				for _, path := range written {
					printFile(path)
				}
			}
			return nil
		},
	}

	in.register(cmd)
	strategies.register(cmd)
	cmd.Flags().StringVar(&formatsStr, "format", "", "output format(s): json, text, dot, svg, png, pdf (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label dual graph zones with curve ids and steps")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "render again even if cached")
	cmd.Flags().BoolVar(&save, "save", false, "persist the run to the configured store")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse the steps interactively")

	return cmd
}

// saveRun persists res to the configured store.
func (c *CLI) saveRun(ctx context.Context, cfg config.Config, res *pipeline.Result, opts pipeline.Options) (*store.Run, error) {
	st, err := c.openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	run, err := store.NewRun(res, opts.Decomposition, opts.Recomposition, cfg.Store.TTL)
	if err != nil {
		return nil, err
	}
	if err := st.Put(ctx, run); err != nil {
		return nil, err
	}
	c.Logger.Debug("saved run", "id", run.ID, "backend", cfg.Store.Backend)
	return run, nil
}
