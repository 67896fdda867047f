package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/venntower/pkg/errors"
	"github.com/matzehuels/venntower/pkg/pipeline"
)

// dualCommand renders the dual graph of the recomposed description.
func (c *CLI) dualCommand() *cobra.Command {
	var (
		in         inputOpts
		strategies strategyOpts
		format     string
		output     string
		detailed   bool
	)

	cmd := &cobra.Command{
		Use:   "dual [notation]",
		Short: "Render the dual graph of a description",
		Long: `Render the dual graph: one node per zone, one edge per pair of zones that
differ by a single curve. Zones are colored by the recomposition step that
introduced them.`,
		Example: `  venntower dual "a b ab" | dot -Tpng > dual.png
  venntower dual "a b ab c" --format svg -o dual.svg --detailed`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case pipeline.FormatDOT, pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF:
			default:
				return errors.New(errors.ErrCodeInvalidFormat, "dual graph format must be dot, svg, png or pdf, got %q", format)
			}

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
			opts.Formats = []string{format}
			opts.Detailed = detailed
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			if _, err := outputPaths(output, opts.Formats); err != nil {
				return err
			}

			runner := c.newRunner(ctx, cfg, false)
			defer runner.Close()
			res, err := runner.Execute(ctx, d, opts)
			if err != nil {
				return err
			}

			written, err := writeArtifacts(cmd.OutOrStdout(), res.Artifacts, opts.Formats, output)
			if err != nil {
				return err
			}
			for _, path := range written {
				printSuccess("Rendered dual graph of %d zones", res.Stats.Zones)
				printFile(path)
			}
			return nil
		},
	}

	in.register(cmd)
	strategies.register(cmd)
	cmd.Flags().StringVar(&format, "format", pipeline.FormatDOT, "output format: dot, svg, png, pdf")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label zones with curve ids and steps")
	return cmd
}
