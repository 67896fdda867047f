package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/venntower/pkg/decompose"
)

// decomposeCommand prints the steps that remove every curve.
func (c *CLI) decomposeCommand() *cobra.Command {
	var (
		in         inputOpts
		strategies strategyOpts
	)

	cmd := &cobra.Command{
		Use:   "decompose [notation]",
		Short: "Remove curves one at a time and print each step",
		Long: `Decompose a description by removing one curve per step until only the
outside zone is left. The strategy decides which curve goes next.`,
		Example: `  venntower decompose "a b ab"
  venntower decompose --decomposition innermost -f diagram.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			steps, err := c.newRunner(cmd.Context(), cfg, true).Decompose(cmd.Context(), d, opts)
			if err != nil {
				return err
			}
			prog.done("decomposed", "strategy", opts.Decomposition, "steps", len(steps))

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, decompositionTable(steps))
			printKeyValue(w, "checksum", strconv.FormatFloat(decompose.Checksum(steps), 'f', 6, 64))
			return nil
		},
	}

	in.register(cmd)
	strategies.register(cmd)
	return cmd
}

func decompositionTable(steps []decompose.Step) string {
	rows := make([][]string, len(steps))
	for i, s := range steps {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			StyleHighlight.Render(s.Removed.String()),
			s.From.Sentence(),
			s.To.Sentence(),
			strconv.Itoa(len(s.Moved)),
		}
	}
	return renderTable([]string{"#", "Removed", "From", "To", "Moved"}, rows)
}
