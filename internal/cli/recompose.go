package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/venntower/pkg/diagram"
	"github.com/matzehuels/venntower/pkg/recompose"
)

// recomposeCommand decomposes a description and prints how it is rebuilt.
func (c *CLI) recomposeCommand() *cobra.Command {
	var (
		in         inputOpts
		strategies strategyOpts
	)

	cmd := &cobra.Command{
		Use:   "recompose [notation]",
		Short: "Rebuild a description curve by curve and print each step",
		Long: `Recompose a description: decompose it, then add the curves back in reverse
order. Each step lists the zones the new curve splits. The recomposition
strategy decides whether a curve may split several zones at once.`,
		Example: `  venntower recompose "a b ab"
  venntower recompose --recomposition nested "a b c"`,
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

			ctx := cmd.Context()
			runner := c.newRunner(ctx, cfg, true)
			prog := newProgress(c.Logger)
			decomposed, err := runner.Decompose(ctx, d, opts)
			if err != nil {
				return err
			}
			steps, err := runner.Recompose(ctx, decomposed, opts)
			if err != nil {
				return err
			}
			prog.done("recomposed", "strategy", opts.Recomposition, "steps", len(steps))

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, recompositionTable(steps))
			printKeyValue(w, "checksum", strconv.FormatFloat(recompose.Checksum(steps), 'f', 6, 64))
			return nil
		},
	}

	in.register(cmd)
	strategies.register(cmd)
	return cmd
}

func recompositionTable(steps []recompose.Step) string {
	var rows [][]string
	for i, s := range steps {
		for j, data := range s.Added {
			num, label, result := "", "", ""
			if j == 0 {
				num = strconv.Itoa(i + 1)
				label = StyleHighlight.Render(s.Label().String())
				result = s.To.Sentence()
			}
			rows = append(rows, []string{num, label, strconv.Itoa(data.Curve.ID()), zoneList(data.Split), result})
		}
	}
	return renderTable([]string{"#", "Label", "Curve", "Splits", "Result"}, rows)
}

// zoneList joins zone names; the outside zone reads ".".
func zoneList(zones []*diagram.Zone) string {
	names := make([]string, len(zones))
	for i, z := range zones {
		names[i] = z.String()
	}
	return strings.Join(names, " ")
}
