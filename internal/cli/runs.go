package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/venntower/pkg/store"
)

// runsCommand manages runs saved with run --save.
func (c *CLI) runsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List, show and delete saved runs",
	}
	cmd.AddCommand(c.runsListCommand())
	cmd.AddCommand(c.runsShowCommand())
	cmd.AddCommand(c.runsDeleteCommand())
	cmd.AddCommand(c.runsCleanupCommand())
	return cmd
}

// withStore loads the config and opens the run store for fn.
func (c *CLI) withStore(cmd *cobra.Command, fn func(store.Store) error) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	st, err := c.openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

func (c *CLI) runsListCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(st store.Store) error {
				runs, err := st.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(runs) == 0 {
					printInfo("No saved runs")
					printNextStep("Save one with", `venntower run "a b ab" --save`)
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), runsTable(runs))
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", store.DefaultListLimit, "maximum number of runs")
	return cmd
}

func runsTable(runs []*store.Run) string {
	rows := make([][]string, len(runs))
	for i, r := range runs {
		rows[i] = []string{
			r.ID,
			r.Notation,
			r.Decomposition + " / " + r.Recomposition,
			strconv.Itoa(r.Curves),
			r.CreatedAt.Local().Format(time.DateTime),
		}
	}
	return renderTable([]string{"ID", "Notation", "Strategies", "Curves", "Created"}, rows)
}

func (c *CLI) runsShowCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved run and its plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(st store.Store) error {
				run, err := st.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if asJSON {
					enc := json.NewEncoder(w)
					enc.SetIndent("", "  ")
					return enc.Encode(run)
				}
				printKeyValue(w, "id", run.ID)
				printKeyValue(w, "notation", run.Notation)
				printKeyValue(w, "decomposition", run.Decomposition)
				printKeyValue(w, "recomposition", run.Recomposition)
				printKeyValue(w, "curves", strconv.Itoa(run.Curves))
				printKeyValue(w, "zones", strconv.Itoa(run.Zones))
				printKeyValue(w, "checksum", strconv.FormatFloat(run.Checksum, 'f', 6, 64))
				printKeyValue(w, "expires", run.ExpiresAt.Local().Format(time.DateTime))
				for i, s := range run.Plan.Steps {
					fmt.Fprintf(w, "%3d  %s  %s %s %s\n", i+1, StyleHighlight.Render(s.Label), s.From, iconArrow, s.To)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the run as JSON")
	return cmd
}

func (c *CLI) runsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(st store.Store) error {
				if err := st.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				printSuccess("Deleted run %s", args[0])
				return nil
			})
		},
	}
}

func (c *CLI) runsCleanupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Remove expired runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(st store.Store) error {
				n, err := st.Cleanup(cmd.Context())
				if err != nil {
					return err
				}
				printSuccess("Removed %d expired runs", n)
				return nil
			})
		},
	}
}
