package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/venntower/pkg/decompose"
	"github.com/matzehuels/venntower/pkg/recompose"
)

// strategiesCommand lists the decomposition and recomposition strategies.
func (c *CLI) strategiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List decomposition and recomposition strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), strategiesTable())
			return nil
		},
	}
}

func strategiesTable() string {
	var rows [][]string
	for _, s := range decompose.Strategies() {
		rows = append(rows, []string{"decompose", s.String(), s.Description(), defaultMark(s == decompose.DefaultStrategy)})
	}
	for _, s := range recompose.Strategies() {
		rows = append(rows, []string{"recompose", s.String(), s.Description(), defaultMark(s == recompose.DefaultStrategy)})
	}
	return renderTable([]string{"Stage", "Name", "Description", "Default"}, rows)
}

func defaultMark(ok bool) string {
	if ok {
		return StyleSuccess.Render(iconSuccess)
	}
	return ""
}
