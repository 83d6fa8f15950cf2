package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// inspectCommand opens the terminal graph browser.
func (c *CLI) inspectCommand() *cobra.Command {
	var flags graphFlags

	cmd := &cobra.Command{
		Use:   "inspect [dataset.json]",
		Short: "Browse the nodes and edges of a station graph",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, ds, res, err := c.buildGraph(ctx, cmd, &flags, args)
			if err != nil {
				return err
			}
			defer runner.Close()

			title := "Station graph"
			if st, ok := ds.StationStop(); ok {
				title = fmt.Sprintf("%s (%d)", st.DisplayName(), st.ID)
			}
			_, err = tea.NewProgram(NewGraphModel(title, res.Graph), tea.WithContext(ctx)).Run()
			return err
		},
	}

	flags.register(cmd)
	return cmd
}
