package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPathCmd(a *app) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the report path a run started now would use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.newLogger(title, "")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), l.Path())
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "report title (default: report.title)")
	return cmd
}
