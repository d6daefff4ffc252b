package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/angeloszaimis/htmllog/internal/replay"
)

func newReplayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Replay a YAML script of operations into a new report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open script: %w", err)
			}
			defer f.Close()

			script, err := replay.Parse(f)
			if err != nil {
				return err
			}

			l, err := a.newLogger(script.Title, script.Description)
			if err != nil {
				return err
			}
			if err := replay.NewRunner().Run(l, script); err != nil {
				return err
			}

			a.log.Info("script replayed",
				"script", args[0],
				"steps", len(script.Steps),
				"path", l.Path())
			fmt.Fprintln(cmd.OutOrStdout(), l.Path())
			return nil
		},
	}
}
