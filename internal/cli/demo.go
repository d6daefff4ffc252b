package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/angeloszaimis/htmllog/pkg/htmllog"
)

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Write a sample report and print its path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.newLogger("Import", "Sample import run")
			if err != nil {
				return err
			}
			if err := runDemo(l); err != nil {
				return err
			}
			a.log.Info("demo report written", "path", l.Path())
			fmt.Fprintln(cmd.OutOrStdout(), l.Path())
			return nil
		},
	}
}

func runDemo(l *htmllog.Logger) error {
	steps := []func() error{
		func() error { return l.CreateSection("Phase 1", "P1") },
		func() error { return l.Info("P1", "started") },
		func() error { return l.Error("P1", "bad row 4") },
		func() error { return l.CloseSection("P1") },
		func() error { return l.CreateSection("Phase 2", "P2") },
		func() error { return l.Debug("P2", "loaded 1200 rows from cache") },
		func() error { return l.Info("P2", "finished") },
		func() error { return l.CloseSection("P2") },
		func() error { return l.ErrorException("unexpected EOF while reading rows.csv") },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
