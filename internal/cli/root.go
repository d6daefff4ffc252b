// Package cli implements the htmllog commands.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/angeloszaimis/htmllog/config"
	"github.com/angeloszaimis/htmllog/pkg/htmllog"
	"github.com/angeloszaimis/htmllog/pkg/logger"
)

// app carries state shared by all commands once the root pre-run has loaded
// configuration.
type app struct {
	configPath string
	logsPath   string

	cfg *config.Config
	log *slog.Logger
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "htmllog",
		Short: "Sectioned logs rendered as self-contained HTML reports",
		Long: `htmllog records log entries grouped into sections and keeps one
browsable HTML report per run under <logs_path>/YYYY/MM/DD/.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default: ./config/htmllog.yaml or ./htmllog.yaml)")
	root.PersistentFlags().StringVar(&a.logsPath, "logs-path", "", "override report.logs_path")

	// Subcommands (alphabetical)
	root.AddCommand(newDemoCmd(a))
	root.AddCommand(newPathCmd(a))
	root.AddCommand(newReplayCmd(a))
	root.AddCommand(newServeCmd(a))
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCommand().Execute()
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("logs-path") {
		cfg.Report.LogsPath = a.logsPath
	}

	a.cfg = cfg
	a.log = logger.New(cfg.Logging.Level, false, cfg.Server.Environment, os.Stderr)
	return nil
}

// newLogger starts a run. Empty title or description fall back to config.
func (a *app) newLogger(title, description string) (*htmllog.Logger, error) {
	if title == "" {
		title = a.cfg.Report.Title
	}
	if description == "" {
		description = a.cfg.Report.Description
	}
	return htmllog.New(title, description, a.cfg.Report.LogsPath, htmllog.WithLogger(a.log))
}
