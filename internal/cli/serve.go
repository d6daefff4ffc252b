package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/angeloszaimis/htmllog/internal/httpserver"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the reports directory over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Server.Address
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return a.serve(ctx, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default: server.address)")
	return cmd
}

func (a *app) serve(ctx context.Context, addr string) error {
	srv, err := httpserver.New(addr, httpserver.ReportsHandler(a.cfg.Report.LogsPath, a.log))
	if err != nil {
		return err
	}

	srvErrCh := make(chan error, 1)
	go func() {
		srvErrCh <- srv.Start()
	}()

	a.log.Info("serving reports",
		slog.String("addr", addr),
		slog.String("dir", a.cfg.Report.LogsPath))

	select {
	case <-ctx.Done():
		a.log.Info("Shutting down gracefully...")
		return srv.Shutdown(context.Background())
	case err := <-srvErrCh:
		return err
	}
}
