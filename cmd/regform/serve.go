package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/internal/config"
	"github.com/goliatone/go-regform/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the form over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orchOpts, err := a.orchestratorOptions()
			if err != nil {
				return err
			}
			srv := server.New(
				server.WithLogger(a.logger),
				server.WithSessionTTL(a.cfg.Server.SessionTTL),
				server.WithFormOptions(a.cfg.FormOptions()...),
				server.WithOrchestratorOptions(orchOpts...),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx, a.cfg.Server.Addr, a.cfg.Server.ReadHeaderTimeout, a.cfg.Server.ShutdownTimeout)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default :8080)")
	_ = a.v.BindPFlag(config.KeyServerAddr, cmd.Flags().Lookup("addr"))
	return cmd
}
