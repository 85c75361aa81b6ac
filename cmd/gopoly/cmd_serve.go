package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/njchilds90/gopoly/internal/server"
)

func (a *app) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve polynomial tools over HTTP",
		Long: `Starts the HTTP tool server:
  POST /tool   - execute a tool call
  GET  /schema - tool schema for agent registration
  GET  /health - health check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return server.New(a.cfg, a.logger).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	return cmd
}
