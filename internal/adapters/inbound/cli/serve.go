package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shellcon/aquacheck/internal/adapters/inbound/httpapi"
	"github.com/shellcon/aquacheck/internal/adapters/outbound/counter"
)

func newServeCmd(opts *globalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve verification endpoints over HTTP",
		Long:  "Start the HTTP server exposing /api/challenges/:id/validate, the challenge catalog, health and Prometheus metrics.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, opts, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close(context.Background()) }()

			if addr == "" {
				addr = a.cfg.ListenAddr
			}
			srv := httpapi.NewServer(a.verify, a.catalog, httpapi.Options{
				Addr:         addr,
				ServiceName:  a.cfg.Tracing.ServiceName,
				Version:      version,
				Metrics:      a.metrics.Handler(),
				ProbeClients: counter.Local(a.metrics.ProbeClients),
				Logger:       a.logger,
			})
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides listen_addr)")
	return cmd
}
