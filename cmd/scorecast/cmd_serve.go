package main

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/YuminosukeSato/scorecast/api"
	"github.com/YuminosukeSato/scorecast/predict"
	"github.com/spf13/cobra"
)

func newServeCmd(_, stderr io.Writer) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve predictions over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, closer, err := setup(cmd, stderr)
			if err != nil {
				return fail(stderr, "Server", err)
			}
			defer closer.Close()

			if addr == "" {
				addr = cfg.Server.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := api.New(predict.NewLoader(cfg.ModelPath))
			if err := srv.ListenAndServe(ctx, addr); err != nil {
				return fail(stderr, "Server", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	return cmd
}
