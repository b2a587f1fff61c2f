package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go-url-admin/server"
)

func newServeCmd(a *app) *cobra.Command {
	var disableRateLimit bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("disable-rate-limit") {
				a.cfg.DisableRateLimit = disableRateLimit
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.logger.Info("Starting URL admin console...", zap.String("backend", a.cfg.Backend))
			if err := server.Run(ctx, a.logger, a.cfg); err != nil {
				return err
			}
			a.logger.Info("URL admin console stopped.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&disableRateLimit, "disable-rate-limit", false, "disable rate limiting for performance testing")
	return cmd
}
