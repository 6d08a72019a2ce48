package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/hotel-booking/internal/domain/reservation"
	"github.com/example/hotel-booking/internal/infrastructure/metrics"
	"github.com/example/hotel-booking/internal/interfaces/web"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		addr      string
		migrateUp bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			cfg, log, st, err := opts.setup(ctx, migrateUp)
			if err != nil {
				return err
			}
			defer st.close()

			if addr != "" {
				cfg.HTTPAddr = addr
			}

			srv := &web.Server{
				Hotels:       st.hotels,
				Reservations: st.reservations,
				Ledger: reservation.Ledger{
					Store:       st.reservations,
					Log:         log,
					OnCollision: metrics.ConfirmationCollisions.Inc,
				},
				Log:  log,
				Ping: st.ping,
			}
			log.WithField("store", cfg.Store).Info("starting hotel api")
			return web.Start(ctx, cfg.HTTPAddr, srv.Routes(), cfg.ShutdownTimeout, log)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides HTTP_ADDR")
	cmd.Flags().BoolVar(&migrateUp, "migrate", true, "run database migrations on startup")
	cmd.Flags().Lookup("migrate").NoOptDefVal = "true"
	return cmd
}
