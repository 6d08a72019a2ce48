package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/example/hotel-booking/internal/domain/hotel"
	"github.com/example/hotel-booking/internal/domain/reservation"
	"github.com/example/hotel-booking/internal/infrastructure/config"
	"github.com/example/hotel-booking/internal/infrastructure/memory"
	"github.com/example/hotel-booking/internal/infrastructure/postgres"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

type rootOptions struct {
	store   string
	envFile string
}

func NewRoot() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "hotelapi",
		Short:         "Hotel catalog, availability search and reservation booking",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.store, "store", "", "storage backend (postgres|memory), overrides STORE")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "optional dotenv file")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newMigrateCmd(opts))
	cmd.AddCommand(newHotelCmd(opts))
	cmd.AddCommand(newAvailabilityCmd(opts))
	cmd.AddCommand(newReservationCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func Execute() {
	if err := NewRoot().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (o *rootOptions) config() (config.Config, error) {
	if o.store != "" {
		// --store must be visible to FromEnv so its DATABASE_URL check
		// follows the flag
		if err := os.Setenv("STORE", o.store); err != nil {
			return config.Config{}, err
		}
	}
	return config.Load(o.envFile)
}

func newLogger(cfg config.Config) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if cfg.LogFormat == "text" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	lvl, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	log.SetLevel(lvl)
	return log, nil
}

// stores bundles the backend picked by STORE.
type stores struct {
	hotels       hotel.Catalog
	reservations reservation.Store
	ping         func(ctx context.Context) error
	close        func()
}

func openStores(ctx context.Context, cfg config.Config, log logrus.FieldLogger, migrate bool) (stores, error) {
	if cfg.Store == config.StoreMemory {
		log.Warn("using in-memory store; data is lost on exit")
		return stores{
			hotels:       memory.NewHotelCatalog(),
			reservations: memory.NewReservationStore(),
			close:        func() {},
		}, nil
	}

	pool, err := postgres.Open(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		return stores{}, err
	}
	if err := postgres.Ping(ctx, pool); err != nil {
		pool.Close()
		return stores{}, err
	}
	if migrate {
		if err := runMigrations(ctx, pool, log); err != nil {
			pool.Close()
			return stores{}, err
		}
	}
	return stores{
		hotels:       postgres.NewHotelCatalog(pool),
		reservations: postgres.NewReservationStore(pool),
		ping:         func(ctx context.Context) error { return postgres.Ping(ctx, pool) },
		close:        pool.Close,
	}, nil
}

func runMigrations(ctx context.Context, pool *pgxpool.Pool, log logrus.FieldLogger) error {
	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		return err
	}
	for _, v := range applied {
		log.WithField("version", v).Info("applied migration")
	}
	return nil
}

// setup loads config and a logger, then opens storage. Callers must call close.
func (o *rootOptions) setup(ctx context.Context, migrate bool) (config.Config, *logrus.Logger, stores, error) {
	cfg, err := o.config()
	if err != nil {
		return config.Config{}, nil, stores{}, err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return config.Config{}, nil, stores{}, err
	}
	st, err := openStores(ctx, cfg, log, migrate)
	if err != nil {
		return config.Config{}, nil, stores{}, err
	}
	return cfg, log, st, nil
}
