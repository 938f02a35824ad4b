package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/integraph/integraph/engine/infra/memory"
	"github.com/integraph/integraph/engine/infra/postgres"
	"github.com/integraph/integraph/engine/infra/server"
	"github.com/integraph/integraph/pkg/logger"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			inMemory, _ := cmd.Flags().GetBool("in-memory")

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			ctx = logger.ContextWithLogger(ctx, log)

			var repos server.Repos
			var opts []server.Option
			if inMemory {
				log.Warn("using in-memory store, data will not survive a restart")
				store := memory.NewStore()
				repos = server.Repos{
					Agents:          store.Agents(),
					Processes:       store.Processes(),
					Schedules:       store.Schedules(),
					Tasks:           store.Tasks(),
					Fields:          store.Fields(),
					Connectors:      store.Connectors(),
					Transformations: store.Transformations(),
					Users:           store.Users(),
				}
			} else {
				dsn := cfg.Database.DSN()
				if cfg.Database.AutoMigrate {
					if err := postgres.ApplyMigrations(ctx, dsn); err != nil {
						return err
					}
				}
				store, err := postgres.NewStore(ctx, dsn)
				if err != nil {
					return err
				}
				defer store.Close(ctx)
				db := store.Pool()
				repos = server.Repos{
					Agents:          postgres.NewAgentRepo(db),
					Processes:       postgres.NewProcessRepo(db),
					Schedules:       postgres.NewScheduleRepo(db),
					Tasks:           postgres.NewTaskRepo(db),
					Fields:          postgres.NewFieldRepo(db),
					Connectors:      postgres.NewConnectorRepo(db),
					Transformations: postgres.NewTransformationRepo(db),
					Users:           postgres.NewUserRepo(db),
				}
				opts = append(opts, server.WithHealthChecker(store))
			}

			srv := server.NewServer(cfg, log, repos, opts...)
			return srv.Run(ctx)
		},
	}
	cmd.Flags().Bool("in-memory", false, "Serve from a volatile in-memory store")
	return cmd
}
