package cli

import (
	"github.com/spf13/cobra"

	"github.com/integraph/integraph/engine/infra/postgres"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			if err := postgres.ApplyMigrations(cmd.Context(), cfg.Database.DSN()); err != nil {
				return err
			}
			log.Info("migrations applied")
			return nil
		},
	}
}
