package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/integraph/integraph/engine/auth"
	"github.com/integraph/integraph/engine/infra/postgres"
)

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage API users",
	}
	cmd.AddCommand(userCreateCmd())
	return cmd
}

func userCreateCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an API user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			if username == "" || password == "" {
				return fmt.Errorf("both --username and --password are required")
			}
			store, err := postgres.NewStore(cmd.Context(), cfg.Database.DSN())
			if err != nil {
				return err
			}
			defer store.Close(cmd.Context())
			user := &auth.User{Username: username, CreatedAt: time.Now().UTC()}
			if err := user.SetPassword(password); err != nil {
				return err
			}
			created, err := postgres.NewUserRepo(store.Pool()).Create(cmd.Context(), user)
			if err != nil {
				return err
			}
			log.Info("user created", "username", created.Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "Username for the new user")
	cmd.Flags().StringVar(&password, "password", "", "Password for the new user")
	return cmd
}
