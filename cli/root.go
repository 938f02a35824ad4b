package cli

import (
	"github.com/spf13/cobra"

	"github.com/integraph/integraph/pkg/config"
	"github.com/integraph/integraph/pkg/logger"
)

// RootCmd builds the integraph command tree.
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "integraph",
		Short:        "Integraph - configuration store for data integration workflows",
		Long:         "Integraph manages agents, processes, tasks, and their wiring for automated data integration.",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("json", false, "Log in JSON format")
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(userCmd())
	return rootCmd
}

// setup loads the configuration and builds the logger the subcommands
// share. Command line flags win over config values.
func setup(cmd *cobra.Command) (*config.Config, logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	level := logger.Level(cfg.Log.Level)
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = logger.DebugLevel
	}
	jsonFormat := cfg.Log.JSON
	if flagJSON, _ := cmd.Flags().GetBool("json"); flagJSON {
		jsonFormat = true
	}
	logCfg := logger.DefaultConfig()
	logCfg.Level = level
	logCfg.JSON = jsonFormat
	log := logger.NewLogger(logCfg)
	return cfg, log, nil
}
