package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vitalvas/navroute/config"
	"github.com/vitalvas/navroute/dashboard"
	"github.com/vitalvas/navroute/router"
)

// app carries what every subcommand needs once the configuration is
// loaded.
type app struct {
	configPath string
	envFile    string

	cfg    *config.Config
	logger *zap.Logger
	table  *router.Table
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "navroute",
		Short:         "Dashboard route table resolver and history-mode server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a YAML configuration file")
	cmd.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	cmd.AddCommand(
		newServeCmd(a),
		newResolveCmd(a),
		newRoutesCmd(a),
		newNavigateCmd(a),
	)

	return cmd
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath, a.envFile)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}

	table, err := dashboard.NewTable(cfg.RouterOptions()...)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.table = table
	return nil
}
