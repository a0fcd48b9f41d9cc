package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/terapiemd/booking-service/internal/config"
	"github.com/terapiemd/booking-service/pkg/logger"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "booking-service",
		Short:         "Availability, booking and notification core of the therapist marketplace",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.toml", "path to the TOML config file")

	var load loader = func() (*config.Config, *logger.Logger, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, nil, err
		}
		log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
		log.Info("Configuration loaded from %s", configPath)
		return cfg, log, nil
	}

	root.AddCommand(newServeCmd(load))
	root.AddCommand(newMigrateCmd(load))
	root.AddCommand(newWorkerCmd(load))
	root.AddCommand(newVersionCmd())

	return root
}

// loader reads the config and opens the logger shared by every subcommand
type loader func() (*config.Config, *logger.Logger, error)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
