package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/terapiemd/booking-service/internal/config"
	"github.com/terapiemd/booking-service/internal/infra/storage/migrations"
)

func newMigrateCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}
			defer log.Close()

			if cfg.Storage.Driver == config.StorageDriverMemory {
				return errors.New("migrate: storage.driver is memory, nothing to migrate")
			}

			a, err := newApp(cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := migrations.Up(cmd.Context(), a.executor, log); err != nil {
				return err
			}
			log.Info("Migrations applied")
			return nil
		},
	}
}
