package main

import (
	"github.com/spf13/cobra"

	"loadboard/config"
	"loadboard/pkg/logger"
	"loadboard/pkg/seed"
	"loadboard/storage/postgres"
)

func newResetDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-db",
		Short: "Truncate the Postgres board and load the demo loads and drivers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := logger.New(cfg.ServiceName, cfg.LoggerLevel)

			pg, err := postgres.New(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer pg.Close()

			if err := pg.Reset(cmd.Context(), seed.Loads(), seed.Drivers()); err != nil {
				log.Error("Failed to reset database", logger.Error(err))
				return err
			}
			log.Info("Successfully reset loads, interests and drivers.")
			return nil
		},
	}
}
