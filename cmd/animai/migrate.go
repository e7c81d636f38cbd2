package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/suPer8Hu/animai/internal/config"
	"github.com/suPer8Hu/animai/internal/db"
)

func NewMigrateCommand(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Creates or updates the database schema.",
		RunE: func(cmd *cobra.Command, args []string) error {
			gdb, err := db.Connect(cfg.DBDriver, cfg.DBDSN)
			if err != nil {
				return fmt.Errorf("could not connect to db: %w", err)
			}
			if err := db.Migrate(gdb); err != nil {
				return fmt.Errorf("could not migrate db: %w", err)
			}
			log.Info("schema up to date")
			return nil
		},
	}
}
