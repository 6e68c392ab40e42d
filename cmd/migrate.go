package cmd

import (
	"log"

	"github.com/Eursukkul/roomescape-service/config"
	"github.com/Eursukkul/roomescape-service/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			db, err := database.NewPostgresDB(cfg.DSN())
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}

			log.Println("[Migrate] schema is up to date")
			return nil
		},
	}
}
