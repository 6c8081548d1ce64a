package main

import (
	"github.com/spf13/cobra"

	"github.com/fekuna/omnipos-inventory/internal/app"
	"github.com/fekuna/omnipos-inventory/pkg/database"
	"github.com/fekuna/omnipos-inventory/pkg/output"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := app.OpenDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			return err
		}
		output.Success("Schema is up to date (%s)", cfg.Database.Driver)
		return nil
	},
}
