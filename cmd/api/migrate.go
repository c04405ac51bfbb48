package main

import (
	"github.com/Biriato/ProyectoWeb/internal/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if err := database.Migrate(cmd.Context(), a.db); err != nil {
			return err
		}
		a.logger.Info("migrations applied")
		return nil
	},
}
