package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielp299/ogamecloneapp-sub000/internal/infrastructure/config"
	"github.com/danielp299/ogamecloneapp-sub000/internal/infrastructure/database"
)

// NewMigrateCommand creates the schema migration command
func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.MustLoadConfig(configPath)

			db, err := database.NewConnection(&cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close(db)

			if err := database.AutoMigrate(db); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}

			fmt.Println("Database schema up to date")
			return nil
		},
	}
}
