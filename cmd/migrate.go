package cmd

import (
	"bitwise74/notes-api/db"
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: withDB(func(ctx context.Context, conn *gorm.DB) error {
		return db.Migrate(ctx, conn)
	}),
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE: withDB(func(ctx context.Context, conn *gorm.DB) error {
		return db.Rollback(ctx, conn)
	}),
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the state of every migration",
	RunE: withDB(func(ctx context.Context, conn *gorm.DB) error {
		if err := db.Status(ctx, conn); err != nil {
			return err
		}

		v, err := db.Version(ctx, conn)
		if err != nil {
			return err
		}

		fmt.Printf("Current schema version: %d\n", v)
		return nil
	}),
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
}

func withDB(fn func(ctx context.Context, conn *gorm.DB) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		_, conn, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer db.Close(conn)
		defer zap.L().Sync()

		return fn(cmd.Context(), conn)
	}
}
