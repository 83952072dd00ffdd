// Package cmd contains the command line interface of the server
package cmd

import (
	"bitwise74/notes-api/config"
	"bitwise74/notes-api/db"
	"bitwise74/notes-api/pkg/logging"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "notes-api",
	Short: "Personal notes service",
	Long: `A REST service for personal notes. Users register, verify their email
and then manage notes and the categories they are filed under.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to the config file (default ./config.toml)")
	pf.String("log-level", "", "Log level (debug, info, warn, error, fatal)")
	pf.String("db-driver", "", "Database driver (postgres, sqlite)")
	pf.String("dsn", "", "Database connection string")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)
}

// bootstrap loads the config, installs the logger and connects to the
// database. Every command that touches the database starts here.
func bootstrap(cmd *cobra.Command) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config, %w", err)
	}

	if _, err := logging.Setup(cfg.App.LogLevel); err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger, %w", err)
	}

	conn, err := db.New(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database, %w", err)
	}

	return cfg, conn, nil
}
