package db

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed migrations
var migrations embed.FS

// gooseLogger routes goose output through the global zap logger
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...any) {
	zap.S().Infof(strings.TrimSuffix(format, "\n"), v...)
}

func (gooseLogger) Fatalf(format string, v ...any) {
	zap.S().Fatalf(strings.TrimSuffix(format, "\n"), v...)
}

// prepare points goose at the migrations for the dialect of db and returns
// the directory holding them
func prepare(db *gorm.DB) (string, error) {
	var dialect, dir string

	switch db.Dialector.Name() {
	case "postgres":
		dialect, dir = "postgres", "migrations/postgres"
	case "sqlite":
		dialect, dir = "sqlite3", "migrations/sqlite"
	default:
		return "", fmt.Errorf("no migrations for dialect %q", db.Dialector.Name())
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{})

	if err := goose.SetDialect(dialect); err != nil {
		return "", fmt.Errorf("failed to set migration dialect, %w", err)
	}

	return dir, nil
}

// Migrate applies every pending migration
func Migrate(ctx context.Context, db *gorm.DB) error {
	dir, err := prepare(db)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle, %w", err)
	}

	if err := goose.UpContext(ctx, sqlDB, dir); err != nil {
		return fmt.Errorf("failed to apply migrations, %w", err)
	}

	return nil
}

// Rollback reverts the most recent migration
func Rollback(ctx context.Context, db *gorm.DB) error {
	dir, err := prepare(db)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle, %w", err)
	}

	if err := goose.DownContext(ctx, sqlDB, dir); err != nil {
		return fmt.Errorf("failed to roll back migration, %w", err)
	}

	return nil
}

// Status logs the state of every known migration
func Status(ctx context.Context, db *gorm.DB) error {
	dir, err := prepare(db)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle, %w", err)
	}

	return goose.StatusContext(ctx, sqlDB, dir)
}

// Version returns the version of the newest applied migration
func Version(ctx context.Context, db *gorm.DB) (int64, error) {
	if _, err := prepare(db); err != nil {
		return 0, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get database handle, %w", err)
	}

	return goose.GetDBVersionContext(ctx, sqlDB)
}
