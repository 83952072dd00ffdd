// Package db opens the relational store and keeps its schema up to date
package db

import (
	"bitwise74/notes-api/config"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New opens a connection pool for the configured driver. The caller owns the
// returned handle and must close it with Close on shutdown.
func New(c *config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch c.Driver {
	case "postgres":
		dialector = postgres.Open(c.DSN)
	case "sqlite":
		dialector = sqlite.Open(sqliteDSN(c.DSN))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", c.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database, %w", c.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle, %w", err)
	}

	if c.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	}

	return db, nil
}

// Close releases the pool behind db
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// SQLite only enforces foreign keys (and with them the link cascades) when
// asked to on every connection
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk") {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}

	return dsn + sep + "_foreign_keys=on"
}
