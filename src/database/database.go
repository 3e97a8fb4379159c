package database

import (
	"fmt"

	"securities/src/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupDB opens the configured SQL database. Cascade deletes are enforced by
// the integrity layer inside transactions, the FK constraints created by the
// migrations are the storage-level backstop, so sqlite needs foreign_keys on.
func SetupDB(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.Databases.SQL.Driver {
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(cfg.Databases.SQL.Database), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, err
		}
		return db, nil
	case "postgres", "":
		db, err := gorm.Open(postgres.Open(cfg.Databases.SQL.DSN()), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w\nPlease ensure the database is running and accessible with the provided credentials", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", cfg.Databases.SQL.Driver)
	}
}
