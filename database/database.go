package database

import (
	"fmt"

	"catalog-app/internal/domain/catalog"
	"catalog-app/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open connects with the settings every component relies on: singular table
// names matching the ledger schema, and translated driver errors so unique
// violations surface as gorm.ErrDuplicatedKey.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if driver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// one writer; also keeps ":memory:" databases on a single connection
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}

	return db, nil
}

// Migrate creates or updates every table of the catalog.
func Migrate(db *gorm.DB) error {
	models := append([]any{&users.User{}}, catalog.Models()...)
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
