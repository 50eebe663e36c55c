package db

import (
	"fmt"
	"log"

	"court_establishment_go/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the shared handle the request path operates on. It is set by
// Initialize; tests that build their own store assign it directly.
var DB *gorm.DB

// Initialize opens the SQLite store in WAL mode with foreign key enforcement
// on and returns the handle, also publishing it as DB. Query logging is
// verbose outside production.
func Initialize(dbPath, environment string) (*gorm.DB, error) {
	level := logger.Info
	if environment == "production" {
		level = logger.Warn
	}

	handle, err := gorm.Open(sqlite.Open(dbPath+"?_journal_mode=WAL&_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = handle
	log.Println("Database connection established (WAL mode enabled)")
	return handle, nil
}

// Migrate creates or updates the schema for every registry model. The model
// list lives here so each entrypoint migrates the same schema.
func Migrate(handle *gorm.DB) error {
	err := handle.AutoMigrate(
		&models.Division{},
		&models.Court{},
		&models.Post{},
		&models.PostAllocation{},
		&models.Employee{},
		&models.User{},
		&models.Session{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("Database migrations completed")
	return nil
}

// Close releases the underlying connection pool.
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}
