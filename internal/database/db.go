package database

import (
	"fmt"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // PostgreSQL dialect (lib/pq)
	_ "github.com/mattn/go-sqlite3"              // SQLite driver

	"pitplan/internal/models"
)

var db *gorm.DB

// InitDB opens the database connection. Driver is "sqlite3" or "postgres";
// dsn is a file path for sqlite3 and a connection string for postgres.
func InitDB(driver, dsn string) error {
	var err error
	db, err = gorm.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	db.DB().SetMaxIdleConns(10)
	db.DB().SetMaxOpenConns(100)
	db.DB().SetConnMaxLifetime(time.Hour)

	return nil
}

// Migrate creates the schema for cooks and temperature readings
func Migrate() error {
	if db == nil {
		return fmt.Errorf("database not initialized")
	}
	return db.AutoMigrate(
		&models.Cook{},
		&models.TemperatureReading{},
	).Error
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return db
}

// CloseDB closes the database connection
func CloseDB() error {
	if db != nil {
		return db.Close()
	}
	return nil
}
