package database

import (
	"capacita/config"
	"capacita/models"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global application store instance (SQLite)
var Database DbInstance

// SourceDb is the external employee source store (PostgreSQL). Nil when
// POSTGRES_DSN is not configured; only the admin import uses it.
var SourceDb *gorm.DB

// ConnectDb establishes the application store connection and runs migrations
func ConnectDb() {
	db, err := gorm.Open(sqlite.Open(config.AppConfig.SQLiteDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to SQLite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	runMigrations(db)

	Database = DbInstance{Db: db}
}

// ConnectSourceDb connects to the external employee store when configured
func ConnectSourceDb() {
	if config.AppConfig.PostgresDSN == "" {
		log.Println("POSTGRES_DSN not set. Skipping source store initialization.")
		return
	}

	db, err := gorm.Open(postgres.Open(config.AppConfig.PostgresDSN), &gorm.Config{})
	if err != nil {
		// The source store is optional; the app runs without imports.
		log.Printf("Failed to connect to source PostgreSQL: %v", err)
		return
	}

	SourceDb = db
	log.Println("Source PostgreSQL connection initialized.")
}

// runMigrations performs database migrations
func runMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Assignment{},
		&models.Enrollment{},
		&models.Certificate{},
		&models.RefreshToken{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully.")
}
