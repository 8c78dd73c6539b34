package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	dsn := os.Getenv("DB_DSN")
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := Migrations(DB); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Seed form templates, default users and sample data
	if err := RunAllSeeding(); err != nil {
		log.Fatal("Failed to seed database:", err)
	}
}

// StrictSubmit reports whether submitting a report with schema
// violations is rejected. Set PM_STRICT_SUBMIT=false to record the
// stats anyway and let the supervisor catch problems at review.
func StrictSubmit() bool {
	return os.Getenv("PM_STRICT_SUBMIT") != "false"
}
