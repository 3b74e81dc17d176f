package main

import (
	"log"
	"os"

	"apto-gateway-be/internal/model"
	"apto-gateway-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions (Things GORM AutoMigrate doesn't do)
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models (The Core Task)
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.User{},
		&model.PasswordResetToken{},
		&model.OtpToken{},
		&model.UserProvider{},
		&model.UserRefreshToken{},
		&model.Feature{},
		&model.Package{},
		&model.PackageFeature{},
		&model.PackageToken{},
		&model.Payment{},
		&model.NotificationType{},
		&model.Notification{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: Constraints GORM tags cannot express.
	log.Println("Step 3: Creating partial indexes...")

	postMigrationSQL := []string{
		// One active token per user. Verification deactivates old tokens
		// before inserting the new one inside a transaction; this index
		// backstops that invariant at the database level.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_package_tokens_single_active
		 ON package_tokens (user_id) WHERE is_active = true;`,

		`CREATE INDEX IF NOT EXISTS idx_payments_status_created
		 ON payments (status, created_at DESC);`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("Success: Database migration completed successfully via GORM.")
}
