package main

import (
	"log"
	"os"

	"apto-gateway-be/internal/model"
	"apto-gateway-be/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding Feature Catalog...")

	features := []model.Feature{
		{Code: "invoice-generator", Name: "Invoice Generator", Description: "Generate branded invoices from order data", Status: "free", Category: "generator", IsActive: true, SortOrder: 1},
		{Code: "qr-generator", Name: "QR Code Generator", Description: "Create QR codes for links, payments, and menus", Status: "free", Category: "generator", IsActive: true, SortOrder: 2},
		{Code: "bulk-converter", Name: "Bulk File Converter", Description: "Convert documents and images in batches", Status: "premium", Category: "converter", IsActive: true, SortOrder: 3},
		{Code: "margin-calculator", Name: "Margin Calculator", Description: "Calculate selling prices, margins, and markups", Status: "free", Category: "calculator", IsActive: true, SortOrder: 4},
		{Code: "stock-tracker", Name: "Stock Tracker", Description: "Track inventory levels and low-stock alerts", Status: "premium", Category: "tracker", IsActive: true, SortOrder: 5},
		{Code: "report-builder", Name: "Sales Report Builder", Description: "Build daily and monthly sales reports", Status: "premium", Category: "generator", IsActive: true, SortOrder: 6},
		{Code: "label-printer", Name: "Shipping Label Printer", Description: "Print shipping labels for major couriers", Status: "premium", Category: "generator", IsActive: true, SortOrder: 7},
	}

	for _, f := range features {
		var existing model.Feature
		if err := db.Where("code = ?", f.Code).First(&existing).Error; err == nil {
			log.Printf("Feature '%s' already exists, skipping...", f.Code)
			continue
		}

		if err := db.Create(&f).Error; err != nil {
			log.Printf("Error creating feature '%s': %v", f.Code, err)
		} else {
			log.Printf("Created feature: %s (%s)", f.Name, f.Code)
		}
	}

	log.Println("Seeding Packages...")

	packages := []model.Package{
		{Name: "Basic", Slug: "basic", Tagline: "For getting started", Description: "Access to essential premium tools for one month", Price: 49000, DurationDays: 30, SortOrder: 1, IsActive: true},
		{Name: "Premium", Slug: "premium", Tagline: "Best value for growing businesses", Description: "Full catalog access for one month", Price: 99000, DurationDays: 30, IsMostPopular: true, SortOrder: 2, IsActive: true},
		{Name: "Premium Annual", Slug: "premium-annual", Tagline: "Two months free", Description: "Full catalog access for a full year", Price: 990000, DurationDays: 365, SortOrder: 3, IsActive: true},
	}

	for _, p := range packages {
		var existing model.Package
		if err := db.Where("slug = ?", p.Slug).First(&existing).Error; err == nil {
			log.Printf("Package '%s' already exists, skipping...", p.Slug)
			continue
		}

		if err := db.Create(&p).Error; err != nil {
			log.Printf("Error creating package '%s': %v", p.Slug, err)
		} else {
			log.Printf("Created package: %s (%s)", p.Name, p.Slug)
		}
	}

	// Premium packages cover every premium feature; Basic only a subset.
	assignFeatures(db, "basic", []string{"bulk-converter", "report-builder"})
	assignFeatures(db, "premium", []string{"bulk-converter", "stock-tracker", "report-builder", "label-printer"})
	assignFeatures(db, "premium-annual", []string{"bulk-converter", "stock-tracker", "report-builder", "label-printer"})

	seedAdmin(db)

	log.Println("Seeding Notification Types...")
	SeedNotificationTypes(db)
}

func assignFeatures(db *gorm.DB, slug string, codes []string) {
	var pkg model.Package
	if err := db.Where("slug = ?", slug).First(&pkg).Error; err != nil {
		log.Printf("Package '%s' not found, skipping feature assignment", slug)
		return
	}

	for _, code := range codes {
		var feature model.Feature
		if err := db.Where("code = ?", code).First(&feature).Error; err != nil {
			log.Printf("Feature '%s' not found, skipping", code)
			continue
		}

		join := model.PackageFeature{PackageId: pkg.Id, FeatureId: feature.Id}
		var existing model.PackageFeature
		if err := db.Where("package_id = ? AND feature_id = ?", pkg.Id, feature.Id).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(&join).Error; err != nil {
			log.Printf("Error assigning '%s' to '%s': %v", code, slug, err)
		} else {
			log.Printf("Assigned feature '%s' to package '%s'", code, slug)
		}
	}
}

func seedAdmin(db *gorm.DB) {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("SEED_ADMIN_EMAIL/SEED_ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Printf("Admin '%s' already exists, skipping...", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing admin password: %v", err)
		return
	}
	hashStr := string(hash)

	admin := model.User{
		Email:         email,
		Phone:         os.Getenv("SEED_ADMIN_PHONE"),
		PasswordHash:  &hashStr,
		FullName:      "Administrator",
		Role:          "admin",
		Status:        "active",
		PhoneVerified: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Error creating admin user: %v", err)
	} else {
		log.Printf("Created admin user: %s", email)
	}
}
