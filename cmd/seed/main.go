package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/Amman-Akbar/GlobalApply/database"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Initialize database connection using GORM
	store, err := database.StartGORM()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	gormDB := store.GetDB().(*gorm.DB)

	if err := store.Init(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	separator := strings.Repeat("=", 60)
	fmt.Println(separator)
	fmt.Println("GlobalApply - Database Seeding")
	fmt.Println(separator)
	fmt.Println()

	if err := database.Seed(gormDB); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	fmt.Println()
	fmt.Println(separator)
	fmt.Println("Seeding completed successfully!")
	fmt.Println(separator)
	fmt.Println()
	fmt.Println("Admin user defaults to admin@globalapply.local / changeme-admin unless")
	fmt.Println("ADMIN_EMAIL and ADMIN_PASSWORD are set. With GO_ENV=production the default")
	fmt.Println("password is refused and the admin seed is skipped until ADMIN_PASSWORD is set.")
	fmt.Println()
}
