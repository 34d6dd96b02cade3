package database

import (
	"encoding/json"
	"log"
	"os"

	"github.com/Amman-Akbar/GlobalApply/model"
	"github.com/Amman-Akbar/GlobalApply/utils/auth"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Seed creates the bootstrap admin account and the default subscription
// plans when they are missing. Safe to run on every startup.
func Seed(db *gorm.DB) error {
	if err := seedAdminUser(db); err != nil {
		return err
	}
	return seedSubscriptionPlans(db)
}

// adminSeedPassword returns the bootstrap admin password. The development
// fallback is well known, so production requires ADMIN_PASSWORD to be set;
// without it the admin seed is skipped.
func adminSeedPassword() (string, bool) {
	if password := os.Getenv("ADMIN_PASSWORD"); password != "" {
		return password, true
	}
	if os.Getenv("GO_ENV") == "production" {
		return "", false
	}
	return "changeme-admin", true
}

func seedAdminUser(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@globalapply.local"
	}

	var count int64
	if err := db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password, ok := adminSeedPassword()
	if !ok {
		log.Println("Skipping admin seed: set ADMIN_PASSWORD to create the admin user in production")
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := model.User{
		Username:     "admin",
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Seeded admin user %s", email)
	return nil
}

func seedSubscriptionPlans(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.SubscriptionPlan{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	plans := []struct {
		name     string
		price    float64
		features []string
	}{
		{"Basic", 50, []string{"Institute profile", "Up to 10 program listings"}},
		{"Standard", 150, []string{"Institute profile", "Unlimited program listings", "Featured placement"}},
		{"Premium", 300, []string{"Institute profile", "Unlimited program listings", "Featured placement", "Priority support"}},
	}

	for _, p := range plans {
		features, err := json.Marshal(p.features)
		if err != nil {
			return err
		}

		plan := model.SubscriptionPlan{
			PlanName:     p.name,
			Price:        p.price,
			Features:     datatypes.JSON(features),
			Availability: model.PlanAvailabilityActive,
		}
		if err := db.Create(&plan).Error; err != nil {
			return err
		}
	}

	log.Printf("Seeded %d subscription plans", len(plans))
	return nil
}
