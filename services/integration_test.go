package services

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/Amman-Akbar/GlobalApply/database"
	"github.com/Amman-Akbar/GlobalApply/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// setupIntegrationDB connects to the configured database and runs migrations.
func setupIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run.")
	}

	store, err := database.StartGORM()
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Logf("Failed to close database: %v", err)
		}
	})

	if err := store.Init(); err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	return store.GetDB().(*gorm.DB)
}

func createTestUser(t *testing.T, db *gorm.DB, role string) *model.User {
	t.Helper()

	stamp := time.Now().UnixNano()
	user := model.User{
		Username:     fmt.Sprintf("it-user-%d", stamp),
		Email:        fmt.Sprintf("it-user-%d@globalapply.local", stamp),
		PasswordHash: "not-a-real-hash",
		Role:         role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	t.Cleanup(func() { db.Unscoped().Delete(&user) })

	return &user
}

func createTestInstitute(t *testing.T, db *gorm.DB) *model.Institute {
	t.Helper()

	owner := createTestUser(t, db, model.RoleInstitute)
	institute := model.Institute{
		UserID: owner.ID,
		Name:   fmt.Sprintf("it-institute-%d", time.Now().UnixNano()),
		Status: model.InstituteStatusApproved,
	}
	if err := db.Create(&institute).Error; err != nil {
		t.Fatalf("Failed to create test institute: %v", err)
	}
	t.Cleanup(func() { db.Unscoped().Delete(&institute) })

	return &institute
}

func createTestPlan(t *testing.T, db *gorm.DB) *model.SubscriptionPlan {
	t.Helper()

	plan := model.SubscriptionPlan{
		PlanName:     fmt.Sprintf("it-plan-%d", time.Now().UnixNano()),
		Price:        99,
		Features:     datatypes.JSON(`["test"]`),
		Availability: model.PlanAvailabilityActive,
	}
	if err := db.Create(&plan).Error; err != nil {
		t.Fatalf("Failed to create test plan: %v", err)
	}
	t.Cleanup(func() { db.Unscoped().Delete(&plan) })

	return &plan
}

func createTestProgram(t *testing.T, db *gorm.DB, instituteID uint) *model.Program {
	t.Helper()

	department := model.Department{
		InstituteID: instituteID,
		Name:        fmt.Sprintf("it-department-%d", time.Now().UnixNano()),
	}
	if err := db.Create(&department).Error; err != nil {
		t.Fatalf("Failed to create test department: %v", err)
	}
	t.Cleanup(func() { db.Unscoped().Delete(&department) })

	program := model.Program{
		DepartmentID: department.ID,
		Name:         fmt.Sprintf("it-program-%d", time.Now().UnixNano()),
		SemesterFee:  1500,
		Duration:     "4 years",
		Level:        "undergraduate",
		IsActive:     true,
	}
	if err := db.Create(&program).Error; err != nil {
		t.Fatalf("Failed to create test program: %v", err)
	}
	t.Cleanup(func() { db.Unscoped().Delete(&program) })

	return &program
}

func planCounter(t *testing.T, db *gorm.DB, planID uint) int64 {
	t.Helper()

	var plan model.SubscriptionPlan
	if err := db.First(&plan, planID).Error; err != nil {
		t.Fatalf("Failed to reload plan %d: %v", planID, err)
	}
	return plan.Institutes
}
