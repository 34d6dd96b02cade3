package auth_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/Amman-Akbar/GlobalApply/database"
	"github.com/Amman-Akbar/GlobalApply/model"
	"github.com/Amman-Akbar/GlobalApply/utils/auth"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func setupBlacklistDB(t *testing.T) *gorm.DB {
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

func TestRevokeAllUserTokensIntegration(t *testing.T) {
	db := setupBlacklistDB(t)
	svc := auth.NewBlacklistService(db)
	ctx := context.Background()

	stamp := time.Now().UnixNano()
	user := model.User{
		Username:     fmt.Sprintf("it-revoke-%d", stamp),
		Email:        fmt.Sprintf("it-revoke-%d@globalapply.local", stamp),
		PasswordHash: "not-a-real-hash",
		Role:         model.RoleStudent,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	t.Cleanup(func() { db.Unscoped().Delete(&user) })

	before := user.TokenVersion

	if err := svc.RevokeAllUserTokens(ctx, user.ID); err != nil {
		t.Fatalf("RevokeAllUserTokens failed: %v", err)
	}

	var reloaded model.User
	if err := db.First(&reloaded, user.ID).Error; err != nil {
		t.Fatalf("Failed to reload user: %v", err)
	}
	if reloaded.TokenVersion != before+1 {
		t.Errorf("token version: got %d, want %d", reloaded.TokenVersion, before+1)
	}
}

func TestRevokeTokenIntegration(t *testing.T) {
	db := setupBlacklistDB(t)
	svc := auth.NewBlacklistService(db)
	ctx := context.Background()

	jti := uuid.New().String()

	revoked, err := svc.IsTokenRevoked(ctx, jti)
	if err != nil {
		t.Fatalf("IsTokenRevoked failed: %v", err)
	}
	if revoked {
		t.Fatal("fresh JTI reported as revoked")
	}

	if err := svc.RevokeToken(ctx, jti, 1, time.Now().Add(time.Hour), "logout"); err != nil {
		t.Fatalf("RevokeToken failed: %v", err)
	}
	t.Cleanup(func() {
		db.Unscoped().Where("token = ?", jti).Delete(&model.JWTTokenBlacklist{})
	})

	revoked, err = svc.IsTokenRevoked(ctx, jti)
	if err != nil {
		t.Fatalf("IsTokenRevoked failed: %v", err)
	}
	if !revoked {
		t.Error("revoked JTI not reported as revoked")
	}
}
