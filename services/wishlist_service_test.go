package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Amman-Akbar/GlobalApply/model"
	"gorm.io/gorm"
)

func TestWishlistUniquenessIntegration(t *testing.T) {
	db := setupIntegrationDB(t)
	svc := NewWishlistService(db)
	ctx := context.Background()

	student := createTestUser(t, db, model.RoleStudent)
	institute := createTestInstitute(t, db)
	program := createTestProgram(t, db, institute.ID)

	entry, err := svc.Add(ctx, student.ID, institute.ID, program.ID)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	t.Cleanup(func() {
		db.Where("user_id = ?", student.ID).Delete(&model.WishlistEntry{})
	})

	if _, err := svc.Add(ctx, student.ID, institute.ID, program.ID); !errors.Is(err, ErrDuplicateWishlistEntry) {
		t.Errorf("duplicate add: got %v, want ErrDuplicateWishlistEntry", err)
	}

	// The unique index backstops concurrent adds that slip past the lookup.
	dup := model.WishlistEntry{
		UserID:      student.ID,
		InstituteID: institute.ID,
		ProgramID:   program.ID,
	}
	if err := db.Create(&dup).Error; !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("direct duplicate insert: got %v, want gorm.ErrDuplicatedKey", err)
	}

	if err := svc.Remove(ctx, student.ID, institute.ID, program.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := svc.Remove(ctx, student.ID, institute.ID, program.ID); !errors.Is(err, ErrWishlistEntryNotFound) {
		t.Errorf("second remove: got %v, want ErrWishlistEntryNotFound", err)
	}

	saved, err := svc.Check(ctx, student.ID, institute.ID, program.ID)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if saved {
		t.Error("Check reported a removed entry as saved")
	}

	if entry, err = svc.Add(ctx, student.ID, institute.ID, program.ID); err != nil {
		t.Fatalf("Re-add after remove failed: %v", err)
	}
	if entry.ID == 0 {
		t.Error("re-added entry has no id")
	}
}

func TestWishlistDanglingReferencesIntegration(t *testing.T) {
	db := setupIntegrationDB(t)
	svc := NewWishlistService(db)
	ctx := context.Background()

	student := createTestUser(t, db, model.RoleStudent)
	institute := createTestInstitute(t, db)
	program := createTestProgram(t, db, institute.ID)

	if _, err := svc.Add(ctx, student.ID, institute.ID, program.ID); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	t.Cleanup(func() {
		db.Where("user_id = ?", student.ID).Delete(&model.WishlistEntry{})
	})

	if err := db.Unscoped().Delete(&model.Program{}, program.ID).Error; err != nil {
		t.Fatalf("Failed to delete program: %v", err)
	}

	items, err := svc.List(ctx, student.ID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("listed entries: got %d, want 1", len(items))
	}
	if items[0].Program != nil {
		t.Error("expected null program details for a dangling reference")
	}
	if items[0].Institute == nil {
		t.Error("expected institute details to still resolve")
	}
}
