package auth

import (
	"errors"
	"testing"
	"time"
)

func testManager() *JWTManager {
	return NewJWTManager(JWTConfig{
		Secret:        "test-secret",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "globalapply-test",
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	manager := testManager()

	token, jti, err := manager.GenerateAccessToken(42, "ayesha", "student", 1)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if jti == "" {
		t.Fatal("expected non-empty JTI")
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Username != "ayesha" {
		t.Errorf("Username = %q, want ayesha", claims.Username)
	}
	if claims.Role != "student" {
		t.Errorf("Role = %q, want student", claims.Role)
	}
	if claims.TokenType != "access" {
		t.Errorf("TokenType = %q, want access", claims.TokenType)
	}
	if claims.TokenVersion != 1 {
		t.Errorf("TokenVersion = %d, want 1", claims.TokenVersion)
	}
	if claims.ID != jti {
		t.Errorf("claims JTI = %q, want %q", claims.ID, jti)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	manager := testManager()
	token, _, err := manager.GenerateAccessToken(1, "user", "student", 0)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	other := NewJWTManager(JWTConfig{Secret: "different-secret", Expiry: time.Hour, RefreshExpiry: time.Hour, Issuer: "x"})
	if _, err := other.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	manager := NewJWTManager(JWTConfig{
		Secret:        "test-secret",
		Expiry:        -time.Minute,
		RefreshExpiry: -time.Minute,
		Issuer:        "globalapply-test",
	})

	token, _, err := manager.GenerateAccessToken(1, "user", "student", 0)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := manager.ValidateToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestRefreshAccessToken(t *testing.T) {
	manager := testManager()

	refreshToken, _, err := manager.GenerateRefreshToken(7, "inst", "institute", 2)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	accessToken, _, err := manager.RefreshAccessToken(refreshToken, 2)
	if err != nil {
		t.Fatalf("RefreshAccessToken: %v", err)
	}

	claims, err := manager.ValidateToken(accessToken)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.TokenType != "access" {
		t.Errorf("TokenType = %q, want access", claims.TokenType)
	}
	if claims.UserID != 7 {
		t.Errorf("UserID = %d, want 7", claims.UserID)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	manager := testManager()

	accessToken, _, err := manager.GenerateAccessToken(7, "inst", "institute", 0)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, _, err := manager.RefreshAccessToken(accessToken, 0); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestGetTokenExpiry(t *testing.T) {
	manager := testManager()

	token, _, err := manager.GenerateAccessToken(1, "user", "student", 0)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	expiry, err := manager.GetTokenExpiry(token)
	if err != nil {
		t.Fatalf("GetTokenExpiry: %v", err)
	}

	until := time.Until(expiry)
	if until <= 0 || until > time.Hour {
		t.Errorf("expiry %v not within the configured window", until)
	}
}
