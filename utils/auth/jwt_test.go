package auth

import (
	"testing"
	"time"
)

func testManager() *JWTManager {
	return NewJWTManager(JWTConfig{
		Secret: "test-secret",
		Issuer: "lernovate-admin-api",
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	manager := testManager()

	token, jti, err := manager.GenerateAccessToken("42", "admin@lernovate.com", "admin")
	if err != nil {
		t.Fatal(err)
	}
	if jti == "" {
		t.Error("expected a JTI")
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != "42" || claims.Email != "admin@lernovate.com" || claims.Role != "admin" {
		t.Errorf("claims mismatch: %+v", claims)
	}
	if claims.TokenType != TokenTypeAccess {
		t.Errorf("expected access token type, got %q", claims.TokenType)
	}
	if claims.ID != jti {
		t.Error("JTI mismatch")
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, _, err := testManager().GenerateAccessToken("42", "a@b.com", "student")
	if err != nil {
		t.Fatal(err)
	}

	other := NewJWTManager(JWTConfig{Secret: "different-secret"})
	if _, err := other.ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail with the wrong secret")
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	manager := NewJWTManager(JWTConfig{
		Secret: "test-secret",
		Expiry: -time.Minute,
	})

	token, _, err := manager.GenerateAccessToken("42", "a@b.com", "student")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := manager.ValidateToken(token); err != ErrExpiredToken {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestRefreshAccessToken(t *testing.T) {
	manager := testManager()

	refresh, _, err := manager.GenerateRefreshToken("42", "a@b.com", "faculty")
	if err != nil {
		t.Fatal(err)
	}

	access, _, err := manager.RefreshAccessToken(refresh)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := manager.ValidateToken(access)
	if err != nil {
		t.Fatal(err)
	}
	if claims.TokenType != TokenTypeAccess {
		t.Errorf("expected an access token, got %q", claims.TokenType)
	}
	if claims.UserID != "42" || claims.Role != "faculty" {
		t.Errorf("claims mismatch: %+v", claims)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	manager := testManager()

	access, _, err := manager.GenerateAccessToken("42", "a@b.com", "student")
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := manager.RefreshAccessToken(access); err == nil {
		t.Fatal("an access token must not be usable as a refresh token")
	}
}
