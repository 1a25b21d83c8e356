package security

import (
	"testing"
	"time"

	"github.com/savora/savora-cloud-go/internal/config"
	"github.com/savora/savora-cloud-go/internal/domain/entity"
)

func newTestProvider() *JWTProvider {
	return NewJWTProvider(&config.JWTConfig{
		Secret:               "test-secret-key-for-jwt-signing",
		AccessTokenDuration:  time.Hour,
		RefreshTokenDuration: 30 * 24 * time.Hour,
		Issuer:               "savora-test",
	})
}

func newTestUser() *entity.User {
	return &entity.User{
		ID:    42,
		Email: "jamie@example.com",
		Role:  entity.RoleUser,
	}
}

func TestJWTProvider_GenerateAndValidateAccessToken(t *testing.T) {
	provider := newTestProvider()
	user := newTestUser()

	token, err := provider.GenerateAccessToken(user, "sess-1")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	if token == "" {
		t.Fatal("GenerateAccessToken() returned empty token")
	}

	claims, err := provider.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error = %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("UserID = %v, want %v", claims.UserID, user.ID)
	}
	if claims.Email != user.Email {
		t.Errorf("Email = %v, want %v", claims.Email, user.Email)
	}
	if claims.SessionID != "sess-1" {
		t.Errorf("SessionID = %v, want sess-1", claims.SessionID)
	}
	if claims.Role != entity.RoleUser {
		t.Errorf("Role = %v, want %v", claims.Role, entity.RoleUser)
	}
}

func TestJWTProvider_ValidateAccessToken_Invalid(t *testing.T) {
	provider := newTestProvider()

	if _, err := provider.ValidateAccessToken("not-a-token"); err != ErrInvalidToken {
		t.Errorf("ValidateAccessToken() error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestJWTProvider_ValidateAccessToken_WrongSecret(t *testing.T) {
	provider := newTestProvider()
	other := NewJWTProvider(&config.JWTConfig{
		Secret:              "a-completely-different-secret",
		AccessTokenDuration: time.Hour,
		Issuer:              "savora-test",
	})

	token, err := provider.GenerateAccessToken(newTestUser(), "sess-1")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := other.ValidateAccessToken(token); err != ErrInvalidToken {
		t.Errorf("ValidateAccessToken() error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestJWTProvider_ValidateAccessToken_Expired(t *testing.T) {
	provider := NewJWTProvider(&config.JWTConfig{
		Secret:              "test-secret-key-for-jwt-signing",
		AccessTokenDuration: -time.Minute,
		Issuer:              "savora-test",
	})

	token, err := provider.GenerateAccessToken(newTestUser(), "sess-1")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := provider.ValidateAccessToken(token); err != ErrExpiredToken {
		t.Errorf("ValidateAccessToken() error = %v, want %v", err, ErrExpiredToken)
	}
}

func TestJWTProvider_GenerateRefreshToken(t *testing.T) {
	provider := newTestProvider()
	user := newTestUser()

	token1, expiresAt, err := provider.GenerateRefreshToken(user)
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}
	if !expiresAt.After(time.Now()) {
		t.Error("refresh token expiry is not in the future")
	}

	token2, _, err := provider.GenerateRefreshToken(user)
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}
	if token1 == token2 {
		t.Error("consecutive refresh tokens should differ")
	}

	claims, err := provider.ValidateRefreshToken(token1)
	if err != nil {
		t.Fatalf("ValidateRefreshToken() error = %v", err)
	}
	if claims.Subject != user.Email {
		t.Errorf("Subject = %v, want %v", claims.Subject, user.Email)
	}
}
