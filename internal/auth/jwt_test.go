package auth

import (
	"testing"

	"github.com/engagehq/engage-backend/internal/config"
	"github.com/engagehq/engage-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTokenRoundTrip(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "test-secret", ExpiresIn: 3600}
	user := &models.User{
		ID:    primitive.NewObjectID(),
		Email: "ana@example.com",
		Role:  models.RoleAdmin,
	}

	token, err := GenerateToken(user, cfg)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken(token, cfg)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Email != user.Email {
		t.Errorf("email = %q, want %q", claims.Email, user.Email)
	}
	if claims.Role != models.RoleAdmin {
		t.Errorf("role = %q, want %q", claims.Role, models.RoleAdmin)
	}
	if claims.Subject != user.ID.Hex() {
		t.Errorf("subject = %q, want %q", claims.Subject, user.ID.Hex())
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "test-secret", ExpiresIn: 3600}
	user := &models.User{ID: primitive.NewObjectID(), Email: "ana@example.com", Role: models.RoleUser}

	token, err := GenerateToken(user, cfg)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	other := &config.JWTConfig{Secret: "different-secret", ExpiresIn: 3600}
	if _, err := ParseToken(token, other); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "test-secret", ExpiresIn: -60}
	user := &models.User{ID: primitive.NewObjectID(), Email: "ana@example.com", Role: models.RoleUser}

	token, err := GenerateToken(user, cfg)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ParseToken(token, cfg); err == nil {
		t.Error("expected error for expired token")
	}
}
