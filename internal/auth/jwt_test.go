package auth

import (
	"testing"

	"github.com/google/uuid"
)

func TestJWTRoundTrip(t *testing.T) {
	t.Parallel()
	svc := NewJWTService("test-secret", 24)
	userID := uuid.New()

	token, err := svc.Generate(userID, "client@example.com", "client")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %s, want %s", claims.UserID, userID)
	}
	if claims.Email != "client@example.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "client@example.com")
	}
	if claims.Role != "client" {
		t.Errorf("Role = %q, want %q", claims.Role, "client")
	}
}

func TestJWTWrongSecret(t *testing.T) {
	t.Parallel()
	token, err := NewJWTService("secret-a", 24).Generate(uuid.New(), "a@b.c", "admin")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := NewJWTService("secret-b", 24).Validate(token); err == nil {
		t.Error("Validate with wrong secret succeeded, want error")
	}
}

func TestJWTGarbageToken(t *testing.T) {
	t.Parallel()
	svc := NewJWTService("test-secret", 24)
	for _, token := range []string{"", "not.a.jwt", "aaaa.bbbb.cccc"} {
		if _, err := svc.Validate(token); err == nil {
			t.Errorf("Validate(%q) succeeded, want error", token)
		}
	}
}
