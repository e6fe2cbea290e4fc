package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.GenerateToken(42, "cook@example.com", "admin")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != 42 || claims.Email != "cook@example.com" || claims.Role != "admin" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.Subject != "42" {
		t.Errorf("Subject = %q, want 42", claims.Subject)
	}
}

func TestValidateTokenRejects(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	token, err := m.GenerateToken(1, "a@b.c", "user")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	expired := NewTokenManager("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.GenerateToken(1, "a@b.c", "user")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	tests := []struct {
		name    string
		manager *TokenManager
		token   string
	}{
		{"wrong secret", NewTokenManager("other", time.Hour), token},
		{"garbage", m, "not-a-token"},
		{"empty", m, ""},
		{"expired", m, expiredToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.manager.ValidateToken(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("ValidateToken() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash must not equal the plain password")
	}
	if !CheckPassword(hash, "s3cret-pass") {
		t.Error("CheckPassword() should accept the right password")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("CheckPassword() should reject a wrong password")
	}
}

func TestActor(t *testing.T) {
	anon := ActorFrom(context.Background())
	if anon.Authenticated() {
		t.Error("empty context should yield an anonymous actor")
	}

	ctx := WithActor(context.Background(), Actor{UserID: 7, Role: "user"})
	a := ActorFrom(ctx)
	if a.UserID != 7 || a.IsAdmin() {
		t.Errorf("unexpected actor %+v", a)
	}

	tests := []struct {
		name  string
		actor Actor
		owner uint
		want  bool
	}{
		{"owner", Actor{UserID: 7}, 7, true},
		{"stranger", Actor{UserID: 8}, 7, false},
		{"admin", Actor{UserID: 8, Role: RoleAdmin}, 7, true},
		{"anonymous", Actor{}, 7, false},
	}
	for _, tt := range tests {
		if got := tt.actor.CanModify(tt.owner); got != tt.want {
			t.Errorf("%s: CanModify() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
