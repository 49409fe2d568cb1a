package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/learners-arc/blackbox-ecom-backend/internal/apperr"
	"github.com/learners-arc/blackbox-ecom-backend/internal/auth"
	"github.com/learners-arc/blackbox-ecom-backend/internal/config"
	"github.com/learners-arc/blackbox-ecom-backend/internal/repo"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db, err := repo.Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return &AuthService{
		DB:  db,
		JWT: config.JWTConfig{Secret: "test-secret", TTL: time.Hour},
	}
}

func TestAuth_RegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "Ada", "ada@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.PasswordHash == "correct-horse" || u.PasswordHash == "" {
		t.Fatalf("password stored unhashed")
	}
	if u.Role != "customer" {
		t.Fatalf("role=%q", u.Role)
	}

	tok, logged, err := svc.Login(ctx, "ada@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.ID != u.ID {
		t.Fatalf("user mismatch")
	}

	claims, err := auth.Parse("test-secret", tok)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != u.ID {
		t.Fatalf("claims=%+v", claims)
	}
}

func TestAuth_Register_DuplicateEmail(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Ada", "dup@example.com", "correct-horse"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := svc.Register(ctx, "Eve", "dup@example.com", "other-password")

	var dup *apperr.DuplicateKeyError
	if !errors.As(err, &dup) {
		t.Fatalf("want DuplicateKeyError, got %T: %v", err, err)
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("should match gorm.ErrDuplicatedKey")
	}
}

func TestAuth_Login_InvalidCredentials(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Ada", "ada@example.com", "correct-horse"); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Unknown email and wrong password collapse to the same sentinel.
	if _, _, err := svc.Login(ctx, "ghost@example.com", "whatever-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: %v", err)
	}
	if _, _, err := svc.Login(ctx, "ada@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", err)
	}
}

func TestAuth_Me(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "Ada", "ada@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	got, err := svc.Me(ctx, u.ID)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if got.Email != "ada@example.com" {
		t.Fatalf("got %+v", got)
	}

	if _, err := svc.Me(ctx, "no-such-id"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}
}
