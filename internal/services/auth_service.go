// Account registration and login. Password hashes use bcrypt; login
// failures collapse to a single sentinel so the response never reveals
// whether the email exists.
package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/learners-arc/blackbox-ecom-backend/internal/auth"
	"github.com/learners-arc/blackbox-ecom-backend/internal/config"
	"github.com/learners-arc/blackbox-ecom-backend/internal/domain"
	"github.com/learners-arc/blackbox-ecom-backend/internal/repo"
)

// AuthService implements account operations.
type AuthService struct {
	DB  *gorm.DB
	JWT config.JWTConfig
}

// Register creates an account with a bcrypt-hashed password and returns the
// stored user. A duplicate email propagates as the duplicate-key shape.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	return repo.CreateUser(ctx, s.DB, u)
}

// Login verifies credentials and returns a signed bearer token with the
// authenticated user. Unknown email and wrong password both return
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	u, err := repo.GetUserByEmail(ctx, s.DB, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("lookup user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}
	tok, err := auth.Issue(s.JWT.Secret, s.JWT.TTL, u.ID, u.Role)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return tok, u, nil
}

// Me returns the account for userID.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	u, err := repo.GetUser(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return u, nil
}
