// User repository functions. Same conventions as product_repo.go: thin,
// context-aware CRUD over a *gorm.DB handle.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learners-arc/blackbox-ecom-backend/internal/apperr"
	"github.com/learners-arc/blackbox-ecom-backend/internal/domain"
)

// CreateUser inserts a new User row. An email collision returns the typed
// duplicate-key error keyed on the email column.
func CreateUser(ctx context.Context, db *gorm.DB, u *domain.User) (*domain.User, error) {
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	if u.Role == "" {
		u.Role = "customer"
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, apperr.DuplicateFromConstraint(err, "email", u.Email)
	}
	return u, nil
}

// GetUserByEmail fetches a user by email, or ErrNotFound if missing.
func GetUserByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUser fetches a user by ID, or ErrNotFound if missing.
func GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
