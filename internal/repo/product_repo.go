// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Product
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a product is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - Uniqueness violations on the slug column are converted into the
//     typed duplicate-key shape the boundary classifier understands.
//   - On other DB errors the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learners-arc/blackbox-ecom-backend/internal/apperr"
	"github.com/learners-arc/blackbox-ecom-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateProduct inserts a new Product row. The ID is a randomly generated
// UUID and CreatedAt is set to UTC. A slug collision returns the typed
// duplicate-key error.
func CreateProduct(ctx context.Context, db *gorm.DB, p *domain.Product) (*domain.Product, error) {
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, apperr.DuplicateFromConstraint(err, "slug", p.Slug)
	}
	return p, nil
}

// GetProduct fetches a single product by ID, or ErrNotFound if missing.
func GetProduct(ctx context.Context, db *gorm.DB, id string) (*domain.Product, error) {
	var p domain.Product
	if err := db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// CountProducts returns the total number of products, optionally filtered
// by category.
func CountProducts(ctx context.Context, db *gorm.DB, category string) (int64, error) {
	q := db.WithContext(ctx).Model(&domain.Product{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// ListProductsPage returns a paginated slice of products ordered by creation
// time descending, optionally filtered by category.
func ListProductsPage(ctx context.Context, db *gorm.DB, category string, offset, limit int) ([]domain.Product, error) {
	q := db.WithContext(ctx).Model(&domain.Product{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var out []domain.Product
	err := q.Order("created_at desc").Offset(offset).Limit(limit).Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateProduct applies the given column updates to a product by ID.
// Returns ErrNotFound when no row matches, and the duplicate-key shape when
// a slug update collides.
func UpdateProduct(ctx context.Context, db *gorm.DB, id string, updates map[string]any) error {
	res := db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		slug, _ := updates["slug"].(string)
		return apperr.DuplicateFromConstraint(res.Error, "slug", slug)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProduct soft-deletes a product by ID. Returns ErrNotFound when no
// row matches.
func DeleteProduct(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Delete(&domain.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
