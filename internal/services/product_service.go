// Product business logic. The service validates identifiers, delegates
// persistence to the repo layer, and returns typed failures for the boundary
// classifier; it never builds HTTP responses itself.
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learners-arc/blackbox-ecom-backend/internal/apperr"
	"github.com/learners-arc/blackbox-ecom-backend/internal/domain"
)

// ProductRepo abstracts product persistence so the service can be tested
// against fakes. The concrete implementation lives in internal/repo and is
// adapted in the router.
type ProductRepo interface {
	CreateProduct(ctx context.Context, db *gorm.DB, p *domain.Product) (*domain.Product, error)
	GetProduct(ctx context.Context, db *gorm.DB, id string) (*domain.Product, error)
	CountProducts(ctx context.Context, db *gorm.DB, category string) (int64, error)
	ListProductsPage(ctx context.Context, db *gorm.DB, category string, offset, limit int) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, db *gorm.DB, id string, updates map[string]any) error
	DeleteProduct(ctx context.Context, db *gorm.DB, id string) error
}

// ProductService implements catalog operations over a ProductRepo.
type ProductService struct {
	DB   *gorm.DB
	Repo ProductRepo
}

// NewProductService constructs a ProductService bound to db and repo.
func NewProductService(db *gorm.DB, repo ProductRepo) *ProductService {
	return &ProductService{DB: db, Repo: repo}
}

// checkID validates that id is a UUID, returning the invalid-identifier
// shape otherwise.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return &apperr.InvalidIDError{Field: "id", Value: id, Err: err}
	}
	return nil
}

// Create persists a new product.
func (s *ProductService) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	return s.Repo.CreateProduct(ctx, s.DB, p)
}

// Get returns a product by ID.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	p, err := s.Repo.GetProduct(ctx, s.DB, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// ListPage returns a page of products and the total count, optionally
// filtered by category.
func (s *ProductService) ListPage(ctx context.Context, category string, page, pageSize int) ([]domain.Product, int64, error) {
	total, err := s.Repo.CountProducts(ctx, s.DB, category)
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}
	offset := (page - 1) * pageSize
	items, err := s.Repo.ListProductsPage(ctx, s.DB, category, offset, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return items, total, nil
}

// Update applies column updates to a product by ID.
func (s *ProductService) Update(ctx context.Context, id string, updates map[string]any) error {
	if err := checkID(id); err != nil {
		return err
	}
	if len(updates) == 0 {
		return nil
	}
	if err := s.Repo.UpdateProduct(ctx, s.DB, id, updates); err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete removes a product by ID.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := s.Repo.DeleteProduct(ctx, s.DB, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
