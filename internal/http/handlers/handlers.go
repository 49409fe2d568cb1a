// Handler wiring. Handlers depend on abstract service interfaces to keep
// transport concerns separate from business logic; the router injects the
// concrete services.
package handlers

import (
	"context"
	"time"

	"github.com/learners-arc/blackbox-ecom-backend/internal/domain"
)

// ProductService defines catalog operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ProductService interface {
	// Create persists a new product.
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	// Get returns a product by ID.
	Get(ctx context.Context, id string) (*domain.Product, error)
	// ListPage returns a page of products and the total count.
	ListPage(ctx context.Context, category string, page, pageSize int) ([]domain.Product, int64, error)
	// Update applies column updates to a product by ID.
	Update(ctx context.Context, id string, updates map[string]any) error
	// Delete removes a product by ID.
	Delete(ctx context.Context, id string) error
}

// AuthService defines account operations consumed by HTTP handlers.
type AuthService interface {
	// Register creates an account and returns the stored user.
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	// Login verifies credentials and returns a bearer token with the user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Me returns the account for userID.
	Me(ctx context.Context, userID string) (*domain.User, error)
}

// Handlers groups HTTP endpoints for products, auth, and health.
type Handlers struct {
	productSvc ProductService
	authSvc    AuthService
	env        string
	startedAt  time.Time
}

// New constructs a Handlers instance bound to the given services. env is the
// deployment mode (development|production); it selects error envelope
// verbosity and is echoed by the health endpoint.
func New(productSvc ProductService, authSvc AuthService, env string) *Handlers {
	return &Handlers{
		productSvc: productSvc,
		authSvc:    authSvc,
		env:        env,
		startedAt:  time.Now().UTC(),
	}
}
