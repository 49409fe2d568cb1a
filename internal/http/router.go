// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, panic recovery, metrics, CORS,
// security headers, rate limiting, and the unmatched-route responder.
//
// Design goals:
//   - Observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Every failure, including 404/405, goes through the error pipeline
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/learners-arc/blackbox-ecom-backend/internal/apperr"
	"github.com/learners-arc/blackbox-ecom-backend/internal/config"
	"github.com/learners-arc/blackbox-ecom-backend/internal/domain"
	"github.com/learners-arc/blackbox-ecom-backend/internal/http/handlers"
	"github.com/learners-arc/blackbox-ecom-backend/internal/http/middleware"
	"github.com/learners-arc/blackbox-ecom-backend/internal/repo"
	"github.com/learners-arc/blackbox-ecom-backend/internal/services"
)

// productRepoShim adapts the repository free functions to the
// services.ProductRepo interface expected by the ProductService. This keeps
// services decoupled from the concrete repo package while reusing existing
// functions.
type productRepoShim struct{}

func (productRepoShim) CreateProduct(ctx context.Context, db *gorm.DB, p *domain.Product) (*domain.Product, error) {
	return repo.CreateProduct(ctx, db, p)
}

func (productRepoShim) GetProduct(ctx context.Context, db *gorm.DB, id string) (*domain.Product, error) {
	return repo.GetProduct(ctx, db, id)
}

func (productRepoShim) CountProducts(ctx context.Context, db *gorm.DB, category string) (int64, error) {
	return repo.CountProducts(ctx, db, category)
}

func (productRepoShim) ListProductsPage(ctx context.Context, db *gorm.DB, category string, offset, limit int) ([]domain.Product, error) {
	return repo.ListProductsPage(ctx, db, category, offset, limit)
}

func (productRepoShim) UpdateProduct(ctx context.Context, db *gorm.DB, id string, updates map[string]any) error {
	return repo.UpdateProduct(ctx, db, id, updates)
}

func (productRepoShim) DeleteProduct(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeleteProduct(ctx, db, id)
}

// endpointDirectory maps a first path segment (after the API base path) to
// the endpoints suggested in unmatched-route responses. The table is
// illustrative; it does not track the live route table.
var endpointDirectory = map[string][]string{
	"products":   {"GET /api/v1/products", "POST /api/v1/products", "GET /api/v1/products/:id"},
	"product":    {"GET /api/v1/products", "GET /api/v1/products/:id"},
	"categories": {"GET /api/v1/products?category=<name>"},
	"auth":       {"POST /api/v1/auth/register", "POST /api/v1/auth/login", "GET /api/v1/auth/me"},
	"users":      {"POST /api/v1/auth/register", "GET /api/v1/auth/me"},
	"orders":     {"GET /api/v1/products"},
}

// defaultSuggestions is returned when no directory group matches.
var defaultSuggestions = []string{
	"GET /health",
	"GET /api/v1/products",
	"POST /api/v1/auth/login",
}

// SuggestEndpoints returns the deterministic suggestion list for an
// unmatched request path under base.
func SuggestEndpoints(base, path string) []string {
	rest := strings.TrimPrefix(path, base)
	rest = strings.TrimPrefix(rest, "/")
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	if s, ok := endpointDirectory[strings.ToLower(rest)]; ok {
		return s
	}
	return defaultSuggestions
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs + request-scoped logger
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Rate limiter (per user/IP)
//  8. CORS and security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true
	mode := cfg.AppEnv

	// 1) Trace all HTTP requests
	if cfg.OTEL.Enabled {
		r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	}

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging
	r.Use(middleware.Logger())

	// 4) Panic recovery into the standard envelope (with request id)
	r.Use(middleware.Recovery(mode))

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP(), mode)
	r.Use(rl.Handler())

	// 8) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Dependency injection: services ← repo/db
	productSvc := services.NewProductService(db, productRepoShim{})
	authSvc := &services.AuthService{DB: db, JWT: cfg.JWT}
	h := handlers.New(productSvc, authSvc, mode)

	// Fallbacks: unmatched routes and methods go through the error pipeline.
	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	r.NoRoute(func(c *gin.Context) {
		notFound(c, apiBase, mode)
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Error(c, apperr.MethodNotAllowed("Method not allowed on this route"), mode)
	})

	// Liveness/health
	r.GET("/health", h.Health)

	// Public API (compressed responses)
	api := groupWithPrefix(r, apiBase)
	api.Use(gzip.Gzip(gzip.DefaultCompression))
	{
		// Products
		api.POST("/products", h.CreateProduct)
		api.GET("/products", h.ListProducts)
		api.GET("/products/:id", h.GetProduct)
		api.PATCH("/products/:id", h.UpdateProduct)
		api.DELETE("/products/:id", h.DeleteProduct)

		// Auth
		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.Login)
		api.GET("/auth/me", middleware.RequireAuth(cfg.JWT.Secret, mode), h.Me)
	}
}

// notFound answers unmatched paths with a 404 envelope that names the method
// and path and suggests nearby endpoints from the static directory.
func notFound(c *gin.Context, base, mode string) {
	msg := fmt.Sprintf("Can't find %s %s on this server", c.Request.Method, c.Request.URL.Path)
	app := apperr.NotFound(msg)

	status, env := apperr.Format(app, mode)
	env.RequestID = middleware.RequestIDFrom(c)

	lg := middleware.LoggerFrom(c)
	lg.Warn().Int("status", status).Str("code", app.Code).Msg("route not found")

	body := gin.H{
		"success":     env.Success,
		"message":     env.Message,
		"request_id":  env.RequestID,
		"error":       env.Error,
		"suggestions": SuggestEndpoints(base, c.Request.URL.Path),
	}
	if env.Stack != "" {
		body["stack"] = env.Stack
	}
	c.AbortWithStatusJSON(status, body)
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
