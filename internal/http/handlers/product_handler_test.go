package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/learners-arc/blackbox-ecom-backend/internal/apperr"
	"github.com/learners-arc/blackbox-ecom-backend/internal/domain"
)

// fakeProductSvc implements ProductService with canned behavior per method.
type fakeProductSvc struct {
	createErr error
	getErr    error
	listErr   error
	updateErr error
	deleteErr error
	product   *domain.Product
}

func (f *fakeProductSvc) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	p.ID = "9e1c8f3a-62a7-4a0e-9c5f-0d6f6a1b2c3d"
	return p, nil
}

func (f *fakeProductSvc) Get(_ context.Context, id string) (*domain.Product, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.product, nil
}

func (f *fakeProductSvc) ListPage(_ context.Context, _ string, page, pageSize int) ([]domain.Product, int64, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	return []domain.Product{{ID: "p1"}}, 1, nil
}

func (f *fakeProductSvc) Update(_ context.Context, _ string, _ map[string]any) error {
	return f.updateErr
}

func (f *fakeProductSvc) Delete(_ context.Context, _ string) error {
	return f.deleteErr
}

func productRouter(svc ProductService, mode string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(svc, nil, mode)
	r := gin.New()
	r.POST("/products", h.CreateProduct)
	r.GET("/products", h.ListProducts)
	r.GET("/products/:id", h.GetProduct)
	r.PATCH("/products/:id", h.UpdateProduct)
	r.DELETE("/products/:id", h.DeleteProduct)
	return r
}

func TestCreateProduct_Created(t *testing.T) {
	r := productRouter(&fakeProductSvc{}, apperr.ModeProduction)

	body := `{"name":"Enamel mug","slug":"Enamel-Mug","price_cents":1299,"stock":3}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var p domain.Product
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("json: %v", err)
	}
	if p.Slug != "enamel-mug" {
		t.Fatalf("slug not normalized: %q", p.Slug)
	}
}

func TestCreateProduct_ValidationFailure(t *testing.T) {
	r := productRouter(&fakeProductSvc{}, apperr.ModeProduction)

	// Missing name and non-positive price.
	body := `{"slug":"x","price_cents":0}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var env apperr.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("json: %v", err)
	}
	if env.Error.Code != apperr.CodeValidation || len(env.Errors) == 0 {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestCreateProduct_DuplicateSlug(t *testing.T) {
	svc := &fakeProductSvc{createErr: &apperr.DuplicateKeyError{Field: "slug", Value: "enamel-mug"}}
	r := productRouter(svc, apperr.ModeProduction)

	body := `{"name":"Enamel mug","slug":"enamel-mug","price_cents":1299}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "slug 'enamel-mug' already exists") {
		t.Fatalf("body=%s", w.Body.String())
	}
}

func TestGetProduct_InvalidID(t *testing.T) {
	svc := &fakeProductSvc{getErr: &apperr.InvalidIDError{Field: "id", Value: "abc"}}
	r := productRouter(svc, apperr.ModeProduction)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/abc", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid id: abc") {
		t.Fatalf("body=%s", w.Body.String())
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	svc := &fakeProductSvc{getErr: fmt.Errorf("get product: %w", gorm.ErrRecordNotFound)}
	r := productRouter(svc, apperr.ModeProduction)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/9e1c8f3a-62a7-4a0e-9c5f-0d6f6a1b2c3d", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
	var env apperr.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("json: %v", err)
	}
	if env.Error.Code != apperr.CodeResourceMissed {
		t.Fatalf("code=%q", env.Error.Code)
	}
}

func TestListProducts_OK(t *testing.T) {
	r := productRouter(&fakeProductSvc{}, apperr.ModeProduction)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products?page=1&page_size=5", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var resp ListProductsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.Pagination.Total != 1 || resp.Pagination.PageSize != 5 {
		t.Fatalf("pagination: %+v", resp.Pagination)
	}
}

func TestDeleteProduct_NoContent(t *testing.T) {
	r := productRouter(&fakeProductSvc{}, apperr.ModeProduction)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/products/9e1c8f3a-62a7-4a0e-9c5f-0d6f6a1b2c3d", nil))

	if w.Code != http.StatusNoContent {
		t.Fatalf("status=%d", w.Code)
	}
}
