// Product HTTP handlers.
//
// This file exposes REST endpoints for catalog resources:
//   - POST   /products        (create)
//   - GET    /products        (list, paginated)
//   - GET    /products/{id}   (fetch)
//   - PATCH  /products/{id}   (partial update)
//   - DELETE /products/{id}   (remove)
//
// Handlers are transport-thin: they bind input, call application services,
// and pass every failure to the error pipeline.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/learners-arc/blackbox-ecom-backend/internal/domain"
	"github.com/learners-arc/blackbox-ecom-backend/internal/utils"
)

//
// DTOs
//

// CreateProductRequest is the JSON payload for creating a product.
type CreateProductRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255" example:"Enamel mug"`
	Slug        string `json:"slug" binding:"required,min=1,max=255" example:"enamel-mug"`
	Description string `json:"description" example:"350ml camping mug"`
	PriceCents  int64  `json:"price_cents" binding:"required,gt=0" example:"1299"`
	Stock       int    `json:"stock" binding:"gte=0" example:"40"`
	Category    string `json:"category" binding:"max=64" example:"kitchen"`
}

// UpdateProductRequest is the JSON payload for partially updating a product.
// Absent fields are left unchanged.
type UpdateProductRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Slug        *string `json:"slug,omitempty" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	PriceCents  *int64  `json:"price_cents,omitempty" binding:"omitempty,gt=0"`
	Stock       *int    `json:"stock,omitempty" binding:"omitempty,gte=0"`
	Category    *string `json:"category,omitempty" binding:"omitempty,max=64"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListProductsResponse wraps a page of products and pagination information.
type ListProductsResponse struct {
	Products   []domain.Product `json:"products"`
	Pagination Pagination       `json:"pagination"`
}

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

//
// Handlers
//

// CreateProduct godoc
// @ID          createProduct
// @Summary     Create a product
// @Tags        Products
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CreateProductRequest  true  "Create product payload"
// @Success     201  {object}  domain.Product
// @Failure     400  {object}  apperr.Envelope  "Bad request / duplicate slug"
// @Failure     422  {object}  apperr.Envelope  "Validation failure"
// @Failure     500  {object}  apperr.Envelope  "Internal error"
// @Router      /products [post]
func (h *Handlers) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.error(c, err)
		return
	}

	p := &domain.Product{
		Name:        strings.TrimSpace(req.Name),
		Slug:        strings.TrimSpace(strings.ToLower(req.Slug)),
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
		Category:    strings.TrimSpace(req.Category),
	}
	created, err := h.productSvc.Create(c.Request.Context(), p)
	if err != nil {
		h.error(c, err)
		return
	}
	ok(c, http.StatusCreated, created)
}

// ListProducts godoc
// @ID          listProducts
// @Summary     List products (paginated)
// @Tags        Products
// @Produce     json
// @Param       category   query  string  false "Filter by category"
// @Param       page       query  int     false "Page number"     minimum(1) default(1)
// @Param       page_size  query  int     false "Items per page"  minimum(1) maximum(100) default(20)
// @Success     200  {object}  handlers.ListProductsResponse
// @Failure     500  {object}  apperr.Envelope  "Internal error"
// @Router      /products [get]
func (h *Handlers) ListProducts(c *gin.Context) {
	page, pageSize := clampPagination(c)
	category := strings.TrimSpace(c.Query("category"))

	items, total, err := h.productSvc.ListPage(c.Request.Context(), category, page, pageSize)
	if err != nil {
		h.error(c, err)
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListProductsResponse{
		Products: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// GetProduct godoc
// @ID          getProduct
// @Summary     Fetch a product
// @Tags        Products
// @Produce     json
// @Param       id  path  string  true  "Product ID (UUID)"  format(uuid)
// @Success     200  {object}  domain.Product
// @Failure     400  {object}  apperr.Envelope  "Invalid ID"
// @Failure     404  {object}  apperr.Envelope  "Not found"
// @Router      /products/{id} [get]
func (h *Handlers) GetProduct(c *gin.Context) {
	p, err := h.productSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.error(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}

// UpdateProduct godoc
// @ID          updateProduct
// @Summary     Update a product
// @Tags        Products
// @Accept      json
// @Produce     json
// @Param       id    path  string  true  "Product ID (UUID)"  format(uuid)
// @Param       body  body  handlers.UpdateProductRequest  true  "Fields to update"
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  apperr.Envelope  "Bad request / duplicate slug"
// @Failure     404  {object}  apperr.Envelope  "Not found"
// @Router      /products/{id} [patch]
func (h *Handlers) UpdateProduct(c *gin.Context) {
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.error(c, err)
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		updates["slug"] = strings.TrimSpace(strings.ToLower(*req.Slug))
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.PriceCents != nil {
		updates["price_cents"] = *req.PriceCents
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.Category != nil {
		updates["category"] = strings.TrimSpace(*req.Category)
	}

	if err := h.productSvc.Update(c.Request.Context(), c.Param("id"), updates); err != nil {
		h.error(c, err)
		return
	}
	noContent(c)
}

// DeleteProduct godoc
// @ID          deleteProduct
// @Summary     Delete a product
// @Tags        Products
// @Param       id  path  string  true  "Product ID (UUID)"  format(uuid)
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  apperr.Envelope  "Invalid ID"
// @Failure     404  {object}  apperr.Envelope  "Not found"
// @Router      /products/{id} [delete]
func (h *Handlers) DeleteProduct(c *gin.Context) {
	if err := h.productSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.error(c, err)
		return
	}
	noContent(c)
}
