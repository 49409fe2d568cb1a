// Auth HTTP handlers: register, login, and the current-account endpoint.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/learners-arc/blackbox-ecom-backend/internal/apperr"
	"github.com/learners-arc/blackbox-ecom-backend/internal/services"
)

// RegisterRequest is the JSON payload for creating an account.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=255" example:"Ada"`
	Email    string `json:"email" binding:"required,email" example:"ada@example.com"`
	Password string `json:"password" binding:"required,min=8,max=72" example:"correct-horse"`
}

// LoginRequest is the JSON payload for logging in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ada@example.com"`
	Password string `json:"password" binding:"required" example:"correct-horse"`
}

// LoginResponse carries the bearer token and the authenticated user.
type LoginResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

// Register godoc
// @ID          register
// @Summary     Create an account
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.RegisterRequest  true  "Registration payload"
// @Success     201  {object}  domain.User
// @Failure     400  {object}  apperr.Envelope  "Duplicate email"
// @Failure     422  {object}  apperr.Envelope  "Validation failure"
// @Router      /auth/register [post]
func (h *Handlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.error(c, err)
		return
	}

	u, err := h.authSvc.Register(c.Request.Context(),
		strings.TrimSpace(req.Name),
		strings.ToLower(strings.TrimSpace(req.Email)),
		req.Password,
	)
	if err != nil {
		h.error(c, err)
		return
	}
	ok(c, http.StatusCreated, u)
}

// Login godoc
// @ID          login
// @Summary     Log in
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.LoginRequest  true  "Credentials"
// @Success     200  {object}  handlers.LoginResponse
// @Failure     401  {object}  apperr.Envelope  "Invalid credentials"
// @Router      /auth/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.error(c, err)
		return
	}

	tok, u, err := h.authSvc.Login(c.Request.Context(),
		strings.ToLower(strings.TrimSpace(req.Email)),
		req.Password,
	)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.error(c, apperr.Unauthorized("Incorrect email or password"))
			return
		}
		h.error(c, err)
		return
	}
	ok(c, http.StatusOK, LoginResponse{Token: tok, User: u})
}

// Me godoc
// @ID          me
// @Summary     Current account
// @Tags        Auth
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  domain.User
// @Failure     401  {object}  apperr.Envelope  "Missing/expired token"
// @Failure     404  {object}  apperr.Envelope  "Account gone"
// @Router      /auth/me [get]
func (h *Handlers) Me(c *gin.Context) {
	uid, _ := c.Get("userID")
	id, _ := uid.(string)

	u, err := h.authSvc.Me(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			h.error(c, apperr.NotFound("The account for this token no longer exists"))
			return
		}
		h.error(c, err)
		return
	}
	ok(c, http.StatusOK, u)
}
