// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across all
// endpoints. Success responses serialize plain bodies; every failure funnels
// through Error(), which classifies the cause, logs it with request context,
// formats the standard envelope for the deployment mode, and writes it.
//
// Conventions:
//   - Handlers never build error JSON themselves; they pass the raw error
//     (or an already classified one) to Error()/h.error().
//   - Classification happens exactly once. Passing an operational classified
//     error back in returns it unchanged.
//   - 5xx causes and stacks are logged server-side and never leak to
//     production clients.
//
// Example error response:
//
//	HTTP/1.1 400 Bad Request
//	{
//	  "success": false,
//	  "message": "slug 'mug' already exists. Please use another value.",
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "error": { "code": "BAD_REQUEST", "timestamp": "2025-11-03T10:15:04Z" }
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learners-arc/blackbox-ecom-backend/internal/apperr"
	"github.com/learners-arc/blackbox-ecom-backend/internal/http/middleware"
)

// Error classifies err, logs it with request context, and writes the
// standard envelope for the given deployment mode. It aborts the request.
//
// Every classified error is logged regardless of mode: timestamp, method,
// path, client address, and agent string come from the request-scoped
// logger; status and code from the classification. Non-operational causes
// are logged with the underlying error.
func Error(c *gin.Context, err error, mode string) {
	app := apperr.Classify(err)

	lg := middleware.LoggerFrom(c)
	ev := lg.Warn()
	if app.Status >= http.StatusInternalServerError {
		ev = lg.Error()
		if cause := app.Cause(); cause != nil {
			ev = ev.Err(cause)
		}
	}
	ev.Int("status", app.Status).
		Str("code", app.Code).
		Str("message", app.Message).
		Msg("api error")

	status, env := apperr.Format(app, mode)
	env.RequestID = middleware.RequestIDFrom(c)
	c.AbortWithStatusJSON(status, env)
}

// error is the Handlers-bound variant of Error using the configured mode.
func (h *Handlers) error(c *gin.Context, err error) {
	Error(c, err, h.env)
}

// ok writes a success JSON response with the given status code.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes an HTTP 204 No Content response.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
