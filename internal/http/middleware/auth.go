// Bearer-token authentication. Token verification failures (missing,
// malformed, expired) are passed to the error classifier so the client sees
// the standard envelope with the right message.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/learners-arc/blackbox-ecom-backend/internal/apperr"
	"github.com/learners-arc/blackbox-ecom-backend/internal/auth"
)

// RequireAuth returns a Gin middleware that verifies the Authorization
// bearer token and stores "userID" and "userRole" in the context.
//
// Failure behavior:
//   - missing/blank header → 401 operational error
//   - malformed or expired token → classified from the jwt error
func RequireAuth(secret, mode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			abortWith(c, apperr.Unauthorized("You are not logged in. Please log in to get access."), mode)
			return
		}

		claims, err := auth.Parse(secret, raw)
		if err != nil {
			abortWith(c, apperr.Classify(err), mode)
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userRole", claims.Role)
		c.Next()
	}
}

// abortWith logs and writes the envelope for an already classified error.
func abortWith(c *gin.Context, app *apperr.AppError, mode string) {
	lg := LoggerFrom(c)
	lg.Warn().
		Int("status", app.Status).
		Str("code", app.Code).
		Str("message", app.Message).
		Msg("auth rejected")

	status, env := apperr.Format(app, mode)
	env.RequestID = RequestIDFrom(c)
	c.AbortWithStatusJSON(status, env)
}

// bearerToken extracts the token from an "Authorization: Bearer <tok>"
// header, returning "" when the scheme does not match.
func bearerToken(h string) string {
	h = strings.TrimSpace(h)
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
