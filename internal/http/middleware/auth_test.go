package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/learners-arc/blackbox-ecom-backend/internal/apperr"
	"github.com/learners-arc/blackbox-ecom-backend/internal/auth"
)

func protectedRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", RequireAuth(secret, apperr.ModeProduction), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("userID"),
			"role":    c.GetString("userRole"),
		})
	})
	return r
}

func getWithAuth(r *gin.Engine, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_MissingToken(t *testing.T) {
	r := protectedRouter("secret")

	w := getWithAuth(r, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d", w.Code)
	}

	var env apperr.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("json: %v", err)
	}
	if env.Message != "You are not logged in. Please log in to get access." {
		t.Fatalf("message=%q", env.Message)
	}
}

func TestRequireAuth_MalformedToken(t *testing.T) {
	r := protectedRouter("secret")

	w := getWithAuth(r, "Bearer not.a.token")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d", w.Code)
	}

	var env apperr.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("json: %v", err)
	}
	if env.Message != "Invalid token. Please log in again." {
		t.Fatalf("message=%q", env.Message)
	}
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	tok, err := auth.Issue("other-secret", time.Hour, "u1", "customer")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	r := protectedRouter("secret")

	w := getWithAuth(r, "Bearer "+tok)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	var env apperr.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("json: %v", err)
	}
	if env.Message != "Invalid token. Please log in again." {
		t.Fatalf("message=%q", env.Message)
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	tok, err := auth.Issue("secret", -time.Minute, "u1", "customer")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	r := protectedRouter("secret")

	w := getWithAuth(r, "Bearer "+tok)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d", w.Code)
	}

	var env apperr.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("json: %v", err)
	}
	if env.Message != "Your token has expired. Please log in again." {
		t.Fatalf("message=%q", env.Message)
	}
}

func TestRequireAuth_ValidToken(t *testing.T) {
	tok, err := auth.Issue("secret", time.Hour, "u1", "admin")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	r := protectedRouter("secret")

	w := getWithAuth(r, "Bearer "+tok)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body["user_id"] != "u1" || body["role"] != "admin" {
		t.Fatalf("claims not propagated: %v", body)
	}
}
