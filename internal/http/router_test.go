package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/learners-arc/blackbox-ecom-backend/internal/config"
	"github.com/learners-arc/blackbox-ecom-backend/internal/repo"
)

func testConfig() config.Config {
	return config.Config{
		Port:            "0",
		AppEnv:          config.EnvProduction,
		APIBasePath:     "/api/v1",
		ShutdownTimeout: time.Second,
		JWT:             config.JWTConfig{Secret: "test-secret", TTL: time.Hour},
		RateRPS:         1000,
		RateBurst:       1000,
	}
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := repo.Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	r := gin.New()
	RegisterRoutes(r, db, testConfig())
	return r
}

func TestHealth_AlwaysOK(t *testing.T) {
	r := newTestEngine(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"status":"OK"`) {
		t.Fatalf("body=%s", w.Body.String())
	}
}

func TestNoRoute_SuggestsEndpoints(t *testing.T) {
	r := newTestEngine(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/xyz123", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}

	var body struct {
		Success     bool     `json:"success"`
		Message     string   `json:"message"`
		RequestID   string   `json:"request_id"`
		Suggestions []string `json:"suggestions"`
		Error       struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Success {
		t.Fatalf("success must be false")
	}
	if body.Error.Code != "ROUTE_NOT_FOUND" {
		t.Fatalf("code=%q", body.Error.Code)
	}
	if body.Message != "Can't find GET /api/v1/xyz123 on this server" {
		t.Fatalf("message=%q", body.Message)
	}
	if len(body.Suggestions) == 0 {
		t.Fatalf("expected at least one suggestion")
	}
	if body.RequestID == "" {
		t.Fatalf("request id missing")
	}
}

func TestNoRoute_SuggestionsDeterministic(t *testing.T) {
	r := newTestEngine(t)

	var first []string
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/produkt/42", nil))

		var body struct {
			Suggestions []string `json:"suggestions"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("json: %v", err)
		}
		if i == 0 {
			first = body.Suggestions
			continue
		}
		if len(body.Suggestions) != len(first) {
			t.Fatalf("suggestion count changed between calls")
		}
		for j := range first {
			if body.Suggestions[j] != first[j] {
				t.Fatalf("suggestions not deterministic: %v vs %v", first, body.Suggestions)
			}
		}
	}
}

func TestNoMethod_MethodNotAllowed(t *testing.T) {
	r := newTestEngine(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/health", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "METHOD_NOT_ALLOWED") {
		t.Fatalf("body=%s", w.Body.String())
	}
}

func TestRequestID_Propagated(t *testing.T) {
	r := newTestEngine(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "caller-supplied")
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "caller-supplied" {
		t.Fatalf("X-Request-ID=%q", got)
	}
}

func TestAuthMe_MissingToken(t *testing.T) {
	r := newTestEngine(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestSuggestEndpoints(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/api/v1/products/oops", "GET /api/v1/products"},
		{"/api/v1/auth/logout", "POST /api/v1/auth/register"},
		{"/api/v1/nothing-here", "GET /health"},
	}
	for _, tc := range cases {
		got := SuggestEndpoints("/api/v1", tc.path)
		if len(got) == 0 || got[0] != tc.want {
			t.Fatalf("SuggestEndpoints(%q) = %v", tc.path, got)
		}
	}

	// Same input, same output.
	a := SuggestEndpoints("/api/v1", "/api/v1/whatever")
	b := SuggestEndpoints("/api/v1", "/api/v1/whatever")
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("suggestions differ across calls")
		}
	}
}
