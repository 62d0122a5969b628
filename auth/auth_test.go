package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(Config{Secret: "test-secret"})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc
}

func TestService_GenerateParse(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.Generate("user_42", "Ada")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := svc.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.Subject != "user_42" {
		t.Errorf("expected subject 'user_42', got '%s'", claims.Subject)
	}
	if claims.Name != "Ada" {
		t.Errorf("expected name 'Ada', got '%s'", claims.Name)
	}
}

func TestService_ParseRejectsWrongSecret(t *testing.T) {
	svc := newTestService(t)
	other, _ := NewService(Config{Secret: "other-secret"})

	token, _ := other.Generate("user_42", "")
	if _, err := svc.Parse(token); err == nil {
		t.Error("expected parse to fail for token signed with another secret")
	}
}

func TestService_ParseRejectsExpired(t *testing.T) {
	svc, _ := NewService(Config{Secret: "test-secret", TokenTTL: -time.Minute})

	token, _ := svc.Generate("user_42", "")
	if _, err := svc.Parse(token); err == nil {
		t.Error("expected parse to fail for expired token")
	}
}

func TestNewService_RequiresSecret(t *testing.T) {
	if _, err := NewService(Config{}); err == nil {
		t.Error("expected error for empty secret")
	}
}

func identityRouter(svc *Service, allowQuery bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", Identity(svc, allowQuery), func(c *gin.Context) {
		c.String(http.StatusOK, SubscriberID(c))
	})
	return r
}

func TestIdentity_BearerToken(t *testing.T) {
	svc := newTestService(t)
	r := identityRouter(svc, false)

	token, _ := svc.Generate("user_42", "")
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "user_42" {
		t.Errorf("expected body 'user_42', got '%s'", w.Body.String())
	}
}

func TestIdentity_QueryFallback(t *testing.T) {
	svc := newTestService(t)
	r := identityRouter(svc, true)

	req := httptest.NewRequest(http.MethodGet, "/whoami?userId=user_7", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "user_7" {
		t.Errorf("expected body 'user_7', got '%s'", w.Body.String())
	}
}

func TestIdentity_QueryDisabled(t *testing.T) {
	svc := newTestService(t)
	r := identityRouter(svc, false)

	req := httptest.NewRequest(http.MethodGet, "/whoami?userId=user_7", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 when query identity is disabled, got %d", w.Code)
	}
}

func TestIdentity_Anonymous(t *testing.T) {
	svc := newTestService(t)
	r := identityRouter(svc, true)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for anonymous caller, got %d", w.Code)
	}
}

func TestIdentity_MalformedHeader(t *testing.T) {
	svc := newTestService(t)
	r := identityRouter(svc, true)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for malformed header, got %d", w.Code)
	}
}
