package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/acadverify/student-auth-service/internal/domain"
	"github.com/acadverify/student-auth-service/internal/http/handler"
	"github.com/acadverify/student-auth-service/internal/security"
	"github.com/acadverify/student-auth-service/internal/service"
)

type staticResolver struct{ user *domain.User }

func (s staticResolver) GetByID(string) (*domain.User, error) {
	if s.user == nil {
		return nil, service.ErrNotFound
	}
	return s.user, nil
}

type noopAuthService struct{}

func (noopAuthService) Signup(service.SignupRequest) (*service.AuthResult, error) {
	return nil, service.ErrInvalidCredentials
}

func (noopAuthService) Login(string, string) (*service.AuthResult, error) {
	return nil, service.ErrInvalidCredentials
}

func (noopAuthService) GetCurrentAccount(string) (*domain.User, error) {
	return nil, service.ErrNotFound
}

func (noopAuthService) UpdateProfile(string, service.UpdateProfileParams) (*domain.User, error) {
	return nil, service.ErrNotFound
}

func newTestRouter() http.Handler {
	var svc noopAuthService
	return NewRouter(Dependencies{
		AuthHandler:      handler.NewAuthHandler(svc),
		UserHandler:      handler.NewUserHandler(svc),
		JWTManager:       security.NewJWTManager("student-auth-service", "student-app", "0123456789abcdef0123456789abcdef"),
		AccountResolver:  staticResolver{},
		AuthRateLimitRPM: 100,
		APIRateLimitRPM:  1000,
	})
}

func TestRootBanner(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Message string `json:"message"`
			Mode    string `json:"mode"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Message != "Academia Authenticity Validator API is running" {
		t.Fatalf("message = %q", body.Data.Message)
	}
	if body.Data.Mode != "Student Mode Active" {
		t.Fatalf("mode = %q", body.Data.Mode)
	}
}

func TestLivenessProbe(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestReadinessWithoutProbeRunner(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "NOT_FOUND" {
		t.Fatalf("code = %q", body.Error.Code)
	}
	if body.Error.Message != "Route /api/unknown not found" {
		t.Fatalf("message = %q", body.Error.Message)
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	router := newTestRouter()

	t.Run("me without token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/student/me", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("profile without token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/auth/student/profile", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})
}

func TestSecurityHeadersApplied(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("security headers missing from router chain")
	}
}
