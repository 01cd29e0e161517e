package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/acadverify/student-auth-service/internal/domain"
	"github.com/acadverify/student-auth-service/internal/http/middleware"
	"github.com/acadverify/student-auth-service/internal/service"
)

func requestWithAccount(r *http.Request, account *domain.User) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.AccountContextKey, account)
	return r.WithContext(ctx)
}

func TestMeHandler(t *testing.T) {
	account := &domain.User{ID: "acc-1", Email: "asha@university.edu", Role: domain.RoleStudent}

	t.Run("ok", func(t *testing.T) {
		h := NewUserHandler(&stubAuthService{
			getCurrentFn: func(accountID string) (*domain.User, error) {
				if accountID != "acc-1" {
					t.Fatalf("account id = %q", accountID)
				}
				return account, nil
			},
		})
		rec := httptest.NewRecorder()
		req := requestWithAccount(httptest.NewRequest(http.MethodGet, "/api/auth/student/me", nil), account)
		h.Me(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		env := decodeEnvelope(t, rec)
		var data struct {
			User struct {
				Email string `json:"email"`
			} `json:"user"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if data.User.Email != "asha@university.edu" {
			t.Fatalf("data = %s", env.Data)
		}
	})

	t.Run("missing auth context", func(t *testing.T) {
		h := NewUserHandler(&stubAuthService{})
		rec := httptest.NewRecorder()
		h.Me(rec, httptest.NewRequest(http.MethodGet, "/api/auth/student/me", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("account deleted after gate", func(t *testing.T) {
		h := NewUserHandler(&stubAuthService{
			getCurrentFn: func(string) (*domain.User, error) { return nil, service.ErrNotFound },
		})
		rec := httptest.NewRecorder()
		req := requestWithAccount(httptest.NewRequest(http.MethodGet, "/api/auth/student/me", nil), account)
		h.Me(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		if env := decodeEnvelope(t, rec); env.Error == nil || env.Error.Code != "NOT_FOUND" {
			t.Fatalf("body = %s", rec.Body.String())
		}
	})
}

func TestUpdateProfileHandler(t *testing.T) {
	account := &domain.User{ID: "acc-1", Email: "asha@university.edu", Role: domain.RoleStudent}

	t.Run("partial update passes only provided fields", func(t *testing.T) {
		h := NewUserHandler(&stubAuthService{
			updateFn: func(accountID string, p service.UpdateProfileParams) (*domain.User, error) {
				if accountID != "acc-1" {
					t.Fatalf("account id = %q", accountID)
				}
				if p.Course == nil || *p.Course != "M.Tech CSE" {
					t.Fatalf("course = %v", p.Course)
				}
				if p.FullName != nil || p.InstitutionName != nil || p.Department != nil {
					t.Fatal("absent fields must stay nil")
				}
				u := *account
				u.Course = *p.Course
				return &u, nil
			},
		})
		rec := httptest.NewRecorder()
		req := requestWithAccount(
			httptest.NewRequest(http.MethodPut, "/api/auth/student/profile", strings.NewReader(`{"course":"M.Tech CSE"}`)),
			account)
		h.UpdateProfile(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("missing auth context", func(t *testing.T) {
		h := NewUserHandler(&stubAuthService{})
		rec := httptest.NewRecorder()
		h.UpdateProfile(rec, httptest.NewRequest(http.MethodPut, "/api/auth/student/profile", strings.NewReader(`{}`)))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		h := NewUserHandler(&stubAuthService{})
		rec := httptest.NewRecorder()
		req := requestWithAccount(
			httptest.NewRequest(http.MethodPut, "/api/auth/student/profile", strings.NewReader("{nope")),
			account)
		h.UpdateProfile(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("validation error", func(t *testing.T) {
		h := NewUserHandler(&stubAuthService{
			updateFn: func(string, service.UpdateProfileParams) (*domain.User, error) {
				return nil, &service.ValidationError{Message: "full name is required"}
			},
		})
		rec := httptest.NewRecorder()
		req := requestWithAccount(
			httptest.NewRequest(http.MethodPut, "/api/auth/student/profile", strings.NewReader(`{"fullName":"  "}`)),
			account)
		h.UpdateProfile(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if env := decodeEnvelope(t, rec); env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
			t.Fatalf("body = %s", rec.Body.String())
		}
	})
}
