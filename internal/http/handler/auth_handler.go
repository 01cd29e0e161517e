package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/acadverify/student-auth-service/internal/http/response"
	"github.com/acadverify/student-auth-service/internal/observability"
	"github.com/acadverify/student-auth-service/internal/service"
)

type AuthHandler struct {
	authSvc service.AuthServiceInterface
}

func NewAuthHandler(authSvc service.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := "success"
	defer func() {
		observability.RecordAuthRequestDuration(r.Context(), "signup", status, time.Since(start))
	}()

	var req service.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		status = "failure"
		observability.RecordAuthAttempt(r.Context(), "signup", "failure")
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}

	result, err := h.authSvc.Signup(req)
	if err != nil {
		status = "failure"
		observability.Audit(r, "auth.signup.failed", "email", req.Email)
		observability.RecordAuthAttempt(r.Context(), "signup", "failure")
		writeServiceError(w, r, err)
		return
	}

	observability.Audit(r, "auth.signup.success", "account_id", result.User.ID)
	observability.RecordAuthAttempt(r.Context(), "signup", "success")
	response.JSON(w, r, http.StatusCreated, map[string]any{
		"token":     result.Token,
		"expiresAt": result.ExpiresAt,
		"user":      result.User,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := "success"
	defer func() {
		observability.RecordAuthRequestDuration(r.Context(), "login", status, time.Since(start))
	}()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		status = "failure"
		observability.RecordAuthAttempt(r.Context(), "login", "failure")
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}

	result, err := h.authSvc.Login(req.Email, req.Password)
	if err != nil {
		status = "failure"
		observability.Audit(r, "auth.login.failed", "email", req.Email)
		observability.RecordAuthAttempt(r.Context(), "login", "failure")
		writeServiceError(w, r, err)
		return
	}

	observability.Audit(r, "auth.login.success", "account_id", result.User.ID)
	observability.RecordAuthAttempt(r.Context(), "login", "success")
	response.JSON(w, r, http.StatusOK, map[string]any{
		"token":     result.Token,
		"expiresAt": result.ExpiresAt,
		"user":      result.User,
	})
}

// writeServiceError translates the service error taxonomy into the
// response envelope. Anything unrecognized becomes a generic 500 so
// storage or derivation internals never leak to the caller.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		response.Error(w, r, http.StatusBadRequest, "VALIDATION_ERROR", ve.Message, nil)
	case errors.Is(err, service.ErrDuplicateIdentity):
		response.Error(w, r, http.StatusBadRequest, "DUPLICATE_IDENTITY", err.Error(), nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Error(w, r, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error(), nil)
	case errors.Is(err, service.ErrRoleNotAllowed):
		response.Error(w, r, http.StatusForbidden, "FORBIDDEN", err.Error(), nil)
	case errors.Is(err, service.ErrNotFound):
		response.Error(w, r, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	default:
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "internal server error", nil)
	}
}
