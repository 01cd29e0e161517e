package handler

import (
	"encoding/json"
	"net/http"

	"github.com/acadverify/student-auth-service/internal/http/middleware"
	"github.com/acadverify/student-auth-service/internal/http/response"
	"github.com/acadverify/student-auth-service/internal/observability"
	"github.com/acadverify/student-auth-service/internal/service"
)

type UserHandler struct {
	authSvc service.AuthServiceInterface
}

func NewUserHandler(authSvc service.AuthServiceInterface) *UserHandler {
	return &UserHandler{authSvc: authSvc}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context", nil)
		return
	}
	// The role gate already resolved the account; re-read anyway so the
	// response reflects the latest committed profile.
	u, err := h.authSvc.GetCurrentAccount(account.ID)
	if err != nil {
		observability.RecordProfileEvent(r.Context(), "read_failure")
		writeServiceError(w, r, err)
		return
	}
	observability.RecordProfileEvent(r.Context(), "read_success")
	response.JSON(w, r, http.StatusOK, map[string]any{"user": u})
}

type updateProfileRequest struct {
	FullName        *string `json:"fullName"`
	InstitutionName *string `json:"institutionName"`
	Department      *string `json:"department"`
	Course          *string `json:"course"`
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context", nil)
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}

	u, err := h.authSvc.UpdateProfile(account.ID, service.UpdateProfileParams{
		FullName:        req.FullName,
		InstitutionName: req.InstitutionName,
		Department:      req.Department,
		Course:          req.Course,
	})
	if err != nil {
		observability.RecordProfileEvent(r.Context(), "update_failure")
		writeServiceError(w, r, err)
		return
	}
	observability.Audit(r, "profile.update.success", "account_id", u.ID)
	observability.RecordProfileEvent(r.Context(), "update_success")
	response.JSON(w, r, http.StatusOK, map[string]any{"user": u})
}
