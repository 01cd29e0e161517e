package service

import (
	"errors"
	"time"

	"github.com/acadverify/student-auth-service/internal/domain"
	"github.com/acadverify/student-auth-service/internal/security"
)

// AuthService is the session issuer: it orchestrates signup, login and
// profile flows and binds validated identities to bearer tokens.
type AuthService struct {
	tokenSvc *TokenService
	userSvc  *UserService
}

func NewAuthService(tokenSvc *TokenService, userSvc *UserService) *AuthService {
	return &AuthService{tokenSvc: tokenSvc, userSvc: userSvc}
}

type SignupRequest struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	InstitutionName string `json:"institutionName"`
	StudentID       string `json:"studentId"`
	Department      string `json:"department"`
	Course          string `json:"course"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type AuthResult struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

func (s *AuthService) Signup(req SignupRequest) (*AuthResult, error) {
	if req.FullName == "" || req.Email == "" || req.InstitutionName == "" ||
		req.StudentID == "" || req.Department == "" || req.Course == "" ||
		req.Password == "" || req.ConfirmPassword == "" {
		return nil, validationf("all fields are required")
	}
	if req.Password != req.ConfirmPassword {
		return nil, validationf("passwords do not match")
	}
	if len(req.Password) < 8 {
		return nil, validationf("password must be at least 8 characters long")
	}

	// Role is pinned to student no matter what the caller sent.
	user, err := s.userSvc.CreateAccount(CreateAccountParams{
		FullName:        req.FullName,
		Email:           req.Email,
		InstitutionName: req.InstitutionName,
		StudentID:       req.StudentID,
		Department:      req.Department,
		Course:          req.Course,
		Password:        req.Password,
		Role:            domain.RoleStudent,
	})
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokenSvc.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, validationf("please provide email and password")
	}

	user, err := s.userSvc.FindByEmailWithVerifier(email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.Role != domain.RoleStudent {
		return nil, ErrRoleNotAllowed
	}
	if !security.VerifyDirect(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokenSvc.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	// Re-read through the default (verifier-excluded) projection.
	public, err := s.userSvc.GetByID(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: public, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) GetCurrentAccount(accountID string) (*domain.User, error) {
	return s.userSvc.GetByID(accountID)
}

func (s *AuthService) UpdateProfile(accountID string, p UpdateProfileParams) (*domain.User, error) {
	return s.userSvc.UpdateProfile(accountID, p)
}
