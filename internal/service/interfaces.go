package service

import "github.com/acadverify/student-auth-service/internal/domain"

type AuthServiceInterface interface {
	Signup(req SignupRequest) (*AuthResult, error)
	Login(email, password string) (*AuthResult, error)
	GetCurrentAccount(accountID string) (*domain.User, error)
	UpdateProfile(accountID string, p UpdateProfileParams) (*domain.User, error)
}

type AccountResolver interface {
	GetByID(id string) (*domain.User, error)
}
