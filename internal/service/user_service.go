package service

import (
	"errors"
	"net/mail"
	"strings"

	"gorm.io/gorm"

	"github.com/acadverify/student-auth-service/internal/domain"
	"github.com/acadverify/student-auth-service/internal/repository"
	"github.com/acadverify/student-auth-service/internal/security"
)

// UserService is the credential store: it owns account validation, the
// verifier derivation on the write path, and all reads against the
// persistent user table. Uniqueness of email and student id is enforced
// by the storage layer's unique indexes, so a racing duplicate create
// still surfaces as ErrDuplicateIdentity.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type CreateAccountParams struct {
	FullName        string
	Email           string
	InstitutionName string
	StudentID       string
	Department      string
	Course          string
	Password        string
	Role            string
}

func (s *UserService) CreateAccount(p CreateAccountParams) (*domain.User, error) {
	p.FullName = strings.TrimSpace(p.FullName)
	p.Email = strings.TrimSpace(strings.ToLower(p.Email))
	p.InstitutionName = strings.TrimSpace(p.InstitutionName)
	p.StudentID = strings.TrimSpace(p.StudentID)
	p.Department = strings.TrimSpace(p.Department)
	p.Course = strings.TrimSpace(p.Course)

	if err := validateAccountFields(p); err != nil {
		return nil, err
	}

	verifier, err := security.DeriveVerifier(p.Password)
	if err != nil {
		return nil, err
	}

	role := p.Role
	if role == "" {
		role = domain.RoleStudent
	}
	if !domain.ValidRole(role) {
		return nil, validationf("invalid role %q", p.Role)
	}

	user := &domain.User{
		FullName:        p.FullName,
		Email:           p.Email,
		InstitutionName: p.InstitutionName,
		StudentID:       p.StudentID,
		Department:      p.Department,
		Course:          p.Course,
		PasswordHash:    verifier,
		Role:            role,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateIdentity
		}
		return nil, err
	}
	// Return the verifier-excluded view of the fresh record.
	return s.userRepo.FindByID(user.ID)
}

func (s *UserService) GetByID(id string) (*domain.User, error) {
	u, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// FindByEmailWithVerifier is the one read that includes the stored
// verifier; only the login path may call it.
func (s *UserService) FindByEmailWithVerifier(email string) (*domain.User, error) {
	u, err := s.userRepo.FindByEmailWithVerifier(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

type UpdateProfileParams struct {
	FullName        *string
	InstitutionName *string
	Department      *string
	Course          *string
}

// UpdateProfile mutates only the four caller-editable fields. Email,
// student id and role are not reachable through this path.
func (s *UserService) UpdateProfile(id string, p UpdateProfileParams) (*domain.User, error) {
	fields := map[string]any{}
	if p.FullName != nil {
		v := strings.TrimSpace(*p.FullName)
		if v == "" {
			return nil, validationf("full name is required")
		}
		if len(v) > 100 {
			return nil, validationf("full name cannot exceed 100 characters")
		}
		fields["full_name"] = v
	}
	if p.InstitutionName != nil {
		v := strings.TrimSpace(*p.InstitutionName)
		if v == "" {
			return nil, validationf("institution name is required")
		}
		if len(v) > 200 {
			return nil, validationf("institution name cannot exceed 200 characters")
		}
		fields["institution_name"] = v
	}
	if p.Department != nil {
		v := strings.TrimSpace(*p.Department)
		if v == "" {
			return nil, validationf("department is required")
		}
		if len(v) > 100 {
			return nil, validationf("department cannot exceed 100 characters")
		}
		fields["department"] = v
	}
	if p.Course != nil {
		v := strings.TrimSpace(*p.Course)
		if v == "" {
			return nil, validationf("course is required")
		}
		if len(v) > 100 {
			return nil, validationf("course cannot exceed 100 characters")
		}
		fields["course"] = v
	}
	if len(fields) == 0 {
		return s.GetByID(id)
	}
	u, err := s.userRepo.UpdateProfile(id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func validateAccountFields(p CreateAccountParams) error {
	switch {
	case p.FullName == "":
		return validationf("full name is required")
	case len(p.FullName) > 100:
		return validationf("full name cannot exceed 100 characters")
	case p.Email == "":
		return validationf("email is required")
	case p.InstitutionName == "":
		return validationf("institution name is required")
	case len(p.InstitutionName) > 200:
		return validationf("institution name cannot exceed 200 characters")
	case p.StudentID == "":
		return validationf("student ID is required")
	case len(p.StudentID) > 50:
		return validationf("student ID cannot exceed 50 characters")
	case p.Department == "":
		return validationf("department is required")
	case len(p.Department) > 100:
		return validationf("department cannot exceed 100 characters")
	case p.Course == "":
		return validationf("course is required")
	case len(p.Course) > 100:
		return validationf("course cannot exceed 100 characters")
	case p.Password == "":
		return validationf("password is required")
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return validationf("please provide a valid email")
	}
	return nil
}
