package service

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/acadverify/student-auth-service/internal/domain"
)

// memoryUserRepository mirrors the storage contract closely enough for
// service tests: unique email and student id surface as
// gorm.ErrDuplicatedKey, and default reads blank the verifier the way
// the column projection does.
type memoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: map[string]*domain.User{}}
}

func (r *memoryUserRepository) Create(user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.Email = strings.ToLower(user.Email)
	for _, existing := range r.users {
		if existing.Email == user.Email || existing.StudentID == user.StudentID {
			return gorm.ErrDuplicatedKey
		}
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memoryUserRepository) FindByID(id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	cp.PasswordHash = ""
	return &cp, nil
}

func (r *memoryUserRepository) FindByEmail(email string) (*domain.User, error) {
	u, err := r.FindByEmailWithVerifier(email)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

func (r *memoryUserRepository) FindByEmailWithVerifier(email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryUserRepository) UpdateProfile(id string, fields map[string]any) (*domain.User, error) {
	r.mu.Lock()
	u, ok := r.users[id]
	if !ok {
		r.mu.Unlock()
		return nil, gorm.ErrRecordNotFound
	}
	for col, v := range fields {
		val := v.(string)
		switch col {
		case "full_name":
			u.FullName = val
		case "institution_name":
			u.InstitutionName = val
		case "department":
			u.Department = val
		case "course":
			u.Course = val
		}
	}
	u.UpdatedAt = time.Now()
	r.mu.Unlock()
	return r.FindByID(id)
}
