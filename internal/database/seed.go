package database

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/acadverify/student-auth-service/internal/domain"
	"github.com/acadverify/student-auth-service/internal/security"
)

// SeedDemoStudent creates a known student account for local
// development. It is a no-op when the email is empty or already taken.
func SeedDemoStudent(db *gorm.DB, email, password string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil
	}
	var existing domain.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	verifier, err := security.DeriveVerifier(password)
	if err != nil {
		return err
	}
	return db.Create(&domain.User{
		ID:              "00000000-0000-0000-0000-000000000001",
		FullName:        "Demo Student",
		Email:           email,
		InstitutionName: "Demo Institute of Technology",
		StudentID:       "DEMO-0001",
		Department:      "Computer Science",
		Course:          "B.Tech CSE",
		PasswordHash:    verifier,
		Role:            domain.RoleStudent,
	}).Error
}
