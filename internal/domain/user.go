package domain

import "time"

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// User is the durable account record. PasswordHash holds the layered
// bcrypt verifier and is never serialized; default repository reads
// exclude the column entirely.
type User struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	FullName        string    `gorm:"size:100;not null" json:"fullName"`
	Email           string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	InstitutionName string    `gorm:"size:200;not null" json:"institutionName"`
	StudentID       string    `gorm:"uniqueIndex;size:50;not null" json:"studentId"`
	Department      string    `gorm:"size:100;not null" json:"department"`
	Course          string    `gorm:"size:100;not null" json:"course"`
	PasswordHash    string    `gorm:"size:1024;not null" json:"-"`
	Role            string    `gorm:"size:32;not null;default:student" json:"role"`
	IsVerified      bool      `gorm:"not null;default:false" json:"isVerified"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	default:
		return false
	}
}
