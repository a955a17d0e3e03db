package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GlobalRole is the platform-wide role carried in every token.
type GlobalRole string

const (
	// RoleAdmin bypasses every tenant-scoped check.
	RoleAdmin GlobalRole = "ADMIN"
	RoleUser  GlobalRole = "USER"
)

// User represents an authenticated user of the platform.
type User struct {
	ID           uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string     `json:"name" gorm:"size:255;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         GlobalRole `json:"role" gorm:"type:varchar(16);not null;default:'USER'"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsAdmin reports whether the user carries the global admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
