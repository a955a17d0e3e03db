package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefreshToken is one login session. Only a SHA-256 digest of the raw token
// is stored. Revoked is terminal.
type RefreshToken struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index:idx_refresh_user_hash"`
	TokenHash string    `json:"-" gorm:"size:64;not null;index:idx_refresh_user_hash"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	Revoked   bool      `json:"revoked" gorm:"not null;default:false;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`

	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets a time-ordered UUID before creating the record. Later
// sessions sort after earlier ones even when CreatedAt ties.
func (t *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID != uuid.Nil {
		return nil
	}
	id, err := NewSessionID()
	if err != nil {
		return err
	}
	t.ID = id
	return nil
}

// NewSessionID returns a version 7 UUID. IDs from one process increase
// monotonically.
func NewSessionID() (uuid.UUID, error) {
	return uuid.NewV7()
}
