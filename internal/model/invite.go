package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StaffInvite is a single-use, email-bound invitation into a restaurant.
// Once AcceptedAt is set the invite is consumed for good.
type StaffInvite struct {
	ID           uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	RestaurantID uuid.UUID  `json:"restaurant_id" gorm:"type:char(36);not null;index"`
	Email        string     `json:"email" gorm:"size:255;not null;index"`
	TenantRole   TenantRole `json:"tenant_role" gorm:"type:varchar(16);not null"`
	Token        string     `json:"token" gorm:"size:64;not null;uniqueIndex"`
	ExpiresAt    time.Time  `json:"expires_at" gorm:"not null"`
	AcceptedAt   *time.Time `json:"accepted_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (i *StaffInvite) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Redeemable reports whether email may accept the invite at now.
func (i *StaffInvite) Redeemable(email string, now time.Time) bool {
	if i.AcceptedAt != nil {
		return false
	}
	if !i.ExpiresAt.After(now) {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(i.Email), strings.TrimSpace(email))
}
