package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RestaurantStatus is the lifecycle state of a tenant.
type RestaurantStatus string

const (
	RestaurantStatusActive   RestaurantStatus = "ACTIVE"
	RestaurantStatusArchived RestaurantStatus = "ARCHIVED"
)

// Valid reports whether s is a known status.
func (s RestaurantStatus) Valid() bool {
	return s == RestaurantStatusActive || s == RestaurantStatusArchived
}

// Restaurant is the tenant boundary. OwnerID is implicitly OWNER for every
// tenant decision, with or without a membership row.
type Restaurant struct {
	ID        uuid.UUID        `json:"id" gorm:"type:char(36);primaryKey"`
	Name      string           `json:"name" gorm:"size:255;not null"`
	OwnerID   uuid.UUID        `json:"owner_id" gorm:"type:char(36);not null;index"`
	Status    RestaurantStatus `json:"status" gorm:"type:varchar(16);not null;default:'ACTIVE';index"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`

	// Relations
	Owner   *User              `json:"-" gorm:"foreignKey:OwnerID"`
	Members []RestaurantMember `json:"-" gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
	Invites []StaffInvite      `json:"-" gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Restaurant) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
