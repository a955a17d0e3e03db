package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TenantRole is the role a user holds inside one restaurant.
type TenantRole string

const (
	TenantRoleOwner   TenantRole = "OWNER"
	TenantRoleManager TenantRole = "MANAGER"
	TenantRoleWaiter  TenantRole = "WAITER"
	// TenantRoleNone means the caller has no access to the tenant.
	TenantRoleNone TenantRole = ""
)

// Valid reports whether r is one of OWNER, MANAGER or WAITER.
func (r TenantRole) Valid() bool {
	switch r {
	case TenantRoleOwner, TenantRoleManager, TenantRoleWaiter:
		return true
	}
	return false
}

// Assignable reports whether r may be granted through an invite or a member
// role change. OWNER is never assignable.
func (r TenantRole) Assignable() bool {
	return r == TenantRoleManager || r == TenantRoleWaiter
}

// RestaurantMember is an explicit membership row. (RestaurantID, UserID) is unique.
type RestaurantMember struct {
	ID           uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	RestaurantID uuid.UUID  `json:"restaurant_id" gorm:"type:char(36);not null;uniqueIndex:idx_member_restaurant_user"`
	UserID       uuid.UUID  `json:"user_id" gorm:"type:char(36);not null;uniqueIndex:idx_member_restaurant_user;index"`
	TenantRole   TenantRole `json:"tenant_role" gorm:"type:varchar(16);not null"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (m *RestaurantMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
