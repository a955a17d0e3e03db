package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditLog captures notable authentication and membership events.
type AuditLog struct {
	ID           uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	ActorID      *uuid.UUID     `json:"actor_id" gorm:"type:char(36);index"`
	RestaurantID *uuid.UUID     `json:"restaurant_id,omitempty" gorm:"type:char(36);index"`
	Action       string         `json:"action" gorm:"size:64;not null;index"`
	TargetType   string         `json:"target_type" gorm:"size:64;not null"`
	TargetID     string         `json:"target_id,omitempty" gorm:"size:64"`
	Metadata     datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
