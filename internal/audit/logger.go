// Package audit records security-relevant actions. Writes go through a
// buffered dispatcher so a slow audit table never blocks a request.
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"resmatic/internal/model"
	"resmatic/internal/repository"
)

// Actions recorded by the services.
const (
	ActionUserRegistered    = "user.registered"
	ActionUserLoggedIn      = "user.logged_in"
	ActionUserLoggedOut     = "user.logged_out"
	ActionSessionRefreshed  = "session.refreshed"
	ActionRestaurantCreated = "restaurant.created"
	ActionRestaurantUpdated = "restaurant.updated"
	ActionRestaurantArchive = "restaurant.archived"
	ActionMemberRoleChanged = "member.role_changed"
	ActionMemberRemoved     = "member.removed"
	ActionInviteCreated     = "invite.created"
	ActionInviteAccepted    = "invite.accepted"
)

// Event is one audit entry before it is persisted.
type Event struct {
	ActorID      *uuid.UUID
	RestaurantID *uuid.UUID
	Action       string
	TargetType   string
	TargetID     string
	Metadata     any
}

// Recorder accepts audit events.
type Recorder interface {
	Record(ev Event)
}

// NopRecorder discards every event.
type NopRecorder struct{}

func (NopRecorder) Record(Event) {}

// Logger writes audit events to the audit_logs table.
type Logger struct {
	repo repository.AuditLogRepository
}

// NewLogger creates a Logger.
func NewLogger(repo repository.AuditLogRepository) *Logger {
	return &Logger{repo: repo}
}

// Log persists ev. Metadata that fails to marshal is dropped.
func (l *Logger) Log(ctx context.Context, ev Event) error {
	entry := &model.AuditLog{
		ActorID:      ev.ActorID,
		RestaurantID: ev.RestaurantID,
		Action:       ev.Action,
		TargetType:   ev.TargetType,
		TargetID:     ev.TargetID,
	}
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			entry.Metadata = datatypes.JSON(b)
		}
	}
	if err := l.repo.Create(ctx, entry); err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

// Ptr is a small helper for the optional id fields.
func Ptr(id uuid.UUID) *uuid.UUID {
	return &id
}
