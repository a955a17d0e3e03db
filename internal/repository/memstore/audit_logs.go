package memstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"resmatic/internal/model"
)

type auditLogRepo struct{ s *Store }

func (r auditLogRepo) Create(ctx context.Context, entry *model.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	c := *entry
	r.s.data.auditLogs = append(r.s.data.auditLogs, &c)
	return nil
}
