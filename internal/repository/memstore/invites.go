package memstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"resmatic/internal/model"
)

type inviteRepo struct{ s *Store }

func (r inviteRepo) Create(ctx context.Context, invite *model.StaffInvite) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, i := range r.s.data.invites {
		if i.Token == invite.Token {
			return fmt.Errorf("duplicate invite token: %w", gorm.ErrDuplicatedKey)
		}
	}
	if invite.ID == uuid.Nil {
		invite.ID = uuid.New()
	}
	if invite.CreatedAt.IsZero() {
		invite.CreatedAt = time.Now()
	}
	c := *invite
	r.s.data.invites = append(r.s.data.invites, &c)
	return nil
}

func (r inviteRepo) FindByToken(ctx context.Context, token string) (*model.StaffInvite, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, i := range r.s.data.invites {
		if i.Token == token {
			c := *i
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r inviteRepo) MarkAccepted(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, i := range r.s.data.invites {
		if i.ID == id {
			if i.AcceptedAt != nil {
				return false, nil
			}
			accepted := at
			i.AcceptedAt = &accepted
			return true, nil
		}
	}
	return false, nil
}

func (r inviteRepo) ListPending(ctx context.Context, restaurantID uuid.UUID, now time.Time) ([]model.StaffInvite, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []model.StaffInvite
	for idx := len(r.s.data.invites) - 1; idx >= 0; idx-- {
		i := r.s.data.invites[idx]
		if i.RestaurantID == restaurantID && i.AcceptedAt == nil && i.ExpiresAt.After(now) {
			out = append(out, *i)
		}
	}
	return out, nil
}
