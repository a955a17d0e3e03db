package memstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"resmatic/internal/model"
)

type refreshTokenRepo struct{ s *Store }

func (r refreshTokenRepo) Create(ctx context.Context, token *model.RefreshToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if token.ID == uuid.Nil {
		id, err := model.NewSessionID()
		if err != nil {
			return err
		}
		token.ID = id
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}
	c := *token
	c.User = nil
	r.s.data.refreshTokens = append(r.s.data.refreshTokens, &c)
	return nil
}

func (r refreshTokenRepo) FindValid(ctx context.Context, userID uuid.UUID, tokenHash string) (*model.RefreshToken, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, t := range r.s.data.refreshTokens {
		if t.UserID == userID && t.TokenHash == tokenHash && !t.Revoked {
			c := *t
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r refreshTokenRepo) Revoke(ctx context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.data.refreshTokens {
		if t.ID == id {
			if t.Revoked {
				return false, nil
			}
			t.Revoked = true
			return true, nil
		}
	}
	return false, nil
}

func (r refreshTokenRepo) RevokeMany(ctx context.Context, ids []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	for _, t := range r.s.data.refreshTokens {
		if set[t.ID] {
			t.Revoked = true
		}
	}
	return nil
}

func (r refreshTokenRepo) RevokeAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, t := range r.s.data.refreshTokens {
		if t.UserID == userID && !t.Revoked {
			t.Revoked = true
			n++
		}
	}
	return n, nil
}

// ListActiveForUser orders by CreatedAt descending; rows created at the same
// instant keep reverse insertion order, which is also descending ID order.
func (r refreshTokenRepo) ListActiveForUser(ctx context.Context, userID uuid.UUID) ([]model.RefreshToken, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []model.RefreshToken
	for i := len(r.s.data.refreshTokens) - 1; i >= 0; i-- {
		t := r.s.data.refreshTokens[i]
		if t.UserID == userID && !t.Revoked {
			out = append(out, *t)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(tokens []model.RefreshToken) {
	for i := 1; i < len(tokens); i++ {
		for j := i; j > 0 && tokens[j].CreatedAt.After(tokens[j-1].CreatedAt); j-- {
			tokens[j], tokens[j-1] = tokens[j-1], tokens[j]
		}
	}
}
