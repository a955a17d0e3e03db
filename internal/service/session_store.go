package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"resmatic/internal/auth"
	"resmatic/internal/metrics"
	"resmatic/internal/model"
	"resmatic/internal/repository"
)

// errSessionNotFound is returned by FindValid. It never says whether the
// token exists for another user or was revoked.
var errSessionNotFound = errors.New("session not found")

// SessionStore manages refresh-token records. Only a hash of the raw token
// is ever persisted.
type SessionStore struct {
	repo repository.RefreshTokenRepository
	now  func() time.Time
}

// NewSessionStore creates a SessionStore. now defaults to time.Now.
func NewSessionStore(repo repository.RefreshTokenRepository, now func() time.Time) *SessionStore {
	if now == nil {
		now = time.Now
	}
	return &SessionStore{repo: repo, now: now}
}

// Store persists a session for raw.
func (s *SessionStore) Store(ctx context.Context, userID uuid.UUID, raw auth.RefreshToken, expiresAt time.Time) (*model.RefreshToken, error) {
	record := &model.RefreshToken{
		UserID:    userID,
		TokenHash: auth.HashToken(string(raw)),
		ExpiresAt: expiresAt,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}
	return record, nil
}

// FindValid looks up a non-revoked session by user and raw token.
func (s *SessionStore) FindValid(ctx context.Context, userID uuid.UUID, raw auth.RefreshToken) (*model.RefreshToken, error) {
	record, err := s.repo.FindValid(ctx, userID, auth.HashToken(string(raw)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errSessionNotFound
		}
		return nil, fmt.Errorf("find refresh token: %w", err)
	}
	return record, nil
}

// Revoke flips the revoked flag. It reports whether this call did the flip,
// so only one of two concurrent rotations can win.
func (s *SessionStore) Revoke(ctx context.Context, id uuid.UUID) (bool, error) {
	ok, err := s.repo.Revoke(ctx, id)
	if err != nil {
		return false, fmt.Errorf("revoke refresh token: %w", err)
	}
	return ok, nil
}

// RevokeAll revokes every active session of the user.
func (s *SessionStore) RevokeAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := s.repo.RevokeAllForUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("revoke sessions: %w", err)
	}
	return n, nil
}

// EnforceSessionLimit keeps the newest limit sessions and revokes the rest.
// A limit of zero or less means unlimited.
func (s *SessionStore) EnforceSessionLimit(ctx context.Context, userID uuid.UUID, limit int) error {
	if limit <= 0 {
		return nil
	}
	active, err := s.repo.ListActiveForUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	if len(active) <= limit {
		return nil
	}

	evict := make([]uuid.UUID, 0, len(active)-limit)
	for _, t := range active[limit:] {
		evict = append(evict, t.ID)
	}
	if err := s.repo.RevokeMany(ctx, evict); err != nil {
		return fmt.Errorf("evict sessions: %w", err)
	}
	metrics.SessionsEvicted.Add(float64(len(evict)))
	return nil
}
