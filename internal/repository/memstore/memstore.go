// Package memstore is an in-memory repository.Store. It backs the test
// suites and the DB_DRIVER=memory development mode. Transactions are
// serialized and roll back every write when fn returns an error.
package memstore

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"resmatic/internal/model"
	"resmatic/internal/repository"
)

type memberKey struct {
	restaurantID uuid.UUID
	userID       uuid.UUID
}

type state struct {
	users         []*model.User
	restaurants   []*model.Restaurant
	members       []*model.RestaurantMember
	invites       []*model.StaffInvite
	refreshTokens []*model.RefreshToken
	auditLogs     []*model.AuditLog
}

// Store is a concurrency-safe in-memory repository.Store.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data state
}

var _ repository.Store = (*Store)(nil)

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

func (s *Store) Users() repository.UserRepository             { return userRepo{s} }
func (s *Store) Restaurants() repository.RestaurantRepository { return restaurantRepo{s} }
func (s *Store) Members() repository.MemberRepository         { return memberRepo{s} }
func (s *Store) Invites() repository.InviteRepository         { return inviteRepo{s} }
func (s *Store) RefreshTokens() repository.RefreshTokenRepository {
	return refreshTokenRepo{s}
}
func (s *Store) AuditLogs() repository.AuditLogRepository { return auditLogRepo{s} }

// WithTransaction runs fn with exclusive access to the transaction slot and
// restores the previous state if fn fails.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	if err := fn(ctx, s); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// AuditLogEntries returns a copy of every recorded audit entry.
func (s *Store) AuditLogEntries() []model.AuditLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.AuditLog, 0, len(s.data.auditLogs))
	for _, e := range s.data.auditLogs {
		out = append(out, *e)
	}
	return out
}

func (st state) clone() state {
	return state{
		users:         cloneAll(st.users),
		restaurants:   cloneAll(st.restaurants),
		members:       cloneAll(st.members),
		invites:       cloneAll(st.invites),
		refreshTokens: cloneAll(st.refreshTokens),
		auditLogs:     cloneAll(st.auditLogs),
	}
}

func cloneAll[T any](in []*T) []*T {
	out := make([]*T, len(in))
	for i, v := range in {
		c := *v
		out[i] = &c
	}
	return out
}
