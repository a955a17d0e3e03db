package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories the core depends on. WithTransaction runs fn
// against a Store bound to a single database transaction; returning an error
// from fn rolls every write back.
type Store interface {
	Users() UserRepository
	Restaurants() RestaurantRepository
	Members() MemberRepository
	Invites() InviteRepository
	RefreshTokens() RefreshTokenRepository
	AuditLogs() AuditLogRepository
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore creates a GORM-backed Store.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Users() UserRepository                 { return &userRepository{db: s.db} }
func (s *gormStore) Restaurants() RestaurantRepository     { return &restaurantRepository{db: s.db} }
func (s *gormStore) Members() MemberRepository             { return &memberRepository{db: s.db} }
func (s *gormStore) Invites() InviteRepository             { return &inviteRepository{db: s.db} }
func (s *gormStore) RefreshTokens() RefreshTokenRepository { return &refreshTokenRepository{db: s.db} }
func (s *gormStore) AuditLogs() AuditLogRepository         { return &auditLogRepository{db: s.db} }

// WithTransaction executes a function within a database transaction.
func (s *gormStore) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &gormStore{db: tx})
	})
}
