package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"resmatic/internal/model"
)

// RefreshTokenRepository persists refresh sessions. Rows are soft-revoked,
// never deleted.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	// FindValid looks up a non-revoked session by owner and token hash.
	FindValid(ctx context.Context, userID uuid.UUID, tokenHash string) (*model.RefreshToken, error)
	// Revoke flips a session to revoked and reports whether this call did it.
	Revoke(ctx context.Context, id uuid.UUID) (bool, error)
	RevokeMany(ctx context.Context, ids []uuid.UUID) error
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) (int64, error)
	// ListActiveForUser returns non-revoked sessions, newest first.
	ListActiveForUser(ctx context.Context, userID uuid.UUID) ([]model.RefreshToken, error)
}

type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository creates a new refresh token repository.
func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *refreshTokenRepository) FindValid(ctx context.Context, userID uuid.UUID, tokenHash string) (*model.RefreshToken, error) {
	var token model.RefreshToken
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND token_hash = ? AND revoked = ?", userID, tokenHash, false).
		First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *refreshTokenRepository) Revoke(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.RefreshToken{}).
		Where("id = ? AND revoked = ?", id, false).
		Update("revoked", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *refreshTokenRepository) RevokeMany(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.RefreshToken{}).
		Where("id IN ?", ids).
		Update("revoked", true).Error
}

func (r *refreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.RefreshToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true)
	return res.RowsAffected, res.Error
}

// ListActiveForUser returns newest first. Session IDs are time-ordered, so they
// break ties between rows created in the same millisecond.
func (r *refreshTokenRepository) ListActiveForUser(ctx context.Context, userID uuid.UUID) ([]model.RefreshToken, error) {
	var tokens []model.RefreshToken
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND revoked = ?", userID, false).
		Order("created_at DESC, id DESC").
		Find(&tokens).Error
	if err != nil {
		return nil, err
	}
	return tokens, nil
}
