package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"resmatic/internal/model"
)

// InviteRepository defines staff invite persistence operations.
type InviteRepository interface {
	Create(ctx context.Context, invite *model.StaffInvite) error
	FindByToken(ctx context.Context, token string) (*model.StaffInvite, error)
	// MarkAccepted consumes the invite. It reports false when the invite was
	// already consumed, so two concurrent redemptions cannot both succeed.
	MarkAccepted(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	ListPending(ctx context.Context, restaurantID uuid.UUID, now time.Time) ([]model.StaffInvite, error)
}

type inviteRepository struct {
	db *gorm.DB
}

// NewInviteRepository creates a new invite repository.
func NewInviteRepository(db *gorm.DB) InviteRepository {
	return &inviteRepository{db: db}
}

func (r *inviteRepository) Create(ctx context.Context, invite *model.StaffInvite) error {
	return r.db.WithContext(ctx).Create(invite).Error
}

func (r *inviteRepository) FindByToken(ctx context.Context, token string) (*model.StaffInvite, error) {
	var invite model.StaffInvite
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&invite).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *inviteRepository) MarkAccepted(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.StaffInvite{}).
		Where("id = ? AND accepted_at IS NULL", id).
		Update("accepted_at", at)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *inviteRepository) ListPending(ctx context.Context, restaurantID uuid.UUID, now time.Time) ([]model.StaffInvite, error) {
	var invites []model.StaffInvite
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND accepted_at IS NULL AND expires_at > ?", restaurantID, now).
		Order("created_at DESC").
		Find(&invites).Error
	if err != nil {
		return nil, err
	}
	return invites, nil
}
