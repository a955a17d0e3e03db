package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"resmatic/internal/model"
)

// MemberRepository defines membership persistence operations.
type MemberRepository interface {
	Create(ctx context.Context, member *model.RestaurantMember) error
	Find(ctx context.Context, restaurantID, userID uuid.UUID) (*model.RestaurantMember, error)
	// ListByRestaurant returns members with their User preloaded, oldest first.
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]model.RestaurantMember, error)
	UpdateRole(ctx context.Context, restaurantID, userID uuid.UUID, role model.TenantRole) error
	Delete(ctx context.Context, restaurantID, userID uuid.UUID) error
}

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new membership repository.
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, member *model.RestaurantMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *memberRepository) Find(ctx context.Context, restaurantID, userID uuid.UUID) (*model.RestaurantMember, error) {
	var member model.RestaurantMember
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND user_id = ?", restaurantID, userID).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]model.RestaurantMember, error) {
	var members []model.RestaurantMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("restaurant_id = ?", restaurantID).
		Order("created_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *memberRepository) UpdateRole(ctx context.Context, restaurantID, userID uuid.UUID, role model.TenantRole) error {
	res := r.db.WithContext(ctx).Model(&model.RestaurantMember{}).
		Where("restaurant_id = ? AND user_id = ?", restaurantID, userID).
		Update("tenant_role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *memberRepository) Delete(ctx context.Context, restaurantID, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND user_id = ?", restaurantID, userID).
		Delete(&model.RestaurantMember{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
