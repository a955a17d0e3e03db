package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"resmatic/internal/model"
)

// RestaurantRepository defines tenant persistence operations.
type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *model.Restaurant) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Restaurant, error)
	// ListForUser returns restaurants in status that userID owns or is a member of, newest first.
	ListForUser(ctx context.Context, userID uuid.UUID, status model.RestaurantStatus) ([]model.Restaurant, error)
	ListByStatus(ctx context.Context, status model.RestaurantStatus) ([]model.Restaurant, error)
	Update(ctx context.Context, restaurant *model.Restaurant) error
}

type restaurantRepository struct {
	db *gorm.DB
}

// NewRestaurantRepository creates a new restaurant repository.
func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

func (r *restaurantRepository) Create(ctx context.Context, restaurant *model.Restaurant) error {
	return r.db.WithContext(ctx).Create(restaurant).Error
}

func (r *restaurantRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&restaurant).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *restaurantRepository) ListForUser(ctx context.Context, userID uuid.UUID, status model.RestaurantStatus) ([]model.Restaurant, error) {
	var restaurants []model.Restaurant
	memberOf := r.db.Model(&model.RestaurantMember{}).Select("restaurant_id").Where("user_id = ?", userID)
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Where(r.db.Where("owner_id = ?", userID).Or("id IN (?)", memberOf)).
		Order("created_at DESC").
		Find(&restaurants).Error
	if err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *restaurantRepository) ListByStatus(ctx context.Context, status model.RestaurantStatus) ([]model.Restaurant, error) {
	var restaurants []model.Restaurant
	if err := r.db.WithContext(ctx).Where("status = ?", status).Order("created_at DESC").Find(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *restaurantRepository) Update(ctx context.Context, restaurant *model.Restaurant) error {
	return r.db.WithContext(ctx).Model(restaurant).
		Select("name", "status").
		Updates(restaurant).Error
}
