package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"resmatic/internal/model"
)

type restaurantRepo struct{ s *Store }

func (r restaurantRepo) Create(ctx context.Context, restaurant *model.Restaurant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if restaurant.ID == uuid.Nil {
		restaurant.ID = uuid.New()
	}
	if restaurant.Status == "" {
		restaurant.Status = model.RestaurantStatusActive
	}
	now := time.Now()
	if restaurant.CreatedAt.IsZero() {
		restaurant.CreatedAt = now
	}
	restaurant.UpdatedAt = now
	c := *restaurant
	r.s.data.restaurants = append(r.s.data.restaurants, &c)
	return nil
}

func (r restaurantRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Restaurant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rest := range r.s.data.restaurants {
		if rest.ID == id {
			c := *rest
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r restaurantRepo) ListForUser(ctx context.Context, userID uuid.UUID, status model.RestaurantStatus) ([]model.Restaurant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	memberOf := map[uuid.UUID]bool{}
	for _, m := range r.s.data.members {
		if m.UserID == userID {
			memberOf[m.RestaurantID] = true
		}
	}
	return r.collect(func(rest *model.Restaurant) bool {
		return rest.Status == status && (rest.OwnerID == userID || memberOf[rest.ID])
	}), nil
}

func (r restaurantRepo) ListByStatus(ctx context.Context, status model.RestaurantStatus) ([]model.Restaurant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(func(rest *model.Restaurant) bool { return rest.Status == status }), nil
}

func (r restaurantRepo) Update(ctx context.Context, restaurant *model.Restaurant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rest := range r.s.data.restaurants {
		if rest.ID == restaurant.ID {
			rest.Name = restaurant.Name
			rest.Status = restaurant.Status
			rest.UpdatedAt = time.Now()
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// collect must be called with the read lock held.
func (r restaurantRepo) collect(keep func(*model.Restaurant) bool) []model.Restaurant {
	var out []model.Restaurant
	for i := len(r.s.data.restaurants) - 1; i >= 0; i-- {
		if rest := r.s.data.restaurants[i]; keep(rest) {
			out = append(out, *rest)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
