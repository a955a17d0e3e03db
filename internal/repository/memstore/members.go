package memstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"resmatic/internal/model"
)

type memberRepo struct{ s *Store }

func (r memberRepo) Create(ctx context.Context, member *model.RestaurantMember) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := memberKey{member.RestaurantID, member.UserID}
	for _, m := range r.s.data.members {
		if (memberKey{m.RestaurantID, m.UserID}) == key {
			return fmt.Errorf("duplicate membership: %w", gorm.ErrDuplicatedKey)
		}
	}
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	now := time.Now()
	if member.CreatedAt.IsZero() {
		member.CreatedAt = now
	}
	member.UpdatedAt = now
	c := *member
	c.User = nil
	r.s.data.members = append(r.s.data.members, &c)
	return nil
}

func (r memberRepo) Find(ctx context.Context, restaurantID, userID uuid.UUID) (*model.RestaurantMember, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if m := r.find(restaurantID, userID); m != nil {
		c := *m
		return &c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r memberRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]model.RestaurantMember, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []model.RestaurantMember
	for _, m := range r.s.data.members {
		if m.RestaurantID != restaurantID {
			continue
		}
		c := *m
		for _, u := range r.s.data.users {
			if u.ID == m.UserID {
				uc := *u
				c.User = &uc
				break
			}
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r memberRepo) UpdateRole(ctx context.Context, restaurantID, userID uuid.UUID, role model.TenantRole) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m := r.find(restaurantID, userID)
	if m == nil {
		return gorm.ErrRecordNotFound
	}
	m.TenantRole = role
	m.UpdatedAt = time.Now()
	return nil
}

func (r memberRepo) Delete(ctx context.Context, restaurantID, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, m := range r.s.data.members {
		if m.RestaurantID == restaurantID && m.UserID == userID {
			r.s.data.members = append(r.s.data.members[:i], r.s.data.members[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r memberRepo) find(restaurantID, userID uuid.UUID) *model.RestaurantMember {
	for _, m := range r.s.data.members {
		if m.RestaurantID == restaurantID && m.UserID == userID {
			return m
		}
	}
	return nil
}
