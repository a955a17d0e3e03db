package rbac

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"resmatic/internal/model"
	"resmatic/internal/repository"
)

// Resolver finds a user's effective role inside a restaurant.
type Resolver struct {
	restaurants repository.RestaurantRepository
	members     repository.MemberRepository
}

// NewResolver creates a Resolver backed by the store.
func NewResolver(store repository.Store) *Resolver {
	return &Resolver{
		restaurants: store.Restaurants(),
		members:     store.Members(),
	}
}

// Resolve returns OWNER for the restaurant owner regardless of any membership
// row, the membership role for other members, and TenantRoleNone otherwise.
// A missing restaurant resolves to TenantRoleNone.
func (r *Resolver) Resolve(ctx context.Context, userID, restaurantID uuid.UUID) (model.TenantRole, error) {
	restaurant, err := r.restaurants.FindByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.TenantRoleNone, nil
		}
		return model.TenantRoleNone, fmt.Errorf("find restaurant: %w", err)
	}
	if restaurant.OwnerID == userID {
		return model.TenantRoleOwner, nil
	}

	member, err := r.members.Find(ctx, restaurantID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.TenantRoleNone, nil
		}
		return model.TenantRoleNone, fmt.Errorf("find membership: %w", err)
	}
	return member.TenantRole, nil
}
