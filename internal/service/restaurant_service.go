package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"resmatic/internal/audit"
	apperrors "resmatic/internal/errors"
	"resmatic/internal/model"
	"resmatic/internal/rbac"
	"resmatic/internal/repository"
)

// RestaurantService manages restaurants and their staff. Route-level role
// checks happen in middleware; the service guards the owner invariants.
type RestaurantService interface {
	Create(ctx context.Context, ownerID uuid.UUID, name string) (*model.Restaurant, error)
	ListForUser(ctx context.Context, userID uuid.UUID, global model.GlobalRole, status model.RestaurantStatus) ([]model.Restaurant, error)
	GetForUser(ctx context.Context, userID uuid.UUID, global model.GlobalRole, restaurantID uuid.UUID) (*model.Restaurant, error)
	Update(ctx context.Context, actorID, restaurantID uuid.UUID, name *string, status *model.RestaurantStatus) (*model.Restaurant, error)
	Archive(ctx context.Context, actorID, restaurantID uuid.UUID) error
	ListMembers(ctx context.Context, restaurantID uuid.UUID) ([]model.RestaurantMember, error)
	UpdateMemberRole(ctx context.Context, actorID, restaurantID, userID uuid.UUID, role model.TenantRole) error
	RemoveMember(ctx context.Context, actorID, restaurantID, userID uuid.UUID) error
}

type restaurantService struct {
	store    repository.Store
	resolver *rbac.Resolver
	recorder audit.Recorder
}

// NewRestaurantService creates a RestaurantService.
func NewRestaurantService(store repository.Store, resolver *rbac.Resolver, recorder audit.Recorder) RestaurantService {
	if recorder == nil {
		recorder = audit.NopRecorder{}
	}
	return &restaurantService{store: store, resolver: resolver, recorder: recorder}
}

// Create stores the restaurant and the owner's membership atomically.
func (s *restaurantService) Create(ctx context.Context, ownerID uuid.UUID, name string) (*model.Restaurant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.ErrInvalidInput
	}

	restaurant := &model.Restaurant{
		Name:    name,
		OwnerID: ownerID,
		Status:  model.RestaurantStatusActive,
	}
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if err := tx.Restaurants().Create(ctx, restaurant); err != nil {
			return fmt.Errorf("create restaurant: %w", err)
		}
		member := &model.RestaurantMember{
			RestaurantID: restaurant.ID,
			UserID:       ownerID,
			TenantRole:   model.TenantRoleOwner,
		}
		if err := tx.Members().Create(ctx, member); err != nil {
			return fmt.Errorf("create owner membership: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(audit.Event{
		ActorID:      audit.Ptr(ownerID),
		RestaurantID: audit.Ptr(restaurant.ID),
		Action:       audit.ActionRestaurantCreated,
		TargetType:   "restaurant",
		TargetID:     restaurant.ID.String(),
	})
	return restaurant, nil
}

// ListForUser lists restaurants the user owns or works at. Admins see all.
func (s *restaurantService) ListForUser(ctx context.Context, userID uuid.UUID, global model.GlobalRole, status model.RestaurantStatus) ([]model.Restaurant, error) {
	if !status.Valid() {
		return nil, apperrors.ErrInvalidInput
	}
	var (
		list []model.Restaurant
		err  error
	)
	if global == model.RoleAdmin {
		list, err = s.store.Restaurants().ListByStatus(ctx, status)
	} else {
		list, err = s.store.Restaurants().ListForUser(ctx, userID, status)
	}
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return list, nil
}

// GetForUser hides restaurants the caller cannot see behind ErrRestaurantNotFound.
func (s *restaurantService) GetForUser(ctx context.Context, userID uuid.UUID, global model.GlobalRole, restaurantID uuid.UUID) (*model.Restaurant, error) {
	restaurant, err := s.find(ctx, s.store, restaurantID)
	if err != nil {
		return nil, err
	}
	if global == model.RoleAdmin {
		return restaurant, nil
	}
	role, err := s.resolver.Resolve(ctx, userID, restaurantID)
	if err != nil {
		return nil, err
	}
	if role == model.TenantRoleNone {
		return nil, apperrors.ErrRestaurantNotFound
	}
	return restaurant, nil
}

// Update changes the name and/or status. nil fields are left alone.
func (s *restaurantService) Update(ctx context.Context, actorID, restaurantID uuid.UUID, name *string, status *model.RestaurantStatus) (*model.Restaurant, error) {
	restaurant, err := s.find(ctx, s.store, restaurantID)
	if err != nil {
		return nil, err
	}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, apperrors.ErrInvalidInput
		}
		restaurant.Name = trimmed
	}
	if status != nil {
		if !status.Valid() {
			return nil, apperrors.ErrInvalidInput
		}
		restaurant.Status = *status
	}
	if err := s.store.Restaurants().Update(ctx, restaurant); err != nil {
		return nil, fmt.Errorf("update restaurant: %w", err)
	}

	s.recorder.Record(audit.Event{
		ActorID:      audit.Ptr(actorID),
		RestaurantID: audit.Ptr(restaurantID),
		Action:       audit.ActionRestaurantUpdated,
		TargetType:   "restaurant",
		TargetID:     restaurantID.String(),
	})
	return restaurant, nil
}

// Archive soft-deletes a restaurant by moving it to ARCHIVED.
func (s *restaurantService) Archive(ctx context.Context, actorID, restaurantID uuid.UUID) error {
	restaurant, err := s.find(ctx, s.store, restaurantID)
	if err != nil {
		return err
	}
	restaurant.Status = model.RestaurantStatusArchived
	if err := s.store.Restaurants().Update(ctx, restaurant); err != nil {
		return fmt.Errorf("archive restaurant: %w", err)
	}
	s.recorder.Record(audit.Event{
		ActorID:      audit.Ptr(actorID),
		RestaurantID: audit.Ptr(restaurantID),
		Action:       audit.ActionRestaurantArchive,
		TargetType:   "restaurant",
		TargetID:     restaurantID.String(),
	})
	return nil
}

func (s *restaurantService) ListMembers(ctx context.Context, restaurantID uuid.UUID) ([]model.RestaurantMember, error) {
	if _, err := s.find(ctx, s.store, restaurantID); err != nil {
		return nil, err
	}
	members, err := s.store.Members().ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// UpdateMemberRole assigns MANAGER or WAITER. The owner's role is fixed.
func (s *restaurantService) UpdateMemberRole(ctx context.Context, actorID, restaurantID, userID uuid.UUID, role model.TenantRole) error {
	if !role.Assignable() {
		return apperrors.ErrInvalidTenantRole
	}
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if err := s.guardOwner(ctx, tx, restaurantID, userID); err != nil {
			return err
		}
		if err := tx.Members().UpdateRole(ctx, restaurantID, userID, role); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrMemberNotFound
			}
			return fmt.Errorf("update member role: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.recorder.Record(audit.Event{
		ActorID:      audit.Ptr(actorID),
		RestaurantID: audit.Ptr(restaurantID),
		Action:       audit.ActionMemberRoleChanged,
		TargetType:   "user",
		TargetID:     userID.String(),
		Metadata:     map[string]string{"role": string(role)},
	})
	return nil
}

// RemoveMember deletes a membership. The owner cannot be removed.
func (s *restaurantService) RemoveMember(ctx context.Context, actorID, restaurantID, userID uuid.UUID) error {
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if err := s.guardOwner(ctx, tx, restaurantID, userID); err != nil {
			return err
		}
		if err := tx.Members().Delete(ctx, restaurantID, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrMemberNotFound
			}
			return fmt.Errorf("remove member: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.recorder.Record(audit.Event{
		ActorID:      audit.Ptr(actorID),
		RestaurantID: audit.Ptr(restaurantID),
		Action:       audit.ActionMemberRemoved,
		TargetType:   "user",
		TargetID:     userID.String(),
	})
	return nil
}

func (s *restaurantService) guardOwner(ctx context.Context, tx repository.Store, restaurantID, userID uuid.UUID) error {
	restaurant, err := s.find(ctx, tx, restaurantID)
	if err != nil {
		return err
	}
	if restaurant.OwnerID == userID {
		return apperrors.ErrOwnerImmutable
	}
	return nil
}

func (s *restaurantService) find(ctx context.Context, store repository.Store, id uuid.UUID) (*model.Restaurant, error) {
	restaurant, err := store.Restaurants().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("find restaurant: %w", err)
	}
	return restaurant, nil
}
