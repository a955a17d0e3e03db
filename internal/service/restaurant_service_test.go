package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "resmatic/internal/errors"
	"resmatic/internal/model"
	"resmatic/internal/rbac"
	"resmatic/internal/repository/memstore"
)

func newRestaurantFixture(t *testing.T) (*memstore.Store, RestaurantService, *model.User) {
	t.Helper()
	store := memstore.New()
	owner := createUser(t, store.Users(), "owner@x.local", "password123", model.RoleUser)
	return store, NewRestaurantService(store, rbac.NewResolver(store), nil), owner
}

func TestRestaurantService_Create_AddsOwnerMembership(t *testing.T) {
	store, svc, owner := newRestaurantFixture(t)
	ctx := context.Background()

	restaurant, err := svc.Create(ctx, owner.ID, "  Trattoria  ")
	require.NoError(t, err)
	assert.Equal(t, "Trattoria", restaurant.Name)
	assert.Equal(t, model.RestaurantStatusActive, restaurant.Status)

	member, err := store.Members().Find(ctx, restaurant.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TenantRoleOwner, member.TenantRole)

	_, err = svc.Create(ctx, owner.ID, "   ")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestRestaurantService_Visibility(t *testing.T) {
	store, svc, owner := newRestaurantFixture(t)
	ctx := context.Background()
	stranger := createUser(t, store.Users(), "stranger@x.local", "password123", model.RoleUser)
	admin := createUser(t, store.Users(), "admin@x.local", "password123", model.RoleAdmin)

	restaurant, err := svc.Create(ctx, owner.ID, "Bistro")
	require.NoError(t, err)

	_, err = svc.GetForUser(ctx, stranger.ID, stranger.Role, restaurant.ID)
	assert.ErrorIs(t, err, apperrors.ErrRestaurantNotFound)

	got, err := svc.GetForUser(ctx, admin.ID, admin.Role, restaurant.ID)
	require.NoError(t, err)
	assert.Equal(t, restaurant.ID, got.ID)

	mine, err := svc.ListForUser(ctx, owner.ID, owner.Role, model.RestaurantStatusActive)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := svc.ListForUser(ctx, stranger.ID, stranger.Role, model.RestaurantStatusActive)
	require.NoError(t, err)
	assert.Empty(t, theirs)

	all, err := svc.ListForUser(ctx, admin.ID, admin.Role, model.RestaurantStatusActive)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRestaurantService_Archive(t *testing.T) {
	_, svc, owner := newRestaurantFixture(t)
	ctx := context.Background()

	restaurant, err := svc.Create(ctx, owner.ID, "Diner")
	require.NoError(t, err)
	require.NoError(t, svc.Archive(ctx, owner.ID, restaurant.ID))

	active, err := svc.ListForUser(ctx, owner.ID, owner.Role, model.RestaurantStatusActive)
	require.NoError(t, err)
	assert.Empty(t, active)

	archived, err := svc.ListForUser(ctx, owner.ID, owner.Role, model.RestaurantStatusArchived)
	require.NoError(t, err)
	assert.Len(t, archived, 1)

	assert.ErrorIs(t, svc.Archive(ctx, owner.ID, uuid.New()), apperrors.ErrRestaurantNotFound)
}

func TestRestaurantService_Update(t *testing.T) {
	_, svc, owner := newRestaurantFixture(t)
	ctx := context.Background()

	restaurant, err := svc.Create(ctx, owner.ID, "Diner")
	require.NoError(t, err)

	name := "Diner 2"
	updated, err := svc.Update(ctx, owner.ID, restaurant.ID, &name, nil)
	require.NoError(t, err)
	assert.Equal(t, "Diner 2", updated.Name)

	bad := model.RestaurantStatus("CLOSED")
	_, err = svc.Update(ctx, owner.ID, restaurant.ID, nil, &bad)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestRestaurantService_OwnerIsImmutable(t *testing.T) {
	store, svc, owner := newRestaurantFixture(t)
	ctx := context.Background()

	restaurant, err := svc.Create(ctx, owner.ID, "Bistro")
	require.NoError(t, err)

	err = svc.UpdateMemberRole(ctx, owner.ID, restaurant.ID, owner.ID, model.TenantRoleWaiter)
	assert.ErrorIs(t, err, apperrors.ErrOwnerImmutable)

	err = svc.RemoveMember(ctx, owner.ID, restaurant.ID, owner.ID)
	assert.ErrorIs(t, err, apperrors.ErrOwnerImmutable)

	member, err := store.Members().Find(ctx, restaurant.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TenantRoleOwner, member.TenantRole)
}

func TestRestaurantService_MemberManagement(t *testing.T) {
	store, svc, owner := newRestaurantFixture(t)
	ctx := context.Background()
	staff := createUser(t, store.Users(), "staff@x.local", "password123", model.RoleUser)

	restaurant, err := svc.Create(ctx, owner.ID, "Bistro")
	require.NoError(t, err)
	require.NoError(t, store.Members().Create(ctx, &model.RestaurantMember{
		RestaurantID: restaurant.ID, UserID: staff.ID, TenantRole: model.TenantRoleWaiter,
	}))

	assert.ErrorIs(t, svc.UpdateMemberRole(ctx, owner.ID, restaurant.ID, staff.ID, model.TenantRoleOwner), apperrors.ErrInvalidTenantRole)
	require.NoError(t, svc.UpdateMemberRole(ctx, owner.ID, restaurant.ID, staff.ID, model.TenantRoleManager))

	members, err := svc.ListMembers(ctx, restaurant.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)

	require.NoError(t, svc.RemoveMember(ctx, owner.ID, restaurant.ID, staff.ID))
	assert.ErrorIs(t, svc.RemoveMember(ctx, owner.ID, restaurant.ID, staff.ID), apperrors.ErrMemberNotFound)
	assert.ErrorIs(t, svc.UpdateMemberRole(ctx, owner.ID, restaurant.ID, staff.ID, model.TenantRoleWaiter), apperrors.ErrMemberNotFound)
}
