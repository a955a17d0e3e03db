package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"resmatic/internal/auth"
	"resmatic/internal/model"
	"resmatic/internal/repository/memstore"
)

func TestAdmin_CreatesOnce(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	first, err := Admin(ctx, store, "admin@x.local", "password123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, first.Role)
	assert.True(t, auth.VerifyPassword(first.PasswordHash, "password123"))

	second, err := Admin(ctx, store, "admin@x.local", "other", bcrypt.MinCost)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, auth.VerifyPassword(second.PasswordHash, "password123"))
}

func TestAdmin_PromotesExistingUser(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	require.NoError(t, store.Users().Create(ctx, &model.User{Email: "boss@x.local", Role: model.RoleUser}))

	admin, err := Admin(ctx, store, "boss@x.local", "password123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)

	stored, err := store.Users().FindByEmail(ctx, "boss@x.local")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, stored.Role)
}

func TestAdmin_RequiresCredentials(t *testing.T) {
	_, err := Admin(context.Background(), memstore.New(), "", "x", bcrypt.MinCost)
	assert.Error(t, err)
}
