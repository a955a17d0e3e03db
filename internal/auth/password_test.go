package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resmatic/internal/cache"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("password123", 4)
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "password123"))
	assert.False(t, VerifyPassword(hash, "password124"))
	assert.False(t, VerifyPassword("not-a-hash", "password123"))
}

func TestHashToken(t *testing.T) {
	a := HashToken("raw-token")
	assert.Len(t, a, 64)
	assert.Equal(t, a, HashToken("raw-token"))
	assert.NotEqual(t, a, HashToken("raw-token2"))
}

func TestRandomToken(t *testing.T) {
	a, err := RandomToken(32)
	require.NoError(t, err)
	b, err := RandomToken(32)
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestTokenStore_DisabledCacheNeverBlacklists(t *testing.T) {
	store := NewTokenStore(cache.New("", "", 0, "test:"))
	ctx := context.Background()

	require.NoError(t, store.BlacklistAccessToken(ctx, "jti-1", time.Minute))
	blacklisted, err := store.IsAccessTokenBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, blacklisted)
}
