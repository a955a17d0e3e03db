package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"resmatic/internal/model"
	"resmatic/internal/repository"
)

func TestWithTransaction_RollsBack(t *testing.T) {
	ctx := context.Background()
	s := New()

	boom := errors.New("boom")
	err := s.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		require.NoError(t, tx.Users().Create(ctx, &model.User{Email: "a@x.local"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = s.Users().FindByEmail(ctx, "a@x.local")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = s.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		return tx.Users().Create(ctx, &model.User{Email: "b@x.local"})
	})
	require.NoError(t, err)
	_, err = s.Users().FindByEmail(ctx, "B@x.local")
	assert.NoError(t, err)
}

func TestUsers_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Users().Create(ctx, &model.User{Email: "a@x.local"}))
	err := s.Users().Create(ctx, &model.User{Email: "A@X.local"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestRefreshTokens_NewestFirstAndConditionalRevoke(t *testing.T) {
	ctx := context.Background()
	s := New()
	userID := uuid.New()
	at := time.Now()

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		tok := &model.RefreshToken{UserID: userID, TokenHash: uuid.NewString(), ExpiresAt: at.Add(time.Hour), CreatedAt: at}
		require.NoError(t, s.RefreshTokens().Create(ctx, tok))
		ids = append(ids, tok.ID)
	}

	active, err := s.RefreshTokens().ListActiveForUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, active, 3)
	assert.Equal(t, ids[2], active[0].ID)
	assert.Equal(t, ids[0], active[2].ID)

	ok, err := s.RefreshTokens().Revoke(ctx, ids[1])
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.RefreshTokens().Revoke(ctx, ids[1])
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := s.RefreshTokens().RevokeAllForUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestInvites_MarkAcceptedOnce(t *testing.T) {
	ctx := context.Background()
	s := New()
	invite := &model.StaffInvite{RestaurantID: uuid.New(), Email: "a@b.com", Token: "tok", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, s.Invites().Create(ctx, invite))

	ok, err := s.Invites().MarkAccepted(ctx, invite.ID, time.Now())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Invites().MarkAccepted(ctx, invite.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, ok)
}
