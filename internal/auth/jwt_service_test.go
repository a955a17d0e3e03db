package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "resmatic/internal/errors"
	"resmatic/internal/model"
)

func newTestJWTService(t *testing.T, accessTTL, refreshTTL time.Duration) *JWTService {
	t.Helper()
	svc, err := NewJWTService("test-access-secret", "test-refresh-secret", accessTTL, refreshTTL)
	require.NoError(t, err)
	return svc
}

func testIdentity() Identity {
	return Identity{SubjectID: uuid.New(), Email: "owner@example.com", Role: model.RoleUser}
}

func TestNewJWTService_RejectsSharedSecret(t *testing.T) {
	_, err := NewJWTService("same", "same", time.Minute, time.Hour)
	assert.Error(t, err)

	_, err = NewJWTService("", "other", time.Minute, time.Hour)
	assert.Error(t, err)
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc := newTestJWTService(t, 15*time.Minute, 7*24*time.Hour)
	id := testIdentity()

	pair, err := svc.Issue(id)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.RefreshExpiresAt.After(pair.AccessExpiresAt))

	access, err := svc.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, id.SubjectID, access.SubjectID)
	assert.Equal(t, id.Email, access.Email)
	assert.Equal(t, model.RoleUser, access.Role)
	assert.Equal(t, KindAccess, access.Kind)

	refresh, err := svc.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, id.SubjectID, refresh.SubjectID)
	assert.NotEqual(t, access.ID, refresh.ID)
}

func TestJWTService_TokensAreNotInterchangeable(t *testing.T) {
	svc := newTestJWTService(t, 15*time.Minute, time.Hour)
	pair, err := svc.Issue(testIdentity())
	require.NoError(t, err)

	_, err = svc.VerifyRefresh(RefreshToken(pair.AccessToken))
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	_, err = svc.VerifyAccess(AccessToken(pair.RefreshToken))
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestJWTService_EveryIssuanceIsDistinct(t *testing.T) {
	svc := newTestJWTService(t, 15*time.Minute, time.Hour)
	id := testIdentity()

	first, err := svc.Issue(id)
	require.NoError(t, err)
	second, err := svc.Issue(id)
	require.NoError(t, err)

	assert.NotEqual(t, first.AccessToken, second.AccessToken)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
}

func TestJWTService_Expired(t *testing.T) {
	svc := newTestJWTService(t, -time.Minute, -time.Minute)
	pair, err := svc.Issue(testIdentity())
	require.NoError(t, err)

	_, err = svc.VerifyAccess(pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)

	_, err = svc.VerifyRefresh(pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestJWTService_Malformed(t *testing.T) {
	svc := newTestJWTService(t, time.Minute, time.Hour)

	for _, raw := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := svc.VerifyAccess(AccessToken(raw))
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken, raw)
	}
}

func TestJWTService_ForeignSecret(t *testing.T) {
	svc := newTestJWTService(t, time.Minute, time.Hour)
	other, err := NewJWTService("another-access", "another-refresh", time.Minute, time.Hour)
	require.NoError(t, err)

	pair, err := other.Issue(testIdentity())
	require.NoError(t, err)

	_, err = svc.VerifyAccess(pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
