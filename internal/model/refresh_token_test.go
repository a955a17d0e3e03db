package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshToken_BeforeCreateIDsAreOrdered(t *testing.T) {
	var prev string
	for i := 0; i < 50; i++ {
		tok := &RefreshToken{}
		require.NoError(t, tok.BeforeCreate(nil))
		id := tok.ID.String()
		assert.Greater(t, id, prev)
		prev = id
	}
}

func TestRefreshToken_BeforeCreateKeepsID(t *testing.T) {
	id, err := NewSessionID()
	require.NoError(t, err)
	tok := &RefreshToken{ID: id}
	require.NoError(t, tok.BeforeCreate(nil))
	assert.Equal(t, id, tok.ID)
}
