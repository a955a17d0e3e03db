package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.InviteTTL)
	assert.Equal(t, 0, cfg.MaxSessions)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "staff.invite.created", cfg.InviteQueue)
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"DB_DRIVER":              "memory",
		"JWT_ACCESS_EXPIRES_IN":  "30s",
		"JWT_REFRESH_EXPIRES_IN": "12h",
		"AUTH_MAX_SESSIONS":      "-3",
	}))
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.DBDriver)
	assert.Equal(t, 30*time.Second, cfg.AccessTTL)
	assert.Equal(t, 12*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, 0, cfg.MaxSessions)
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad access duration", map[string]string{"JWT_ACCESS_EXPIRES_IN": "15 minutes"}},
		{"zero access duration", map[string]string{"JWT_ACCESS_EXPIRES_IN": "0m"}},
		{"overflowing refresh duration", map[string]string{"JWT_REFRESH_EXPIRES_IN": "106752d"}},
		{"bad invite duration", map[string]string{"INVITE_EXPIRES_IN": "1w"}},
		{"shared secret", map[string]string{"JWT_ACCESS_SECRET": "same", "JWT_REFRESH_SECRET": "same"}},
		{"unknown driver", map[string]string{"DB_DRIVER": "sqlite"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(context.Background(), envconfig.MapLookuper(tt.env))
			assert.Error(t, err)
		})
	}
}
