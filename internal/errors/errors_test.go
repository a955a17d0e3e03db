package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid credentials", ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"wrapped expired token", fmt.Errorf("refresh: %w", ErrTokenExpired), http.StatusUnauthorized, "TOKEN_EXPIRED"},
		{"forbidden", ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"invite not found", ErrInviteNotFound, http.StatusNotFound, "INVITE_NOT_FOUND"},
		{"owner immutable", ErrOwnerImmutable, http.StatusConflict, "OWNER_IMMUTABLE"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			he := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, he.StatusCode)
			assert.Equal(t, tt.wantCode, he.ToErrorResponse().Code)
		})
	}
}

func TestMapErrorToHTTP_HidesInternalMessage(t *testing.T) {
	he := MapErrorToHTTP(fmt.Errorf("dial tcp 10.0.0.1:3306: connection refused"))
	assert.Equal(t, "internal server error", he.Message)
}
