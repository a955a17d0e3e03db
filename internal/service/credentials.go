package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"resmatic/internal/auth"
	"resmatic/internal/model"
	"resmatic/internal/repository"
)

// CredentialVerifier checks an email/password pair against stored users.
type CredentialVerifier struct {
	users repository.UserRepository
}

// NewCredentialVerifier creates a CredentialVerifier.
func NewCredentialVerifier(users repository.UserRepository) *CredentialVerifier {
	return &CredentialVerifier{users: users}
}

// Verify returns the user and true when the password matches. An unknown
// email and a wrong password both return (nil, false, nil) and cost one
// bcrypt comparison each. err is only set for storage failures.
func (v *CredentialVerifier) Verify(ctx context.Context, email, password string) (*model.User, bool, error) {
	user, err := v.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			auth.BurnPasswordCheck(password)
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("find user: %w", err)
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, false, nil
	}
	return user, true, nil
}
