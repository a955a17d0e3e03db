// Package seed creates the bootstrap administrator.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"resmatic/internal/auth"
	"resmatic/internal/model"
	"resmatic/internal/repository"
)

// Admin makes sure a global ADMIN with email exists. An existing user with
// that email is promoted and keeps its password. Running it twice is safe.
func Admin(ctx context.Context, store repository.Store, email, password string, cost int) (*model.User, error) {
	if email == "" || password == "" {
		return nil, errors.New("seed admin: email and password are required")
	}

	existing, err := store.Users().FindByEmail(ctx, email)
	switch {
	case err == nil:
		if !existing.IsAdmin() {
			if err := store.Users().UpdateRole(ctx, existing.ID, model.RoleAdmin); err != nil {
				return nil, fmt.Errorf("promote admin: %w", err)
			}
			existing.Role = model.RoleAdmin
			log.Info().Str("email", existing.Email).Msg("existing user promoted to admin")
		}
		return existing, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("find admin: %w", err)
	}

	hash, err := auth.HashPassword(password, cost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	admin := &model.User{
		Email:        email,
		Name:         "Administrator",
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := store.Users().Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	log.Info().Str("email", admin.Email).Msg("admin user created")
	return admin, nil
}
