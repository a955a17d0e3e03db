package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"resmatic/internal/audit"
	"resmatic/internal/auth"
	apperrors "resmatic/internal/errors"
	"resmatic/internal/metrics"
	"resmatic/internal/model"
	"resmatic/internal/repository"
)

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Refresh(ctx context.Context, token auth.RefreshToken) (*LoginResult, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	Me(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

// LoginResult is returned by Login and Refresh.
type LoginResult struct {
	User   *model.User    `json:"user"`
	Tokens auth.TokenPair `json:"tokens"`
}

// AuthConfig holds the session policy.
type AuthConfig struct {
	// MaxSessions caps active refresh sessions per user. Zero means unlimited.
	MaxSessions int
	BcryptCost  int
	Now         func() time.Time
}

type authService struct {
	store      repository.Store
	verifier   *CredentialVerifier
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	recorder   audit.Recorder
	cfg        AuthConfig
}

// NewAuthService creates a new authentication service.
func NewAuthService(store repository.Store, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface, recorder audit.Recorder, cfg AuthConfig) AuthService {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.BcryptCost <= 0 {
		cfg.BcryptCost = auth.DefaultBcryptCost
	}
	if recorder == nil {
		recorder = audit.NopRecorder{}
	}
	return &authService{
		store:      store,
		verifier:   NewCredentialVerifier(store.Users()),
		jwtService: jwtService,
		tokenStore: tokenStore,
		recorder:   recorder,
		cfg:        cfg,
	}
}

// Register creates a USER account with a hashed password.
func (s *authService) Register(ctx context.Context, email, password, name string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.store.Users().FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hash, err := auth.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		Role:         model.RoleUser,
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	metrics.AuthEvents.WithLabelValues("register", metrics.OK).Inc()
	s.recorder.Record(audit.Event{
		ActorID:    audit.Ptr(user.ID),
		Action:     audit.ActionUserRegistered,
		TargetType: "user",
		TargetID:   user.ID.String(),
	})
	return user, nil
}

// Login verifies credentials, issues a token pair and opens a session.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, ok, err := s.verifier.Verify(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		metrics.AuthEvents.WithLabelValues("login", metrics.Fail).Inc()
		return nil, apperrors.ErrInvalidCredentials
	}

	var tokens auth.TokenPair
	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		tokens, err = s.openSession(ctx, tx, user)
		return err
	})
	metrics.AuthEvents.WithLabelValues("login", metrics.Outcome(err)).Inc()
	if err != nil {
		return nil, err
	}

	s.recorder.Record(audit.Event{
		ActorID:    audit.Ptr(user.ID),
		Action:     audit.ActionUserLoggedIn,
		TargetType: "user",
		TargetID:   user.ID.String(),
	})
	return &LoginResult{User: user, Tokens: tokens}, nil
}

// Refresh rotates a refresh token. The presented token is revoked and can
// never be used again; a new pair is issued in the same transaction.
func (s *authService) Refresh(ctx context.Context, token auth.RefreshToken) (*LoginResult, error) {
	claims, err := s.jwtService.VerifyRefresh(token)
	if err != nil {
		metrics.AuthEvents.WithLabelValues("refresh", metrics.Fail).Inc()
		return nil, err
	}

	user, err := s.store.Users().FindByID(ctx, claims.SubjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	sessions := NewSessionStore(s.store.RefreshTokens(), s.cfg.Now)
	record, err := sessions.FindValid(ctx, user.ID, token)
	if err != nil {
		if errors.Is(err, errSessionNotFound) {
			metrics.AuthEvents.WithLabelValues("refresh", metrics.Fail).Inc()
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}

	// The stored expiry can trail the signed one when clocks or lifetimes change.
	if !record.ExpiresAt.After(s.cfg.Now()) {
		if _, err := sessions.Revoke(ctx, record.ID); err != nil {
			return nil, err
		}
		metrics.AuthEvents.WithLabelValues("refresh", metrics.Fail).Inc()
		return nil, apperrors.ErrTokenExpired
	}

	var tokens auth.TokenPair
	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		revoked, err := NewSessionStore(tx.RefreshTokens(), s.cfg.Now).Revoke(ctx, record.ID)
		if err != nil {
			return err
		}
		if !revoked {
			return apperrors.ErrInvalidToken
		}
		tokens, err = s.openSession(ctx, tx, user)
		return err
	})
	metrics.AuthEvents.WithLabelValues("refresh", metrics.Outcome(err)).Inc()
	if err != nil {
		return nil, err
	}

	s.recorder.Record(audit.Event{
		ActorID:    audit.Ptr(user.ID),
		Action:     audit.ActionSessionRefreshed,
		TargetType: "session",
		TargetID:   record.ID.String(),
	})
	return &LoginResult{User: user, Tokens: tokens}, nil
}

// Logout revokes every session of the caller and denylists the access token
// that made the call until it would have expired anyway.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return apperrors.ErrInvalidToken
	}

	n, err := NewSessionStore(s.store.RefreshTokens(), s.cfg.Now).RevokeAll(ctx, claims.SubjectID)
	if err != nil {
		return err
	}

	if claims.ExpiresAt != nil && s.tokenStore != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if err := s.tokenStore.BlacklistAccessToken(ctx, claims.ID, ttl); err != nil {
			log.Warn().Err(err).Str("jti", claims.ID).Msg("failed to denylist access token")
		}
	}

	metrics.AuthEvents.WithLabelValues("logout", metrics.OK).Inc()
	s.recorder.Record(audit.Event{
		ActorID:    audit.Ptr(claims.SubjectID),
		Action:     audit.ActionUserLoggedOut,
		TargetType: "user",
		TargetID:   claims.SubjectID.String(),
		Metadata:   map[string]int64{"sessions_revoked": n},
	})
	return nil
}

// Me returns the current user.
func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// openSession issues a pair, stores the refresh half and applies the cap.
func (s *authService) openSession(ctx context.Context, tx repository.Store, user *model.User) (auth.TokenPair, error) {
	tokens, err := s.jwtService.Issue(auth.IdentityOf(user))
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("issue tokens: %w", err)
	}

	sessions := NewSessionStore(tx.RefreshTokens(), s.cfg.Now)
	expiresAt := s.cfg.Now().Add(s.jwtService.RefreshTTL())
	if _, err := sessions.Store(ctx, user.ID, tokens.RefreshToken, expiresAt); err != nil {
		return auth.TokenPair{}, err
	}
	if err := sessions.EnforceSessionLimit(ctx, user.ID, s.cfg.MaxSessions); err != nil {
		return auth.TokenPair{}, err
	}
	return tokens, nil
}
