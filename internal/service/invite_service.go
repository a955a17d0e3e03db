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
	"resmatic/internal/events"
	"resmatic/internal/metrics"
	"resmatic/internal/model"
	"resmatic/internal/repository"
)

const (
	// DefaultInviteTTL is how long an invite stays redeemable.
	DefaultInviteTTL = 7 * 24 * time.Hour
	inviteTokenBytes = 32
)

// InviteService creates and redeems staff invites.
type InviteService interface {
	Create(ctx context.Context, actorID, restaurantID uuid.UUID, email string, role model.TenantRole) (*model.StaffInvite, error)
	Accept(ctx context.Context, userID uuid.UUID, userEmail, token string) (uuid.UUID, error)
	ListPending(ctx context.Context, restaurantID uuid.UUID) ([]model.StaffInvite, error)
}

// InviteConfig holds the invite policy.
type InviteConfig struct {
	TTL time.Duration
	Now func() time.Time
}

type inviteService struct {
	store     repository.Store
	publisher events.Publisher
	recorder  audit.Recorder
	cfg       InviteConfig
}

// NewInviteService creates an InviteService.
func NewInviteService(store repository.Store, publisher events.Publisher, recorder audit.Recorder, cfg InviteConfig) InviteService {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultInviteTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if recorder == nil {
		recorder = audit.NopRecorder{}
	}
	return &inviteService{store: store, publisher: publisher, recorder: recorder, cfg: cfg}
}

// Create stores a new invite. The target email does not need to belong to a
// registered user; it is only checked on acceptance.
func (s *inviteService) Create(ctx context.Context, actorID, restaurantID uuid.UUID, email string, role model.TenantRole) (*model.StaffInvite, error) {
	if !role.Assignable() {
		return nil, apperrors.ErrInvalidTenantRole
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apperrors.ErrInvalidInput
	}

	if _, err := s.store.Restaurants().FindByID(ctx, restaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("find restaurant: %w", err)
	}

	token, err := auth.RandomToken(inviteTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("generate invite token: %w", err)
	}

	now := s.cfg.Now()
	invite := &model.StaffInvite{
		RestaurantID: restaurantID,
		Email:        email,
		TenantRole:   role,
		Token:        token,
		ExpiresAt:    now.Add(s.cfg.TTL),
		CreatedAt:    now,
	}
	err = s.store.Invites().Create(ctx, invite)
	metrics.Invites.WithLabelValues("create", metrics.Outcome(err)).Inc()
	if err != nil {
		return nil, fmt.Errorf("create invite: %w", err)
	}

	err = s.publisher.PublishInviteCreated(ctx, events.InviteCreatedEvent{
		InviteID:     invite.ID,
		RestaurantID: restaurantID,
		Email:        email,
		TenantRole:   role,
		Token:        token,
		ExpiresAt:    invite.ExpiresAt,
		InvitedBy:    actorID,
	})
	if err != nil {
		log.Warn().Err(err).Str("invite_id", invite.ID.String()).Msg("publish invite event failed")
	}

	s.recorder.Record(audit.Event{
		ActorID:      audit.Ptr(actorID),
		RestaurantID: audit.Ptr(restaurantID),
		Action:       audit.ActionInviteCreated,
		TargetType:   "invite",
		TargetID:     invite.ID.String(),
		Metadata:     map[string]string{"email": email, "role": string(role)},
	})
	return invite, nil
}

// Accept redeems token for the user. Membership creation and invite
// consumption commit together. Every rejection is ErrInviteNotFound so a
// caller cannot probe which invites exist.
func (s *inviteService) Accept(ctx context.Context, userID uuid.UUID, userEmail, token string) (uuid.UUID, error) {
	if userEmail == "" {
		user, err := s.store.Users().FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return uuid.Nil, apperrors.ErrInviteNotFound
			}
			return uuid.Nil, fmt.Errorf("find user: %w", err)
		}
		userEmail = user.Email
	}

	var restaurantID uuid.UUID
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		invite, err := tx.Invites().FindByToken(ctx, token)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrInviteNotFound
			}
			return fmt.Errorf("find invite: %w", err)
		}

		now := s.cfg.Now()
		if !invite.Redeemable(userEmail, now) {
			return apperrors.ErrInviteNotFound
		}
		if _, err := tx.Restaurants().FindByID(ctx, invite.RestaurantID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrInviteNotFound
			}
			return fmt.Errorf("find restaurant: %w", err)
		}

		_, err = tx.Members().Find(ctx, invite.RestaurantID, userID)
		switch {
		case err == nil:
			// an existing membership is kept as it is
		case errors.Is(err, gorm.ErrRecordNotFound):
			member := &model.RestaurantMember{
				RestaurantID: invite.RestaurantID,
				UserID:       userID,
				TenantRole:   invite.TenantRole,
			}
			if err := tx.Members().Create(ctx, member); err != nil {
				return fmt.Errorf("create membership: %w", err)
			}
		default:
			return fmt.Errorf("find membership: %w", err)
		}

		consumed, err := tx.Invites().MarkAccepted(ctx, invite.ID, now)
		if err != nil {
			return fmt.Errorf("mark invite accepted: %w", err)
		}
		if !consumed {
			return apperrors.ErrInviteNotFound
		}
		restaurantID = invite.RestaurantID
		return nil
	})
	metrics.Invites.WithLabelValues("accept", metrics.Outcome(err)).Inc()
	if err != nil {
		return uuid.Nil, err
	}

	s.recorder.Record(audit.Event{
		ActorID:      audit.Ptr(userID),
		RestaurantID: audit.Ptr(restaurantID),
		Action:       audit.ActionInviteAccepted,
		TargetType:   "user",
		TargetID:     userID.String(),
	})
	return restaurantID, nil
}

// ListPending returns unaccepted, unexpired invites for the restaurant.
func (s *inviteService) ListPending(ctx context.Context, restaurantID uuid.UUID) ([]model.StaffInvite, error) {
	invites, err := s.store.Invites().ListPending(ctx, restaurantID, s.cfg.Now())
	if err != nil {
		return nil, fmt.Errorf("list invites: %w", err)
	}
	return invites, nil
}
