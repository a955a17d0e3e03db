package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	apperrors "resmatic/internal/errors"
	"resmatic/internal/model"
)

const (
	// DefaultAccessTokenExpiry is used when no access lifetime is configured.
	DefaultAccessTokenExpiry = 15 * time.Minute
	// DefaultRefreshTokenExpiry is used when no refresh lifetime is configured.
	DefaultRefreshTokenExpiry = 7 * 24 * time.Hour
)

// AccessToken is a signed access JWT. It cannot be passed where a
// RefreshToken is expected.
type AccessToken string

// RefreshToken is a signed refresh JWT.
type RefreshToken string

// Kind tells the two token kinds apart inside the claims.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// Identity is the claim set carried by both token kinds.
type Identity struct {
	SubjectID uuid.UUID        `json:"sub_id"`
	Email     string           `json:"email"`
	Role      model.GlobalRole `json:"role"`
}

// IdentityOf builds the claim set for a user.
func IdentityOf(u *model.User) Identity {
	return Identity{SubjectID: u.ID, Email: u.Email, Role: u.Role}
}

// Claims represents JWT claims.
type Claims struct {
	Identity
	Kind Kind `json:"kind"`
	jwt.RegisteredClaims
}

// TokenPair is the result of a successful issuance.
type TokenPair struct {
	AccessToken      AccessToken  `json:"access_token"`
	RefreshToken     RefreshToken `json:"refresh_token"`
	AccessExpiresAt  time.Time    `json:"access_expires_at"`
	RefreshExpiresAt time.Time    `json:"refresh_expires_at"`
}

// JWTService mints and verifies access and refresh tokens. Each kind has its
// own secret and lifetime.
type JWTService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewJWTService creates a new JWT service. The two secrets must differ.
func NewJWTService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) (*JWTService, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, errors.New("jwt secrets must not be empty")
	}
	if accessSecret == refreshSecret {
		return nil, errors.New("access and refresh secrets must differ")
	}
	return &JWTService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

// AccessTTL returns the configured access token lifetime.
func (s *JWTService) AccessTTL() time.Duration { return s.accessTTL }

// RefreshTTL returns the configured refresh token lifetime.
func (s *JWTService) RefreshTTL() time.Duration { return s.refreshTTL }

// Issue signs a new access/refresh pair for the identity.
func (s *JWTService) Issue(id Identity) (TokenPair, error) {
	now := time.Now()

	access, accessExp, err := s.sign(id, KindAccess, s.accessSecret, now, s.accessTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}
	refresh, refreshExp, err := s.sign(id, KindRefresh, s.refreshSecret, now, s.refreshTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}

	return TokenPair{
		AccessToken:      AccessToken(access),
		RefreshToken:     RefreshToken(refresh),
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// VerifyAccess validates an access token and returns its claims.
func (s *JWTService) VerifyAccess(token AccessToken) (*Claims, error) {
	return s.verify(string(token), KindAccess, s.accessSecret)
}

// VerifyRefresh validates a refresh token and returns its claims.
func (s *JWTService) VerifyRefresh(token RefreshToken) (*Claims, error) {
	return s.verify(string(token), KindRefresh, s.refreshSecret)
}

func (s *JWTService) sign(id Identity, kind Kind, secret []byte, now time.Time, ttl time.Duration) (string, time.Time, error) {
	exp := now.Add(ttl)
	claims := &Claims{
		Identity: id,
		Kind:     kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        generateTokenID(),
			Subject:   id.SubjectID.String(),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	return signed, exp, err
}

func (s *JWTService) verify(tokenString string, kind Kind, secret []byte) (*Claims, error) {
	if tokenString == "" {
		return nil, apperrors.ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	if claims.Kind != kind || claims.ID == "" || claims.SubjectID == uuid.Nil {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}

// generateTokenID generates a unique token ID (jti).
func generateTokenID() string {
	return uuid.New().String()
}
