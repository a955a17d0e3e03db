// Package middleware holds the echo middleware that authenticates callers
// and gates routes by global and tenant role.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"resmatic/internal/auth"
	apperrors "resmatic/internal/errors"
	"resmatic/internal/model"
)

const claimsKey = "user"

// AccessVerifier verifies access tokens.
type AccessVerifier interface {
	VerifyAccess(token auth.AccessToken) (*auth.Claims, error)
}

// AccessToken authenticates the bearer access token and stores its claims in
// the context. Tokens on the logout denylist are rejected.
func AccessToken(verifier AccessVerifier, denylist auth.TokenStoreInterface) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  claimsKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, err := verifier.VerifyAccess(auth.AccessToken(strings.TrimSpace(token)))
			if err != nil {
				return nil, err
			}
			if denylist != nil {
				revoked, err := denylist.IsAccessTokenBlacklisted(c.Request().Context(), claims.ID)
				if err != nil {
					log.Warn().Err(err).Msg("denylist lookup failed")
				}
				if revoked {
					return nil, apperrors.ErrInvalidToken
				}
			}
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, apperrors.ErrTokenExpired) {
				return Respond(apperrors.ErrTokenExpired)
			}
			return Respond(apperrors.ErrInvalidToken)
		},
	})
}

// ClaimsFrom returns the claims stored by AccessToken.
func ClaimsFrom(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(claimsKey).(*auth.Claims)
	return claims, ok && claims != nil
}

// RequireGlobalRole admits callers whose global role is one of roles.
func RequireGlobalRole(roles ...model.GlobalRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return Respond(apperrors.ErrInvalidToken)
			}
			for _, r := range roles {
				if claims.Role == r {
					return next(c)
				}
			}
			return Respond(apperrors.ErrForbidden)
		}
	}
}

// Respond converts err into an echo error carrying an ErrorResponse body.
func Respond(err error) *echo.HTTPError {
	he := apperrors.MapErrorToHTTP(err)
	if he.StatusCode >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}
