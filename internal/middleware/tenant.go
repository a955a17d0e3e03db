package middleware

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "resmatic/internal/errors"
	"resmatic/internal/metrics"
	"resmatic/internal/model"
	"resmatic/internal/rbac"
)

const tenantRoleKey = "tenantRole"

// RoleResolver resolves a caller's role inside a restaurant.
type RoleResolver interface {
	Resolve(ctx context.Context, userID, restaurantID uuid.UUID) (model.TenantRole, error)
}

// RestaurantAccess gates a route on the caller's role in the restaurant named
// by the :id (or :restaurantId) path parameter. With no roles any member or
// the owner is admitted. Routes without the parameter are not tenant scoped.
func RestaurantAccess(resolver RoleResolver, roles ...model.TenantRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return Respond(apperrors.ErrInvalidToken)
			}

			param := c.Param("id")
			if param == "" {
				param = c.Param("restaurantId")
			}
			meta := rbac.RouteMeta{TenantScoped: param != "", Required: roles}

			tenant := model.TenantRoleNone
			if meta.TenantScoped && claims.Role != model.RoleAdmin {
				restaurantID, err := uuid.Parse(param)
				if err != nil {
					return Respond(apperrors.ErrInvalidInput)
				}
				tenant, err = resolver.Resolve(c.Request().Context(), claims.SubjectID, restaurantID)
				if err != nil {
					return Respond(err)
				}
			}

			decision := rbac.Decide(claims.Role, tenant, meta)
			metrics.AccessDecisions.WithLabelValues(decision.String()).Inc()
			if decision != rbac.Allow {
				return Respond(apperrors.ErrForbidden)
			}

			c.Set(tenantRoleKey, tenant)
			return next(c)
		}
	}
}

// TenantRoleFrom returns the role resolved by RestaurantAccess. Admins get
// TenantRoleNone.
func TenantRoleFrom(c echo.Context) model.TenantRole {
	role, _ := c.Get(tenantRoleKey).(model.TenantRole)
	return role
}
