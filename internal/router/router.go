package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"resmatic/internal/auth"
	"resmatic/internal/handler"
	"resmatic/internal/middleware"
	"resmatic/internal/model"
)

// Deps carries everything the route table needs.
type Deps struct {
	Verifier          middleware.AccessVerifier
	Denylist          auth.TokenStoreInterface
	Resolver          middleware.RoleResolver
	AuthHandler       *handler.AuthHandler
	RestaurantHandler *handler.RestaurantHandler
	InviteHandler     *handler.InviteHandler
}

var (
	ownerOnly      = []model.TenantRole{model.TenantRoleOwner}
	ownerOrManager = []model.TenantRole{model.TenantRoleOwner, model.TenantRoleManager}
)

// Register wires routes and middleware.
func Register(e *echo.Echo, d Deps) {
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger())
	e.Use(echomw.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	// Public routes
	api.POST("/auth/register", d.AuthHandler.Register)
	api.POST("/auth/login", d.AuthHandler.Login)
	api.POST("/auth/refresh", d.AuthHandler.Refresh)

	// Secured routes (require an access token)
	secured := api.Group("", middleware.AccessToken(d.Verifier, d.Denylist))

	secured.GET("/auth/me", d.AuthHandler.Me)
	secured.POST("/auth/logout", d.AuthHandler.Logout)
	secured.GET("/auth/admin-check", d.AuthHandler.AdminCheck, middleware.RequireGlobalRole(model.RoleAdmin))

	secured.POST("/restaurants", d.RestaurantHandler.Create)
	secured.GET("/restaurants", d.RestaurantHandler.List)
	secured.GET("/restaurants/archived", d.RestaurantHandler.ListArchived)

	tenant := func(roles ...model.TenantRole) echo.MiddlewareFunc {
		return middleware.RestaurantAccess(d.Resolver, roles...)
	}
	secured.GET("/restaurants/:id", d.RestaurantHandler.Get, tenant())
	secured.PATCH("/restaurants/:id", d.RestaurantHandler.Update, tenant(ownerOrManager...))
	secured.DELETE("/restaurants/:id", d.RestaurantHandler.Archive, tenant(ownerOnly...))

	secured.GET("/restaurants/:id/members", d.RestaurantHandler.ListMembers, tenant(ownerOrManager...))
	secured.PATCH("/restaurants/:id/members/:userId", d.RestaurantHandler.UpdateMember, tenant(ownerOnly...))
	secured.DELETE("/restaurants/:id/members/:userId", d.RestaurantHandler.RemoveMember, tenant(ownerOrManager...))

	secured.POST("/restaurants/:id/invites", d.InviteHandler.Create, tenant(ownerOrManager...))
	secured.GET("/restaurants/:id/invites", d.InviteHandler.ListPending, tenant(ownerOrManager...))
	secured.POST("/invites/accept", d.InviteHandler.Accept)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
