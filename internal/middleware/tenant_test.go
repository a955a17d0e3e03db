package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resmatic/internal/auth"
	"resmatic/internal/model"
	"resmatic/internal/rbac"
	"resmatic/internal/repository/memstore"
)

type fakeDenylist struct {
	revoked map[string]bool
}

func (f *fakeDenylist) BlacklistAccessToken(_ context.Context, tokenID string, _ time.Duration) error {
	f.revoked[tokenID] = true
	return nil
}

func (f *fakeDenylist) IsAccessTokenBlacklisted(_ context.Context, tokenID string) (bool, error) {
	return f.revoked[tokenID], nil
}

type accessFixture struct {
	e          *echo.Echo
	jwt        *auth.JWTService
	denylist   *fakeDenylist
	restaurant *model.Restaurant
	users      map[string]*model.User
}

func newAccessFixture(t *testing.T) *accessFixture {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()

	f := &accessFixture{
		e:        echo.New(),
		denylist: &fakeDenylist{revoked: map[string]bool{}},
		users:    map[string]*model.User{},
	}
	var err error
	f.jwt, err = auth.NewJWTService("mw-access", "mw-refresh", time.Minute, time.Hour)
	require.NoError(t, err)

	for _, name := range []string{"owner", "manager", "waiter", "stranger"} {
		u := &model.User{Email: name + "@x.local", Role: model.RoleUser}
		require.NoError(t, store.Users().Create(ctx, u))
		f.users[name] = u
	}
	admin := &model.User{Email: "admin@x.local", Role: model.RoleAdmin}
	require.NoError(t, store.Users().Create(ctx, admin))
	f.users["admin"] = admin

	f.restaurant = &model.Restaurant{Name: "Bistro", OwnerID: f.users["owner"].ID}
	require.NoError(t, store.Restaurants().Create(ctx, f.restaurant))
	for name, role := range map[string]model.TenantRole{"manager": model.TenantRoleManager, "waiter": model.TenantRoleWaiter} {
		require.NoError(t, store.Members().Create(ctx, &model.RestaurantMember{
			RestaurantID: f.restaurant.ID, UserID: f.users[name].ID, TenantRole: role,
		}))
	}

	resolver := rbac.NewResolver(store)
	ok := func(c echo.Context) error { return c.String(http.StatusOK, string(TenantRoleFrom(c))) }
	g := f.e.Group("", AccessToken(f.jwt, f.denylist))
	g.GET("/restaurants/:id", ok, RestaurantAccess(resolver))
	g.GET("/restaurants/:id/members", ok, RestaurantAccess(resolver, model.TenantRoleOwner, model.TenantRoleManager))
	g.DELETE("/restaurants/:id", ok, RestaurantAccess(resolver, model.TenantRoleOwner))
	g.GET("/restaurants", ok, RestaurantAccess(resolver, model.TenantRoleOwner))
	g.GET("/admin", ok, RequireGlobalRole(model.RoleAdmin))
	return f
}

func (f *accessFixture) token(t *testing.T, name string) string {
	t.Helper()
	pair, err := f.jwt.Issue(auth.IdentityOf(f.users[name]))
	require.NoError(t, err)
	return string(pair.AccessToken)
}

func (f *accessFixture) call(method, path, token string) int {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec.Code
}

func TestRestaurantAccess(t *testing.T) {
	f := newAccessFixture(t)
	base := "/restaurants/" + f.restaurant.ID.String()

	tests := []struct {
		name   string
		caller string
		method string
		path   string
		want   int
	}{
		{"owner reads", "owner", http.MethodGet, base, http.StatusOK},
		{"waiter reads", "waiter", http.MethodGet, base, http.StatusOK},
		{"stranger reads", "stranger", http.MethodGet, base, http.StatusForbidden},
		{"admin reads without membership", "admin", http.MethodGet, base, http.StatusOK},
		{"manager lists members", "manager", http.MethodGet, base + "/members", http.StatusOK},
		{"waiter lists members", "waiter", http.MethodGet, base + "/members", http.StatusForbidden},
		{"owner archives", "owner", http.MethodDelete, base, http.StatusOK},
		{"manager archives", "manager", http.MethodDelete, base, http.StatusForbidden},
		{"admin archives", "admin", http.MethodDelete, base, http.StatusOK},
		{"route without restaurant", "stranger", http.MethodGet, "/restaurants", http.StatusOK},
		{"malformed id", "owner", http.MethodGet, "/restaurants/not-a-uuid", http.StatusBadRequest},
		{"stranger on admin route", "stranger", http.MethodGet, "/admin", http.StatusForbidden},
		{"admin on admin route", "admin", http.MethodGet, "/admin", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.call(tt.method, tt.path, f.token(t, tt.caller)))
		})
	}
}

func TestAccessToken_Rejections(t *testing.T) {
	f := newAccessFixture(t)
	base := "/restaurants/" + f.restaurant.ID.String()

	assert.Equal(t, http.StatusUnauthorized, f.call(http.MethodGet, base, ""))
	assert.Equal(t, http.StatusUnauthorized, f.call(http.MethodGet, base, "garbage"))

	pair, err := f.jwt.Issue(auth.IdentityOf(f.users["owner"]))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, f.call(http.MethodGet, base, string(pair.RefreshToken)))

	claims, err := f.jwt.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, f.call(http.MethodGet, base, string(pair.AccessToken)))
	f.denylist.revoked[claims.ID] = true
	assert.Equal(t, http.StatusUnauthorized, f.call(http.MethodGet, base, string(pair.AccessToken)))
}
