package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"resmatic/internal/model"
)

func TestDecide(t *testing.T) {
	ownerOrManager := RouteMeta{TenantScoped: true, Required: []model.TenantRole{model.TenantRoleOwner, model.TenantRoleManager}}
	ownerOnly := RouteMeta{TenantScoped: true, Required: []model.TenantRole{model.TenantRoleOwner}}
	anyMember := RouteMeta{TenantScoped: true}

	tests := []struct {
		name   string
		global model.GlobalRole
		tenant model.TenantRole
		route  RouteMeta
		want   Decision
	}{
		{"admin bypasses without tenant role", model.RoleAdmin, model.TenantRoleNone, ownerOnly, Allow},
		{"route without restaurant", model.RoleUser, model.TenantRoleNone, RouteMeta{}, Allow},
		{"no tenant role", model.RoleUser, model.TenantRoleNone, anyMember, Deny},
		{"empty requirement admits waiter", model.RoleUser, model.TenantRoleWaiter, anyMember, Allow},
		{"waiter below manager", model.RoleUser, model.TenantRoleWaiter, ownerOrManager, Deny},
		{"manager meets manager", model.RoleUser, model.TenantRoleManager, ownerOrManager, Allow},
		{"owner above manager", model.RoleUser, model.TenantRoleOwner, ownerOrManager, Allow},
		{"manager below owner", model.RoleUser, model.TenantRoleManager, ownerOnly, Deny},
		{"owner meets waiter route", model.RoleUser, model.TenantRoleOwner, RouteMeta{TenantScoped: true, Required: []model.TenantRole{model.TenantRoleWaiter}}, Allow},
		{"unknown required roles ignored", model.RoleUser, model.TenantRoleManager, RouteMeta{TenantScoped: true, Required: []model.TenantRole{"CHEF", model.TenantRoleManager}}, Allow},
		{"only unknown required roles", model.RoleUser, model.TenantRoleOwner, RouteMeta{TenantScoped: true, Required: []model.TenantRole{"CHEF"}}, Deny},
		{"unknown caller role", model.RoleUser, "CHEF", anyMember, Deny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.global, tt.tenant, tt.route))
		})
	}
}

func TestDecide_Monotonic(t *testing.T) {
	roles := []model.TenantRole{model.TenantRoleWaiter, model.TenantRoleManager, model.TenantRoleOwner}
	for _, required := range roles {
		route := RouteMeta{TenantScoped: true, Required: []model.TenantRole{required}}
		allowed := false
		for _, caller := range roles {
			d := Decide(model.RoleUser, caller, route)
			if allowed {
				assert.Equal(t, Allow, d, "higher role %s must keep access to %s route", caller, required)
			}
			allowed = d == Allow
		}
	}
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "allow", Allow.String())
	assert.Equal(t, "deny", Deny.String())
}

func TestRank(t *testing.T) {
	assert.Equal(t, 3, Rank(model.TenantRoleOwner))
	assert.Equal(t, 2, Rank(model.TenantRoleManager))
	assert.Equal(t, 1, Rank(model.TenantRoleWaiter))
	assert.Equal(t, 0, Rank(model.TenantRoleNone))
	assert.Equal(t, 0, Rank(model.TenantRole("CHEF")))
}
