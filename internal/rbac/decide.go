// Package rbac decides whether a caller may use a restaurant-scoped route.
package rbac

import "resmatic/internal/model"

// Decision is the outcome of an access check.
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// RouteMeta describes what a route requires. Required lists the tenant roles
// allowed on the route; an empty list admits any member of the restaurant.
type RouteMeta struct {
	TenantScoped bool
	Required     []model.TenantRole
}

var rank = map[model.TenantRole]int{
	model.TenantRoleOwner:   3,
	model.TenantRoleManager: 2,
	model.TenantRoleWaiter:  1,
}

// Rank returns the privilege rank of a tenant role, or 0 if it has none.
func Rank(r model.TenantRole) int {
	if !r.Valid() {
		return 0
	}
	return rank[r]
}

// Decide applies the access rules in order:
//
//  1. a global ADMIN is always allowed
//  2. a route with no restaurant in scope is allowed
//  3. a caller with no role in the restaurant is denied
//  4. an empty requirement admits any role
//  5. otherwise the caller's rank must reach the lowest required rank
//
// Unknown required roles are ignored; if none are left the route is closed.
func Decide(global model.GlobalRole, tenant model.TenantRole, route RouteMeta) Decision {
	if global == model.RoleAdmin {
		return Allow
	}
	if !route.TenantScoped {
		return Allow
	}
	callerRank := Rank(tenant)
	if callerRank == 0 {
		return Deny
	}
	if len(route.Required) == 0 {
		return Allow
	}

	minRequired := 0
	for _, r := range route.Required {
		if rk := Rank(r); rk > 0 && (minRequired == 0 || rk < minRequired) {
			minRequired = rk
		}
	}
	if minRequired == 0 {
		return Deny
	}
	if callerRank >= minRequired {
		return Allow
	}
	return Deny
}
