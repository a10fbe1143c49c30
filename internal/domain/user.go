package domain

import "time"

// UserRole enumerates operator roles. An operator may hold several.
type UserRole string

const (
	RoleAdmin       UserRole = "admin"
	RoleSales       UserRole = "sales"
	RolePricing     UserRole = "pricing"
	RoleOps         UserRole = "ops"
	RoleCollections UserRole = "collections"
	RoleFinance     UserRole = "finance"
)

// ValidRole reports whether r is a known role value.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleAdmin, RoleSales, RolePricing, RoleOps, RoleCollections, RoleFinance:
		return true
	}
	return false
}

// Operator models an internal account operating the tracker.
type Operator struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Roles        []UserRole
	RefPrefix    string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole reports whether the operator holds the given role.
func (o *Operator) HasRole(role UserRole) bool {
	for _, held := range o.Roles {
		if held == role {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the operator holds at least one of the
// given roles.
func (o *Operator) HasAnyRole(roles ...UserRole) bool {
	for _, role := range roles {
		if o.HasRole(role) {
			return true
		}
	}
	return false
}
