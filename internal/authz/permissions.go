package authz

import (
	"strings"

	"github.com/spec-kit/freight-ops/internal/domain"
)

// pagePermissions maps each role to the path prefixes it may open.
// Access is granted if any held role permits the path.
var pagePermissions = map[domain.UserRole][]string{
	domain.RoleAdmin: {"/"},
	domain.RoleSales: {
		"/shipments",
		"/contacts",
		"/reports/commission-estimates",
	},
	domain.RolePricing: {
		"/shipments",
		"/pricing",
	},
	domain.RoleOps: {
		"/shipments",
		"/operations",
		"/reports/payables",
	},
	domain.RoleCollections: {
		"/shipments",
		"/collections",
		"/reports/collections",
	},
	domain.RoleFinance: {
		"/shipments",
		"/reports",
		"/commission-rules",
	},
}

// readOnlyFields lists server-computed or derived fields no role may
// edit directly.
var readOnlyFields = map[string]struct{}{
	"referenceId":        {},
	"grossProfit":        {},
	"totalProfit":        {},
	"totalInvoiceAmount": {},
	"createdAt":          {},
	"updatedAt":          {},
	"completedAt":        {},
}

// hiddenFields lists per-role hidden field names. Every non-admin role
// hides the commission figures, so they end up visible to admin only.
var hiddenFields = map[domain.UserRole][]string{
	domain.RoleAdmin: {},
	domain.RoleSales: {
		"commissionAmount",
		"commissionPercentage",
		"commissionFormula",
	},
	domain.RolePricing: {
		"commissionAmount",
		"commissionPercentage",
		"commissionFormula",
	},
	domain.RoleOps: {
		"commissionAmount",
		"commissionPercentage",
		"commissionFormula",
		"sellingPricePerUnit",
		"costPerUnit",
	},
	domain.RoleCollections: {
		"commissionAmount",
		"commissionPercentage",
		"commissionFormula",
		"costPerUnit",
	},
	domain.RoleFinance: {
		"commissionAmount",
		"commissionPercentage",
		"commissionFormula",
	},
}

// CanAccessPage reports whether any held role permits the path.
func CanAccessPage(roles []domain.UserRole, path string) bool {
	for _, role := range roles {
		for _, prefix := range pagePermissions[role] {
			if strings.HasPrefix(path, prefix) {
				return true
			}
		}
	}
	return false
}

// IsFieldReadOnly reports whether the field is globally read-only.
func IsFieldReadOnly(field string) bool {
	_, readonly := readOnlyFields[field]
	return readonly
}

// HiddenFields returns the effective hidden-field set for a role set: a
// field stays hidden only if every held role hides it, so the most
// permissive role wins. An empty role set hides every role-gated field.
func HiddenFields(roles []domain.UserRole) map[string]struct{} {
	if len(roles) == 0 {
		hidden := make(map[string]struct{})
		for _, fields := range hiddenFields {
			for _, field := range fields {
				hidden[field] = struct{}{}
			}
		}
		return hidden
	}

	hidden := make(map[string]struct{})
	for _, field := range hiddenFields[roles[0]] {
		hidden[field] = struct{}{}
	}
	for _, role := range roles[1:] {
		roleSet := make(map[string]struct{}, len(hiddenFields[role]))
		for _, field := range hiddenFields[role] {
			roleSet[field] = struct{}{}
		}
		for field := range hidden {
			if _, stillHidden := roleSet[field]; !stillHidden {
				delete(hidden, field)
			}
		}
	}
	return hidden
}

// CanSeeShipment applies the ownership filter: an operator holding only
// the sales role sees shipments whose reference id carries their prefix;
// any other held role grants visibility to all shipments.
func CanSeeShipment(shipment *domain.Shipment, roles []domain.UserRole, refPrefix string) bool {
	if len(roles) == 0 {
		return false
	}
	salesOnly := true
	for _, role := range roles {
		if role != domain.RoleSales {
			salesOnly = false
			break
		}
	}
	if !salesOnly {
		return true
	}
	if refPrefix == "" {
		return false
	}
	return strings.HasPrefix(shipment.ReferenceID, refPrefix+"-")
}
