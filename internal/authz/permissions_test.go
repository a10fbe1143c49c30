package authz

import (
	"testing"

	"github.com/spec-kit/freight-ops/internal/domain"
)

func TestCanSeeShipment(t *testing.T) {
	shipmentA := &domain.Shipment{ReferenceID: "A-2506-0001"}
	shipmentB := &domain.Shipment{ReferenceID: "B-2506-0001"}

	tests := []struct {
		name      string
		roles     []domain.UserRole
		refPrefix string
		shipment  *domain.Shipment
		want      bool
	}{
		{"sales sees own prefix", []domain.UserRole{domain.RoleSales}, "A", shipmentA, true},
		{"sales blocked from other prefix", []domain.UserRole{domain.RoleSales}, "A", shipmentB, false},
		{"sales plus ops sees all", []domain.UserRole{domain.RoleSales, domain.RoleOps}, "A", shipmentB, true},
		{"admin sees all", []domain.UserRole{domain.RoleAdmin}, "", shipmentB, true},
		{"no roles sees nothing", nil, "A", shipmentA, false},
		{"sales without prefix sees nothing", []domain.UserRole{domain.RoleSales}, "", shipmentA, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanSeeShipment(tt.shipment, tt.roles, tt.refPrefix); got != tt.want {
				t.Fatalf("CanSeeShipment = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanSeeShipmentPrefixIsNotSubstring(t *testing.T) {
	// Prefix "A" must not match "AB-..." references.
	shipment := &domain.Shipment{ReferenceID: "AB-2506-0001"}
	if CanSeeShipment(shipment, []domain.UserRole{domain.RoleSales}, "A") {
		t.Fatalf("prefix A should not match reference AB-2506-0001")
	}
}

func TestCanAccessPage(t *testing.T) {
	tests := []struct {
		name  string
		roles []domain.UserRole
		path  string
		want  bool
	}{
		{"admin any page", []domain.UserRole{domain.RoleAdmin}, "/commission-rules", true},
		{"sales shipments", []domain.UserRole{domain.RoleSales}, "/shipments", true},
		{"sales estimates", []domain.UserRole{domain.RoleSales}, "/reports/commission-estimates", true},
		{"sales blocked from payables", []domain.UserRole{domain.RoleSales}, "/reports/payables", false},
		{"ops payables", []domain.UserRole{domain.RoleOps}, "/reports/payables", true},
		{"collections report", []domain.UserRole{domain.RoleCollections}, "/reports/collections", true},
		{"finance all reports", []domain.UserRole{domain.RoleFinance}, "/reports/payables", true},
		{"union across roles", []domain.UserRole{domain.RoleSales, domain.RoleOps}, "/reports/payables", true},
		{"no roles", nil, "/shipments", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAccessPage(tt.roles, tt.path); got != tt.want {
				t.Fatalf("CanAccessPage(%v, %q) = %v, want %v", tt.roles, tt.path, got, tt.want)
			}
		})
	}
}

func TestIsFieldReadOnly(t *testing.T) {
	for _, field := range []string{"referenceId", "grossProfit", "totalProfit", "totalInvoiceAmount", "createdAt", "updatedAt", "completedAt"} {
		if !IsFieldReadOnly(field) {
			t.Errorf("IsFieldReadOnly(%q) = false, want true", field)
		}
	}
	if IsFieldReadOnly("clientName") {
		t.Errorf("clientName should be editable")
	}
}

func TestHiddenFieldsIntersection(t *testing.T) {
	t.Run("single sales role hides commission figures", func(t *testing.T) {
		hidden := HiddenFields([]domain.UserRole{domain.RoleSales})
		if _, ok := hidden["commissionAmount"]; !ok {
			t.Fatalf("commissionAmount should be hidden for sales")
		}
		if _, ok := hidden["sellingPricePerUnit"]; ok {
			t.Errorf("sellingPricePerUnit should be visible for sales")
		}
	})

	t.Run("admin hides nothing", func(t *testing.T) {
		if hidden := HiddenFields([]domain.UserRole{domain.RoleAdmin}); len(hidden) != 0 {
			t.Fatalf("admin hidden set = %v, want empty", hidden)
		}
	})

	t.Run("most permissive role wins", func(t *testing.T) {
		// Ops hides price fields, sales does not; together the fields
		// are visible.
		hidden := HiddenFields([]domain.UserRole{domain.RoleOps, domain.RoleSales})
		if _, ok := hidden["sellingPricePerUnit"]; ok {
			t.Errorf("sellingPricePerUnit should be visible for ops+sales")
		}
		if _, ok := hidden["commissionAmount"]; !ok {
			t.Errorf("commissionAmount stays hidden: both roles hide it")
		}
	})

	t.Run("admin in set unhides everything", func(t *testing.T) {
		hidden := HiddenFields([]domain.UserRole{domain.RoleOps, domain.RoleAdmin})
		if len(hidden) != 0 {
			t.Fatalf("hidden set = %v, want empty when admin held", hidden)
		}
	})

	t.Run("empty role set hides all gated fields", func(t *testing.T) {
		hidden := HiddenFields(nil)
		for _, field := range []string{"commissionAmount", "sellingPricePerUnit", "costPerUnit"} {
			if _, ok := hidden[field]; !ok {
				t.Errorf("%s should be hidden for empty role set", field)
			}
		}
	})
}
