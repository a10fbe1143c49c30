package domain

import (
	"testing"
	"time"
)

func TestGenerateReferenceID(t *testing.T) {
	prefixes := map[string]string{"Amjad": "A"}
	june2025 := time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)

	first := GenerateReferenceID("Amjad", prefixes, nil, june2025)
	if first != "A-2506-0001" {
		t.Fatalf("first id = %q, want A-2506-0001", first)
	}

	existing := []Shipment{{Salesperson: "Amjad", ReferenceID: first}}
	second := GenerateReferenceID("Amjad", prefixes, existing, june2025)
	if second != "A-2506-0002" {
		t.Fatalf("second id = %q, want A-2506-0002", second)
	}
}

func TestGenerateReferenceIDCountsOwnShipmentsOnly(t *testing.T) {
	prefixes := map[string]string{"Amjad": "A", "Sara": "S"}
	now := time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)
	existing := []Shipment{
		{Salesperson: "Sara"},
		{Salesperson: "Sara"},
		{Salesperson: "Amjad"},
	}
	got := GenerateReferenceID("Amjad", prefixes, existing, now)
	if got != "A-2501-0002" {
		t.Fatalf("id = %q, want A-2501-0002", got)
	}
}

func TestPrefixFor(t *testing.T) {
	tests := []struct {
		name        string
		salesperson string
		prefixes    map[string]string
		want        string
	}{
		{"table hit", "Amjad", map[string]string{"Amjad": "A"}, "A"},
		{"fallback first letter", "walid", nil, "W"},
		{"empty name", "", nil, "X"},
		{"blank table entry falls back", "Amjad", map[string]string{"Amjad": ""}, "A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PrefixFor(tt.salesperson, tt.prefixes); got != tt.want {
				t.Fatalf("PrefixFor(%q) = %q, want %q", tt.salesperson, got, tt.want)
			}
		})
	}
}
