package domain

import (
	"testing"
	"time"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestPayablesDueExcludesPaidAgents(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	shipments := []Shipment{
		{ID: "1", Stage: StageOperations, Agent: "AgentX", AgentCost: 500, AgentPaid: true},
		{ID: "2", Stage: StageCompleted, Agent: "AgentY", AgentCost: 800, AgentPaid: false},
		{ID: "3", Stage: StageLead, Agent: "AgentZ", AgentCost: 300, AgentPaid: false},
		{ID: "4", Stage: StageOperations, Agent: "", AgentCost: 300, AgentPaid: false},
		{ID: "5", Stage: StageOperations, Agent: "AgentW", AgentCost: 0, AgentPaid: false},
	}
	due := PayablesDue(shipments, "Jebel Ali", now)
	if len(due) != 1 {
		t.Fatalf("got %d payables, want 1", len(due))
	}
	if due[0].ShipmentID != "2" {
		t.Errorf("ShipmentID = %q, want 2", due[0].ShipmentID)
	}
	if due[0].Amount != 800 {
		t.Errorf("Amount = %v, want 800", due[0].Amount)
	}
}

func TestPayablesDueReminderDates(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	etd := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	eta := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		shipment Shipment
		want     time.Time
	}{
		{
			"export hub load uses etd plus three days",
			Shipment{Stage: StageOperations, Agent: "A", AgentCost: 100, PortOfLoading: "Jebel Ali Port", ETD: timePtr(etd), ETA: timePtr(eta)},
			etd.AddDate(0, 0, 3),
		},
		{
			"other loading port uses eta minus ten days",
			Shipment{Stage: StageOperations, Agent: "A", AgentCost: 100, PortOfLoading: "Shanghai", ETD: timePtr(etd), ETA: timePtr(eta)},
			eta.AddDate(0, 0, -10),
		},
		{
			"no dates falls back to now",
			Shipment{Stage: StageOperations, Agent: "A", AgentCost: 100, PortOfLoading: "Shanghai"},
			now,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			due := PayablesDue([]Shipment{tt.shipment}, "Jebel Ali", now)
			if len(due) != 1 {
				t.Fatalf("got %d payables, want 1", len(due))
			}
			if !due[0].ReminderAt.Equal(tt.want) {
				t.Fatalf("ReminderAt = %v, want %v", due[0].ReminderAt, tt.want)
			}
		})
	}
}

func TestCollectionsDue(t *testing.T) {
	now := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	completed := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	shipments := []Shipment{
		{ID: "1", Stage: StageCompleted, CompletedAt: timePtr(completed), PaymentTerms: "30 days", TotalInvoiceAmount: 10000},
		{ID: "2", Stage: StageCompleted, CompletedAt: timePtr(completed), PaymentTerms: "90 days", TotalInvoiceAmount: 5000},
		{ID: "3", Stage: StageCompleted, CompletedAt: timePtr(completed), PaymentCollected: true},
		{ID: "4", Stage: StageOperations, CompletedAt: timePtr(completed)},
		{ID: "5", Stage: StageCompleted, CompletedAt: nil},
	}
	due := CollectionsDue(shipments, now)
	if len(due) != 2 {
		t.Fatalf("got %d collections, want 2", len(due))
	}

	if !due[0].Overdue {
		t.Errorf("shipment 1 with 30 day terms should be overdue by August")
	}
	wantDue := completed.AddDate(0, 0, 30)
	if !due[0].DueAt.Equal(wantDue) {
		t.Errorf("DueAt = %v, want %v", due[0].DueAt, wantDue)
	}

	if due[1].Overdue {
		t.Errorf("shipment 2 with 90 day terms should not be overdue yet")
	}
}

func TestCommissionEstimates(t *testing.T) {
	shipments := []Shipment{
		{Salesperson: "Amjad", Stage: StageCompleted, PaymentCollected: true, TotalProfit: 1000},
		{Salesperson: "Amjad", Stage: StageCompleted, PaymentCollected: true, TotalProfit: 2000},
		{Salesperson: "Sara", Stage: StageCompleted, PaymentCollected: true, TotalProfit: 500},
		{Salesperson: "Amjad", Stage: StageCompleted, PaymentCollected: false, TotalProfit: 900},
		{Salesperson: "Amjad", Stage: StageOperations, PaymentCollected: true, TotalProfit: 900},
		{Salesperson: "Amjad", Stage: StageCompleted, PaymentCollected: true, TotalProfit: 0},
	}
	estimates := CommissionEstimates(shipments, 0.02)
	if len(estimates) != 2 {
		t.Fatalf("got %d estimates, want 2", len(estimates))
	}

	amjad := estimates[0]
	if amjad.Salesperson != "Amjad" {
		t.Fatalf("estimates not sorted by salesperson: %+v", estimates)
	}
	if amjad.ShipmentCount != 2 || amjad.TotalProfit != 3000 {
		t.Errorf("Amjad count/profit = %d/%v, want 2/3000", amjad.ShipmentCount, amjad.TotalProfit)
	}
	if amjad.TotalCommission != 60 {
		t.Errorf("Amjad commission = %v, want 60", amjad.TotalCommission)
	}
}

func TestParseTermsDays(t *testing.T) {
	tests := []struct {
		terms string
		want  int
	}{
		{"30 days", 30},
		{"90days", 90},
		{" 45 ", 45},
		{"net 30", 0},
		{"", 0},
		{"cash on delivery", 0},
	}
	for _, tt := range tests {
		if got := ParseTermsDays(tt.terms); got != tt.want {
			t.Errorf("ParseTermsDays(%q) = %d, want %d", tt.terms, got, tt.want)
		}
	}
}
