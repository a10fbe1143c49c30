package domain

import (
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	etdReminderOffsetDays = 3
	etaReminderOffsetDays = 10
)

// Payable is an amount owed to an agent for a shipment, with the date
// the payment reminder should fire.
type Payable struct {
	ShipmentID  string
	ReferenceID string
	Salesperson string
	Agent       string
	Amount      float64
	Stage       Stage
	ReminderAt  time.Time
}

// Collection is an amount owed by a client, tracked until received.
type Collection struct {
	ShipmentID  string
	ReferenceID string
	Salesperson string
	ClientName  string
	Amount      float64
	DueAt       time.Time
	Overdue     bool
}

// CommissionEstimate is the per-salesperson legacy flat-rate estimate.
// The rule engine in CalculateCommission is the source of truth for
// actual payouts; this view applies a single uniform rate.
type CommissionEstimate struct {
	Salesperson     string
	ShipmentCount   int
	TotalProfit     float64
	TotalCommission float64
}

// PayablesDue scans shipments for agent payments still owed. A shipment
// qualifies once it is in operations or completed with an assigned
// agent, a nonzero cost, and no agent payment recorded. The reminder
// date prefers ETD+3d for loads out of the export hub, then ETA-10d,
// then now.
func PayablesDue(shipments []Shipment, exportHub string, now time.Time) []Payable {
	var due []Payable
	for i := range shipments {
		s := &shipments[i]
		if s.Stage != StageOperations && s.Stage != StageCompleted {
			continue
		}
		if s.Agent == "" || s.AgentCost == 0 || s.AgentPaid {
			continue
		}
		reminder := now
		switch {
		case exportHub != "" && strings.Contains(s.PortOfLoading, exportHub) && s.ETD != nil:
			reminder = s.ETD.AddDate(0, 0, etdReminderOffsetDays)
		case s.ETA != nil:
			reminder = s.ETA.AddDate(0, 0, -etaReminderOffsetDays)
		}
		due = append(due, Payable{
			ShipmentID:  s.ID,
			ReferenceID: s.ReferenceID,
			Salesperson: s.Salesperson,
			Agent:       s.Agent,
			Amount:      s.AgentCost,
			Stage:       s.Stage,
			ReminderAt:  reminder,
		})
	}
	return due
}

// CollectionsDue scans completed shipments for client payments not yet
// received. The due date is completion plus the payment-terms day count.
func CollectionsDue(shipments []Shipment, now time.Time) []Collection {
	var due []Collection
	for i := range shipments {
		s := &shipments[i]
		if s.Stage != StageCompleted || s.CompletedAt == nil || s.PaymentCollected {
			continue
		}
		dueAt := s.CompletedAt.AddDate(0, 0, ParseTermsDays(s.PaymentTerms))
		due = append(due, Collection{
			ShipmentID:  s.ID,
			ReferenceID: s.ReferenceID,
			Salesperson: s.Salesperson,
			ClientName:  s.ClientName,
			Amount:      s.TotalInvoiceAmount,
			DueAt:       dueAt,
			Overdue:     now.After(dueAt),
		})
	}
	return due
}

// CommissionEstimates groups completed, collected shipments with a
// recorded profit by salesperson and applies flatRate uniformly.
func CommissionEstimates(shipments []Shipment, flatRate float64) []CommissionEstimate {
	grouped := make(map[string]*CommissionEstimate)
	for i := range shipments {
		s := &shipments[i]
		if s.Stage != StageCompleted || !s.PaymentCollected || s.TotalProfit <= 0 {
			continue
		}
		est, ok := grouped[s.Salesperson]
		if !ok {
			est = &CommissionEstimate{Salesperson: s.Salesperson}
			grouped[s.Salesperson] = est
		}
		est.ShipmentCount++
		est.TotalProfit += s.TotalProfit
		est.TotalCommission += s.TotalProfit * flatRate
	}

	estimates := make([]CommissionEstimate, 0, len(grouped))
	for _, est := range grouped {
		estimates = append(estimates, *est)
	}
	sort.Slice(estimates, func(i, j int) bool { return estimates[i].Salesperson < estimates[j].Salesperson })
	return estimates
}

// ParseTermsDays extracts the integer day count leading a payment-terms
// string such as "30 days". Unparsable terms count as 0.
func ParseTermsDays(terms string) int {
	terms = strings.TrimSpace(terms)
	end := 0
	for end < len(terms) && unicode.IsDigit(rune(terms[end])) {
		end++
	}
	if end == 0 {
		return 0
	}
	days, err := strconv.Atoi(terms[:end])
	if err != nil {
		return 0
	}
	return days
}
