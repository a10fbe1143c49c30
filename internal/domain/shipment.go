package domain

import "time"

// Shipment is the aggregate for a forwarded consignment moving through
// the lead-to-completion pipeline.
type Shipment struct {
	ID                  string
	ReferenceID         string
	Salesperson         string
	ClientName          string
	Stage               Stage
	Origin              string
	Destination         string
	PortOfLoading       string
	PortOfDischarge     string
	ETD                 *time.Time
	ETA                 *time.Time
	SellingPricePerUnit float64
	CostPerUnit         float64
	Quantity            float64
	TotalProfit         float64
	TotalInvoiceAmount  float64
	Agent               string
	AgentCost           float64
	AgentPaid           bool
	PaymentTerms        string
	PaymentCollected    bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
	CompletedAt         *time.Time
}

// GrossProfit is selling minus cost across the booked quantity, the base
// figure commission is computed against.
func (s *Shipment) GrossProfit() float64 {
	return (s.SellingPricePerUnit - s.CostPerUnit) * s.Quantity
}
