package dto

import (
	"time"

	"github.com/spec-kit/freight-ops/internal/domain"
)

// CreateShipmentRequest payload.
type CreateShipmentRequest struct {
	Salesperson         string     `json:"salesperson"`
	ClientName          string     `json:"client_name"`
	Origin              string     `json:"origin"`
	Destination         string     `json:"destination"`
	PortOfLoading       string     `json:"port_of_loading"`
	PortOfDischarge     string     `json:"port_of_discharge"`
	ETD                 *time.Time `json:"etd"`
	ETA                 *time.Time `json:"eta"`
	SellingPricePerUnit float64    `json:"selling_price_per_unit"`
	CostPerUnit         float64    `json:"cost_per_unit"`
	Quantity            float64    `json:"quantity"`
	Agent               string     `json:"agent"`
	AgentCost           float64    `json:"agent_cost"`
	PaymentTerms        string     `json:"payment_terms"`
}

// UpdateShipmentRequest carries a field-by-field mutation keyed by the
// client-side field names.
type UpdateShipmentRequest struct {
	Fields map[string]any `json:"fields"`
}

// TransitionRequest names the target stage.
type TransitionRequest struct {
	Stage domain.Stage `json:"stage"`
}

// ShipmentSummary response. Price fields are omitted when hidden for
// the caller's role set.
type ShipmentSummary struct {
	ID                  string       `json:"id"`
	ReferenceID         string       `json:"reference_id"`
	Salesperson         string       `json:"salesperson"`
	ClientName          string       `json:"client_name"`
	Stage               domain.Stage `json:"stage"`
	Origin              string       `json:"origin"`
	Destination         string       `json:"destination"`
	SellingPricePerUnit *float64     `json:"selling_price_per_unit,omitempty"`
	CostPerUnit         *float64     `json:"cost_per_unit,omitempty"`
	TotalProfit         float64      `json:"total_profit"`
	TotalInvoiceAmount  float64      `json:"total_invoice_amount"`
	AgentPaid           bool         `json:"agent_paid"`
	PaymentCollected    bool         `json:"payment_collected"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

// ShipmentDetailResponse provides full shipment info plus the
// commission breakdown when visible to the caller.
type ShipmentDetailResponse struct {
	ID                  string                      `json:"id"`
	ReferenceID         string                      `json:"reference_id"`
	Salesperson         string                      `json:"salesperson"`
	ClientName          string                      `json:"client_name"`
	Stage               domain.Stage                `json:"stage"`
	Origin              string                      `json:"origin"`
	Destination         string                      `json:"destination"`
	PortOfLoading       string                      `json:"port_of_loading"`
	PortOfDischarge     string                      `json:"port_of_discharge"`
	ETD                 *time.Time                  `json:"etd"`
	ETA                 *time.Time                  `json:"eta"`
	SellingPricePerUnit *float64                    `json:"selling_price_per_unit,omitempty"`
	CostPerUnit         *float64                    `json:"cost_per_unit,omitempty"`
	Quantity            float64                     `json:"quantity"`
	TotalProfit         float64                     `json:"total_profit"`
	TotalInvoiceAmount  float64                     `json:"total_invoice_amount"`
	Agent               string                      `json:"agent"`
	AgentCost           float64                     `json:"agent_cost"`
	AgentPaid           bool                        `json:"agent_paid"`
	PaymentTerms        string                      `json:"payment_terms"`
	PaymentCollected    bool                        `json:"payment_collected"`
	Commission          *domain.CommissionBreakdown `json:"commission,omitempty"`
	CreatedAt           time.Time                   `json:"created_at"`
	UpdatedAt           time.Time                   `json:"updated_at"`
	CompletedAt         *time.Time                  `json:"completed_at"`
}

// LeaseResponse describes an acquired edit lease.
type LeaseResponse struct {
	Holder     string    `json:"holder"`
	AcquiredAt time.Time `json:"acquired_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}
