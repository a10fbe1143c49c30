package dto

import (
	"time"

	"github.com/spec-kit/freight-ops/internal/domain"
)

// PayableResponse is one outstanding agent payment.
type PayableResponse struct {
	ShipmentID  string       `json:"shipment_id"`
	ReferenceID string       `json:"reference_id"`
	Salesperson string       `json:"salesperson"`
	Agent       string       `json:"agent"`
	Amount      float64      `json:"amount"`
	Stage       domain.Stage `json:"stage"`
	ReminderAt  time.Time    `json:"reminder_at"`
}

// CollectionResponse is one outstanding client payment.
type CollectionResponse struct {
	ShipmentID  string    `json:"shipment_id"`
	ReferenceID string    `json:"reference_id"`
	Salesperson string    `json:"salesperson"`
	ClientName  string    `json:"client_name"`
	Amount      float64   `json:"amount"`
	DueAt       time.Time `json:"due_at"`
	Overdue     bool      `json:"overdue"`
}

// CommissionEstimateResponse is the legacy flat-rate per-salesperson view.
type CommissionEstimateResponse struct {
	Salesperson     string  `json:"salesperson"`
	ShipmentCount   int     `json:"shipment_count"`
	TotalProfit     float64 `json:"total_profit"`
	TotalCommission float64 `json:"total_commission"`
}
