package events

import (
	"time"

	"github.com/spec-kit/freight-ops/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventShipmentCreated  EventType = "shipment_created"
	EventStageChanged     EventType = "stage_changed"
	EventStageReverted    EventType = "stage_reverted"
	EventPaymentCollected EventType = "payment_collected"
	EventAgentPaid        EventType = "agent_paid"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	OperatorID string            `json:"operator_id"`
	Roles      []domain.UserRole `json:"roles,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	ShipmentID string      `json:"shipment_id"`
	Actor      Actor       `json:"actor"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// ShipmentCreatedPayload payload.
type ShipmentCreatedPayload struct {
	ReferenceID string       `json:"reference_id"`
	Salesperson string       `json:"salesperson"`
	Stage       domain.Stage `json:"stage"`
}

// StageChangedPayload payload.
type StageChangedPayload struct {
	OldStage domain.Stage `json:"old_stage"`
	NewStage domain.Stage `json:"new_stage"`
}

// StageRevertedPayload payload.
type StageRevertedPayload struct {
	FromStage domain.Stage `json:"from_stage"`
	ToStage   domain.Stage `json:"to_stage"`
}

// PaymentCollectedPayload payload.
type PaymentCollectedPayload struct {
	ReferenceID string  `json:"reference_id"`
	Amount      float64 `json:"amount"`
}

// AgentPaidPayload payload.
type AgentPaidPayload struct {
	ReferenceID string  `json:"reference_id"`
	Agent       string  `json:"agent"`
	Amount      float64 `json:"amount"`
}
