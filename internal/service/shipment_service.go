package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/freight-ops/internal/authz"
	"github.com/spec-kit/freight-ops/internal/domain"
	"github.com/spec-kit/freight-ops/internal/events"
	"github.com/spec-kit/freight-ops/internal/locks"
	"github.com/spec-kit/freight-ops/internal/repository"
	apperrors "github.com/spec-kit/freight-ops/pkg/util"
)

// ShipmentService coordinates shipment workflows.
type ShipmentService struct {
	shipments  repository.ShipmentRepository
	leases     *locks.LeaseStore
	dispatcher events.Dispatcher
	prefixes   map[string]string
}

// ShipmentDependencies bundles collaborators for the shipment service.
type ShipmentDependencies struct {
	ShipmentRepo repository.ShipmentRepository
	Leases       *locks.LeaseStore
	Dispatcher   events.Dispatcher
	RefPrefixes  map[string]string
}

// ShipmentCreateInput describes shipment creation payload.
type ShipmentCreateInput struct {
	Salesperson         string
	ClientName          string
	Origin              string
	Destination         string
	PortOfLoading       string
	PortOfDischarge     string
	ETD                 *time.Time
	ETA                 *time.Time
	SellingPricePerUnit float64
	CostPerUnit         float64
	Quantity            float64
	Agent               string
	AgentCost           float64
	PaymentTerms        string
}

// ShipmentListFilter describes listing filters.
type ShipmentListFilter struct {
	Stages      []domain.Stage
	Salesperson *string
	SearchTerm  *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// NewShipmentService constructs the service.
func NewShipmentService(deps ShipmentDependencies) *ShipmentService {
	return &ShipmentService{
		shipments:  deps.ShipmentRepo,
		leases:     deps.Leases,
		dispatcher: deps.Dispatcher,
		prefixes:   deps.RefPrefixes,
	}
}

// Create registers a new shipment in the lead stage, minting its
// reference id from the salesperson's lifetime sequence. The sequence
// count is guarded by a short creation lease per salesperson so two
// sessions cannot trivially mint the same id.
func (s *ShipmentService) Create(ctx context.Context, actor *domain.Operator, input ShipmentCreateInput) (*domain.Shipment, error) {
	salesperson := strings.TrimSpace(input.Salesperson)
	if salesperson == "" {
		return nil, apperrors.NewValidationError("salesperson required", nil)
	}

	if s.leases != nil {
		seqKey := "refseq:" + salesperson
		if _, err := s.leases.Acquire(ctx, seqKey, actor.ID); err != nil {
			if errors.Is(err, locks.ErrHeld) {
				return nil, apperrors.NewConflict("another shipment is being created for this salesperson", nil)
			}
			return nil, err
		}
		defer func() { _ = s.leases.Release(ctx, seqKey, actor.ID) }()
	}

	existing, err := s.shipments.ListBySalesperson(ctx, salesperson)
	if err != nil {
		return nil, err
	}

	shipment := &domain.Shipment{
		ReferenceID:         domain.GenerateReferenceID(salesperson, s.prefixes, existing, time.Now()),
		Salesperson:         salesperson,
		ClientName:          strings.TrimSpace(input.ClientName),
		Stage:               domain.StageLead,
		Origin:              input.Origin,
		Destination:         input.Destination,
		PortOfLoading:       input.PortOfLoading,
		PortOfDischarge:     input.PortOfDischarge,
		ETD:                 input.ETD,
		ETA:                 input.ETA,
		SellingPricePerUnit: input.SellingPricePerUnit,
		CostPerUnit:         input.CostPerUnit,
		Quantity:            input.Quantity,
		Agent:               input.Agent,
		AgentCost:           input.AgentCost,
		PaymentTerms:        input.PaymentTerms,
	}
	shipment.TotalProfit = shipment.GrossProfit()
	shipment.TotalInvoiceAmount = shipment.SellingPricePerUnit * shipment.Quantity

	if err := s.shipments.Create(ctx, shipment); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:       events.EventShipmentCreated,
		ShipmentID: shipment.ID,
		Actor:      operatorActor(actor),
		Payload: events.ShipmentCreatedPayload{
			ReferenceID: shipment.ReferenceID,
			Salesperson: shipment.Salesperson,
			Stage:       shipment.Stage,
		},
	})
	return shipment, nil
}

// List returns shipments visible to the actor.
func (s *ShipmentService) List(ctx context.Context, actor *domain.Operator, filter ShipmentListFilter) ([]domain.Shipment, error) {
	repoFilter := repository.ShipmentFilter{
		Salesperson: filter.Salesperson,
		Stages:      filter.Stages,
		SearchTerm:  filter.SearchTerm,
		CreatedFrom: filter.CreatedFrom,
		CreatedTo:   filter.CreatedTo,
		Limit:       filter.Limit,
		Offset:      filter.Offset,
	}
	shipments, err := s.shipments.ListWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	visible := make([]domain.Shipment, 0, len(shipments))
	for i := range shipments {
		if authz.CanSeeShipment(&shipments[i], actor.Roles, actor.RefPrefix) {
			visible = append(visible, shipments[i])
		}
	}
	return visible, nil
}

// Get fetches a shipment ensuring the actor may see it.
func (s *ShipmentService) Get(ctx context.Context, actor *domain.Operator, id string) (*domain.Shipment, error) {
	shipment, err := s.shipments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanSeeShipment(shipment, actor.Roles, actor.RefPrefix) {
		return nil, apperrors.NewForbidden("shipment not visible for held roles")
	}
	return shipment, nil
}

// UpdateFields applies a field-by-field mutation, rejecting read-only
// fields and unknown names.
func (s *ShipmentService) UpdateFields(ctx context.Context, actor *domain.Operator, id string, fields map[string]any) (*domain.Shipment, error) {
	shipment, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNotLockedByOther(ctx, shipment.ID, actor.ID); err != nil {
		return nil, err
	}

	for name, value := range fields {
		if authz.IsFieldReadOnly(name) {
			return nil, apperrors.NewValidationError("field is read-only", map[string]any{"field": name})
		}
		if err := applyShipmentField(shipment, name, value); err != nil {
			return nil, err
		}
	}
	shipment.TotalProfit = shipment.GrossProfit()
	shipment.TotalInvoiceAmount = shipment.SellingPricePerUnit * shipment.Quantity

	if err := s.shipments.Update(ctx, shipment); err != nil {
		return nil, err
	}
	return shipment, nil
}

// TransitionStage moves a shipment forward along the pipeline.
func (s *ShipmentService) TransitionStage(ctx context.Context, actor *domain.Operator, id string, next domain.Stage) (*domain.Shipment, error) {
	if !domain.ValidStage(next) {
		return nil, apperrors.NewValidationError("unknown stage", map[string]any{"stage": next})
	}
	shipment, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNotLockedByOther(ctx, shipment.ID, actor.ID); err != nil {
		return nil, err
	}
	if !domain.CanTransition(shipment.Stage, next) {
		return nil, apperrors.NewValidationError("invalid stage transition", map[string]any{
			"from": shipment.Stage,
			"to":   next,
		})
	}

	oldStage := shipment.Stage
	shipment.Stage = next
	if next == domain.StageCompleted && shipment.CompletedAt == nil {
		now := time.Now()
		shipment.CompletedAt = &now
	}
	if err := s.shipments.Update(ctx, shipment); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:       events.EventStageChanged,
		ShipmentID: shipment.ID,
		Actor:      operatorActor(actor),
		Payload: events.StageChangedPayload{
			OldStage: oldStage,
			NewStage: next,
		},
	})
	return shipment, nil
}

// RevertStage moves a shipment to its immediate predecessor stage.
// The machine always permits it; authorization is the gate.
func (s *ShipmentService) RevertStage(ctx context.Context, actor *domain.Operator, id string) (*domain.Shipment, error) {
	if !actor.HasAnyRole(domain.RoleAdmin, domain.RoleOps) {
		return nil, apperrors.NewForbidden("revert requires admin or ops role")
	}
	shipment, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNotLockedByOther(ctx, shipment.ID, actor.ID); err != nil {
		return nil, err
	}
	previous, ok := domain.PreviousStage(shipment.Stage)
	if !ok {
		return nil, apperrors.NewValidationError("shipment is already at the first stage", nil)
	}

	from := shipment.Stage
	shipment.Stage = previous
	if err := s.shipments.Update(ctx, shipment); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:       events.EventStageReverted,
		ShipmentID: shipment.ID,
		Actor:      operatorActor(actor),
		Payload: events.StageRevertedPayload{
			FromStage: from,
			ToStage:   previous,
		},
	})
	return shipment, nil
}

// MarkPaymentCollected records client payment receipt.
func (s *ShipmentService) MarkPaymentCollected(ctx context.Context, actor *domain.Operator, id string) (*domain.Shipment, error) {
	if !actor.HasAnyRole(domain.RoleAdmin, domain.RoleCollections, domain.RoleFinance) {
		return nil, apperrors.NewForbidden("collection updates require collections, finance or admin role")
	}
	shipment, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if shipment.PaymentCollected {
		return shipment, nil
	}
	shipment.PaymentCollected = true
	if err := s.shipments.Update(ctx, shipment); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:       events.EventPaymentCollected,
		ShipmentID: shipment.ID,
		Actor:      operatorActor(actor),
		Payload: events.PaymentCollectedPayload{
			ReferenceID: shipment.ReferenceID,
			Amount:      shipment.TotalInvoiceAmount,
		},
	})
	return shipment, nil
}

// MarkAgentPaid records settlement of the agent payable.
func (s *ShipmentService) MarkAgentPaid(ctx context.Context, actor *domain.Operator, id string) (*domain.Shipment, error) {
	if !actor.HasAnyRole(domain.RoleAdmin, domain.RoleOps, domain.RoleFinance) {
		return nil, apperrors.NewForbidden("agent payment updates require ops, finance or admin role")
	}
	shipment, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if shipment.AgentPaid {
		return shipment, nil
	}
	shipment.AgentPaid = true
	if err := s.shipments.Update(ctx, shipment); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:       events.EventAgentPaid,
		ShipmentID: shipment.ID,
		Actor:      operatorActor(actor),
		Payload: events.AgentPaidPayload{
			ReferenceID: shipment.ReferenceID,
			Agent:       shipment.Agent,
			Amount:      shipment.AgentCost,
		},
	})
	return shipment, nil
}

// AcquireEditLease takes the advisory edit lease for the shipment.
func (s *ShipmentService) AcquireEditLease(ctx context.Context, actor *domain.Operator, id string) (*locks.Lease, error) {
	if s.leases == nil {
		return nil, apperrors.NewValidationError("edit leases not configured", nil)
	}
	if _, err := s.Get(ctx, actor, id); err != nil {
		return nil, err
	}
	lease, err := s.leases.Acquire(ctx, shipmentLeaseKey(id), actor.ID)
	if errors.Is(err, locks.ErrHeld) {
		return nil, apperrors.NewConflict("shipment is being edited by another operator", nil)
	}
	return lease, err
}

// ReleaseEditLease drops the actor's edit lease on the shipment.
func (s *ShipmentService) ReleaseEditLease(ctx context.Context, actor *domain.Operator, id string) error {
	if s.leases == nil {
		return nil
	}
	return s.leases.Release(ctx, shipmentLeaseKey(id), actor.ID)
}

func (s *ShipmentService) ensureNotLockedByOther(ctx context.Context, shipmentID, actorID string) error {
	if s.leases == nil {
		return nil
	}
	lease, err := s.leases.Get(ctx, shipmentLeaseKey(shipmentID))
	if err != nil {
		return err
	}
	if lease != nil && lease.Holder != actorID && !lease.Expired(time.Now()) {
		return apperrors.NewConflict("shipment is locked by another operator", map[string]any{
			"holder":     lease.Holder,
			"expires_at": lease.ExpiresAt(),
		})
	}
	return nil
}

func applyShipmentField(shipment *domain.Shipment, name string, value any) error {
	invalid := func() error {
		return apperrors.NewValidationError("invalid value for field", map[string]any{"field": name})
	}
	switch name {
	case "clientName":
		v, ok := value.(string)
		if !ok {
			return invalid()
		}
		shipment.ClientName = strings.TrimSpace(v)
	case "origin":
		return assignString(&shipment.Origin, value, invalid)
	case "destination":
		return assignString(&shipment.Destination, value, invalid)
	case "portOfLoading":
		return assignString(&shipment.PortOfLoading, value, invalid)
	case "portOfDischarge":
		return assignString(&shipment.PortOfDischarge, value, invalid)
	case "agent":
		return assignString(&shipment.Agent, value, invalid)
	case "paymentTerms":
		return assignString(&shipment.PaymentTerms, value, invalid)
	case "sellingPricePerUnit":
		return assignFloat(&shipment.SellingPricePerUnit, value, invalid)
	case "costPerUnit":
		return assignFloat(&shipment.CostPerUnit, value, invalid)
	case "quantity":
		return assignFloat(&shipment.Quantity, value, invalid)
	case "agentCost":
		return assignFloat(&shipment.AgentCost, value, invalid)
	case "etd":
		return assignTime(&shipment.ETD, value, invalid)
	case "eta":
		return assignTime(&shipment.ETA, value, invalid)
	default:
		return apperrors.NewValidationError("unknown field", map[string]any{"field": name})
	}
	return nil
}

func assignString(dst *string, value any, invalid func() error) error {
	v, ok := value.(string)
	if !ok {
		return invalid()
	}
	*dst = v
	return nil
}

func assignFloat(dst *float64, value any, invalid func() error) error {
	v, ok := value.(float64)
	if !ok {
		return invalid()
	}
	*dst = v
	return nil
}

func assignTime(dst **time.Time, value any, invalid func() error) error {
	if value == nil {
		*dst = nil
		return nil
	}
	v, ok := value.(string)
	if !ok {
		return invalid()
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return invalid()
	}
	*dst = &t
	return nil
}

func shipmentLeaseKey(id string) string {
	return fmt.Sprintf("shipment:%s", id)
}

func (s *ShipmentService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func operatorActor(operator *domain.Operator) events.Actor {
	return events.Actor{
		OperatorID: operator.ID,
		Roles:      operator.Roles,
	}
}
