package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/freight-ops/internal/domain"
	"github.com/spec-kit/freight-ops/internal/repository"
	apperrors "github.com/spec-kit/freight-ops/pkg/util"
)

type fakeShipmentRepo struct {
	shipments []domain.Shipment
	nextID    int
}

func (r *fakeShipmentRepo) Create(ctx context.Context, shipment *domain.Shipment) error {
	r.nextID++
	shipment.ID = "ship-" + strconv.Itoa(r.nextID)
	shipment.CreatedAt = time.Now()
	shipment.UpdatedAt = shipment.CreatedAt
	r.shipments = append(r.shipments, *shipment)
	return nil
}

func (r *fakeShipmentRepo) Update(ctx context.Context, shipment *domain.Shipment) error {
	for i := range r.shipments {
		if r.shipments[i].ID == shipment.ID {
			shipment.UpdatedAt = time.Now()
			r.shipments[i] = *shipment
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeShipmentRepo) GetByID(ctx context.Context, id string) (*domain.Shipment, error) {
	for i := range r.shipments {
		if r.shipments[i].ID == id {
			found := r.shipments[i]
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeShipmentRepo) GetByReferenceID(ctx context.Context, refID string) (*domain.Shipment, error) {
	for i := range r.shipments {
		if r.shipments[i].ReferenceID == refID {
			found := r.shipments[i]
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeShipmentRepo) ListBySalesperson(ctx context.Context, salesperson string) ([]domain.Shipment, error) {
	var out []domain.Shipment
	for i := range r.shipments {
		if r.shipments[i].Salesperson == salesperson {
			out = append(out, r.shipments[i])
		}
	}
	return out, nil
}

func (r *fakeShipmentRepo) ListAll(ctx context.Context) ([]domain.Shipment, error) {
	out := make([]domain.Shipment, len(r.shipments))
	copy(out, r.shipments)
	return out, nil
}

func (r *fakeShipmentRepo) ListWithFilter(ctx context.Context, filter repository.ShipmentFilter) ([]domain.Shipment, error) {
	var out []domain.Shipment
	for i := range r.shipments {
		s := r.shipments[i]
		if filter.Salesperson != nil && s.Salesperson != *filter.Salesperson {
			continue
		}
		if len(filter.Stages) > 0 && !stageIn(s.Stage, filter.Stages) {
			continue
		}
		if filter.PaymentCollected != nil && s.PaymentCollected != *filter.PaymentCollected {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func stageIn(stage domain.Stage, stages []domain.Stage) bool {
	for _, s := range stages {
		if s == stage {
			return true
		}
	}
	return false
}

func adminOperator() *domain.Operator {
	return &domain.Operator{ID: "op-admin", Name: "Admin", Roles: []domain.UserRole{domain.RoleAdmin}}
}

func salesOperator(prefix string) *domain.Operator {
	return &domain.Operator{ID: "op-sales", Name: "Amjad", Roles: []domain.UserRole{domain.RoleSales}, RefPrefix: prefix}
}

func newTestShipmentService(repo *fakeShipmentRepo) *ShipmentService {
	return NewShipmentService(ShipmentDependencies{
		ShipmentRepo: repo,
		RefPrefixes:  map[string]string{"Amjad": "A"},
	})
}

func TestShipmentCreateMintsReferenceID(t *testing.T) {
	repo := &fakeShipmentRepo{}
	svc := newTestShipmentService(repo)
	ctx := context.Background()

	first, err := svc.Create(ctx, adminOperator(), ShipmentCreateInput{
		Salesperson:         "Amjad",
		ClientName:          "Acme",
		SellingPricePerUnit: 100,
		CostPerUnit:         60,
		Quantity:            10,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first.Stage != domain.StageLead {
		t.Errorf("Stage = %q, want lead", first.Stage)
	}
	if !strings.HasPrefix(first.ReferenceID, "A-") || !strings.HasSuffix(first.ReferenceID, "-0001") {
		t.Errorf("ReferenceID = %q, want A-YYMM-0001 shape", first.ReferenceID)
	}
	if first.TotalProfit != 400 {
		t.Errorf("TotalProfit = %v, want 400", first.TotalProfit)
	}
	if first.TotalInvoiceAmount != 1000 {
		t.Errorf("TotalInvoiceAmount = %v, want 1000", first.TotalInvoiceAmount)
	}

	second, err := svc.Create(ctx, adminOperator(), ShipmentCreateInput{Salesperson: "Amjad", ClientName: "Acme"})
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}
	if !strings.HasSuffix(second.ReferenceID, "-0002") {
		t.Errorf("second ReferenceID = %q, want -0002 suffix", second.ReferenceID)
	}
}

func TestShipmentCreateRequiresSalesperson(t *testing.T) {
	svc := newTestShipmentService(&fakeShipmentRepo{})
	if _, err := svc.Create(context.Background(), adminOperator(), ShipmentCreateInput{ClientName: "Acme"}); err == nil {
		t.Fatalf("expected validation error for missing salesperson")
	}
}

func TestShipmentListFiltersBySalesVisibility(t *testing.T) {
	repo := &fakeShipmentRepo{shipments: []domain.Shipment{
		{ID: "1", ReferenceID: "A-2506-0001", Salesperson: "Amjad"},
		{ID: "2", ReferenceID: "B-2506-0001", Salesperson: "Badr"},
	}}
	svc := newTestShipmentService(repo)
	ctx := context.Background()

	visible, err := svc.List(ctx, salesOperator("A"), ShipmentListFilter{Limit: -1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(visible) != 1 || visible[0].ReferenceID != "A-2506-0001" {
		t.Fatalf("sales-only operator sees %v, want only own prefix", visible)
	}

	all, err := svc.List(ctx, adminOperator(), ShipmentListFilter{Limit: -1})
	if err != nil {
		t.Fatalf("List admin: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin sees %d shipments, want 2", len(all))
	}
}

func TestShipmentUpdateFields(t *testing.T) {
	repo := &fakeShipmentRepo{shipments: []domain.Shipment{{
		ID: "1", ReferenceID: "A-2506-0001", Salesperson: "Amjad",
		SellingPricePerUnit: 100, CostPerUnit: 60, Quantity: 10,
		TotalProfit: 400, TotalInvoiceAmount: 1000,
	}}}
	svc := newTestShipmentService(repo)
	ctx := context.Background()

	updated, err := svc.UpdateFields(ctx, adminOperator(), "1", map[string]any{
		"sellingPricePerUnit": 120.0,
		"clientName":          "  New Client ",
	})
	if err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if updated.ClientName != "New Client" {
		t.Errorf("ClientName = %q, want trimmed New Client", updated.ClientName)
	}
	if updated.TotalProfit != 600 {
		t.Errorf("TotalProfit = %v, want recomputed 600", updated.TotalProfit)
	}
	if updated.TotalInvoiceAmount != 1200 {
		t.Errorf("TotalInvoiceAmount = %v, want recomputed 1200", updated.TotalInvoiceAmount)
	}
}

func TestShipmentUpdateFieldsRejectsReadOnly(t *testing.T) {
	repo := &fakeShipmentRepo{shipments: []domain.Shipment{{ID: "1", ReferenceID: "A-2506-0001", Salesperson: "Amjad"}}}
	svc := newTestShipmentService(repo)
	ctx := context.Background()

	for _, field := range []string{"referenceId", "totalProfit", "unknownField"} {
		if _, err := svc.UpdateFields(ctx, adminOperator(), "1", map[string]any{field: "x"}); err == nil {
			t.Errorf("UpdateFields(%q) should fail", field)
		}
	}
}

func TestShipmentStageTransitions(t *testing.T) {
	repo := &fakeShipmentRepo{shipments: []domain.Shipment{{ID: "1", ReferenceID: "A-2506-0001", Salesperson: "Amjad", Stage: domain.StageLead}}}
	svc := newTestShipmentService(repo)
	ctx := context.Background()
	actor := adminOperator()

	shipment, err := svc.TransitionStage(ctx, actor, "1", domain.StagePricing)
	if err != nil {
		t.Fatalf("TransitionStage: %v", err)
	}
	if shipment.Stage != domain.StagePricing {
		t.Fatalf("Stage = %q, want pricing", shipment.Stage)
	}

	if _, err := svc.TransitionStage(ctx, actor, "1", domain.StageCompleted); err == nil {
		t.Fatalf("skipping stages should fail")
	}
	if _, err := svc.TransitionStage(ctx, actor, "1", domain.Stage("bogus")); err == nil {
		t.Fatalf("unknown stage should fail")
	}
}

func TestShipmentCompletionTimestampSetOnce(t *testing.T) {
	repo := &fakeShipmentRepo{shipments: []domain.Shipment{{ID: "1", ReferenceID: "A-2506-0001", Salesperson: "Amjad", Stage: domain.StageOperations}}}
	svc := newTestShipmentService(repo)
	ctx := context.Background()
	actor := adminOperator()

	completed, err := svc.TransitionStage(ctx, actor, "1", domain.StageCompleted)
	if err != nil {
		t.Fatalf("TransitionStage: %v", err)
	}
	if completed.CompletedAt == nil {
		t.Fatalf("CompletedAt not set on completion")
	}
	firstCompletion := *completed.CompletedAt

	// Revert and re-complete; the original timestamp stays.
	if _, err := svc.RevertStage(ctx, actor, "1"); err != nil {
		t.Fatalf("RevertStage: %v", err)
	}
	recompleted, err := svc.TransitionStage(ctx, actor, "1", domain.StageCompleted)
	if err != nil {
		t.Fatalf("re-complete: %v", err)
	}
	if recompleted.CompletedAt == nil || !recompleted.CompletedAt.Equal(firstCompletion) {
		t.Fatalf("CompletedAt changed on re-completion")
	}
}

func TestShipmentRevertRequiresRole(t *testing.T) {
	repo := &fakeShipmentRepo{shipments: []domain.Shipment{{ID: "1", ReferenceID: "A-2506-0001", Salesperson: "Amjad", Stage: domain.StagePricing}}}
	svc := newTestShipmentService(repo)
	ctx := context.Background()

	if _, err := svc.RevertStage(ctx, salesOperator("A"), "1"); err == nil {
		t.Fatalf("sales-only operator should not revert")
	}

	shipment, err := svc.RevertStage(ctx, adminOperator(), "1")
	if err != nil {
		t.Fatalf("RevertStage: %v", err)
	}
	if shipment.Stage != domain.StageLead {
		t.Fatalf("Stage = %q, want lead", shipment.Stage)
	}

	if _, err := svc.RevertStage(ctx, adminOperator(), "1"); err == nil {
		t.Fatalf("reverting the first stage should fail")
	}
}

func TestMarkPaymentCollectedRoleGate(t *testing.T) {
	repo := &fakeShipmentRepo{shipments: []domain.Shipment{{ID: "1", ReferenceID: "A-2506-0001", Salesperson: "Amjad", Stage: domain.StageCompleted}}}
	svc := newTestShipmentService(repo)
	ctx := context.Background()

	if _, err := svc.MarkPaymentCollected(ctx, salesOperator("A"), "1"); err == nil {
		t.Fatalf("sales-only operator should not record collections")
	}
	var domainErr *apperrors.DomainError
	_, err := svc.MarkPaymentCollected(ctx, salesOperator("A"), "1")
	if !errors.As(err, &domainErr) || domainErr.Code != "FORBIDDEN" {
		t.Fatalf("error = %v, want FORBIDDEN", err)
	}

	collector := &domain.Operator{ID: "op-col", Roles: []domain.UserRole{domain.RoleCollections}}
	shipment, err := svc.MarkPaymentCollected(ctx, collector, "1")
	if err != nil {
		t.Fatalf("MarkPaymentCollected: %v", err)
	}
	if !shipment.PaymentCollected {
		t.Fatalf("PaymentCollected = false after marking")
	}
}

func TestMarkAgentPaidRoleGate(t *testing.T) {
	repo := &fakeShipmentRepo{shipments: []domain.Shipment{{ID: "1", ReferenceID: "A-2506-0001", Salesperson: "Amjad", Stage: domain.StageOperations, Agent: "AgentX", AgentCost: 500}}}
	svc := newTestShipmentService(repo)
	ctx := context.Background()

	if _, err := svc.MarkAgentPaid(ctx, salesOperator("A"), "1"); err == nil {
		t.Fatalf("sales-only operator should not record agent payments")
	}

	ops := &domain.Operator{ID: "op-ops", Roles: []domain.UserRole{domain.RoleOps}}
	shipment, err := svc.MarkAgentPaid(ctx, ops, "1")
	if err != nil {
		t.Fatalf("MarkAgentPaid: %v", err)
	}
	if !shipment.AgentPaid {
		t.Fatalf("AgentPaid = false after marking")
	}
}
