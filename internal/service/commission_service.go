package service

import (
	"context"
	"errors"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/freight-ops/internal/domain"
	"github.com/spec-kit/freight-ops/internal/repository"
	apperrors "github.com/spec-kit/freight-ops/pkg/util"
)

// CommissionService manages per-salesperson rules and drives the
// commission engine over shipment data.
type CommissionService struct {
	rules      repository.CommissionRuleRepository
	shipments  repository.ShipmentRepository
	defaultPct float64
}

// NewCommissionService constructs the service.
func NewCommissionService(rules repository.CommissionRuleRepository, shipments repository.ShipmentRepository, defaultPct float64) *CommissionService {
	return &CommissionService{rules: rules, shipments: shipments, defaultPct: defaultPct}
}

// SalespersonPayout aggregates rule-based commissions for one
// salesperson across eligible shipments.
type SalespersonPayout struct {
	Salesperson    string
	ShipmentCount  int
	TotalProfit    float64
	TotalAmount    float64
	SalaryRequired bool
}

// UpsertRule installs or replaces the active rule for a salesperson.
func (s *CommissionService) UpsertRule(ctx context.Context, rule *domain.CommissionRule) error {
	if rule.Salesperson == "" {
		return apperrors.NewValidationError("salesperson required", nil)
	}
	switch rule.FormulaType {
	case domain.FormulaFlatPercentage:
		if rule.Flat == nil {
			return apperrors.NewValidationError("flat config required", nil)
		}
	case domain.FormulaGPMinusSalary:
		if rule.Salary == nil {
			return apperrors.NewValidationError("salary config required", nil)
		}
	case domain.FormulaTiered:
		if rule.Tiered == nil || len(rule.Tiered.Tiers) == 0 {
			return apperrors.NewValidationError("at least one tier required", nil)
		}
	default:
		return apperrors.NewValidationError("unknown formula type", map[string]any{"formula_type": rule.FormulaType})
	}
	rule.Active = true
	return s.rules.Upsert(ctx, rule)
}

// GetRule returns the active rule for a salesperson, or nil when the
// system default applies.
func (s *CommissionService) GetRule(ctx context.Context, salesperson string) (*domain.CommissionRule, error) {
	rule, err := s.rules.GetBySalesperson(ctx, salesperson)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return rule, err
}

// ListRules returns all configured rules.
func (s *CommissionService) ListRules(ctx context.Context) ([]domain.CommissionRule, error) {
	return s.rules.List(ctx)
}

// DeactivateRule retires a salesperson's rule; the system default flat
// percentage applies afterwards.
func (s *CommissionService) DeactivateRule(ctx context.Context, salesperson string) error {
	return s.rules.Deactivate(ctx, salesperson)
}

// Breakdown computes the commission breakdown for a gross-profit figure
// under the salesperson's active rule.
func (s *CommissionService) Breakdown(ctx context.Context, salesperson string, grossProfit float64, salary *float64) (domain.CommissionBreakdown, error) {
	rule, err := s.GetRule(ctx, salesperson)
	if err != nil {
		return domain.CommissionBreakdown{}, err
	}
	return domain.CalculateCommission(grossProfit, rule, s.defaultPct, salary), nil
}

// Payouts applies each salesperson's rule to their completed, collected
// shipments. Salaries are supplied by the caller per salesperson; a
// missing salary under a gp_minus_salary rule flags the payout as
// incomplete rather than computing with zero.
func (s *CommissionService) Payouts(ctx context.Context, salaries map[string]float64) ([]SalespersonPayout, error) {
	collected := true
	shipments, err := s.shipments.ListWithFilter(ctx, repository.ShipmentFilter{
		Stages:           []domain.Stage{domain.StageCompleted},
		PaymentCollected: &collected,
	})
	if err != nil {
		return nil, err
	}

	rules, err := s.rules.List(ctx)
	if err != nil {
		return nil, err
	}
	ruleIndex := make(map[string]*domain.CommissionRule, len(rules))
	for i := range rules {
		if rules[i].Active {
			ruleIndex[rules[i].Salesperson] = &rules[i]
		}
	}

	grouped := make(map[string]*SalespersonPayout)
	for i := range shipments {
		shipment := &shipments[i]
		if shipment.TotalProfit <= 0 {
			continue
		}
		payout, ok := grouped[shipment.Salesperson]
		if !ok {
			payout = &SalespersonPayout{Salesperson: shipment.Salesperson}
			grouped[shipment.Salesperson] = payout
		}

		var salary *float64
		if v, ok := salaries[shipment.Salesperson]; ok {
			salary = &v
		}
		breakdown := domain.CalculateCommission(shipment.TotalProfit, ruleIndex[shipment.Salesperson], s.defaultPct, salary)
		payout.ShipmentCount++
		payout.TotalProfit += shipment.TotalProfit
		payout.TotalAmount += breakdown.Amount
		if breakdown.SalaryRequired {
			payout.SalaryRequired = true
		}
	}

	payouts := make([]SalespersonPayout, 0, len(grouped))
	for _, payout := range grouped {
		payouts = append(payouts, *payout)
	}
	sort.Slice(payouts, func(i, j int) bool { return payouts[i].Salesperson < payouts[j].Salesperson })
	return payouts, nil
}
