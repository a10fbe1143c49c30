package dto

import (
	"time"

	"github.com/spec-kit/freight-ops/internal/domain"
)

// UpsertRuleRequest installs a salesperson's commission rule.
type UpsertRuleRequest struct {
	Salesperson string               `json:"salesperson"`
	FormulaType domain.FormulaType   `json:"formula_type"`
	Flat        *domain.FlatConfig   `json:"flat,omitempty"`
	Salary      *domain.SalaryConfig `json:"salary,omitempty"`
	Tiered      *domain.TieredConfig `json:"tiered,omitempty"`
}

// RuleResponse describes a configured rule.
type RuleResponse struct {
	ID          string               `json:"id"`
	Salesperson string               `json:"salesperson"`
	FormulaType domain.FormulaType   `json:"formula_type"`
	Flat        *domain.FlatConfig   `json:"flat,omitempty"`
	Salary      *domain.SalaryConfig `json:"salary,omitempty"`
	Tiered      *domain.TieredConfig `json:"tiered,omitempty"`
	Active      bool                 `json:"active"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// BreakdownRequest asks for a commission preview.
type BreakdownRequest struct {
	Salesperson string   `json:"salesperson"`
	GrossProfit float64  `json:"gross_profit"`
	Salary      *float64 `json:"salary,omitempty"`
}

// PayoutResponse summarizes a salesperson's rule-based payout.
type PayoutResponse struct {
	Salesperson    string  `json:"salesperson"`
	ShipmentCount  int     `json:"shipment_count"`
	TotalProfit    float64 `json:"total_profit"`
	TotalAmount    float64 `json:"total_amount"`
	SalaryRequired bool    `json:"salary_required"`
}
