package domain

import (
	"fmt"
	"sort"
	"time"
)

// FormulaType tags the commission rule variants.
type FormulaType string

const (
	FormulaFlatPercentage FormulaType = "flat_percentage"
	FormulaGPMinusSalary  FormulaType = "gp_minus_salary"
	FormulaTiered         FormulaType = "tiered"
)

// Tier is a contiguous gross-profit range with its commission percentage.
// A nil Max means the range is unbounded above.
type Tier struct {
	Min        float64  `json:"min"`
	Max        *float64 `json:"max"`
	Percentage float64  `json:"percentage"`
}

// FlatConfig configures flat_percentage rules.
type FlatConfig struct {
	Percentage float64 `json:"percentage"`
}

// SalaryConfig configures gp_minus_salary rules.
type SalaryConfig struct {
	Percentage       float64 `json:"percentage"`
	SalaryMultiplier float64 `json:"salary_multiplier"`
}

// TieredConfig configures tiered rules. Tiers are kept sorted ascending
// by Min.
type TieredConfig struct {
	Tiers []Tier `json:"tiers"`
}

// CommissionRule is the per-salesperson payout rule. Exactly one of the
// config fields is populated, matching FormulaType.
type CommissionRule struct {
	ID          string
	Salesperson string
	FormulaType FormulaType
	Flat        *FlatConfig
	Salary      *SalaryConfig
	Tiered      *TieredConfig
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CommissionBreakdown summarizes how a commission figure was derived. It
// is recomputed on demand and never stored.
type CommissionBreakdown struct {
	GrossProfit     float64     `json:"gross_profit"`
	FormulaType     FormulaType `json:"formula_type"`
	Percentage      float64     `json:"percentage"`
	SalaryDeduction float64     `json:"salary_deduction"`
	CommissionBase  float64     `json:"commission_base"`
	Amount          float64     `json:"amount"`
	Formula         string      `json:"formula"`
	SalaryRequired  bool        `json:"salary_required"`
	Unrecognized    bool        `json:"unrecognized"`
	BelowThreshold  bool        `json:"below_threshold"`
}

// CalculateCommission computes the commission breakdown for a gross-profit
// figure under the given rule. A nil rule falls back to a flat commission
// at defaultPercentage. The result is fully determined by the inputs.
func CalculateCommission(grossProfit float64, rule *CommissionRule, defaultPercentage float64, salary *float64) CommissionBreakdown {
	if rule == nil {
		b := flatBreakdown(grossProfit, defaultPercentage)
		b.Formula = fmt.Sprintf("GP %.2f x %.2f%% (default)", grossProfit, defaultPercentage)
		return b
	}

	switch rule.FormulaType {
	case FormulaFlatPercentage:
		pct := defaultPercentage
		if rule.Flat != nil {
			pct = rule.Flat.Percentage
		}
		b := flatBreakdown(grossProfit, pct)
		b.Formula = fmt.Sprintf("GP %.2f x %.2f%%", grossProfit, pct)
		return b

	case FormulaGPMinusSalary:
		return salaryBreakdown(grossProfit, rule.Salary, salary)

	case FormulaTiered:
		return tieredBreakdown(grossProfit, rule.Tiered)

	default:
		b := flatBreakdown(grossProfit, defaultPercentage)
		b.FormulaType = rule.FormulaType
		b.Unrecognized = true
		b.Formula = fmt.Sprintf("unrecognized formula %q; GP %.2f x %.2f%% (default)", rule.FormulaType, grossProfit, defaultPercentage)
		return b
	}
}

func flatBreakdown(grossProfit, percentage float64) CommissionBreakdown {
	return CommissionBreakdown{
		GrossProfit:    grossProfit,
		FormulaType:    FormulaFlatPercentage,
		Percentage:     percentage,
		CommissionBase: grossProfit,
		Amount:         grossProfit * percentage / 100,
	}
}

func salaryBreakdown(grossProfit float64, cfg *SalaryConfig, salary *float64) CommissionBreakdown {
	b := CommissionBreakdown{
		GrossProfit: grossProfit,
		FormulaType: FormulaGPMinusSalary,
	}
	multiplier, pct := 0.0, 0.0
	if cfg != nil {
		multiplier, pct = cfg.SalaryMultiplier, cfg.Percentage
	}
	b.Percentage = pct

	salaryValue := 0.0
	if salary != nil {
		salaryValue = *salary
	}
	b.SalaryDeduction = multiplier * salaryValue

	base := grossProfit - b.SalaryDeduction
	if base < 0 {
		base = 0
	}
	b.CommissionBase = base
	b.Amount = base * pct / 100

	if salary == nil {
		// Input-required state, not an error: the zero-salary figure must
		// not be mistaken for a valid payout.
		b.SalaryRequired = true
		b.Formula = fmt.Sprintf("salary required: max(0, GP %.2f - %.2f x salary) x %.2f%%", grossProfit, multiplier, pct)
		return b
	}
	b.Formula = fmt.Sprintf("max(0, GP %.2f - %.2f x %.2f) x %.2f%%", grossProfit, multiplier, salaryValue, pct)
	return b
}

func tieredBreakdown(grossProfit float64, cfg *TieredConfig) CommissionBreakdown {
	b := CommissionBreakdown{
		GrossProfit:    grossProfit,
		FormulaType:    FormulaTiered,
		CommissionBase: grossProfit,
	}
	if cfg == nil || len(cfg.Tiers) == 0 {
		b.BelowThreshold = true
		b.Formula = fmt.Sprintf("GP %.2f: no tiers configured", grossProfit)
		return b
	}

	tiers := make([]Tier, len(cfg.Tiers))
	copy(tiers, cfg.Tiers)
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].Min < tiers[j].Min })

	for _, tier := range tiers {
		if grossProfit >= tier.Min && (tier.Max == nil || grossProfit < *tier.Max) {
			b.Percentage = tier.Percentage
			b.Amount = grossProfit * tier.Percentage / 100
			b.Formula = fmt.Sprintf("GP %.2f x %.2f%% (tier %s)", grossProfit, tier.Percentage, tierLabel(tier))
			return b
		}
	}

	// Above every tier's upper bound: the highest tier absorbs the rest,
	// applied to the full gross profit.
	top := tiers[len(tiers)-1]
	if top.Max != nil && grossProfit >= *top.Max {
		b.Percentage = top.Percentage
		b.Amount = grossProfit * top.Percentage / 100
		b.Formula = fmt.Sprintf("GP %.2f x %.2f%% (above top tier %s)", grossProfit, top.Percentage, tierLabel(top))
		return b
	}

	// Below the lowest tier's Min: explicit below-threshold outcome.
	b.BelowThreshold = true
	b.Formula = fmt.Sprintf("GP %.2f below lowest tier min %.2f", grossProfit, tiers[0].Min)
	return b
}

func tierLabel(t Tier) string {
	if t.Max == nil {
		return fmt.Sprintf("%.0f+", t.Min)
	}
	return fmt.Sprintf("%.0f-%.0f", t.Min, *t.Max)
}
