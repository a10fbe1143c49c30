package domain

import (
	"math"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func TestCalculateCommissionFlat(t *testing.T) {
	tests := []struct {
		name       string
		gp         float64
		pct        float64
		wantAmount float64
	}{
		{"ten percent", 2000, 10, 200},
		{"fractional", 1234.56, 2.5, 30.864},
		{"zero gp", 0, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := &CommissionRule{
				Salesperson: "Amjad",
				FormulaType: FormulaFlatPercentage,
				Flat:        &FlatConfig{Percentage: tt.pct},
			}
			got := CalculateCommission(tt.gp, rule, 2.0, nil)
			if math.Abs(got.Amount-tt.wantAmount) > 1e-9 {
				t.Fatalf("Amount = %v, want %v", got.Amount, tt.wantAmount)
			}
			if got.Percentage != tt.pct {
				t.Errorf("Percentage = %v, want %v", got.Percentage, tt.pct)
			}
			if got.SalaryRequired || got.Unrecognized || got.BelowThreshold {
				t.Errorf("unexpected flags set: %+v", got)
			}
		})
	}
}

func TestCalculateCommissionNilRuleUsesDefault(t *testing.T) {
	got := CalculateCommission(1000, nil, 2.0, nil)
	if got.Amount != 20 {
		t.Fatalf("Amount = %v, want 20", got.Amount)
	}
	if got.FormulaType != FormulaFlatPercentage {
		t.Errorf("FormulaType = %v, want %v", got.FormulaType, FormulaFlatPercentage)
	}
}

func TestCalculateCommissionGPMinusSalary(t *testing.T) {
	rule := &CommissionRule{
		Salesperson: "Sara",
		FormulaType: FormulaGPMinusSalary,
		Salary:      &SalaryConfig{Percentage: 10, SalaryMultiplier: 2},
	}

	t.Run("salary provided", func(t *testing.T) {
		got := CalculateCommission(15000, rule, 2.0, floatPtr(3000))
		if got.SalaryDeduction != 6000 {
			t.Errorf("SalaryDeduction = %v, want 6000", got.SalaryDeduction)
		}
		if got.CommissionBase != 9000 {
			t.Errorf("CommissionBase = %v, want 9000", got.CommissionBase)
		}
		if got.Amount != 900 {
			t.Fatalf("Amount = %v, want 900", got.Amount)
		}
		if got.SalaryRequired {
			t.Errorf("SalaryRequired should be false when salary supplied")
		}
	})

	t.Run("deduction exceeds gp clamps to zero", func(t *testing.T) {
		got := CalculateCommission(1000, rule, 2.0, floatPtr(3000))
		if got.CommissionBase != 0 || got.Amount != 0 {
			t.Fatalf("base/amount = %v/%v, want 0/0", got.CommissionBase, got.Amount)
		}
	})

	t.Run("missing salary flags incomplete", func(t *testing.T) {
		got := CalculateCommission(15000, rule, 2.0, nil)
		if !got.SalaryRequired {
			t.Fatalf("SalaryRequired = false, want true")
		}
	})
}

func TestCalculateCommissionTiered(t *testing.T) {
	rule := &CommissionRule{
		Salesperson: "Omar",
		FormulaType: FormulaTiered,
		Tiered: &TieredConfig{Tiers: []Tier{
			{Min: 0, Max: floatPtr(10000), Percentage: 5},
			{Min: 10000, Max: nil, Percentage: 8},
		}},
	}

	tests := []struct {
		name    string
		gp      float64
		wantPct float64
		wantAmt float64
	}{
		{"upper tier", 15000, 8, 1200},
		{"lower tier", 5000, 5, 250},
		{"boundary belongs to upper tier", 10000, 8, 800},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateCommission(tt.gp, rule, 2.0, nil)
			if got.Percentage != tt.wantPct {
				t.Errorf("Percentage = %v, want %v", got.Percentage, tt.wantPct)
			}
			if math.Abs(got.Amount-tt.wantAmt) > 1e-9 {
				t.Fatalf("Amount = %v, want %v", got.Amount, tt.wantAmt)
			}
		})
	}
}

func TestCalculateCommissionTieredBoundedTop(t *testing.T) {
	rule := &CommissionRule{
		FormulaType: FormulaTiered,
		Tiered: &TieredConfig{Tiers: []Tier{
			{Min: 0, Max: floatPtr(10000), Percentage: 5},
			{Min: 10000, Max: floatPtr(20000), Percentage: 8},
		}},
	}

	// Above every tier bound the top tier percentage applies to the full
	// gross profit.
	got := CalculateCommission(25000, rule, 2.0, nil)
	if got.Percentage != 8 {
		t.Errorf("Percentage = %v, want 8", got.Percentage)
	}
	if got.Amount != 2000 {
		t.Fatalf("Amount = %v, want 2000", got.Amount)
	}
}

func TestCalculateCommissionTieredBelowThreshold(t *testing.T) {
	rule := &CommissionRule{
		FormulaType: FormulaTiered,
		Tiered: &TieredConfig{Tiers: []Tier{
			{Min: 5000, Max: nil, Percentage: 6},
		}},
	}
	got := CalculateCommission(1000, rule, 2.0, nil)
	if !got.BelowThreshold {
		t.Fatalf("BelowThreshold = false, want true")
	}
	if got.Amount != 0 {
		t.Errorf("Amount = %v, want 0", got.Amount)
	}
}

func TestCalculateCommissionUnrecognizedFormula(t *testing.T) {
	rule := &CommissionRule{
		FormulaType: FormulaType("percent_of_revenue"),
	}
	got := CalculateCommission(1000, rule, 2.0, nil)
	if !got.Unrecognized {
		t.Fatalf("Unrecognized = false, want true")
	}
	if got.Amount != 20 {
		t.Errorf("Amount = %v, want default-rate 20", got.Amount)
	}
}
