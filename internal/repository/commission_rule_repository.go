package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/freight-ops/internal/domain"
)

// CommissionRuleRepository manages per-salesperson rule persistence.
// The unique salesperson key keeps at most one active rule per person.
type CommissionRuleRepository interface {
	Upsert(ctx context.Context, rule *domain.CommissionRule) error
	GetBySalesperson(ctx context.Context, salesperson string) (*domain.CommissionRule, error)
	List(ctx context.Context) ([]domain.CommissionRule, error)
	Deactivate(ctx context.Context, salesperson string) error
}

type commissionRuleRepository struct {
	pool *pgxpool.Pool
}

// NewCommissionRuleRepository constructs repository.
func NewCommissionRuleRepository(pool *pgxpool.Pool) CommissionRuleRepository {
	return &commissionRuleRepository{pool: pool}
}

func (r *commissionRuleRepository) Upsert(ctx context.Context, rule *domain.CommissionRule) error {
	configJSON, err := marshalRuleConfig(rule)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO commission_rules (salesperson, formula_type, config, active)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (salesperson) DO UPDATE
            SET formula_type=EXCLUDED.formula_type, config=EXCLUDED.config,
                active=EXCLUDED.active, updated_at=NOW()
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		rule.Salesperson,
		rule.FormulaType,
		configJSON,
		rule.Active,
	).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)
}

func (r *commissionRuleRepository) GetBySalesperson(ctx context.Context, salesperson string) (*domain.CommissionRule, error) {
	const query = `
        SELECT id, salesperson, formula_type, config, active, created_at, updated_at
        FROM commission_rules WHERE salesperson=$1 AND active`
	return scanRule(r.pool.QueryRow(ctx, query, salesperson))
}

func (r *commissionRuleRepository) List(ctx context.Context) ([]domain.CommissionRule, error) {
	const query = `
        SELECT id, salesperson, formula_type, config, active, created_at, updated_at
        FROM commission_rules ORDER BY salesperson`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CommissionRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rule)
	}
	return result, rows.Err()
}

func (r *commissionRuleRepository) Deactivate(ctx context.Context, salesperson string) error {
	const query = `UPDATE commission_rules SET active=FALSE, updated_at=NOW() WHERE salesperson=$1`
	cmd, err := r.pool.Exec(ctx, query, salesperson)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanRule(row pgx.Row) (*domain.CommissionRule, error) {
	var rule domain.CommissionRule
	var configJSON []byte
	if err := row.Scan(
		&rule.ID,
		&rule.Salesperson,
		&rule.FormulaType,
		&configJSON,
		&rule.Active,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := unmarshalRuleConfig(&rule, configJSON); err != nil {
		return nil, err
	}
	return &rule, nil
}

func marshalRuleConfig(rule *domain.CommissionRule) ([]byte, error) {
	switch rule.FormulaType {
	case domain.FormulaFlatPercentage:
		return json.Marshal(rule.Flat)
	case domain.FormulaGPMinusSalary:
		return json.Marshal(rule.Salary)
	case domain.FormulaTiered:
		return json.Marshal(rule.Tiered)
	default:
		return nil, fmt.Errorf("unknown formula type %q", rule.FormulaType)
	}
}

func unmarshalRuleConfig(rule *domain.CommissionRule, configJSON []byte) error {
	if len(configJSON) == 0 {
		return nil
	}
	switch rule.FormulaType {
	case domain.FormulaFlatPercentage:
		rule.Flat = &domain.FlatConfig{}
		return json.Unmarshal(configJSON, rule.Flat)
	case domain.FormulaGPMinusSalary:
		rule.Salary = &domain.SalaryConfig{}
		return json.Unmarshal(configJSON, rule.Salary)
	case domain.FormulaTiered:
		rule.Tiered = &domain.TieredConfig{}
		return json.Unmarshal(configJSON, rule.Tiered)
	}
	// Unknown formula types keep their raw config unparsed; the engine
	// falls back to the default flat computation for them.
	return nil
}
