package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/freight-ops/internal/domain"
)

// OperatorRepository defines persistence access for operator accounts.
type OperatorRepository interface {
	Create(ctx context.Context, operator *domain.Operator) error
	Update(ctx context.Context, operator *domain.Operator) error
	GetByID(ctx context.Context, id string) (*domain.Operator, error)
	GetByEmail(ctx context.Context, email string) (*domain.Operator, error)
	List(ctx context.Context) ([]domain.Operator, error)
}

type operatorRepository struct {
	pool *pgxpool.Pool
}

// NewOperatorRepository returns a Postgres-backed implementation.
func NewOperatorRepository(pool *pgxpool.Pool) OperatorRepository {
	return &operatorRepository{pool: pool}
}

func (r *operatorRepository) Create(ctx context.Context, operator *domain.Operator) error {
	const query = `
        INSERT INTO operators (name, email, password_hash, roles, ref_prefix, active)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		operator.Name,
		operator.Email,
		operator.PasswordHash,
		rolesToStrings(operator.Roles),
		operator.RefPrefix,
		operator.Active,
	).Scan(&operator.ID, &operator.CreatedAt, &operator.UpdatedAt)
}

func (r *operatorRepository) Update(ctx context.Context, operator *domain.Operator) error {
	const query = `
        UPDATE operators SET name=$1, email=$2, password_hash=$3, roles=$4, ref_prefix=$5, active=$6, updated_at=NOW()
        WHERE id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		operator.Name,
		operator.Email,
		operator.PasswordHash,
		rolesToStrings(operator.Roles),
		operator.RefPrefix,
		operator.Active,
		operator.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *operatorRepository) GetByID(ctx context.Context, id string) (*domain.Operator, error) {
	const query = `
        SELECT id, name, email, password_hash, roles, ref_prefix, active, created_at, updated_at
        FROM operators WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *operatorRepository) GetByEmail(ctx context.Context, email string) (*domain.Operator, error) {
	const query = `
        SELECT id, name, email, password_hash, roles, ref_prefix, active, created_at, updated_at
        FROM operators WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *operatorRepository) List(ctx context.Context) ([]domain.Operator, error) {
	const query = `
        SELECT id, name, email, password_hash, roles, ref_prefix, active, created_at, updated_at
        FROM operators ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Operator
	for rows.Next() {
		var operator domain.Operator
		var roles []string
		if err := rows.Scan(
			&operator.ID,
			&operator.Name,
			&operator.Email,
			&operator.PasswordHash,
			&roles,
			&operator.RefPrefix,
			&operator.Active,
			&operator.CreatedAt,
			&operator.UpdatedAt,
		); err != nil {
			return nil, err
		}
		operator.Roles = rolesFromStrings(roles)
		result = append(result, operator)
	}
	return result, rows.Err()
}

func (r *operatorRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Operator, error) {
	var operator domain.Operator
	var roles []string
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&operator.ID,
		&operator.Name,
		&operator.Email,
		&operator.PasswordHash,
		&roles,
		&operator.RefPrefix,
		&operator.Active,
		&operator.CreatedAt,
		&operator.UpdatedAt,
	); err != nil {
		return nil, err
	}
	operator.Roles = rolesFromStrings(roles)
	return &operator, nil
}

func rolesToStrings(roles []domain.UserRole) []string {
	out := make([]string, len(roles))
	for i, role := range roles {
		out[i] = string(role)
	}
	return out
}

func rolesFromStrings(roles []string) []domain.UserRole {
	out := make([]domain.UserRole, len(roles))
	for i, role := range roles {
		out[i] = domain.UserRole(role)
	}
	return out
}
