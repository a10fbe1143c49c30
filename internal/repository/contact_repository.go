package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/freight-ops/internal/domain"
)

// ContactRepository manages tele-sales contact persistence.
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	Update(ctx context.Context, contact *domain.Contact) error
	GetByID(ctx context.Context, id string) (*domain.Contact, error)
	List(ctx context.Context, salesperson *string, limit, offset int) ([]domain.Contact, error)
}

type contactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository instantiates repository.
func NewContactRepository(pool *pgxpool.Pool) ContactRepository {
	return &contactRepository{pool: pool}
}

func (r *contactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	const query = `
        INSERT INTO contacts (name, company, phone, email, status, salesperson)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		contact.Name,
		contact.Company,
		contact.Phone,
		contact.Email,
		contact.Status,
		contact.Salesperson,
	).Scan(&contact.ID, &contact.CreatedAt, &contact.UpdatedAt)
}

func (r *contactRepository) Update(ctx context.Context, contact *domain.Contact) error {
	const query = `
        UPDATE contacts SET name=$1, company=$2, phone=$3, email=$4, status=$5, salesperson=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		contact.Name,
		contact.Company,
		contact.Phone,
		contact.Email,
		contact.Status,
		contact.Salesperson,
		contact.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *contactRepository) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	const query = `
        SELECT id, name, company, phone, email, status, salesperson, created_at, updated_at
        FROM contacts WHERE id=$1`
	var contact domain.Contact
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&contact.ID,
		&contact.Name,
		&contact.Company,
		&contact.Phone,
		&contact.Email,
		&contact.Status,
		&contact.Salesperson,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) List(ctx context.Context, salesperson *string, limit, offset int) ([]domain.Contact, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT id, name, company, phone, email, status, salesperson, created_at, updated_at
        FROM contacts`
	args := []any{}
	if salesperson != nil {
		args = append(args, *salesperson)
		query += ` WHERE salesperson=$1`
	}
	query += fmt.Sprintf(` ORDER BY updated_at DESC LIMIT %d OFFSET %d`, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Contact
	for rows.Next() {
		var contact domain.Contact
		if err := rows.Scan(
			&contact.ID,
			&contact.Name,
			&contact.Company,
			&contact.Phone,
			&contact.Email,
			&contact.Status,
			&contact.Salesperson,
			&contact.CreatedAt,
			&contact.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, contact)
	}
	return result, rows.Err()
}
