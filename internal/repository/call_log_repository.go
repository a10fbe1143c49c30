package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/freight-ops/internal/domain"
)

// CallLogRepository manages logged-call persistence.
type CallLogRepository interface {
	Create(ctx context.Context, log *domain.CallLog) error
	ListByContact(ctx context.Context, contactID string) ([]domain.CallLog, error)
}

type callLogRepository struct {
	pool *pgxpool.Pool
}

// NewCallLogRepository instantiates repository.
func NewCallLogRepository(pool *pgxpool.Pool) CallLogRepository {
	return &callLogRepository{pool: pool}
}

func (r *callLogRepository) Create(ctx context.Context, log *domain.CallLog) error {
	const query = `
        INSERT INTO call_logs (contact_id, outcome, notes, follow_up_at, called_at)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		log.ContactID,
		log.Outcome,
		log.Notes,
		log.FollowUpAt,
		log.CalledAt,
	).Scan(&log.ID, &log.CreatedAt)
}

func (r *callLogRepository) ListByContact(ctx context.Context, contactID string) ([]domain.CallLog, error) {
	const query = `
        SELECT id, contact_id, outcome, notes, follow_up_at, called_at, created_at
        FROM call_logs WHERE contact_id=$1 ORDER BY called_at DESC`
	rows, err := r.pool.Query(ctx, query, contactID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CallLog
	for rows.Next() {
		var log domain.CallLog
		if err := rows.Scan(
			&log.ID,
			&log.ContactID,
			&log.Outcome,
			&log.Notes,
			&log.FollowUpAt,
			&log.CalledAt,
			&log.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, log)
	}
	return result, rows.Err()
}
