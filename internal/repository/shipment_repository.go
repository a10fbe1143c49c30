package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/freight-ops/internal/domain"
)

// ShipmentFilter captures listing parameters.
type ShipmentFilter struct {
	Salesperson      *string
	Stages           []domain.Stage
	Agent            *string
	AgentPaid        *bool
	PaymentCollected *bool
	SearchTerm       *string
	CreatedFrom      *time.Time
	CreatedTo        *time.Time
	Limit            int
	Offset           int
}

// ShipmentRepository encapsulates shipment persistence.
type ShipmentRepository interface {
	Create(ctx context.Context, shipment *domain.Shipment) error
	Update(ctx context.Context, shipment *domain.Shipment) error
	GetByID(ctx context.Context, id string) (*domain.Shipment, error)
	GetByReferenceID(ctx context.Context, refID string) (*domain.Shipment, error)
	ListBySalesperson(ctx context.Context, salesperson string) ([]domain.Shipment, error)
	ListAll(ctx context.Context) ([]domain.Shipment, error)
	ListWithFilter(ctx context.Context, filter ShipmentFilter) ([]domain.Shipment, error)
}

type shipmentRepository struct {
	pool *pgxpool.Pool
}

// NewShipmentRepository instantiates repository.
func NewShipmentRepository(pool *pgxpool.Pool) ShipmentRepository {
	return &shipmentRepository{pool: pool}
}

const shipmentColumns = `id, reference_id, salesperson, client_name, stage, origin, destination,
               port_of_loading, port_of_discharge, etd, eta,
               selling_price_per_unit, cost_per_unit, quantity, total_profit, total_invoice_amount,
               agent, agent_cost, agent_paid, payment_terms, payment_collected,
               created_at, updated_at, completed_at`

func (r *shipmentRepository) Create(ctx context.Context, shipment *domain.Shipment) error {
	const query = `
        INSERT INTO shipments (reference_id, salesperson, client_name, stage, origin, destination,
            port_of_loading, port_of_discharge, etd, eta,
            selling_price_per_unit, cost_per_unit, quantity, total_profit, total_invoice_amount,
            agent, agent_cost, agent_paid, payment_terms, payment_collected)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		shipment.ReferenceID,
		shipment.Salesperson,
		shipment.ClientName,
		shipment.Stage,
		shipment.Origin,
		shipment.Destination,
		shipment.PortOfLoading,
		shipment.PortOfDischarge,
		shipment.ETD,
		shipment.ETA,
		shipment.SellingPricePerUnit,
		shipment.CostPerUnit,
		shipment.Quantity,
		shipment.TotalProfit,
		shipment.TotalInvoiceAmount,
		shipment.Agent,
		shipment.AgentCost,
		shipment.AgentPaid,
		shipment.PaymentTerms,
		shipment.PaymentCollected,
	).Scan(&shipment.ID, &shipment.CreatedAt, &shipment.UpdatedAt)
}

func (r *shipmentRepository) Update(ctx context.Context, shipment *domain.Shipment) error {
	const query = `
        UPDATE shipments SET client_name=$1, stage=$2, origin=$3, destination=$4,
            port_of_loading=$5, port_of_discharge=$6, etd=$7, eta=$8,
            selling_price_per_unit=$9, cost_per_unit=$10, quantity=$11,
            total_profit=$12, total_invoice_amount=$13,
            agent=$14, agent_cost=$15, agent_paid=$16, payment_terms=$17, payment_collected=$18,
            completed_at=$19, updated_at=NOW()
        WHERE id=$20`
	cmd, err := r.pool.Exec(ctx, query,
		shipment.ClientName,
		shipment.Stage,
		shipment.Origin,
		shipment.Destination,
		shipment.PortOfLoading,
		shipment.PortOfDischarge,
		shipment.ETD,
		shipment.ETA,
		shipment.SellingPricePerUnit,
		shipment.CostPerUnit,
		shipment.Quantity,
		shipment.TotalProfit,
		shipment.TotalInvoiceAmount,
		shipment.Agent,
		shipment.AgentCost,
		shipment.AgentPaid,
		shipment.PaymentTerms,
		shipment.PaymentCollected,
		shipment.CompletedAt,
		shipment.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *shipmentRepository) GetByID(ctx context.Context, id string) (*domain.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *shipmentRepository) GetByReferenceID(ctx context.Context, refID string) (*domain.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE reference_id=$1`
	return r.fetchSingle(ctx, query, refID)
}

func (r *shipmentRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Shipment, error) {
	var s domain.Shipment
	if err := scanShipment(r.pool.QueryRow(ctx, query, arg), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *shipmentRepository) ListBySalesperson(ctx context.Context, salesperson string) ([]domain.Shipment, error) {
	return r.ListWithFilter(ctx, ShipmentFilter{Salesperson: &salesperson, Limit: -1})
}

func (r *shipmentRepository) ListAll(ctx context.Context) ([]domain.Shipment, error) {
	return r.ListWithFilter(ctx, ShipmentFilter{Limit: -1})
}

func (r *shipmentRepository) ListWithFilter(ctx context.Context, filter ShipmentFilter) ([]domain.Shipment, error) {
	base := `SELECT ` + shipmentColumns + ` FROM shipments`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Salesperson != nil {
		args = append(args, *filter.Salesperson)
		clauses = append(clauses, fmt.Sprintf("salesperson=$%d", len(args)))
	}
	if len(filter.Stages) > 0 {
		placeholders := make([]string, len(filter.Stages))
		for i, stage := range filter.Stages {
			args = append(args, stage)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("stage IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.Agent != nil {
		args = append(args, *filter.Agent)
		clauses = append(clauses, fmt.Sprintf("agent=$%d", len(args)))
	}
	if filter.AgentPaid != nil {
		args = append(args, *filter.AgentPaid)
		clauses = append(clauses, fmt.Sprintf("agent_paid=$%d", len(args)))
	}
	if filter.PaymentCollected != nil {
		args = append(args, *filter.PaymentCollected)
		clauses = append(clauses, fmt.Sprintf("payment_collected=$%d", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(reference_id) LIKE %s OR LOWER(client_name) LIKE %s)", placeholder, placeholder))
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY created_at DESC", base, strings.Join(clauses, " AND "))
	if filter.Limit > 0 {
		offset := filter.Offset
		if offset < 0 {
			offset = 0
		}
		query = fmt.Sprintf("%s LIMIT %d OFFSET %d", query, filter.Limit, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanShipments(rows)
}

func scanShipment(row pgx.Row, s *domain.Shipment) error {
	return row.Scan(
		&s.ID,
		&s.ReferenceID,
		&s.Salesperson,
		&s.ClientName,
		&s.Stage,
		&s.Origin,
		&s.Destination,
		&s.PortOfLoading,
		&s.PortOfDischarge,
		&s.ETD,
		&s.ETA,
		&s.SellingPricePerUnit,
		&s.CostPerUnit,
		&s.Quantity,
		&s.TotalProfit,
		&s.TotalInvoiceAmount,
		&s.Agent,
		&s.AgentCost,
		&s.AgentPaid,
		&s.PaymentTerms,
		&s.PaymentCollected,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.CompletedAt,
	)
}

func scanShipments(rows pgx.Rows) ([]domain.Shipment, error) {
	var result []domain.Shipment
	for rows.Next() {
		var s domain.Shipment
		if err := scanShipment(rows, &s); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
