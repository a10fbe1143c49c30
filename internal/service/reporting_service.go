package service

import (
	"context"
	"time"

	"github.com/spec-kit/freight-ops/internal/domain"
	"github.com/spec-kit/freight-ops/internal/repository"
)

// ReportingService computes the read-side aggregations over the
// shipment collection. Results are recomputed on every call.
type ReportingService struct {
	shipments    repository.ShipmentRepository
	exportHub    string
	estimateRate float64
}

// NewReportingService constructs the service.
func NewReportingService(shipments repository.ShipmentRepository, exportHub string, estimateRate float64) *ReportingService {
	return &ReportingService{shipments: shipments, exportHub: exportHub, estimateRate: estimateRate}
}

// Payables returns outstanding agent payments with reminder dates.
func (s *ReportingService) Payables(ctx context.Context) ([]domain.Payable, error) {
	shipments, err := s.shipments.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return domain.PayablesDue(shipments, s.exportHub, time.Now()), nil
}

// Collections returns outstanding client payments with due dates.
func (s *ReportingService) Collections(ctx context.Context) ([]domain.Collection, error) {
	shipments, err := s.shipments.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return domain.CollectionsDue(shipments, time.Now()), nil
}

// CommissionEstimates returns the legacy per-salesperson flat-rate view.
func (s *ReportingService) CommissionEstimates(ctx context.Context) ([]domain.CommissionEstimate, error) {
	shipments, err := s.shipments.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return domain.CommissionEstimates(shipments, s.estimateRate), nil
}
