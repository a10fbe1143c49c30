package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/freight-ops/internal/api/dto"
	"github.com/spec-kit/freight-ops/internal/service"
)

// ReportsHandler serves the payables, collections and commission
// estimate aggregations.
type ReportsHandler struct {
	service *service.ReportingService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportingService *service.ReportingService) *ReportsHandler {
	return &ReportsHandler{service: reportingService}
}

// Payables GET /reports/payables.
func (h *ReportsHandler) Payables(c *fiber.Ctx) error {
	payables, err := h.service.Payables(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.PayableResponse, 0, len(payables))
	for _, p := range payables {
		items = append(items, dto.PayableResponse{
			ShipmentID:  p.ShipmentID,
			ReferenceID: p.ReferenceID,
			Salesperson: p.Salesperson,
			Agent:       p.Agent,
			Amount:      p.Amount,
			Stage:       p.Stage,
			ReminderAt:  p.ReminderAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// Collections GET /reports/collections.
func (h *ReportsHandler) Collections(c *fiber.Ctx) error {
	collections, err := h.service.Collections(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.CollectionResponse, 0, len(collections))
	for _, col := range collections {
		items = append(items, dto.CollectionResponse{
			ShipmentID:  col.ShipmentID,
			ReferenceID: col.ReferenceID,
			Salesperson: col.Salesperson,
			ClientName:  col.ClientName,
			Amount:      col.Amount,
			DueAt:       col.DueAt,
			Overdue:     col.Overdue,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// CommissionEstimates GET /reports/commission-estimates.
func (h *ReportsHandler) CommissionEstimates(c *fiber.Ctx) error {
	estimates, err := h.service.CommissionEstimates(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.CommissionEstimateResponse, 0, len(estimates))
	for _, est := range estimates {
		items = append(items, dto.CommissionEstimateResponse{
			Salesperson:     est.Salesperson,
			ShipmentCount:   est.ShipmentCount,
			TotalProfit:     est.TotalProfit,
			TotalCommission: est.TotalCommission,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}
