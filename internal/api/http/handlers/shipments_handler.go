package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/freight-ops/internal/api/dto"
	"github.com/spec-kit/freight-ops/internal/auth"
	"github.com/spec-kit/freight-ops/internal/authz"
	"github.com/spec-kit/freight-ops/internal/domain"
	"github.com/spec-kit/freight-ops/internal/service"
	apperrors "github.com/spec-kit/freight-ops/pkg/util"
)

// ShipmentsHandler manages shipment endpoints.
type ShipmentsHandler struct {
	shipments   *service.ShipmentService
	commissions *service.CommissionService
}

// NewShipmentsHandler constructs handler.
func NewShipmentsHandler(shipments *service.ShipmentService, commissions *service.CommissionService) *ShipmentsHandler {
	return &ShipmentsHandler{shipments: shipments, commissions: commissions}
}

// Create POST /shipments.
func (h *ShipmentsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Operator == nil {
		return apperrors.NewUnauthorized("operator required")
	}
	var req dto.CreateShipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Salesperson) == "" || strings.TrimSpace(req.ClientName) == "" {
		return apperrors.NewValidationError("salesperson, client_name required", nil)
	}

	input := service.ShipmentCreateInput{
		Salesperson:         req.Salesperson,
		ClientName:          req.ClientName,
		Origin:              req.Origin,
		Destination:         req.Destination,
		PortOfLoading:       req.PortOfLoading,
		PortOfDischarge:     req.PortOfDischarge,
		ETD:                 req.ETD,
		ETA:                 req.ETA,
		SellingPricePerUnit: req.SellingPricePerUnit,
		CostPerUnit:         req.CostPerUnit,
		Quantity:            req.Quantity,
		Agent:               req.Agent,
		AgentCost:           req.AgentCost,
		PaymentTerms:        req.PaymentTerms,
	}
	shipment, err := h.shipments.Create(c.UserContext(), principal.Operator, input)
	if err != nil {
		return err
	}
	hidden := authz.HiddenFields(principal.Operator.Roles)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": shipmentSummary(shipment, hidden)})
}

// List GET /shipments.
func (h *ShipmentsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Operator == nil {
		return apperrors.NewUnauthorized("operator required")
	}
	filter := parseShipmentQuery(c)
	shipments, err := h.shipments.List(c.UserContext(), principal.Operator, filter)
	if err != nil {
		return err
	}
	hidden := authz.HiddenFields(principal.Operator.Roles)
	items := make([]dto.ShipmentSummary, 0, len(shipments))
	for i := range shipments {
		items = append(items, shipmentSummary(&shipments[i], hidden))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /shipments/:id.
func (h *ShipmentsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Operator == nil {
		return apperrors.NewUnauthorized("operator required")
	}
	shipment, err := h.shipments.Get(c.UserContext(), principal.Operator, c.Params("id"))
	if err != nil {
		return err
	}

	hidden := authz.HiddenFields(principal.Operator.Roles)
	var breakdown *domain.CommissionBreakdown
	if fieldVisible(hidden, "commissionAmount") {
		b, err := h.commissions.Breakdown(c.UserContext(), shipment.Salesperson, shipment.TotalProfit, nil)
		if err != nil {
			return err
		}
		breakdown = &b
	}
	return c.JSON(fiber.Map{"data": shipmentDetail(shipment, breakdown, hidden)})
}

// Update PATCH /shipments/:id.
func (h *ShipmentsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Operator == nil {
		return apperrors.NewUnauthorized("operator required")
	}
	var req dto.UpdateShipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if len(req.Fields) == 0 {
		return apperrors.NewValidationError("fields required", nil)
	}
	shipment, err := h.shipments.UpdateFields(c.UserContext(), principal.Operator, c.Params("id"), req.Fields)
	if err != nil {
		return err
	}
	hidden := authz.HiddenFields(principal.Operator.Roles)
	return c.JSON(fiber.Map{"data": shipmentSummary(shipment, hidden)})
}

// Transition POST /shipments/:id/stage.
func (h *ShipmentsHandler) Transition(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Operator == nil {
		return apperrors.NewUnauthorized("operator required")
	}
	var req dto.TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	shipment, err := h.shipments.TransitionStage(c.UserContext(), principal.Operator, c.Params("id"), req.Stage)
	if err != nil {
		return err
	}
	hidden := authz.HiddenFields(principal.Operator.Roles)
	return c.JSON(fiber.Map{"data": shipmentSummary(shipment, hidden)})
}

// Revert POST /shipments/:id/revert.
func (h *ShipmentsHandler) Revert(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Operator == nil {
		return apperrors.NewUnauthorized("operator required")
	}
	shipment, err := h.shipments.RevertStage(c.UserContext(), principal.Operator, c.Params("id"))
	if err != nil {
		return err
	}
	hidden := authz.HiddenFields(principal.Operator.Roles)
	return c.JSON(fiber.Map{"data": shipmentSummary(shipment, hidden)})
}

// CollectPayment POST /shipments/:id/collect.
func (h *ShipmentsHandler) CollectPayment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Operator == nil {
		return apperrors.NewUnauthorized("operator required")
	}
	shipment, err := h.shipments.MarkPaymentCollected(c.UserContext(), principal.Operator, c.Params("id"))
	if err != nil {
		return err
	}
	hidden := authz.HiddenFields(principal.Operator.Roles)
	return c.JSON(fiber.Map{"data": shipmentSummary(shipment, hidden)})
}

// PayAgent POST /shipments/:id/agent-paid.
func (h *ShipmentsHandler) PayAgent(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Operator == nil {
		return apperrors.NewUnauthorized("operator required")
	}
	shipment, err := h.shipments.MarkAgentPaid(c.UserContext(), principal.Operator, c.Params("id"))
	if err != nil {
		return err
	}
	hidden := authz.HiddenFields(principal.Operator.Roles)
	return c.JSON(fiber.Map{"data": shipmentSummary(shipment, hidden)})
}

// Lock POST /shipments/:id/lock.
func (h *ShipmentsHandler) Lock(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Operator == nil {
		return apperrors.NewUnauthorized("operator required")
	}
	lease, err := h.shipments.AcquireEditLease(c.UserContext(), principal.Operator, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LeaseResponse{
		Holder:     lease.Holder,
		AcquiredAt: lease.AcquiredAt,
		ExpiresAt:  lease.ExpiresAt(),
	}})
}

// Unlock DELETE /shipments/:id/lock.
func (h *ShipmentsHandler) Unlock(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Operator == nil {
		return apperrors.NewUnauthorized("operator required")
	}
	if err := h.shipments.ReleaseEditLease(c.UserContext(), principal.Operator, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func parseShipmentQuery(c *fiber.Ctx) service.ShipmentListFilter {
	filter := service.ShipmentListFilter{}
	if stageStr := c.Query("stage"); stageStr != "" {
		for _, part := range strings.Split(stageStr, ",") {
			filter.Stages = append(filter.Stages, domain.Stage(strings.TrimSpace(part)))
		}
	}
	if salesperson := c.Query("salesperson"); salesperson != "" {
		filter.Salesperson = &salesperson
	}
	if q := c.Query("q"); q != "" {
		filter.SearchTerm = &q
	}
	if from := parseTime(c.Query("created_from")); from != nil {
		filter.CreatedFrom = from
	}
	if to := parseTime(c.Query("created_to")); to != nil {
		filter.CreatedTo = to
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseTime(val string) *time.Time {
	if val == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil
	}
	return &t
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func fieldVisible(hidden map[string]struct{}, field string) bool {
	_, isHidden := hidden[field]
	return !isHidden
}

func maskedFloat(value float64, hidden map[string]struct{}, field string) *float64 {
	if !fieldVisible(hidden, field) {
		return nil
	}
	return &value
}

func shipmentSummary(shipment *domain.Shipment, hidden map[string]struct{}) dto.ShipmentSummary {
	return dto.ShipmentSummary{
		ID:                  shipment.ID,
		ReferenceID:         shipment.ReferenceID,
		Salesperson:         shipment.Salesperson,
		ClientName:          shipment.ClientName,
		Stage:               shipment.Stage,
		Origin:              shipment.Origin,
		Destination:         shipment.Destination,
		SellingPricePerUnit: maskedFloat(shipment.SellingPricePerUnit, hidden, "sellingPricePerUnit"),
		CostPerUnit:         maskedFloat(shipment.CostPerUnit, hidden, "costPerUnit"),
		TotalProfit:         shipment.TotalProfit,
		TotalInvoiceAmount:  shipment.TotalInvoiceAmount,
		AgentPaid:           shipment.AgentPaid,
		PaymentCollected:    shipment.PaymentCollected,
		CreatedAt:           shipment.CreatedAt,
		UpdatedAt:           shipment.UpdatedAt,
	}
}

func shipmentDetail(shipment *domain.Shipment, breakdown *domain.CommissionBreakdown, hidden map[string]struct{}) dto.ShipmentDetailResponse {
	return dto.ShipmentDetailResponse{
		ID:                  shipment.ID,
		ReferenceID:         shipment.ReferenceID,
		Salesperson:         shipment.Salesperson,
		ClientName:          shipment.ClientName,
		Stage:               shipment.Stage,
		Origin:              shipment.Origin,
		Destination:         shipment.Destination,
		PortOfLoading:       shipment.PortOfLoading,
		PortOfDischarge:     shipment.PortOfDischarge,
		ETD:                 shipment.ETD,
		ETA:                 shipment.ETA,
		SellingPricePerUnit: maskedFloat(shipment.SellingPricePerUnit, hidden, "sellingPricePerUnit"),
		CostPerUnit:         maskedFloat(shipment.CostPerUnit, hidden, "costPerUnit"),
		Quantity:            shipment.Quantity,
		TotalProfit:         shipment.TotalProfit,
		TotalInvoiceAmount:  shipment.TotalInvoiceAmount,
		Agent:               shipment.Agent,
		AgentCost:           shipment.AgentCost,
		AgentPaid:           shipment.AgentPaid,
		PaymentTerms:        shipment.PaymentTerms,
		PaymentCollected:    shipment.PaymentCollected,
		Commission:          breakdown,
		CreatedAt:           shipment.CreatedAt,
		UpdatedAt:           shipment.UpdatedAt,
		CompletedAt:         shipment.CompletedAt,
	}
}
