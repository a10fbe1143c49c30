package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/freight-ops/internal/api/dto"
	"github.com/spec-kit/freight-ops/internal/domain"
	"github.com/spec-kit/freight-ops/internal/service"
	apperrors "github.com/spec-kit/freight-ops/pkg/util"
)

// CommissionsHandler manages commission rule and payout endpoints.
type CommissionsHandler struct {
	service *service.CommissionService
}

// NewCommissionsHandler constructs handler.
func NewCommissionsHandler(commissionService *service.CommissionService) *CommissionsHandler {
	return &CommissionsHandler{service: commissionService}
}

// UpsertRule PUT /commission-rules.
func (h *CommissionsHandler) UpsertRule(c *fiber.Ctx) error {
	var req dto.UpsertRuleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Salesperson) == "" {
		return apperrors.NewValidationError("salesperson required", nil)
	}

	rule := &domain.CommissionRule{
		Salesperson: strings.TrimSpace(req.Salesperson),
		FormulaType: req.FormulaType,
		Flat:        req.Flat,
		Salary:      req.Salary,
		Tiered:      req.Tiered,
	}
	if err := h.service.UpsertRule(c.UserContext(), rule); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ruleResponse(rule)})
}

// ListRules GET /commission-rules.
func (h *CommissionsHandler) ListRules(c *fiber.Ctx) error {
	rules, err := h.service.ListRules(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.RuleResponse, 0, len(rules))
	for i := range rules {
		items = append(items, ruleResponse(&rules[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetRule GET /commission-rules/:salesperson.
func (h *CommissionsHandler) GetRule(c *fiber.Ctx) error {
	salesperson := c.Params("salesperson")
	rule, err := h.service.GetRule(c.UserContext(), salesperson)
	if err != nil {
		return err
	}
	if rule == nil {
		return apperrors.NewNotFound("commission rule", map[string]any{"salesperson": salesperson})
	}
	return c.JSON(fiber.Map{"data": ruleResponse(rule)})
}

// DeactivateRule DELETE /commission-rules/:salesperson.
func (h *CommissionsHandler) DeactivateRule(c *fiber.Ctx) error {
	if err := h.service.DeactivateRule(c.UserContext(), c.Params("salesperson")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Breakdown POST /commission-rules/breakdown.
func (h *CommissionsHandler) Breakdown(c *fiber.Ctx) error {
	var req dto.BreakdownRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Salesperson) == "" {
		return apperrors.NewValidationError("salesperson required", nil)
	}
	breakdown, err := h.service.Breakdown(c.UserContext(), req.Salesperson, req.GrossProfit, req.Salary)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": breakdown})
}

// Payouts POST /commission-rules/payouts. The body supplies monthly
// salaries per salesperson for gp_minus_salary rules.
func (h *CommissionsHandler) Payouts(c *fiber.Ctx) error {
	var req struct {
		Salaries map[string]float64 `json:"salaries"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	payouts, err := h.service.Payouts(c.UserContext(), req.Salaries)
	if err != nil {
		return err
	}
	items := make([]dto.PayoutResponse, 0, len(payouts))
	for _, payout := range payouts {
		items = append(items, dto.PayoutResponse{
			Salesperson:    payout.Salesperson,
			ShipmentCount:  payout.ShipmentCount,
			TotalProfit:    payout.TotalProfit,
			TotalAmount:    payout.TotalAmount,
			SalaryRequired: payout.SalaryRequired,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

func ruleResponse(rule *domain.CommissionRule) dto.RuleResponse {
	return dto.RuleResponse{
		ID:          rule.ID,
		Salesperson: rule.Salesperson,
		FormulaType: rule.FormulaType,
		Flat:        rule.Flat,
		Salary:      rule.Salary,
		Tiered:      rule.Tiered,
		Active:      rule.Active,
		CreatedAt:   rule.CreatedAt,
		UpdatedAt:   rule.UpdatedAt,
	}
}
