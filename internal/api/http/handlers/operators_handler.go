package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/freight-ops/internal/api/dto"
	"github.com/spec-kit/freight-ops/internal/auth"
	"github.com/spec-kit/freight-ops/internal/domain"
	"github.com/spec-kit/freight-ops/internal/service"
	apperrors "github.com/spec-kit/freight-ops/pkg/util"
)

// OperatorsHandler manages operator account endpoints.
type OperatorsHandler struct {
	service *service.AuthService
}

// NewOperatorsHandler constructs handler.
func NewOperatorsHandler(authService *service.AuthService) *OperatorsHandler {
	return &OperatorsHandler{service: authService}
}

// Login POST /auth/login.
func (h *OperatorsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email, password required", nil)
	}

	operator, token, expiresAt, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Operator:  operatorResponse(operator),
		Token:     token,
		ExpiresAt: expiresAt,
	}})
}

// Register POST /auth/operators. Admin only at the route level.
func (h *OperatorsHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterOperatorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}
	if len(req.Roles) == 0 {
		return apperrors.NewValidationError("at least one role required", nil)
	}

	operator, err := h.service.RegisterOperator(c.UserContext(), req.Name, req.Email, req.Password, req.Roles, strings.ToUpper(req.RefPrefix))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": operatorResponse(operator)})
}

// Me GET /auth/me.
func (h *OperatorsHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Operator == nil {
		return apperrors.NewUnauthorized("operator required")
	}
	return c.JSON(fiber.Map{"data": operatorResponse(principal.Operator)})
}

// RequestPasswordReset POST /auth/password/reset/request.
func (h *OperatorsHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.ResetRequestPayload
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}

	// Do not leak account existence; a missing email still answers ok.
	if _, err := h.service.RequestPasswordReset(c.UserContext(), req.Email); err != nil {
		domainErr := apperrors.ToDomainError(err)
		if domainErr.Code != "NOT_FOUND" {
			return err
		}
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "ok"}})
}

// ConfirmPasswordReset POST /auth/password/reset/confirm.
func (h *OperatorsHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.ResetConfirmPayload
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Token == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("token, new_password required", nil)
	}
	if err := h.service.ConfirmPasswordReset(c.UserContext(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "ok"}})
}

// ChangePassword POST /auth/password/change.
func (h *OperatorsHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Operator == nil {
		return apperrors.NewUnauthorized("operator required")
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("current_password, new_password required", nil)
	}
	if err := h.service.ChangePassword(c.UserContext(), principal.Operator.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "ok"}})
}

func operatorResponse(operator *domain.Operator) dto.OperatorResponse {
	return dto.OperatorResponse{
		ID:        operator.ID,
		Name:      operator.Name,
		Email:     operator.Email,
		Roles:     operator.Roles,
		RefPrefix: operator.RefPrefix,
		Active:    operator.Active,
		CreatedAt: operator.CreatedAt,
	}
}
