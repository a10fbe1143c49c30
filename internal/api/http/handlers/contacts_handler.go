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

// ContactsHandler manages tele-sales contact endpoints.
type ContactsHandler struct {
	service *service.ContactService
}

// NewContactsHandler constructs handler.
func NewContactsHandler(contactService *service.ContactService) *ContactsHandler {
	return &ContactsHandler{service: contactService}
}

// Create POST /contacts.
func (h *ContactsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Operator == nil {
		return apperrors.NewUnauthorized("operator required")
	}
	var req dto.CreateContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	salesperson := strings.TrimSpace(req.Salesperson)
	if salesperson == "" {
		salesperson = principal.Operator.Name
	}
	contact, err := h.service.Create(c.UserContext(), service.ContactCreateInput{
		Name:        req.Name,
		Company:     req.Company,
		Phone:       req.Phone,
		Email:       req.Email,
		Salesperson: salesperson,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": contactResponse(contact)})
}

// List GET /contacts.
func (h *ContactsHandler) List(c *fiber.Ctx) error {
	var salesperson *string
	if val := c.Query("salesperson"); val != "" {
		salesperson = &val
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)

	contacts, err := h.service.List(c.UserContext(), salesperson, pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	items := make([]dto.ContactResponse, 0, len(contacts))
	for i := range contacts {
		items = append(items, contactResponse(&contacts[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /contacts/:id.
func (h *ContactsHandler) Get(c *fiber.Ctx) error {
	contact, calls, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	callItems := make([]dto.CallLogResponse, 0, len(calls))
	for i := range calls {
		callItems = append(callItems, callLogResponse(&calls[i]))
	}
	return c.JSON(fiber.Map{"data": dto.ContactDetailResponse{
		ContactResponse: contactResponse(contact),
		Calls:           callItems,
	}})
}

// UpdateStatus PATCH /contacts/:id/status.
func (h *ContactsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateContactStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	contact, err := h.service.UpdateStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": contactResponse(contact)})
}

// LogCall POST /contacts/:id/calls.
func (h *ContactsHandler) LogCall(c *fiber.Ctx) error {
	var req dto.LogCallRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	log, err := h.service.LogCall(c.UserContext(), c.Params("id"), service.CallLogInput{
		Outcome:    req.Outcome,
		Notes:      req.Notes,
		FollowUpAt: req.FollowUpAt,
		CalledAt:   req.CalledAt,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": callLogResponse(log)})
}

func contactResponse(contact *domain.Contact) dto.ContactResponse {
	return dto.ContactResponse{
		ID:          contact.ID,
		Name:        contact.Name,
		Company:     contact.Company,
		Phone:       contact.Phone,
		Email:       contact.Email,
		Status:      contact.Status,
		Salesperson: contact.Salesperson,
		CreatedAt:   contact.CreatedAt,
		UpdatedAt:   contact.UpdatedAt,
	}
}

func callLogResponse(log *domain.CallLog) dto.CallLogResponse {
	return dto.CallLogResponse{
		ID:         log.ID,
		Outcome:    log.Outcome,
		Notes:      log.Notes,
		FollowUpAt: log.FollowUpAt,
		CalledAt:   log.CalledAt,
	}
}
