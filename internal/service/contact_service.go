package service

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/freight-ops/internal/domain"
	"github.com/spec-kit/freight-ops/internal/repository"
	apperrors "github.com/spec-kit/freight-ops/pkg/util"
)

// ContactService coordinates the tele-sales contact and call-logging
// workflows.
type ContactService struct {
	contacts repository.ContactRepository
	calls    repository.CallLogRepository
}

// NewContactService constructs the service.
func NewContactService(contacts repository.ContactRepository, calls repository.CallLogRepository) *ContactService {
	return &ContactService{contacts: contacts, calls: calls}
}

// ContactCreateInput describes contact creation payload.
type ContactCreateInput struct {
	Name        string
	Company     string
	Phone       string
	Email       string
	Salesperson string
}

// CallLogInput describes a logged call.
type CallLogInput struct {
	Outcome    domain.CallOutcome
	Notes      string
	FollowUpAt *time.Time
	CalledAt   *time.Time
}

// Create registers a new tele-sales contact.
func (s *ContactService) Create(ctx context.Context, input ContactCreateInput) (*domain.Contact, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if strings.TrimSpace(input.Phone) == "" {
		return nil, apperrors.NewValidationError("phone required", nil)
	}

	contact := &domain.Contact{
		Name:        name,
		Company:     strings.TrimSpace(input.Company),
		Phone:       strings.TrimSpace(input.Phone),
		Email:       strings.TrimSpace(input.Email),
		Status:      domain.ContactStatusNew,
		Salesperson: strings.TrimSpace(input.Salesperson),
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// List returns contacts, optionally scoped to a salesperson.
func (s *ContactService) List(ctx context.Context, salesperson *string, limit, offset int) ([]domain.Contact, error) {
	return s.contacts.List(ctx, salesperson, limit, offset)
}

// Get fetches a contact with its call history.
func (s *ContactService) Get(ctx context.Context, id string) (*domain.Contact, []domain.CallLog, error) {
	contact, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	calls, err := s.calls.ListByContact(ctx, contact.ID)
	if err != nil {
		return nil, nil, err
	}
	return contact, calls, nil
}

// UpdateStatus moves a contact to a new outreach status.
func (s *ContactService) UpdateStatus(ctx context.Context, id string, status domain.ContactStatus) (*domain.Contact, error) {
	switch status {
	case domain.ContactStatusNew, domain.ContactStatusInProgress, domain.ContactStatusConverted, domain.ContactStatusDropped:
	default:
		return nil, apperrors.NewValidationError("unknown contact status", map[string]any{"status": status})
	}
	contact, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	contact.Status = status
	if err := s.contacts.Update(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// LogCall appends a call record to a contact. A follow_up outcome
// requires a follow-up date; an interested or converted outcome also
// advances the contact status.
func (s *ContactService) LogCall(ctx context.Context, contactID string, input CallLogInput) (*domain.CallLog, error) {
	if !domain.ValidCallOutcome(input.Outcome) {
		return nil, apperrors.NewValidationError("unknown call outcome", map[string]any{"outcome": input.Outcome})
	}
	if input.Outcome == domain.OutcomeFollowUp && input.FollowUpAt == nil {
		return nil, apperrors.NewValidationError("follow-up date required for follow_up outcome", nil)
	}

	contact, err := s.contacts.GetByID(ctx, contactID)
	if err != nil {
		return nil, err
	}

	calledAt := time.Now()
	if input.CalledAt != nil {
		calledAt = *input.CalledAt
	}
	log := &domain.CallLog{
		ContactID:  contact.ID,
		Outcome:    input.Outcome,
		Notes:      strings.TrimSpace(input.Notes),
		FollowUpAt: input.FollowUpAt,
		CalledAt:   calledAt,
	}
	if err := s.calls.Create(ctx, log); err != nil {
		return nil, err
	}

	newStatus := contact.Status
	switch input.Outcome {
	case domain.OutcomeConverted:
		newStatus = domain.ContactStatusConverted
	case domain.OutcomeInterested, domain.OutcomeFollowUp:
		if contact.Status == domain.ContactStatusNew {
			newStatus = domain.ContactStatusInProgress
		}
	case domain.OutcomeNotInterested:
		newStatus = domain.ContactStatusDropped
	}
	if newStatus != contact.Status {
		contact.Status = newStatus
		if err := s.contacts.Update(ctx, contact); err != nil {
			return nil, err
		}
	}
	return log, nil
}
