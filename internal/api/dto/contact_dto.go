package dto

import (
	"time"

	"github.com/spec-kit/freight-ops/internal/domain"
)

// CreateContactRequest payload.
type CreateContactRequest struct {
	Name        string `json:"name"`
	Company     string `json:"company"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Salesperson string `json:"salesperson"`
}

// UpdateContactStatusRequest payload.
type UpdateContactStatusRequest struct {
	Status domain.ContactStatus `json:"status"`
}

// LogCallRequest payload.
type LogCallRequest struct {
	Outcome    domain.CallOutcome `json:"outcome"`
	Notes      string             `json:"notes"`
	FollowUpAt *time.Time         `json:"follow_up_at"`
	CalledAt   *time.Time         `json:"called_at"`
}

// ContactResponse describes a contact.
type ContactResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Company     string               `json:"company"`
	Phone       string               `json:"phone"`
	Email       string               `json:"email"`
	Status      domain.ContactStatus `json:"status"`
	Salesperson string               `json:"salesperson"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// CallLogResponse describes a logged call.
type CallLogResponse struct {
	ID         string             `json:"id"`
	Outcome    domain.CallOutcome `json:"outcome"`
	Notes      string             `json:"notes"`
	FollowUpAt *time.Time         `json:"follow_up_at"`
	CalledAt   time.Time          `json:"called_at"`
}

// ContactDetailResponse bundles a contact with its call history.
type ContactDetailResponse struct {
	ContactResponse
	Calls []CallLogResponse `json:"calls"`
}
