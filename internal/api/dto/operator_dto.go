package dto

import (
	"time"

	"github.com/spec-kit/freight-ops/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterOperatorRequest payload.
type RegisterOperatorRequest struct {
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Password  string            `json:"password"`
	Roles     []domain.UserRole `json:"roles"`
	RefPrefix string            `json:"ref_prefix"`
}

// OperatorResponse describes an operator account.
type OperatorResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Roles     []domain.UserRole `json:"roles"`
	RefPrefix string            `json:"ref_prefix"`
	Active    bool              `json:"active"`
	CreatedAt time.Time         `json:"created_at"`
}

// LoginResponse bundles the operator and token.
type LoginResponse struct {
	Operator  OperatorResponse `json:"operator"`
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ResetRequestPayload payload.
type ResetRequestPayload struct {
	Email string `json:"email"`
}

// ResetConfirmPayload payload.
type ResetConfirmPayload struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}
