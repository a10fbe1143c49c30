package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/freight-ops/internal/authz"
	"github.com/spec-kit/freight-ops/internal/domain"
	apperrors "github.com/spec-kit/freight-ops/pkg/util"
)

// RequireRole ensures the operator holds one of the allowed roles.
func RequireRole(allowed ...domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Operator == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowed) == 0 {
			return c.Next()
		}
		if !principal.Operator.HasAnyRole(allowed...) {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequirePageAccess enforces the static role-to-page table against the
// request path.
func RequirePageAccess() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Operator == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !authz.CanAccessPage(principal.Operator.Roles, c.Path()) {
			return apperrors.NewForbidden("page not permitted for held roles")
		}
		return c.Next()
	}
}
