package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/maintenance-service/internal/domain"
	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// RequireCompanyUser ensures the caller is authenticated and belongs to a company.
func RequireCompanyUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.User.CompanyID == nil {
			return apperrors.NewForbidden("user is not attached to a company")
		}
		return c.Next()
	}
}

// RequireRole ensures the caller holds one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
