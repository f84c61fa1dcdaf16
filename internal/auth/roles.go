package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inspection-service/internal/domain"
	apperrors "github.com/spec-kit/inspection-service/pkg/util"
)

// RequireVerified blocks sessions whose profile is not Verified,
// regardless of role.
func RequireVerified() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.Profile.IsVerified() {
			return apperrors.NewUnverified("account not verified")
		}
		return c.Next()
	}
}

// RequireRole ensures the caller's profile holds at least one of the
// allowed roles. Fails closed when the profile is absent.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.Profile.HasRole(allowed...) {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
