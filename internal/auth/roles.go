package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// RequireAdmin restricts a route to admin-typed identities. Must run
// after Authenticate has populated the identity context.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok || !identity.IsAdmin() {
			return apperrors.NewForbidden("Insufficient permissions")
		}
		return c.Next()
	}
}

// RequireUser restricts a route to end-user identities. Admin tokens do
// not satisfy user-scoped routes; the two record spaces are disjoint.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok || identity.Role != domain.RoleUser {
			return apperrors.NewForbidden("Insufficient permissions")
		}
		return c.Next()
	}
}
