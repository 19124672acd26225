package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

const identityKey = "auth_identity"

// Middleware authenticates bearer tokens on protected routes. It is
// pure over the token: verification needs no I/O and the only effect
// is attaching the decoded identity to the request context.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs the authentication gate.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Authenticate enforces authentication for protected routes. A missing
// credential is Unauthorized; a failed verification is Forbidden, with
// expiry reported under its own code.
func (m *Middleware) Authenticate(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("Access token required")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("Access token required")
	}

	claims, err := m.tokens.Verify(parts[1])
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return apperrors.NewTokenExpired()
		}
		return apperrors.NewForbidden("Invalid or expired token")
	}

	identity, err := claims.Identity()
	if err != nil {
		return apperrors.NewForbidden("Invalid or expired token")
	}

	c.Locals(identityKey, identity)
	return c.Next()
}

// IdentityFromContext retrieves the authenticated identity.
func IdentityFromContext(c *fiber.Ctx) (domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return domain.Identity{}, false
	}
	identity, ok := val.(domain.Identity)
	return identity, ok
}
