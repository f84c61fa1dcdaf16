package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inspection-service/internal/domain"
	apperrors "github.com/spec-kit/inspection-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller: the credential-store
// identity plus its application profile. Profile may be nil while the
// first resolution is still pending; every predicate treats that as
// unauthorized.
type Principal struct {
	Identity *domain.Identity
	Profile  *domain.AppUser
}

// SessionResolver resolves an identity ID into identity and profile,
// synthesizing a default profile when none exists yet.
type SessionResolver interface {
	Resolve(ctx context.Context, identityID string) (*domain.Identity, *domain.AppUser, error)
}

// AuthMiddleware validates session tokens and loads principals.
type AuthMiddleware struct {
	tokens   *TokenManager
	resolver SessionResolver
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, resolver SessionResolver) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, resolver: resolver}
}

// SessionToken extracts the session token from the cookie or the
// Authorization header. Empty string when absent.
func SessionToken(c *fiber.Ctx) string {
	if cookie := c.Cookies(SessionCookie); cookie != "" {
		return cookie
	}
	authHeader := c.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token := SessionToken(c)
	if token == "" {
		return apperrors.NewUnauthorized("missing session")
	}

	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		return apperrors.NewUnauthorized("invalid session")
	}

	identity, profile, err := m.resolver.Resolve(c.Context(), claims.IdentityID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if identity == nil {
		return apperrors.NewUnauthorized("identity not found")
	}

	c.Locals(principalKey, &Principal{Identity: identity, Profile: profile})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
