package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/inspection-service/internal/auth"
)

const (
	landingPath  = "/"
	dashboard    = "/dashboard"
	overviewPath = "/dashboard/overview"
)

// RouteGate redirects sessions based on presence and verification
// status. It evaluates fresh on every navigation:
//
//   - protected path without a session redirects to the landing page;
//   - protected path with an unverified profile redirects to the
//     landing page with a reason marker;
//   - the landing page redirects verified sessions to the overview.
//
// The API, auth, gateway and health surfaces and static assets are
// outside the gate.
func RouteGate(tokens *auth.TokenManager, resolver auth.SessionResolver, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if gateExempt(path) {
			return c.Next()
		}

		profileStatus, sessionPresent := resolveSession(c, tokens, resolver, logger)

		if strings.HasPrefix(path, dashboard) {
			if !sessionPresent {
				return c.Redirect(landingPath, fiber.StatusFound)
			}
			if profileStatus != "Verified" {
				return c.Redirect(landingPath+"?reason=not_verified", fiber.StatusFound)
			}
			return c.Next()
		}

		if path == landingPath && sessionPresent && profileStatus == "Verified" {
			return c.Redirect(overviewPath, fiber.StatusFound)
		}
		return c.Next()
	}
}

// resolveSession reads the session token and re-reads the profile; an
// unparsable token or unknown identity counts as no session.
func resolveSession(c *fiber.Ctx, tokens *auth.TokenManager, resolver auth.SessionResolver, logger *zap.Logger) (string, bool) {
	token := auth.SessionToken(c)
	if token == "" {
		return "", false
	}
	claims, err := tokens.ParseToken(token)
	if err != nil {
		return "", false
	}
	identity, profile, err := resolver.Resolve(c.Context(), claims.IdentityID)
	if err != nil {
		logger.Warn("route gate resolution failed", zap.Error(err))
		return "", true
	}
	if identity == nil {
		return "", false
	}
	if profile == nil {
		return "", true
	}
	return string(profile.Status), true
}

func gateExempt(path string) bool {
	for _, prefix := range []string{"/api/", "/auth/", "/admin/", "/health/"} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	// static assets
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 && strings.Contains(path[idx:], ".") {
		return true
	}
	return false
}
