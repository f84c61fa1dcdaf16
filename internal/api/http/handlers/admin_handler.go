package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inspection-service/internal/api/dto"
	"github.com/spec-kit/inspection-service/internal/auth"
	"github.com/spec-kit/inspection-service/internal/domain"
	"github.com/spec-kit/inspection-service/internal/service"
	apperrors "github.com/spec-kit/inspection-service/pkg/util"
)

// AdminHandler exposes the privileged gateway surface. It resolves the
// caller from the session cookie itself, independent of the regular
// auth middleware, and always answers either {"ok":true} or
// {"error":...} with 401 or 500. The service re-validates the Admin
// role again, so the check fails closed even if this wiring drifts.
type AdminHandler struct {
	admin    *service.AdminService
	tokens   *auth.TokenManager
	resolver auth.SessionResolver
}

// NewAdminHandler constructs handler.
func NewAdminHandler(admin *service.AdminService, tokens *auth.TokenManager, resolver auth.SessionResolver) *AdminHandler {
	return &AdminHandler{admin: admin, tokens: tokens, resolver: resolver}
}

// DeleteUser handles DELETE /admin/users/:uid.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	caller := h.callerProfile(c)
	if err := h.admin.DeleteUser(c.Context(), caller, c.Params("uid")); err != nil {
		return gatewayError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// SetClaims handles POST /admin/users/:uid/set-claims.
func (h *AdminHandler) SetClaims(c *fiber.Ctx) error {
	var req dto.SetClaimsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	caller := h.callerProfile(c)
	if err := h.admin.SetAdminClaim(c.Context(), caller, c.Params("uid"), req.Admin); err != nil {
		return gatewayError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// callerProfile resolves the session cookie into the caller's profile.
// Any failure along the way yields nil, which the service rejects as
// not provably Admin.
func (h *AdminHandler) callerProfile(c *fiber.Ctx) *domain.AppUser {
	token := auth.SessionToken(c)
	if token == "" {
		return nil
	}
	claims, err := h.tokens.ParseToken(token)
	if err != nil {
		return nil
	}
	identity, profile, err := h.resolver.Resolve(c.Context(), claims.IdentityID)
	if err != nil || identity == nil {
		return nil
	}
	return profile
}

// gatewayError renders the gateway's fixed error contract: 401 when the
// caller cannot be proven Admin, 500 for everything else.
func gatewayError(c *fiber.Ctx, err error) error {
	domainErr := apperrors.ToDomainError(err)
	status := http.StatusInternalServerError
	if domainErr.HTTPStatus == http.StatusUnauthorized || domainErr.HTTPStatus == http.StatusForbidden {
		status = http.StatusUnauthorized
	}
	return c.Status(status).JSON(fiber.Map{"error": domainErr.Message})
}
