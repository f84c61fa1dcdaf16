package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inspection-service/internal/api/dto"
	"github.com/spec-kit/inspection-service/internal/auth"
	"github.com/spec-kit/inspection-service/internal/domain"
	"github.com/spec-kit/inspection-service/internal/mirror"
	"github.com/spec-kit/inspection-service/internal/service"
)

// UsersHandler serves profile reads from the live mirror and routes
// profile and role writes through the data service.
type UsersHandler struct {
	data   *service.DataService
	mirror *mirror.Mirror
}

// NewUsersHandler constructs handler.
func NewUsersHandler(data *service.DataService, m *mirror.Mirror) *UsersHandler {
	return &UsersHandler{data: data, mirror: m}
}

// List handles GET /api/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.NewUserList(h.mirror.Users())})
}

// UpdateProfile handles PATCH /api/profile for the caller's own row.
func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.ProfilePatchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "not authenticated")
	}
	if err := h.data.UpdateUserProfile(c.Context(), principal.Profile, req.Patch()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"ok": true}})
}

// Verify handles POST /api/users/:uid/verify.
func (h *UsersHandler) Verify(c *fiber.Ctx) error {
	if err := h.data.VerifyUser(c.Context(), c.Params("uid")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"ok": true}})
}

// Update handles PATCH /api/users/:uid, e.g. department reassignment.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.ProfilePatchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.data.UpdateUserAdmin(c.Context(), c.Params("uid"), req.Patch()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"ok": true}})
}

// SetRoles handles PUT /api/users/:uid/roles. The response reports the
// store write and the claim mirror separately; a mirror failure is not
// rolled back and leaves the two stores divergent.
func (h *UsersHandler) SetRoles(c *fiber.Ctx) error {
	var req dto.SetRolesRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "not authenticated")
	}

	result, err := h.data.SetUserRoles(c.Context(), principal.Profile, c.Params("uid"), domain.ParseRoles(req.Roles))
	if err != nil {
		return err
	}

	response := dto.RoleUpdateResponse{
		StoreUpdated:   result.StoreUpdated,
		ClaimsMirrored: result.ClaimsMirrored,
	}
	if result.MirrorErr != nil {
		response.MirrorError = result.MirrorErr.Error()
	}
	return c.JSON(fiber.Map{"data": response})
}
