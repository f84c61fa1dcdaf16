package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inspection-service/internal/api/dto"
	"github.com/spec-kit/inspection-service/internal/auth"
	"github.com/spec-kit/inspection-service/internal/mirror"
	"github.com/spec-kit/inspection-service/internal/service"
)

// InspectionsHandler serves inspection reads from the live mirror and
// routes writes through the data service.
type InspectionsHandler struct {
	data   *service.DataService
	mirror *mirror.Mirror
}

// NewInspectionsHandler constructs handler.
func NewInspectionsHandler(data *service.DataService, m *mirror.Mirror) *InspectionsHandler {
	return &InspectionsHandler{data: data, mirror: m}
}

// List handles GET /api/inspections, ordered by date ascending.
func (h *InspectionsHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.NewInspectionList(h.mirror.Inspections())})
}

// Update handles PATCH /api/inspections/:id (rescheduling and the like).
func (h *InspectionsHandler) Update(c *fiber.Ctx) error {
	var req dto.InspectionPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.data.UpdateInspection(c.Context(), c.Params("id"), req.Patch()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"ok": true}})
}

// AssignSelf handles POST /api/inspections/:id/assign. The caller's
// display name lands in the requested slot, replacing any previous
// occupant.
func (h *InspectionsHandler) AssignSelf(c *fiber.Ctx) error {
	var req dto.AssignAuditorRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "not authenticated")
	}
	if err := h.data.AssignSelfAsAuditor(c.Context(), principal.Profile, c.Params("id"), req.Slot); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"ok": true}})
}

// ToggleStatus handles POST /api/inspections/:id/toggle-status.
func (h *InspectionsHandler) ToggleStatus(c *fiber.Ctx) error {
	status, err := h.data.ToggleInspectionStatus(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": string(status)}})
}
