package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inspection-service/internal/api/dto"
	"github.com/spec-kit/inspection-service/internal/domain"
	"github.com/spec-kit/inspection-service/internal/mirror"
	"github.com/spec-kit/inspection-service/internal/service"
)

// LocationsHandler serves location reads from the live mirror and
// routes writes through the data service.
type LocationsHandler struct {
	data   *service.DataService
	mirror *mirror.Mirror
}

// NewLocationsHandler constructs handler.
func NewLocationsHandler(data *service.DataService, m *mirror.Mirror) *LocationsHandler {
	return &LocationsHandler{data: data, mirror: m}
}

// List handles GET /api/locations.
func (h *LocationsHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.NewLocationList(h.mirror.Locations())})
}

// Create handles POST /api/locations. The first inspection for the
// location is scheduled as part of the same operation.
func (h *LocationsHandler) Create(c *fiber.Ctx) error {
	var req dto.LocationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.DepartmentID == "" {
		return fiber.NewError(http.StatusBadRequest, "name and department_id required")
	}

	loc := &domain.Location{
		Name:          req.Name,
		DepartmentID:  req.DepartmentID,
		Supervisor:    req.Supervisor,
		ContactNumber: req.ContactNumber,
	}
	id, err := h.data.CreateLocation(c.Context(), loc)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"id": id}})
}

// Update handles PATCH /api/locations/:id.
func (h *LocationsHandler) Update(c *fiber.Ctx) error {
	var req dto.LocationPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.data.UpdateLocation(c.Context(), c.Params("id"), req.Patch()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"ok": true}})
}

// Delete handles DELETE /api/locations/:id.
func (h *LocationsHandler) Delete(c *fiber.Ctx) error {
	if err := h.data.DeleteLocation(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"ok": true}})
}
