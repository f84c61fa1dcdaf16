package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inspection-service/internal/api/dto"
	"github.com/spec-kit/inspection-service/internal/domain"
	"github.com/spec-kit/inspection-service/internal/mirror"
	"github.com/spec-kit/inspection-service/internal/service"
)

// DepartmentsHandler serves department reads from the live mirror and
// routes writes through the data service.
type DepartmentsHandler struct {
	data   *service.DataService
	mirror *mirror.Mirror
}

// NewDepartmentsHandler constructs handler.
func NewDepartmentsHandler(data *service.DataService, m *mirror.Mirror) *DepartmentsHandler {
	return &DepartmentsHandler{data: data, mirror: m}
}

// List handles GET /api/departments.
func (h *DepartmentsHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.NewDepartmentList(h.mirror.Departments())})
}

// Create handles POST /api/departments.
func (h *DepartmentsHandler) Create(c *fiber.Ctx) error {
	var req dto.DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.Acronym == "" {
		return fiber.NewError(http.StatusBadRequest, "name and acronym required")
	}

	dept := &domain.Department{Name: req.Name, Acronym: req.Acronym}
	id, err := h.data.CreateDepartment(c.Context(), dept)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"id": id}})
}

// Update handles PATCH /api/departments/:id.
func (h *DepartmentsHandler) Update(c *fiber.Ctx) error {
	var req dto.DepartmentPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.data.UpdateDepartment(c.Context(), c.Params("id"), req.Patch()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"ok": true}})
}

// Delete handles DELETE /api/departments/:id.
func (h *DepartmentsHandler) Delete(c *fiber.Ctx) error {
	if err := h.data.DeleteDepartment(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"ok": true}})
}
