package handler

import (
	"clinic-portal/internal/middleware"
	"clinic-portal/internal/service"
	"clinic-portal/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type PermissionHandler struct {
	service service.PermissionService
}

func NewPermissionHandler(s service.PermissionService) *PermissionHandler {
	return &PermissionHandler{service: s}
}

// GetPermissions returns the caller's capability set for one module
// GET /api/v1/permissions/:module
func (h *PermissionHandler) GetPermissions(c *fiber.Ctx) error {
	module := c.Params("module")
	if !validator.ValidModuleKey(module) {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid module key"})
	}

	caps := h.service.Resolve(c.UserContext(), middleware.Query(c, module))

	return c.JSON(fiber.Map{
		"module":      module,
		"role":        middleware.Role(c),
		"permissions": caps,
	})
}
