package handler

import (
	"errors"
	"fmt"
	"log/slog"

	"clinic-portal/internal/layout"
	"clinic-portal/internal/middleware"
	"clinic-portal/internal/model"
	"clinic-portal/internal/service"
	"clinic-portal/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type LayoutHandler struct {
	service service.DashboardService
}

func NewLayoutHandler(s service.DashboardService) *LayoutHandler {
	return &LayoutHandler{service: s}
}

// ItemRequest names one layout item
type ItemRequest struct {
	ID string `json:"id" validate:"required,max=100"`
}

// DragEndRequest is the drop of a drag; ActiveID may be empty to use the item given to drag-start
type DragEndRequest struct {
	ActiveID string `json:"activeId" validate:"max=100"`
	OverID   string `json:"overId" validate:"max=100"`
}

type GridSizeRequest struct {
	GridSize model.GridSize `json:"gridSize" validate:"required,oneof=compact normal large"`
}

// layoutError maps service errors onto responses
func layoutError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNoDevice):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, layout.ErrUnknownItem):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, layout.ErrInvalidGridSize), errors.Is(err, layout.ErrInvalidImport):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	default:
		slog.ErrorContext(c.UserContext(), "layout operation failed", "error", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update layout"})
	}
}

// parse decodes and validates the body; on failure it returns the 400 payload
func parse(c *fiber.Ctx, req any) (fiber.Map, bool) {
	if err := c.BodyParser(req); err != nil {
		return fiber.Map{"error": "Invalid JSON"}, false
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return fiber.Map{"error": "Validation failed", "details": errs}, false
	}
	return nil, true
}

func changedResponse(c *fiber.Ctx, view service.LayoutView, changed bool, err error) error {
	if err != nil {
		return layoutError(c, err)
	}
	return c.JSON(fiber.Map{"changed": changed, "layout": view})
}

func viewResponse(c *fiber.Ctx, view service.LayoutView, err error) error {
	if err != nil {
		return layoutError(c, err)
	}
	return c.JSON(view)
}

// GetLayout returns the full editor state
// GET /api/v1/layout
func (h *LayoutHandler) GetLayout(c *fiber.Ctx) error {
	view, err := h.service.Layout(c.UserContext(), middleware.DeviceID(c))
	return viewResponse(c, view, err)
}

// POST /api/v1/layout/edit
func (h *LayoutHandler) EnterEdit(c *fiber.Ctx) error {
	view, err := h.service.EnterEdit(c.UserContext(), middleware.DeviceID(c))
	return viewResponse(c, view, err)
}

// POST /api/v1/layout/save
func (h *LayoutHandler) Save(c *fiber.Ctx) error {
	view, err := h.service.Save(c.UserContext(), middleware.DeviceID(c))
	return viewResponse(c, view, err)
}

// POST /api/v1/layout/cancel
func (h *LayoutHandler) Cancel(c *fiber.Ctx) error {
	view, err := h.service.Cancel(c.UserContext(), middleware.DeviceID(c))
	return viewResponse(c, view, err)
}

// POST /api/v1/layout/drag-start
func (h *LayoutHandler) DragStart(c *fiber.Ctx) error {
	var req ItemRequest
	if msg, ok := parse(c, &req); !ok {
		return c.Status(400).JSON(msg)
	}

	view, err := h.service.DragStart(c.UserContext(), middleware.DeviceID(c), req.ID)
	return viewResponse(c, view, err)
}

// DragEnd applies a drop. A drop outside any item is not an error; the layout is unchanged.
// POST /api/v1/layout/drag-end
func (h *LayoutHandler) DragEnd(c *fiber.Ctx) error {
	var req DragEndRequest
	if msg, ok := parse(c, &req); !ok {
		return c.Status(400).JSON(msg)
	}

	view, changed, err := h.service.DragEnd(c.UserContext(), middleware.DeviceID(c), req.ActiveID, req.OverID)
	return changedResponse(c, view, changed, err)
}

// POST /api/v1/layout/visibility
func (h *LayoutHandler) ToggleVisibility(c *fiber.Ctx) error {
	var req ItemRequest
	if msg, ok := parse(c, &req); !ok {
		return c.Status(400).JSON(msg)
	}

	view, err := h.service.ToggleVisibility(c.UserContext(), middleware.DeviceID(c), req.ID)
	return viewResponse(c, view, err)
}

// POST /api/v1/layout/undo
func (h *LayoutHandler) Undo(c *fiber.Ctx) error {
	view, changed, err := h.service.Undo(c.UserContext(), middleware.DeviceID(c))
	return changedResponse(c, view, changed, err)
}

// POST /api/v1/layout/redo
func (h *LayoutHandler) Redo(c *fiber.Ctx) error {
	view, changed, err := h.service.Redo(c.UserContext(), middleware.DeviceID(c))
	return changedResponse(c, view, changed, err)
}

// POST /api/v1/layout/keys
func (h *LayoutHandler) KeyStroke(c *fiber.Ctx) error {
	var req service.KeyStroke
	if msg, ok := parse(c, &req); !ok {
		return c.Status(400).JSON(msg)
	}

	view, changed, err := h.service.KeyStroke(c.UserContext(), middleware.DeviceID(c), req)
	return changedResponse(c, view, changed, err)
}

// PUT /api/v1/layout/grid-size
func (h *LayoutHandler) SetGridSize(c *fiber.Ctx) error {
	var req GridSizeRequest
	if msg, ok := parse(c, &req); !ok {
		return c.Status(400).JSON(msg)
	}

	view, err := h.service.SetGridSize(c.UserContext(), middleware.DeviceID(c), req.GridSize)
	return viewResponse(c, view, err)
}

// Export downloads the layout file
// GET /api/v1/layout/export
func (h *LayoutHandler) Export(c *fiber.Ctx) error {
	doc, err := h.service.Export(c.UserContext(), middleware.DeviceID(c))
	if err != nil {
		return layoutError(c, err)
	}

	c.Attachment(fmt.Sprintf("dashboard-layout-%s.json", doc.ExportedAt.Format("2006-01-02")))
	return c.JSON(doc)
}

// Import replaces the layout with an uploaded layout file
// POST /api/v1/layout/import
func (h *LayoutHandler) Import(c *fiber.Ctx) error {
	view, err := h.service.Import(c.UserContext(), middleware.DeviceID(c), c.Body())
	return viewResponse(c, view, err)
}

// POST /api/v1/layout/reset
func (h *LayoutHandler) Reset(c *fiber.Ctx) error {
	view, err := h.service.Reset(c.UserContext(), middleware.DeviceID(c))
	return viewResponse(c, view, err)
}
