package handler

import (
	"clinic-portal/internal/middleware"
	"clinic-portal/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

type SessionHandler struct {
	sessions *session.Store
}

func NewSessionHandler(sessions *session.Store) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// StoreTokenRequest puts a token into the session scope under one of the token keys
type StoreTokenRequest struct {
	Key   string `json:"key" validate:"required,oneof=clinicToken agentToken userToken doctorToken adminToken doctorStaffToken"`
	Token string `json:"token" validate:"required"`
}

// StoreToken keeps a token for the lifetime of the browser session
// POST /api/v1/session/token
func (h *SessionHandler) StoreToken(c *fiber.Ctx) error {
	var req StoreTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": errs})
	}

	store := middleware.NewSessionStore(h.sessions, c)
	if err := store.Set(c.UserContext(), req.Key, req.Token); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to store token"})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Token stored", "key": req.Key})
}

// RemoveToken drops a token from the session scope
// DELETE /api/v1/session/token/:key
func (h *SessionHandler) RemoveToken(c *fiber.Ctx) error {
	store := middleware.NewSessionStore(h.sessions, c)
	if err := store.Remove(c.UserContext(), c.Params("key")); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to remove token"})
	}

	return c.SendStatus(204)
}
