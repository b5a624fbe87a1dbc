package handler

import (
	"clinic-portal/internal/middleware"
	"clinic-portal/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type WSHandler struct {
	hub *ws.Hub
}

func NewWSHandler(hub *ws.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// Upgrade rejects plain HTTP requests; Locals set earlier, such as the device id, reach the connection
func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return c.SendStatus(fiber.StatusUpgradeRequired)
}

// Stream subscribes the connection to its device's layout events
// GET /api/v1/ws
func (h *WSHandler) Stream() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		deviceID, _ := c.Locals(middleware.LocalDeviceID).(string)
		sub := ws.Subscription{DeviceID: deviceID, Conn: c}

		if err := h.hub.Subscribe(sub); err != nil {
			return
		}
		defer h.hub.Unsubscribe(sub)

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	})
}
