package middleware

import (
	"clinic-portal/internal/model"
	"clinic-portal/internal/service"

	"github.com/gofiber/fiber/v2"
)

// LocalCapabilities holds the capability set resolved by RequireCapability
const LocalCapabilities = "capabilities"

// RequireCapability resolves the caller's capabilities on module and rejects the
// request unless action is granted
func RequireCapability(svc service.PermissionService, module string, action model.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caps := svc.Resolve(c.UserContext(), Query(c, module))
		c.Locals(LocalCapabilities, caps)

		if !caps.Allows(action) {
			return c.Status(403).JSON(fiber.Map{
				"error": "Forbidden: requires '" + string(action) + "' on '" + module + "'",
			})
		}

		return c.Next()
	}
}
