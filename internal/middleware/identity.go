package middleware

import (
	"strings"

	"clinic-portal/internal/model"
	"clinic-portal/internal/service"
	"clinic-portal/pkg/jwt"
	"clinic-portal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

// Locals keys set by the middlewares in this package
const (
	LocalRole     = "role"
	LocalToken    = "token"
	LocalTokens   = "tokens"
	LocalDeviceID = "device_id"
)

// identityTokenKeys are checked when no bearer header is sent
var identityTokenKeys = append(append([]string{}, service.ClinicTokenKeys...), service.DoctorStaffTokenKeys...)

// RequestContext copies the request id into the user context for logging
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok && id != "" {
			c.SetUserContext(logger.WithRequestID(c.UserContext(), id))
		}
		return c.Next()
	}
}

// Identity resolves the caller's token and role. The bearer header wins; otherwise
// the token is looked up in the cookie and session scopes.
func Identity(sessions *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokens := service.ScopedTokens{
			Persistent: NewCookieStore(c),
			Session:    NewSessionStore(sessions, c),
		}

		token := bearerToken(c)
		if token == "" {
			token = tokens.Lookup(c.UserContext(), identityTokenKeys)
		}
		if token == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// An undecodable token yields the unknown role, which is denied everything
		role, err := jwt.DecodeRoleClaim(token)
		if err != nil {
			role = model.RoleUnknown
		}

		c.Locals(LocalRole, role)
		c.Locals(LocalToken, token)
		c.Locals(LocalTokens, service.TokenSource(tokens))

		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	parts := strings.Fields(c.Get(fiber.HeaderAuthorization))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// DeviceCookie identifies the browser with a uuid cookie, issuing one when absent
func DeviceCookie(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		deviceID := c.Cookies(name)
		if _, err := uuid.Parse(deviceID); err != nil {
			deviceID = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     name,
				Value:    deviceID,
				Path:     "/",
				MaxAge:   365 * 24 * 60 * 60,
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}

		c.Locals(LocalDeviceID, deviceID)
		c.SetUserContext(logger.WithDeviceID(c.UserContext(), deviceID))
		return c.Next()
	}
}

// Role returns the role set by Identity, or RoleUnknown
func Role(c *fiber.Ctx) model.Role {
	role, ok := c.Locals(LocalRole).(model.Role)
	if !ok {
		return model.RoleUnknown
	}
	return role
}

func Token(c *fiber.Ctx) string {
	token, _ := c.Locals(LocalToken).(string)
	return token
}

func Tokens(c *fiber.Ctx) service.TokenSource {
	tokens, ok := c.Locals(LocalTokens).(service.TokenSource)
	if !ok {
		return service.StaticToken(Token(c))
	}
	return tokens
}

func DeviceID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalDeviceID).(string)
	return id
}

// Query builds the resolver query for the caller
func Query(c *fiber.Ctx, moduleKey string) service.PermissionQuery {
	return service.PermissionQuery{
		Role:      Role(c),
		ModuleKey: moduleKey,
		Token:     Token(c),
		Tokens:    Tokens(c),
	}
}
