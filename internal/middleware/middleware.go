package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"qrqaema/domain"
	"qrqaema/internal/api/presenters"
	"qrqaema/pkg/jwt"
)

type Middleware interface {
	AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
	OptionalAuthMiddleware(jwtService jwt.JWTService) fiber.Handler
	SuperuserMiddleware() fiber.Handler
	CORSMiddleware() fiber.Handler
}

type middleware struct{}

func NewMiddleware() Middleware {
	return &middleware{}
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}

		userID, role, isSuperuser, err := jwtService.GetUserIDByToken(token)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}

		c.Locals("user_id", userID)
		c.Locals("role", role)
		c.Locals("is_superuser", isSuperuser)
		return c.Next()
	}
}

// OptionalAuthMiddleware populates identity locals when a valid token is
// present but never rejects the request. Customer-facing routes use it
// so staff browsing their own menu keep their identity.
func (m *middleware) OptionalAuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token != "" {
			if userID, role, isSuperuser, err := jwtService.GetUserIDByToken(token); err == nil {
				c.Locals("user_id", userID)
				c.Locals("role", role)
				c.Locals("is_superuser", isSuperuser)
			}
		}
		return c.Next()
	}
}

// SuperuserMiddleware must run after AuthMiddleware.
func (m *middleware) SuperuserMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		isSuperuser, _ := c.Locals("is_superuser").(bool)
		if !isSuperuser {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageUserNotAllowed, domain.ErrSuperuserOnly)
		}
		return c.Next()
	}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	})
}
