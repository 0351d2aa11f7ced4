package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/merchstore/internal/config"
	"github.com/example/merchstore/internal/utils"
)

const identityContextKey = "currentIdentity"

// SessionMiddleware validates the bearer token and loads the identity into
// context. Guest tokens are accepted.
func SessionMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c)
		if err != nil {
			return err
		}

		id, err := utils.ParseToken(cfg.JWTSecret, token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(identityContextKey, id)
		return c.Next()
	}
}

// UserMiddleware only lets registered customers through. It must run after
// SessionMiddleware.
func UserMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := GetCurrentUserID(c); !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "sign in required")
		}
		return c.Next()
	}
}

// AdminMiddleware only lets customers on the ADMIN_EMAILS list through. It
// must run after SessionMiddleware.
func AdminMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := GetIdentity(c)
		if !ok || !id.IsUser() {
			return fiber.NewError(fiber.StatusUnauthorized, "sign in required")
		}
		if !cfg.IsAdmin(id.Email) {
			return fiber.NewError(fiber.StatusForbidden, "admin access required")
		}
		return c.Next()
	}
}

// OptionalIdentity parses a bearer token when one is sent and returns the
// identity it carries. A missing or invalid token yields false.
func OptionalIdentity(c *fiber.Ctx, cfg *config.Config) (utils.Identity, bool) {
	if c.Get("Authorization") == "" {
		return utils.Identity{}, false
	}
	token, err := bearerToken(c)
	if err != nil {
		return utils.Identity{}, false
	}
	id, err := utils.ParseToken(cfg.JWTSecret, token)
	if err != nil {
		return utils.Identity{}, false
	}
	return id, true
}

// GetIdentity extracts the identity loaded by SessionMiddleware.
func GetIdentity(c *fiber.Ctx) (utils.Identity, bool) {
	id, ok := c.Locals(identityContextKey).(utils.Identity)
	return id, ok
}

// GetCurrentUserID extracts the authenticated user ID from context.
func GetCurrentUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := GetIdentity(c)
	if !ok || !id.IsUser() {
		return uuid.Nil, false
	}
	return id.UserID, true
}

func bearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}
