package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pathlab-audit/backend/internal/auth"
	"github.com/pathlab-audit/backend/internal/config"
	"github.com/pathlab-audit/backend/internal/rbac"
	"go.uber.org/zap"
)

const (
	CtxUserID   = "user_id"
	CtxTenantID = "tenant_id"
	CtxRole     = "role"
	CtxUserName = "user_name"
	CtxUserMail = "user_email"
)

func AuthMiddleware(cfg *config.Config, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
		}

		claims, err := auth.ParseJWT(cfg.JWTSecret, tokenStr)
		if err != nil {
			log.Debug("jwt parse error", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		c.Locals(CtxUserID, claims.UserID)
		c.Locals(CtxTenantID, claims.TenantID)
		c.Locals(CtxRole, claims.Role)
		c.Locals(CtxUserName, claims.Name)
		c.Locals(CtxUserMail, claims.Email)

		return c.Next()
	}
}

func GetUserID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(CtxUserID).(uuid.UUID)
	return id
}

func GetTenantID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(CtxTenantID).(uuid.UUID)
	return id
}

func GetRole(c *fiber.Ctx) string {
	role, _ := c.Locals(CtxRole).(string)
	return role
}

func GetUserName(c *fiber.Ctx) string {
	name, _ := c.Locals(CtxUserName).(string)
	return name
}

func GetUserEmail(c *fiber.Ctx) string {
	email, _ := c.Locals(CtxUserMail).(string)
	return email
}

// RequirePermission gates a route on the rbac permission matrix.
func RequirePermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !rbac.HasPermission(GetRole(c), permission) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "insufficient role"})
		}
		return c.Next()
	}
}
