package middleware

import (
	"strings"

	"smartspend/internal/config"
	"smartspend/internal/core/domain"
	"smartspend/internal/pkg/jwt"
	"smartspend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Context keys set by AuthMiddleware
const (
	LocalUserID   = "userID"
	LocalUsername = "username"
	LocalRole     = "role"
)

// AuthMiddleware verifies the access token and stores the authenticated
// identity on the request. Every verification failure reads the same to the
// client: invalid token.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		// Cookie first, then Authorization header
		accessToken = c.Cookies("access_token")
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)
		if err != nil {
			return response.Unauthorized(c, "Invalid or expired token")
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUsername, claims.Username())
		c.Locals(LocalRole, claims.Role)

		return c.Next()
	}
}

// Actor extracts the authenticated identity set by AuthMiddleware. The
// second return is false when the request never passed the middleware.
func Actor(c *fiber.Ctx) (domain.Actor, bool) {
	userID, ok := c.Locals(LocalUserID).(string)
	if !ok || userID == "" {
		return domain.Actor{}, false
	}
	role, _ := c.Locals(LocalRole).(string)
	return domain.Actor{ID: userID, Role: role}, true
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocalRole).(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only the ADMIN role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}
