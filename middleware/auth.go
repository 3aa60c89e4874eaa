package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"tailor-booking/services/token"
	"tailor-booking/types"
	"tailor-booking/utils"
)

// extractToken pulls the bearer token from the Authorization header, falling
// back to the access cookie.
func extractToken(c *fiber.Ctx) (string, *fiber.Error) {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", fiber.NewError(fiber.StatusUnauthorized, "Invalid authorization header format")
		}
		return parts[1], nil
	}

	if cookie := c.Cookies("access"); cookie != "" {
		return cookie, nil
	}

	return "", fiber.NewError(fiber.StatusUnauthorized, "Authorization token missing")
}

// RequireAuth verifies the token and attaches its claims to the request.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ferr := extractToken(c)
		if ferr != nil {
			return c.Status(ferr.Code).JSON(types.ApiResponse{
				Success: false,
				Message: ferr.Message,
			})
		}

		claims, err := token.Parse(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Success: false,
				Message: "Invalid or expired token",
			})
		}

		if utils.ClaimString(claims, "uuid") == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Success: false,
				Message: "Session expired. Login again.",
			})
		}

		c.Locals("user", claims)
		return c.Next()
	}
}

// RequireRoles verifies the token and additionally requires the role claim
// to be one of roles. Ownership checks still happen in the handlers; this is
// the coarse route-level gate.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ferr := extractToken(c)
		if ferr != nil {
			return c.Status(ferr.Code).JSON(types.ApiResponse{
				Success: false,
				Message: ferr.Message,
			})
		}

		claims, err := token.Parse(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Success: false,
				Message: "Invalid or expired token",
			})
		}

		role := utils.ClaimString(claims, "role")
		allowed := false
		for _, r := range roles {
			if role == r {
				allowed = true
				break
			}
		}

		if !allowed {
			return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
				Success: false,
				Message: "Insufficient permissions",
			})
		}

		c.Locals("user", claims)
		return c.Next()
	}
}
