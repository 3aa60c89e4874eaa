package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tailor-booking/services/access"
	"tailor-booking/types"
)

// Fail writes the error envelope with the given status.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(types.ApiResponse{
		Success: false,
		Message: message,
	})
}

// OK writes the success envelope with an optional payload.
func OK(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(types.ApiResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// FailResolve maps access-resolution errors onto the documented responses:
// a missing user record is 404, missing claims are 401, anything else is a
// database failure.
func FailResolve(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, access.ErrUserNotFound):
		return Fail(c, fiber.StatusNotFound, "User not found")
	case errors.Is(err, access.ErrNoClaims):
		return Fail(c, fiber.StatusUnauthorized, "Invalid user claims")
	default:
		return Fail(c, fiber.StatusInternalServerError, "Database error")
	}
}

// FailLookup maps record-load errors to 404 or 500.
func FailLookup(c *fiber.Ctx, err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Fail(c, fiber.StatusNotFound, resource+" not found")
	}
	return Fail(c, fiber.StatusInternalServerError, "Database error")
}
